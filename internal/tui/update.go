package tui

import (
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/dnd"
	"kaiser-cli/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil
	case tea.MouseMsg:
		if m.doc.Client.Page.Current != model.PageBoard {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		switch m.doc.Client.Page.Current {
		case model.PageCard, model.PageMembers:
			return m.updateDetail(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		col := m.inputColumn
		m.closeInput()
		if title == "" {
			m.dispatch(board.SetColumnShowNewCardInput{ColumnID: col, Show: false})
			return m, nil
		}
		m.dispatch(board.NewCard{ColumnID: col, Title: title})
		if c, ok := board.FindColumn(m.doc, col); ok {
			m.focusColumn(col)
			m.cardIdx = len(c.Cards) - 1
		}
		return m, nil
	case "esc":
		col := m.inputColumn
		m.closeInput()
		m.dispatch(board.SetColumnShowNewCardInput{ColumnID: col, Show: false})
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) closeInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.inputColumn = ""
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.dispatch(board.ShowBoardPage{})
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.drag.Active && msg.String() == "esc" {
		m.drag = m.drag.Cancel()
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.NextLine):
		if n := len(m.doc.Lines); n > 0 {
			m.lineIdx = (m.lineIdx + 1) % n
			m.colIdx, m.cardIdx = 0, 0
		}
	case key.Matches(msg, keys.PrevLine):
		if n := len(m.doc.Lines); n > 0 {
			m.lineIdx = (m.lineIdx - 1 + n) % n
			m.colIdx, m.cardIdx = 0, 0
		}
	case key.Matches(msg, keys.Left):
		m.colIdx--
		m.clampFocus()
	case key.Matches(msg, keys.Right):
		m.colIdx++
		m.clampFocus()
	case key.Matches(msg, keys.Up):
		m.cardIdx--
		m.clampFocus()
	case key.Matches(msg, keys.Down):
		m.cardIdx++
		m.clampFocus()
	case key.Matches(msg, keys.ToggleExpanded):
		if line, ok := m.focusedLine(); ok {
			m.dispatch(board.ToggleLineExpanded{LineID: line.ID})
		}
	case key.Matches(msg, keys.ToggleMaximised):
		if line, ok := m.focusedLine(); ok {
			m.dispatch(board.ToggleLineMaximised{LineID: line.ID})
		}
	case key.Matches(msg, keys.ToggleBadges):
		m.dispatch(board.ToggleLineSummaryBadges{})
	case key.Matches(msg, keys.ExpandAll):
		m.dispatch(board.ExpandAllLines{})
	case key.Matches(msg, keys.CollapseAll):
		m.dispatch(board.CollapseAllLines{})
	case key.Matches(msg, keys.ToggleColumn):
		if col, ok := m.focusedColumn(); ok {
			m.dispatch(board.ToggleColumnCollapsed{ColumnID: col.ID})
		}
	case key.Matches(msg, keys.NewCard):
		col, ok := m.focusedColumn()
		if !ok {
			return m, nil
		}
		m.dispatch(board.SetColumnShowNewCardInput{ColumnID: col.ID, Show: true})
		m.inputColumn = col.ID
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, keys.DeleteCard):
		if col, card, ok := m.focusedCard(); ok {
			m.dispatch(board.DeleteCard{ColumnID: col.ID, CardID: card.ID})
		}
	case key.Matches(msg, keys.OpenCard):
		if col, card, ok := m.focusedCard(); ok {
			m.dispatch(board.ShowCardPage{CardID: card.ID, ColumnID: col.ID})
		}
	case key.Matches(msg, keys.Members):
		m.dispatch(board.ShowMembersPage{})
	case key.Matches(msg, keys.PageUp):
		m.scroll -= m.height / 2
		m.clampScroll()
	case key.Matches(msg, keys.PageDown):
		m.scroll += m.height / 2
		m.clampScroll()
	}
	return m, nil
}

func (m *appModel) clampScroll() {
	rows := len(m.boardFrame().rows)
	m.scroll = clamp(m.scroll, 0, rows-m.viewportRows())
}

// viewportRows is the number of board rows on screen; the last row is the status line.
func (m appModel) viewportRows() int {
	if m.height <= 1 {
		return 1
	}
	return m.height - 1
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y+m.scroll
	f := m.boardFrame()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll -= 3
		m.clampScroll()
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll += 3
		m.clampScroll()
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if hit, ok := f.cardAt(x, y); ok {
			m.focusColumn(hit.columnID)
			m.cardIdx = hit.index
			m.drag = dnd.Begin(hit.columnID, hit.cardID, hit.index)
			return
		}
		if col, ok := f.columnAt(x, y); ok && y == col.headerY {
			m.focusColumn(col.columnID)
			m.dispatch(board.ToggleColumnCollapsed{ColumnID: col.columnID})
			return
		}
		if l, ok := f.lineAt(x, y); ok {
			m.lineIdx, m.colIdx, m.cardIdx = l.index, 0, 0
			m.dispatch(board.ToggleLineExpanded{LineID: m.doc.Lines[l.index].ID})
		}

	case tea.MouseActionMotion:
		if !m.drag.Active {
			return
		}
		hit, ok := f.cardAt(x, y)
		if !ok {
			return
		}
		next, a, ok := m.drag.Hover(dnd.HoverEvent{
			ColumnID: hit.columnID,
			Index:    hit.index,
			Rect:     dnd.Rect{Top: hit.y0, Bottom: hit.y1},
			PointerY: y,
		})
		m.drag = next
		if ok {
			m.dispatch(a)
			m.focusColumn(m.drag.ColumnID)
			m.cardIdx = m.drag.Index
		}

	case tea.MouseActionRelease:
		if !m.drag.Active {
			return
		}
		s := m.drag
		m.drag = s.Cancel()
		col, ok := f.columnAt(x, y)
		if !ok {
			return
		}
		if a, ok := s.Drop(col.columnID); ok {
			m.dispatch(a)
			if c, found := board.FindColumn(m.doc, col.columnID); found {
				m.focusColumn(col.columnID)
				m.cardIdx = len(c.Cards) - 1
			}
		}
	}
}
