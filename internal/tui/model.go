package tui

import (
	"context"
	"errors"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/dnd"
	"kaiser-cli/internal/model"
	"kaiser-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	ctx   context.Context
	store *store.Store
	doc   model.Document

	width  int
	height int
	scroll int

	// Focus is positional: a line index into doc.Lines, a column index into that line's columns
	// and a card index into that column.
	lineIdx int
	colIdx  int
	cardIdx int

	input       textinput.Model
	inputColumn string

	drag dnd.Session

	status string
}

func newModel(ctx context.Context, st *store.Store) appModel {
	in := textinput.New()
	in.Placeholder = "Card title"
	in.CharLimit = 200
	in.Width = 30
	m := appModel{
		ctx:    ctx,
		store:  st,
		doc:    st.State(),
		width:  120,
		height: 40,
		input:  in,
	}
	m.focusFirstExpandedLine()
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

// dispatch sends a through the store and adopts the resulting document. Failed writes still
// update the board; their error is shown in the status line.
func (m *appModel) dispatch(a board.Action) {
	doc, err := m.store.Dispatch(m.ctx, a)
	m.doc = doc
	var perr *store.PersistError
	switch {
	case err == nil:
		m.status = ""
	case errors.As(err, &perr):
		m.status = "not saved: " + perr.Err.Error()
	default:
		m.status = err.Error()
	}
	m.clampFocus()
}

func (m *appModel) focusFirstExpandedLine() {
	for i, l := range m.doc.Lines {
		if l.Expanded {
			m.lineIdx = i
			return
		}
	}
}

func (m appModel) focusedLine() (model.Line, bool) {
	if m.lineIdx < 0 || m.lineIdx >= len(m.doc.Lines) {
		return model.Line{}, false
	}
	return m.doc.Lines[m.lineIdx], true
}

func (m appModel) focusedColumns() []model.Column {
	line, ok := m.focusedLine()
	if !ok {
		return nil
	}
	cols, _ := board.ColumnsOfLine(m.doc, line)
	return cols
}

func (m appModel) focusedColumn() (model.Column, bool) {
	cols := m.focusedColumns()
	if m.colIdx < 0 || m.colIdx >= len(cols) {
		return model.Column{}, false
	}
	return cols[m.colIdx], true
}

func (m appModel) focusedCard() (model.Column, model.Card, bool) {
	col, ok := m.focusedColumn()
	if !ok || m.cardIdx < 0 || m.cardIdx >= len(col.Cards) {
		return model.Column{}, model.Card{}, false
	}
	return col, col.Cards[m.cardIdx], true
}

func (m *appModel) clampFocus() {
	m.lineIdx = clamp(m.lineIdx, 0, len(m.doc.Lines)-1)
	m.colIdx = clamp(m.colIdx, 0, len(m.focusedColumns())-1)
	col, _ := m.focusedColumn()
	m.cardIdx = clamp(m.cardIdx, 0, len(col.Cards)-1)
}

// focusColumn moves focus to the column with id, wherever its line is.
func (m *appModel) focusColumn(columnID string) {
	for li, line := range m.doc.Lines {
		cols, _ := board.ColumnsOfLine(m.doc, line)
		for ci, col := range cols {
			if col.ID == columnID {
				m.lineIdx, m.colIdx = li, ci
				return
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
