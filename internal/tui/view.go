package tui

import (
	"strings"

	"kaiser-cli/internal/model"
	"kaiser-cli/internal/render"

	"github.com/charmbracelet/lipgloss"
)

var styleStatus = lipgloss.NewStyle().Faint(true)

func (m appModel) View() string {
	var body string
	switch m.doc.Client.Page.Current {
	case model.PageCard:
		body = m.cardView()
	case model.PageMembers:
		body = render.Members(m.doc)
	default:
		f := m.boardFrame()
		rows := f.rows
		if m.scroll < len(rows) {
			rows = rows[m.scroll:]
		}
		if n := m.viewportRows(); len(rows) > n {
			rows = rows[:n]
		}
		body = strings.Join(rows, "\n")
	}
	return body + "\n" + m.statusLine()
}

func (m appModel) cardView() string {
	p := m.doc.Client.Page
	if p.CardID == nil || p.ColumnID == nil {
		return "(no card selected)"
	}
	out, err := render.Card(m.doc, *p.ColumnID, *p.CardID, m.width)
	if err != nil {
		return err.Error()
	}
	return out
}

func (m appModel) statusLine() string {
	if m.status != "" {
		return render.Truncate(m.status, m.width)
	}
	var help string
	switch {
	case m.input.Focused():
		help = "enter add  esc cancel"
	case m.doc.Client.Page.Current != model.PageBoard:
		help = helpLine(keys.Back, keys.Quit)
	default:
		help = helpLine(keys.NextLine, keys.ToggleExpanded, keys.ToggleMaximised, keys.ToggleBadges,
			keys.ToggleColumn, keys.NewCard, keys.OpenCard, keys.DeleteCard, keys.Members, keys.Quit)
	}
	return styleStatus.Render(render.Truncate(help, m.width))
}
