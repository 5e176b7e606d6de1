package render

import (
	"fmt"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Card renders the detail page of a card: checklists, assignees and comments.
func Card(doc model.Document, columnID string, cardID int, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	col, ok := board.FindColumn(doc, columnID)
	if !ok {
		return "", board.NotFoundError{Kind: "column", ID: columnID}
	}
	card, ok := board.FindCard(col, cardID)
	if !ok {
		return "", board.NotFoundError{Kind: "card", ID: fmt.Sprint(cardID)}
	}

	var b strings.Builder
	heading := lipgloss.NewStyle().Bold(true)
	b.WriteString(heading.Render(fmt.Sprintf("#%d %s", card.ID, card.Title)))
	typ := card.Type
	if typ == "" {
		typ = model.CardTypeTask
	}
	b.WriteString(styleMuted().Render(fmt.Sprintf("  [%s]", typ)))
	b.WriteString("\n")

	where := col.Title
	if line, ok := board.FindLine(doc, col.LineID); ok {
		where = line.Title + " / " + col.Title
	}
	b.WriteString(styleMuted().Render(where))
	b.WriteString("\n")

	if len(card.Assignees) > 0 {
		names := make([]string, 0, len(card.Assignees))
		for _, a := range card.Assignees {
			names = append(names, "@"+a.Username)
		}
		b.WriteString("Assignees: " + strings.Join(names, " ") + "\n")
	}

	if len(card.Todos) > 0 {
		b.WriteString("\n" + heading.Render(fmt.Sprintf("Todos %d/%d", len(card.Todos)-card.OpenTodos(), len(card.Todos))) + "\n")
		for _, t := range card.Todos {
			b.WriteString(checkRow(t.Done, t.Title, t.ID, width) + "\n")
		}
	}
	if len(card.Bugs) > 0 {
		b.WriteString("\n" + heading.Render(fmt.Sprintf("Bugs %d open", card.OpenBugs())) + "\n")
		for _, bug := range card.Bugs {
			b.WriteString(checkRow(bug.Done, bug.Title, bug.ID, width) + "\n")
		}
	}
	if len(card.Comments) > 0 {
		b.WriteString("\n" + heading.Render(fmt.Sprintf("Comments (%d)", len(card.Comments))) + "\n")
		for _, c := range card.Comments {
			meta := "@" + c.Username
			if !c.CreatedAt.IsZero() {
				meta += " · " + c.CreatedAt.UTC().Format("2006-01-02 15:04")
			}
			b.WriteString(styleMuted().Render(meta) + "\n")
			b.WriteString(Markdown(c.Text, width-2) + "\n")
		}
	}
	return b.String(), nil
}

func checkRow(done bool, title, id string, width int) string {
	box := "[ ]"
	style := lipgloss.NewStyle()
	if done {
		box = "[x]"
		style = style.Foreground(colorDone).Strikethrough(true)
	}
	row := "  " + box + " " + style.Render(title)
	if id != "" {
		row += " " + styleMuted().Render(id)
	}
	return Truncate(row, width)
}
