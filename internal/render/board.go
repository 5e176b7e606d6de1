// Package render draws a board document as terminal text.
//
// Collapsed lines are a single header row, optionally followed by per-column card counts.
// Expanded lines lay their columns out side by side; a maximised line shows every card.
package render

import (
	"fmt"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	// ExpandedCardLimit is how many cards an expanded, non-maximised line shows per column.
	ExpandedCardLimit = 6
	minColumnWidth    = 14
	defaultWidth      = 120
)

// CardLimit returns the number of cards shown per column of line; 0 means no limit and -1
// means the columns are hidden.
func CardLimit(line model.Line) int {
	switch {
	case !line.Expanded:
		return -1
	case line.Maximised:
		return 0
	default:
		return ExpandedCardLimit
	}
}

func Board(doc model.Document, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(doc.Board.Title))
	if u := doc.Client.CurrentUsername; u != "" {
		b.WriteString(styleMuted().Render("  @" + u))
	}
	b.WriteString("\n")
	if len(doc.Lines) == 0 {
		b.WriteString(styleMuted().Render("(no lines)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, line := range doc.Lines {
		b.WriteString(Line(doc, line, width))
		b.WriteString("\n")
	}
	return b.String()
}

// LineHeader is the single-row title of a line, with the summary badges when the line is collapsed
// and badges are enabled.
func LineHeader(doc model.Document, line model.Line) string {
	caret := "▾"
	if !line.Expanded {
		caret = "▸"
	}
	h := caret + " " + lipgloss.NewStyle().Bold(true).Foreground(colorSurface).Render(line.Title)
	if line.Maximised {
		h += styleMuted().Render(" [max]")
	}
	if !line.Expanded && doc.Settings.ShowLineSummaryBadges {
		if s := LineSummary(doc, line); s != "" {
			h += "  " + s
		}
	}
	return h
}

func Line(doc model.Document, line model.Line, width int) string {
	header := LineHeader(doc, line)
	limit := CardLimit(line)
	if limit < 0 {
		return header
	}
	cols, missing := board.ColumnsOfLine(doc, line)
	if len(cols) == 0 {
		return header + "\n" + styleMuted().Render("  (no columns)")
	}
	cw := ColumnWidth(width, len(cols))
	blocks := make([]string, 0, len(cols))
	for _, col := range cols {
		blocks = append(blocks, Column(col, cw, limit))
	}
	out := header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	if len(missing) > 0 {
		out += "\n" + styleMuted().Render("  missing columns: "+strings.Join(missing, ", "))
	}
	return out
}

// ColumnWidth splits width evenly between n columns, never going below a readable minimum.
func ColumnWidth(width, n int) int {
	if n <= 0 {
		return width
	}
	w := width / n
	if w < minColumnWidth {
		w = minColumnWidth
	}
	return w
}

// Column renders one column block of the given outer width. limit caps the visible cards (0 = all).
func Column(col model.Column, width, limit int) string {
	inner := width - 1
	if inner < 4 {
		inner = 4
	}
	rows := []string{ColumnHeader(col, inner)}
	if !col.Collapsed {
		shown := col.Cards
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		for _, c := range shown {
			rows = append(rows, CardRow(c, inner))
		}
		if hidden := len(col.Cards) - len(shown); hidden > 0 {
			rows = append(rows, styleMuted().Render(fmt.Sprintf("+%d more", hidden)))
		}
		if col.ShowNewCardInput {
			rows = append(rows, styleMuted().Render("+ new card…"))
		}
	}
	return lipgloss.NewStyle().Width(width).PaddingRight(1).Render(strings.Join(rows, "\n"))
}

// ColumnHeader is the one-row title bar of col: title and card count on the column colour.
func ColumnHeader(col model.Column, width int) string {
	title := fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))
	if col.Collapsed {
		title = "▸ " + title
	}
	return columnHeaderStyle(col.BackgroundColor).Width(width).Render(Truncate(title, width-2))
}

// CardRow is a card's one-line form: "#id title", then its badges if they fit.
func CardRow(c model.Card, width int) string {
	title := fmt.Sprintf("#%d %s", c.ID, c.Title)
	if c.Type == model.CardTypeBug {
		title = lipgloss.NewStyle().Foreground(colorBug).Render("✗") + " " + title
	}
	row := title
	if badges := CardBadges(c); badges != "" {
		row += " " + styleMuted().Render(badges)
	}
	return Truncate(row, width)
}

// CardBadges summarises checklist progress, comments and assignees.
func CardBadges(c model.Card) string {
	var parts []string
	if n := len(c.Todos); n > 0 {
		parts = append(parts, fmt.Sprintf("☐%d/%d", n-c.OpenTodos(), n))
	}
	if n := c.OpenBugs(); n > 0 {
		parts = append(parts, fmt.Sprintf("bug:%d", n))
	}
	if n := len(c.Comments); n > 0 {
		parts = append(parts, fmt.Sprintf("✎%d", n))
	}
	for _, a := range c.Assignees {
		parts = append(parts, "@"+a.Username)
	}
	return strings.Join(parts, " ")
}

// LineSummary lists the card count of every non-empty column of line, each painted in the
// column's colour.
func LineSummary(doc model.Document, line model.Line) string {
	cols, _ := board.ColumnsOfLine(doc, line)
	var parts []string
	for _, col := range cols {
		if len(col.Cards) == 0 {
			continue
		}
		parts = append(parts, columnHeaderStyle(col.BackgroundColor).Bold(false).Render(fmt.Sprintf("%s %d", col.Title, len(col.Cards))))
	}
	return strings.Join(parts, " ")
}

// Truncate cuts s to width terminal cells, ANSI sequences included, ending in "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, "…")
}

func Members(doc model.Document) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Members"))
	b.WriteString("\n")
	if len(doc.Board.Members) == 0 {
		b.WriteString(styleMuted().Render("(none)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, m := range doc.Board.Members {
		line := "@" + m.Username
		if m.Username == doc.Client.CurrentUsername {
			line += lipgloss.NewStyle().Foreground(colorAccent).Render(" (you)")
		}
		if m.ImageURL != "" {
			line += "  " + styleMuted().Render(m.ImageURL)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
