package tui

import (
	"fmt"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
	"kaiser-cli/internal/render"

	"github.com/charmbracelet/lipgloss"
)

// cardRows is the height of a card on screen: title row plus badge row. Two rows give the drag
// protocol a real midpoint to cross.
const cardRows = 2

// region is a half-open screen rectangle in content coordinates (before scrolling).
type region struct {
	x0, x1 int
	y0, y1 int
}

func (r region) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

type cardHit struct {
	region
	columnID string
	cardID   int
	index    int
}

type columnHit struct {
	region
	columnID string
	headerY  int
}

type lineHit struct {
	region
	index int
}

// frame is one laid-out board: the rendered rows and where every card, column and line header
// landed. Update rebuilds it from the document to resolve mouse positions.
type frame struct {
	rows    []string
	cards   []cardHit
	columns []columnHit
	lines   []lineHit
}

func (f frame) cardAt(x, y int) (cardHit, bool) {
	for _, c := range f.cards {
		if c.contains(x, y) {
			return c, true
		}
	}
	return cardHit{}, false
}

func (f frame) columnAt(x, y int) (columnHit, bool) {
	for _, c := range f.columns {
		if c.contains(x, y) {
			return c, true
		}
	}
	return columnHit{}, false
}

func (f frame) lineAt(x, y int) (lineHit, bool) {
	for _, l := range f.lines {
		if l.contains(x, y) {
			return l, true
		}
	}
	return lineHit{}, false
}

func (f frame) findCard(columnID string, index int) (cardHit, bool) {
	for _, c := range f.cards {
		if c.columnID == columnID && c.index == index {
			return c, true
		}
	}
	return cardHit{}, false
}

var (
	styleFocusCard = lipgloss.NewStyle().Reverse(true)
	styleDragCard  = lipgloss.NewStyle().Bold(true).Underline(true)
	styleFocusLine = lipgloss.NewStyle().Bold(true)
)

func (m appModel) boardFrame() frame {
	var f frame
	doc := m.doc
	title := doc.Board.Title
	if u := doc.Client.CurrentUsername; u != "" {
		title += "  @" + u
	}
	f.rows = append(f.rows, lipgloss.NewStyle().Bold(true).Render(title))
	y := 1

	for li, line := range doc.Lines {
		marker := "  "
		if li == m.lineIdx {
			marker = styleFocusLine.Render("› ")
		}
		f.rows = append(f.rows, render.Truncate(marker+render.LineHeader(doc, line), m.width))
		f.lines = append(f.lines, lineHit{region: region{0, m.width, y, y + 1}, index: li})
		y++

		limit := render.CardLimit(line)
		if limit < 0 {
			continue
		}
		cols, _ := board.ColumnsOfLine(doc, line)
		if len(cols) == 0 {
			f.rows = append(f.rows, "  (no columns)")
			y++
			continue
		}
		cw := render.ColumnWidth(m.width, len(cols))
		blocks := make([]string, 0, len(cols))
		height := 0
		first := len(f.columns)
		for ci, col := range cols {
			x0 := ci * cw
			rows := m.columnRows(&f, li, ci, col, limit, cw, x0, y)
			if len(rows) > height {
				height = len(rows)
			}
			blocks = append(blocks, lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n")))
			f.columns = append(f.columns, columnHit{region: region{x0, x0 + cw, y, y}, columnID: col.ID, headerY: y})
		}
		// A drop anywhere in the line's column area counts, not just on cards.
		for i := first; i < len(f.columns); i++ {
			f.columns[i].y1 = y + height
		}
		f.rows = append(f.rows, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, blocks...), "\n")...)
		y += height
	}
	return f
}

func (m appModel) columnRows(f *frame, li, ci int, col model.Column, limit, cw, x0, y int) []string {
	inner := cw - 1
	rows := []string{render.ColumnHeader(col, inner)}
	if col.Collapsed {
		return rows
	}
	shown := col.Cards
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	focusedCol := li == m.lineIdx && ci == m.colIdx
	for i, c := range shown {
		top := y + 1 + i*cardRows
		f.cards = append(f.cards, cardHit{
			region:   region{x0, x0 + cw, top, top + cardRows},
			columnID: col.ID,
			cardID:   c.ID,
			index:    i,
		})
		titleRow := render.Truncate(fmt.Sprintf("#%d %s", c.ID, c.Title), inner)
		switch {
		case m.drag.Active && m.drag.CardID == c.ID:
			titleRow = styleDragCard.Render("≡ " + render.Truncate(fmt.Sprintf("#%d %s", c.ID, c.Title), inner-2))
		case focusedCol && i == m.cardIdx:
			titleRow = styleFocusCard.Render(titleRow)
		}
		rows = append(rows, titleRow, "  "+render.Truncate(render.CardBadges(c), inner-2))
	}
	if hidden := len(col.Cards) - len(shown); hidden > 0 {
		rows = append(rows, fmt.Sprintf("+%d more", hidden))
	}
	if col.ShowNewCardInput {
		if m.inputColumn == col.ID && m.input.Focused() {
			rows = append(rows, render.Truncate(m.input.View(), inner))
		} else {
			rows = append(rows, "+ new card…")
		}
	}
	return rows
}
