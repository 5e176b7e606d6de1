package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
)

type RenderOptions struct {
	// IncludeCollapsed publishes lines that are collapsed on the board too.
	IncludeCollapsed bool
	// IncludeComments adds each card's comment thread to its page.
	IncludeComments bool
	// HTML makes index links point at .html card pages.
	HTML bool
}

func (o RenderOptions) ext() string {
	if o.HTML {
		return ".html"
	}
	return ".md"
}

// RenderCardMarkdown renders one card page.
func RenderCardMarkdown(doc model.Document, cardID int, opt RenderOptions) (string, error) {
	col, card, ok := board.LocateCard(doc, cardID)
	if !ok {
		return "", board.NotFoundError{Kind: "card", ID: fmt.Sprint(cardID)}
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn(fmt.Sprintf("# #%d %s", card.ID, strings.TrimSpace(card.Title)))
	writeLn("")

	lineTitle := col.LineID
	if l, ok := board.FindLine(doc, col.LineID); ok {
		lineTitle = strings.TrimSpace(l.Title)
	}

	writeLn("## Meta")
	writeLn("")
	writeLn("- Type: " + card.Type)
	if lineTitle != "" {
		writeLn("- Line: " + lineTitle)
	}
	writeLn("- Column: " + strings.TrimSpace(col.Title) + " (" + col.ID + ")")
	if len(card.Assignees) > 0 {
		names := make([]string, 0, len(card.Assignees))
		for _, a := range card.Assignees {
			names = append(names, "@"+a.Username)
		}
		writeLn("- Assignees: " + strings.Join(names, ", "))
	}

	if len(card.Todos) > 0 {
		writeLn("")
		writeLn("## Todos")
		writeLn("")
		for _, t := range card.Todos {
			writeLn(checkbox(t.Done) + " " + strings.TrimSpace(t.Title))
		}
	}
	if len(card.Bugs) > 0 {
		writeLn("")
		writeLn("## Bugs")
		writeLn("")
		for _, b := range card.Bugs {
			writeLn(checkbox(b.Done) + " " + strings.TrimSpace(b.Title))
		}
	}

	if opt.IncludeComments && len(card.Comments) > 0 {
		writeLn("")
		writeLn("## Comments")
		writeLn("")
		for _, c := range card.Comments {
			author := strings.TrimSpace(c.Username)
			if author == "" {
				author = "anonymous"
			}
			writeLn("### @" + author + " (" + c.CreatedAt.UTC().Format(time.RFC3339) + ")")
			writeLn("")
			body := strings.TrimSpace(c.Text)
			if body == "" {
				body = "(empty)"
			}
			writeLn(body)
			writeLn("")
		}
	}

	return buf.String(), nil
}

func checkbox(done bool) string {
	if done {
		return "- [x]"
	}
	return "- [ ]"
}

// RenderBoardIndexMarkdown renders the board overview: one section per line, one list per column,
// each card linking to its page under cards/.
func RenderBoardIndexMarkdown(doc model.Document, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(doc.Board.Title)
	if title == "" {
		title = doc.Board.ID
	}
	writeLn("# " + title)
	writeLn("")

	if len(doc.Board.Members) > 0 {
		names := make([]string, 0, len(doc.Board.Members))
		for _, m := range doc.Board.Members {
			names = append(names, "@"+m.Username)
		}
		writeLn("Members: " + strings.Join(names, ", "))
		writeLn("")
	}

	for _, l := range publishedLines(doc, opt) {
		writeLn("## " + strings.TrimSpace(l.Title))
		writeLn("")
		cols, _ := board.ColumnsOfLine(doc, l)
		for _, c := range cols {
			writeLn(fmt.Sprintf("### %s (%d)", strings.TrimSpace(c.Title), len(c.Cards)))
			writeLn("")
			for _, card := range c.Cards {
				renderCardLine(&buf, card, opt.ext())
			}
			if len(c.Cards) > 0 {
				writeLn("")
			}
		}
	}
	return buf.String()
}

func renderCardLine(buf *bytes.Buffer, card model.Card, ext string) {
	typ := ""
	if card.Type == model.CardTypeBug {
		typ = " (bug)"
	}
	fmt.Fprintf(buf, "- [#%d %s](cards/%d%s)%s\n", card.ID, strings.TrimSpace(card.Title), card.ID, ext, typ)
}

func publishedLines(doc model.Document, opt RenderOptions) []model.Line {
	out := make([]model.Line, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		if !l.Expanded && !opt.IncludeCollapsed {
			continue
		}
		out = append(out, l)
	}
	return out
}
