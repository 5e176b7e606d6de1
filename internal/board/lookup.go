package board

import (
	"fmt"
	"strings"

	"kaiser-cli/internal/model"
)

// Lookups are linear scans by id. Index forms return -1 when the id is absent; entity forms
// return ok=false. When ids collide (two lines created from titles with the same slug) the first
// match wins.

func FindLineIndex(doc model.Document, lineID string) int {
	for i := range doc.Lines {
		if doc.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func FindLine(doc model.Document, lineID string) (model.Line, bool) {
	if i := FindLineIndex(doc, lineID); i >= 0 {
		return doc.Lines[i], true
	}
	return model.Line{}, false
}

func FindColumnIndex(doc model.Document, columnID string) int {
	for i := range doc.Columns {
		if doc.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}

func FindColumn(doc model.Document, columnID string) (model.Column, bool) {
	if i := FindColumnIndex(doc, columnID); i >= 0 {
		return doc.Columns[i], true
	}
	return model.Column{}, false
}

func FindCardIndex(col model.Column, cardID int) int {
	for i := range col.Cards {
		if col.Cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

func FindCard(col model.Column, cardID int) (model.Card, bool) {
	if i := FindCardIndex(col, cardID); i >= 0 {
		return col.Cards[i], true
	}
	return model.Card{}, false
}

// LocateCard searches every column for cardID. Card ids are board-unique, so at most one column matches.
func LocateCard(doc model.Document, cardID int) (model.Column, model.Card, bool) {
	for _, col := range doc.Columns {
		if c, ok := FindCard(col, cardID); ok {
			return col, c, true
		}
	}
	return model.Column{}, model.Card{}, false
}

func FindTodoIndex(card model.Card, todoID string) int {
	for i := range card.Todos {
		if card.Todos[i].ID == todoID {
			return i
		}
	}
	return -1
}

func FindTodo(card model.Card, todoID string) (model.Todo, bool) {
	if i := FindTodoIndex(card, todoID); i >= 0 {
		return card.Todos[i], true
	}
	return model.Todo{}, false
}

func FindBugIndex(card model.Card, bugID string) int {
	for i := range card.Bugs {
		if card.Bugs[i].ID == bugID {
			return i
		}
	}
	return -1
}

func FindBug(card model.Card, bugID string) (model.Bug, bool) {
	if i := FindBugIndex(card, bugID); i >= 0 {
		return card.Bugs[i], true
	}
	return model.Bug{}, false
}

func FindCommentIndex(card model.Card, commentID string) int {
	for i := range card.Comments {
		if card.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}

func FindComment(card model.Card, commentID string) (model.Comment, bool) {
	if i := FindCommentIndex(card, commentID); i >= 0 {
		return card.Comments[i], true
	}
	return model.Comment{}, false
}

func FindAssigneeIndex(card model.Card, username string) int {
	for i := range card.Assignees {
		if card.Assignees[i].Username == username {
			return i
		}
	}
	return -1
}

func FindMemberIndex(doc model.Document, username string) int {
	for i := range doc.Board.Members {
		if doc.Board.Members[i].Username == username {
			return i
		}
	}
	return -1
}

func FindMember(doc model.Document, username string) (model.Member, bool) {
	if i := FindMemberIndex(doc, username); i >= 0 {
		return doc.Board.Members[i], true
	}
	return model.Member{}, false
}

// ColumnsOfLine resolves line.ColumnIDs in order. Ids without a matching column are returned in
// missing; a well-formed document has none.
func ColumnsOfLine(doc model.Document, line model.Line) (cols []model.Column, missing []string) {
	cols = make([]model.Column, 0, len(line.ColumnIDs))
	for _, id := range line.ColumnIDs {
		col, ok := FindColumn(doc, id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		cols = append(cols, col)
	}
	return cols, missing
}

// Validate reports the first line whose ColumnIDs reference a column absent from doc. Lanes are
// the only cross-reference in a document; orphaned columns are allowed.
func Validate(doc model.Document) error {
	for _, line := range doc.Lines {
		if _, missing := ColumnsOfLine(doc, line); len(missing) > 0 {
			return InvalidArgumentError{
				Field:  "document",
				Reason: fmt.Sprintf("line %s references missing columns %s", line.ID, strings.Join(missing, ", ")),
			}
		}
	}
	return nil
}
