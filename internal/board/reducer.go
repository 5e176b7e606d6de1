package board

import (
	"log"
	"time"

	"kaiser-cli/internal/boardkey"
	"kaiser-cli/internal/model"

	"github.com/google/uuid"
)

// Reducer maps (document, action) to the next document.
//
// Apply never modifies its input: every touched path is copied and every untouched branch is
// shared with the input. The only impure inputs are Now and NewToken, which tests replace.
type Reducer struct {
	// Seed builds the document ResetBoard returns. Nil means an empty board keeping the current title.
	Seed func(title string) model.Document
	// Now stamps new comments.
	Now func() time.Time
	// NewToken mints ids for todos, bugs and comments.
	NewToken func() string
	// Logger receives business-rule rejections. Nil discards them.
	Logger *log.Logger
}

func NewReducer() *Reducer {
	return &Reducer{}
}

func (r *Reducer) now() time.Time {
	if r != nil && r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func (r *Reducer) token() string {
	if r != nil && r.NewToken != nil {
		return r.NewToken()
	}
	return newToken()
}

func (r *Reducer) logf(format string, args ...any) {
	if r != nil && r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// newToken returns a time-based UUID, falling back to a random one if the clock sequence
// cannot be initialised.
func newToken() string {
	if id, err := uuid.NewUUID(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Apply returns the document that results from a. On error the input document is returned
// unchanged alongside a NotFoundError, IndexError or InvalidArgumentError.
func (r *Reducer) Apply(doc model.Document, a Action) (model.Document, error) {
	switch a := a.(type) {
	case ResetBoard:
		if r != nil && r.Seed != nil {
			return r.Seed(doc.Board.Title), nil
		}
		return EmptyDocument(doc.Board.Title), nil
	case LoadSampleData:
		return SampleDocument(doc.Board.Title), nil
	case ReplaceDocument:
		next := a.State.Normalize()
		if err := Validate(next); err != nil {
			return doc, err
		}
		return next, nil
	case NewLine:
		return r.newLine(doc, a)
	case SetLineTitle:
		return updateLine(doc, a.LineID, func(l model.Line) model.Line {
			l.Title = a.Title
			return l
		})
	case ToggleLineExpanded:
		return updateLine(doc, a.LineID, func(l model.Line) model.Line {
			l.Expanded = !l.Expanded
			return l
		})
	case ToggleLineMaximised:
		return updateLine(doc, a.LineID, func(l model.Line) model.Line {
			l.Maximised = !l.Maximised
			return l
		})
	case DeleteLine:
		i := FindLineIndex(doc, a.LineID)
		if i < 0 {
			return doc, errNotFound("line", a.LineID)
		}
		doc.Lines = removeAt(doc.Lines, i)
		return doc, nil
	case ExpandAllLines:
		return setAllExpanded(doc, true), nil
	case CollapseAllLines:
		return setAllExpanded(doc, false), nil
	case ToggleColumnCollapsed:
		return updateColumn(doc, a.ColumnID, func(c model.Column) (model.Column, error) {
			c.Collapsed = !c.Collapsed
			return c, nil
		})
	case SetColumnShowNewCardInput:
		return updateColumn(doc, a.ColumnID, func(c model.Column) (model.Column, error) {
			c.ShowNewCardInput = a.Show
			return c, nil
		})
	case NewCard:
		return newCard(doc, a)
	case DeleteCard:
		return updateColumn(doc, a.ColumnID, func(c model.Column) (model.Column, error) {
			i := FindCardIndex(c, a.CardID)
			if i < 0 {
				return c, errNotFound("card", a.CardID)
			}
			c.Cards = removeAt(c.Cards, i)
			return c, nil
		})
	case SetCardTitle:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			c.Title = a.Title
			c.EditMode = a.EditMode
			return c, nil
		})
	case SetCardType:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			c.Type = a.CardType
			return c, nil
		})
	case SetCardEditMode:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			c.EditMode = a.EditMode
			return c, nil
		})
	case ReorderCard:
		return reorderCard(doc, a)
	case MoveCard:
		return moveCard(doc, a)
	case NewTodo:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			c.Todos = appendCopy(c.Todos, model.Todo{ID: r.token(), Title: a.Title})
			return c, nil
		})
	case ToggleTodoDone:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			i := FindTodoIndex(c, a.TodoID)
			if i < 0 {
				return c, errNotFound("todo", a.TodoID)
			}
			t := c.Todos[i]
			t.Done = a.Done
			c.Todos = replaceAt(c.Todos, i, t)
			return c, nil
		})
	case DeleteTodo:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			i := FindTodoIndex(c, a.TodoID)
			if i < 0 {
				return c, errNotFound("todo", a.TodoID)
			}
			c.Todos = removeAt(c.Todos, i)
			return c, nil
		})
	case NewBug:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			c.Bugs = appendCopy(c.Bugs, model.Bug{ID: r.token(), Title: a.Title})
			return c, nil
		})
	case ToggleBugDone:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			i := FindBugIndex(c, a.BugID)
			if i < 0 {
				return c, errNotFound("bug", a.BugID)
			}
			b := c.Bugs[i]
			b.Done = a.Done
			c.Bugs = replaceAt(c.Bugs, i, b)
			return c, nil
		})
	case DeleteBug:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			i := FindBugIndex(c, a.BugID)
			if i < 0 {
				return c, errNotFound("bug", a.BugID)
			}
			c.Bugs = removeAt(c.Bugs, i)
			return c, nil
		})
	case NewComment:
		username := doc.Client.CurrentUsername
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			c.Comments = appendCopy(c.Comments, model.Comment{
				ID:        r.token(),
				Username:  username,
				Text:      a.Text,
				CreatedAt: r.now(),
			})
			return c, nil
		})
	case AddCardAssignee:
		if FindMemberIndex(doc, a.Username) < 0 {
			r.logf("ignoring assignee %q on card %d: not a board member", a.Username, a.CardID)
			return doc, nil
		}
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			c.Assignees = appendCopy(c.Assignees, model.Assignee{Username: a.Username})
			return c, nil
		})
	case DeleteAssignee:
		return updateCard(doc, a.ColumnID, a.CardID, func(c model.Card) (model.Card, error) {
			i := FindAssigneeIndex(c, a.Username)
			if i < 0 {
				return c, errNotFound("assignee", a.Username)
			}
			c.Assignees = removeAt(c.Assignees, i)
			return c, nil
		})
	case NewMember:
		doc.Board.Members = appendCopy(doc.Board.Members, model.Member{
			Username: a.Username,
			ImageURL: MemberPlaceholderImage,
		})
		return doc, nil
	case SetMemberImageURL:
		i := FindMemberIndex(doc, a.Username)
		if i < 0 {
			return doc, errNotFound("member", a.Username)
		}
		m := doc.Board.Members[i]
		m.ImageURL = a.ImageURL
		doc.Board.Members = replaceAt(doc.Board.Members, i, m)
		return doc, nil
	case DeleteMember:
		i := FindMemberIndex(doc, a.Username)
		if i < 0 {
			return doc, errNotFound("member", a.Username)
		}
		doc.Board.Members = removeAt(doc.Board.Members, i)
		return doc, nil
	case ToggleLineSummaryBadges:
		doc.Settings.ShowLineSummaryBadges = !doc.Settings.ShowLineSummaryBadges
		return doc, nil
	case SetCurrentUser:
		doc.Client.CurrentUsername = a.Username
		return doc, nil
	case ShowBoardPage:
		doc.Client.Page = model.Page{Current: model.PageBoard}
		return doc, nil
	case ShowCardPage:
		cardID := a.CardID
		columnID := a.ColumnID
		doc.Client.Page = model.Page{Current: model.PageCard, CardID: &cardID, ColumnID: &columnID}
		return doc, nil
	case ShowMembersPage:
		doc.Client.Page = model.Page{Current: model.PageMembers}
		return doc, nil
	case Unknown:
		return doc, nil
	default:
		return doc, nil
	}
}

func (r *Reducer) newLine(doc model.Document, a NewLine) (model.Document, error) {
	id := boardkey.Slugify(a.Title)
	if id == "" {
		return doc, InvalidArgumentError{Field: "title", Reason: "slug is empty"}
	}
	line := model.Line{
		ID:        id,
		Title:     a.Title,
		Type:      model.LineTypeComponent,
		Expanded:  true,
		ColumnIDs: make([]string, 0, len(newLineColumns)),
	}
	cols := make([]model.Column, 0, len(newLineColumns))
	for _, sc := range newLineColumns {
		colID := id + "/" + sc.suffix
		line.ColumnIDs = append(line.ColumnIDs, colID)
		cols = append(cols, model.Column{
			ID:              colID,
			LineID:          id,
			Title:           sc.title,
			BackgroundColor: sc.color,
			Cards:           []model.Card{},
		})
	}
	// New lines always land second, below the first lane.
	pos := min(1, len(doc.Lines))
	doc.Lines = insertAt(doc.Lines, pos, line)
	doc.Columns = appendCopy(doc.Columns, cols...)
	return doc, nil
}

func updateLine(doc model.Document, lineID string, fn func(model.Line) model.Line) (model.Document, error) {
	i := FindLineIndex(doc, lineID)
	if i < 0 {
		return doc, errNotFound("line", lineID)
	}
	doc.Lines = replaceAt(doc.Lines, i, fn(doc.Lines[i]))
	return doc, nil
}

func setAllExpanded(doc model.Document, expanded bool) model.Document {
	lines := make([]model.Line, len(doc.Lines))
	for i, l := range doc.Lines {
		l.Expanded = expanded
		lines[i] = l
	}
	doc.Lines = lines
	return doc
}

func updateColumn(doc model.Document, columnID string, fn func(model.Column) (model.Column, error)) (model.Document, error) {
	i := FindColumnIndex(doc, columnID)
	if i < 0 {
		return doc, errNotFound("column", columnID)
	}
	col, err := fn(doc.Columns[i])
	if err != nil {
		return doc, err
	}
	doc.Columns = replaceAt(doc.Columns, i, col)
	return doc, nil
}

func updateCard(doc model.Document, columnID string, cardID int, fn func(model.Card) (model.Card, error)) (model.Document, error) {
	return updateColumn(doc, columnID, func(col model.Column) (model.Column, error) {
		i := FindCardIndex(col, cardID)
		if i < 0 {
			return col, errNotFound("card", cardID)
		}
		card, err := fn(col.Cards[i])
		if err != nil {
			return col, err
		}
		col.Cards = replaceAt(col.Cards, i, card)
		return col, nil
	})
}

func newCard(doc model.Document, a NewCard) (model.Document, error) {
	if FindColumnIndex(doc, a.ColumnID) < 0 {
		return doc, errNotFound("column", a.ColumnID)
	}
	id := doc.Settings.CurrentCardNumber + 1
	doc.Settings.CurrentCardNumber = id
	return updateColumn(doc, a.ColumnID, func(c model.Column) (model.Column, error) {
		c.ShowNewCardInput = false
		c.Cards = appendCopy(c.Cards, model.Card{
			ID:    id,
			Title: a.Title,
			Type:  model.CardTypeTask,
		}.Normalize())
		return c, nil
	})
}

func reorderCard(doc model.Document, a ReorderCard) (model.Document, error) {
	return updateColumn(doc, a.ColumnID, func(c model.Column) (model.Column, error) {
		n := len(c.Cards)
		if a.DragIndex < 0 || a.DragIndex >= n {
			return c, IndexError{ColumnID: c.ID, Field: "dragIndex", Index: a.DragIndex, Len: n}
		}
		if a.HoverIndex < 0 || a.HoverIndex >= n {
			return c, IndexError{ColumnID: c.ID, Field: "hoverIndex", Index: a.HoverIndex, Len: n}
		}
		card := c.Cards[a.DragIndex]
		c.Cards = insertAt(removeAt(c.Cards, a.DragIndex), a.HoverIndex, card)
		return c, nil
	})
}

func moveCard(doc model.Document, a MoveCard) (model.Document, error) {
	fi := FindColumnIndex(doc, a.FromColumnID)
	if fi < 0 {
		return doc, errNotFound("column", a.FromColumnID)
	}
	ti := FindColumnIndex(doc, a.ToColumnID)
	if ti < 0 {
		return doc, errNotFound("column", a.ToColumnID)
	}
	from := doc.Columns[fi]
	if a.CardIndex < 0 || a.CardIndex >= len(from.Cards) {
		return doc, IndexError{ColumnID: from.ID, Field: "cardIndex", Index: a.CardIndex, Len: len(from.Cards)}
	}
	card := from.Cards[a.CardIndex]
	if card.ID != a.CardID {
		return doc, errNotFound("card", a.CardID)
	}

	cols := make([]model.Column, len(doc.Columns))
	copy(cols, doc.Columns)
	cols[fi].Cards = removeAt(from.Cards, a.CardIndex)
	// Destination order is always append; hover position is not carried across columns.
	cols[ti].Cards = appendCopy(cols[ti].Cards, card)
	doc.Columns = cols
	return doc, nil
}
