package cli

import (
	"fmt"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"

	"github.com/spf13/cobra"
)

// checklistKind selects between a card's todo list and its bug list; both share one command shape.
type checklistKind int

const (
	checklistTodos checklistKind = iota
	checklistBugs
)

func (k checklistKind) noun() string {
	if k == checklistBugs {
		return "bug"
	}
	return "todo"
}

func (k checklistKind) newAction(lc locatedCard, title string) board.Action {
	if k == checklistBugs {
		return board.NewBug{ColumnID: lc.ColumnID, CardID: lc.Card.ID, Title: title}
	}
	return board.NewTodo{ColumnID: lc.ColumnID, CardID: lc.Card.ID, Title: title}
}

func (k checklistKind) doneAction(lc locatedCard, id string, done bool) board.Action {
	if k == checklistBugs {
		return board.ToggleBugDone{ColumnID: lc.ColumnID, CardID: lc.Card.ID, BugID: id, Done: done}
	}
	return board.ToggleTodoDone{ColumnID: lc.ColumnID, CardID: lc.Card.ID, TodoID: id, Done: done}
}

func (k checklistKind) deleteAction(lc locatedCard, id string) board.Action {
	if k == checklistBugs {
		return board.DeleteBug{ColumnID: lc.ColumnID, CardID: lc.Card.ID, BugID: id}
	}
	return board.DeleteTodo{ColumnID: lc.ColumnID, CardID: lc.Card.ID, TodoID: id}
}

// items returns the card's list for this kind, as generic rows.
func (k checklistKind) items(c model.Card) []any {
	var out []any
	if k == checklistBugs {
		out = make([]any, 0, len(c.Bugs))
		for _, b := range c.Bugs {
			out = append(out, b)
		}
		return out
	}
	out = make([]any, 0, len(c.Todos))
	for _, t := range c.Todos {
		out = append(out, t)
	}
	return out
}

func (k checklistKind) pickItems(cardID int) func(model.Document) (any, error) {
	return func(doc model.Document) (any, error) {
		lc, err := locate(doc, cardID)
		if err != nil {
			return nil, err
		}
		return k.items(lc.Card), nil
	}
}

func (k checklistKind) pickLast(cardID int) func(model.Document) (any, error) {
	return func(doc model.Document) (any, error) {
		items, err := k.pickItems(cardID)(doc)
		if err != nil {
			return nil, err
		}
		list := items.([]any)
		if len(list) == 0 {
			return nil, fmt.Errorf("card %d has no %ss", cardID, k.noun())
		}
		return list[len(list)-1], nil
	}
}

func newChecklistCmd(app *App, kind checklistKind) *cobra.Command {
	noun := kind.noun()
	cmd := &cobra.Command{
		Use:   noun + "s",
		Short: fmt.Sprintf("Card %s checklist commands", noun),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list <card-id>",
		Short: fmt.Sprintf("List a card's %ss", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := parseCardID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withDocument(cmd, app, kind.pickItems(cardID))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <card-id> <title>",
		Short: fmt.Sprintf("Add a %s to a card", noun),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return kind.newAction(lc, title), nil
			}, kind.pickLast)
		},
	})
	for _, done := range []bool{true, false} {
		use, short := "done", "Mark a %s done"
		if !done {
			use, short = "undone", "Mark a %s not done"
		}
		cmd.AddCommand(&cobra.Command{
			Use:   use + " <card-id> <" + noun + "-id>",
			Short: fmt.Sprintf(short, noun),
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
					return kind.doneAction(lc, args[1], done), nil
				}, kind.pickItems)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <card-id> <" + noun + "-id>",
		Short: fmt.Sprintf("Delete a %s from a card", noun),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return kind.deleteAction(lc, args[1]), nil
			}, kind.pickItems)
		},
	})
	return cmd
}
