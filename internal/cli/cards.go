package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
	"kaiser-cli/internal/render"
	"kaiser-cli/internal/store"

	"github.com/spf13/cobra"
)

// parseCardID accepts "12" and "#12".
func parseCardID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || n <= 0 {
		return 0, board.InvalidArgumentError{Field: "card id", Reason: fmt.Sprintf("%q is not a card number", s)}
	}
	return n, nil
}

func parseIndex(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, board.InvalidArgumentError{Field: field, Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return n, nil
}

// locatedCard is a card together with where it lives.
type locatedCard struct {
	ColumnID string     `json:"columnId"`
	Index    int        `json:"index"`
	Card     model.Card `json:"card"`
}

func locate(doc model.Document, cardID int) (locatedCard, error) {
	col, card, ok := board.LocateCard(doc, cardID)
	if !ok {
		return locatedCard{}, board.NotFoundError{Kind: "card", ID: strconv.Itoa(cardID)}
	}
	return locatedCard{ColumnID: col.ID, Index: board.FindCardIndex(col, cardID), Card: card}, nil
}

func pickCard(cardID int) func(model.Document) (any, error) {
	return func(doc model.Document) (any, error) {
		return locate(doc, cardID)
	}
}

// dispatchOnCard resolves the card's column, builds the action from it and dispatches it.
func dispatchOnCard(cmd *cobra.Command, app *App, cardArg string, build func(lc locatedCard) (board.Action, error), pick func(cardID int) func(model.Document) (any, error)) error {
	cardID, err := parseCardID(cardArg)
	if err != nil {
		return writeErr(cmd, err)
	}
	return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
		lc, err := locate(st.State(), cardID)
		if err != nil {
			return writeErr(cmd, err)
		}
		a, err := build(lc)
		if err != nil {
			return writeErr(cmd, err)
		}
		doc, err := st.Dispatch(ctx, a)
		if err != nil {
			return writeErr(cmd, err)
		}
		var out any = doc
		if pick != nil {
			if out, err = pick(cardID)(doc); err != nil {
				return writeErr(cmd, err)
			}
		}
		return writeOut(cmd, app, map[string]any{"data": out})
	})
}

func newCardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Card commands (cards are addressed by their board-wide number)",
	}
	cmd.AddCommand(newCardsListCmd(app))
	cmd.AddCommand(newCardsShowCmd(app))
	cmd.AddCommand(&cobra.Command{
		Use:   "new <column-id> <title>",
		Short: "Append a new card to a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := board.NewCard{ColumnID: args[0], Title: strings.Join(args[1:], " ")}
			return dispatch(cmd, app, a, func(doc model.Document) (any, error) {
				return locate(doc, doc.Settings.CurrentCardNumber)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deleted locatedCard
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				deleted = lc
				return board.DeleteCard{ColumnID: lc.ColumnID, CardID: lc.Card.ID}, nil
			}, func(int) func(model.Document) (any, error) {
				return func(model.Document) (any, error) { return map[string]any{"deleted": deleted}, nil }
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "title <card-id> <title>",
		Short: "Rename a card (leaves edit mode)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return board.SetCardTitle{ColumnID: lc.ColumnID, CardID: lc.Card.ID, Title: title, EditMode: false}, nil
			}, pickCard)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "type <card-id> <task|bug>",
		Short: "Change a card's type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := strings.ToLower(strings.TrimSpace(args[1]))
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				if typ != model.CardTypeTask && typ != model.CardTypeBug {
					return nil, board.InvalidArgumentError{Field: "card type", Reason: fmt.Sprintf("%q (expected task|bug)", args[1])}
				}
				return board.SetCardType{ColumnID: lc.ColumnID, CardID: lc.Card.ID, CardType: typ}, nil
			}, pickCard)
		},
	})

	var off bool
	editCmd := &cobra.Command{
		Use:   "edit <card-id>",
		Short: "Put a card into (or with --off, out of) edit mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return board.SetCardEditMode{ColumnID: lc.ColumnID, CardID: lc.Card.ID, EditMode: !off}, nil
			}, pickCard)
		},
	}
	editCmd.Flags().BoolVar(&off, "off", false, "Leave edit mode")
	cmd.AddCommand(editCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <column-id> <from-index> <to-index>",
		Short: "Move the card at from-index to to-index within a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex("from-index", args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			to, err := parseIndex("to-index", args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			if from == to {
				return withDocument(cmd, app, pickColumn(args[0]))
			}
			return dispatch(cmd, app, board.ReorderCard{ColumnID: args[0], DragIndex: from, HoverIndex: to}, pickColumn(args[0]))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "move <card-id> <to-column-id>",
		Short: "Move a card to the end of another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return board.MoveCard{FromColumnID: lc.ColumnID, ToColumnID: args[1], CardID: lc.Card.ID, CardIndex: lc.Index}, nil
			}, pickCard)
		},
	})
	return cmd
}

func newCardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [column-id]",
		Short: "List cards, optionally for one column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				doc := st.State()
				cols := doc.Columns
				if len(args) == 1 {
					c, ok := board.FindColumn(doc, args[0])
					if !ok {
						return writeErr(cmd, board.NotFoundError{Kind: "column", ID: args[0]})
					}
					cols = []model.Column{c}
				}
				out := make([]locatedCard, 0)
				for _, c := range cols {
					for i, card := range c.Cards {
						out = append(out, locatedCard{ColumnID: c.ID, Index: i, Card: card})
					}
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
}

func newCardsShowCmd(app *App) *cobra.Command {
	var text bool
	var width int

	cmd := &cobra.Command{
		Use:   "show <card-id>",
		Short: "Show one card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := parseCardID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				doc := st.State()
				lc, err := locate(doc, cardID)
				if err != nil {
					return writeErr(cmd, err)
				}
				if text {
					render.ApplyColorProfile(false)
					s, err := render.Card(doc, lc.ColumnID, cardID, width)
					if err != nil {
						return writeErr(cmd, err)
					}
					_, err = fmt.Fprint(cmd.OutOrStdout(), s)
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": lc})
			})
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "Render the card as text")
	cmd.Flags().IntVar(&width, "width", 80, "Render width for --text")
	return cmd
}
