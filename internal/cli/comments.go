package cli

import (
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Card comment commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list <card-id>",
		Short: "List a card's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := parseCardID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withDocument(cmd, app, pickComments(cardID))
		},
	})

	var text string
	addCmd := &cobra.Command{
		Use:   "add <card-id>",
		Short: "Comment on a card as the current user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(text) == "" {
				return writeErr(cmd, board.InvalidArgumentError{Field: "text", Reason: "must not be empty"})
			}
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return board.NewComment{ColumnID: lc.ColumnID, CardID: lc.Card.ID, Text: text}, nil
			}, func(cardID int) func(model.Document) (any, error) {
				return func(doc model.Document) (any, error) {
					lc, err := locate(doc, cardID)
					if err != nil {
						return nil, err
					}
					return lc.Card.Comments[len(lc.Card.Comments)-1], nil
				}
			})
		},
	}
	addCmd.Flags().StringVarP(&text, "text", "t", "", "Comment text (markdown)")
	_ = addCmd.MarkFlagRequired("text")
	cmd.AddCommand(addCmd)
	return cmd
}

func pickComments(cardID int) func(model.Document) (any, error) {
	return func(doc model.Document) (any, error) {
		lc, err := locate(doc, cardID)
		if err != nil {
			return nil, err
		}
		return lc.Card.Comments, nil
	}
}
