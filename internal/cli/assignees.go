package cli

import (
	"kaiser-cli/internal/board"

	"github.com/spf13/cobra"
)

func newAssigneesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignees",
		Short: "Card assignee commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <card-id> <username>",
		Short: "Assign a board member to a card (non-members are ignored)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return board.AddCardAssignee{ColumnID: lc.ColumnID, CardID: lc.Card.ID, Username: args[1]}, nil
			}, pickCard)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <card-id> <username>",
		Short: "Remove an assignee from a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return board.DeleteAssignee{ColumnID: lc.ColumnID, CardID: lc.Card.ID, Username: args[1]}, nil
			}, pickCard)
		},
	})
	return cmd
}
