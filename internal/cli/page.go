package cli

import (
	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"

	"github.com/spf13/cobra"
)

func pickPage(doc model.Document) (any, error) {
	return doc.Client.Page, nil
}

// newPageCmd switches the persisted client page; the TUI opens on whatever page is stored.
func newPageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Select the page the board opens on",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "board",
		Short: "Open on the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ShowBoardPage{}, pickPage)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "card <card-id>",
		Short: "Open on one card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnCard(cmd, app, args[0], func(lc locatedCard) (board.Action, error) {
				return board.ShowCardPage{CardID: lc.Card.ID, ColumnID: lc.ColumnID}, nil
			}, func(int) func(model.Document) (any, error) { return pickPage })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "members",
		Short: "Open on the member list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ShowMembersPage{}, pickPage)
		},
	})
	return cmd
}
