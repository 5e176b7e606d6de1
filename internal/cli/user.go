package cli

import (
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"

	"github.com/spf13/cobra"
)

func pickUser(doc model.Document) (any, error) {
	return map[string]any{"username": doc.Client.CurrentUsername}, nil
}

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Current user commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the board's current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDocument(cmd, app, pickUser)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <username>",
		Short: "Set the board's current user (used as comment author)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.SetCurrentUser{Username: strings.TrimSpace(args[0])}, pickUser)
		},
	})
	return cmd
}
