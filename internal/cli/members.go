package cli

import (
	"context"
	"fmt"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
	"kaiser-cli/internal/render"
	"kaiser-cli/internal/store"

	"github.com/spf13/cobra"
)

func pickMember(username string) func(model.Document) (any, error) {
	return func(doc model.Document) (any, error) {
		m, ok := board.FindMember(doc, username)
		if !ok {
			return nil, board.NotFoundError{Kind: "member", ID: username}
		}
		return m, nil
	}
}

func pickMembers(doc model.Document) (any, error) {
	return doc.Board.Members, nil
}

func newMembersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Board member commands",
	}

	var text bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List board members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !text {
				return withDocument(cmd, app, pickMembers)
			}
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				render.ApplyColorProfile(false)
				_, err := fmt.Fprint(cmd.OutOrStdout(), render.Members(st.State()))
				return err
			})
		},
	}
	listCmd.Flags().BoolVar(&text, "text", false, "Render the member list as text")
	cmd.AddCommand(listCmd)

	var image string
	addCmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Add a board member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return writeErr(cmd, board.InvalidArgumentError{Field: "username", Reason: "must not be empty"})
			}
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				doc, err := st.Dispatch(ctx, board.NewMember{Username: username})
				if err != nil {
					return writeErr(cmd, err)
				}
				if image != "" {
					if doc, err = st.Dispatch(ctx, board.SetMemberImageURL{Username: username, ImageURL: image}); err != nil {
						return writeErr(cmd, err)
					}
				}
				out, err := pickMember(username)(doc)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
	addCmd.Flags().StringVar(&image, "image", "", "Avatar URL (defaults to the placeholder image)")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "image <username> <url>",
		Short: "Set a member's avatar URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.SetMemberImageURL{Username: args[0], ImageURL: args[1]}, pickMember(args[0]))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <username>",
		Short: "Remove a board member (card assignments are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.DeleteMember{Username: args[0]}, pickMembers)
		},
	})
	return cmd
}
