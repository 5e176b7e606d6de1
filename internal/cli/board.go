package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/model"
	"kaiser-cli/internal/publish"
	"kaiser-cli/internal/render"
	"kaiser-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Whole-board commands",
	}
	cmd.AddCommand(newBoardShowCmd(app))
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Replace the board with its seed (sample layout for the default board, empty otherwise)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ResetBoard{}, nil)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sample",
		Short: "Replace the board with the sample layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.LoadSampleData{}, nil)
		},
	})
	cmd.AddCommand(newBoardExportCmd(app))
	cmd.AddCommand(newBoardImportCmd(app))
	cmd.AddCommand(newBoardDispatchCmd(app))
	cmd.AddCommand(newBoardPublishCmd(app))
	cmd.AddCommand(&cobra.Command{
		Use:   "badges",
		Short: "Toggle per-column card counts on collapsed lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ToggleLineSummaryBadges{}, func(doc model.Document) (any, error) {
				return doc.Settings, nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "actions",
		Short: "List the action types accepted by 'board dispatch'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": board.ActionTypes()})
		},
	})
	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	var text bool
	var width int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the board document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				doc := st.State()
				if text {
					render.ApplyColorProfile(false)
					_, err := fmt.Fprint(cmd.OutOrStdout(), render.Board(doc, width))
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": doc, "meta": map[string]any{"key": st.Key(), "storageKey": st.StorageKey()}})
			})
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "Render the board as text instead of structured output")
	cmd.Flags().IntVar(&width, "width", 120, "Render width for --text")
	return cmd
}

func newBoardExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the raw board snapshot as JSON (importable with 'board import')",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				b, err := json.MarshalIndent(st.State(), "", "  ")
				if err != nil {
					return writeErr(cmd, err)
				}
				b = append(b, '\n')
				if out == "" || out == "-" {
					_, err = cmd.OutOrStdout().Write(b)
					return err
				}
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out, "bytes": len(b)}})
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newBoardImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the board with a snapshot produced by 'board export'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readArgFile(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			var doc *model.Document
			if err := json.Unmarshal(b, &doc); err != nil {
				return writeErr(cmd, fmt.Errorf("parse snapshot: %w", err))
			}
			if doc == nil {
				return writeErr(cmd, errors.New("parse snapshot: snapshot is null"))
			}
			return dispatch(cmd, app, board.ReplaceDocument{State: *doc}, nil)
		},
	}
}

func newBoardDispatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <action-json|->",
		Short: `Apply a raw action, e.g. '{"type":"NEW_CARD","columnId":"dev/todo","title":"x"}'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if args[0] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				raw = b
			}
			a, err := board.DecodeAction(raw)
			if err != nil {
				return writeErr(cmd, err)
			}
			return dispatch(cmd, app, a, nil)
		},
	}
}

func newBoardPublishCmd(app *App) *cobra.Command {
	var to string
	var opt publish.WriteOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the board as Markdown or HTML (an index plus one page per card)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				res, err := publish.WriteBoard(st.State(), to, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory (required)")
	cmd.Flags().BoolVar(&opt.IncludeCollapsed, "include-collapsed", false, "Also publish collapsed lines")
	cmd.Flags().BoolVar(&opt.IncludeComments, "comments", false, "Include comment threads on card pages")
	cmd.Flags().BoolVar(&opt.Overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().BoolVar(&opt.HTML, "html", false, "Write HTML pages instead of Markdown")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func readArgFile(cmd *cobra.Command, path string) ([]byte, error) {
	if strings.TrimSpace(path) == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Saved boards in the current namespace",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved board keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := openBackend(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = backend.Close() }()
			keys, err := store.List(ctx, backend, app.Namespace)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": keys})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a saved board snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Board = args[0]
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				if err := st.Delete(ctx); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": st.Key()}})
			})
		},
	})
	return cmd
}
