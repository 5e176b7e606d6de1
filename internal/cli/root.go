package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/boardkey"
	"kaiser-cli/internal/config"
	"kaiser-cli/internal/format"
	"kaiser-cli/internal/kv"
	"kaiser-cli/internal/model"
	"kaiser-cli/internal/render"
	"kaiser-cli/internal/store"
	"kaiser-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Board      string
	Backend    string
	DSN        string
	Namespace  string
	User       string
	PrettyJSON bool
	Format     string
	Quiet      bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	// A broken config file should not lock users out of the CLI; flags and env still apply.
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	defaults := cfg.ApplyEnv()

	cmd := &cobra.Command{
		Use:          "kaiser",
		Short:        "Kaiser kanban board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive board
  kaiser

  # Work on another board (derived from a path or title)
  kaiser --board "/release-2"

  # Scriptable commands
  kaiser cards new dev/todo "Login page"
  kaiser cards move 1 dev/doing

  # Direct card lookup (shortcut for: kaiser cards show 1)
  kaiser 1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive board.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Board, "board", defaults.Board, "Board path or title (env KAISER_BOARD; default board when empty)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", defaults.Backend, "Storage backend: memory|file|sqlite|postgres|redis|s3 (env KAISER_BACKEND; default sqlite)")
	cmd.PersistentFlags().StringVar(&app.DSN, "dsn", defaults.DSN, "Backend location: directory, database path or URL (env KAISER_DSN)")
	cmd.PersistentFlags().StringVar(&app.Namespace, "namespace", defaults.Namespace, "Storage key namespace (env KAISER_NAMESPACE; default kaiser)")
	cmd.PersistentFlags().StringVar(&app.User, "user", defaults.Username, "Act as this username (env KAISER_USER)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KAISER_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVarP(&app.Quiet, "quiet", "q", false, "Do not log warnings to stderr")

	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newLinesCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newChecklistCmd(app, checklistTodos))
	cmd.AddCommand(newChecklistCmd(app, checklistBugs))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newAssigneesCmd(app))
	cmd.AddCommand(newMembersCmd(app))
	cmd.AddCommand(newUserCmd(app))
	cmd.AddCommand(newPageCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	render.ApplyColorProfile(false)
	return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
		return tui.Run(ctx, st)
	})
}

// openBackend resolves the backend kind and location from flags, falling back to the
// per-user data directory for local backends.
func openBackend(ctx context.Context, app *App) (kv.Backend, error) {
	kind, err := kv.ParseKind(app.Backend)
	if err != nil {
		return nil, err
	}
	dsn := strings.TrimSpace(app.DSN)
	if dsn == "" {
		dsn, err = config.DefaultDSN(string(kind))
		if err != nil {
			return nil, err
		}
	}
	if dsn == "" && kind != kv.KindMemory {
		return nil, fmt.Errorf("backend %s needs --dsn (or KAISER_DSN)", kind)
	}
	return kv.Open(ctx, kind, dsn)
}

func (app *App) logger(cmd *cobra.Command) *log.Logger {
	if app.Quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "kaiser: ", 0)
}

// withStore opens the selected board, applies --user, runs fn and closes the backend.
func withStore(cmd *cobra.Command, app *App, fn func(ctx context.Context, st *store.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := openBackend(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = backend.Close() }()

	st, err := store.Open(ctx, backend, boardkey.FromPath(app.Board),
		store.WithNamespace(app.Namespace),
		store.WithLogger(app.logger(cmd)),
	)
	if err != nil {
		return writeErr(cmd, err)
	}
	if u := strings.TrimSpace(app.User); u != "" && u != st.State().Client.CurrentUsername {
		if _, err := st.Dispatch(ctx, board.SetCurrentUser{Username: u}); err != nil {
			return writeErr(cmd, err)
		}
	}
	return fn(ctx, st)
}

// dispatch applies a and writes the resulting document (or the part of it selected by pick).
func dispatch(cmd *cobra.Command, app *App, a board.Action, pick func(model.Document) (any, error)) error {
	return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
		doc, err := st.Dispatch(ctx, a)
		if err != nil {
			return writeErr(cmd, err)
		}
		var out any = doc
		if pick != nil {
			out, err = pick(doc)
			if err != nil {
				return writeErr(cmd, err)
			}
		}
		return writeOut(cmd, app, map[string]any{"data": out})
	})
}

// withDocument writes the part of the current document selected by pick without dispatching.
func withDocument(cmd *cobra.Command, app *App, pick func(model.Document) (any, error)) error {
	return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
		out, err := pick(st.State())
		if err != nil {
			return writeErr(cmd, err)
		}
		return writeOut(cmd, app, map[string]any{"data": out})
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
