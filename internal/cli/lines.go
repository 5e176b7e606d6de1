package cli

import (
	"context"
	"strings"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/boardkey"
	"kaiser-cli/internal/model"
	"kaiser-cli/internal/store"

	"github.com/spf13/cobra"
)

func pickLine(lineID string) func(model.Document) (any, error) {
	return func(doc model.Document) (any, error) {
		l, ok := board.FindLine(doc, lineID)
		if !ok {
			return nil, board.NotFoundError{Kind: "line", ID: lineID}
		}
		return l, nil
	}
}

func newLinesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Swim-lane commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List lines with their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(ctx context.Context, st *store.Store) error {
				doc := st.State()
				out := make([]map[string]any, 0, len(doc.Lines))
				for _, l := range doc.Lines {
					cols, missing := board.ColumnsOfLine(doc, l)
					counts := make(map[string]int, len(cols))
					for _, c := range cols {
						counts[c.ID] = len(c.Cards)
					}
					entry := map[string]any{"line": l, "cardCounts": counts}
					if len(missing) > 0 {
						entry["missingColumns"] = missing
					}
					out = append(out, entry)
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "new <title>",
		Short: "Add a component line with the standard eight columns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return dispatch(cmd, app, board.NewLine{Title: title}, pickLine(boardkey.Slugify(title)))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "title <line-id> <title>",
		Short: "Rename a line",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.SetLineTitle{LineID: args[0], Title: strings.Join(args[1:], " ")}, pickLine(args[0]))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <line-id>",
		Short: "Expand or collapse a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ToggleLineExpanded{LineID: args[0]}, pickLine(args[0]))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "maximise <line-id>",
		Short: "Toggle a line's maximised height",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ToggleLineMaximised{LineID: args[0]}, pickLine(args[0]))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <line-id>",
		Short: "Remove a line (its columns and cards stay in the document)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.DeleteLine{LineID: args[0]}, func(doc model.Document) (any, error) {
				return doc.Lines, nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "expand-all",
		Short: "Expand every line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ExpandAllLines{}, func(doc model.Document) (any, error) {
				return doc.Lines, nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "collapse-all",
		Short: "Collapse every line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.CollapseAllLines{}, func(doc model.Document) (any, error) {
				return doc.Lines, nil
			})
		},
	})
	return cmd
}

func pickColumn(columnID string) func(model.Document) (any, error) {
	return func(doc model.Document) (any, error) {
		c, ok := board.FindColumn(doc, columnID)
		if !ok {
			return nil, board.NotFoundError{Kind: "column", ID: columnID}
		}
		return c, nil
	}
}

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Column commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "collapse <column-id>",
		Short: "Toggle a column's collapsed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.ToggleColumnCollapsed{ColumnID: args[0]}, pickColumn(args[0]))
		},
	})

	var hide bool
	inputCmd := &cobra.Command{
		Use:   "new-card-input <column-id>",
		Short: "Show (or --hide) a column's new card input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, app, board.SetColumnShowNewCardInput{ColumnID: args[0], Show: !hide}, pickColumn(args[0]))
		},
	}
	inputCmd.Flags().BoolVar(&hide, "hide", false, "Hide the input instead of showing it")
	cmd.AddCommand(inputCmd)
	return cmd
}
