package cli

import (
	"kaiser-cli/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved defaults (~/.kaiser/config.json)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved config and the settings in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			effective := map[string]string{
				"board":     app.Board,
				"backend":   app.Backend,
				"dsn":       app.DSN,
				"namespace": app.Namespace,
				"username":  app.User,
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":      path,
				"saved":     cfg,
				"effective": effective,
			}})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a default (board|backend|dsn|namespace|username)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Clear a saved default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, args[0], "")
		},
	})
	return cmd
}

func updateConfig(cmd *cobra.Command, app *App, key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := cfg.Set(key, value); err != nil {
		return writeErr(cmd, err)
	}
	if err := config.Save(cfg); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": cfg})
}
