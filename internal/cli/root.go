package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"shoplist/internal/config"
	"shoplist/internal/format"
	"shoplist/internal/journal"
	"shoplist/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	PrettyJSON bool
	Format     string

	cfg     config.Config
	log     *slog.Logger
	logFile io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "shoplist",
		Short:        "Shopping list widget (TUI, web and headless)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  shoplist

  # Print the seeded list
  shoplist list --format text

  # Drive the widget from a script
  printf 'add saffron\ntoggle 0\n' | shoplist run

  # Serve the list to a browser
  shoplist web --addr 127.0.0.1:8080
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.setupLogger(); err != nil {
			return writeErr(cmd, err)
		}
		cfg, err := config.Load(app.ConfigPath)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		app.log.Debug("config loaded", "path", cfg.Path, "cmd", cmd.CommandPath())
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logFile != nil {
			return app.logFile.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("SHOPLIST_CONFIG", ""), "Path to config.toml (default ~/.config/shoplist/config.toml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SHOPLIST_FORMAT", format.JSON), "Output format ("+strings.Join(format.Names, "|")+")")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newWebTUICmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	j, err := journal.Open(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer j.Close()

	return tui.Run(cmd.Context(), tui.Options{
		Store:   app.cfg.NewStore(),
		Journal: j,
		Logger:  app.log,
		Glyphs:  app.cfg.UI.Glyphs,
	})
}

// setupLogger sends debug records to $SHOPLIST_DEBUG_LOG when set. The TUI
// owns the terminal, so nothing is logged to stderr by default.
func (app *App) setupLogger() error {
	path := strings.TrimSpace(os.Getenv("SHOPLIST_DEBUG_LOG"))
	if path == "" {
		app.log = slog.New(slog.DiscardHandler)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	app.logFile = f
	app.log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
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
