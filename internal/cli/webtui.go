package cli

import (
	"fmt"
	"strings"
	"time"

	"shoplist/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the TUI in a browser over a PTY and websocket",
		Long: strings.TrimSpace(`
Serve the terminal UI to a browser terminal emulator.

Each browser tab starts its own TUI process with its own list; nothing is
shared between tabs.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if !cmd.Flags().Changed("addr") {
				listenAddr = app.cfg.WebTUI.Addr
			}

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:   listenAddr,
				Args:   sessionArgs(app),
				Logger: app.log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      srv.Addr(),
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{"open http://" + srv.Addr()},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "shoplist webtui running at http://%s\n", srv.Addr())
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config)")
	return cmd
}

// sessionArgs are passed to each TUI child so it reads the same config.
func sessionArgs(app *App) []string {
	p := strings.TrimSpace(app.cfg.Path)
	if p == "" {
		p = strings.TrimSpace(app.ConfigPath)
	}
	if p == "" {
		return nil
	}
	return []string{"--config", p}
}
