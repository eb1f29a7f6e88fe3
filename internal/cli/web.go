package cli

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"shoplist/internal/journal"
	"shoplist/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the list to a browser (server-rendered, live over SSE)",
		Example: strings.TrimSpace(`
shoplist web
shoplist web --addr :8080 --open=false
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if !cmd.Flags().Changed("addr") {
				listenAddr = app.cfg.Web.Addr
			}

			ctx := cmd.Context()
			j, err := journal.Open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer j.Close()

			srv, err := web.NewServer(web.ServerConfig{
				Addr:    listenAddr,
				Store:   app.cfg.NewStore(),
				Journal: j,
				Logger:  app.log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			url := "http://" + srv.Addr() + "/"
			opened, openErr := false, ""
			if open {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}
			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      srv.Addr(),
					"url":       url,
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "shoplist web running at %s\n", url)

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the UI in your default browser")
	return cmd
}

func openPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("empty path")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Run()
	default:
		return exec.Command("xdg-open", path).Run()
	}
}
