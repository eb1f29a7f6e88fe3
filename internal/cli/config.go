package cli

import (
	"strings"

	"shoplist/internal/config"

	"github.com/spf13/cobra"
)

type configOutput struct {
	Data config.Config `json:"data"`
	Meta struct {
		Path string `json:"path"`
	} `json:"meta"`
}

// Text is the effective configuration as TOML.
func (o configOutput) Text() string {
	b, err := config.Encode(o.Data)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := config.WriteDefault(path, force); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := configOutput{Data: app.cfg}
			out.Meta.Path = app.cfg.Path
			return writeOut(cmd, app, out)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func configPath(app *App) (string, error) {
	if p := strings.TrimSpace(app.ConfigPath); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}
