package cli

import (
	"strings"

	"shoplist/internal/journal"
	"shoplist/internal/model"
	"shoplist/internal/widget"

	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var summary bool
	var showJournal bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the widget headless, reading actions from stdin",
		Long: strings.TrimSpace(`
Run the widget without a terminal UI. Each stdin line is one action
(see ` + "`shoplist docs actions`" + `); the list is printed after every change.
Lines that fail to parse or apply are reported on stderr and skipped.
`),
		Example: strings.TrimSpace(`
printf 'add saffron\ntoggle 0\nhide\n' | shoplist run
shoplist run --journal < actions.txt
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := journal.Open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer j.Close()

			surface := &widget.TextSurface{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr(), Summary: summary}
			w := widget.New(app.cfg.NewStore(), surface, widget.WithJournal(j), widget.WithLogger(app.log))
			if err := w.Run(ctx, widget.NewLineSource(cmd.InOrStdin())); err != nil {
				return writeErr(cmd, err)
			}
			if !showJournal {
				return nil
			}
			events, err := j.List(ctx, 0)
			if err != nil {
				return writeErr(cmd, err)
			}
			if events == nil {
				events = []model.Event{}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"events": events}})
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "Print a summary line before each repaint")
	cmd.Flags().BoolVar(&showJournal, "journal", false, "Print the session journal when input ends")
	return cmd
}
