package cli

import (
	"fmt"
	"sort"

	"shoplist/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// docsOutput renders markdown for the terminal in text format.
type docsOutput struct {
	Data struct {
		Topic    string `json:"topic"`
		Markdown string `json:"markdown"`
	} `json:"data"`
}

func (o docsOutput) Text() string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return o.Data.Markdown
	}
	out, err := r.Render(o.Data.Markdown)
	if err != nil {
		return o.Data.Markdown
	}
	return out
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show documentation topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				sort.Strings(topics)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": topics}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("%w (run `shoplist docs` to list topics)", errNotFound("docs topic", topic)))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			var out docsOutput
			out.Data.Topic = topic
			out.Data.Markdown = body
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")
	return cmd
}
