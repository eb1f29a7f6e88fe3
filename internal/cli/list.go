package cli

import (
	"strings"

	"shoplist/internal/model"
	"shoplist/internal/render"
	"shoplist/internal/store"

	"github.com/spf13/cobra"
)

type listData struct {
	Rows     []model.Row        `json:"rows"`
	Settings model.ViewSettings `json:"settings"`
	Total    int                `json:"total"`
	Checked  int                `json:"checked"`
	Visible  int                `json:"visible"`
	Hidden   int                `json:"hidden"`
}

// listOutput is the envelope for a rendered list; text output is the summary
// line followed by the plain-text rows.
type listOutput struct {
	Data listData `json:"data"`
	view render.View
}

func newListOutput(v render.View) listOutput {
	rows := v.Rows
	if rows == nil {
		rows = []model.Row{}
	}
	return listOutput{
		Data: listData{
			Rows:     rows,
			Settings: v.Settings,
			Total:    v.Total,
			Checked:  v.Checked,
			Visible:  v.Visible(),
			Hidden:   v.Hidden,
		},
		view: v,
	}
}

func (o listOutput) Text() string {
	return render.Summary(o.view) + "\n" + render.Text(o.view)
}

func newListCmd(app *App) *cobra.Command {
	var query string
	var hideChecked bool
	var match string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Render the configured list once",
		Example: strings.TrimSpace(`
shoplist list
shoplist list --format text --hide-checked
shoplist list --query ap --match fuzzy
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.cfg.NewStore()
			if cmd.Flags().Changed("hide-checked") {
				st.SetHideChecked(hideChecked)
			}
			if cmd.Flags().Changed("match") {
				if err := applyMatch(st, match); err != nil {
					return writeErr(cmd, err)
				}
			}
			if q := strings.TrimSpace(query); q != "" {
				st.SetQuery(q)
			}
			return writeOut(cmd, app, newListOutput(render.Derive(st.Snapshot())))
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Only show items matching this text")
	cmd.Flags().BoolVar(&hideChecked, "hide-checked", false, "Hide checked items")
	cmd.Flags().StringVar(&match, "match", "", "Query matching (substring|fuzzy)")
	return cmd
}

func applyMatch(st *store.Store, raw string) error {
	mode, ok := model.ParseMatchMode(raw)
	if !ok {
		return errNotFound("match mode", raw)
	}
	st.SetMatch(mode)
	return nil
}
