package render

import (
	"strings"

	"shoplist/internal/model"

	"github.com/sahilm/fuzzy"
)

// View is everything a surface needs to draw the list. It is derived from a
// snapshot and never refers back to the store.
type View struct {
	Rows     []model.Row
	Settings model.ViewSettings
	Version  uint64

	Total   int
	Checked int
	// Hidden counts items excluded by the query or by hide-checked.
	Hidden int
}

func (v View) Visible() int { return len(v.Rows) }

func (v View) Empty() bool { return v.Total == 0 }

// Filtered reports whether any setting is currently narrowing the list.
func (v View) Filtered() bool {
	return strings.TrimSpace(v.Settings.Query) != "" || v.Settings.HideChecked
}

// Derive computes the visible rows for a snapshot.
//
// Hide-checked is applied first, then the query. Substring matches keep store
// order; fuzzy matches are ordered best first.
func Derive(s model.Snapshot) View {
	v := View{
		Settings: s.View,
		Version:  s.Version,
		Total:    len(s.Items),
	}

	candidates := make([]model.Row, 0, len(s.Items))
	for i, it := range s.Items {
		if it.Checked {
			v.Checked++
			if s.View.HideChecked {
				continue
			}
		}
		candidates = append(candidates, model.Row{Index: i, Item: it})
	}

	q := strings.TrimSpace(s.View.Query)
	switch {
	case q == "":
		v.Rows = candidates
	case s.View.Match == model.MatchFuzzy:
		v.Rows = fuzzyRows(candidates, q)
	default:
		v.Rows = substringRows(candidates, q)
	}
	v.Hidden = v.Total - len(v.Rows)
	return v
}

func substringRows(rows []model.Row, q string) []model.Row {
	q = strings.ToLower(q)
	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Item.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

func fuzzyRows(rows []model.Row, q string) []model.Row {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Item.Name
	}
	matches := fuzzy.Find(q, names)
	out := make([]model.Row, 0, len(matches))
	for _, m := range matches {
		out = append(out, rows[m.Index])
	}
	return out
}
