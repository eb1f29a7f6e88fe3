package render

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.New("render").
	Funcs(template.FuncMap{"summary": Summary}).
	ParseFS(templatesFS, "templates/*.html"))

// HTML renders the list element for the browser surface. Names are escaped by
// html/template; every row carries its store index in data-item-index.
func HTML(v View) (string, error) {
	return execute("list", v)
}

// SummaryHTML renders the one-line status paragraph.
func SummaryHTML(v View) (string, error) {
	return execute("summary", v)
}

func execute(name string, v View) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, v); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return b.String(), nil
}

// Text renders one line per visible row, e.g. "[x] 2 milk". The number is the
// store index, which is what the run/list commands accept.
func Text(v View) string {
	if len(v.Rows) == 0 {
		if v.Empty() {
			return "(empty list)\n"
		}
		return "(no items match)\n"
	}
	w := len(strconv.Itoa(v.Total - 1))
	var b strings.Builder
	for _, r := range v.Rows {
		box := "[ ]"
		if r.Item.Checked {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%s %*d %s\n", box, w, r.Index, r.Item.Name)
	}
	return b.String()
}

// Summary is a one-line status such as `4 items, 1 checked, 3 shown (filter "ap")`.
func Summary(v View) string {
	var b strings.Builder
	b.WriteString(plural(v.Total, "item", "items"))
	fmt.Fprintf(&b, ", %d checked, %d shown", v.Checked, v.Visible())
	var notes []string
	if q := strings.TrimSpace(v.Settings.Query); q != "" {
		notes = append(notes, "filter "+strconv.Quote(q))
	}
	if v.Settings.HideChecked {
		notes = append(notes, "checked hidden")
	}
	if len(notes) > 0 {
		b.WriteString(" (" + strings.Join(notes, ", ") + ")")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
