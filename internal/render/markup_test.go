package render

import (
	"strings"
	"testing"

	"shoplist/internal/model"
)

func TestHTML_RowsCarryIndexAndCheckedClass(t *testing.T) {
	t.Parallel()

	html, err := HTML(Derive(snapshot(model.ViewSettings{}, startingItems()...)))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{
		`id="shopping-list"`,
		`class="shopping-list js-shopping-list"`,
		`data-item-index="0"`,
		`data-item-index="3"`,
		`shopping-item js-shopping-item shopping-item__checked">milk</span>`,
		`shopping-item js-shopping-item">apples</span>`,
		`js-item-toggle`,
		`js-item-delete`,
		`js-item-edit`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected HTML to contain %q; got:\n%s", want, html)
		}
	}
	if got := strings.Count(html, "js-item-index-element"); got != 4 {
		t.Fatalf("expected 4 rows; got %d", got)
	}
}

func TestHTML_FilteredRowsKeepStoreIndex(t *testing.T) {
	t.Parallel()

	html, err := HTML(Derive(snapshot(model.ViewSettings{Query: "bread"}, startingItems()...)))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, `data-item-index="3"`) {
		t.Fatalf("expected bread to keep store index 3; got:\n%s", html)
	}
	if strings.Contains(html, `data-item-index="0"`) {
		t.Fatalf("expected apples filtered out")
	}
}

func TestHTML_EscapesNames(t *testing.T) {
	t.Parallel()

	html, err := HTML(Derive(snapshot(model.ViewSettings{}, model.Item{Name: "<script>alert(1)</script>"})))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected name to be escaped; got:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in span; got:\n%s", html)
	}
}

func TestHTML_EmptyStates(t *testing.T) {
	t.Parallel()

	empty, err := HTML(Derive(snapshot(model.ViewSettings{})))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(empty, "Nothing on the list.") {
		t.Fatalf("expected empty-list message; got:\n%s", empty)
	}

	none, err := HTML(Derive(snapshot(model.ViewSettings{Query: "zzz"}, startingItems()...)))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(none, "No items match.") {
		t.Fatalf("expected no-match message; got:\n%s", none)
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	got := Text(Derive(snapshot(model.ViewSettings{}, startingItems()...)))
	want := "[ ] 0 apples\n[ ] 1 oranges\n[x] 2 milk\n[ ] 3 bread\n"
	if got != want {
		t.Fatalf("Text:\n got: %q\nwant: %q", got, want)
	}

	if got := Text(Derive(snapshot(model.ViewSettings{}))); got != "(empty list)\n" {
		t.Fatalf("unexpected empty text: %q", got)
	}
	if got := Text(Derive(snapshot(model.ViewSettings{Query: "zzz"}, startingItems()...))); got != "(no items match)\n" {
		t.Fatalf("unexpected no-match text: %q", got)
	}
}

func TestText_PadsIndexes(t *testing.T) {
	t.Parallel()

	var items []model.Item
	for i := 0; i < 11; i++ {
		items = append(items, model.Item{Name: "x"})
	}
	got := Text(Derive(snapshot(model.ViewSettings{}, items...)))
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if lines[0] != "[ ]  0 x" || lines[10] != "[ ] 10 x" {
		t.Fatalf("expected padded indexes; got first=%q last=%q", lines[0], lines[10])
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		view  model.ViewSettings
		items []model.Item
		want  string
	}{
		{"plain", model.ViewSettings{}, startingItems(), "4 items, 1 checked, 4 shown"},
		{"filtered", model.ViewSettings{Query: "ap", HideChecked: true}, startingItems(), `4 items, 1 checked, 1 shown (filter "ap", checked hidden)`},
		{"single", model.ViewSettings{}, []model.Item{{Name: "tea"}}, "1 item, 0 checked, 1 shown"},
	}
	for _, tt := range tests {
		if got := Summary(Derive(snapshot(tt.view, tt.items...))); got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}

	html, err := SummaryHTML(Derive(snapshot(model.ViewSettings{}, startingItems()...)))
	if err != nil {
		t.Fatalf("SummaryHTML: %v", err)
	}
	if !strings.Contains(html, `id="shopping-list-summary"`) || !strings.Contains(html, "4 items") {
		t.Fatalf("unexpected summary html: %s", html)
	}
}
