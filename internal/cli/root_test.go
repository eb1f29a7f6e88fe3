package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config resolution at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SHOPLIST_CONFIG", path)
	t.Setenv("SHOPLIST_FORMAT", "")
	t.Setenv("SHOPLIST_DEBUG_LOG", "")
	return path
}

func mustEnvelope(t *testing.T, stdout []byte) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got %#v", env["data"])
	}
	return data
}

func TestList_JSONEnvelope(t *testing.T) {
	isolate(t)

	stdout, stderr, err := runCLI(t, "", "list")
	if err != nil {
		t.Fatalf("list: %v\nstderr:\n%s", err, stderr)
	}
	data := mustEnvelope(t, stdout)
	if got := data["total"]; got != float64(4) {
		t.Fatalf("total: got %v want 4", got)
	}
	if got := data["checked"]; got != float64(1) {
		t.Fatalf("checked: got %v want 1", got)
	}
	rows, _ := data["rows"].([]any)
	if len(rows) != 4 {
		t.Fatalf("rows: got %d want 4", len(rows))
	}
}

func TestList_QueryAndHide(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "", "list", "--query", "AP")
	if err != nil {
		t.Fatalf("list --query: %v", err)
	}
	data := mustEnvelope(t, stdout)
	if got := data["visible"]; got != float64(1) {
		t.Fatalf("visible: got %v want 1", got)
	}

	stdout, _, err = runCLI(t, "", "--format", "text", "list", "--hide-checked")
	if err != nil {
		t.Fatalf("list --hide-checked: %v", err)
	}
	out := string(stdout)
	if !strings.HasPrefix(out, "4 items, 1 checked, 3 shown") {
		t.Fatalf("expected summary line; got:\n%s", out)
	}
	if !strings.Contains(out, "[ ] 0 apples") || strings.Contains(out, "milk") {
		t.Fatalf("expected milk hidden; got:\n%s", out)
	}
}

func TestList_BadMatchMode(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, "", "list", "--match", "regex")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "match mode not found: regex") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestList_EDN(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "", "--format", "edn", "list")
	if err != nil {
		t.Fatalf("list edn: %v", err)
	}
	if !strings.Contains(string(stdout), ":total 4") {
		t.Fatalf("expected edn keywords; got:\n%s", stdout)
	}
}

func TestRun_AppliesLinesAndReportsErrors(t *testing.T) {
	isolate(t)

	in := strings.Join([]string{
		"# comment",
		"add saffron",
		"toggle 0",
		"bogus",
		"toggle 9",
		"hide",
		"",
	}, "\n")
	stdout, stderr, err := runCLI(t, in, "run")
	if err != nil {
		t.Fatalf("run: %v\nstderr:\n%s", err, stderr)
	}
	out := string(stdout)
	for _, want := range []string{"[ ] 4 saffron", "[x] 0 apples"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	last := out[strings.LastIndex(out, "[ ] 1 oranges"):]
	if strings.Contains(last, "milk") || strings.Contains(last, "apples") {
		t.Fatalf("expected final paint to hide checked items:\n%s", last)
	}
	if n := strings.Count(string(stderr), "error:"); n != 2 {
		t.Fatalf("expected 2 reported errors; got %d:\n%s", n, stderr)
	}
}

func TestRun_Journal(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "add saffron\ndelete 0\n", "run", "--journal")
	if err != nil {
		t.Fatalf("run --journal: %v", err)
	}
	out := string(stdout)
	i := strings.Index(out, `{"data"`)
	if i < 0 {
		t.Fatalf("expected journal envelope in output:\n%s", out)
	}
	data := mustEnvelope(t, []byte(out[i:]))
	events, _ := data["events"].([]any)
	if len(events) != 2 {
		t.Fatalf("events: got %d want 2", len(events))
	}
	first, _ := events[0].(map[string]any)
	if first["type"] != "item.add" {
		t.Fatalf("first event type: got %v", first["type"])
	}
}

func TestDocs(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "", "docs")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	data := mustEnvelope(t, stdout)
	topics, _ := data["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}

	stdout, _, err = runCLI(t, "", "docs", "keys", "--raw")
	if err != nil {
		t.Fatalf("docs keys --raw: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "#") {
		t.Fatalf("expected raw markdown; got:\n%s", stdout)
	}

	_, stderr, err := runCLI(t, "", "docs", "nope")
	if err == nil || !strings.Contains(string(stderr), "docs topic not found: nope") {
		t.Fatalf("expected unknown topic error; err=%v stderr=%s", err, stderr)
	}
}

func TestConfig_InitAndShow(t *testing.T) {
	path := isolate(t)

	stdout, stderr, err := runCLI(t, "", "config", "init")
	if err != nil {
		t.Fatalf("config init: %v\nstderr:\n%s", err, stderr)
	}
	if got := mustEnvelope(t, stdout)["path"]; got != path {
		t.Fatalf("init path: got %v want %s", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	if _, _, err := runCLI(t, "", "config", "init"); err == nil {
		t.Fatalf("expected second init without --force to fail")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	if err := os.WriteFile(path, []byte("[list]\nseed = [\"eggs\", \"x:flour\"]\nhide_checked = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	stdout, _, err = runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	var env struct {
		Data struct {
			List struct {
				Seed        []string `json:"seed"`
				HideChecked bool     `json:"hide_checked"`
			} `json:"list"`
		} `json:"data"`
		Meta struct {
			Path string `json:"path"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, stdout)
	}
	if env.Meta.Path != path || !env.Data.List.HideChecked || len(env.Data.List.Seed) != 2 {
		t.Fatalf("unexpected config show: %+v", env)
	}

	stdout, _, err = runCLI(t, "", "--format", "text", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := string(stdout); !strings.Contains(got, "[ ] 0 eggs") || strings.Contains(got, "flour") {
		t.Fatalf("expected seeded list with flour hidden; got:\n%s", got)
	}
}

func TestUnknownFormat(t *testing.T) {
	isolate(t)

	if _, _, err := runCLI(t, "", "--format", "yaml", "list"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestSessionArgs(t *testing.T) {
	t.Parallel()

	if got := sessionArgs(&App{}); got != nil {
		t.Fatalf("expected no args; got %v", got)
	}
	app := &App{ConfigPath: "/tmp/a.toml"}
	if got := sessionArgs(app); len(got) != 2 || got[1] != "/tmp/a.toml" {
		t.Fatalf("unexpected args: %v", got)
	}
}
