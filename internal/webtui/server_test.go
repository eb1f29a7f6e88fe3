package webtui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestNewServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(ServerConfig{Exe: "/bin/true"}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestHandler_PagesAndAssets(t *testing.T) {
	t.Parallel()

	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Exe: "/bin/true"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	h := s.Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/terminal" {
		t.Fatalf("expected redirect to /terminal; got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/terminal", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "@xterm/xterm") {
		t.Fatalf("expected terminal page; got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `type: "resize"`) {
		t.Fatalf("expected app.js; got %d", rr.Code)
	}
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:8081", true},
		{"https://LOCALHOST:8081", true},
		{"http://evil.example", false},
		{"http://localhost:8081.evil.example", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "http://localhost:8081/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := sameOrigin(r); got != tt.want {
			t.Fatalf("sameOrigin(%q) = %v want %v", tt.origin, got, tt.want)
		}
	}
}

func TestParseResize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		cols, rows uint16
		ok         bool
	}{
		{`{"type":"resize","cols":120,"rows":40}`, 120, 40, true},
		{`{"type":"RESIZE","cols":80,"rows":24}`, 80, 24, true},
		{`{"type":"resize","cols":0,"rows":24}`, 0, 0, false},
		{`{"type":"ping"}`, 0, 0, false},
		{`{not json`, 0, 0, false},
		{`ls -la`, 0, 0, false},
	}
	for _, tt := range tests {
		cols, rows, ok := parseResize([]byte(tt.in))
		if cols != tt.cols || rows != tt.rows || ok != tt.ok {
			t.Fatalf("parseResize(%q) = %d,%d,%v", tt.in, cols, rows, ok)
		}
	}
}

func TestWS_EchoesThroughPTY(t *testing.T) {
	t.Parallel()

	s, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Exe: "/bin/cat"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"resize","cols":90,"rows":20}`)); err != nil {
		t.Fatalf("write resize: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got strings.Builder
	for !strings.Contains(got.String(), "hello") {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read (got %q): %v", got.String(), err)
		}
		if strings.HasPrefix(string(data), "failed to start session") {
			t.Skipf("no pty available: %s", data)
		}
		got.Write(data)
	}
}
