package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/starfederation/datastar-go/datastar"

	"shoplist/internal/docs"
	"shoplist/internal/render"
)

const keepAliveInterval = 25 * time.Second

type pageVM struct {
	Title   string
	List    template.HTML
	Summary template.HTML
	Signals string
	View    render.View
}

type helpVM struct {
	Title  string
	Topic  string
	Topics []string
	Body   template.HTML
}

func reqID(r *http.Request) string { return middleware.GetReqID(r.Context()) }

func initialSignals(v render.View) map[string]any {
	return map[string]any{
		"newname":  "",
		"editname": "",
		"query":    v.Settings.Query,
		"hide":     v.Settings.HideChecked,
		"match":    string(v.Settings.Match),
		"error":    "",
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	list, summary, v, err := s.current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	b, err := json.Marshal(initialSignals(v))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// Rendered by html/template from escaped fields.
	s.writeHTMLTemplate(w, "page.html", pageVM{
		Title:   "Shopping list",
		List:    template.HTML(list),
		Summary: template.HTML(summary),
		Signals: string(b),
		View:    v,
	})
}

// handleEvents streams list and summary patches after every store change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	ch, cancel := s.st.Subscribe()
	defer cancel()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	s.log.Debug("event stream opened", "req_id", reqID(r))
	defer s.log.Debug("event stream closed", "req_id", reqID(r))

	// The page may be older than the stream; start from the current state.
	if !s.patchList(sse) {
		return
	}
	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case _, ok := <-ch:
			if !ok {
				return
			}
			if !s.patchList(sse) {
				return
			}
		}
	}
}

// patchList sends the current list and summary. It reports false when the
// client is gone.
func (s *Server) patchList(sse *datastar.ServerSentEventGenerator) bool {
	list, summary, v, err := s.current()
	if err != nil {
		_ = sse.ExecuteScript("console.error(" + strconv.Quote(err.Error()) + ")")
		return true
	}
	opts := []datastar.PatchElementOption{datastar.WithMode(datastar.ElementPatchModeOuter)}
	if err := sse.PatchElements(list, append(opts, datastar.WithSelector("#shopping-list"))...); err != nil {
		return false
	}
	if err := sse.PatchElements(summary, append(opts, datastar.WithSelector("#shopping-list-summary"))...); err != nil {
		return false
	}
	// query is left alone so an echo never fights the user's typing.
	_ = sse.MarshalAndPatchSignals(map[string]any{
		"hide":  v.Settings.HideChecked,
		"match": string(v.Settings.Match),
	})
	return true
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		topic = "web"
	}
	body, ok := docs.Get(topic)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeHTMLTemplate(w, "help.html", helpVM{
		Title:  "Help: " + topic,
		Topic:  topic,
		Topics: docs.Topics(),
		Body:   renderMarkdownHTML(body),
	})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	j := s.w.Journal()
	if j == nil {
		http.Error(w, "journal is off", http.StatusNotFound)
		return
	}
	limit := 0
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	evs, err := j.List(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"events": evs})
}
