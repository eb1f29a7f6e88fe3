package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shoplist/internal/journal"
	"shoplist/internal/render"
	"shoplist/internal/store"
	"shoplist/internal/widget"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Addr    string
	Store   *store.Store
	Journal *journal.Journal
	Logger  *slog.Logger
}

type Server struct {
	cfg   ServerConfig
	st    *store.Store
	w     *widget.Widget
	frags *fragments
	log   *slog.Logger
	tmpl  *template.Template
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Store == nil {
		cfg.Store = store.Default()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	frags := &fragments{}
	w := widget.New(cfg.Store, frags, widget.WithJournal(cfg.Journal), widget.WithLogger(log))
	if err := w.Mount(context.Background()); err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, st: cfg.Store, w: w, frags: frags, log: log, tmpl: tmpl}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Widget() *widget.Widget { return s.w }

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/events", s.handleEvents)
	r.Get("/static/app.css", s.handleAppCSS)
	r.Get("/", s.handleHome)
	r.Get("/help", s.handleHelp)
	r.Get("/journal", s.handleJournal)

	r.Post("/items", s.handleAdd)
	r.Post("/items/{index}/toggle", s.handleToggle)
	r.Post("/items/{index}/edit", s.handleEdit)
	r.Post("/items/{index}/delete", s.handleDelete)
	r.Post("/filter", s.handleFilter)
	r.Post("/hide-checked", s.handleHideChecked)
	r.Post("/match", s.handleMatch)
	r.Post("/clear-checked", s.handleClearChecked)
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request. Event streams are logged when they close.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"dur", time.Since(start).Round(time.Microsecond),
				"req_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// current returns the list and summary markup for the store's current state.
func (s *Server) current() (list, summary string, v render.View, err error) {
	snap := s.st.Snapshot()
	if l, sm, ok := s.frags.at(snap.Version); ok {
		return l, sm, render.Derive(snap), nil
	}
	v = render.Derive(snap)
	if list, err = render.HTML(v); err != nil {
		return "", "", v, err
	}
	if summary, err = render.SummaryHTML(v); err != nil {
		return "", "", v, err
	}
	return list, summary, v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "version": s.st.Version()})
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(b)
}
