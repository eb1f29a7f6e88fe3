// Package widget ties the store, the action handlers and the view derivation to
// an external rendering target and input source.
//
// Every change flows one way: an action is applied to the store, the store is
// snapshotted, the snapshot is derived into a View and the View is painted.
package widget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"shoplist/internal/journal"
	"shoplist/internal/mutate"
	"shoplist/internal/render"
	"shoplist/internal/store"
)

// Surface is the rendering target. Paint receives the complete view every time.
type Surface interface {
	Paint(v render.View) error
}

// ErrorReporter is implemented by surfaces that can show handler errors.
type ErrorReporter interface {
	ReportError(err error)
}

// EventSource yields user actions. io.EOF ends the stream.
type EventSource interface {
	Next(ctx context.Context) (mutate.Action, error)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(v render.View) error

func (f SurfaceFunc) Paint(v render.View) error { return f(v) }

type Widget struct {
	st      *store.Store
	surface Surface
	journal *journal.Journal
	log     *slog.Logger

	// mu serializes apply+paint so paints arrive in version order.
	mu sync.Mutex
}

type Option func(*Widget)

func WithJournal(j *journal.Journal) Option {
	return func(w *Widget) { w.journal = j }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.log = l
		}
	}
}

func New(st *store.Store, surface Surface, opts ...Option) *Widget {
	w := &Widget{
		st:      st,
		surface: surface,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *Widget) Store() *store.Store { return w.st }

func (w *Widget) Journal() *journal.Journal { return w.journal }

// View derives the current view without painting it.
func (w *Widget) View() render.View {
	return render.Derive(w.st.Snapshot())
}

// Mount paints the initial view.
func (w *Widget) Mount(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paintLocked()
}

// Dispatch applies a. A change is journaled and repainted; a failed or no-op
// action paints nothing.
func (w *Widget) Dispatch(ctx context.Context, a mutate.Action) (mutate.Result, error) {
	if err := ctx.Err(); err != nil {
		return mutate.Result{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	res, err := mutate.Apply(w.st, a)
	if err != nil {
		w.log.Debug("action rejected", "kind", res.Kind, "err", err)
		return res, err
	}
	if !res.Changed {
		w.log.Debug("action no-op", "kind", res.Kind)
		return res, nil
	}
	if w.journal != nil {
		if _, jerr := w.journal.Record(ctx, res.Kind, res.Index, res.Payload); jerr != nil {
			// The store already changed; keep the UI in sync and just log.
			w.log.Warn("journal record failed", "kind", res.Kind, "err", jerr)
		}
	}
	w.log.Debug("action applied", "kind", res.Kind, "index", res.Index, "version", w.st.Version())
	return res, w.paintLocked()
}

// Run mounts the widget and dispatches actions from src until it returns io.EOF
// or ctx is cancelled. Handler errors are logged, reported to the surface when
// it is an ErrorReporter, and do not stop the loop. Source and paint errors do.
func (w *Widget) Run(ctx context.Context, src EventSource) error {
	if err := w.Mount(ctx); err != nil {
		return err
	}
	for {
		a, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var perr *ParseError
			if errors.As(err, &perr) {
				w.report(err)
				continue
			}
			return err
		}
		if _, err := w.Dispatch(ctx, a); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var pe *PaintError
			if errors.As(err, &pe) {
				return err
			}
			w.report(err)
		}
	}
}

func (w *Widget) report(err error) {
	w.log.Info("action failed", "err", err)
	if r, ok := w.surface.(ErrorReporter); ok {
		r.ReportError(err)
	}
}

func (w *Widget) paintLocked() error {
	if w.surface == nil {
		return nil
	}
	if err := w.surface.Paint(render.Derive(w.st.Snapshot())); err != nil {
		return &PaintError{Err: err}
	}
	return nil
}
