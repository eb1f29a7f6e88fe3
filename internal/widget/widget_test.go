package widget

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"shoplist/internal/journal"
	"shoplist/internal/mutate"
	"shoplist/internal/render"
	"shoplist/internal/store"
)

type recordingSurface struct {
	views  []render.View
	errs   []error
	failOn int
}

func (s *recordingSurface) Paint(v render.View) error {
	s.views = append(s.views, v)
	if s.failOn > 0 && len(s.views) == s.failOn {
		return errors.New("surface gone")
	}
	return nil
}

func (s *recordingSurface) ReportError(err error) { s.errs = append(s.errs, err) }

func (s *recordingSurface) last() render.View { return s.views[len(s.views)-1] }

func TestMount_PaintsInitialView(t *testing.T) {
	t.Parallel()

	surf := &recordingSurface{}
	w := New(store.Default(), surf)
	if err := w.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(surf.views) != 1 {
		t.Fatalf("expected 1 paint; got %d", len(surf.views))
	}
	if got := surf.last().Visible(); got != 4 {
		t.Fatalf("expected 4 visible rows; got %d", got)
	}
}

func TestDispatch_RepaintsOnlyOnChange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	surf := &recordingSurface{}
	w := New(store.Default(), surf)

	if _, err := w.Dispatch(ctx, mutate.Toggle{Index: 0}); err != nil {
		t.Fatalf("Dispatch toggle: %v", err)
	}
	if len(surf.views) != 1 || !surf.last().Rows[0].Item.Checked {
		t.Fatalf("expected one repaint with apples checked; got %d paints", len(surf.views))
	}

	if _, err := w.Dispatch(ctx, mutate.Filter{Query: ""}); err != nil {
		t.Fatalf("Dispatch filter: %v", err)
	}
	if len(surf.views) != 1 {
		t.Fatalf("expected no repaint for a no-op; got %d paints", len(surf.views))
	}

	if _, err := w.Dispatch(ctx, mutate.Delete{Index: 42}); err == nil {
		t.Fatalf("expected error for bad index")
	}
	if len(surf.views) != 1 {
		t.Fatalf("expected no repaint on error; got %d paints", len(surf.views))
	}
}

func TestDispatch_HideCheckedAndFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	surf := &recordingSurface{}
	w := New(store.Default(), surf)

	if _, err := w.Dispatch(ctx, mutate.ToggleHideChecked{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got := surf.last().Visible(); got != 3 {
		t.Fatalf("expected 3 visible rows with milk hidden; got %d", got)
	}
	if _, err := w.Dispatch(ctx, mutate.Filter{Query: "BR"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	v := surf.last()
	if v.Visible() != 1 || v.Rows[0].Index != 3 {
		t.Fatalf("expected bread at index 3 only; got %+v", v.Rows)
	}
}

func TestDispatch_RecordsJournal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, err := journal.Open(ctx)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	w := New(store.Default(), &recordingSurface{}, WithJournal(j))
	_, _ = w.Dispatch(ctx, mutate.Add{Name: "eggs"})
	_, _ = w.Dispatch(ctx, mutate.Add{Name: "   "})
	_, _ = w.Dispatch(ctx, mutate.Edit{Index: 4, Name: "eggs"})
	_, _ = w.Dispatch(ctx, mutate.Edit{Index: 4, Name: "duck eggs"})

	evs, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected add and edit only; got %+v", evs)
	}
	if evs[0].Type != mutate.KindAdd || evs[1].Type != mutate.KindEdit || evs[1].Index != 4 {
		t.Fatalf("unexpected events: %+v", evs)
	}
}

func TestRun_ContinuesAfterHandlerErrors(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(strings.Join([]string{
		"# comment",
		"add cheese",
		"toggle 99",
		"bogus verb",
		"",
		`edit 4 "blue cheese"`,
		"hide",
	}, "\n"))

	surf := &recordingSurface{}
	w := New(store.Default(), surf)
	if err := w.Run(context.Background(), NewLineSource(in)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(surf.errs) != 2 {
		t.Fatalf("expected 2 reported errors; got %v", surf.errs)
	}
	var pe *ParseError
	if !errors.As(surf.errs[1], &pe) || pe.Line != 4 {
		t.Fatalf("expected parse error on line 4; got %v", surf.errs[1])
	}
	// mount + add + edit + hide
	if len(surf.views) != 4 {
		t.Fatalf("expected 4 paints; got %d", len(surf.views))
	}
	v := surf.last()
	if v.Rows[len(v.Rows)-1].Item.Name != "blue cheese" || !v.Settings.HideChecked {
		t.Fatalf("unexpected final view: %+v", v)
	}
}

func TestRun_StopsOnPaintError(t *testing.T) {
	t.Parallel()

	surf := &recordingSurface{failOn: 2}
	w := New(store.Default(), surf)
	err := w.Run(context.Background(), NewLineSource(strings.NewReader("add a\nadd b\n")))
	var pe *PaintError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PaintError; got %v", err)
	}
	if w.Store().Len() != 5 {
		t.Fatalf("expected run to stop after first add; len=%d", w.Store().Len())
	}
}

func TestRun_ChanSourceAndCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan mutate.Action, 1)
	surf := &recordingSurface{}
	w := New(store.Default(), surf)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, ChanSource(ch)) }()

	ch <- mutate.ClearChecked{}
	cancel()
	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestRun_ClosedChanEnds(t *testing.T) {
	t.Parallel()

	ch := make(chan mutate.Action, 2)
	ch <- mutate.Add{Name: "tea"}
	close(ch)
	w := New(store.New(), &recordingSurface{})
	if err := w.Run(context.Background(), ChanSource(ch)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if w.Store().Len() != 1 {
		t.Fatalf("expected tea added")
	}
}

func TestTextSurface(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	surf := &TextSurface{Out: &out, Err: &errOut, Summary: true}
	w := New(store.Default(), surf)
	if err := w.Run(context.Background(), NewLineSource(strings.NewReader("delete 7\n"))); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "-- 4 items, 1 checked, 4 shown\n[ ] 0 apples\n") {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "error: item not found: 7") {
		t.Fatalf("unexpected error output: %q", errOut.String())
	}
}
