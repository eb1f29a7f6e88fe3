package web

import (
	"sync"

	"shoplist/internal/render"
)

// fragments is the widget surface for the browser. Paint renders the list and
// summary once per change; every open event stream reuses the result.
type fragments struct {
	mu      sync.RWMutex
	version uint64
	list    string
	summary string
	ok      bool
}

func (f *fragments) Paint(v render.View) error {
	list, err := render.HTML(v)
	if err != nil {
		return err
	}
	summary, err := render.SummaryHTML(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.version = v.Version
	f.list = list
	f.summary = summary
	f.ok = true
	f.mu.Unlock()
	return nil
}

// at returns the fragments painted for version, if that is the latest paint.
func (f *fragments) at(version uint64) (list, summary string, ok bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.ok || f.version != version {
		return "", "", false
	}
	return f.list, f.summary, true
}
