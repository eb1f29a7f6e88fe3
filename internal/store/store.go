package store

import (
	"errors"
	"strings"
	"sync"

	"shoplist/internal/model"
)

var ErrEmptyName = errors.New("item name is empty")

// Store is the single mutable home of the list and its view settings.
//
// Every successful mutation bumps the version and wakes subscribers. Failed or
// no-op mutations leave both untouched, so a subscriber wake-up always means
// there is something new to render.
type Store struct {
	mu      sync.RWMutex
	items   []model.Item
	view    model.ViewSettings
	version uint64

	hub *hub
}

func New(items ...model.Item) *Store {
	s := &Store{
		items: make([]model.Item, 0, len(items)),
		view:  model.ViewSettings{Match: model.MatchSubstring},
		hub:   newHub(),
	}
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			continue
		}
		s.items = append(s.items, it)
	}
	return s
}

// DefaultItems is the list a fresh session starts with.
func DefaultItems() []model.Item {
	return []model.Item{
		{Name: "apples", Checked: false},
		{Name: "oranges", Checked: false},
		{Name: "milk", Checked: true},
		{Name: "bread", Checked: false},
	}
}

func Default() *Store {
	return New(DefaultItems()...)
}

func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.Item, len(s.items))
	copy(items, s.items)
	return model.Snapshot{Items: items, View: s.view, Version: s.version}
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Item(i int) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkIndexLocked(i); err != nil {
		return model.Item{}, err
	}
	return s.items[i], nil
}

// Add appends an unchecked item and returns its index.
func (s *Store) Add(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, ErrEmptyName
	}
	s.mu.Lock()
	s.items = append(s.items, model.Item{Name: name})
	idx := len(s.items) - 1
	s.changedLocked()
	s.mu.Unlock()
	return idx, nil
}

// Delete removes the item at i. Items after it shift down by one.
func (s *Store) Delete(i int) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(i); err != nil {
		return model.Item{}, err
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.changedLocked()
	return removed, nil
}

// Toggle flips the checked flag of item i and returns the new value.
func (s *Store) Toggle(i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(i); err != nil {
		return false, err
	}
	s.items[i].Checked = !s.items[i].Checked
	s.changedLocked()
	return s.items[i].Checked, nil
}

func (s *Store) Rename(i int, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(i); err != nil {
		return false, err
	}
	if s.items[i].Name == name {
		return false, nil
	}
	s.items[i].Name = name
	s.changedLocked()
	return true, nil
}

// ClearChecked removes every checked item and returns how many were removed.
func (s *Store) ClearChecked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if it.Checked {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	// Zero the tail so dropped names are not retained by the backing array.
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = model.Item{}
	}
	s.items = kept
	if removed > 0 {
		s.changedLocked()
	}
	return removed
}

func (s *Store) View() model.ViewSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetQuery stores the filter text as typed. Matching trims it.
func (s *Store) SetQuery(q string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.Query == q {
		return false
	}
	s.view.Query = q
	s.changedLocked()
	return true
}

func (s *Store) SetHideChecked(hide bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.HideChecked == hide {
		return false
	}
	s.view.HideChecked = hide
	s.changedLocked()
	return true
}

func (s *Store) SetMatch(m model.MatchMode) bool {
	if m == "" {
		m = model.MatchSubstring
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.Match == m {
		return false
	}
	s.view.Match = m
	s.changedLocked()
	return true
}

// Subscribe returns a channel that receives a value after store changes.
// Bursts of changes may be coalesced into one wake-up; always re-read the store.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	return s.hub.subscribe()
}

func (s *Store) checkIndexLocked(i int) error {
	if i < 0 || i >= len(s.items) {
		return IndexError{Index: i, Len: len(s.items)}
	}
	return nil
}

func (s *Store) changedLocked() {
	s.version++
	s.hub.broadcast()
}
