package model

import (
	"strings"
	"time"
)

// Item is one entry in the shopping list.
type Item struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type MatchMode string

const (
	MatchSubstring MatchMode = "substring"
	MatchFuzzy     MatchMode = "fuzzy"
)

// ParseMatchMode accepts the user-facing spellings of a match mode.
// Empty input selects substring matching.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring", "sub", "contains":
		return MatchSubstring, true
	case "fuzzy":
		return MatchFuzzy, true
	default:
		return "", false
	}
}

// ViewSettings is the part of the store that controls which items are visible.
type ViewSettings struct {
	Query       string    `json:"query,omitempty"`
	HideChecked bool      `json:"hideChecked"`
	Match       MatchMode `json:"match,omitempty"`
}

// Snapshot is a copy of the store at one version. Mutating it has no effect on the store.
type Snapshot struct {
	Items   []Item       `json:"items"`
	View    ViewSettings `json:"view"`
	Version uint64       `json:"version"`
}

// Row is a visible item. Index is the item's position in the store, not on screen.
type Row struct {
	Index int  `json:"index"`
	Item  Item `json:"item"`
}

// Event is a journal record of one applied action.
type Event struct {
	ID      string    `json:"id"`
	TS      time.Time `json:"ts"`
	Type    string    `json:"type"`
	Index   int       `json:"index"`
	Payload any       `json:"payload,omitempty"`
}
