package mutate

import "shoplist/internal/model"

// Action kinds, also used as journal event types.
const (
	KindAdd               = "item.add"
	KindDelete            = "item.delete"
	KindToggle            = "item.toggle"
	KindEdit              = "item.edit"
	KindClearChecked      = "list.clear_checked"
	KindFilter            = "view.filter"
	KindSetHideChecked    = "view.hide_checked"
	KindToggleHideChecked = "view.toggle_hide_checked"
	KindSetMatch          = "view.match"
)

// Action is one user intent. Surfaces translate their native input into actions;
// Apply is the only place that turns them into store mutations.
type Action interface {
	Kind() string
}

type Add struct{ Name string }

type Delete struct{ Index int }

type Toggle struct{ Index int }

type Edit struct {
	Index int
	Name  string
}

type ClearChecked struct{}

// Filter replaces the query. An empty query shows everything.
type Filter struct{ Query string }

type SetHideChecked struct{ Hide bool }

type ToggleHideChecked struct{}

type SetMatch struct{ Mode model.MatchMode }

func (Add) Kind() string               { return KindAdd }
func (Delete) Kind() string            { return KindDelete }
func (Toggle) Kind() string            { return KindToggle }
func (Edit) Kind() string              { return KindEdit }
func (ClearChecked) Kind() string      { return KindClearChecked }
func (Filter) Kind() string            { return KindFilter }
func (SetHideChecked) Kind() string    { return KindSetHideChecked }
func (ToggleHideChecked) Kind() string { return KindToggleHideChecked }
func (SetMatch) Kind() string          { return KindSetMatch }
