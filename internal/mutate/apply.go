package mutate

import (
	"errors"

	"shoplist/internal/model"
	"shoplist/internal/store"
)

// Result describes what Apply did. Index is the affected store index, or -1 when
// the action is not about a single item.
type Result struct {
	Kind    string
	Changed bool
	Index   int
	Payload map[string]any
}

// Apply runs a onto st. On error the store is unchanged.
func Apply(st *store.Store, a Action) (Result, error) {
	if st == nil {
		return Result{}, errors.New("nil store")
	}
	if a == nil {
		return Result{}, errors.New("nil action")
	}
	res := Result{Kind: a.Kind(), Index: -1}

	switch a := a.(type) {
	case Add:
		idx, err := st.Add(a.Name)
		if err != nil {
			return res, err
		}
		it, _ := st.Item(idx)
		res.Changed = true
		res.Index = idx
		res.Payload = map[string]any{"name": it.Name}

	case Delete:
		removed, err := st.Delete(a.Index)
		if err != nil {
			return res, err
		}
		res.Changed = true
		res.Index = a.Index
		res.Payload = map[string]any{"name": removed.Name, "checked": removed.Checked}

	case Toggle:
		checked, err := st.Toggle(a.Index)
		if err != nil {
			return res, err
		}
		res.Changed = true
		res.Index = a.Index
		res.Payload = map[string]any{"checked": checked}

	case Edit:
		prev, err := st.Item(a.Index)
		if err != nil {
			return res, err
		}
		changed, err := st.Rename(a.Index, a.Name)
		if err != nil {
			return res, err
		}
		res.Index = a.Index
		res.Changed = changed
		if changed {
			it, _ := st.Item(a.Index)
			res.Payload = map[string]any{"from": prev.Name, "to": it.Name}
		}

	case ClearChecked:
		n := st.ClearChecked()
		res.Changed = n > 0
		res.Payload = map[string]any{"removed": n}

	case Filter:
		res.Changed = st.SetQuery(a.Query)
		res.Payload = map[string]any{"query": a.Query}

	case SetHideChecked:
		res.Changed = st.SetHideChecked(a.Hide)
		res.Payload = map[string]any{"hideChecked": a.Hide}

	case ToggleHideChecked:
		hide := !st.View().HideChecked
		res.Changed = st.SetHideChecked(hide)
		res.Payload = map[string]any{"hideChecked": hide}

	case SetMatch:
		mode, ok := model.ParseMatchMode(string(a.Mode))
		if !ok {
			return res, ArgError{Kind: KindSetMatch, Reason: "unknown match mode " + string(a.Mode)}
		}
		res.Changed = st.SetMatch(mode)
		res.Payload = map[string]any{"match": string(mode)}

	default:
		return res, UnknownActionError{Kind: a.Kind()}
	}
	return res, nil
}
