package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"shoplist/internal/model"
	"shoplist/internal/mutate"
	"shoplist/internal/store"
)

// signals is the client state Datastar posts with every @post.
type signals struct {
	NewName  string `json:"newname"`
	EditName string `json:"editname"`
	Query    string `json:"query"`
	Hide     *bool  `json:"hide"`
	Match    string `json:"match"`
}

func isDatastarRequest(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("Datastar-Request")), "true")
}

// readSignals reads Datastar signals, or the equivalent plain form fields so
// the page also works without JavaScript.
func readSignals(r *http.Request) (signals, error) {
	var sig signals
	if isDatastarRequest(r) {
		if err := datastar.ReadSignals(r, &sig); err != nil {
			return sig, err
		}
		return sig, nil
	}
	if err := r.ParseForm(); err != nil {
		return sig, err
	}
	sig.NewName = r.Form.Get("name")
	sig.EditName = r.Form.Get("name")
	sig.Query = r.Form.Get("query")
	sig.Match = r.Form.Get("mode")
	if v := strings.TrimSpace(r.Form.Get("hide")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return sig, mutate.ArgError{Kind: mutate.KindSetHideChecked, Reason: "hide must be true or false"}
		}
		sig.Hide = &b
	}
	return sig, nil
}

func pathIndex(r *http.Request, kind string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "index"))
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, mutate.ArgError{Kind: kind, Reason: "bad index " + strconv.Quote(raw)}
	}
	return i, nil
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	res, err := s.w.Dispatch(r.Context(), mutate.Add{Name: sig.NewName})
	// A successful add empties the input for the next item.
	s.respond(w, r, res, err, map[string]any{"newname": ""})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	i, err := pathIndex(r, mutate.KindToggle)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	res, err := s.w.Dispatch(r.Context(), mutate.Toggle{Index: i})
	s.respond(w, r, res, err, nil)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	i, err := pathIndex(r, mutate.KindEdit)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	sig, err := readSignals(r)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	res, err := s.w.Dispatch(r.Context(), mutate.Edit{Index: i, Name: sig.EditName})
	s.respond(w, r, res, err, map[string]any{"editname": ""})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	i, err := pathIndex(r, mutate.KindDelete)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	res, err := s.w.Dispatch(r.Context(), mutate.Delete{Index: i})
	s.respond(w, r, res, err, nil)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	res, err := s.w.Dispatch(r.Context(), mutate.Filter{Query: sig.Query})
	s.respond(w, r, res, err, nil)
}

func (s *Server) handleHideChecked(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	var a mutate.Action = mutate.ToggleHideChecked{}
	if sig.Hide != nil {
		a = mutate.SetHideChecked{Hide: *sig.Hide}
	}
	res, err := s.w.Dispatch(r.Context(), a)
	s.respond(w, r, res, err, nil)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		s.respond(w, r, mutate.Result{}, err, nil)
		return
	}
	res, err := s.w.Dispatch(r.Context(), mutate.SetMatch{Mode: model.MatchMode(sig.Match)})
	s.respond(w, r, res, err, nil)
}

func (s *Server) handleClearChecked(w http.ResponseWriter, r *http.Request) {
	res, err := s.w.Dispatch(r.Context(), mutate.ClearChecked{})
	s.respond(w, r, res, err, nil)
}

type actionResponse struct {
	Kind    string         `json:"kind"`
	Changed bool           `json:"changed"`
	Index   int            `json:"index"`
	Version uint64         `json:"version"`
	Payload map[string]any `json:"payload,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// respond answers a Datastar request with a signal patch (the list itself
// arrives over /events), a JSON client with the result, and a plain form post
// with a redirect back to the page.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, res mutate.Result, err error, onSuccess map[string]any) {
	if err != nil {
		s.log.Info("action failed", "kind", res.Kind, "err", err, "req_id", reqID(r))
	}

	switch {
	case isDatastarRequest(r):
		sse := datastar.NewSSE(w, r)
		patch := map[string]any{"error": ""}
		if err != nil {
			patch["error"] = err.Error()
		} else {
			for k, v := range onSuccess {
				patch[k] = v
			}
		}
		_ = sse.MarshalAndPatchSignals(patch)

	case wantsJSON(r):
		out := actionResponse{Kind: res.Kind, Changed: res.Changed, Index: res.Index, Version: s.st.Version(), Payload: res.Payload}
		status := http.StatusOK
		if err != nil {
			out.Error = err.Error()
			status = statusFor(err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(out)

	case err != nil:
		http.Error(w, err.Error(), statusFor(err))

	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func statusFor(err error) int {
	var ie store.IndexError
	var ae mutate.ArgError
	switch {
	case errors.As(err, &ie):
		return http.StatusNotFound
	case errors.Is(err, store.ErrEmptyName), errors.As(err, &ae):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
