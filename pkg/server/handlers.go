package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/elementmerge/pkg/buildinfo"
	"github.com/matzehuels/elementmerge/pkg/command"
	errs "github.com/matzehuels/elementmerge/pkg/errors"
	"github.com/matzehuels/elementmerge/pkg/merge"
	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/render/nodelink"
	"github.com/matzehuels/elementmerge/pkg/store"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

// MergeRequest is the body of POST /models/{name}/merge.
type MergeRequest struct {
	Elements        []model.ID `json:"elements"`
	Target          model.ID   `json:"target,omitempty"`
	MergeProperties *bool      `json:"merge_properties,omitempty"`
}

// HistoryState reports the undo state of a workspace.
type HistoryState struct {
	CanUndo   bool   `json:"can_undo"`
	CanRedo   bool   `json:"can_redo"`
	UndoLabel string `json:"undo_label,omitempty"`
	RedoLabel string `json:"redo_label,omitempty"`
	Dirty     bool   `json:"dirty"`
}

// MergeResponse describes an executed merge.
type MergeResponse struct {
	Target          model.ID     `json:"target"`
	Merged          []model.ID   `json:"merged"`
	MergeProperties bool         `json:"merge_properties"`
	Relationships   int          `json:"relationships"`
	Rebound         int          `json:"rebound"`
	Migrated        int          `json:"migrated"`
	History         HistoryState `json:"history"`
}

// CandidateGroup is one entry of GET /models/{name}/candidates.
type CandidateGroup struct {
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Elements []merge.Summary `json:"elements"`
}

type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// Health is the body of GET /healthz.
type Health struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeStore, err, "list models"))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, r, func(ws *workspace) (any, error) {
		return merge.DescribeAll(ws.model, ws.model.Elements()), nil
	})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, r, func(ws *workspace) (any, error) {
		out := []CandidateGroup{}
		for _, g := range merge.FindDuplicates(ws.model) {
			out = append(out, CandidateGroup{
				Type:     g.Type,
				Name:     g.Name,
				Elements: merge.DescribeAll(ws.model, g.Elements),
			})
		}
		return out, nil
	})
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	s.withWorkspace(w, r, func(ws *workspace) (any, error) {
		merger := merge.NewMerger(ws.model, ws.stack, merge.FixedChooser{
			Target:          req.Target,
			MergeProperties: req.MergeProperties,
		}, s.logger.With("model", chi.URLParam(r, "name")))
		merger.MergeProperties = s.mergeProperties

		res, err := merger.Merge(r.Context(), req.Elements)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, nil
		}
		return MergeResponse{
			Target:          res.Target,
			Merged:          res.Merged,
			MergeProperties: res.MergeProperties,
			Relationships:   res.Relationships,
			Rebound:         res.Rebound,
			Migrated:        res.Migrated,
			History:         history(ws.stack),
		}, nil
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, r, func(ws *workspace) (any, error) {
		if !ws.stack.Undo() {
			return nil, errs.New(errs.ErrCodeInvalidInput, "nothing to undo")
		}
		return history(ws.stack), nil
	})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, r, func(ws *workspace) (any, error) {
		if !ws.stack.Redo() {
			return nil, errs.New(errs.ErrCodeInvalidInput, "nothing to redo")
		}
		return history(ws.stack), nil
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.withWorkspace(w, r, func(ws *workspace) (any, error) {
		if err := store.Save(r.Context(), s.store, name, ws.model); err != nil {
			return nil, err
		}
		ws.stack.MarkSaved()
		s.logger.Info("saved model", "model", name)
		return history(ws.stack), nil
	})
}

func (s *Server) handleDiagramDOT(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspace(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	dot, err := nodelink.ToDOT(ws.model, id, nodelink.Options{Detailed: r.URL.Query().Get("detailed") == "true"})
	if errors.Is(err, nodelink.ErrUnknownDiagram) {
		s.writeError(w, errs.Wrap(errs.ErrCodeDiagramNotFound, err, "diagram %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = io.WriteString(w, dot)
}

// withWorkspace runs fn on the named workspace under the server lock and
// writes its result as JSON.
func (s *Server) withWorkspace(w http.ResponseWriter, r *http.Request, fn func(*workspace) (any, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := s.workspace(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := fn(ws)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if out == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func history(st *command.Stack) HistoryState {
	return HistoryState{
		CanUndo:   st.CanUndo(),
		CanRedo:   st.CanRedo(),
		UndoLabel: st.UndoLabel(),
		RedoLabel: st.RedoLabel(),
		Dirty:     st.IsDirty(),
	}
}

func statusFor(err error) int {
	switch {
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeInvalidInput),
		errs.Is(err, errs.ErrCodeInvalidSelection),
		errs.Is(err, errs.ErrCodeInvalidName):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeInvalidModel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errs.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
