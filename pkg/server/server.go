// Package server exposes models held in a store over an HTTP API.
//
// Each model name maps to a workspace: the decoded model plus its undo
// history. Workspaces are loaded from the store on first use and kept in
// memory until saved back explicitly. All workspace requests are handled
// one at a time.
//
// Routes:
//
//	GET  /healthz                   status and build info
//	GET  /models
//	GET  /models/{name}/elements
//	GET  /models/{name}/candidates
//	POST /models/{name}/merge       {"elements": [...], "target": "id", "merge_properties": true}
//	POST /models/{name}/undo
//	POST /models/{name}/redo
//	POST /models/{name}/save
//	GET  /models/{name}/diagrams/{id}.dot
//
// Errors are returned as {"code": "...", "message": "..."} with status 400
// for invalid input, 404 for unknown models, elements and diagrams, and 500
// otherwise.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/elementmerge/pkg/command"
	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/store"
)

// Options configures a [Server].
type Options struct {
	Store  store.Store
	Logger *log.Logger

	// HistoryLimit bounds each workspace's undo history; zero keeps all.
	HistoryLimit int

	// MergeProperties is used when a merge request does not say.
	MergeProperties bool
}

// Server serves the HTTP API.
type Server struct {
	store           store.Store
	logger          *log.Logger
	historyLimit    int
	mergeProperties bool

	mu         sync.Mutex
	workspaces map[string]*workspace

	router chi.Router
}

type workspace struct {
	model *model.Model
	stack *command.Stack
}

// New creates a server. A nil store keeps nothing and a nil logger uses
// log.Default().
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewNullStore()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		store:           opts.Store,
		logger:          opts.Logger,
		historyLimit:    opts.HistoryLimit,
		mergeProperties: opts.MergeProperties,
		workspaces:      make(map[string]*workspace),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/models", s.handleListModels)
	r.Route("/models/{name}", func(r chi.Router) {
		r.Get("/elements", s.handleElements)
		r.Get("/candidates", s.handleCandidates)
		r.Post("/merge", s.handleMerge)
		r.Post("/undo", s.handleUndo)
		r.Post("/redo", s.handleRedo)
		r.Post("/save", s.handleSave)
		r.Get("/diagrams/{id}.dot", s.handleDiagramDOT)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// workspace returns the loaded workspace for name, loading it if needed.
// Callers must hold s.mu.
func (s *Server) workspace(ctx context.Context, name string) (*workspace, error) {
	if ws, ok := s.workspaces[name]; ok {
		return ws, nil
	}
	m, err := store.Load(ctx, s.store, name)
	if err != nil {
		return nil, err
	}
	ws := &workspace{model: m, stack: command.NewStack(s.historyLimit)}
	s.workspaces[name] = ws
	s.logger.Debug("loaded workspace", "model", name, "elements", m.Stats().Elements)
	return ws, nil
}
