package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
	"github.com/venuescope/venuesync/pkg/domain/types"
	"github.com/venuescope/venuesync/pkg/usecase"
	"github.com/venuescope/venuesync/pkg/utils/async"
	"github.com/venuescope/venuesync/pkg/utils/errutil"
	"github.com/venuescope/venuesync/pkg/utils/logging"
	"github.com/venuescope/venuesync/pkg/utils/safe"
)

// maxRunListLimit bounds the run history endpoint
const maxRunListLimit = 100

// SyncTrigger kicks a pipeline run outside the schedule. It reports false
// when a run is already in progress.
type SyncTrigger interface {
	Trigger(ctx context.Context) bool
}

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	trigger SyncTrigger
}

type Options func(*Server)

// WithSyncTrigger enables the manual sync endpoint
func WithSyncTrigger(trigger SyncTrigger) Options {
	return func(s *Server) {
		s.trigger = trigger
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	s := &Server{
		router: chi.NewRouter(),
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.statusHandler)
		r.Get("/runs", s.runsHandler)
		r.Get("/search", s.searchHandler)
		if s.trigger != nil {
			r.Post("/sync", s.syncHandler)
		}
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	safe.Write(r.Context(), w, []byte("OK"))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(r.Context()).Error("Failed to encode response", "error", err.Error())
	}
}

// statusHandler returns the latest run report
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.uc.LatestRun(r.Context())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			errutil.HandleHTTP(r.Context(), w, goerr.New("no sync run recorded yet"), http.StatusNotFound)
			return
		}
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, report)
}

// runsHandler returns the run history, most recent first
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRunListLimit {
			errutil.HandleHTTP(r.Context(), w, goerr.New("invalid limit", goerr.V("limit", raw)), http.StatusBadRequest)
			return
		}
		limit = n
	}

	reports, err := s.uc.ListRuns(r.Context(), limit)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"runs": reports})
}

// searchHandler answers semantic queries over a venue collection
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	venueType := types.VenueType(r.URL.Query().Get("type"))
	query := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errutil.HandleHTTP(r.Context(), w, goerr.New("invalid limit", goerr.V("limit", raw)), http.StatusBadRequest)
			return
		}
		limit = n
	}

	docs, err := s.uc.Search.Search(r.Context(), venueType, query, limit)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	type result struct {
		ID     string         `json:"id"`
		Fields map[string]any `json:"fields"`
	}
	results := make([]result, len(docs))
	for i, doc := range docs {
		results[i] = result{ID: doc.ID, Fields: doc.Fields}
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"results": results})
}

// syncHandler triggers a pipeline run in the background
func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	triggered := false
	if s.trigger != nil {
		trigger := s.trigger
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			trigger.Trigger(ctx)
			return nil
		})
		triggered = true
	}

	writeJSON(w, r, http.StatusAccepted, map[string]any{"triggered": triggered})
}
