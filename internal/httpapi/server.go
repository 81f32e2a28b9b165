package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"eventhub"
	"eventhub/internal/actions"
	"eventhub/internal/domain"
	"eventhub/internal/logic"
	"eventhub/internal/metrics"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Options wires a Server
type Options struct {
	Hub            *eventhub.Hub
	Catalog        *actions.Catalog
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// Server bridges HTTP requests to a hub. The hub is not safe for concurrent
// use, so every request that touches it holds mu.
type Server struct {
	mu      sync.Mutex
	hub     *eventhub.Hub
	binder  logic.BindingStore
	catalog *actions.Catalog
	metrics *metrics.Metrics
	log     zerolog.Logger

	allowedOrigins []string
	maxBodyBytes   int64
}

// EmitRequest is the optional body of POST /events/{name}
type EmitRequest struct {
	Args []any `json:"args"`
}

// EmitResponse reports the outcome of an emit
type EmitResponse struct {
	Event     string `json:"event"`
	Delivered bool   `json:"delivered"`
}

// BindRequest is the body of POST /events/{name}/listeners
type BindRequest struct {
	Action string `json:"action"`
	Once   bool   `json:"once"`
}

// New creates a server. Hub, Catalog and Metrics default to fresh instances.
func New(opts Options) *Server {
	if opts.Hub == nil {
		opts.Hub = eventhub.New()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Catalog == nil {
		opts.Catalog = actions.NewCatalog(actions.Deps{Logger: opts.Logger, Metrics: opts.Metrics})
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		hub:            opts.Hub,
		binder:         logic.NewBinder(opts.Hub),
		catalog:        opts.Catalog,
		metrics:        opts.Metrics,
		log:            opts.Logger,
		allowedOrigins: opts.AllowedOrigins,
		maxBodyBytes:   opts.MaxBodyBytes,
	}
	s.metrics.Sync(s.hub)
	return s
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/actions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"actions": s.catalog.Names()})
	})
	r.Get("/events", s.handleListEvents)
	r.Post("/events/{name}", s.handleEmit)
	r.Post("/events/{name}/listeners", s.handleBind)
	r.Get("/listeners", s.handleListListeners)
	r.Delete("/listeners/{id}", s.handleUnbind)
	return r
}

// Emit emits through the server's hub under its lock. A listener panic is
// returned as an error.
func (s *Server) Emit(event string, args ...any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emitLocked(event, args...)
}

func (s *Server) emitLocked(event string, args ...any) (delivered bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			// Listeners existed, or nothing could have panicked.
			delivered = true
			err = fmt.Errorf("listener failed: %v", rec)
			s.log.Error().Str("event", event).Err(err).Msg("emit aborted")
		}
		s.metrics.ObserveEmit(event, delivered)
		s.metrics.Sync(s.hub)
	}()
	delivered = s.hub.Emit(event, args...)
	s.log.Debug().Str("event", event).Bool("delivered", delivered).Msg("emitted")
	return delivered, nil
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := logic.Summaries(s.hub)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleEmit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req EmitRequest
	if err := s.decodeOptional(w, r, &req); err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}

	delivered, err := s.Emit(name, req.Args...)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, EmitResponse{Event: name, Delivered: delivered})
}

func (s *Server) handleBind(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req BindRequest
	if err := s.decode(w, r, &req); err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	fn, err := s.catalog.Listener(req.Action, name)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	binding, err := s.binder.Bind(name, req.Action, req.Once, fn)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.Sync(s.hub)
	s.log.Info().Int("id", binding.ID).Str("event", name).Str("action", req.Action).Bool("once", req.Once).Msg("listener bound")
	if _, err := s.emitLocked(string(domain.EventListenerBound), binding.ID, binding.Event, binding.Action); err != nil {
		s.log.Warn().Err(err).Msg("lifecycle listener failed")
	}
	writeJSON(w, http.StatusCreated, binding)
}

func (s *Server) handleListListeners(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	bindings := s.binder.List()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"listeners": bindings})
}

func (s *Server) handleUnbind(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "listener id must be an integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	binding, ok := s.binder.Unbind(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "listener not found")
		return
	}
	s.metrics.Sync(s.hub)
	s.log.Info().Int("id", id).Str("event", binding.Event).Msg("listener unbound")
	if _, err := s.emitLocked(string(domain.EventListenerUnbound), binding.ID, binding.Event); err != nil {
		s.log.Warn().Err(err).Msg("lifecycle listener failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

var (
	errContentType = errors.New("Content-Type must be application/json")
	errBadBody     = errors.New("invalid JSON body")
	errEmptyBody   = errors.New("request body is required")
)

func statusFor(err error) int {
	if errors.Is(err, errContentType) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusBadRequest
}

// decodeOptional accepts an empty body and leaves v untouched in that case
func (s *Server) decodeOptional(w http.ResponseWriter, r *http.Request, v any) error {
	err := s.decode(w, r, v)
	if errors.Is(err, errEmptyBody) {
		return nil
	}
	return err
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return errEmptyBody
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return errContentType
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return errBadBody
	}
	return nil
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
// server.started is emitted once the address is bound, with the bound address.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	bound := ln.Addr().String()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.log.Info().Str("addr", bound).Msg("eventhub listening")
	if _, err := s.Emit(string(domain.EventServerStarted), bound); err != nil {
		s.log.Warn().Err(err).Msg("lifecycle listener failed")
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown error: %w", err)
	}
	if _, err := s.Emit(string(domain.EventServerStopped)); err != nil {
		s.log.Warn().Err(err).Msg("lifecycle listener failed")
	}
	return nil
}
