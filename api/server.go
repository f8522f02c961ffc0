package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"tonedrill/drill"
	"tonedrill/fretboard"
	"tonedrill/theory"
)

// maxPositions bounds a single lookup request
const maxPositions = 256

// Server exposes the interval engine over HTTP. Every request builds its own
// session, so handlers share nothing mutable.
type Server struct {
	tuning   *fretboard.Tuning
	logger   *slog.Logger
	router   *mux.Router
	registry *prometheus.Registry
	lookups  *prometheus.CounterVec
}

// NewServer uses tuning for requests that do not send their own
func NewServer(tuning *fretboard.Tuning, logger *slog.Logger) *Server {
	s := &Server{
		tuning:   tuning.Clone(),
		logger:   logger,
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tonedrill",
			Name:      "lookups_total",
			Help:      "Positions checked through the API.",
		}, []string{"mode", "outcome"}),
	}
	s.registry.MustRegister(s.lookups)

	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestID)
	router.HandleFunc("/notes", s.handleNotes).Methods(http.MethodGet)
	router.HandleFunc("/scales", s.handleScales).Methods(http.MethodGet)
	router.HandleFunc("/lookup", s.handleLookup).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router = router

	return s
}

// Handler returns the router wrapped with CORS for the given origins
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string, allowedOrigins []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(allowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, theory.NoteNames())
}

func (s *Server) handleScales(w http.ResponseWriter, r *http.Request) {
	res := make(map[string][]theory.Degree)
	for _, sc := range theory.Scales() {
		res[sc.Name] = sc.Degrees
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}

	session, err := s.buildSession(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var res LookupResponse
	if req.Root != "" {
		e, err := session.SetRoot(req.Root)
		root := toResult(req.Root, e, err)
		res.Root = &root
	}

	mode := string(session.Mode())
	res.Results = make([]LookupResult, 0, len(req.Positions))
	for _, raw := range req.Positions {
		e, err := session.Check(raw)
		outcome := "ok"
		if err != nil {
			outcome = "rejected"
		}
		s.lookups.WithLabelValues(mode, outcome).Inc()
		res.Results = append(res.Results, toResult(raw, e, err))
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) buildSession(req LookupRequest) (*drill.Session, error) {
	if len(req.Positions) == 0 {
		return nil, errors.New("positions must not be empty")
	}
	if len(req.Positions) > maxPositions {
		return nil, fmt.Errorf("at most %d positions per request", maxPositions)
	}

	tuning := s.tuning
	if len(req.Tuning) > 0 {
		t, err := fretboard.FromNames(req.Tuning)
		if err != nil {
			return nil, fmt.Errorf("tuning: %w", err)
		}
		tuning = t
	}

	mode := theory.ModeSingleTone
	if req.Root != "" {
		mode = theory.ModeChordTone
	}
	if req.Mode != "" {
		m, err := theory.ParseMode(req.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	if req.Root != "" && mode != theory.ModeChordTone {
		return nil, fmt.Errorf("root is only used in %s mode", theory.ModeChordTone)
	}

	session := drill.New(tuning)
	session.SetLogger(s.logger)
	if req.Key != "" {
		key, err := theory.ParseNote(req.Key)
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		session.SetKey(key)
	}
	if req.Scale != "" {
		scale, err := theory.LookupScale(req.Scale)
		if err != nil {
			return nil, err
		}
		session.SetScale(scale)
	}
	session.SelectMode(mode)
	session.ConfirmMode()
	return session, nil
}

func toResult(raw string, e drill.Entry, err error) LookupResult {
	res := LookupResult{Input: raw, Message: e.Message}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.String = e.Position.Str
	fret := e.Position.Fret
	res.Fret = &fret
	res.Note = e.Note.String()
	if e.Kind == drill.EntryLookup {
		res.Interval = e.Interval.Display()
	}
	if e.Chord != nil {
		res.Chord = e.Chord.String()
	}
	return res
}
