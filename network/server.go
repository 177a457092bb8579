package network

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/shop"
	"github.com/lixenwraith/system-defender/status"
)

// Server exposes the websocket game endpoint and the student/shop HTTP API
type Server struct {
	cfg    *Config
	stats  *status.Registry
	logger zerolog.Logger
	lookup *LookupClient
	store  *shop.Store
	hub    *Hub
	router *mux.Router

	// Profiles of students looked up since start, keyed by code
	mu       sync.Mutex
	profiles map[string]*shop.Profile

	httpMu     sync.Mutex
	httpServer *http.Server
	cancel     context.CancelFunc
	done       chan error
}

// NewServer wires the hub and HTTP routes; store may be nil to disable persistence
func NewServer(cfg *Config, lookup *LookupClient, store *shop.Store, stats *status.Registry, logger zerolog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if stats == nil {
		stats = status.NewRegistry()
	}
	if lookup == nil {
		lookup = NewLookupClient("", "", 0, logger, stats)
	}

	s := &Server{
		cfg:      cfg,
		stats:    stats,
		logger:   logger,
		lookup:   lookup,
		store:    store,
		profiles: make(map[string]*shop.Profile),
	}
	s.hub = NewHub(cfg, stats, logger, s.Bonus)

	r := mux.NewRouter()
	r.HandleFunc("/ws", s.hub.ServeWS)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/lookup/{code}", s.handleLookup).Methods(http.MethodGet)
	api.HandleFunc("/shop/items", s.handleItems).Methods(http.MethodGet)
	api.HandleFunc("/shop/{code}/purchase/{item}", s.handlePurchase).Methods(http.MethodPost)
	api.HandleFunc("/shop/{code}/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the session hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Bonus returns the shop bonus of a looked-up student; unknown codes get none
func (s *Server) Bonus(code string) components.StatBonus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[strings.TrimSpace(code)]; ok {
		return p.Bonuses()
	}
	return components.StatBonus{}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:     s.router,
		ReadTimeout: s.cfg.ReadTimeout,
	}
	s.httpMu.Lock()
	s.httpServer = srv
	s.httpMu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown
	s.hub.Close()
	err := srv.Shutdown(shutdownCtx)
	<-errCh
	s.logger.Info().Msg("server stopped")
	return err
}

// Name implements service.Service
func (s *Server) Name() string {
	return "network"
}

// Start implements service.Service by serving in the background
func (s *Server) Start() error {
	s.httpMu.Lock()
	defer s.httpMu.Unlock()
	if s.cancel != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan error, 1)
	go func() {
		s.done <- s.Serve(ctx, ln)
	}()
	return nil
}

// Stop implements service.Service; safe to call repeatedly
func (s *Server) Stop() error {
	s.httpMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.httpMu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	return <-done
}

// profileResponse is the lookup and shop reply body
type profileResponse struct {
	Code    string               `json:"code"`
	Name    string               `json:"name"`
	Offline bool                 `json:"offline,omitempty"`
	Profile *shop.Profile        `json:"profile"`
	Bonus   components.StatBonus `json:"bonus"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.hub.SessionCount(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Export())
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, constants.ShopItems)
}

// handleLookup resolves the student and loads their persisted purchases
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(mux.Vars(r)["code"])

	student, err := s.lookup.Lookup(r.Context(), code)
	switch {
	case errors.Is(err, ErrEmptyCode):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, ErrStudentNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err)
		return
	}

	profile := shop.NewProfile(student.Name, student.Cookies)
	if s.store != nil {
		if profile, err = s.store.Load(code, student.Name, student.Cookies); err != nil {
			s.logger.Error().Err(err).Str("code", code).Msg("load profile failed")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	s.mu.Lock()
	s.profiles[code] = profile
	resp := profileResponse{Code: code, Name: student.Name, Offline: student.Offline, Profile: profile, Bonus: profile.Bonuses()}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	item := constants.ShopItemID(vars["item"])
	s.mutateProfile(w, vars["code"], func(p *shop.Profile) error {
		return p.Purchase(item)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mutateProfile(w, mux.Vars(r)["code"], func(p *shop.Profile) error {
		p.Reset()
		return nil
	})
}

// mutateProfile applies fn to a looked-up profile, persists it and replies with the result
func (s *Server) mutateProfile(w http.ResponseWriter, code string, fn func(*shop.Profile) error) {
	code = strings.TrimSpace(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[code]
	if !ok {
		writeError(w, http.StatusNotFound, ErrStudentNotFound)
		return
	}

	// Work on a copy so a failed save leaves the cached profile untouched
	next := cloneProfile(p)
	if err := fn(next); err != nil {
		switch {
		case errors.Is(err, shop.ErrUnknownItem):
			writeError(w, http.StatusNotFound, err)
		default:
			writeError(w, http.StatusConflict, err)
		}
		return
	}
	if s.store != nil {
		if err := s.store.Save(code, next); err != nil {
			s.logger.Error().Err(err).Str("code", code).Msg("save profile failed")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	s.profiles[code] = next

	writeJSON(w, http.StatusOK, profileResponse{Code: code, Name: next.StudentName, Profile: next, Bonus: next.Bonuses()})
}

func cloneProfile(p *shop.Profile) *shop.Profile {
	c := shop.NewProfile(p.StudentName, p.Cookies)
	for id, level := range p.Purchases {
		c.Purchases[id] = level
	}
	return c
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
