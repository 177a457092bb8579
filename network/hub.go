package network

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/status"
)

// BonusFunc resolves a student code to the shop bonus of its profile
type BonusFunc func(code string) components.StatBonus

// Hub accepts websocket upgrades and tracks live sessions
type Hub struct {
	cfg      *Config
	stats    *status.Registry
	logger   zerolog.Logger
	bonus    BonusFunc
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	wg       sync.WaitGroup
	closed   bool
}

// NewHub creates a hub; bonus may be nil when no shop is attached
func NewHub(cfg *Config, stats *status.Registry, logger zerolog.Logger, bonus BonusFunc) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if stats == nil {
		stats = status.NewRegistry()
	}
	if bonus == nil {
		bonus = func(string) components.StatBonus { return components.StatBonus{} }
	}
	return &Hub{
		cfg:    cfg,
		stats:  stats,
		logger: logger,
		bonus:  bonus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		sessions: make(map[uuid.UUID]*Session),
	}
}

// ServeWS upgrades the request and runs a session until it disconnects
// The codec query parameter selects json or msgpack
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	codec, err := ParseCodec(r.URL.Query().Get("codec"), h.cfg.Codec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.RLock()
	full := h.closed || len(h.sessions) >= h.cfg.MaxSessions
	h.mu.RUnlock()
	if full {
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s := newSession(h, conn, codec)
	if !h.add(s) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server full"))
		conn.Close()
		return
	}
	defer h.remove(s)

	h.logger.Info().Str("session", s.ID.String()).Str("codec", string(codec)).Str("remote", r.RemoteAddr).Msg("session opened")
	s.run()
	h.logger.Info().Str("session", s.ID.String()).Msg("session closed")
}

// add registers s unless the hub is closed or full
func (h *Hub) add(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.sessions) >= h.cfg.MaxSessions {
		return false
	}
	h.sessions[s.ID] = s
	h.wg.Add(1)
	h.stats.Ints.Get(status.KeySessions).Add(1)
	return true
}

// remove unregisters s
func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[s.ID]; !ok {
		return
	}
	delete(h.sessions, s.ID)
	h.stats.Ints.Get(status.KeySessions).Add(-1)
	h.wg.Done()
}

// SessionCount returns the number of live sessions
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close disconnects every session and waits for them to finish
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	h.wg.Wait()
}
