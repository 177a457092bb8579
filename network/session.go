package network

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/core"
	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/modes"
	"github.com/lixenwraith/system-defender/systems"
)

// Session is one browser connection owning an independent single-player simulation
type Session struct {
	ID    uuid.UUID
	hub   *Hub
	conn  *websocket.Conn
	codec Codec

	sim       *systems.Simulation
	scheduler *engine.ClockScheduler
	tickDone  <-chan struct{}

	// Send queue
	send chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	logger zerolog.Logger
}

// newSession creates a session with an idle simulation
func newSession(h *Hub, conn *websocket.Conn, codec Codec) *Session {
	id := uuid.New()
	logger := h.logger.With().Str("session", id.String()).Logger()

	ctx := engine.NewGameContext(engine.ContextConfig{
		Stats:  h.stats,
		Logger: &logger,
	})
	sim := systems.NewSimulation(ctx)
	scheduler, tickDone := engine.NewClockScheduler(sim, nil, h.cfg.TickInterval, h.stats)

	s := &Session{
		ID:        id,
		hub:       h,
		conn:      conn,
		codec:     codec,
		sim:       sim,
		scheduler: scheduler,
		tickDone:  tickDone,
		send:      make(chan []byte, h.cfg.SendQueueSize),
		closeCh:   make(chan struct{}),
		logger:    logger,
	}
	sim.AddListener(s)
	return s
}

// run starts the session goroutines and blocks until the connection ends
func (s *Session) run() {
	s.scheduler.Start()

	s.wg.Add(2)
	core.Go(s.writeLoop)
	core.Go(s.snapshotLoop)

	s.enqueue(ServerMessage{Type: MsgWelcome, Version: ProtocolVersion, Session: s.ID.String()})
	s.readLoop()
	s.Close()
	s.wg.Wait()
}

// Close stops the simulation and the connection; safe to call repeatedly
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		s.scheduler.Stop()
		s.conn.Close()
	})
}

// HandleEvent forwards simulation events to the client
func (s *Session) HandleEvent(ev engine.Event) {
	s.enqueue(ServerMessage{Type: MsgEvent, Event: &ev})
}

// enqueue encodes msg and queues it; full queues drop the message
func (s *Session) enqueue(msg ServerMessage) bool {
	data, err := s.codec.Marshal(msg)
	if err != nil {
		s.logger.Error().Err(err).Str("type", string(msg.Type)).Msg("encode failed")
		return false
	}
	select {
	case <-s.closeCh:
		return false
	case s.send <- data:
		return true
	default:
		s.logger.Debug().Str("type", string(msg.Type)).Msg("send queue full, dropping")
		return false
	}
}

// sendSnapshot queues the current state
func (s *Session) sendSnapshot() {
	snap := s.sim.Snapshot()
	s.enqueue(ServerMessage{Type: MsgSnapshot, Snapshot: &snap})
}

// sendError reports a rejected client message
func (s *Session) sendError(err error) {
	s.enqueue(ServerMessage{Type: MsgError, Error: err.Error()})
}

// readLoop decodes client messages until the connection fails
func (s *Session) readLoop() {
	cfg := s.hub.cfg
	s.conn.SetReadLimit(cfg.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	})

	for {
		frameType, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug().Err(err).Msg("connection closed")
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))

		var msg ClientMessage
		if err := Unmarshal(frameType, payload, &msg); err != nil {
			s.logger.Debug().Err(err).Msg("discarding malformed message")
			s.sendError(errors.New("malformed message"))
			continue
		}
		s.handle(msg)
	}
}

// handle applies one client message to the simulation
func (s *Session) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgStart:
		s.sim.Configure(msg.Mode, msg.Difficulty, msg.Mobile, s.hub.bonus(msg.Code))
		s.sim.Resize(msg.Width, msg.Height)
		s.sim.Start()
		s.sendSnapshot()
	case MsgKey:
		for _, r := range msg.Text {
			if modes.Typeable(r) {
				s.sim.TypeCharacter(modes.KeyToRune(r))
			}
		}
	case MsgSelect:
		if err := s.sim.SelectOption(msg.Index); err != nil {
			s.sendError(err)
			return
		}
		s.sendSnapshot()
	default:
		s.sendError(errors.New("unknown message type " + string(msg.Type)))
	}
}

// writeLoop sends queued messages and keepalive pings
func (s *Session) writeLoop() {
	defer s.wg.Done()
	defer s.Close()

	cfg := s.hub.cfg
	ping := time.NewTicker(cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-s.closeCh:
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(cfg.WriteTimeout))
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := s.conn.WriteMessage(s.codec.MessageType(), data); err != nil {
				return
			}
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(cfg.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

// snapshotLoop streams snapshots on the scheduler's tick signal while a run is visible
func (s *Session) snapshotLoop() {
	defer s.wg.Done()

	every := max(1, s.hub.cfg.SnapshotEvery)
	ticks := 0
	for {
		select {
		case <-s.closeCh:
			return
		case <-s.tickDone:
			ticks++
			if ticks%every != 0 {
				continue
			}
			if s.sim.Phase() == engine.PhaseIdle {
				continue
			}
			s.sendSnapshot()
		}
	}
}
