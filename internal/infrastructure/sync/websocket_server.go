package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
	"streamgrid/pkg/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured properly for production
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Options configures connection keepalive and inbound message limits.
type Options struct {
	PingInterval      time.Duration
	PongTimeout       time.Duration
	WriteTimeout      time.Duration
	MessagesPerSecond float64
	Burst             int
	MaxMessageSize    int64
	MaxConnections    int // 0 means unlimited
}

func DefaultOptions() Options {
	return Options{
		PingInterval:      30 * time.Second,
		PongTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		MessagesPerSecond: 20,
		Burst:             40,
		MaxMessageSize:    4096,
	}
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(writeTimeout time.Duration, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(data)
}

// WebSocketServer keeps every viewer of a session in sync: it fans session
// events out to all connected clients and accepts a small set of commands
// (audio focus, audio mode, mute, slot retry) over the same connection.
type WebSocketServer struct {
	sessions ports.SessionService
	audio    ports.AudioService

	clients map[domain.SessionID]map[*client]struct{}
	mu      sync.RWMutex

	opts   Options
	logger *zap.SugaredLogger
}

// SyncMessage is the wire format for inbound client commands.
type SyncMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewWebSocketServer(
	sessions ports.SessionService,
	audio ports.AudioService,
	opts Options,
	logger *zap.SugaredLogger,
) *WebSocketServer {
	return &WebSocketServer{
		sessions: sessions,
		audio:    audio,
		clients:  make(map[domain.SessionID]map[*client]struct{}),
		opts:     opts,
		logger:   logger,
	}
}

func (s *WebSocketServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	session, err := s.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if s.opts.MaxConnections > 0 && s.TotalConnections() >= s.opts.MaxConnections {
		http.Error(w, "connection limit reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := &client{id: utils.GenerateClientID(), conn: conn}
	s.register(sessionID, c)

	s.logger.Infow("client connected",
		"client_id", c.id,
		"session_id", sessionID,
	)

	// Initial snapshot so the client starts from current state
	if err := c.writeJSON(s.opts.WriteTimeout, map[string]interface{}{
		"type":    "snapshot",
		"session": session,
	}); err != nil {
		s.logger.Infow("error sending snapshot", "client_id", c.id, "error", err)
		s.unregister(sessionID, c)
		return
	}

	conn.SetReadLimit(s.opts.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout))
		return nil
	})

	pingTicker := time.NewTicker(s.opts.PingInterval)
	defer pingTicker.Stop()

	limiter := rate.NewLimiter(rate.Limit(s.opts.MessagesPerSecond), s.opts.Burst)

	messageChan := make(chan SyncMessage, 10)
	errorChan := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			var msg SyncMessage
			if err := conn.ReadJSON(&msg); err != nil {
				errorChan <- err
				return
			}
			conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout))
			select {
			case messageChan <- msg:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case msg := <-messageChan:
			if !limiter.Allow() {
				s.sendError(c, "rate limit exceeded")
				continue
			}
			if err := s.handleMessage(context.Background(), sessionID, msg); err != nil {
				s.logger.Infow("error handling client message",
					"client_id", c.id,
					"session_id", sessionID,
					"type", msg.Type,
					"error", err,
				)
				s.sendError(c, err.Error())
			}

		case <-pingTicker.C:
			c.mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				s.logger.Infow("error sending ping", "client_id", c.id, "error", err)
				goto cleanup
			}

		case err := <-errorChan:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Infow("error reading client message", "client_id", c.id, "error", err)
			}
			goto cleanup
		}
	}

cleanup:
	s.unregister(sessionID, c)
	s.logger.Infow("client disconnected", "client_id", c.id, "session_id", sessionID)
}

func (s *WebSocketServer) handleMessage(ctx context.Context, sessionID domain.SessionID, msg SyncMessage) error {
	if msg.Type == "" {
		return fmt.Errorf("message type is required")
	}

	switch msg.Type {
	case "set_audio_focus":
		var payload struct {
			SlotIndex int `json:"slot_index"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid set_audio_focus payload: %w", err)
		}
		_, err := s.audio.SetFocus(ctx, sessionID, payload.SlotIndex)
		return err

	case "set_audio_mode":
		var payload struct {
			Mode domain.AudioMode `json:"mode"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid set_audio_mode payload: %w", err)
		}
		_, err := s.audio.SetMode(ctx, sessionID, payload.Mode)
		return err

	case "set_slot_muted":
		var payload struct {
			SlotIndex int  `json:"slot_index"`
			Muted     bool `json:"muted"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid set_slot_muted payload: %w", err)
		}
		_, err := s.audio.SetSlotMuted(ctx, sessionID, payload.SlotIndex, payload.Muted)
		return err

	case "retry_slot":
		var payload struct {
			SlotIndex int `json:"slot_index"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid retry_slot payload: %w", err)
		}
		return s.sessions.RetrySlot(ctx, sessionID, payload.SlotIndex)

	case "slot_ready":
		var payload struct {
			SlotIndex int `json:"slot_index"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid slot_ready payload: %w", err)
		}
		return s.sessions.MarkSlotReady(ctx, sessionID, payload.SlotIndex)

	case "slot_error":
		var payload struct {
			SlotIndex int    `json:"slot_index"`
			Message   string `json:"message"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid slot_error payload: %w", err)
		}
		return s.sessions.MarkSlotError(ctx, sessionID, payload.SlotIndex, payload.Message)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleEvent pushes a session event to every client watching that session.
// It is registered as an event bus handler.
func (s *WebSocketServer) HandleEvent(event *domain.Event) {
	message := map[string]interface{}{
		"type":  "event",
		"event": event,
	}
	if err := s.BroadcastToSession(event.SessionID, message); err != nil {
		s.logger.Warnw("broadcast failed",
			"session_id", event.SessionID,
			"type", event.Type,
			"error", err,
		)
	}
}

func (s *WebSocketServer) BroadcastToSession(sessionID domain.SessionID, message interface{}) error {
	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients[sessionID]))
	for c := range s.clients[sessionID] {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	var failed int
	for _, c := range clients {
		if err := c.writeJSON(s.opts.WriteTimeout, message); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("broadcast completed with %d errors", failed)
	}
	return nil
}

func (s *WebSocketServer) HealthCheck(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	sessions := len(s.clients)
	connections := 0
	for _, set := range s.clients {
		connections += len(set)
	}
	s.mu.RUnlock()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().Unix(),
		"sessions":    sessions,
		"connections": connections,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ConnectedClients returns the number of clients watching a session.
func (s *WebSocketServer) ConnectedClients(sessionID domain.SessionID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients[sessionID])
}

// TotalConnections returns the number of connected clients across all sessions.
func (s *WebSocketServer) TotalConnections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, set := range s.clients {
		total += len(set)
	}
	return total
}

func (s *WebSocketServer) register(sessionID domain.SessionID, c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.clients[sessionID]
	if !ok {
		set = make(map[*client]struct{})
		s.clients[sessionID] = set
	}
	set[c] = struct{}{}
}

func (s *WebSocketServer) unregister(sessionID domain.SessionID, c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.clients[sessionID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(s.clients, sessionID)
	}
}

func (s *WebSocketServer) sendError(c *client, message string) {
	c.writeJSON(s.opts.WriteTimeout, map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
