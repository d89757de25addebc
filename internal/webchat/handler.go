package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
	"github.com/wolfman30/hotel-booking-assistant/internal/conversation"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// Handler manages web chat connections.
type Handler struct {
	service conversation.Service
	logger  *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*wsConn // sessionID -> active connection
}

type wsConn struct {
	conn *websocket.Conn
	done chan struct{}
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type                 string           `json:"type"` // "message", "typing", "history", "session", "error", "pong"
	Text                 string           `json:"text,omitempty"`
	Role                 string           `json:"role,omitempty"`
	SessionID            string           `json:"session_id,omitempty"`
	Timestamp            string           `json:"timestamp,omitempty"`
	Messages             []HistoryMessage `json:"messages,omitempty"`
	BookingActive        bool             `json:"booking_active,omitempty"`
	AwaitingConfirmation bool             `json:"awaiting_confirmation,omitempty"`
	BookingPhase         booking.Phase    `json:"booking_phase,omitempty"`
}

// HistoryMessage is a simplified message for history replay.
type HistoryMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// NewHandler creates a web chat handler.
func NewHandler(service conversation.Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("webchat: conversation service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service:  service,
		logger:   logger,
		sessions: make(map[string]*wsConn),
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

// ActiveSessions reports how many sockets are currently open.
func (h *Handler) ActiveSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	ctx := r.Context()
	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	if msgs, err := h.service.GetHistory(ctx, sessionID); err == nil && len(msgs) > 0 {
		history := make([]HistoryMessage, 0, len(msgs))
		for _, m := range msgs {
			history = append(history, HistoryMessage{Role: m.Role, Text: m.Content})
		}
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: history})
	} else if err != nil {
		h.logger.Warn("webchat: failed to load history", "session_id", sessionID, "error", err)
	}

	wsc := &wsConn{conn: conn, done: make(chan struct{})}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[sessionID] == wsc {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
		close(wsc.done)
	}()

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		h.processMessage(ctx, sessionID, msg.Text)
	}
}

func (h *Handler) processMessage(ctx context.Context, sessionID, text string) {
	h.SendToSession(sessionID, OutboundMessage{Type: "typing"})

	resp, err := h.service.ProcessMessage(ctx, conversation.MessageRequest{
		SessionID: sessionID,
		Message:   text,
	})
	if err != nil {
		h.logger.Error("webchat: failed to process message", "error", err, "session_id", sessionID)
		h.SendToSession(sessionID, OutboundMessage{
			Type: "error",
			Text: "Sorry, something went wrong. Please try again.",
		})
		return
	}

	ts := resp.Timestamp.UTC().Format(time.RFC3339)
	for _, reply := range resp.Replies {
		h.SendToSession(sessionID, OutboundMessage{
			Type:                 "message",
			Role:                 conversation.RoleAssistant,
			Text:                 reply,
			Timestamp:            ts,
			BookingActive:        resp.BookingActive,
			AwaitingConfirmation: resp.AwaitingConfirmation,
			BookingPhase:         resp.BookingPhase,
		})
	}
}

// SendToSession sends a message to an active WebSocket session.
func (h *Handler) SendToSession(sessionID string, msg OutboundMessage) {
	h.mu.RLock()
	wsc, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := websocket.JSON.Send(wsc.conn, msg); err != nil {
		h.logger.Debug("webchat: send failed", "session_id", sessionID, "error", err)
	}
}
