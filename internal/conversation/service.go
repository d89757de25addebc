package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
	"github.com/wolfman30/hotel-booking-assistant/internal/observability/metrics"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

var (
	ErrMissingSession = errors.New("conversation: session id is required")
	ErrEmptyMessage   = errors.New("conversation: message is empty")
)

// Service describes how the chat backend handles guest sessions.
type Service interface {
	ProcessMessage(ctx context.Context, req MessageRequest) (*Response, error)
	GetHistory(ctx context.Context, sessionID string) ([]Message, error)
	ResetSession(ctx context.Context, sessionID string) error
}

// Retriever answers free-form questions from the hotel documents.
type Retriever interface {
	Answer(ctx context.Context, query string) (string, error)
}

// MessageRequest represents a single turn in the conversation.
type MessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	GuestName string `json:"guest_name,omitempty"`
}

// Response is a simple DTO returned to the API layer.
type Response struct {
	SessionID            string        `json:"session_id"`
	Message              string        `json:"message"`
	Replies              []string      `json:"replies"`
	Delegated            bool          `json:"delegated"`
	Mode                 Mode          `json:"mode"`
	BookingActive        bool          `json:"booking_active"`
	AwaitingConfirmation bool          `json:"awaiting_confirmation"`
	BookingPhase         booking.Phase `json:"booking_phase,omitempty"`
	Timestamp            time.Time     `json:"timestamp"`
}

// ChatService loads the session, runs the engine, answers delegated turns
// through the Retriever and saves the session again. Turns for the same
// session are serialized.
type ChatService struct {
	engine    *Engine
	sessions  SessionStore
	retriever Retriever
	logger    *logging.Logger
	metrics   *metrics.ConversationMetrics

	locks sessionLocks
}

// NewChatService wires the engine to a session store. retriever may be nil,
// in which case delegated turns get FallbackReply.
func NewChatService(engine *Engine, sessions SessionStore, retriever Retriever, logger *logging.Logger, m *metrics.ConversationMetrics) *ChatService {
	if engine == nil {
		panic("conversation: engine cannot be nil")
	}
	if sessions == nil {
		panic("conversation: session store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatService{
		engine:    engine,
		sessions:  sessions,
		retriever: retriever,
		logger:    logger,
		metrics:   m,
	}
}

// ProcessMessage handles one guest message end to end.
func (s *ChatService) ProcessMessage(ctx context.Context, req MessageRequest) (*Response, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	defer s.locks.acquire(sessionID)()

	st, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if req.GuestName != "" {
		st.GuestName = req.GuestName
	}

	res, err := s.engine.HandleTurn(ctx, st, req.Message)
	if err != nil {
		if saveErr := s.sessions.Save(ctx, sessionID, st); saveErr != nil {
			s.logger.Error("failed to save session after turn error", "session_id", sessionID, "error", saveErr)
		}
		return nil, err
	}

	var replies []string
	if res.Text != "" {
		replies = append(replies, res.Text)
	}
	if res.Delegated() {
		answer := s.answer(ctx, req.Message)
		st.addMessage(RoleAssistant, answer, s.engine.historyLimit)
		replies = append(replies, answer)

		if prompt, ok := st.ResumePrompt(); ok {
			resume := resumePrefix + " " + prompt
			st.addMessage(RoleAssistant, resume, s.engine.historyLimit)
			replies = append(replies, resume)
		}
	}

	if err := s.sessions.Save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	s.logger.Debug("turn processed",
		"session_id", sessionID,
		"delegated", res.Delegated(),
		"mode", st.Mode,
	)

	var phase booking.Phase
	if st.Booking != nil {
		phase = st.Booking.Phase()
	}

	return &Response{
		SessionID:            sessionID,
		Message:              strings.Join(replies, "\n\n"),
		Replies:              replies,
		Delegated:            res.Delegated(),
		Mode:                 st.Mode,
		BookingActive:        st.BookingActive,
		AwaitingConfirmation: st.AwaitingConfirmation,
		BookingPhase:         phase,
		Timestamp:            time.Now().UTC(),
	}, nil
}

// GetHistory returns the stored transcript; unknown sessions have none.
func (s *ChatService) GetHistory(ctx context.Context, sessionID string) ([]Message, error) {
	st, err := s.sessions.Load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return []Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	return st.Messages, nil
}

// ResetSession forgets everything about a session.
func (s *ChatService) ResetSession(ctx context.Context, sessionID string) error {
	defer s.locks.acquire(sessionID)()
	return s.sessions.Delete(ctx, sessionID)
}

func (s *ChatService) loadOrCreate(ctx context.Context, sessionID string) (*State, error) {
	st, err := s.sessions.Load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("conversation: load session %s: %w", sessionID, err)
	}
	return st, nil
}

func (s *ChatService) answer(ctx context.Context, query string) string {
	if s.retriever == nil {
		return FallbackReply
	}
	start := time.Now()
	answer, err := s.retriever.Answer(ctx, query)
	if err != nil {
		s.metrics.ObserveRetrieval("error", time.Since(start).Seconds())
		s.logger.Warn("retrieval failed", "error", err)
		return FallbackReply
	}
	s.metrics.ObserveRetrieval("ok", time.Since(start).Seconds())
	if strings.TrimSpace(answer) == "" {
		return FallbackReply
	}
	return answer
}
