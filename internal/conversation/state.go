package conversation

import (
	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
)

// DefaultHistoryLimit is how many messages a session keeps.
const DefaultHistoryLimit = 25

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation transcript.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Mode is whether the session is chatting freely or filling a booking.
type Mode string

const (
	ModeChat    Mode = "chat"
	ModeBooking Mode = "booking"
)

// State is everything the engine knows about one chat session. It is
// passed into every turn and owned by the caller between turns.
//
// Booking is non-nil exactly when BookingActive or AwaitingConfirmation.
type State struct {
	Messages             []Message      `json:"messages"`
	BookingActive        bool           `json:"booking_active"`
	Booking              *booking.State `json:"booking_state,omitempty"`
	AwaitingConfirmation bool           `json:"awaiting_confirmation"`
	Mode                 Mode           `json:"mode"`

	// GuestName is an optional display name supplied by the UI.
	GuestName string `json:"guest_name,omitempty"`
	// PendingResume is set when the last turn handed a mid-booking
	// message to retrieval, so the caller can re-ask the open question.
	PendingResume bool `json:"pending_resume,omitempty"`
}

// NewState starts a session in chat mode with no history.
func NewState() *State {
	return &State{
		Messages: []Message{},
		Mode:     ModeChat,
	}
}

// addMessage appends to the transcript, dropping the oldest entries past limit.
func (s *State) addMessage(role, content string, limit int) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
	if limit > 0 && len(s.Messages) > limit {
		s.Messages = append([]Message(nil), s.Messages[len(s.Messages)-limit:]...)
	}
}

func (s *State) startBooking() {
	s.BookingActive = true
	s.Booking = booking.NewState()
	s.AwaitingConfirmation = false
	s.Mode = ModeBooking
}

func (s *State) clearBooking() {
	s.BookingActive = false
	s.AwaitingConfirmation = false
	s.Booking = nil
	s.Mode = ModeChat
}

// ResumePrompt returns the question to repeat after a delegated answer
// and clears PendingResume. It returns false when nothing is pending.
func (s *State) ResumePrompt() (string, bool) {
	if !s.PendingResume {
		return "", false
	}
	s.PendingResume = false
	if s.Booking == nil {
		return "", false
	}
	if s.AwaitingConfirmation {
		return confirmReprompt, true
	}
	if s.Booking.CurrentField == booking.FieldNone {
		return "", false
	}
	return s.Booking.CurrentField.Prompt(), true
}

// Clone returns a deep copy so stores never share memory with callers.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Messages = append([]Message(nil), s.Messages...)
	if s.Booking != nil {
		b := *s.Booking
		out.Booking = &b
	}
	return &out
}
