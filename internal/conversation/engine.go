package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
	"github.com/wolfman30/hotel-booking-assistant/internal/intent"
	"github.com/wolfman30/hotel-booking-assistant/internal/observability/metrics"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// ErrNilState is returned when a turn is handled without a session state.
var ErrNilState = errors.New("conversation: state cannot be nil")

// BookingStore persists a completed booking and returns its identifier.
// Storage failures must be returned, never swallowed.
type BookingStore interface {
	StoreBooking(ctx context.Context, details booking.Details) (string, error)
}

// ConfirmationSender emails the guest. It reports delivery as a bool and
// never fails the turn.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, email, bookingID string, details booking.Details) bool
}

// TurnKind tags what the caller must do with a TurnResult.
type TurnKind int

const (
	// KindReply means Text is the complete answer for the guest.
	KindReply TurnKind = iota
	// KindDelegate means the message should be answered by retrieval.
	// Text, when set, is an acknowledgement to show first.
	KindDelegate
)

func (k TurnKind) String() string {
	if k == KindDelegate {
		return "delegate"
	}
	return "reply"
}

// TurnResult is the outcome of one guest message.
type TurnResult struct {
	Kind TurnKind
	Text string
}

// Delegated reports whether retrieval should answer this turn.
func (r TurnResult) Delegated() bool { return r.Kind == KindDelegate }

func reply(text string) TurnResult { return TurnResult{Kind: KindReply, Text: text} }
func delegate(ack string) TurnResult { return TurnResult{Kind: KindDelegate, Text: ack} }

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithGreeter overrides the greeting generator, mainly for deterministic tests.
func WithGreeter(g *intent.Greeter) EngineOption {
	return func(e *Engine) {
		if g != nil {
			e.greeter = g
		}
	}
}

// WithHistoryLimit caps the number of messages kept per session.
func WithHistoryLimit(limit int) EngineOption {
	return func(e *Engine) {
		if limit > 0 {
			e.historyLimit = limit
		}
	}
}

func WithLogger(logger *logging.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithMetrics(m *metrics.ConversationMetrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine decides, for every guest message, whether to answer directly or
// hand the message to document retrieval. It never touches storage of
// the session itself; callers load and save State around HandleTurn.
type Engine struct {
	store        BookingStore
	mailer       ConfirmationSender
	greeter      *intent.Greeter
	historyLimit int
	logger       *logging.Logger
	metrics      *metrics.ConversationMetrics
}

// NewEngine builds an engine. A nil mailer behaves like a provider that
// never delivers.
func NewEngine(store BookingStore, mailer ConfirmationSender, opts ...EngineOption) *Engine {
	if store == nil {
		panic("conversation: booking store cannot be nil")
	}
	e := &Engine{
		store:        store,
		mailer:       mailer,
		greeter:      intent.NewGreeter(nil),
		historyLimit: DefaultHistoryLimit,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleTurn processes one guest message against st, mutating it in place.
// An error is returned only when the booking store fails; st then still
// holds the pending booking so the guest can retry.
func (e *Engine) HandleTurn(ctx context.Context, st *State, text string) (TurnResult, error) {
	if st == nil {
		return TurnResult{}, ErrNilState
	}
	st.PendingResume = false
	st.addMessage(RoleUser, text, e.historyLimit)

	res, err := e.route(ctx, st, text)
	if err != nil {
		e.metrics.ObserveTurn("error")
		return TurnResult{}, err
	}
	if res.Text != "" {
		st.addMessage(RoleAssistant, res.Text, e.historyLimit)
	}
	if res.Delegated() && st.Booking != nil {
		st.PendingResume = true
	}
	e.metrics.ObserveTurn(res.Kind.String())
	return res, nil
}

func (e *Engine) route(ctx context.Context, st *State, text string) (TurnResult, error) {
	class := intent.Classify(text, st.BookingActive)

	switch class.Kind {
	case intent.KindGreeting:
		return reply(e.greeter.Respond(st.GuestName)), nil
	case intent.KindCommand:
		e.metrics.ObserveCommand(string(class.Command))
		return e.command(st, class.Command, text), nil
	case intent.KindOutOfBand:
		return delegate(lookupAck), nil
	case intent.KindBookingRequest:
		st.startBooking()
		prompt, _ := st.Booking.NextQuestion()
		e.logger.Debug("booking started")
		return reply(prompt + "\n\n" + bookingHint), nil
	}

	if !st.BookingActive {
		return delegate(""), nil
	}
	if st.AwaitingConfirmation {
		return e.confirm(ctx, st, text)
	}
	return e.collect(st, text), nil
}

func (e *Engine) command(st *State, cmd intent.Command, text string) TurnResult {
	switch cmd {
	case intent.CommandExit:
		// "cancel" and "back" at the summary cancel the booking rather
		// than just leaving booking mode; the state change is the same.
		word := strings.ToLower(strings.TrimSpace(text))
		if st.AwaitingConfirmation && (word == "cancel" || word == "back") {
			st.clearBooking()
			e.metrics.ObserveBooking("cancelled")
			return reply(cancelledReply)
		}
		if st.Booking != nil {
			e.metrics.ObserveBooking("abandoned")
		}
		st.clearBooking()
		return reply(exitReply)
	case intent.CommandDocuments:
		return delegate(documentsAck)
	case intent.CommandHelp:
		return reply(HelpText)
	case intent.CommandRestart:
		st.startBooking()
		prompt, _ := st.Booking.NextQuestion()
		return reply(prompt)
	}
	return delegate("")
}

func (e *Engine) confirm(ctx context.Context, st *State, text string) (TurnResult, error) {
	switch st.Booking.Confirm(text).Outcome {
	case booking.ConfirmationRejected:
		return reply(confirmReprompt), nil
	case booking.ConfirmationCancelled:
		st.clearBooking()
		e.metrics.ObserveBooking("cancelled")
		return reply(cancelledReply), nil
	}

	details := st.Booking.Details()
	bookingID, err := e.store.StoreBooking(ctx, details)
	if err != nil {
		st.Booking.Confirmed = false
		e.metrics.ObserveBooking("failed")
		return TurnResult{}, fmt.Errorf("conversation: store booking: %w", err)
	}
	e.metrics.ObserveBooking("confirmed")
	e.logger.Debug("booking stored", "booking_id", bookingID, "phase", st.Booking.Phase())

	sent := false
	if e.mailer != nil {
		sent = e.mailer.SendConfirmation(ctx, details.Email, bookingID, details)
	}
	e.metrics.ObserveConfirmationEmail(sent)
	e.logger.Info("booking confirmed", "booking_id", bookingID, "email_sent", sent)

	st.clearBooking()
	return reply(confirmedReply(bookingID, details.Email, sent)), nil
}

func (e *Engine) collect(st *State, text string) TurnResult {
	b := st.Booking
	if b.CurrentField == booking.FieldNone {
		if prompt, ok := b.NextQuestion(); ok {
			return reply(prompt)
		}
		st.AwaitingConfirmation = true
		return reply(b.Summary())
	}

	field := b.CurrentField
	if err := b.ApplyInput(text); err != nil {
		e.metrics.ObserveValidationError(field.String())
		return reply(err.Error() + "\n\n" + retrySuffix)
	}

	if prompt, ok := b.NextQuestion(); ok {
		return reply(acceptedPrefix + "\n\n" + prompt)
	}
	st.AwaitingConfirmation = true
	return reply(b.Summary())
}
