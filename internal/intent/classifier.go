// Package intent decides, from the raw text of a message, whether the guest
// is greeting, issuing a navigation command, asking to book, or just talking.
// Matching is deliberately literal: explicit phrase lists, no language model.
package intent

import (
	"slices"
	"strings"
)

// Command is a navigation command recognized at any point in a conversation.
type Command string

const (
	CommandNone      Command = ""
	CommandExit      Command = "exit"
	CommandDocuments Command = "documents"
	CommandHelp      Command = "help"
	CommandRestart   Command = "restart"
)

var (
	exitWords     = []string{"back", "exit", "quit", "cancel"}
	documentWords = []string{"documents", "info", "rag", "raag", "hotel info", "details"}
	restartWords  = []string{"restart", "start over", "begin again"}
)

var greetingPhrases = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"greetings", "welcome", "howdy", "hiya", "sup", "yo", "what's up",
	"hallo", "bonjour", "buenas", "namaste", "salaam", "habibi",
}

var bookingPhrases = []string{
	"i want to book",
	"book a room",
	"reserve a room",
	"make a booking",
	"i want to reserve",
	"book hotel",
	"confirm booking",
	"start booking",
	"new booking",
	"how can i book room here",
	"help me book",
}

func normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// IsGreeting reports whether the message contains any greeting phrase.
// This is a substring match, so "this" counts as "hi".
func IsGreeting(message string) bool {
	message = normalize(message)
	for _, g := range greetingPhrases {
		if strings.Contains(message, g) {
			return true
		}
	}
	return false
}

// DetectCommand matches the whole message (trimmed, any case) against the
// command vocabularies.
func DetectCommand(message string) Command {
	message = normalize(message)
	switch {
	case slices.Contains(exitWords, message):
		return CommandExit
	case slices.Contains(documentWords, message):
		return CommandDocuments
	case message == "help":
		return CommandHelp
	case slices.Contains(restartWords, message):
		return CommandRestart
	default:
		return CommandNone
	}
}

// IsQuestion reports whether the message carries a question mark.
func IsQuestion(message string) bool {
	return strings.Contains(message, "?")
}

// IsBookingRequest reports an explicit request to start a booking.
// Questions never start a booking even when they contain a phrase.
func IsBookingRequest(message string) bool {
	if IsQuestion(message) {
		return false
	}
	message = normalize(message)
	for _, phrase := range bookingPhrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return false
}

// Kind is the single outcome of classifying a message.
type Kind string

const (
	KindGreeting       Kind = "greeting"
	KindCommand        Kind = "command"
	KindOutOfBand      Kind = "out_of_band_question"
	KindBookingRequest Kind = "booking_request"
	KindText           Kind = "text"
)

// Classification is the first rule that matched, in priority order.
type Classification struct {
	Kind    Kind
	Command Command
}

// Classify applies greeting, command, escape-hatch and booking-start rules
// in that order. bookingActive switches the last two: a question is only
// out-of-band mid-booking, and booking requests are only checked outside one.
func Classify(message string, bookingActive bool) Classification {
	if IsGreeting(message) {
		return Classification{Kind: KindGreeting}
	}
	if cmd := DetectCommand(message); cmd != CommandNone {
		return Classification{Kind: KindCommand, Command: cmd}
	}
	if bookingActive {
		if IsQuestion(message) {
			return Classification{Kind: KindOutOfBand}
		}
		return Classification{Kind: KindText}
	}
	if IsBookingRequest(message) {
		return Classification{Kind: KindBookingRequest}
	}
	return Classification{Kind: KindText}
}
