package intent

import (
	"math/rand/v2"
	"sync"
)

var greetingResponses = []string{
	"Welcome to our Hotel Booking Assistant! 🏨 I'm here to assist you with room reservations, guest inquiries, and hotel information. How may I be of service today?",
	"Good day! Thank you for choosing our hotel. I'm delighted to assist you with your booking needs or any questions about our properties and amenities.",
	"Warm greetings! Welcome to our hospitality service. Whether you're looking to make a reservation or learn more about our facilities, I'm at your service.",
	"Hello and welcome! 🎉 Thank you for visiting our booking service. I'm ready to help you secure the perfect room or answer any questions you may have.",
	"Greetings! It's a pleasure to assist you. As your hotel concierge assistant, I'm here to facilitate your reservation and ensure your stay is exceptional.",
}

// Picker chooses an index in [0, n).
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int { return f(n) }

// FixedPicker always returns the same index (clamped to the pool size).
type FixedPicker int

func (p FixedPicker) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(p) % n
	if i < 0 {
		i += n
	}
	return i
}

// RandPicker draws from a seeded PCG source.
type RandPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandPicker seeds a picker so greeting order is reproducible.
func NewRandPicker(seed uint64) *RandPicker {
	return &RandPicker{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandPicker) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}

// Greeter produces the reply to a greeting.
type Greeter struct {
	picker Picker
}

// NewGreeter builds a greeter. A nil picker falls back to the global
// math/rand source.
func NewGreeter(picker Picker) *Greeter {
	if picker == nil {
		picker = PickerFunc(rand.IntN)
	}
	return &Greeter{picker: picker}
}

// Respond returns one of the greeting responses, addressed to name when
// one is known.
func (g *Greeter) Respond(name string) string {
	response := greetingResponses[g.picker.Pick(len(greetingResponses))]
	if name != "" {
		return "Wonderful to meet you, " + name + "! " + response
	}
	return response
}
