package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
)

func TestAddMessageKeepsNewest(t *testing.T) {
	st := NewState()
	for _, text := range []string{"a", "b", "c", "d"} {
		st.addMessage(RoleUser, text, 3)
	}
	require.Len(t, st.Messages, 3)
	assert.Equal(t, "b", st.Messages[0].Content)
	assert.Equal(t, "d", st.Messages[2].Content)
}

func TestResumePrompt(t *testing.T) {
	st := NewState()
	_, ok := st.ResumePrompt()
	assert.False(t, ok)

	st.startBooking()
	_, _ = st.Booking.NextQuestion()
	st.PendingResume = true

	prompt, ok := st.ResumePrompt()
	require.True(t, ok)
	assert.Equal(t, booking.FieldName.Prompt(), prompt)
	assert.False(t, st.PendingResume)

	_, ok = st.ResumePrompt()
	assert.False(t, ok)
}

func TestResumePromptWhileAwaitingConfirmation(t *testing.T) {
	st := NewState()
	st.startBooking()
	st.AwaitingConfirmation = true
	st.PendingResume = true

	prompt, ok := st.ResumePrompt()
	require.True(t, ok)
	assert.Equal(t, confirmReprompt, prompt)
}

func TestCloneIsDeep(t *testing.T) {
	st := NewState()
	st.startBooking()
	st.addMessage(RoleUser, "book a room", 0)

	cp := st.Clone()
	cp.Messages[0].Content = "changed"
	cp.Booking.Name = "Ana Gomez"

	assert.Equal(t, "book a room", st.Messages[0].Content)
	assert.Empty(t, st.Booking.Name)
	assert.Nil(t, (*State)(nil).Clone())
}

func TestClearBookingReturnsToChat(t *testing.T) {
	st := NewState()
	st.startBooking()
	st.clearBooking()

	assert.False(t, st.BookingActive)
	assert.Nil(t, st.Booking)
	assert.Equal(t, ModeChat, st.Mode)
}
