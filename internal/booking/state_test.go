package booking

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fill answers every question in order and fails the test on any rejection.
func fill(t *testing.T, s *State, answers ...string) {
	t.Helper()
	for _, answer := range answers {
		_, ok := s.NextQuestion()
		require.True(t, ok, "no question pending for answer %q", answer)
		require.NoError(t, s.ApplyInput(answer), "answer %q rejected", answer)
	}
}

func TestNextQuestion_FixedOrder(t *testing.T) {
	s := NewState()
	answers := map[Field]string{
		FieldName:     "Ana Gomez",
		FieldEmail:    "ana@x.com",
		FieldPhone:    "555-1234567",
		FieldRoomType: "Deluxe",
		FieldCheckIn:  "2026-01-10",
		FieldCheckOut: "2026-01-12",
	}

	var asked []Field
	for {
		prompt, ok := s.NextQuestion()
		if !ok {
			break
		}
		assert.Equal(t, s.CurrentField.Prompt(), prompt)
		asked = append(asked, s.CurrentField)
		require.NoError(t, s.ApplyInput(answers[s.CurrentField]))
		if len(asked) > len(RequiredFields) {
			t.Fatal("asked more questions than there are fields")
		}
	}
	assert.Equal(t, RequiredFields, asked)
	assert.Empty(t, s.MissingFields())
	assert.Equal(t, PhaseAwaitingConfirmation, s.Phase())
}

func TestNextQuestion_NamesAMissingField(t *testing.T) {
	s := NewState()
	fill(t, s, "Ana Gomez", "ana@x.com")

	_, ok := s.NextQuestion()
	require.True(t, ok)
	assert.Contains(t, s.MissingFields(), s.CurrentField)
	assert.Equal(t, FieldPhone, s.CurrentField)
}

func TestApplyInput_RejectedNameKeepsField(t *testing.T) {
	s := NewState()
	_, _ = s.NextQuestion()

	err := s.ApplyInput("J")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name must be at least 2 characters")
	assert.Equal(t, FieldName, s.CurrentField)
	assert.Empty(t, s.Name)
}

func TestApplyInput_NoCurrentField(t *testing.T) {
	s := NewState()
	assert.True(t, errors.Is(s.ApplyInput("Ana"), ErrNoCurrentField))
}

func TestApplyInput_Idempotent(t *testing.T) {
	a, b := NewState(), NewState()
	for _, s := range []*State{a, b} {
		_, _ = s.NextQuestion()
	}
	require.NoError(t, a.ApplyInput(" Ana Gomez"))
	require.NoError(t, b.ApplyInput(" Ana Gomez"))
	require.NoError(t, b.ApplyInput(" Ana Gomez"))
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, FieldName, b.CurrentField)
}

func TestApplyInput_CheckoutBeforeCheckinIsReverted(t *testing.T) {
	s := NewState()
	fill(t, s, "Ana Gomez", "ana@x.com", "555-1234567", "Deluxe", "2026-01-10")

	_, ok := s.NextQuestion()
	require.True(t, ok)
	require.Equal(t, FieldCheckOut, s.CurrentField)

	for _, bad := range []string{"2026-01-05", "2026-01-10"} {
		err := s.ApplyInput(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Check-out date must be after check-in date.")
		assert.Empty(t, s.CheckOut)
		assert.Equal(t, FieldCheckOut, s.CurrentField)
		assert.Equal(t, []Field{FieldCheckOut}, s.MissingFields())
	}

	require.NoError(t, s.ApplyInput("2026-01-12"))
	assert.True(t, s.Complete())
	assert.Equal(t, "deluxe", s.RoomType)
}

func TestSummary(t *testing.T) {
	s := NewState()
	fill(t, s, "Ana Gomez", "ana@x.com", "555-1234567", "SUITE", "2026-01-10", "2026-01-12")

	summary := s.Summary()
	for _, want := range []string{
		"Name: Ana Gomez",
		"Email: ana@x.com",
		"Phone: 555-1234567",
		"Room Type: Suite",
		"Check-in: 2026-01-10",
		"Check-out: 2026-01-12",
		"**confirm**",
		"**cancel**",
	} {
		assert.Contains(t, summary, want)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input     string
		outcome   ConfirmationOutcome
		confirmed bool
	}{
		{"confirm", ConfirmationAccepted, true},
		{"  CONFIRM ", ConfirmationAccepted, true},
		{"Cancel", ConfirmationCancelled, false},
		{"yes please", ConfirmationRejected, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewState()
			res := s.Confirm(tt.input)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.NotEmpty(t, res.Message)
			assert.Equal(t, tt.confirmed, s.Confirmed)
			if tt.confirmed {
				assert.Equal(t, PhaseConfirmed, s.Phase())
			}
		})
	}
}

func TestDetailsNights(t *testing.T) {
	assert.Equal(t, 2, Details{CheckIn: "2026-01-10", CheckOut: "2026-01-12"}.Nights())
	assert.Equal(t, 0, Details{CheckIn: "2026-01-10", CheckOut: "2026-01-10"}.Nights())
	assert.Equal(t, 0, Details{CheckIn: "bogus", CheckOut: "2026-01-10"}.Nights())
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := NewState()
	fill(t, s, "Ana Gomez", "ana@x.com")
	_, _ = s.NextQuestion()

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"current_field":"phone"`)

	var restored State
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *s, restored)
}
