package conversation

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/hotel-booking-assistant/internal/bookings"
	"github.com/wolfman30/hotel-booking-assistant/internal/intent"
	"github.com/wolfman30/hotel-booking-assistant/internal/observability/metrics"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// Every answer the field validators accept must also be storable.
func TestHandleTurn_ConfirmPersistsWhatValidatorsAccept(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"leading dot email", []string{"Ana Gomez", ".ana@x.com", "555-1234567", "Deluxe", "2026-01-10", "2026-01-12"}},
		{"double dot email", []string{"Ana Gomez", "ana..gomez@x.com", "555-1234567", "suite", "2026-01-10", "2026-01-12"}},
		{"long name", []string{strings.Repeat("a", 130), "ana@x.com", "555-1234567", "standard", "2026-01-10", "2026-01-12"}},
		{"spaced phone", []string{"Ana Gomez", "ana@x.com", "1 - 2 - 3 - 4 - 5 - 6 - 7 - 8 - 9 - 0", "Deluxe", "2026-01-10", "2026-01-12"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := bookings.NewInMemoryRepository()
			svc := bookings.NewService(repo, logging.Discard())
			e := NewEngine(svc, nil,
				WithGreeter(intent.NewGreeter(intent.FixedPicker(0))),
				WithLogger(logging.Discard()),
				WithMetrics(metrics.NewConversationMetrics(prometheus.NewRegistry())),
			)

			st := NewState()
			turn(t, e, st, "I want to book a room")
			for _, answer := range tt.answers {
				res := turn(t, e, st, answer)
				require.NotContains(t, res.Text, "❌", "answer %q rejected", answer)
			}
			require.True(t, st.AwaitingConfirmation)

			res, err := e.HandleTurn(context.Background(), st, "confirm")
			require.NoError(t, err)
			assert.Equal(t, KindReply, res.Kind)
			assert.False(t, st.AwaitingConfirmation)
			assert.Nil(t, st.Booking)

			stored, err := svc.List(context.Background(), bookings.ListFilter{})
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Equal(t, tt.answers[1], stored[0].Email)
			assert.Contains(t, res.Text, stored[0].ID)
		})
	}
}
