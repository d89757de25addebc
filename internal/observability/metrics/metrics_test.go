package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestConversationMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewConversationMetrics(reg)

	m.ObserveTurn("reply")
	m.ObserveTurn("reply")
	m.ObserveTurn("delegate")
	m.ObserveCommand("help")
	m.ObserveValidationError("email")
	m.ObserveBooking("confirmed")
	m.ObserveConfirmationEmail(true)
	m.ObserveConfirmationEmail(false)
	m.ObserveRetrieval("ok", 0.25)

	if got := testutil.ToFloat64(m.turnsTotal.WithLabelValues("reply")); got != 2 {
		t.Fatalf("expected 2 reply turns, got %v", got)
	}
	if got := testutil.ToFloat64(m.validationErrors.WithLabelValues("email")); got != 1 {
		t.Fatalf("expected 1 email validation error, got %v", got)
	}
	if got := testutil.ToFloat64(m.emailsTotal.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed email, got %v", got)
	}
	if got := testutil.CollectAndCount(m.retrievalLatency); got != 1 {
		t.Fatalf("expected 1 retrieval series, got %d", got)
	}
}

func TestRetrievalLatencyHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewConversationMetrics(reg)

	m.ObserveRetrieval("ok", 0.2)
	m.ObserveRetrieval("ok", 0.4)

	metric := &dto.Metric{}
	observer := m.retrievalLatency.WithLabelValues("ok").(prometheus.Histogram)
	if err := observer.Write(metric); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	if got := metric.GetHistogram().GetSampleCount(); got != 2 {
		t.Fatalf("expected 2 samples, got %d", got)
	}
	if got := metric.GetHistogram().GetSampleSum(); got < 0.59 || got > 0.61 {
		t.Fatalf("expected sum near 0.6, got %v", got)
	}
}

func TestConversationMetricsNilSafe(t *testing.T) {
	var m *ConversationMetrics
	m.ObserveTurn("reply")
	m.ObserveCommand("exit")
	m.ObserveValidationError("name")
	m.ObserveBooking("confirmed")
	m.ObserveConfirmationEmail(true)
	m.ObserveRetrieval("error", 0.1)
}
