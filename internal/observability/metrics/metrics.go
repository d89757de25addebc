package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for chat turns and bookings.
type ConversationMetrics struct {
	turnsTotal       *prometheus.CounterVec
	commandsTotal    *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	bookingsTotal    *prometheus.CounterVec
	emailsTotal      *prometheus.CounterVec
	retrievalLatency *prometheus.HistogramVec
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total chat turns by outcome",
		}, []string{"outcome"}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "conversation",
			Name:      "commands_total",
			Help:      "Total control commands issued by guests",
		}, []string{"command"}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "conversation",
			Name:      "validation_errors_total",
			Help:      "Total rejected booking field answers",
		}, []string{"field"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total bookings by final status",
		}, []string{"status"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Subsystem: "booking",
			Name:      "confirmation_emails_total",
			Help:      "Total confirmation emails by delivery result",
		}, []string{"result"}),
		retrievalLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hotel",
			Subsystem: "knowledge",
			Name:      "retrieval_latency_seconds",
			Help:      "Latency of document question answering",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.commandsTotal, m.validationErrors, m.bookingsTotal, m.emailsTotal, m.retrievalLatency)
	return m
}

func (m *ConversationMetrics) ObserveTurn(outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(outcome).Inc()
}

func (m *ConversationMetrics) ObserveCommand(command string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(command).Inc()
}

func (m *ConversationMetrics) ObserveValidationError(field string) {
	if m == nil {
		return
	}
	m.validationErrors.WithLabelValues(field).Inc()
}

func (m *ConversationMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *ConversationMetrics) ObserveConfirmationEmail(sent bool) {
	if m == nil {
		return
	}
	result := "failed"
	if sent {
		result = "sent"
	}
	m.emailsTotal.WithLabelValues(result).Inc()
}

func (m *ConversationMetrics) ObserveRetrieval(status string, seconds float64) {
	if m == nil {
		return
	}
	m.retrievalLatency.WithLabelValues(status).Observe(seconds)
}
