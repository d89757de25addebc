package bookings

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

var bookingsTracer = otel.Tracer("hotel.internal.bookings")

// Service persists bookings collected by the chat engine.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs a bookings service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// StoreBooking writes a confirmed booking and returns its id.
func (s *Service) StoreBooking(ctx context.Context, d booking.Details) (string, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.store")
	defer span.End()
	span.SetAttributes(
		attribute.String("hotel.room_type", d.RoomType),
		attribute.Int("hotel.nights", d.Nights()),
	)

	rec := NewRecord(d)
	if err := s.repo.Create(ctx, rec); err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttributes(attribute.String("hotel.booking_id", rec.ID))
	s.logger.Info("booking stored", "booking_id", rec.ID, "customer_id", rec.CustomerID, "room_type", rec.RoomType)
	return rec.ID, nil
}

// Get loads one booking.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.get")
	defer span.End()

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return rec, nil
}

// List returns recent bookings, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.list")
	defer span.End()
	span.SetAttributes(
		attribute.String("hotel.status_filter", filter.Status),
		attribute.Int("hotel.limit", filter.Limit),
	)

	recs, err := s.repo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return recs, nil
}

// Stats summarises every stored booking for the staff dashboard.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.stats")
	defer span.End()

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return stats, nil
}
