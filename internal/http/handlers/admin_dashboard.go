package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/hotel-booking-assistant/internal/bookings"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

const (
	defaultBookingListLimit = 100
	maxBookingListLimit     = 500
)

// BookingReader is the read side of the bookings service the dashboard needs.
type BookingReader interface {
	Get(ctx context.Context, id string) (*bookings.Record, error)
	List(ctx context.Context, filter bookings.ListFilter) ([]*bookings.Record, error)
	Stats(ctx context.Context) (*bookings.Stats, error)
}

// AdminBookingsHandler serves the staff dashboard over stored bookings.
type AdminBookingsHandler struct {
	bookings BookingReader
	logger   *logging.Logger
}

// NewAdminBookingsHandler creates a new admin bookings handler.
func NewAdminBookingsHandler(reader BookingReader, logger *logging.Logger) *AdminBookingsHandler {
	if reader == nil {
		panic("handlers: booking reader cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminBookingsHandler{
		bookings: reader,
		logger:   logger,
	}
}

// BookingListItem is one row on the dashboard.
type BookingListItem struct {
	ID         string `json:"id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	RoomType   string `json:"room_type"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

func newBookingListItem(rec *bookings.Record) BookingListItem {
	return BookingListItem{
		ID:         rec.ID,
		GuestName:  rec.Name,
		GuestEmail: rec.Email,
		GuestPhone: rec.Phone,
		RoomType:   rec.RoomType,
		CheckIn:    rec.CheckIn,
		CheckOut:   rec.CheckOut,
		Nights:     rec.Details().Nights(),
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListBookingsResponse is the response for the booking list.
type ListBookingsResponse struct {
	Bookings []BookingListItem `json:"bookings"`
	Total    int               `json:"total"`
}

// BookingStatsResponse summarises stored bookings.
type BookingStatsResponse = bookings.Stats

// ListBookings returns every booking, newest first.
// GET /admin/bookings?status=confirmed&limit=50
func (h *AdminBookingsHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := bookings.ListFilter{Limit: defaultBookingListLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			jsonError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = min(n, maxBookingListLimit)
	}
	if status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))); status != "" {
		if status != bookings.StatusConfirmed && status != bookings.StatusCancelled {
			jsonError(w, "invalid status", http.StatusBadRequest)
			return
		}
		filter.Status = status
	}

	recs, err := h.bookings.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list bookings", "status", filter.Status, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]BookingListItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, newBookingListItem(rec))
	}
	writeJSON(w, http.StatusOK, ListBookingsResponse{Bookings: items, Total: len(items)})
}

// GetBooking returns one booking.
// GET /admin/bookings/{bookingID}
func (h *AdminBookingsHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookingID")
	rec, err := h.bookings.Get(r.Context(), id)
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		jsonError(w, "booking not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("failed to load booking", "booking_id", id, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newBookingListItem(rec))
}

// GetBookingStats returns booking counts.
// GET /admin/bookings/stats
func (h *AdminBookingsHandler) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bookings.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to load booking stats", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// RegisterAdminRoutes mounts the dashboard endpoints on an already
// authenticated router.
func RegisterAdminRoutes(r chi.Router, reader BookingReader, logger *logging.Logger) {
	h := NewAdminBookingsHandler(reader, logger)
	r.Get("/bookings", h.ListBookings)
	r.Get("/bookings/stats", h.GetBookingStats)
	r.Get("/bookings/{bookingID}", h.GetBooking)
}
