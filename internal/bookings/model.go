package bookings

import (
	"time"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Record is a stored booking joined with the guest who made it.
type Record struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name" validate:"required,guest_name"`
	Email      string    `json:"email" validate:"required,guest_email"`
	Phone      string    `json:"phone" validate:"required,guest_phone"`
	RoomType   string    `json:"room_type" validate:"required,oneof=standard deluxe suite"`
	CheckIn    string    `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut   string    `json:"check_out" validate:"required,datetime=2006-01-02"`
	Status     string    `json:"status" validate:"required,oneof=confirmed cancelled"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRecord builds an unsaved confirmed record from collected details.
func NewRecord(d booking.Details) *Record {
	return &Record{
		Name:     d.Name,
		Email:    d.Email,
		Phone:    d.Phone,
		RoomType: d.RoomType,
		CheckIn:  d.CheckIn,
		CheckOut: d.CheckOut,
		Status:   StatusConfirmed,
	}
}

// Details converts the record back to the shape used by mailers.
func (r *Record) Details() booking.Details {
	return booking.Details{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		RoomType: r.RoomType,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
	}
}
