package bookings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wolfman30/hotel-booking-assistant/internal/booking"
)

var validate = newValidator()

// newValidator registers the guest field rules so a record accepted turn by
// turn in the chat is never rejected at write time.
func newValidator() *validator.Validate {
	v := validator.New()
	rules := map[string]func(string) error{
		"guest_name":  booking.ValidateName,
		"guest_email": booking.ValidateEmail,
		"guest_phone": booking.ValidatePhone,
	}
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()) == nil
		}); err != nil {
			panic(fmt.Sprintf("bookings: register %s validator: %v", tag, err))
		}
	}
	return v
}

// ValidationError lists every invalid field of a Record.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "bookings: invalid record: " + strings.Join(msgs, "; ")
}

// Validate checks a record before it is written.
func (r *Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		fields := make(map[string]string)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = fieldMessage(fe)
			}
		} else {
			return fmt.Errorf("bookings: validate: %w", err)
		}
		return &ValidationError{Fields: fields}
	}
	if err := booking.CheckoutAfterCheckin(r.CheckIn, r.CheckOut); err != nil {
		return ErrInvalidDates
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "guest_name":
		return "Must contain only letters, spaces, hyphens and apostrophes"
	case "guest_email":
		return "Invalid email format"
	case "guest_phone":
		return "Must contain 7 to 15 digits"
	case "min":
		return fmt.Sprintf("Minimum length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("Must be a date in %s format", fe.Param())
	default:
		return fmt.Sprintf("Invalid %s field", fe.Field())
	}
}
