package booking

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the only accepted date format for check-in and check-out.
const DateLayout = "2006-01-02"

var (
	namePattern      = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneSeparators  = regexp.MustCompile(`[\s\-().+]`)
	phoneDigitsRange = regexp.MustCompile(`^\d{7,15}$`)
)

// ErrNoCurrentField is returned by ApplyInput when no field is being collected.
var ErrNoCurrentField = errors.New("booking: no field to update")

// ValidationError is a user-correctable problem with a single field.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(f Field, msg string) error {
	return &ValidationError{Field: f, Message: "❌ " + msg}
}

// ValidateName requires at least two characters made of letters, spaces,
// hyphens and apostrophes.
func ValidateName(value string) error {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) < 2 {
		return invalid(FieldName, "Name must be at least 2 characters.")
	}
	if !namePattern.MatchString(value) {
		return invalid(FieldName, "Name should only contain letters, spaces, hyphens, and apostrophes.")
	}
	return nil
}

// ValidateEmail checks for a local@domain.tld shape.
func ValidateEmail(value string) error {
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return invalid(FieldEmail, "Please enter a valid email address (e.g., user@example.com).")
	}
	return nil
}

// ValidatePhone strips common separators and expects 7-15 digits.
func ValidatePhone(value string) error {
	digits := phoneSeparators.ReplaceAllString(strings.TrimSpace(value), "")
	if !phoneDigitsRange.MatchString(digits) {
		return invalid(FieldPhone, "Please enter a valid phone number (7-15 digits).")
	}
	return nil
}

// ValidateRoomType accepts standard, deluxe or suite in any case.
func ValidateRoomType(value string) error {
	if !slices.Contains(ValidRoomTypes, strings.ToLower(strings.TrimSpace(value))) {
		return invalid(FieldRoomType, "Invalid room type. Please choose: **Standard**, **Deluxe**, or **Suite**.")
	}
	return nil
}

// ValidateDate accepts ISO calendar dates only.
func ValidateDate(f Field, value string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
		return invalid(f, "Invalid date format. Please use **YYYY-MM-DD** (e.g., 2026-01-25).")
	}
	return nil
}

// CheckoutAfterCheckin enforces check_out > check_in once both are present.
// Unset or unparsable dates are left to the per-field validators.
func CheckoutAfterCheckin(checkIn, checkOut string) error {
	if checkIn == "" || checkOut == "" {
		return nil
	}
	in, errIn := time.Parse(DateLayout, checkIn)
	out, errOut := time.Parse(DateLayout, checkOut)
	if errIn != nil || errOut != nil {
		return nil
	}
	if !out.After(in) {
		return invalid(FieldCheckOut, "Check-out date must be after check-in date.")
	}
	return nil
}

// Validate runs the validator for field and returns the normalized value.
// Room types are lowercased; everything else is trimmed.
func Validate(field Field, raw string) (string, error) {
	var err error
	switch field {
	case FieldName:
		err = ValidateName(raw)
	case FieldEmail:
		err = ValidateEmail(raw)
	case FieldPhone:
		err = ValidatePhone(raw)
	case FieldRoomType:
		err = ValidateRoomType(raw)
	case FieldCheckIn, FieldCheckOut:
		err = ValidateDate(field, raw)
	default:
		return raw, nil
	}
	if err != nil {
		return "", err
	}
	if field == FieldRoomType {
		return strings.ToLower(strings.TrimSpace(raw)), nil
	}
	return strings.TrimSpace(raw), nil
}
