package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		raw     string
		want    string
		wantErr string
	}{
		{"name ok", FieldName, "  Ana Gomez ", "Ana Gomez", ""},
		{"name with apostrophe and hyphen", FieldName, "Mary-Jane O'Neil", "Mary-Jane O'Neil", ""},
		{"name too short", FieldName, "J", "", "Name must be at least 2 characters."},
		{"name short after trim", FieldName, "  J  ", "", "Name must be at least 2 characters."},
		{"name with digits", FieldName, "R2D2", "", "Name should only contain letters"},
		{"email ok", FieldEmail, " ana@x.com ", "ana@x.com", ""},
		{"email no tld", FieldEmail, "ana@localhost", "", "valid email address"},
		{"email short tld", FieldEmail, "ana@x.c", "", "valid email address"},
		{"email no at", FieldEmail, "ana.x.com", "", "valid email address"},
		{"phone with dashes", FieldPhone, "555-1234567", "555-1234567", ""},
		{"phone with plus and parens", FieldPhone, "+1 (555) 123.4567", "+1 (555) 123.4567", ""},
		{"phone too short", FieldPhone, "12345", "", "7-15 digits"},
		{"phone too long", FieldPhone, "1234567890123456", "", "7-15 digits"},
		{"phone letters", FieldPhone, "555-CALL-NOW", "", "7-15 digits"},
		{"room mixed case", FieldRoomType, "Deluxe", "deluxe", ""},
		{"room padded", FieldRoomType, "  SUITE ", "suite", ""},
		{"room unknown", FieldRoomType, "penthouse", "", "Invalid room type"},
		{"check in ok", FieldCheckIn, "2026-01-10", "2026-01-10", ""},
		{"check in bad format", FieldCheckIn, "10/01/2026", "", "YYYY-MM-DD"},
		{"check out impossible date", FieldCheckOut, "2026-02-30", "", "YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.field, tt.raw)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, got)
		})
	}
}

func TestValidate_UnknownFieldPassesThrough(t *testing.T) {
	got, err := Validate(FieldNone, " anything ")
	require.NoError(t, err)
	assert.Equal(t, " anything ", got)
}

func TestCheckoutAfterCheckin(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{"later", "2026-01-10", "2026-01-12", false},
		{"same day", "2026-01-10", "2026-01-10", true},
		{"earlier", "2026-01-10", "2026-01-05", true},
		{"across year", "2025-12-31", "2026-01-01", false},
		{"missing check in", "", "2026-01-05", false},
		{"missing check out", "2026-01-10", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckoutAfterCheckin(tt.checkIn, tt.checkOut)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Check-out date must be after check-in date.")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFieldTextRoundTrip(t *testing.T) {
	for _, f := range append([]Field{FieldNone}, RequiredFields...) {
		text, err := f.MarshalText()
		require.NoError(t, err)
		var parsed Field
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, f, parsed)
	}

	var f Field
	assert.Error(t, f.UnmarshalText([]byte("middle_name")))
}

func TestFieldPrompts(t *testing.T) {
	for _, f := range RequiredFields {
		assert.NotEmpty(t, f.Prompt(), "field %s has no prompt", f)
	}
	assert.Empty(t, FieldNone.Prompt())
}
