package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in  string
		min int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"18:00", 1080},
		{"23:59", 1439},
	}

	for _, tc := range cases {
		min, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.min, min, tc.in)
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "8", "24:00", "12:60", "ab:cd", "-1:30"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestIsSpecificDate(t *testing.T) {
	rule := &RoomPricingRule{}
	assert.False(t, rule.IsSpecificDate())

	day := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	rule.StartDate = &day
	assert.False(t, rule.IsSpecificDate())

	rule.EndDate = &day
	assert.True(t, rule.IsSpecificDate())
}

func TestSettleable(t *testing.T) {
	for status, want := range map[BookingStatus]bool{
		BookingStatusPending:   false,
		BookingStatusConfirmed: false,
		BookingStatusCompleted: true,
		BookingStatusPaid:      true,
		BookingStatusCancelled: false,
	} {
		booking := &Booking{Status: status}
		assert.Equal(t, want, booking.Settleable(), string(status))
	}
}
