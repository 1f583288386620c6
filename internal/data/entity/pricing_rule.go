package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DayType string

const (
	DayTypeEveryday DayType = "EVERYDAY"
	DayTypeWeekday  DayType = "WEEKDAY"
	DayTypeWeekend  DayType = "WEEKEND"
	DayTypeHoliday  DayType = "HOLIDAY"
)

// RoomPricingRule is a time-windowed hourly-rate override for a room.
// A rule with both StartDate and EndDate set applies only within that date
// range (a specific-date rule); otherwise it recurs by day type. StartTime and
// EndTime are "HH:MM" time-of-day and the window may wrap past midnight.
type RoomPricingRule struct {
	Base
	RoomID       uuid.UUID       `db:"room_id"`
	DayType      DayType         `db:"day_type"`
	StartTime    string          `db:"start_time"`
	EndTime      string          `db:"end_time"`
	StartDate    *time.Time      `db:"start_date"`
	EndDate      *time.Time      `db:"end_date"`
	PricePerHour decimal.Decimal `db:"price_per_hour"`
	Priority     int             `db:"priority"`
}

// IsSpecificDate reports whether the rule is bound to a date range rather
// than recurring by day type.
func (r *RoomPricingRule) IsSpecificDate() bool {
	return r.StartDate != nil && r.EndDate != nil
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return hour*60 + minute, nil
}
