package request

// RateQuoteRequest resolves the hourly rate for a room and time window.
type RateQuoteRequest struct {
	RoomID         string  `json:"room_id" validate:"required,uuid"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string  `json:"end_time" validate:"required,datetime=15:04"`
	BaseHourlyRate float64 `json:"base_hourly_rate" validate:"required,gt=0"`
}

// CreatePricingRuleRequest adds a rate override for a room. StartDate and
// EndDate are set together for a specific-date rule, or both left empty for
// a recurring rule.
type CreatePricingRuleRequest struct {
	DayType      string  `json:"day_type" validate:"required,oneof=EVERYDAY WEEKDAY WEEKEND HOLIDAY"`
	StartTime    string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string  `json:"end_time" validate:"required,datetime=15:04"`
	StartDate    string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
	Priority     int     `json:"priority" validate:"gte=0"`
}
