package request

// SettleRequest recognizes revenue for one completed booking. When the
// commission rate is omitted the platform default applies; an explicit 0 means
// zero commission.
type SettleRequest struct {
	BookingID             string   `json:"booking_id" validate:"required,uuid"`
	CommissionRatePercent *float64 `json:"commission_rate_percent" validate:"omitempty,gte=0,lte=100"`
}
