package response

import (
	"time"

	"venue-settlement/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RateQuoteResponse struct {
	RoomID       string          `json:"room_id"`
	Date         string          `json:"date"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

func RateQuoteToResponse(roomID uuid.UUID, date, startTime, endTime string, pricePerHour, totalPrice decimal.Decimal) RateQuoteResponse {
	return RateQuoteResponse{
		RoomID:       roomID.String(),
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		PricePerHour: pricePerHour,
		TotalPrice:   totalPrice,
	}
}

type PricingRuleResponse struct {
	ID           string          `json:"id"`
	RoomID       string          `json:"room_id"`
	DayType      string          `json:"day_type"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	StartDate    string          `json:"start_date,omitempty"`
	EndDate      string          `json:"end_date,omitempty"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Priority     int             `json:"priority"`
	CreatedAt    time.Time       `json:"created_at"`
}

func PricingRuleToResponse(rule *entity.RoomPricingRule) PricingRuleResponse {
	resp := PricingRuleResponse{
		ID:           rule.ID.String(),
		RoomID:       rule.RoomID.String(),
		DayType:      string(rule.DayType),
		StartTime:    rule.StartTime,
		EndTime:      rule.EndTime,
		PricePerHour: rule.PricePerHour,
		Priority:     rule.Priority,
		CreatedAt:    rule.CreatedAt,
	}
	if rule.StartDate != nil {
		resp.StartDate = rule.StartDate.Format("2006-01-02")
	}
	if rule.EndDate != nil {
		resp.EndDate = rule.EndDate.Format("2006-01-02")
	}
	return resp
}
