package response

import (
	"time"

	"venue-settlement/internal/data/entity"

	"github.com/shopspring/decimal"
)

type EarningResponse struct {
	ID               string          `json:"id"`
	BookingID        string          `json:"booking_id"`
	OrganizationID   string          `json:"organization_id"`
	VenueID          string          `json:"venue_id"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	Status           string          `json:"status"`
	PayoutID         string          `json:"payout_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func EarningToResponse(earning *entity.Earning) EarningResponse {
	resp := EarningResponse{
		ID:               earning.ID.String(),
		BookingID:        earning.BookingID.String(),
		OrganizationID:   earning.OrganizationID.String(),
		VenueID:          earning.VenueID.String(),
		GrossAmount:      earning.GrossAmount,
		CommissionAmount: earning.CommissionAmount,
		NetAmount:        earning.NetAmount,
		Status:           string(earning.Status),
		CreatedAt:        earning.CreatedAt,
	}
	if earning.PayoutID != nil {
		resp.PayoutID = earning.PayoutID.String()
	}
	return resp
}
