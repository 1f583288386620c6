package response

import (
	"time"

	"venue-settlement/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundQuoteResponse struct {
	BookingID    string          `json:"booking_id"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	FeePercent   decimal.Decimal `json:"fee_percent"`
	Tier         int             `json:"tier"`
}

func RefundQuoteToResponse(bookingID uuid.UUID, refundAmount, feePercent decimal.Decimal, tier int) RefundQuoteResponse {
	return RefundQuoteResponse{
		BookingID:    bookingID.String(),
		RefundAmount: refundAmount,
		FeePercent:   feePercent,
		Tier:         tier,
	}
}

type RefundResponse struct {
	ID         string          `json:"id"`
	BookingID  string          `json:"booking_id"`
	PaymentID  string          `json:"payment_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	FeePercent decimal.Decimal `json:"fee_percent"`
	Tier       int             `json:"tier"`
	Reason     string          `json:"reason"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

func RefundToResponse(refund *entity.Refund) RefundResponse {
	resp := RefundResponse{
		ID:         refund.ID.String(),
		BookingID:  refund.BookingID.String(),
		Amount:     refund.Amount,
		FeePercent: refund.FeePercent,
		Tier:       refund.Tier,
		Reason:     refund.Reason,
		Status:     string(refund.Status),
		CreatedAt:  refund.CreatedAt,
	}
	if refund.PaymentID != nil {
		resp.PaymentID = refund.PaymentID.String()
	}
	return resp
}
