package request

// QuoteRefundRequest asks what a cancellation would refund right now, or at
// an explicit RFC3339 time.
type QuoteRefundRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	At        string `json:"at" validate:"omitempty"`
}

// CreateRefundRequest freezes a refund quote into a pending refund.
type CreateRefundRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	PaymentID string `json:"payment_id" validate:"omitempty,uuid"`
	Reason    string `json:"reason" validate:"required,max=500"`
}
