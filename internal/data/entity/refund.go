package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusCompleted RefundStatus = "COMPLETED"
	RefundStatusRejected  RefundStatus = "REJECTED"
)

// Refund records one cancellation refund decision. Amount and fee are frozen
// at request time so a later approval pays exactly what was quoted.
type Refund struct {
	Base
	BookingID  uuid.UUID       `db:"booking_id"`
	PaymentID  *uuid.UUID      `db:"payment_id"`
	Amount     decimal.Decimal `db:"amount"`
	FeePercent decimal.Decimal `db:"fee_percent"`
	Tier       int             `db:"tier"`
	Reason     string          `db:"reason"`
	Status     RefundStatus    `db:"status"`
}
