package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EarningStatus string

const (
	EarningStatusPending   EarningStatus = "PENDING"
	EarningStatusRequested EarningStatus = "REQUESTED"
	EarningStatusPaid      EarningStatus = "PAID"
	EarningStatusFailed    EarningStatus = "FAILED"
)

// Earning is the organization's net revenue share from one settled booking.
// Amounts are immutable once created; only the status (and the payout the
// earning is batched into) changes.
type Earning struct {
	Base
	BookingID        uuid.UUID       `db:"booking_id"` // unique, settle is at-most-once per booking
	OrganizationID   uuid.UUID       `db:"organization_id"`
	VenueID          uuid.UUID       `db:"venue_id"`
	GrossAmount      decimal.Decimal `db:"gross_amount"`
	CommissionAmount decimal.Decimal `db:"commission_amount"`
	NetAmount        decimal.Decimal `db:"net_amount"`
	Status           EarningStatus   `db:"status"`
	PayoutID         *uuid.UUID      `db:"payout_id"` // set when batched into a payout
}
