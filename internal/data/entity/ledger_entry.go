package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReferenceType string

const (
	ReferenceTypeBooking ReferenceType = "BOOKING"
	ReferenceTypePayout  ReferenceType = "PAYOUT"
	ReferenceTypeRefund  ReferenceType = "REFUND"
)

// LedgerEntry is one debit or credit line against an account. Entries are
// immutable once written; corrections are new offsetting entries. Exactly one
// of Debit/Credit is nonzero, and entries are only ever committed as part of a
// balanced group sharing the same GroupID.
type LedgerEntry struct {
	BaseSimple
	GroupID       uuid.UUID       `db:"group_id"`
	AccountID     uuid.UUID       `db:"account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	ReferenceType ReferenceType   `db:"reference_type"`
	ReferenceID   uuid.UUID       `db:"reference_id"`
}
