package usecase

import (
	"errors"
	"fmt"

	"venue-settlement/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyEntryGroup is returned when a ledger post carries no lines.
var ErrEmptyEntryGroup = errors.New("ledger entry group is empty")

// UnbalancedEntryError means a ledger group's debits and credits differ by
// more than the allowed epsilon. It is fatal and never retried automatically.
type UnbalancedEntryError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("unbalanced ledger group: debits %s, credits %s",
		e.DebitTotal.String(), e.CreditTotal.String())
}

// InvalidEntryLineError means one line of a ledger group is malformed
// (both sides set, both zero, or a negative amount).
type InvalidEntryLineError struct {
	Index  int
	Reason string
}

func (e *InvalidEntryLineError) Error() string {
	return fmt.Sprintf("invalid ledger entry line %d: %s", e.Index, e.Reason)
}

// DuplicateSettlementError means the booking has already been settled.
// Callers that retry treat this as a no-op success.
type DuplicateSettlementError struct {
	BookingID uuid.UUID
	EarningID uuid.UUID
}

func (e *DuplicateSettlementError) Error() string {
	return fmt.Sprintf("booking %s already settled as earning %s",
		e.BookingID.String(), e.EarningID.String())
}

// InvalidEarningStateError means an earning is not in the status the
// operation requires.
type InvalidEarningStateError struct {
	EarningID uuid.UUID
	Status    entity.EarningStatus
	Required  entity.EarningStatus
}

func (e *InvalidEarningStateError) Error() string {
	return fmt.Sprintf("earning %s is %s, requires %s",
		e.EarningID.String(), string(e.Status), string(e.Required))
}

// CrossOrganizationError means a payout request mixed earnings from more
// than one organization.
type CrossOrganizationError struct {
	OrganizationID uuid.UUID
	OtherID        uuid.UUID
}

func (e *CrossOrganizationError) Error() string {
	return fmt.Sprintf("earnings span organizations %s and %s",
		e.OrganizationID.String(), e.OtherID.String())
}

// UnknownPayoutAccountError means the payout account does not exist or does
// not belong to the earnings' organization.
type UnknownPayoutAccountError struct {
	PayoutAccountID uuid.UUID
}

func (e *UnknownPayoutAccountError) Error() string {
	return fmt.Sprintf("unknown payout account %s", e.PayoutAccountID.String())
}

// NoPayoutAccountError means the organization has no payout account
// configured at all; an operator must remediate.
type NoPayoutAccountError struct {
	OrganizationID uuid.UUID
}

func (e *NoPayoutAccountError) Error() string {
	return fmt.Sprintf("no payout account configured for organization %s", e.OrganizationID.String())
}

// PayoutAlreadySettledError means SettlePayout was called on a payout that
// already left PENDING. Settlement is applied exactly once per payout.
type PayoutAlreadySettledError struct {
	PayoutID uuid.UUID
	Status   entity.PayoutStatus
}

func (e *PayoutAlreadySettledError) Error() string {
	return fmt.Sprintf("payout %s already settled with status %s",
		e.PayoutID.String(), string(e.Status))
}

// RefundAlreadyDecidedError means a refund approval or rejection was
// attempted on a refund that is no longer PENDING.
type RefundAlreadyDecidedError struct {
	RefundID uuid.UUID
	Status   entity.RefundStatus
}

func (e *RefundAlreadyDecidedError) Error() string {
	return fmt.Sprintf("refund %s already decided with status %s",
		e.RefundID.String(), string(e.Status))
}
