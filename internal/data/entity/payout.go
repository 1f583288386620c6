package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "PENDING"
	PayoutStatusPaid    PayoutStatus = "PAID"
	PayoutStatusFailed  PayoutStatus = "FAILED"
)

// Payout is a batched transfer of accumulated net earnings to an
// organization's bank account. TotalAmount is fixed at request time; the
// covered earnings carry the payout ID.
type Payout struct {
	Base
	PayoutNumber    string          `db:"payout_number"`
	OrganizationID  uuid.UUID       `db:"organization_id"`
	PayoutAccountID uuid.UUID       `db:"payout_account_id"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          PayoutStatus    `db:"status"`
}

// PayoutAccount is a bank destination for an organization's payouts.
type PayoutAccount struct {
	Base
	OrganizationID uuid.UUID `db:"organization_id"`
	BankName       string    `db:"bank_name"`
	AccountNumber  string    `db:"account_number"`
	AccountName    string    `db:"account_name"`
	Provider       string    `db:"provider"`
	IsDefault      bool      `db:"is_default"`
}
