package entity

import (
	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

type OwnerType string

const (
	OwnerTypeOrganization OwnerType = "organization"
	OwnerTypeVenue        OwnerType = "venue"
	OwnerTypePlatform     OwnerType = "platform"
)

// Account is a named ledger bucket. Balances are never stored on the account;
// they are always derived by summing ledger entries.
type Account struct {
	Base
	Code      string      `db:"code"` // globally unique mnemonic
	Name      string      `db:"name"`
	OwnerType OwnerType   `db:"owner_type"`
	OwnerID   uuid.UUID   `db:"owner_id"` // uuid.Nil for platform-owned accounts
	Type      AccountType `db:"type"`
	IsActive  bool        `db:"is_active"`
}
