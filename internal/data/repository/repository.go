package repository

import (
	"venue-settlement/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Account       AccountRepository
	Ledger        LedgerRepository
	Booking       BookingRepository
	Earning       EarningRepository
	Payout        PayoutRepository
	PayoutAccount PayoutAccountRepository
	Refund        RefundRepository
	PricingRule   PricingRuleRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Account:       NewAccountRepository(db, log),
		Ledger:        NewLedgerRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		Earning:       NewEarningRepository(db, log),
		Payout:        NewPayoutRepository(db, log),
		PayoutAccount: NewPayoutAccountRepository(db, log),
		Refund:        NewRefundRepository(db, log),
		PricingRule:   NewPricingRuleRepository(db, log),
	}
}
