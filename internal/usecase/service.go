package usecase

import (
	"venue-settlement/internal/data/repository"
	"venue-settlement/pkg/database"
	"venue-settlement/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Ledger  LedgerService
	Earning EarningService
	Payout  PayoutService
	Refund  RefundService
	Pricing PricingService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	ledger := NewLedgerService(db, repo, log)
	holidays := NewHolidayCalendar(config.Pricing.Holidays)

	return &Service{
		Ledger:  ledger,
		Earning: NewEarningService(db, repo, ledger, config, log),
		Payout:  NewPayoutService(db, repo, ledger, config, log),
		Refund:  NewRefundService(db, repo, ledger, config, log),
		Pricing: NewPricingService(repo, holidays, log),
	}
}
