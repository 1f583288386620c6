package adaptor

import (
	"venue-settlement/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Settlement *SettlementHandler
	Payout     *PayoutHandler
	Refund     *RefundHandler
	Pricing    *PricingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Settlement: NewSettlementHandler(service.Earning, service.Ledger, log),
		Payout:     NewPayoutHandler(service.Payout, log),
		Refund:     NewRefundHandler(service.Refund, log),
		Pricing:    NewPricingHandler(service.Pricing, log),
	}
}
