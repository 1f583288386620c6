package wire

import (
	"venue-settlement/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSettlement(r chi.Router, settlementHandler *adaptor.SettlementHandler) {
	// POST /api/settlements - Settle a completed booking
	r.Post("/api/settlements", settlementHandler.Settle)

	// GET /api/earnings/{id} - Earning details
	r.Get("/api/earnings/{id}", settlementHandler.GetEarning)

	// GET /api/organizations/{id}/earnings/pending - Earnings awaiting payout
	r.Get("/api/organizations/{id}/earnings/pending", settlementHandler.ListPendingEarnings)

	// GET /api/accounts/{id}/balance - Derived ledger balance
	r.Get("/api/accounts/{id}/balance", settlementHandler.GetBalance)

	// Audit trails
	r.Get("/api/accounts/{id}/entries", settlementHandler.GetAccountEntries)
	r.Get("/api/bookings/{id}/entries", settlementHandler.GetBookingEntries)
}
