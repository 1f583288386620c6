package wire

import (
	"venue-settlement/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayout(r chi.Router, payoutHandler *adaptor.PayoutHandler) {
	r.Route("/api/payouts", func(r chi.Router) {
		// POST /api/payouts - Batch pending earnings into a payout
		r.Post("/", payoutHandler.RequestPayout)

		// GET /api/payouts/{id} - Payout details
		r.Get("/{id}", payoutHandler.GetPayout)

		// PUT /api/payouts/{id}/settle - Record the transfer outcome
		r.Put("/{id}/settle", payoutHandler.SettlePayout)
	})

	// GET /api/organizations/{id}/payout-account - Default payout account
	r.Get("/api/organizations/{id}/payout-account", payoutHandler.GetDefaultPayoutAccount)
}
