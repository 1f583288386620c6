package wire

import (
	"venue-settlement/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	// POST /api/pricing/quote - Resolve the effective rate for a window
	r.Post("/api/pricing/quote", pricingHandler.QuoteRate)

	// Rule management per room
	r.Route("/api/rooms/{id}/pricing-rules", func(r chi.Router) {
		r.Post("/", pricingHandler.CreateRule)
		r.Get("/", pricingHandler.ListRoomRules)
	})

	// DELETE /api/pricing-rules/{id} - Remove a rule
	r.Delete("/api/pricing-rules/{id}", pricingHandler.DeleteRule)
}
