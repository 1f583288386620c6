package wire

import (
	"venue-settlement/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRefund(r chi.Router, refundHandler *adaptor.RefundHandler) {
	r.Route("/api/refunds", func(r chi.Router) {
		// POST /api/refunds/quote - Preview the refund for a cancellation
		r.Post("/quote", refundHandler.QuoteRefund)

		// POST /api/refunds - Freeze a quote into a pending refund
		r.Post("/", refundHandler.CreateRefund)

		// PUT /api/refunds/{id}/approve - Approve and post the ledger group
		r.Put("/{id}/approve", refundHandler.ApproveRefund)

		// PUT /api/refunds/{id}/reject - Reject without moving money
		r.Put("/{id}/reject", refundHandler.RejectRefund)
	})
}
