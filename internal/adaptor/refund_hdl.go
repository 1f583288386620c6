package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-settlement/internal/dto/request"
	"venue-settlement/internal/usecase"
	"venue-settlement/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RefundHandler struct {
	service usecase.RefundService
	log     *zap.Logger
}

func NewRefundHandler(service usecase.RefundService, log *zap.Logger) *RefundHandler {
	return &RefundHandler{
		service: service,
		log:     log.With(zap.String("handler", "refund")),
	}
}

// QuoteRefund handles POST /api/refunds/quote
func (h *RefundHandler) QuoteRefund(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	quote, err := h.service.QuoteRefund(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "quote refund")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CreateRefund handles POST /api/refunds
func (h *RefundHandler) CreateRefund(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	refund, err := h.service.RequestRefund(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create refund")
		return
	}

	utils.ResponseCreated(w, "success", refund)
}

// ApproveRefund handles PUT /api/refunds/{id}/approve
func (h *RefundHandler) ApproveRefund(w http.ResponseWriter, r *http.Request) {
	refundID := chi.URLParam(r, "id")
	if refundID == "" {
		utils.ResponseBadRequest(w, "Refund ID is required", nil)
		return
	}

	refund, err := h.service.ApproveRefund(r.Context(), refundID)
	if err != nil {
		writeServiceError(w, h.log, err, "approve refund")
		return
	}

	utils.ResponseSuccess(w, "success", refund)
}

// RejectRefund handles PUT /api/refunds/{id}/reject
func (h *RefundHandler) RejectRefund(w http.ResponseWriter, r *http.Request) {
	refundID := chi.URLParam(r, "id")
	if refundID == "" {
		utils.ResponseBadRequest(w, "Refund ID is required", nil)
		return
	}

	refund, err := h.service.RejectRefund(r.Context(), refundID)
	if err != nil {
		writeServiceError(w, h.log, err, "reject refund")
		return
	}

	utils.ResponseSuccess(w, "success", refund)
}
