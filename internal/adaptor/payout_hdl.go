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

type PayoutHandler struct {
	service usecase.PayoutService
	log     *zap.Logger
}

func NewPayoutHandler(service usecase.PayoutService, log *zap.Logger) *PayoutHandler {
	return &PayoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "payout")),
	}
}

// RequestPayout handles POST /api/payouts
func (h *PayoutHandler) RequestPayout(w http.ResponseWriter, r *http.Request) {
	var req request.RequestPayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payout, err := h.service.RequestPayout(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "request payout")
		return
	}

	utils.ResponseCreated(w, "success", payout)
}

// SettlePayout handles PUT /api/payouts/{id}/settle
func (h *PayoutHandler) SettlePayout(w http.ResponseWriter, r *http.Request) {
	payoutID := chi.URLParam(r, "id")
	if payoutID == "" {
		utils.ResponseBadRequest(w, "Payout ID is required", nil)
		return
	}

	var req request.SettlePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payout, err := h.service.SettlePayout(r.Context(), payoutID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "settle payout")
		return
	}

	utils.ResponseSuccess(w, "success", payout)
}

// GetPayout handles GET /api/payouts/{id}
func (h *PayoutHandler) GetPayout(w http.ResponseWriter, r *http.Request) {
	payoutID := chi.URLParam(r, "id")
	if payoutID == "" {
		utils.ResponseBadRequest(w, "Payout ID is required", nil)
		return
	}

	payout, err := h.service.GetPayout(r.Context(), payoutID)
	if err != nil {
		writeServiceError(w, h.log, err, "get payout")
		return
	}

	utils.ResponseSuccess(w, "success", payout)
}

// GetDefaultPayoutAccount handles GET /api/organizations/{id}/payout-account
func (h *PayoutHandler) GetDefaultPayoutAccount(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "id")
	if organizationID == "" {
		utils.ResponseBadRequest(w, "Organization ID is required", nil)
		return
	}

	account, err := h.service.DefaultPayoutAccount(r.Context(), organizationID)
	if err != nil {
		writeServiceError(w, h.log, err, "get default payout account")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}
