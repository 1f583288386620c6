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

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// QuoteRate handles POST /api/pricing/quote
func (h *PricingHandler) QuoteRate(w http.ResponseWriter, r *http.Request) {
	var req request.RateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	quote, err := h.service.QuoteRate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "quote rate")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CreateRule handles POST /api/rooms/{id}/pricing-rules
func (h *PricingHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	var req request.CreatePricingRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rule, err := h.service.CreateRule(r.Context(), roomID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create pricing rule")
		return
	}

	utils.ResponseCreated(w, "success", rule)
}

// ListRoomRules handles GET /api/rooms/{id}/pricing-rules
func (h *PricingHandler) ListRoomRules(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	rules, err := h.service.ListRoomRules(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, h.log, err, "list pricing rules")
		return
	}

	utils.ResponseSuccess(w, "success", rules)
}

// DeleteRule handles DELETE /api/pricing-rules/{id}
func (h *PricingHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "id")
	if ruleID == "" {
		utils.ResponseBadRequest(w, "Rule ID is required", nil)
		return
	}

	if err := h.service.DeleteRule(r.Context(), ruleID); err != nil {
		writeServiceError(w, h.log, err, "delete pricing rule")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
