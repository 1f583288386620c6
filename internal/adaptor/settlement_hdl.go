package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/dto/request"
	"venue-settlement/internal/dto/response"
	"venue-settlement/internal/usecase"
	"venue-settlement/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SettlementHandler struct {
	earnings usecase.EarningService
	ledger   usecase.LedgerService
	log      *zap.Logger
}

func NewSettlementHandler(earnings usecase.EarningService, ledger usecase.LedgerService, log *zap.Logger) *SettlementHandler {
	return &SettlementHandler{
		earnings: earnings,
		ledger:   ledger,
		log:      log.With(zap.String("handler", "settlement")),
	}
}

// Settle handles POST /api/settlements
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req request.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	earning, err := h.earnings.Settle(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "settle booking")
		return
	}

	utils.ResponseCreated(w, "success", earning)
}

// GetEarning handles GET /api/earnings/{id}
func (h *SettlementHandler) GetEarning(w http.ResponseWriter, r *http.Request) {
	earningID := chi.URLParam(r, "id")
	if earningID == "" {
		utils.ResponseBadRequest(w, "Earning ID is required", nil)
		return
	}

	earning, err := h.earnings.GetEarning(r.Context(), earningID)
	if err != nil {
		writeServiceError(w, h.log, err, "get earning")
		return
	}

	utils.ResponseSuccess(w, "success", earning)
}

// ListPendingEarnings handles GET /api/organizations/{id}/earnings/pending
func (h *SettlementHandler) ListPendingEarnings(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "id")
	if organizationID == "" {
		utils.ResponseBadRequest(w, "Organization ID is required", nil)
		return
	}

	earnings, err := h.earnings.ListPendingEarnings(r.Context(), organizationID)
	if err != nil {
		writeServiceError(w, h.log, err, "list pending earnings")
		return
	}

	utils.ResponseSuccess(w, "success", earnings)
}

// GetBalance handles GET /api/accounts/{id}/balance
func (h *SettlementHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	balance, err := h.ledger.BalanceOf(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, h.log, err, "get account balance")
		return
	}

	utils.ResponseSuccess(w, "success", response.BalanceToResponse(accountID, balance))
}

// GetAccountEntries handles GET /api/accounts/{id}/entries
func (h *SettlementHandler) GetAccountEntries(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	entries, err := h.ledger.EntriesOf(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, h.log, err, "list account entries")
		return
	}

	responses := make([]response.LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = response.LedgerEntryToResponse(entry)
	}

	utils.ResponseSuccess(w, "success", responses)
}

// GetBookingEntries handles GET /api/bookings/{id}/entries
func (h *SettlementHandler) GetBookingEntries(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	entries, err := h.ledger.EntriesFor(r.Context(), entity.ReferenceTypeBooking, bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, "list booking entries")
		return
	}

	responses := make([]response.LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = response.LedgerEntryToResponse(entry)
	}

	utils.ResponseSuccess(w, "success", responses)
}
