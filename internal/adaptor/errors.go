package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"venue-settlement/internal/usecase"
	"venue-settlement/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps usecase errors to HTTP responses. Typed errors
// carry the interesting state conflicts; everything else falls back to
// message inspection like the generic not-found wrapping in the repos.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		unbalanced  *usecase.UnbalancedEntryError
		badLine     *usecase.InvalidEntryLineError
		duplicate   *usecase.DuplicateSettlementError
		badState    *usecase.InvalidEarningStateError
		crossOrg    *usecase.CrossOrganizationError
		unknownAcct *usecase.UnknownPayoutAccountError
		noAcct      *usecase.NoPayoutAccountError
		settled     *usecase.PayoutAlreadySettledError
		decided     *usecase.RefundAlreadyDecidedError
	)

	switch {
	case errors.As(err, &unbalanced):
		log.Warn(operation+" rejected - unbalanced entry group", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	case errors.As(err, &badLine):
		log.Warn(operation+" rejected - invalid entry line", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrEmptyEntryGroup):
		log.Warn(operation+" rejected - empty entry group", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &duplicate):
		log.Warn(operation+" rejected - booking already settled", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &badState):
		log.Warn(operation+" rejected - earning in wrong status", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &settled):
		log.Warn(operation+" rejected - payout already settled", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &decided):
		log.Warn(operation+" rejected - refund already decided", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &crossOrg):
		log.Warn(operation+" rejected - mixed organizations", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &unknownAcct):
		log.Warn(operation+" rejected - unknown payout account", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &noAcct):
		log.Warn(operation+" failed - no payout account", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "invalid"):
		log.Warn(operation+" rejected - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "cannot"):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
