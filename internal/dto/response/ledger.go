package response

import (
	"time"

	"venue-settlement/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	GroupID       string          `json:"group_id"`
	AccountID     string          `json:"account_id"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

func LedgerEntryToResponse(entry *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            entry.ID.String(),
		GroupID:       entry.GroupID.String(),
		AccountID:     entry.AccountID.String(),
		Debit:         entry.Debit,
		Credit:        entry.Credit,
		ReferenceType: string(entry.ReferenceType),
		ReferenceID:   entry.ReferenceID.String(),
		CreatedAt:     entry.CreatedAt,
	}
}

type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

func BalanceToResponse(accountID uuid.UUID, balance decimal.Decimal) BalanceResponse {
	return BalanceResponse{
		AccountID: accountID.String(),
		Balance:   balance,
	}
}
