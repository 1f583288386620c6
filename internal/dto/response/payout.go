package response

import (
	"time"

	"venue-settlement/internal/data/entity"

	"github.com/shopspring/decimal"
)

type PayoutResponse struct {
	ID              string          `json:"id"`
	PayoutNumber    string          `json:"payout_number"`
	OrganizationID  string          `json:"organization_id"`
	PayoutAccountID string          `json:"payout_account_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	EarningIDs      []string        `json:"earning_ids,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func PayoutToResponse(payout *entity.Payout, earningIDs []string) PayoutResponse {
	return PayoutResponse{
		ID:              payout.ID.String(),
		PayoutNumber:    payout.PayoutNumber,
		OrganizationID:  payout.OrganizationID.String(),
		PayoutAccountID: payout.PayoutAccountID.String(),
		TotalAmount:     payout.TotalAmount,
		Status:          string(payout.Status),
		EarningIDs:      earningIDs,
		CreatedAt:       payout.CreatedAt,
	}
}

type PayoutAccountResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	AccountName    string `json:"account_name"`
	Provider       string `json:"provider"`
	IsDefault      bool   `json:"is_default"`
}

func PayoutAccountToResponse(account *entity.PayoutAccount) PayoutAccountResponse {
	return PayoutAccountResponse{
		ID:             account.ID.String(),
		OrganizationID: account.OrganizationID.String(),
		BankName:       account.BankName,
		AccountNumber:  account.AccountNumber,
		AccountName:    account.AccountName,
		Provider:       account.Provider,
		IsDefault:      account.IsDefault,
	}
}
