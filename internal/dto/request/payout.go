package request

// RequestPayoutRequest batches PENDING earnings into one payout.
type RequestPayoutRequest struct {
	EarningIDs      []string `json:"earning_ids" validate:"required,min=1,dive,uuid"`
	PayoutAccountID string   `json:"payout_account_id" validate:"required,uuid"`
}

// SettlePayoutRequest records the bank transfer outcome for a payout.
type SettlePayoutRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=PAID FAILED"`
}
