package usecase

import (
	"fmt"
	"time"

	"venue-settlement/pkg/utils"

	"github.com/shopspring/decimal"
)

// RefundPolicy is the tiered cancellation policy. Tier 1 is the free window,
// tier 2 the partial window, tier 3 the late window. Fee monotonicity
// (tier1 <= tier2 <= tier3) is an operational assumption enforced by
// Validate at load time, not at compute time.
type RefundPolicy struct {
	Tier1Hours      float64
	Tier1FeePercent decimal.Decimal
	Tier2Hours      float64
	Tier2FeePercent decimal.Decimal
	Tier3FeePercent decimal.Decimal
}

// RefundQuote is the outcome of applying the policy at a point in time.
type RefundQuote struct {
	RefundAmount decimal.Decimal
	FeePercent   decimal.Decimal
	Tier         int
}

// PolicyFromConfig builds the policy from its configuration section.
func PolicyFromConfig(cfg utils.RefundPolicyConfig) RefundPolicy {
	return RefundPolicy{
		Tier1Hours:      cfg.Tier1Hours,
		Tier1FeePercent: decimal.NewFromFloat(cfg.Tier1FeePercent),
		Tier2Hours:      cfg.Tier2Hours,
		Tier2FeePercent: decimal.NewFromFloat(cfg.Tier2FeePercent),
		Tier3FeePercent: decimal.NewFromFloat(cfg.Tier3FeePercent),
	}
}

// Validate rejects policies that would break refund monotonicity: thresholds
// must strictly narrow and fees must not decrease for later cancellations.
func (p RefundPolicy) Validate() error {
	if p.Tier2Hours < 0 {
		return fmt.Errorf("tier 2 threshold %.2fh is negative", p.Tier2Hours)
	}
	if p.Tier1Hours <= p.Tier2Hours {
		return fmt.Errorf("tier 1 threshold %.2fh must exceed tier 2 threshold %.2fh", p.Tier1Hours, p.Tier2Hours)
	}
	if p.Tier1FeePercent.GreaterThan(p.Tier2FeePercent) {
		return fmt.Errorf("tier 1 fee %s%% exceeds tier 2 fee %s%%", p.Tier1FeePercent, p.Tier2FeePercent)
	}
	if p.Tier2FeePercent.GreaterThan(p.Tier3FeePercent) {
		return fmt.Errorf("tier 2 fee %s%% exceeds tier 3 fee %s%%", p.Tier2FeePercent, p.Tier3FeePercent)
	}
	for _, fee := range []decimal.Decimal{p.Tier1FeePercent, p.Tier2FeePercent, p.Tier3FeePercent} {
		if fee.IsNegative() || fee.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("fee %s%% outside [0,100]", fee)
		}
	}
	return nil
}

// ComputeRefund applies the tiered policy. Pure: same inputs always produce
// the same quote. Hours until start are fractional, and a booking that has
// already started falls into tier 3.
func ComputeRefund(bookingTotal decimal.Decimal, bookingStart, now time.Time, policy RefundPolicy) RefundQuote {
	hoursUntilStart := bookingStart.Sub(now).Hours()

	var feePercent decimal.Decimal
	var tier int
	switch {
	case hoursUntilStart >= policy.Tier1Hours:
		feePercent = policy.Tier1FeePercent
		tier = 1
	case hoursUntilStart >= policy.Tier2Hours:
		feePercent = policy.Tier2FeePercent
		tier = 2
	default:
		feePercent = policy.Tier3FeePercent
		tier = 3
	}

	hundred := decimal.NewFromInt(100)
	refund := bookingTotal.Mul(hundred.Sub(feePercent)).Div(hundred).Round(2)

	return RefundQuote{
		RefundAmount: refund,
		FeePercent:   feePercent,
		Tier:         tier,
	}
}
