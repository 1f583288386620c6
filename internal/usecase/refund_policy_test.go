package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPolicy() RefundPolicy {
	return RefundPolicy{
		Tier1Hours:      24,
		Tier1FeePercent: decimal.Zero,
		Tier2Hours:      4,
		Tier2FeePercent: dec("50"),
		Tier3FeePercent: dec("100"),
	}
}

func TestComputeRefundTiers(t *testing.T) {
	policy := standardPolicy()
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	total := dec("100000")

	cases := []struct {
		name   string
		now    time.Time
		refund string
		fee    string
		tier   int
	}{
		{"30h before is free", start.Add(-30 * time.Hour), "100000", "0", 1},
		{"exactly 24h before is still free", start.Add(-24 * time.Hour), "100000", "0", 1},
		{"10h before pays half", start.Add(-10 * time.Hour), "50000", "50", 2},
		{"exactly 4h before pays half", start.Add(-4 * time.Hour), "50000", "50", 2},
		{"1h before forfeits everything", start.Add(-1 * time.Hour), "0", "100", 3},
		{"after start forfeits everything", start.Add(2 * time.Hour), "0", "100", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := ComputeRefund(total, start, tc.now, policy)

			assert.True(t, quote.RefundAmount.Equal(dec(tc.refund)), "refund %s", quote.RefundAmount)
			assert.True(t, quote.FeePercent.Equal(dec(tc.fee)), "fee %s", quote.FeePercent)
			assert.Equal(t, tc.tier, quote.Tier)
		})
	}
}

func TestComputeRefundFractionalHours(t *testing.T) {
	policy := standardPolicy()
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	// 23h59m before start is already inside the partial window
	quote := ComputeRefund(dec("100000"), start, start.Add(-23*time.Hour-59*time.Minute), policy)
	assert.Equal(t, 2, quote.Tier)

	// 4h01m before start is still in it
	quote = ComputeRefund(dec("100000"), start, start.Add(-4*time.Hour-1*time.Minute), policy)
	assert.Equal(t, 2, quote.Tier)
}

func TestComputeRefundRounding(t *testing.T) {
	policy := standardPolicy()
	start := time.Now().Add(10 * time.Hour)

	// 50% of 99,999 is 49,999.50: kept to the cent, half-up
	quote := ComputeRefund(dec("99999"), start, time.Now(), policy)
	assert.True(t, quote.RefundAmount.Equal(dec("49999.50")), "refund %s", quote.RefundAmount)

	quote = ComputeRefund(dec("0.01"), start, time.Now(), policy)
	assert.True(t, quote.RefundAmount.Equal(dec("0.01")), "refund %s", quote.RefundAmount)
}

func TestComputeRefundIsPure(t *testing.T) {
	policy := standardPolicy()
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	now := start.Add(-10 * time.Hour)

	first := ComputeRefund(dec("100000"), start, now, policy)
	second := ComputeRefund(dec("100000"), start, now, policy)
	assert.Equal(t, first, second)
}

func TestRefundPolicyValidate(t *testing.T) {
	require.NoError(t, standardPolicy().Validate())

	cases := []struct {
		name   string
		mutate func(*RefundPolicy)
	}{
		{"negative tier 2 threshold", func(p *RefundPolicy) { p.Tier2Hours = -1 }},
		{"tier 1 not above tier 2", func(p *RefundPolicy) { p.Tier1Hours = 4 }},
		{"tier 1 fee above tier 2", func(p *RefundPolicy) { p.Tier1FeePercent = dec("60") }},
		{"tier 2 fee above tier 3", func(p *RefundPolicy) { p.Tier2FeePercent = dec("100"); p.Tier3FeePercent = dec("90") }},
		{"fee above 100", func(p *RefundPolicy) { p.Tier3FeePercent = dec("120") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			policy := standardPolicy()
			tc.mutate(&policy)
			assert.Error(t, policy.Validate())
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	policy := PolicyFromConfig(testConfig().Refund)

	assert.Equal(t, 24.0, policy.Tier1Hours)
	assert.True(t, policy.Tier2FeePercent.Equal(dec("50")))
	assert.NoError(t, policy.Validate())
}
