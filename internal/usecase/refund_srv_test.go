package usecase

import (
	"context"
	"testing"
	"time"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type refundFixture struct {
	*world
	svc      RefundService
	clearing *entity.Account
	payable  *entity.Account
}

func newRefundFixture(t *testing.T) *refundFixture {
	t.Helper()

	w := newWorld()
	ledger := NewLedgerService(w.db, w.repo, zap.NewNop())
	return &refundFixture{
		world:    w,
		svc:      NewRefundService(w.db, w.repo, ledger, w.config, zap.NewNop()),
		clearing: w.platformAccount("PLAT-REFUND-CLR", entity.AccountTypeAsset),
		payable:  w.platformAccount("PLAT-REFUND-PAY", entity.AccountTypeLiability),
	}
}

func (f *refundFixture) booking(total string, startsIn time.Duration) *entity.Booking {
	start := time.Now().Add(startsIn)
	return f.bookings.add(&entity.Booking{
		OrganizationID: uuid.New(),
		VenueID:        uuid.New(),
		RoomID:         uuid.New(),
		TotalPrice:     dec(total),
		Status:         entity.BookingStatusConfirmed,
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
	})
}

func TestQuoteRefundNow(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.booking("100000", 30*time.Hour)

	resp, err := f.svc.QuoteRefund(context.Background(), &request.QuoteRefundRequest{
		BookingID: booking.ID.String(),
	})
	require.NoError(t, err)

	assert.True(t, resp.RefundAmount.Equal(dec("100000")))
	assert.Equal(t, 1, resp.Tier)
}

func TestQuoteRefundAtExplicitTime(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.booking("100000", 30*time.Hour)
	at := booking.StartTime.Add(-2 * time.Hour)

	resp, err := f.svc.QuoteRefund(context.Background(), &request.QuoteRefundRequest{
		BookingID: booking.ID.String(),
		At:        at.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.True(t, resp.RefundAmount.IsZero())
	assert.Equal(t, 3, resp.Tier)
}

func TestQuoteRefundUnknownBooking(t *testing.T) {
	f := newRefundFixture(t)

	_, err := f.svc.QuoteRefund(context.Background(), &request.QuoteRefundRequest{
		BookingID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRequestRefundFreezesQuote(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.booking("100000", 10*time.Hour)

	resp, err := f.svc.RequestRefund(context.Background(), &request.CreateRefundRequest{
		BookingID: booking.ID.String(),
		Reason:    "schedule conflict",
	})
	require.NoError(t, err)

	assert.True(t, resp.Amount.Equal(dec("50000")), "amount %s", resp.Amount)
	assert.True(t, resp.FeePercent.Equal(dec("50")))
	assert.Equal(t, 2, resp.Tier)
	assert.Equal(t, string(entity.RefundStatusPending), resp.Status)

	// Requesting never posts ledger entries
	assert.Empty(t, f.ledger.entries)
}

func TestApproveRefundPostsClearingGroup(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.booking("100000", 10*time.Hour)

	created, err := f.svc.RequestRefund(context.Background(), &request.CreateRefundRequest{
		BookingID: booking.ID.String(),
		Reason:    "schedule conflict",
	})
	require.NoError(t, err)

	approved, err := f.svc.ApproveRefund(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RefundStatusCompleted), approved.Status)

	// The frozen amount moves from clearing to payable in one group
	require.Len(t, f.ledger.entries, 2)
	byAccount := make(map[uuid.UUID]*entity.LedgerEntry)
	for _, entry := range f.ledger.entries {
		byAccount[entry.AccountID] = entry
		assert.Equal(t, entity.ReferenceTypeRefund, entry.ReferenceType)
		assert.Equal(t, created.ID, entry.ReferenceID.String())
	}
	assert.True(t, byAccount[f.clearing.ID].Debit.Equal(dec("50000")))
	assert.True(t, byAccount[f.payable.ID].Credit.Equal(dec("50000")))
}

func TestApproveRefundZeroAmountPostsNothing(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.booking("100000", 1*time.Hour)

	created, err := f.svc.RequestRefund(context.Background(), &request.CreateRefundRequest{
		BookingID: booking.ID.String(),
		Reason:    "too late anyway",
	})
	require.NoError(t, err)
	assert.True(t, created.Amount.IsZero())

	approved, err := f.svc.ApproveRefund(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RefundStatusCompleted), approved.Status)
	assert.Empty(t, f.ledger.entries)
}

func TestApproveRefundTwiceIsRejected(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.booking("100000", 10*time.Hour)
	ctx := context.Background()

	created, err := f.svc.RequestRefund(ctx, &request.CreateRefundRequest{
		BookingID: booking.ID.String(),
		Reason:    "schedule conflict",
	})
	require.NoError(t, err)

	_, err = f.svc.ApproveRefund(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveRefund(ctx, created.ID)
	var decided *RefundAlreadyDecidedError
	require.ErrorAs(t, err, &decided)
	assert.Equal(t, entity.RefundStatusCompleted, decided.Status)

	// The clearing group was not posted a second time
	assert.Len(t, f.ledger.entries, 2)
}

func TestRejectRefund(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.booking("100000", 10*time.Hour)
	ctx := context.Background()

	created, err := f.svc.RequestRefund(ctx, &request.CreateRefundRequest{
		BookingID: booking.ID.String(),
		Reason:    "schedule conflict",
	})
	require.NoError(t, err)

	rejected, err := f.svc.RejectRefund(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RefundStatusRejected), rejected.Status)
	assert.Empty(t, f.ledger.entries)

	// A rejected refund cannot be approved afterwards
	_, err = f.svc.ApproveRefund(ctx, created.ID)
	var decided *RefundAlreadyDecidedError
	assert.ErrorAs(t, err, &decided)
}
