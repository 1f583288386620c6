package usecase

import (
	"context"
	"testing"
	"time"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/dto/request"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rate(v float64) *float64 {
	return &v
}

type earningFixture struct {
	*world
	svc        EarningService
	booking    *entity.Booking
	receivable *entity.Account
	payable    *entity.Account
	revenue    *entity.Account
}

func newEarningFixture(t *testing.T, total string, status entity.BookingStatus) *earningFixture {
	t.Helper()

	w := newWorld()
	venueID := uuid.New()
	booking := w.bookings.add(&entity.Booking{
		OrderID:        "ORD-001",
		OrganizationID: uuid.New(),
		VenueID:        venueID,
		RoomID:         uuid.New(),
		TotalPrice:     dec(total),
		Status:         status,
		StartTime:      time.Now().Add(48 * time.Hour),
		EndTime:        time.Now().Add(50 * time.Hour),
	})

	ledger := NewLedgerService(w.db, w.repo, zap.NewNop())
	return &earningFixture{
		world:      w,
		svc:        NewEarningService(w.db, w.repo, ledger, w.config, zap.NewNop()),
		booking:    booking,
		receivable: w.venueAccount(venueID, entity.AccountTypeAsset),
		payable:    w.venueAccount(venueID, entity.AccountTypeLiability),
		revenue:    w.platformAccount("PLAT-REV", entity.AccountTypeRevenue),
	}
}

func TestSettleSplitsGrossCommissionNet(t *testing.T) {
	f := newEarningFixture(t, "200000", entity.BookingStatusCompleted)

	resp, err := f.svc.Settle(context.Background(), &request.SettleRequest{
		BookingID:             f.booking.ID.String(),
		CommissionRatePercent: rate(10),
	})
	require.NoError(t, err)

	assert.True(t, resp.GrossAmount.Equal(dec("200000")), "gross %s", resp.GrossAmount)
	assert.True(t, resp.CommissionAmount.Equal(dec("20000")), "commission %s", resp.CommissionAmount)
	assert.True(t, resp.NetAmount.Equal(dec("180000")), "net %s", resp.NetAmount)
	assert.Equal(t, string(entity.EarningStatusPending), resp.Status)

	// One balanced group: receivable debit, revenue credit, payable credit
	require.Len(t, f.ledger.entries, 3)
	byAccount := make(map[uuid.UUID]*entity.LedgerEntry)
	for _, entry := range f.ledger.entries {
		byAccount[entry.AccountID] = entry
		assert.Equal(t, entity.ReferenceTypeBooking, entry.ReferenceType)
		assert.Equal(t, f.booking.ID, entry.ReferenceID)
	}
	assert.True(t, byAccount[f.receivable.ID].Debit.Equal(dec("200000")))
	assert.True(t, byAccount[f.revenue.ID].Credit.Equal(dec("20000")))
	assert.True(t, byAccount[f.payable.ID].Credit.Equal(dec("180000")))
}

func TestSettleNetCarriesRoundingRemainder(t *testing.T) {
	// 10% of 100,005 is 10,000.50: commission rounds half-up, net absorbs
	// the remainder so commission + net == gross exactly.
	f := newEarningFixture(t, "100005", entity.BookingStatusPaid)

	resp, err := f.svc.Settle(context.Background(), &request.SettleRequest{
		BookingID:             f.booking.ID.String(),
		CommissionRatePercent: rate(10),
	})
	require.NoError(t, err)

	assert.True(t, resp.CommissionAmount.Equal(dec("10000.50")), "commission %s", resp.CommissionAmount)
	assert.True(t, resp.NetAmount.Equal(dec("90004.50")), "net %s", resp.NetAmount)
	assert.True(t, resp.CommissionAmount.Add(resp.NetAmount).Equal(resp.GrossAmount))
}

func TestSettleDefaultsCommissionRate(t *testing.T) {
	// No rate in the request: the platform default (10%) applies.
	f := newEarningFixture(t, "200000", entity.BookingStatusCompleted)

	resp, err := f.svc.Settle(context.Background(), &request.SettleRequest{
		BookingID: f.booking.ID.String(),
	})
	require.NoError(t, err)

	assert.True(t, resp.CommissionAmount.Equal(dec("20000")), "commission %s", resp.CommissionAmount)
	assert.True(t, resp.NetAmount.Equal(dec("180000")), "net %s", resp.NetAmount)
}

func TestSettleZeroCommission(t *testing.T) {
	f := newEarningFixture(t, "50000", entity.BookingStatusCompleted)

	resp, err := f.svc.Settle(context.Background(), &request.SettleRequest{
		BookingID:             f.booking.ID.String(),
		CommissionRatePercent: rate(0),
	})
	require.NoError(t, err)

	assert.True(t, resp.CommissionAmount.IsZero())
	assert.True(t, resp.NetAmount.Equal(dec("50000")))

	// The all-zero revenue line is dropped, the group still balances
	require.Len(t, f.ledger.entries, 2)
}

func TestSettleRejectsUnsettleableBooking(t *testing.T) {
	f := newEarningFixture(t, "50000", entity.BookingStatusPending)

	_, err := f.svc.Settle(context.Background(), &request.SettleRequest{
		BookingID:             f.booking.ID.String(),
		CommissionRatePercent: rate(10),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revenue not recognized")
	assert.Empty(t, f.ledger.entries)
}

func TestSettleUnknownBooking(t *testing.T) {
	f := newEarningFixture(t, "50000", entity.BookingStatusCompleted)

	_, err := f.svc.Settle(context.Background(), &request.SettleRequest{
		BookingID:             uuid.NewString(),
		CommissionRatePercent: rate(10),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSettleTwiceIsRejected(t *testing.T) {
	f := newEarningFixture(t, "50000", entity.BookingStatusCompleted)
	ctx := context.Background()
	req := &request.SettleRequest{
		BookingID:             f.booking.ID.String(),
		CommissionRatePercent: rate(10),
	}

	first, err := f.svc.Settle(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Settle(ctx, req)
	var duplicate *DuplicateSettlementError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, f.booking.ID, duplicate.BookingID)
	assert.Equal(t, first.ID, duplicate.EarningID.String())

	// No second ledger group
	assert.Len(t, f.ledger.entries, 3)
}

func TestSettleUniqueViolationRace(t *testing.T) {
	// The pre-check passes but the insert hits the unique constraint, as it
	// would when two settle calls race.
	f := newEarningFixture(t, "50000", entity.BookingStatusCompleted)
	f.earnings.createErr = &pgconn.PgError{Code: "23505"}

	_, err := f.svc.Settle(context.Background(), &request.SettleRequest{
		BookingID:             f.booking.ID.String(),
		CommissionRatePercent: rate(10),
	})

	var duplicate *DuplicateSettlementError
	require.ErrorAs(t, err, &duplicate)
	assert.Empty(t, f.ledger.entries)
}

func TestSettleMissingVenueAccount(t *testing.T) {
	w := newWorld()
	booking := w.bookings.add(&entity.Booking{
		OrganizationID: uuid.New(),
		VenueID:        uuid.New(),
		TotalPrice:     dec("50000"),
		Status:         entity.BookingStatusCompleted,
	})
	w.platformAccount("PLAT-REV", entity.AccountTypeRevenue)

	ledger := NewLedgerService(w.db, w.repo, zap.NewNop())
	svc := NewEarningService(w.db, w.repo, ledger, w.config, zap.NewNop())

	_, err := svc.Settle(context.Background(), &request.SettleRequest{
		BookingID:             booking.ID.String(),
		CommissionRatePercent: rate(10),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "receivable account")
}

func TestListPendingEarnings(t *testing.T) {
	f := newEarningFixture(t, "50000", entity.BookingStatusCompleted)
	ctx := context.Background()

	_, err := f.svc.Settle(ctx, &request.SettleRequest{
		BookingID:             f.booking.ID.String(),
		CommissionRatePercent: rate(10),
	})
	require.NoError(t, err)

	pending, err := f.svc.ListPendingEarnings(ctx, f.booking.OrganizationID.String())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.booking.ID.String(), pending[0].BookingID)

	other, err := f.svc.ListPendingEarnings(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, other)
}
