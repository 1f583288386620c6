package usecase

import (
	"context"
	"fmt"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/data/repository"
	"venue-settlement/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// In-memory fakes for the repository interfaces. The services only ever see
// the interfaces, so these stand in for Postgres without touching SQL.

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *utils.Config {
	return &utils.Config{
		Settlement: utils.SettlementConfig{
			DefaultCommissionPercent:  10,
			RevenueAccountCode:        "PLAT-REV",
			CashAccountCode:           "PLAT-CASH",
			RefundClearingAccountCode: "PLAT-REFUND-CLR",
			RefundPayableAccountCode:  "PLAT-REFUND-PAY",
		},
		Refund: utils.RefundPolicyConfig{
			Tier1Hours:      24,
			Tier1FeePercent: 0,
			Tier2Hours:      4,
			Tier2FeePercent: 50,
			Tier3FeePercent: 100,
		},
	}
}

// ---------- fake transaction ----------

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not used in tests")
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not used in tests")
}

func (t *fakeTx) LargeObjects() pgx.LargeObjects { panic("not used in tests") }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not used in tests")
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	panic("not used in tests")
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not used in tests")
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not used in tests")
}

func (t *fakeTx) Conn() *pgx.Conn { panic("not used in tests") }

// fakeDB satisfies database.PgxIface. Only Begin matters; the repositories
// behind the fakes never run SQL.
type fakeDB struct {
	txs []*fakeTx
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	tx := &fakeTx{}
	db.txs = append(db.txs, tx)
	return tx, nil
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not used in tests")
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not used in tests")
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	panic("not used in tests")
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }

func (db *fakeDB) Close() {}

// ---------- account repository ----------

type fakeAccountRepo struct {
	byID map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) add(account *entity.Account) *entity.Account {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.byID[account.ID] = account
	return account
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	r.add(account)
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.byID[id], nil
}

func (r *fakeAccountRepo) FindByCode(ctx context.Context, code string) (*entity.Account, error) {
	for _, account := range r.byID {
		if account.Code == code {
			return account, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, accountType entity.AccountType) (*entity.Account, error) {
	for _, account := range r.byID {
		if account.OwnerType == ownerType && account.OwnerID == ownerID && account.Type == accountType {
			return account, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	if account, ok := r.byID[id]; ok {
		account.IsActive = false
	}
	return nil
}

// ---------- ledger repository ----------

type fakeLedgerRepo struct {
	entries   []*entity.LedgerEntry
	createErr error
}

func (r *fakeLedgerRepo) CreateGroupTx(ctx context.Context, tx pgx.Tx, entries []*entity.LedgerEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeLedgerRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entity.LedgerEntry, error) {
	var found []*entity.LedgerEntry
	for _, entry := range r.entries {
		if entry.AccountID == accountID {
			found = append(found, entry)
		}
	}
	return found, nil
}

func (r *fakeLedgerRepo) FindByReference(ctx context.Context, refType entity.ReferenceType, refID uuid.UUID) ([]*entity.LedgerEntry, error) {
	var found []*entity.LedgerEntry
	for _, entry := range r.entries {
		if entry.ReferenceType == refType && entry.ReferenceID == refID {
			found = append(found, entry)
		}
	}
	return found, nil
}

func (r *fakeLedgerRepo) SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, entry := range r.entries {
		if entry.AccountID == accountID {
			sum = sum.Add(entry.Debit).Sub(entry.Credit)
		}
	}
	return sum, nil
}

// ---------- booking repository ----------

type fakeBookingRepo struct {
	byID map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) add(booking *entity.Booking) *entity.Booking {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	r.byID[booking.ID] = booking
	return booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.add(booking)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.byID[id], nil
}

func (r *fakeBookingRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Booking, error) {
	for _, booking := range r.byID {
		if booking.OrderID == orderID {
			return booking, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	if booking, ok := r.byID[bookingID]; ok {
		booking.Status = status
	}
	return nil
}

// ---------- earning repository ----------

type fakeEarningRepo struct {
	byID      map[uuid.UUID]*entity.Earning
	createErr error
}

func newFakeEarningRepo() *fakeEarningRepo {
	return &fakeEarningRepo{byID: make(map[uuid.UUID]*entity.Earning)}
}

func (r *fakeEarningRepo) add(earning *entity.Earning) *entity.Earning {
	if earning.ID == uuid.Nil {
		earning.ID = uuid.New()
	}
	r.byID[earning.ID] = earning
	return earning
}

func (r *fakeEarningRepo) CreateTx(ctx context.Context, tx pgx.Tx, earning *entity.Earning) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(earning)
	return nil
}

func (r *fakeEarningRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Earning, error) {
	return r.byID[id], nil
}

func (r *fakeEarningRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Earning, error) {
	for _, earning := range r.byID {
		if earning.BookingID == bookingID {
			return earning, nil
		}
	}
	return nil, nil
}

func (r *fakeEarningRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Earning, error) {
	var found []*entity.Earning
	for _, id := range ids {
		if earning, ok := r.byID[id]; ok {
			found = append(found, earning)
		}
	}
	return found, nil
}

func (r *fakeEarningRepo) FindByPayoutID(ctx context.Context, payoutID uuid.UUID) ([]*entity.Earning, error) {
	var found []*entity.Earning
	for _, earning := range r.byID {
		if earning.PayoutID != nil && *earning.PayoutID == payoutID {
			found = append(found, earning)
		}
	}
	return found, nil
}

func (r *fakeEarningRepo) FindPendingByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Earning, error) {
	var found []*entity.Earning
	for _, earning := range r.byID {
		if earning.OrganizationID == organizationID && earning.Status == entity.EarningStatusPending {
			found = append(found, earning)
		}
	}
	return found, nil
}

func (r *fakeEarningRepo) SetPayoutTx(ctx context.Context, tx pgx.Tx, earningIDs []uuid.UUID, payoutID *uuid.UUID, status entity.EarningStatus) error {
	for _, id := range earningIDs {
		earning, ok := r.byID[id]
		if !ok {
			return fmt.Errorf("earning %s not found", id)
		}
		earning.PayoutID = payoutID
		earning.Status = status
	}
	return nil
}

// ---------- payout repository ----------

type fakePayoutRepo struct {
	byID map[uuid.UUID]*entity.Payout
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{byID: make(map[uuid.UUID]*entity.Payout)}
}

func (r *fakePayoutRepo) CreateTx(ctx context.Context, tx pgx.Tx, payout *entity.Payout) error {
	r.byID[payout.ID] = payout
	return nil
}

func (r *fakePayoutRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error) {
	return r.byID[id], nil
}

func (r *fakePayoutRepo) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Payout, error) {
	var found []*entity.Payout
	for _, payout := range r.byID {
		if payout.OrganizationID == organizationID {
			found = append(found, payout)
		}
	}
	return found, nil
}

func (r *fakePayoutRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, payoutID uuid.UUID, status entity.PayoutStatus) error {
	payout, ok := r.byID[payoutID]
	if !ok {
		return fmt.Errorf("payout %s not found", payoutID)
	}
	payout.Status = status
	return nil
}

// ---------- payout account repository ----------

type fakePayoutAccountRepo struct {
	accounts []*entity.PayoutAccount
}

func (r *fakePayoutAccountRepo) add(account *entity.PayoutAccount) *entity.PayoutAccount {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts = append(r.accounts, account)
	return account
}

func (r *fakePayoutAccountRepo) Create(ctx context.Context, account *entity.PayoutAccount) error {
	r.add(account)
	return nil
}

func (r *fakePayoutAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutAccount, error) {
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, nil
}

func (r *fakePayoutAccountRepo) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.PayoutAccount, error) {
	var found []*entity.PayoutAccount
	for _, account := range r.accounts {
		if account.OrganizationID == organizationID {
			found = append(found, account)
		}
	}
	return found, nil
}

func (r *fakePayoutAccountRepo) FindDefaultByOrganization(ctx context.Context, organizationID uuid.UUID) (*entity.PayoutAccount, error) {
	for _, account := range r.accounts {
		if account.OrganizationID == organizationID && account.IsDefault {
			return account, nil
		}
	}
	return nil, nil
}

func (r *fakePayoutAccountRepo) SetDefault(ctx context.Context, organizationID, accountID uuid.UUID) error {
	for _, account := range r.accounts {
		if account.OrganizationID == organizationID {
			account.IsDefault = account.ID == accountID
		}
	}
	return nil
}

// ---------- refund repository ----------

type fakeRefundRepo struct {
	byID map[uuid.UUID]*entity.Refund
}

func newFakeRefundRepo() *fakeRefundRepo {
	return &fakeRefundRepo{byID: make(map[uuid.UUID]*entity.Refund)}
}

func (r *fakeRefundRepo) add(refund *entity.Refund) *entity.Refund {
	if refund.ID == uuid.Nil {
		refund.ID = uuid.New()
	}
	r.byID[refund.ID] = refund
	return refund
}

func (r *fakeRefundRepo) Create(ctx context.Context, refund *entity.Refund) error {
	r.add(refund)
	return nil
}

func (r *fakeRefundRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Refund, error) {
	return r.byID[id], nil
}

func (r *fakeRefundRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Refund, error) {
	var found []*entity.Refund
	for _, refund := range r.byID {
		if refund.BookingID == bookingID {
			found = append(found, refund)
		}
	}
	return found, nil
}

func (r *fakeRefundRepo) UpdateStatus(ctx context.Context, refundID uuid.UUID, status entity.RefundStatus) error {
	refund, ok := r.byID[refundID]
	if !ok {
		return fmt.Errorf("refund %s not found", refundID)
	}
	refund.Status = status
	return nil
}

func (r *fakeRefundRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, refundID uuid.UUID, status entity.RefundStatus) error {
	return r.UpdateStatus(ctx, refundID, status)
}

// ---------- pricing rule repository ----------

type fakePricingRuleRepo struct {
	rules []*entity.RoomPricingRule
}

func (r *fakePricingRuleRepo) add(rule *entity.RoomPricingRule) *entity.RoomPricingRule {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	r.rules = append(r.rules, rule)
	return rule
}

func (r *fakePricingRuleRepo) Create(ctx context.Context, rule *entity.RoomPricingRule) error {
	r.add(rule)
	return nil
}

func (r *fakePricingRuleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomPricingRule, error) {
	for _, rule := range r.rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return nil, nil
}

func (r *fakePricingRuleRepo) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomPricingRule, error) {
	var found []*entity.RoomPricingRule
	for _, rule := range r.rules {
		if rule.RoomID == roomID {
			found = append(found, rule)
		}
	}
	return found, nil
}

func (r *fakePricingRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, rule := range r.rules {
		if rule.ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---------- fixture ----------

// world bundles the fakes behind a ready-to-use Repository so each test can
// seed just what it needs.
type world struct {
	db            *fakeDB
	accounts      *fakeAccountRepo
	ledger        *fakeLedgerRepo
	bookings      *fakeBookingRepo
	earnings      *fakeEarningRepo
	payouts       *fakePayoutRepo
	payoutAccount *fakePayoutAccountRepo
	refunds       *fakeRefundRepo
	pricingRules  *fakePricingRuleRepo
	repo          *repository.Repository
	config        *utils.Config
}

func newWorld() *world {
	w := &world{
		db:            &fakeDB{},
		accounts:      newFakeAccountRepo(),
		ledger:        &fakeLedgerRepo{},
		bookings:      newFakeBookingRepo(),
		earnings:      newFakeEarningRepo(),
		payouts:       newFakePayoutRepo(),
		payoutAccount: &fakePayoutAccountRepo{},
		refunds:       newFakeRefundRepo(),
		pricingRules:  &fakePricingRuleRepo{},
		config:        testConfig(),
	}
	w.repo = &repository.Repository{
		Account:       w.accounts,
		Ledger:        w.ledger,
		Booking:       w.bookings,
		Earning:       w.earnings,
		Payout:        w.payouts,
		PayoutAccount: w.payoutAccount,
		Refund:        w.refunds,
		PricingRule:   w.pricingRules,
	}
	return w
}

func (w *world) platformAccount(code string, accountType entity.AccountType) *entity.Account {
	return w.accounts.add(&entity.Account{
		Code:      code,
		Name:      code,
		OwnerType: entity.OwnerTypePlatform,
		Type:      accountType,
		IsActive:  true,
	})
}

func (w *world) venueAccount(venueID uuid.UUID, accountType entity.AccountType) *entity.Account {
	return w.accounts.add(&entity.Account{
		Code:      "VEN-" + uuid.NewString()[:8],
		OwnerType: entity.OwnerTypeVenue,
		OwnerID:   venueID,
		Type:      accountType,
		IsActive:  true,
	})
}
