package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/data/repository"
	"venue-settlement/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// balanceEpsilon is the maximum tolerated difference between a group's total
// debits and credits (0.01 currency unit).
var balanceEpsilon = decimal.New(1, -2)

// EntryLine is one requested debit or credit line of a balanced group.
// Exactly one of Debit/Credit must be positive; the other must be zero.
type EntryLine struct {
	AccountID     uuid.UUID
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	ReferenceType entity.ReferenceType
	ReferenceID   uuid.UUID
}

type LedgerService interface {
	// Post validates and commits a balanced group of entries as one unit.
	// On violation nothing is persisted.
	Post(ctx context.Context, lines []EntryLine) ([]*entity.LedgerEntry, error)

	// PostTx is Post inside the caller's transaction, for engines that must
	// commit ledger entries together with their own rows.
	PostTx(ctx context.Context, tx pgx.Tx, lines []EntryLine) ([]*entity.LedgerEntry, error)

	// BalanceOf derives sum(debit) - sum(credit) over all committed entries.
	BalanceOf(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// EntriesOf lists an account's committed entries, oldest first.
	EntriesOf(ctx context.Context, accountID uuid.UUID) ([]*entity.LedgerEntry, error)

	// EntriesFor lists the entries posted under one reference, e.g. every
	// line a booking settlement produced.
	EntriesFor(ctx context.Context, refType entity.ReferenceType, refID uuid.UUID) ([]*entity.LedgerEntry, error)
}

type ledgerService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewLedgerService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) LedgerService {
	return &ledgerService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "ledger")),
	}
}

func (s *ledgerService) Post(ctx context.Context, lines []EntryLine) ([]*entity.LedgerEntry, error) {
	if err := validateEntryGroup(lines); err != nil {
		s.log.Warn("Rejected ledger group", zap.Error(err), zap.Int("lines", len(lines)))
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ledger post: %w", err)
	}
	defer tx.Rollback(ctx)

	entries := buildEntries(lines)
	if err := s.repo.Ledger.CreateGroupTx(ctx, tx, entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit ledger post: %w", err)
	}

	s.logPosted(entries)
	return entries, nil
}

func (s *ledgerService) PostTx(ctx context.Context, tx pgx.Tx, lines []EntryLine) ([]*entity.LedgerEntry, error) {
	if err := validateEntryGroup(lines); err != nil {
		s.log.Warn("Rejected ledger group", zap.Error(err), zap.Int("lines", len(lines)))
		return nil, err
	}

	entries := buildEntries(lines)
	if err := s.repo.Ledger.CreateGroupTx(ctx, tx, entries); err != nil {
		return nil, err
	}

	s.logPosted(entries)
	return entries, nil
}

func (s *ledgerService) BalanceOf(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if account == nil {
		return decimal.Zero, fmt.Errorf("account %s not found", accountID.String())
	}

	return s.repo.Ledger.SumByAccount(ctx, accountID)
}

func (s *ledgerService) EntriesOf(ctx context.Context, accountID uuid.UUID) ([]*entity.LedgerEntry, error) {
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s not found", accountID.String())
	}

	return s.repo.Ledger.FindByAccountID(ctx, accountID)
}

func (s *ledgerService) EntriesFor(ctx context.Context, refType entity.ReferenceType, refID uuid.UUID) ([]*entity.LedgerEntry, error) {
	return s.repo.Ledger.FindByReference(ctx, refType, refID)
}

// validateEntryGroup enforces the fundamental ledger invariant: a non-empty
// group, one side per line, and debits equal to credits within epsilon.
func validateEntryGroup(lines []EntryLine) error {
	if len(lines) == 0 {
		return ErrEmptyEntryGroup
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return &InvalidEntryLineError{Index: i, Reason: "negative amount"}
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return &InvalidEntryLineError{Index: i, Reason: "both debit and credit set"}
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return &InvalidEntryLineError{Index: i, Reason: "neither debit nor credit set"}
		}
		if line.AccountID == uuid.Nil {
			return &InvalidEntryLineError{Index: i, Reason: "missing account"}
		}

		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}

	if debitTotal.Sub(creditTotal).Abs().GreaterThan(balanceEpsilon) {
		return &UnbalancedEntryError{DebitTotal: debitTotal, CreditTotal: creditTotal}
	}

	return nil
}

func buildEntries(lines []EntryLine) []*entity.LedgerEntry {
	groupID := uuid.New()
	now := time.Now()

	entries := make([]*entity.LedgerEntry, len(lines))
	for i, line := range lines {
		entries[i] = &entity.LedgerEntry{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			GroupID:       groupID,
			AccountID:     line.AccountID,
			Debit:         line.Debit,
			Credit:        line.Credit,
			ReferenceType: line.ReferenceType,
			ReferenceID:   line.ReferenceID,
		}
	}

	return entries
}

func (s *ledgerService) logPosted(entries []*entity.LedgerEntry) {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Debit)
	}

	s.log.Info("Ledger group posted",
		zap.String("group_id", entries[0].GroupID.String()),
		zap.Int("lines", len(entries)),
		zap.String("total", total.String()),
		zap.String("reference_type", string(entries[0].ReferenceType)),
		zap.String("reference_id", entries[0].ReferenceID.String()),
	)
}
