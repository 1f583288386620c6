package repository

import (
	"context"
	"fmt"

	"venue-settlement/internal/data/entity"
	"venue-settlement/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type LedgerRepository interface {
	// CreateGroupTx appends a balanced group of entries inside the caller's
	// transaction so the whole group commits or none of it does.
	CreateGroupTx(ctx context.Context, tx pgx.Tx, entries []*entity.LedgerEntry) error

	FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entity.LedgerEntry, error)
	FindByReference(ctx context.Context, refType entity.ReferenceType, refID uuid.UUID) ([]*entity.LedgerEntry, error)

	// SumByAccount returns sum(debit) - sum(credit) over all committed entries
	// for the account. Balances are always derived, never cached.
	SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

type ledgerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLedgerRepository(db database.PgxIface, log *zap.Logger) LedgerRepository {
	return &ledgerRepository{
		db:  db,
		log: log.With(zap.String("repository", "ledger")),
	}
}

func (r *ledgerRepository) CreateGroupTx(ctx context.Context, tx pgx.Tx, entries []*entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, group_id, account_id, debit, credit, reference_type, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, entry := range entries {
		_, err := tx.Exec(ctx, query,
			entry.ID,
			entry.GroupID,
			entry.AccountID,
			entry.Debit,
			entry.Credit,
			entry.ReferenceType,
			entry.ReferenceID,
			entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create ledger entry",
				zap.Error(err),
				zap.String("group_id", entry.GroupID.String()),
				zap.String("account_id", entry.AccountID.String()),
			)
			return fmt.Errorf("create ledger entry for account %s: %w", entry.AccountID.String(), err)
		}
	}

	return nil
}

func (r *ledgerRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, group_id, account_id, debit, credit, reference_type, reference_id, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error("Failed to find ledger entries by account ID",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("find ledger entries by account ID %s: %w", accountID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *ledgerRepository) FindByReference(ctx context.Context, refType entity.ReferenceType, refID uuid.UUID) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, group_id, account_id, debit, credit, reference_type, reference_id, created_at
		FROM ledger_entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, refType, refID)
	if err != nil {
		r.log.Error("Failed to find ledger entries by reference",
			zap.Error(err),
			zap.String("reference_type", string(refType)),
			zap.String("reference_id", refID.String()),
		)
		return nil, fmt.Errorf("find ledger entries by reference %s/%s: %w", string(refType), refID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *ledgerRepository) SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit - credit), 0)
		FROM ledger_entries
		WHERE account_id = $1
	`

	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, query, accountID).Scan(&sum)
	if err != nil {
		r.log.Error("Failed to sum ledger entries by account",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return decimal.Zero, fmt.Errorf("sum ledger entries for account %s: %w", accountID.String(), err)
	}

	return sum, nil
}

func (r *ledgerRepository) scanRows(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	var entries []*entity.LedgerEntry
	for rows.Next() {
		var entry entity.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.GroupID,
			&entry.AccountID,
			&entry.Debit,
			&entry.Credit,
			&entry.ReferenceType,
			&entry.ReferenceID,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ledger entry row", zap.Error(err))
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
