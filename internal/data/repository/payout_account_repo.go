package repository

import (
	"context"
	"fmt"

	"venue-settlement/internal/data/entity"
	"venue-settlement/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PayoutAccountRepository interface {
	Create(ctx context.Context, account *entity.PayoutAccount) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutAccount, error)
	FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.PayoutAccount, error)
	FindDefaultByOrganization(ctx context.Context, organizationID uuid.UUID) (*entity.PayoutAccount, error)
	SetDefault(ctx context.Context, organizationID, accountID uuid.UUID) error
}

type payoutAccountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPayoutAccountRepository(db database.PgxIface, log *zap.Logger) PayoutAccountRepository {
	return &payoutAccountRepository{
		db:  db,
		log: log.With(zap.String("repository", "payout_account")),
	}
}

const payoutAccountColumns = `id, organization_id, bank_name, account_number, account_name, provider, is_default, created_at, updated_at`

func (r *payoutAccountRepository) Create(ctx context.Context, account *entity.PayoutAccount) error {
	query := `
		INSERT INTO payout_accounts (id, organization_id, bank_name, account_number, account_name, provider, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.OrganizationID,
		account.BankName,
		account.AccountNumber,
		account.AccountName,
		account.Provider,
		account.IsDefault,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payout account",
			zap.Error(err),
			zap.String("organization_id", account.OrganizationID.String()),
		)
		return fmt.Errorf("create payout account for organization %s: %w", account.OrganizationID.String(), err)
	}

	return nil
}

func (r *payoutAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutAccount, error) {
	query := `SELECT ` + payoutAccountColumns + ` FROM payout_accounts WHERE id = $1`

	var account entity.PayoutAccount
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.OrganizationID,
		&account.BankName,
		&account.AccountNumber,
		&account.AccountName,
		&account.Provider,
		&account.IsDefault,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payout account by ID",
			zap.Error(err),
			zap.String("payout_account_id", id.String()),
		)
		return nil, fmt.Errorf("find payout account by ID %s: %w", id.String(), err)
	}

	return &account, nil
}

func (r *payoutAccountRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.PayoutAccount, error) {
	query := `SELECT ` + payoutAccountColumns + ` FROM payout_accounts WHERE organization_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		r.log.Error("Failed to find payout accounts by organization",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find payout accounts for organization %s: %w", organizationID.String(), err)
	}
	defer rows.Close()

	var accounts []*entity.PayoutAccount
	for rows.Next() {
		var account entity.PayoutAccount
		err := rows.Scan(
			&account.ID,
			&account.OrganizationID,
			&account.BankName,
			&account.AccountNumber,
			&account.AccountName,
			&account.Provider,
			&account.IsDefault,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payout account row", zap.Error(err))
			return nil, fmt.Errorf("scan payout account row: %w", err)
		}
		accounts = append(accounts, &account)
	}

	return accounts, nil
}

func (r *payoutAccountRepository) FindDefaultByOrganization(ctx context.Context, organizationID uuid.UUID) (*entity.PayoutAccount, error) {
	query := `SELECT ` + payoutAccountColumns + ` FROM payout_accounts WHERE organization_id = $1 AND is_default = true LIMIT 1`

	var account entity.PayoutAccount
	err := r.db.QueryRow(ctx, query, organizationID).Scan(
		&account.ID,
		&account.OrganizationID,
		&account.BankName,
		&account.AccountNumber,
		&account.AccountName,
		&account.Provider,
		&account.IsDefault,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find default payout account",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find default payout account for organization %s: %w", organizationID.String(), err)
	}

	return &account, nil
}

func (r *payoutAccountRepository) SetDefault(ctx context.Context, organizationID, accountID uuid.UUID) error {
	// Clear the old default first so at most one account is default per org.
	clearQuery := `UPDATE payout_accounts SET is_default = false, updated_at = NOW() WHERE organization_id = $1 AND is_default = true`
	if _, err := r.db.Exec(ctx, clearQuery, organizationID); err != nil {
		r.log.Error("Failed to clear default payout account",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return fmt.Errorf("clear default payout account for organization %s: %w", organizationID.String(), err)
	}

	setQuery := `UPDATE payout_accounts SET is_default = true, updated_at = NOW() WHERE id = $1 AND organization_id = $2`
	result, err := r.db.Exec(ctx, setQuery, accountID, organizationID)
	if err != nil {
		r.log.Error("Failed to set default payout account",
			zap.Error(err),
			zap.String("payout_account_id", accountID.String()),
		)
		return fmt.Errorf("set default payout account %s: %w", accountID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payout account %s not found for organization %s", accountID.String(), organizationID.String())
	}

	return nil
}
