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

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByCode(ctx context.Context, code string) (*entity.Account, error)
	FindByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, accountType entity.AccountType) (*entity.Account, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type accountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccountRepository(db database.PgxIface, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, code, name, owner_type, owner_id, type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Code,
		account.Name,
		account.OwnerType,
		account.OwnerID,
		account.Type,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create account",
			zap.Error(err),
			zap.String("code", account.Code),
		)
		return fmt.Errorf("create account %s: %w", account.Code, err)
	}

	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := `
		SELECT id, code, name, owner_type, owner_id, type, is_active, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id), fmt.Sprintf("ID %s", id.String()))
}

func (r *accountRepository) FindByCode(ctx context.Context, code string) (*entity.Account, error) {
	query := `
		SELECT id, code, name, owner_type, owner_id, type, is_active, created_at, updated_at
		FROM accounts
		WHERE code = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, code), fmt.Sprintf("code %s", code))
}

func (r *accountRepository) FindByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, accountType entity.AccountType) (*entity.Account, error) {
	query := `
		SELECT id, code, name, owner_type, owner_id, type, is_active, created_at, updated_at
		FROM accounts
		WHERE owner_type = $1 AND owner_id = $2 AND type = $3 AND is_active = true
		ORDER BY created_at
		LIMIT 1
	`

	return r.scanOne(
		r.db.QueryRow(ctx, query, ownerType, ownerID, accountType),
		fmt.Sprintf("owner %s/%s type %s", string(ownerType), ownerID.String(), string(accountType)),
	)
}

func (r *accountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accounts SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate account",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return fmt.Errorf("deactivate account %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found", id.String())
	}

	r.log.Info("Account deactivated", zap.String("account_id", id.String()))
	return nil
}

func (r *accountRepository) scanOne(row pgx.Row, desc string) (*entity.Account, error) {
	var account entity.Account
	err := row.Scan(
		&account.ID,
		&account.Code,
		&account.Name,
		&account.OwnerType,
		&account.OwnerID,
		&account.Type,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account", zap.Error(err), zap.String("lookup", desc))
		return nil, fmt.Errorf("find account by %s: %w", desc, err)
	}

	return &account, nil
}
