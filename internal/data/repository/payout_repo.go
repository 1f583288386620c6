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

type PayoutRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, payout *entity.Payout) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error)
	FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Payout, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, payoutID uuid.UUID, status entity.PayoutStatus) error
}

type payoutRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPayoutRepository(db database.PgxIface, log *zap.Logger) PayoutRepository {
	return &payoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "payout")),
	}
}

func (r *payoutRepository) CreateTx(ctx context.Context, tx pgx.Tx, payout *entity.Payout) error {
	query := `
		INSERT INTO payouts (id, payout_number, organization_id, payout_account_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		payout.ID,
		payout.PayoutNumber,
		payout.OrganizationID,
		payout.PayoutAccountID,
		payout.TotalAmount,
		payout.Status,
		payout.CreatedAt,
		payout.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payout",
			zap.Error(err),
			zap.String("payout_number", payout.PayoutNumber),
		)
		return fmt.Errorf("create payout %s: %w", payout.PayoutNumber, err)
	}

	return nil
}

func (r *payoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error) {
	query := `
		SELECT id, payout_number, organization_id, payout_account_id, total_amount, status, created_at, updated_at
		FROM payouts
		WHERE id = $1
	`

	var payout entity.Payout
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payout.ID,
		&payout.PayoutNumber,
		&payout.OrganizationID,
		&payout.PayoutAccountID,
		&payout.TotalAmount,
		&payout.Status,
		&payout.CreatedAt,
		&payout.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payout by ID",
			zap.Error(err),
			zap.String("payout_id", id.String()),
		)
		return nil, fmt.Errorf("find payout by ID %s: %w", id.String(), err)
	}

	return &payout, nil
}

func (r *payoutRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Payout, error) {
	query := `
		SELECT id, payout_number, organization_id, payout_account_id, total_amount, status, created_at, updated_at
		FROM payouts
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		r.log.Error("Failed to find payouts by organization",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find payouts for organization %s: %w", organizationID.String(), err)
	}
	defer rows.Close()

	var payouts []*entity.Payout
	for rows.Next() {
		var payout entity.Payout
		err := rows.Scan(
			&payout.ID,
			&payout.PayoutNumber,
			&payout.OrganizationID,
			&payout.PayoutAccountID,
			&payout.TotalAmount,
			&payout.Status,
			&payout.CreatedAt,
			&payout.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payout row", zap.Error(err))
			return nil, fmt.Errorf("scan payout row: %w", err)
		}
		payouts = append(payouts, &payout)
	}

	return payouts, nil
}

func (r *payoutRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, payoutID uuid.UUID, status entity.PayoutStatus) error {
	query := `UPDATE payouts SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := tx.Exec(ctx, query, payoutID, status)
	if err != nil {
		r.log.Error("Failed to update payout status",
			zap.Error(err),
			zap.String("payout_id", payoutID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payout %s status to %s: %w", payoutID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payout %s not found", payoutID.String())
	}

	return nil
}
