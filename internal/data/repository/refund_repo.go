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

type RefundRepository interface {
	Create(ctx context.Context, refund *entity.Refund) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Refund, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Refund, error)
	UpdateStatus(ctx context.Context, refundID uuid.UUID, status entity.RefundStatus) error
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, refundID uuid.UUID, status entity.RefundStatus) error
}

type refundRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRefundRepository(db database.PgxIface, log *zap.Logger) RefundRepository {
	return &refundRepository{
		db:  db,
		log: log.With(zap.String("repository", "refund")),
	}
}

func (r *refundRepository) Create(ctx context.Context, refund *entity.Refund) error {
	query := `
		INSERT INTO refunds (id, booking_id, payment_id, amount, fee_percent, tier, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		refund.ID,
		refund.BookingID,
		refund.PaymentID,
		refund.Amount,
		refund.FeePercent,
		refund.Tier,
		refund.Reason,
		refund.Status,
		refund.CreatedAt,
		refund.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create refund",
			zap.Error(err),
			zap.String("booking_id", refund.BookingID.String()),
		)
		return fmt.Errorf("create refund for booking %s: %w", refund.BookingID.String(), err)
	}

	return nil
}

func (r *refundRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Refund, error) {
	query := `
		SELECT id, booking_id, payment_id, amount, fee_percent, tier, reason, status, created_at, updated_at
		FROM refunds
		WHERE id = $1
	`

	var refund entity.Refund
	err := r.db.QueryRow(ctx, query, id).Scan(
		&refund.ID,
		&refund.BookingID,
		&refund.PaymentID,
		&refund.Amount,
		&refund.FeePercent,
		&refund.Tier,
		&refund.Reason,
		&refund.Status,
		&refund.CreatedAt,
		&refund.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find refund by ID",
			zap.Error(err),
			zap.String("refund_id", id.String()),
		)
		return nil, fmt.Errorf("find refund by ID %s: %w", id.String(), err)
	}

	return &refund, nil
}

func (r *refundRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Refund, error) {
	query := `
		SELECT id, booking_id, payment_id, amount, fee_percent, tier, reason, status, created_at, updated_at
		FROM refunds
		WHERE booking_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find refunds by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find refunds by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var refunds []*entity.Refund
	for rows.Next() {
		var refund entity.Refund
		err := rows.Scan(
			&refund.ID,
			&refund.BookingID,
			&refund.PaymentID,
			&refund.Amount,
			&refund.FeePercent,
			&refund.Tier,
			&refund.Reason,
			&refund.Status,
			&refund.CreatedAt,
			&refund.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan refund row", zap.Error(err))
			return nil, fmt.Errorf("scan refund row: %w", err)
		}
		refunds = append(refunds, &refund)
	}

	return refunds, nil
}

func (r *refundRepository) UpdateStatus(ctx context.Context, refundID uuid.UUID, status entity.RefundStatus) error {
	query := `UPDATE refunds SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, refundID, status)
	if err != nil {
		r.log.Error("Failed to update refund status",
			zap.Error(err),
			zap.String("refund_id", refundID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update refund %s status to %s: %w", refundID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("refund %s not found", refundID.String())
	}

	return nil
}

func (r *refundRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, refundID uuid.UUID, status entity.RefundStatus) error {
	query := `UPDATE refunds SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := tx.Exec(ctx, query, refundID, status)
	if err != nil {
		r.log.Error("Failed to update refund status",
			zap.Error(err),
			zap.String("refund_id", refundID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update refund %s status to %s: %w", refundID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("refund %s not found", refundID.String())
	}

	return nil
}
