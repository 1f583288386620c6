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

type EarningRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, earning *entity.Earning) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Earning, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Earning, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Earning, error)
	FindByPayoutID(ctx context.Context, payoutID uuid.UUID) ([]*entity.Earning, error)
	FindPendingByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Earning, error)

	// SetPayoutTx moves a set of earnings to a new status and (un)assigns the
	// payout they are batched into, inside the caller's transaction.
	SetPayoutTx(ctx context.Context, tx pgx.Tx, earningIDs []uuid.UUID, payoutID *uuid.UUID, status entity.EarningStatus) error
}

type earningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEarningRepository(db database.PgxIface, log *zap.Logger) EarningRepository {
	return &earningRepository{
		db:  db,
		log: log.With(zap.String("repository", "earning")),
	}
}

const earningColumns = `id, booking_id, organization_id, venue_id, gross_amount, commission_amount, net_amount, status, payout_id, created_at, updated_at`

func (r *earningRepository) CreateTx(ctx context.Context, tx pgx.Tx, earning *entity.Earning) error {
	query := `
		INSERT INTO earnings (id, booking_id, organization_id, venue_id, gross_amount, commission_amount, net_amount, status, payout_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.Exec(ctx, query,
		earning.ID,
		earning.BookingID,
		earning.OrganizationID,
		earning.VenueID,
		earning.GrossAmount,
		earning.CommissionAmount,
		earning.NetAmount,
		earning.Status,
		earning.PayoutID,
		earning.CreatedAt,
		earning.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create earning",
			zap.Error(err),
			zap.String("booking_id", earning.BookingID.String()),
		)
		return fmt.Errorf("create earning for booking %s: %w", earning.BookingID.String(), err)
	}

	return nil
}

func (r *earningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Earning, error) {
	query := `SELECT ` + earningColumns + ` FROM earnings WHERE id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, id), fmt.Sprintf("ID %s", id.String()))
}

func (r *earningRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Earning, error) {
	query := `SELECT ` + earningColumns + ` FROM earnings WHERE booking_id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, bookingID), fmt.Sprintf("booking ID %s", bookingID.String()))
}

func (r *earningRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Earning, error) {
	query := `SELECT ` + earningColumns + ` FROM earnings WHERE id = ANY($1) ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find earnings by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find earnings by IDs: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *earningRepository) FindByPayoutID(ctx context.Context, payoutID uuid.UUID) ([]*entity.Earning, error) {
	query := `SELECT ` + earningColumns + ` FROM earnings WHERE payout_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, payoutID)
	if err != nil {
		r.log.Error("Failed to find earnings by payout ID",
			zap.Error(err),
			zap.String("payout_id", payoutID.String()),
		)
		return nil, fmt.Errorf("find earnings by payout ID %s: %w", payoutID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *earningRepository) FindPendingByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*entity.Earning, error) {
	query := `SELECT ` + earningColumns + ` FROM earnings WHERE organization_id = $1 AND status = $2 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, organizationID, entity.EarningStatusPending)
	if err != nil {
		r.log.Error("Failed to find pending earnings by organization",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find pending earnings for organization %s: %w", organizationID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *earningRepository) SetPayoutTx(ctx context.Context, tx pgx.Tx, earningIDs []uuid.UUID, payoutID *uuid.UUID, status entity.EarningStatus) error {
	query := `UPDATE earnings SET status = $2, payout_id = $3, updated_at = NOW() WHERE id = ANY($1)`

	result, err := tx.Exec(ctx, query, earningIDs, status, payoutID)
	if err != nil {
		r.log.Error("Failed to update earning statuses",
			zap.Error(err),
			zap.Int("count", len(earningIDs)),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update %d earnings to %s: %w", len(earningIDs), string(status), err)
	}

	if int(result.RowsAffected()) != len(earningIDs) {
		return fmt.Errorf("updated %d of %d earnings", result.RowsAffected(), len(earningIDs))
	}

	return nil
}

func (r *earningRepository) scanOne(row pgx.Row, desc string) (*entity.Earning, error) {
	var earning entity.Earning
	err := row.Scan(
		&earning.ID,
		&earning.BookingID,
		&earning.OrganizationID,
		&earning.VenueID,
		&earning.GrossAmount,
		&earning.CommissionAmount,
		&earning.NetAmount,
		&earning.Status,
		&earning.PayoutID,
		&earning.CreatedAt,
		&earning.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find earning", zap.Error(err), zap.String("lookup", desc))
		return nil, fmt.Errorf("find earning by %s: %w", desc, err)
	}

	return &earning, nil
}

func (r *earningRepository) scanRows(rows pgx.Rows) ([]*entity.Earning, error) {
	var earnings []*entity.Earning
	for rows.Next() {
		var earning entity.Earning
		err := rows.Scan(
			&earning.ID,
			&earning.BookingID,
			&earning.OrganizationID,
			&earning.VenueID,
			&earning.GrossAmount,
			&earning.CommissionAmount,
			&earning.NetAmount,
			&earning.Status,
			&earning.PayoutID,
			&earning.CreatedAt,
			&earning.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan earning row", zap.Error(err))
			return nil, fmt.Errorf("scan earning row: %w", err)
		}
		earnings = append(earnings, &earning)
	}

	return earnings, nil
}
