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

type PricingRuleRepository interface {
	Create(ctx context.Context, rule *entity.RoomPricingRule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomPricingRule, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomPricingRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pricingRuleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingRuleRepository(db database.PgxIface, log *zap.Logger) PricingRuleRepository {
	return &pricingRuleRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing_rule")),
	}
}

func (r *pricingRuleRepository) Create(ctx context.Context, rule *entity.RoomPricingRule) error {
	query := `
		INSERT INTO room_pricing_rules (id, room_id, day_type, start_time, end_time, start_date, end_date, price_per_hour, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		rule.ID,
		rule.RoomID,
		rule.DayType,
		rule.StartTime,
		rule.EndTime,
		rule.StartDate,
		rule.EndDate,
		rule.PricePerHour,
		rule.Priority,
		rule.CreatedAt,
		rule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create pricing rule",
			zap.Error(err),
			zap.String("room_id", rule.RoomID.String()),
		)
		return fmt.Errorf("create pricing rule for room %s: %w", rule.RoomID.String(), err)
	}

	return nil
}

func (r *pricingRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomPricingRule, error) {
	query := `
		SELECT id, room_id, day_type, start_time, end_time, start_date, end_date, price_per_hour, priority, created_at, updated_at
		FROM room_pricing_rules
		WHERE id = $1
	`

	var rule entity.RoomPricingRule
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rule.ID,
		&rule.RoomID,
		&rule.DayType,
		&rule.StartTime,
		&rule.EndTime,
		&rule.StartDate,
		&rule.EndDate,
		&rule.PricePerHour,
		&rule.Priority,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pricing rule by ID",
			zap.Error(err),
			zap.String("rule_id", id.String()),
		)
		return nil, fmt.Errorf("find pricing rule by ID %s: %w", id.String(), err)
	}

	return &rule, nil
}

func (r *pricingRuleRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomPricingRule, error) {
	query := `
		SELECT id, room_id, day_type, start_time, end_time, start_date, end_date, price_per_hour, priority, created_at, updated_at
		FROM room_pricing_rules
		WHERE room_id = $1
		ORDER BY priority DESC, created_at
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find pricing rules by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find pricing rules by room ID %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var rules []*entity.RoomPricingRule
	for rows.Next() {
		var rule entity.RoomPricingRule
		err := rows.Scan(
			&rule.ID,
			&rule.RoomID,
			&rule.DayType,
			&rule.StartTime,
			&rule.EndTime,
			&rule.StartDate,
			&rule.EndDate,
			&rule.PricePerHour,
			&rule.Priority,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pricing rule row", zap.Error(err))
			return nil, fmt.Errorf("scan pricing rule row: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

func (r *pricingRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM room_pricing_rules WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete pricing rule",
			zap.Error(err),
			zap.String("rule_id", id.String()),
		)
		return fmt.Errorf("delete pricing rule %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pricing rule %s not found", id.String())
	}

	r.log.Info("Pricing rule deleted", zap.String("rule_id", id.String()))
	return nil
}
