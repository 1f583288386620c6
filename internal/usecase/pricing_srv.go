package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/data/repository"
	"venue-settlement/internal/dto/request"
	"venue-settlement/internal/dto/response"
	"venue-settlement/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PricingService interface {
	// QuoteRate resolves the effective hourly rate for a room and query
	// window. Rules are re-read on every call; nothing is cached.
	QuoteRate(ctx context.Context, req *request.RateQuoteRequest) (*response.RateQuoteResponse, error)

	// Rule management for venue administrators.
	CreateRule(ctx context.Context, roomID string, req *request.CreatePricingRuleRequest) (*response.PricingRuleResponse, error)
	ListRoomRules(ctx context.Context, roomID string) ([]*response.PricingRuleResponse, error)
	DeleteRule(ctx context.Context, ruleID string) error
}

type pricingService struct {
	repo     *repository.Repository
	holidays HolidayCalendar
	log      *zap.Logger
}

func NewPricingService(repo *repository.Repository, holidays HolidayCalendar, log *zap.Logger) PricingService {
	return &pricingService{
		repo:     repo,
		holidays: holidays,
		log:      log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) QuoteRate(ctx context.Context, req *request.RateQuoteRequest) (*response.RateQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Rate quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", req.RoomID, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, err)
	}

	startMin, err := entity.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := entity.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}

	rules, err := s.repo.PricingRule.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	baseRate := decimal.NewFromFloat(req.BaseHourlyRate)
	rate := ResolveRate(rules, date, startMin, endMin, baseRate, s.holidays, s.log)

	// Duration in fractional hours; a wrapped window runs into the next day.
	durationMin := endMin - startMin
	if durationMin <= 0 {
		durationMin += minutesPerDay
	}
	total := rate.Mul(decimal.NewFromInt(int64(durationMin))).Div(decimal.NewFromInt(60)).Round(2)

	s.log.Info("Rate resolved",
		zap.String("room_id", req.RoomID),
		zap.String("date", req.Date),
		zap.String("window", req.StartTime+"-"+req.EndTime),
		zap.String("price_per_hour", rate.String()),
		zap.Int("rules", len(rules)),
	)

	resp := response.RateQuoteToResponse(roomID, req.Date, req.StartTime, req.EndTime, rate, total)
	return &resp, nil
}

func (s *pricingService) CreateRule(ctx context.Context, roomID string, req *request.CreatePricingRuleRequest) (*response.PricingRuleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create pricing rule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	if (req.StartDate == "") != (req.EndDate == "") {
		return nil, fmt.Errorf("start date and end date must be set together")
	}

	var startDate, endDate *time.Time
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, err)
		}
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %s: %w", req.EndDate, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("end date %s before start date %s", req.EndDate, req.StartDate)
		}
		startDate, endDate = &start, &end
	}

	now := time.Now()
	rule := &entity.RoomPricingRule{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RoomID:       id,
		DayType:      entity.DayType(req.DayType),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		StartDate:    startDate,
		EndDate:      endDate,
		PricePerHour: decimal.NewFromFloat(req.PricePerHour),
		Priority:     req.Priority,
	}

	if err := s.repo.PricingRule.Create(ctx, rule); err != nil {
		return nil, err
	}

	s.log.Info("Pricing rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("room_id", roomID),
		zap.String("day_type", string(rule.DayType)),
		zap.Int("priority", rule.Priority),
	)

	resp := response.PricingRuleToResponse(rule)
	return &resp, nil
}

func (s *pricingService) ListRoomRules(ctx context.Context, roomID string) ([]*response.PricingRuleResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	rules, err := s.repo.PricingRule.FindByRoomID(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]*response.PricingRuleResponse, len(rules))
	for i, rule := range rules {
		resp := response.PricingRuleToResponse(rule)
		responses[i] = &resp
	}

	return responses, nil
}

func (s *pricingService) DeleteRule(ctx context.Context, ruleID string) error {
	id, err := uuid.Parse(ruleID)
	if err != nil {
		return fmt.Errorf("invalid rule ID format %s: %w", ruleID, err)
	}

	return s.repo.PricingRule.Delete(ctx, id)
}
