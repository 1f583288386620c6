package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/data/repository"
	"venue-settlement/internal/dto/request"
	"venue-settlement/internal/dto/response"
	"venue-settlement/pkg/database"
	"venue-settlement/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type EarningService interface {
	// Settle recognizes revenue for a completed booking: it derives
	// gross/commission/net, creates a PENDING earning, and posts the
	// balanced ledger group for it, all in one transaction.
	Settle(ctx context.Context, req *request.SettleRequest) (*response.EarningResponse, error)

	GetEarning(ctx context.Context, earningID string) (*response.EarningResponse, error)
	ListPendingEarnings(ctx context.Context, organizationID string) ([]*response.EarningResponse, error)
}

type earningService struct {
	db     database.PgxIface
	repo   *repository.Repository
	ledger LedgerService
	config *utils.Config
	log    *zap.Logger
}

func NewEarningService(db database.PgxIface, repo *repository.Repository, ledger LedgerService, config *utils.Config, log *zap.Logger) EarningService {
	return &earningService{
		db:     db,
		repo:   repo,
		ledger: ledger,
		config: config,
		log:    log.With(zap.String("service", "earning")),
	}
}

func (s *earningService) Settle(ctx context.Context, req *request.SettleRequest) (*response.EarningResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Settle validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", req.BookingID)
	}

	if !booking.Settleable() {
		return nil, fmt.Errorf("booking %s status is %s, revenue not recognized", req.BookingID, booking.Status)
	}

	// Idempotency guard. The unique constraint on earnings.booking_id catches
	// the race this pre-check cannot.
	existing, err := s.repo.Earning.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateSettlementError{BookingID: bookingID, EarningID: existing.ID}
	}

	gross := booking.TotalPrice
	ratePercent := s.config.Settlement.DefaultCommissionPercent
	if req.CommissionRatePercent != nil {
		ratePercent = *req.CommissionRatePercent
	}
	rate := decimal.NewFromFloat(ratePercent)
	// Half-up rounding at the final step only; net carries the remainder so
	// commission + net always equals gross.
	commission := gross.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	net := gross.Sub(commission)

	receivable, err := s.venueAccount(ctx, booking.VenueID, entity.AccountTypeAsset, "receivable")
	if err != nil {
		return nil, err
	}
	payable, err := s.venueAccount(ctx, booking.VenueID, entity.AccountTypeLiability, "payable")
	if err != nil {
		return nil, err
	}
	revenue, err := s.platformAccount(ctx, s.config.Settlement.RevenueAccountCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	earning := &entity.Earning{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:        bookingID,
		OrganizationID:   booking.OrganizationID,
		VenueID:          booking.VenueID,
		GrossAmount:      gross,
		CommissionAmount: commission,
		NetAmount:        net,
		Status:           entity.EarningStatusPending,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Earning.CreateTx(ctx, tx, earning); err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateSettlementError{BookingID: bookingID}
		}
		return nil, err
	}

	lines := []EntryLine{
		{AccountID: receivable.ID, Debit: gross, ReferenceType: entity.ReferenceTypeBooking, ReferenceID: bookingID},
		{AccountID: revenue.ID, Credit: commission, ReferenceType: entity.ReferenceTypeBooking, ReferenceID: bookingID},
		{AccountID: payable.ID, Credit: net, ReferenceType: entity.ReferenceTypeBooking, ReferenceID: bookingID},
	}
	// A zero commission rate leaves the revenue line empty; drop it rather
	// than post an all-zero line.
	lines = dropZeroLines(lines)

	if _, err := s.ledger.PostTx(ctx, tx, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}

	s.log.Info("Booking settled",
		zap.String("booking_id", req.BookingID),
		zap.String("earning_id", earning.ID.String()),
		zap.String("gross", gross.String()),
		zap.String("commission", commission.String()),
		zap.String("net", net.String()),
	)

	resp := response.EarningToResponse(earning)
	return &resp, nil
}

func (s *earningService) GetEarning(ctx context.Context, earningID string) (*response.EarningResponse, error) {
	id, err := uuid.Parse(earningID)
	if err != nil {
		return nil, fmt.Errorf("invalid earning ID format %s: %w", earningID, err)
	}

	earning, err := s.repo.Earning.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if earning == nil {
		return nil, fmt.Errorf("earning %s not found", earningID)
	}

	resp := response.EarningToResponse(earning)
	return &resp, nil
}

func (s *earningService) ListPendingEarnings(ctx context.Context, organizationID string) ([]*response.EarningResponse, error) {
	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization ID format %s: %w", organizationID, err)
	}

	earnings, err := s.repo.Earning.FindPendingByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	responses := make([]*response.EarningResponse, len(earnings))
	for i, earning := range earnings {
		resp := response.EarningToResponse(earning)
		responses[i] = &resp
	}

	return responses, nil
}

func (s *earningService) venueAccount(ctx context.Context, venueID uuid.UUID, accountType entity.AccountType, role string) (*entity.Account, error) {
	account, err := s.repo.Account.FindByOwner(ctx, entity.OwnerTypeVenue, venueID, accountType)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("no %s account configured for venue %s", role, venueID.String())
	}
	return account, nil
}

func (s *earningService) platformAccount(ctx context.Context, code string) (*entity.Account, error) {
	account, err := s.repo.Account.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("platform account %s not configured", code)
	}
	return account, nil
}

func dropZeroLines(lines []EntryLine) []EntryLine {
	kept := lines[:0]
	for _, line := range lines {
		if line.Debit.IsZero() && line.Credit.IsZero() {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
