package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-settlement/internal/data/entity"
	"venue-settlement/internal/data/repository"
	"venue-settlement/internal/dto/request"
	"venue-settlement/internal/dto/response"
	"venue-settlement/pkg/database"
	"venue-settlement/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefundService interface {
	// QuoteRefund applies the tiered policy to a booking without side
	// effects.
	QuoteRefund(ctx context.Context, req *request.QuoteRefundRequest) (*response.RefundQuoteResponse, error)

	// RequestRefund freezes a quote into a PENDING refund record.
	RequestRefund(ctx context.Context, req *request.CreateRefundRequest) (*response.RefundResponse, error)

	// ApproveRefund posts the compensating ledger group and completes the
	// refund. Applied at most once per refund.
	ApproveRefund(ctx context.Context, refundID string) (*response.RefundResponse, error)

	RejectRefund(ctx context.Context, refundID string) (*response.RefundResponse, error)
}

type refundService struct {
	db     database.PgxIface
	repo   *repository.Repository
	ledger LedgerService
	policy RefundPolicy
	config *utils.Config
	log    *zap.Logger
}

func NewRefundService(db database.PgxIface, repo *repository.Repository, ledger LedgerService, config *utils.Config, log *zap.Logger) RefundService {
	return &refundService{
		db:     db,
		repo:   repo,
		ledger: ledger,
		policy: PolicyFromConfig(config.Refund),
		config: config,
		log:    log.With(zap.String("service", "refund")),
	}
}

func (s *refundService) QuoteRefund(ctx context.Context, req *request.QuoteRefundRequest) (*response.RefundQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote refund validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.At != "" {
		at, err = time.Parse(time.RFC3339, req.At)
		if err != nil {
			return nil, fmt.Errorf("invalid quote time %s: %w", req.At, err)
		}
	}

	quote := ComputeRefund(booking.TotalPrice, booking.StartTime, at, s.policy)

	resp := response.RefundQuoteToResponse(booking.ID, quote.RefundAmount, quote.FeePercent, quote.Tier)
	return &resp, nil
}

func (s *refundService) RequestRefund(ctx context.Context, req *request.CreateRefundRequest) (*response.RefundResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Request refund validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	var paymentID *uuid.UUID
	if req.PaymentID != "" {
		id, err := uuid.Parse(req.PaymentID)
		if err != nil {
			return nil, fmt.Errorf("invalid payment ID format %s: %w", req.PaymentID, err)
		}
		paymentID = &id
	}

	quote := ComputeRefund(booking.TotalPrice, booking.StartTime, time.Now(), s.policy)

	now := time.Now()
	refund := &entity.Refund{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:  booking.ID,
		PaymentID:  paymentID,
		Amount:     quote.RefundAmount,
		FeePercent: quote.FeePercent,
		Tier:       quote.Tier,
		Reason:     req.Reason,
		Status:     entity.RefundStatusPending,
	}

	if err := s.repo.Refund.Create(ctx, refund); err != nil {
		return nil, err
	}

	s.log.Info("Refund requested",
		zap.String("refund_id", refund.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("amount", refund.Amount.String()),
		zap.String("fee_percent", refund.FeePercent.String()),
		zap.Int("tier", refund.Tier),
	)

	resp := response.RefundToResponse(refund)
	return &resp, nil
}

func (s *refundService) ApproveRefund(ctx context.Context, refundID string) (*response.RefundResponse, error) {
	refund, err := s.findRefund(ctx, refundID)
	if err != nil {
		return nil, err
	}

	if refund.Status != entity.RefundStatusPending {
		return nil, &RefundAlreadyDecidedError{RefundID: refund.ID, Status: refund.Status}
	}

	clearing, err := s.platformAccount(ctx, s.config.Settlement.RefundClearingAccountCode)
	if err != nil {
		return nil, err
	}
	payable, err := s.platformAccount(ctx, s.config.Settlement.RefundPayableAccountCode)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin refund approval: %w", err)
	}
	defer tx.Rollback(ctx)

	// Nothing to post for a fully-forfeited (tier 3, 100% fee) refund.
	if refund.Amount.IsPositive() {
		lines := []EntryLine{
			{AccountID: clearing.ID, Debit: refund.Amount, ReferenceType: entity.ReferenceTypeRefund, ReferenceID: refund.ID},
			{AccountID: payable.ID, Credit: refund.Amount, ReferenceType: entity.ReferenceTypeRefund, ReferenceID: refund.ID},
		}
		if _, err := s.ledger.PostTx(ctx, tx, lines); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Refund.UpdateStatusTx(ctx, tx, refund.ID, entity.RefundStatusCompleted); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit refund approval: %w", err)
	}

	refund.Status = entity.RefundStatusCompleted

	s.log.Info("Refund approved",
		zap.String("refund_id", refund.ID.String()),
		zap.String("booking_id", refund.BookingID.String()),
		zap.String("amount", refund.Amount.String()),
	)

	resp := response.RefundToResponse(refund)
	return &resp, nil
}

func (s *refundService) RejectRefund(ctx context.Context, refundID string) (*response.RefundResponse, error) {
	refund, err := s.findRefund(ctx, refundID)
	if err != nil {
		return nil, err
	}

	if refund.Status != entity.RefundStatusPending {
		return nil, &RefundAlreadyDecidedError{RefundID: refund.ID, Status: refund.Status}
	}

	if err := s.repo.Refund.UpdateStatus(ctx, refund.ID, entity.RefundStatusRejected); err != nil {
		return nil, err
	}

	refund.Status = entity.RefundStatusRejected

	s.log.Info("Refund rejected",
		zap.String("refund_id", refund.ID.String()),
		zap.String("booking_id", refund.BookingID.String()),
	)

	resp := response.RefundToResponse(refund)
	return &resp, nil
}

func (s *refundService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return booking, nil
}

func (s *refundService) findRefund(ctx context.Context, refundID string) (*entity.Refund, error) {
	id, err := uuid.Parse(refundID)
	if err != nil {
		return nil, fmt.Errorf("invalid refund ID format %s: %w", refundID, err)
	}

	refund, err := s.repo.Refund.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, fmt.Errorf("refund %s not found", refundID)
	}

	return refund, nil
}

func (s *refundService) platformAccount(ctx context.Context, code string) (*entity.Account, error) {
	account, err := s.repo.Account.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("platform account %s not configured", code)
	}
	return account, nil
}
