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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PayoutService interface {
	// RequestPayout batches a set of PENDING earnings from one organization
	// into a new PENDING payout. No money moves yet, so no ledger entries.
	RequestPayout(ctx context.Context, req *request.RequestPayoutRequest) (*response.PayoutResponse, error)

	// SettlePayout applies the payout outcome exactly once. PAID posts the
	// ledger group and finalizes the earnings; FAILED releases them for
	// re-batching.
	SettlePayout(ctx context.Context, payoutID string, req *request.SettlePayoutRequest) (*response.PayoutResponse, error)

	GetPayout(ctx context.Context, payoutID string) (*response.PayoutResponse, error)

	// DefaultPayoutAccount picks the organization's default account, falling
	// back to the oldest one.
	DefaultPayoutAccount(ctx context.Context, organizationID string) (*response.PayoutAccountResponse, error)
}

type payoutService struct {
	db     database.PgxIface
	repo   *repository.Repository
	ledger LedgerService
	config *utils.Config
	log    *zap.Logger
}

func NewPayoutService(db database.PgxIface, repo *repository.Repository, ledger LedgerService, config *utils.Config, log *zap.Logger) PayoutService {
	return &payoutService{
		db:     db,
		repo:   repo,
		ledger: ledger,
		config: config,
		log:    log.With(zap.String("service", "payout")),
	}
}

func (s *payoutService) RequestPayout(ctx context.Context, req *request.RequestPayoutRequest) (*response.PayoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Request payout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	earningIDs := make([]uuid.UUID, len(req.EarningIDs))
	for i, idStr := range req.EarningIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid earning ID format %s: %w", idStr, err)
		}
		earningIDs[i] = id
	}

	payoutAccountID, err := uuid.Parse(req.PayoutAccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid payout account ID format %s: %w", req.PayoutAccountID, err)
	}

	earnings, err := s.repo.Earning.FindByIDs(ctx, earningIDs)
	if err != nil {
		return nil, err
	}
	if len(earnings) != len(earningIDs) {
		return nil, fmt.Errorf("found %d of %d requested earnings", len(earnings), len(earningIDs))
	}

	organizationID := earnings[0].OrganizationID
	total := decimal.Zero
	for _, earning := range earnings {
		if earning.Status != entity.EarningStatusPending {
			return nil, &InvalidEarningStateError{
				EarningID: earning.ID,
				Status:    earning.Status,
				Required:  entity.EarningStatusPending,
			}
		}
		if earning.OrganizationID != organizationID {
			return nil, &CrossOrganizationError{
				OrganizationID: organizationID,
				OtherID:        earning.OrganizationID,
			}
		}
		total = total.Add(earning.NetAmount)
	}

	payoutAccount, err := s.repo.PayoutAccount.FindByID(ctx, payoutAccountID)
	if err != nil {
		return nil, err
	}
	if payoutAccount == nil || payoutAccount.OrganizationID != organizationID {
		return nil, &UnknownPayoutAccountError{PayoutAccountID: payoutAccountID}
	}

	now := time.Now()
	payout := &entity.Payout{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PayoutNumber:    utils.GeneratePayoutNumber(),
		OrganizationID:  organizationID,
		PayoutAccountID: payoutAccountID,
		TotalAmount:     total,
		Status:          entity.PayoutStatusPending,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payout request: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Payout.CreateTx(ctx, tx, payout); err != nil {
		return nil, err
	}

	if err := s.repo.Earning.SetPayoutTx(ctx, tx, earningIDs, &payout.ID, entity.EarningStatusRequested); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit payout request: %w", err)
	}

	s.log.Info("Payout requested",
		zap.String("payout_id", payout.ID.String()),
		zap.String("payout_number", payout.PayoutNumber),
		zap.String("organization_id", organizationID.String()),
		zap.Int("earnings", len(earnings)),
		zap.String("total", total.String()),
	)

	return s.buildPayoutResponse(ctx, payout), nil
}

func (s *payoutService) SettlePayout(ctx context.Context, payoutID string, req *request.SettlePayoutRequest) (*response.PayoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Settle payout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(payoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid payout ID format %s: %w", payoutID, err)
	}

	payout, err := s.repo.Payout.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("payout %s not found", payoutID)
	}

	if payout.Status != entity.PayoutStatusPending {
		return nil, &PayoutAlreadySettledError{PayoutID: payout.ID, Status: payout.Status}
	}

	earnings, err := s.repo.Earning.FindByPayoutID(ctx, payout.ID)
	if err != nil {
		return nil, err
	}

	switch entity.PayoutStatus(req.Outcome) {
	case entity.PayoutStatusPaid:
		return s.settlePaid(ctx, payout, earnings)
	case entity.PayoutStatusFailed:
		return s.settleFailed(ctx, payout, earnings)
	default:
		return nil, fmt.Errorf("invalid payout outcome %s", req.Outcome)
	}
}

// settlePaid moves the money: debit each venue's payable for its share of the
// batch and credit platform cash for the whole amount, then finalize statuses.
func (s *payoutService) settlePaid(ctx context.Context, payout *entity.Payout, earnings []*entity.Earning) (*response.PayoutResponse, error) {
	perVenue := make(map[uuid.UUID]decimal.Decimal)
	var venueOrder []uuid.UUID
	earningIDs := make([]uuid.UUID, len(earnings))

	for i, earning := range earnings {
		earningIDs[i] = earning.ID
		if _, seen := perVenue[earning.VenueID]; !seen {
			venueOrder = append(venueOrder, earning.VenueID)
		}
		perVenue[earning.VenueID] = perVenue[earning.VenueID].Add(earning.NetAmount)
	}

	cash, err := s.repo.Account.FindByCode(ctx, s.config.Settlement.CashAccountCode)
	if err != nil {
		return nil, err
	}
	if cash == nil {
		return nil, fmt.Errorf("platform account %s not configured", s.config.Settlement.CashAccountCode)
	}

	var lines []EntryLine
	for _, venueID := range venueOrder {
		payable, err := s.repo.Account.FindByOwner(ctx, entity.OwnerTypeVenue, venueID, entity.AccountTypeLiability)
		if err != nil {
			return nil, err
		}
		if payable == nil {
			return nil, fmt.Errorf("no payable account configured for venue %s", venueID.String())
		}
		lines = append(lines, EntryLine{
			AccountID:     payable.ID,
			Debit:         perVenue[venueID],
			ReferenceType: entity.ReferenceTypePayout,
			ReferenceID:   payout.ID,
		})
	}
	lines = append(lines, EntryLine{
		AccountID:     cash.ID,
		Credit:        payout.TotalAmount,
		ReferenceType: entity.ReferenceTypePayout,
		ReferenceID:   payout.ID,
	})

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payout settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.ledger.PostTx(ctx, tx, lines); err != nil {
		return nil, err
	}

	if err := s.repo.Earning.SetPayoutTx(ctx, tx, earningIDs, &payout.ID, entity.EarningStatusPaid); err != nil {
		return nil, err
	}

	if err := s.repo.Payout.UpdateStatusTx(ctx, tx, payout.ID, entity.PayoutStatusPaid); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit payout settlement: %w", err)
	}

	payout.Status = entity.PayoutStatusPaid

	s.log.Info("Payout paid",
		zap.String("payout_id", payout.ID.String()),
		zap.String("payout_number", payout.PayoutNumber),
		zap.String("total", payout.TotalAmount.String()),
		zap.Int("earnings", len(earnings)),
	)

	return s.buildPayoutResponse(ctx, payout), nil
}

// settleFailed releases the earnings back to PENDING so they can be
// re-batched. No ledger entries: the money never moved.
func (s *payoutService) settleFailed(ctx context.Context, payout *entity.Payout, earnings []*entity.Earning) (*response.PayoutResponse, error) {
	earningIDs := make([]uuid.UUID, len(earnings))
	for i, earning := range earnings {
		earningIDs[i] = earning.ID
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payout settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Earning.SetPayoutTx(ctx, tx, earningIDs, nil, entity.EarningStatusPending); err != nil {
		return nil, err
	}

	if err := s.repo.Payout.UpdateStatusTx(ctx, tx, payout.ID, entity.PayoutStatusFailed); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit payout settlement: %w", err)
	}

	payout.Status = entity.PayoutStatusFailed

	s.log.Warn("Payout failed, earnings released",
		zap.String("payout_id", payout.ID.String()),
		zap.String("payout_number", payout.PayoutNumber),
		zap.Int("earnings", len(earnings)),
	)

	return s.buildPayoutResponse(ctx, payout), nil
}

func (s *payoutService) GetPayout(ctx context.Context, payoutID string) (*response.PayoutResponse, error) {
	id, err := uuid.Parse(payoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid payout ID format %s: %w", payoutID, err)
	}

	payout, err := s.repo.Payout.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("payout %s not found", payoutID)
	}

	return s.buildPayoutResponse(ctx, payout), nil
}

func (s *payoutService) DefaultPayoutAccount(ctx context.Context, organizationID string) (*response.PayoutAccountResponse, error) {
	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization ID format %s: %w", organizationID, err)
	}

	account, err := s.repo.PayoutAccount.FindDefaultByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if account == nil {
		accounts, err := s.repo.PayoutAccount.FindByOrganization(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			return nil, &NoPayoutAccountError{OrganizationID: orgID}
		}
		account = accounts[0]
	}

	resp := response.PayoutAccountToResponse(account)
	return &resp, nil
}

func (s *payoutService) buildPayoutResponse(ctx context.Context, payout *entity.Payout) *response.PayoutResponse {
	var earningIDs []string
	earnings, err := s.repo.Earning.FindByPayoutID(ctx, payout.ID)
	if err == nil {
		for _, earning := range earnings {
			earningIDs = append(earningIDs, earning.ID.String())
		}
	}

	resp := response.PayoutToResponse(payout, earningIDs)
	return &resp
}
