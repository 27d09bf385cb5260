package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/apperrors"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
)

// trailingSalesDays is the window for the risk metrics recorded on each
// draw request.
const trailingSalesDays = 7

// applyService validates and manages fund draw requests.
type applyService struct {
	applyRepo portsrepo.ApplyRepositoryFacade
	fundRepo  portsrepo.FutureFundRepositoryFacade
	bondRepo  portsrepo.BondReader
	userRepo  portsrepo.UserReader
}

// NewApplyService creates a new apply service.
func NewApplyService(
	applyRepo portsrepo.ApplyRepositoryFacade,
	fundRepo portsrepo.FutureFundRepositoryFacade,
	bondRepo portsrepo.BondReader,
	userRepo portsrepo.UserReader,
) portssvc.ApplySvcFacade {
	return &applyService{
		applyRepo: applyRepo,
		fundRepo:  fundRepo,
		bondRepo:  bondRepo,
		userRepo:  userRepo,
	}
}

var _ portssvc.ApplySvcFacade = (*applyService)(nil)

// CreateApply validates a draw request against the user's facility limit and
// records it READY with the risk metrics observed at request time. One
// request per user per day.
func (s *applyService) CreateApply(ctx context.Context, userID string, req dto.CreateApplyRequest) (*domain.FutureFundApply, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	today := domain.DateOf(time.Now().UTC())

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.FundLimit <= 0 {
		return nil, fmt.Errorf("%w: user %s has no fund facility", apperrors.ErrForbidden, userID)
	}

	existing, err := s.applyRepo.FindReadyApply(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending applies: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a draw request is already pending today", apperrors.ErrDuplicate)
	}

	var fundInUse int64
	sums, found, err := s.fundRepo.SumSettledEntries(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to sum fund position: %w", err)
	}
	if found {
		fundInUse = sums.Outstanding()
	}
	if fundInUse+req.ApplyPrice > user.FundLimit {
		return nil, fmt.Errorf("%w: draw %d plus outstanding %d exceeds limit %d",
			apperrors.ErrValidation, req.ApplyPrice, fundInUse, user.FundLimit)
	}

	avgSales, avgRate, err := s.trailingSales(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	doneCount, err := s.applyRepo.CountDoneApplies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed draws: %w", err)
	}

	now := time.Now().UTC()
	apply := domain.FutureFundApply{
		ApplyID:           uuid.NewString(),
		ApplyDate:         today,
		ApplyPrice:        req.ApplyPrice,
		Status:            domain.ApplyReady,
		Limit:             user.FundLimit,
		FundInUse:         fundInUse,
		AvgSalesPrice:     avgSales,
		AvgSalesPriceRate: avgRate,
		DoneCount:         doneCount,
		UserID:            userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.applyRepo.SaveApply(ctx, apply); err != nil {
		return nil, fmt.Errorf("failed to save apply: %w", err)
	}

	logger.Info("fund draw requested",
		slog.String("user_id", userID),
		slog.Int64("apply_price", req.ApplyPrice),
		slog.Int64("fund_in_use", fundInUse))
	return &apply, nil
}

// trailingSales returns the user's daily average card sales over the last
// window and the percent change against the window before it.
func (s *applyService) trailingSales(ctx context.Context, userID string, today time.Time) (int64, float64, error) {
	recent, err := s.bondRepo.SumApprovalAmountBetween(ctx, userID, today.AddDate(0, 0, -trailingSalesDays), today)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum recent sales: %w", err)
	}
	previous, err := s.bondRepo.SumApprovalAmountBetween(ctx, userID, today.AddDate(0, 0, -2*trailingSalesDays), today.AddDate(0, 0, -trailingSalesDays))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum prior sales: %w", err)
	}

	avg := recent / trailingSalesDays
	var rate float64
	if previous > 0 {
		rate = float64(recent-previous) / float64(previous) * 100
	}
	return avg, rate, nil
}

// ListApplies lists draw requests in a status; READY is scoped to date.
func (s *applyService) ListApplies(ctx context.Context, status domain.ApplyStatus, date time.Time) ([]domain.FutureFundApply, error) {
	return s.applyRepo.ListAppliesByStatus(ctx, status, domain.DateOf(date))
}

// ApproveApplies funds READY requests: each one gets an APPLY ledger row and
// moves to DONE.
func (s *applyService) ApproveApplies(ctx context.Context, applyIDs []string, updatedBy string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	applies, err := s.loadReadyApplies(ctx, applyIDs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	entries := make([]domain.FutureFundEntry, len(applies))
	for i, a := range applies {
		entries[i] = domain.FutureFundEntry{
			EntryID:    uuid.NewString(),
			FundDate:   domain.DateOf(now),
			Kind:       domain.FundApply,
			UserID:     a.UserID,
			ApplyPrice: a.ApplyPrice,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     updatedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: updatedBy,
			},
		}
	}
	if err := s.fundRepo.SaveEntries(ctx, entries); err != nil {
		return fmt.Errorf("failed to post draw entries: %w", err)
	}
	if err := s.applyRepo.UpdateApplyStatus(ctx, applyIDs, domain.ApplyDone, updatedBy, now); err != nil {
		return fmt.Errorf("failed to mark applies done: %w", err)
	}

	logger.Info("fund draws approved", slog.Int("count", len(applyIDs)), slog.String("updated_by", updatedBy))
	return nil
}

// CancelApplies cancels READY requests.
func (s *applyService) CancelApplies(ctx context.Context, applyIDs []string, updatedBy string) error {
	if _, err := s.loadReadyApplies(ctx, applyIDs); err != nil {
		return err
	}
	if err := s.applyRepo.UpdateApplyStatus(ctx, applyIDs, domain.ApplyCancel, updatedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to cancel applies: %w", err)
	}
	return nil
}

func (s *applyService) loadReadyApplies(ctx context.Context, applyIDs []string) ([]domain.FutureFundApply, error) {
	applies, err := s.applyRepo.FindAppliesByIDs(ctx, applyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load applies: %w", err)
	}
	if len(applies) != len(applyIDs) {
		return nil, fmt.Errorf("%w: %d of %d applies found", apperrors.ErrNotFound, len(applies), len(applyIDs))
	}
	for _, a := range applies {
		if a.Status != domain.ApplyReady {
			return nil, fmt.Errorf("%w: apply %s is %s", apperrors.ErrConflict, a.ApplyID, a.Status)
		}
	}
	return applies, nil
}
