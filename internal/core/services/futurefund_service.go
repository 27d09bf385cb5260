package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/apperrors"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
)

// futureFundService maintains the revolving cash advance ledger.
type futureFundService struct {
	fundRepo portsrepo.FutureFundRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewFutureFundService creates a new future-fund service.
func NewFutureFundService(fundRepo portsrepo.FutureFundRepositoryFacade, userRepo portsrepo.UserReader) portssvc.FutureFundSvcFacade {
	return &futureFundService{
		fundRepo: fundRepo,
		userRepo: userRepo,
	}
}

var _ portssvc.FutureFundSvcFacade = (*futureFundService)(nil)

// AccrueDaily rolls the user's fund position forward one day. The new DAILY
// row carries yesterday's net principal and accrues one day of fee on it.
// Idempotent: a DAILY row already posted for fundDate makes this a no-op.
func (s *futureFundService) AccrueDaily(ctx context.Context, userID string, fundDate time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	fundDate = domain.DateOf(fundDate)

	count, err := s.fundRepo.CountDailyEntries(ctx, userID, fundDate)
	if err != nil {
		return fmt.Errorf("failed to check accrual guard: %w", err)
	}
	if count > 0 {
		logger.Info("accrual already posted", slog.String("user_id", userID), slog.String("fund_date", fundDate.Format(domain.DateLayout)))
		return nil
	}

	prior, found, err := s.fundRepo.SumEntries(ctx, userID, fundDate.AddDate(0, 0, -1))
	if err != nil {
		return fmt.Errorf("failed to sum prior ledger day: %w", err)
	}
	if !found {
		return nil
	}

	principal := prior.Outstanding()
	if principal <= 0 {
		return nil
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for accrual: %w", err)
	}

	fee := decimal.NewFromInt(principal).Mul(user.FundFeeRate).Floor().IntPart()
	now := time.Now().UTC()
	entry := domain.FutureFundEntry{
		EntryID:        uuid.NewString(),
		FundDate:       fundDate,
		Kind:           domain.FundDaily,
		UserID:         userID,
		Price:          principal,
		AccrualFee:     fee,
		AccumulatedFee: fee + prior.AccumulatedFee + prior.RepaymentFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.fundRepo.SaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to save accrual entry: %w", err)
	}

	logger.Info("fund fee accrued",
		slog.String("user_id", userID),
		slog.Int64("principal", principal),
		slog.Int64("accrual_fee", fee))
	return nil
}

// AccrueAll rolls every user's fund position forward one day. Users not
// enrolled in settlements accrue here too; enrolled users accrue again inside
// their settlement run, where the DAILY guard makes it a no-op. One user's
// failure is logged and the rest continue.
func (s *futureFundService) AccrueAll(ctx context.Context, fundDate time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	fundDate = domain.DateOf(fundDate)

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for accrual: %w", err)
	}

	failed := 0
	for _, user := range users {
		if err := s.AccrueDaily(ctx, user.UserID, fundDate); err != nil {
			failed++
			logger.Error("accrual failed",
				slog.String("user_id", user.UserID),
				slog.String("fund_date", fundDate.Format(domain.DateLayout)),
				slog.String("error", err.Error()))
		}
	}

	logger.Info("accrual pass finished",
		slog.String("fund_date", fundDate.Format(domain.DateLayout)),
		slog.Int("users", len(users)),
		slog.Int("failed", failed))
	return nil
}

// RepayFromBatches nets the user's outstanding fund position against today's
// deposits. Fees are collected before principal, and each consumed batch gets
// its own REPAYMENT_READY row so the repayment settles only when the batch is
// actually paid. Returns nil when there is nothing to net.
func (s *futureFundService) RepayFromBatches(ctx context.Context, userID string, fundDate time.Time, batches []domain.SettlementBatch) ([]domain.FutureFundEntry, error) {
	fundDate = domain.DateOf(fundDate)

	sums, found, err := s.fundRepo.SumEntries(ctx, userID, fundDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger day: %w", err)
	}
	if !found {
		return nil, nil
	}

	// Dues come from the DAILY roll-forward alone: price and accumulatedFee
	// are only ever posted on DAILY rows. A draw posted today is not
	// repayable until it rolls into tomorrow's DAILY row.
	feeDue := sums.AccumulatedFee
	principalDue := sums.Price
	if feeDue <= 0 && principalDue <= 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	var entries []domain.FutureFundEntry
	for i := range batches {
		if feeDue <= 0 && principalDue <= 0 {
			break
		}
		available := batches[i].NetDeposit()
		if available <= 0 || batches[i].Status != domain.StatusReady {
			continue
		}

		fee := min64(available, feeDue)
		available -= fee
		price := min64(available, principalDue)
		if fee <= 0 && price <= 0 {
			continue
		}
		feeDue -= fee
		principalDue -= price

		batchID := batches[i].BatchID
		entries = append(entries, domain.FutureFundEntry{
			EntryID:         uuid.NewString(),
			FundDate:        fundDate,
			Kind:            domain.FundRepaymentReady,
			UserID:          userID,
			RepaymentFee:    -fee,
			RepaymentPrice:  -price,
			FundedByBatchID: &batchID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	if len(entries) == 0 {
		return nil, nil
	}

	if err := s.fundRepo.SaveEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to save repayment entries: %w", err)
	}
	return entries, nil
}

// RecordManualRepayment posts an out-of-band repayment against the user's
// settled position, fees first. The row settles immediately (REPAYMENT).
func (s *futureFundService) RecordManualRepayment(ctx context.Context, userID string, req dto.ManualRepaymentRequest, updatedBy string) (*domain.FutureFundEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	fundDate := domain.DateOf(time.Now().UTC())

	sums, found, err := s.fundRepo.SumEntries(ctx, userID, fundDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger day: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: no fund position for user %s", apperrors.ErrNotFound, userID)
	}

	feeDue := sums.AccumulatedFee + sums.RepaymentFee
	principalDue := sums.Outstanding()
	if req.Amount > feeDue+principalDue {
		return nil, fmt.Errorf("%w: repayment %d exceeds outstanding %d", apperrors.ErrValidation, req.Amount, feeDue+principalDue)
	}

	fee := min64(req.Amount, feeDue)
	price := req.Amount - fee

	now := time.Now().UTC()
	entry := domain.FutureFundEntry{
		EntryID:        uuid.NewString(),
		FundDate:       fundDate,
		Kind:           domain.FundRepayment,
		UserID:         userID,
		RepaymentFee:   -fee,
		RepaymentPrice: -price,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: updatedBy,
		},
	}
	if err := s.fundRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save manual repayment: %w", err)
	}

	logger.Info("manual repayment recorded",
		slog.String("user_id", userID),
		slog.Int64("repayment_fee", entry.RepaymentFee),
		slog.Int64("repayment_price", entry.RepaymentPrice))
	return &entry, nil
}

// GetFundSummary returns the user's settled position on fundDate. Unsettled
// REPAYMENT_READY rows are excluded so merchants never see a balance drop
// before the funding batch pays out.
func (s *futureFundService) GetFundSummary(ctx context.Context, userID string, fundDate time.Time) (*dto.FundSummaryResponse, error) {
	fundDate = domain.DateOf(fundDate)

	sums, found, err := s.fundRepo.SumSettledEntries(ctx, userID, fundDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum settled ledger day: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: no fund position for user %s on %s", apperrors.ErrNotFound, userID, fundDate.Format(domain.DateLayout))
	}

	return &dto.FundSummaryResponse{
		FundDate:       fundDate,
		Price:          sums.Price,
		ApplyPrice:     sums.ApplyPrice,
		AccrualFee:     sums.AccrualFee,
		AccumulatedFee: sums.AccumulatedFee,
		RepaymentFee:   sums.RepaymentFee,
		RepaymentPrice: sums.RepaymentPrice,
		Outstanding:    sums.Outstanding(),
	}, nil
}

// GetDailySummary aggregates the user's settled rows per day.
func (s *futureFundService) GetDailySummary(ctx context.Context, userID string, from, to time.Time) ([]domain.FundDaySum, error) {
	return s.fundRepo.SumEntriesByDay(ctx, userID, domain.DateOf(from), domain.DateOf(to))
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
