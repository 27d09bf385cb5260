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

// holidayWindow is how far around the batch date the holiday calendar is
// loaded. Settlement due dates never land further out than this.
const holidayWindow = time.Hour * 24 * 31

// settlementService implements the daily advance run and batch lifecycle.
type settlementService struct {
	bondRepo       portsrepo.BondRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryWithTx
	cardInfoRepo   portsrepo.CardInfoReader
	holidayRepo    portsrepo.HolidayReader
	fundRepo       portsrepo.FutureFundWriter
	fundSvc        portssvc.FutureFundSvcFacade
	runTimeout     time.Duration
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(
	bondRepo portsrepo.BondRepositoryFacade,
	settlementRepo portsrepo.SettlementRepositoryWithTx,
	cardInfoRepo portsrepo.CardInfoReader,
	holidayRepo portsrepo.HolidayReader,
	fundRepo portsrepo.FutureFundWriter,
	fundSvc portssvc.FutureFundSvcFacade,
	runTimeout time.Duration,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		bondRepo:       bondRepo,
		settlementRepo: settlementRepo,
		cardInfoRepo:   cardInfoRepo,
		holidayRepo:    holidayRepo,
		fundRepo:       fundRepo,
		fundSvc:        fundSvc,
		runTimeout:     runTimeout,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// RunDailySettlement executes one user's advance run for batchDate inside a
// single transaction: stale unpaid batches are removed, eligible bonds are
// priced and aggregated, the fund fee accrues, and any outstanding fund
// balance is netted against today's deposits.
func (s *settlementService) RunDailySettlement(ctx context.Context, userID string, batchDate time.Time) (*dto.UserRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	batchDate = domain.DateOf(batchDate)

	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	result := &dto.UserRunResult{UserID: userID}

	err := s.settlementRepo.WithTx(ctx, func(ctx context.Context) error {
		// Unpaid leftovers from an aborted or rerun day are rebuilt from
		// scratch. Paid batches are never touched. Repayment rows funded by
		// the doomed batches go first or the batch delete trips the ledger
		// foreign key; the rebuild reposts them against fresh batches.
		for _, day := range []time.Time{batchDate.AddDate(0, 0, -1), batchDate} {
			removedRepayments, err := s.fundRepo.DeleteUnpaidRepayments(ctx, userID, day)
			if err != nil {
				return fmt.Errorf("failed to clear unpaid repayments for %s: %w", day.Format(domain.DateLayout), err)
			}
			removed, err := s.settlementRepo.DeleteUnpaidBatches(ctx, userID, day)
			if err != nil {
				return fmt.Errorf("failed to clear unpaid batches for %s: %w", day.Format(domain.DateLayout), err)
			}
			if removed > 0 || removedRepayments > 0 {
				logger.Info("removed stale unpaid batches",
					slog.String("user_id", userID),
					slog.String("batch_date", day.Format(domain.DateLayout)),
					slog.Int64("batches", removed),
					slog.Int64("repayments", removedRepayments))
			}
		}

		builder, err := s.newBuilder(ctx, userID, batchDate)
		if err != nil {
			return err
		}

		advances, err := s.bondRepo.SelectAdvanceCandidates(ctx, userID, batchDate)
		if err != nil {
			return fmt.Errorf("failed to select advance candidates: %w", err)
		}
		reversals, err := s.bondRepo.SelectReversalCandidates(ctx, userID, batchDate)
		if err != nil {
			return fmt.Errorf("failed to select reversal candidates: %w", err)
		}

		records, rejected := builder.BuildAdvanceRecords(advances)
		setoffs, rejectedSetoffs := builder.BuildReversalRecords(reversals)
		for _, rej := range append(rejected, rejectedSetoffs...) {
			logger.Warn("bond excluded from run", slog.String("user_id", userID), slog.String("reason", rej.Error()))
		}
		records = append(records, setoffs...)

		var batches []domain.SettlementBatch
		if len(records) > 0 {
			batches = builder.Aggregate(records)
			for i := range batches {
				batches[i].BatchID = uuid.NewString()
			}
			records, err = builder.LinkRecordsToBatches(records, batches)
			if err != nil {
				return err
			}
			for i := range records {
				records[i].RecordID = uuid.NewString()
			}

			if err := s.settlementRepo.SaveBatches(ctx, batches); err != nil {
				return fmt.Errorf("failed to save batches: %w", err)
			}
			if err := s.settlementRepo.SaveRecords(ctx, records); err != nil {
				return fmt.Errorf("failed to save records: %w", err)
			}
		}

		if err := s.fundSvc.AccrueDaily(ctx, userID, batchDate); err != nil {
			return fmt.Errorf("failed to accrue fund fee: %w", err)
		}

		repayments, err := s.fundSvc.RepayFromBatches(ctx, userID, batchDate, batches)
		if err != nil {
			return fmt.Errorf("failed to net fund balance: %w", err)
		}

		result.BatchCount = len(batches)
		result.RecordCount = len(records)
		for _, b := range batches {
			result.AdvanceAmount += b.NetDeposit()
		}
		for _, e := range repayments {
			result.RepaymentFee += e.RepaymentFee
			result.RepaymentPrice += e.RepaymentPrice
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("daily settlement complete",
		slog.String("user_id", userID),
		slog.String("batch_date", batchDate.Format(domain.DateLayout)),
		slog.Int("batches", result.BatchCount),
		slog.Int("records", result.RecordCount),
		slog.Int64("advance_amount", result.AdvanceAmount))
	return result, nil
}

// newBuilder loads the user's network configuration and the holiday calendar
// around the batch date.
func (s *settlementService) newBuilder(ctx context.Context, userID string, batchDate time.Time) (*domain.BatchBuilder, error) {
	configs, err := s.cardInfoRepo.FindNetworkConfigs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load network configs: %w", err)
	}
	holidayDates, err := s.holidayRepo.FindHolidaysBetween(ctx, batchDate.Add(-holidayWindow), batchDate.Add(holidayWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return domain.NewBatchBuilder(userID, batchDate, domain.NewHolidaySet(holidayDates), domain.NewNetworkConfigStore(configs)), nil
}

// GetBatchesForDate retrieves a user's batches posted on a batch date.
func (s *settlementService) GetBatchesForDate(ctx context.Context, userID string, batchDate time.Time) ([]domain.SettlementBatch, error) {
	return s.settlementRepo.FindBatchesByBatchDate(ctx, userID, domain.DateOf(batchDate))
}

// ListBatchesByStatus retrieves batches in a status within a date range.
func (s *settlementService) ListBatchesByStatus(ctx context.Context, status domain.SettlementStatus, from, to time.Time) ([]domain.SettlementBatch, error) {
	return s.settlementRepo.ListBatchesByStatus(ctx, status, domain.DateOf(from), domain.DateOf(to))
}

// GetDailySummary aggregates a user's batches per day over a range.
func (s *settlementService) GetDailySummary(ctx context.Context, userID string, from, to time.Time) ([]domain.BatchDaySum, error) {
	return s.settlementRepo.SumBatchesByDay(ctx, userID, domain.DateOf(from), domain.DateOf(to))
}

// UpdateBatchStatus moves batches along READY -> DEPOSIT_DONE -> DONE after
// checking every batch exists and allows the transition. Moving to
// DEPOSIT_DONE promotes the repayment rows the batches fund.
func (s *settlementService) UpdateBatchStatus(ctx context.Context, batchIDs []string, status domain.SettlementStatus, updatedBy string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	batches, err := s.settlementRepo.FindBatchesByIDs(ctx, batchIDs)
	if err != nil {
		return fmt.Errorf("failed to load batches: %w", err)
	}
	if len(batches) != len(batchIDs) {
		return fmt.Errorf("%w: %d of %d batches found", apperrors.ErrNotFound, len(batches), len(batchIDs))
	}
	for _, b := range batches {
		if !b.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: batch %s cannot move %s -> %s", apperrors.ErrConflict, b.BatchID, b.Status, status)
		}
	}

	now := time.Now().UTC()
	return s.settlementRepo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.settlementRepo.UpdateBatchStatus(ctx, batchIDs, status, now); err != nil {
			return fmt.Errorf("failed to update batch status: %w", err)
		}
		if status == domain.StatusDepositDone {
			if err := s.fundRepo.PromoteRepaymentsByBatchIDs(ctx, batchIDs); err != nil {
				return fmt.Errorf("failed to promote repayments: %w", err)
			}
		}
		logger.Info("batch status updated",
			slog.String("status", string(status)),
			slog.Int("batches", len(batchIDs)),
			slog.String("updated_by", updatedBy))
		return nil
	})
}
