package services

import (
	"context"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

// SettlementRunnerSvc runs the daily advance for a single user.
type SettlementRunnerSvc interface {
	// RunDailySettlement selects the user's eligible transactions as of
	// batchDate, prices them, aggregates them into batches, persists the
	// result and nets any outstanding fund balance, all in one transaction.
	RunDailySettlement(ctx context.Context, userID string, batchDate time.Time) (*dto.UserRunResult, error)
}

// SettlementReaderSvc defines read operations for settlement data.
type SettlementReaderSvc interface {
	// GetBatchesForDate retrieves a user's batches posted on a batch date.
	GetBatchesForDate(ctx context.Context, userID string, batchDate time.Time) ([]domain.SettlementBatch, error)

	// ListBatchesByStatus retrieves batches in a status within a date range.
	ListBatchesByStatus(ctx context.Context, status domain.SettlementStatus, from, to time.Time) ([]domain.SettlementBatch, error)

	// GetDailySummary aggregates a user's batches per day over a range.
	GetDailySummary(ctx context.Context, userID string, from, to time.Time) ([]domain.BatchDaySum, error)
}

// SettlementWriterSvc defines operator status changes on batches.
type SettlementWriterSvc interface {
	// UpdateBatchStatus moves batches along READY -> DEPOSIT_DONE -> DONE.
	// Moving to DEPOSIT_DONE also promotes the repayments the batches fund.
	UpdateBatchStatus(ctx context.Context, batchIDs []string, status domain.SettlementStatus, updatedBy string) error
}

// SettlementSvcFacade combines all settlement service interfaces.
type SettlementSvcFacade interface {
	SettlementRunnerSvc
	SettlementReaderSvc
	SettlementWriterSvc
}

// SettlementDriverSvc fans the daily run out over every enrolled user.
type SettlementDriverSvc interface {
	// RunAll executes the daily settlement for each enrolled user in turn.
	// One user's failure is recorded in the report and does not stop the
	// others.
	RunAll(ctx context.Context, batchDate time.Time) (*dto.SettlementRunReport, error)
}
