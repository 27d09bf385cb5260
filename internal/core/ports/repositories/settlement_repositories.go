package repositories

import (
	"context"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// SettlementReader defines read operations over settlement batches and
// records.
type SettlementReader interface {
	// FindBatchesByBatchDate retrieves all of a user's batches posted on a
	// batch date.
	FindBatchesByBatchDate(ctx context.Context, userID string, batchDate time.Time) ([]domain.SettlementBatch, error)

	// FindBatchesByIDs retrieves batches by ID.
	FindBatchesByIDs(ctx context.Context, batchIDs []string) ([]domain.SettlementBatch, error)

	// ListBatchesByStatus retrieves batches in a status within a date range.
	// READY batches filter on the batch date, paid ones on the settlement
	// due date.
	ListBatchesByStatus(ctx context.Context, status domain.SettlementStatus, from, to time.Time) ([]domain.SettlementBatch, error)

	// SumBatchesByDay aggregates a user's batches per batch date over a
	// range.
	SumBatchesByDay(ctx context.Context, userID string, from, to time.Time) ([]domain.BatchDaySum, error)
}

// SettlementWriter defines write operations for a settlement run and for
// operator status changes.
type SettlementWriter interface {
	// DeleteUnpaidBatches removes a user's READY batches (and their
	// records) for a batch date; paid batches are never touched. Returns
	// the number of batches removed.
	DeleteUnpaidBatches(ctx context.Context, userID string, batchDate time.Time) (int64, error)

	// SaveBatches persists freshly aggregated batches.
	SaveBatches(ctx context.Context, batches []domain.SettlementBatch) error

	// SaveRecords persists the per-transaction records linked to batches.
	SaveRecords(ctx context.Context, records []domain.SettlementRecord) error

	// UpdateBatchStatus moves the given batches to status, stamping
	// advancedAt or collectedAt as appropriate.
	UpdateBatchStatus(ctx context.Context, batchIDs []string, status domain.SettlementStatus, at time.Time) error
}

// SettlementRepositoryFacade combines all settlement repository interfaces.
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}

// SettlementRepositoryWithTx adds transaction support for the daily run.
type SettlementRepositoryWithTx interface {
	SettlementRepositoryFacade
	TransactionManager
}
