package repositories

import (
	"context"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// FutureFundReader defines read operations over the future-fund ledger.
type FutureFundReader interface {
	// CountDailyEntries counts DAILY rows for the (user, date); the accrual
	// guard.
	CountDailyEntries(ctx context.Context, userID string, fundDate time.Time) (int, error)

	// SumEntries sums every ledger row of the (user, date), all kinds
	// included. The second return is false when no rows exist.
	SumEntries(ctx context.Context, userID string, fundDate time.Time) (domain.FundSums, bool, error)

	// SumSettledEntries sums the (user, date) rows excluding
	// REPAYMENT_READY, the view used for balances shown to merchants.
	SumSettledEntries(ctx context.Context, userID string, fundDate time.Time) (domain.FundSums, bool, error)

	// SumEntriesByDay aggregates settled rows per fund date over a range.
	SumEntriesByDay(ctx context.Context, userID string, from, to time.Time) ([]domain.FundDaySum, error)

	// ListFundFlows returns per-(user, date) apply/repayment sums across all
	// users in ascending date order, for the done-count pairing metric.
	ListFundFlows(ctx context.Context) ([]domain.FundFlow, error)
}

// FutureFundWriter defines append operations on the ledger.
type FutureFundWriter interface {
	// SaveEntry appends one journal row.
	SaveEntry(ctx context.Context, entry domain.FutureFundEntry) error

	// SaveEntries appends journal rows in one statement batch.
	SaveEntries(ctx context.Context, entries []domain.FutureFundEntry) error

	// PromoteRepaymentsByBatchIDs flips REPAYMENT_READY rows funded by the
	// given batches to REPAYMENT.
	PromoteRepaymentsByBatchIDs(ctx context.Context, batchIDs []string) error

	// DeleteUnpaidRepayments removes the REPAYMENT_READY rows funded by the
	// user's READY batches of batchDate. Runs before those batches are
	// deleted so a rebuild can repost the rows against fresh batches.
	DeleteUnpaidRepayments(ctx context.Context, userID string, batchDate time.Time) (int64, error)
}

// FutureFundRepositoryFacade combines all future-fund repository interfaces.
type FutureFundRepositoryFacade interface {
	FutureFundReader
	FutureFundWriter
}

// ApplyRepositoryFacade persists advance requests.
type ApplyRepositoryFacade interface {
	// FindReadyApply returns the READY apply for (user, date) if any.
	FindReadyApply(ctx context.Context, userID string, applyDate time.Time) (*domain.FutureFundApply, error)

	// CountDoneApplies counts the user's completed draws.
	CountDoneApplies(ctx context.Context, userID string) (int, error)

	// FindAppliesByIDs retrieves applies by ID.
	FindAppliesByIDs(ctx context.Context, applyIDs []string) ([]domain.FutureFundApply, error)

	// ListAppliesByStatus lists applies in a status, newest first; READY is
	// restricted to the given date.
	ListAppliesByStatus(ctx context.Context, status domain.ApplyStatus, date time.Time) ([]domain.FutureFundApply, error)

	// SaveApply persists a new request.
	SaveApply(ctx context.Context, apply domain.FutureFundApply) error

	// UpdateApplyStatus moves applies to a status.
	UpdateApplyStatus(ctx context.Context, applyIDs []string, status domain.ApplyStatus, updatedBy string, at time.Time) error
}
