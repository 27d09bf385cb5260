package services

import (
	"context"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

// FutureFundAccrualSvc posts the daily fee accrual.
type FutureFundAccrualSvc interface {
	// AccrueDaily posts the user's DAILY row for fundDate. A second call for
	// the same date is a no-op.
	AccrueDaily(ctx context.Context, userID string, fundDate time.Time) error

	// AccrueAll posts the DAILY row for every user. One user's failure does
	// not stop the others.
	AccrueAll(ctx context.Context, fundDate time.Time) error
}

// FutureFundRepaymentSvc nets fund balances against settlement deposits.
type FutureFundRepaymentSvc interface {
	// RepayFromBatches nets the user's outstanding balance against the
	// given batches, fees before principal, and returns the per-batch
	// REPAYMENT_READY rows it posted. Returns nil when there is nothing to
	// net.
	RepayFromBatches(ctx context.Context, userID string, fundDate time.Time, batches []domain.SettlementBatch) ([]domain.FutureFundEntry, error)

	// RecordManualRepayment posts an out-of-band repayment, fees first.
	RecordManualRepayment(ctx context.Context, userID string, req dto.ManualRepaymentRequest, updatedBy string) (*domain.FutureFundEntry, error)
}

// FutureFundReaderSvc defines read operations over the fund ledger.
type FutureFundReaderSvc interface {
	// GetFundSummary returns the user's settled position for a date.
	GetFundSummary(ctx context.Context, userID string, fundDate time.Time) (*dto.FundSummaryResponse, error)

	// GetDailySummary aggregates the user's settled rows per day.
	GetDailySummary(ctx context.Context, userID string, from, to time.Time) ([]domain.FundDaySum, error)
}

// FutureFundSvcFacade combines all future-fund service interfaces.
type FutureFundSvcFacade interface {
	FutureFundAccrualSvc
	FutureFundRepaymentSvc
	FutureFundReaderSvc
}

// ApplySvcFacade manages advance requests against the fund.
type ApplySvcFacade interface {
	// CreateApply validates and persists a draw request for the user.
	CreateApply(ctx context.Context, userID string, req dto.CreateApplyRequest) (*domain.FutureFundApply, error)

	// ListApplies lists requests in a status; READY is scoped to date.
	ListApplies(ctx context.Context, status domain.ApplyStatus, date time.Time) ([]domain.FutureFundApply, error)

	// ApproveApplies funds READY requests, posting their APPLY ledger rows.
	ApproveApplies(ctx context.Context, applyIDs []string, updatedBy string) error

	// CancelApplies cancels READY requests.
	CancelApplies(ctx context.Context, applyIDs []string, updatedBy string) error
}
