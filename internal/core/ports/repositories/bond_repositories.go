package repositories

import (
	"context"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// BondReader defines the eligibility query contracts over raw card events.
type BondReader interface {
	// SelectAdvanceCandidates returns, per (approvalNumber, userID) group
	// with no settled member and a positive net approval amount, the
	// latest-dated bond at or before cutoff.
	SelectAdvanceCandidates(ctx context.Context, userID string, cutoff time.Time) ([]domain.Bond, error)

	// SelectReversalCandidates returns the net-negative groups restricted to
	// approval numbers whose earlier advance was collected
	// (DEPOSIT_DONE/DONE) and not yet set off.
	SelectReversalCandidates(ctx context.Context, userID string, cutoff time.Time) ([]domain.Bond, error)

	// SumApprovalAmountBetween sums approval amounts for trailing-sales
	// eligibility metrics.
	SumApprovalAmountBetween(ctx context.Context, userID string, from, to time.Time) (int64, error)
}

// BondWriter defines the ingestion write contract.
type BondWriter interface {
	// SaveBond persists a bond; a duplicate transaction ID for the user
	// yields apperrors.ErrDuplicate.
	SaveBond(ctx context.Context, bond domain.Bond) error
}

// BondRepositoryFacade combines all bond repository interfaces.
type BondRepositoryFacade interface {
	BondReader
	BondWriter
}
