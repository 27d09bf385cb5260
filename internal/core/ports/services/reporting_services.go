package services

import (
	"context"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

// ReportingService defines operations for operator-facing reports.
type ReportingService interface {
	// FundDoneCounts reports, per user, how many fund draws have been fully
	// repaid.
	FundDoneCounts(ctx context.Context) ([]dto.FundDoneCountRow, error)
}
