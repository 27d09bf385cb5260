package services

import (
	"context"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

// Notifier delivers operator briefings for completed settlement runs.
// Implementations must not fail the run; delivery errors are logged and
// swallowed.
type Notifier interface {
	NotifyRunReport(ctx context.Context, report *dto.SettlementRunReport)
}
