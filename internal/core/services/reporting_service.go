package services

import (
	"context"
	"fmt"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

// reportingService produces operator-facing aggregates over the fund ledger.
type reportingService struct {
	fundRepo portsrepo.FutureFundReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(fundRepo portsrepo.FutureFundReader) portssvc.ReportingService {
	return &reportingService{fundRepo: fundRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// FundDoneCounts pairs each user's draws against their repayments in date
// order and reports how many draws have been fully repaid.
func (s *reportingService) FundDoneCounts(ctx context.Context) ([]dto.FundDoneCountRow, error) {
	flows, err := s.fundRepo.ListFundFlows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund flows: %w", err)
	}

	applies := make(map[string][]int64)
	repayments := make(map[string][]int64)
	seen := make(map[string]bool)
	order := make([]string, 0)
	for _, flow := range flows {
		if !seen[flow.UserID] {
			seen[flow.UserID] = true
			order = append(order, flow.UserID)
		}
		if flow.ApplyPrice != 0 {
			applies[flow.UserID] = append(applies[flow.UserID], flow.ApplyPrice)
		}
		if flow.RepaymentPrice != 0 {
			repayments[flow.UserID] = append(repayments[flow.UserID], flow.RepaymentPrice)
		}
	}

	rows := make([]dto.FundDoneCountRow, 0, len(order))
	for _, userID := range order {
		rows = append(rows, dto.FundDoneCountRow{
			UserID:    userID,
			DoneCount: domain.FundDoneCount(applies[userID], repayments[userID]),
		})
	}
	return rows, nil
}
