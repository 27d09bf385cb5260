package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
	"github.com/GOMI-PAYMENTS-INC/credot-api/pkg/metrics"
)

// settlementDriver runs the daily settlement for every enrolled user.
type settlementDriver struct {
	userRepo portsrepo.UserReader
	runner   portssvc.SettlementRunnerSvc
	notifier portssvc.Notifier
}

// NewSettlementDriver creates a new settlement driver. notifier may be nil.
func NewSettlementDriver(userRepo portsrepo.UserReader, runner portssvc.SettlementRunnerSvc, notifier portssvc.Notifier) portssvc.SettlementDriverSvc {
	return &settlementDriver{
		userRepo: userRepo,
		runner:   runner,
		notifier: notifier,
	}
}

var _ portssvc.SettlementDriverSvc = (*settlementDriver)(nil)

// RunAll executes the daily settlement for each enrolled user in turn. Each
// user runs in its own transaction, so one failure is reported and the rest
// of the users still settle.
func (d *settlementDriver) RunAll(ctx context.Context, batchDate time.Time) (*dto.SettlementRunReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	batchDate = domain.DateOf(batchDate)

	users, err := d.userRepo.ListSettlementUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled users: %w", err)
	}

	report := &dto.SettlementRunReport{
		BatchDate: batchDate,
		Results:   make([]dto.UserRunResult, 0, len(users)),
	}
	for _, user := range users {
		res, err := d.runner.RunDailySettlement(ctx, user.UserID, batchDate)
		if err != nil {
			logger.Error("settlement run failed for user",
				slog.String("user_id", user.UserID),
				slog.String("error", err.Error()))
			metrics.SettlementRunsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
			report.Failed++
			report.Results = append(report.Results, dto.UserRunResult{UserID: user.UserID, Error: err.Error()})
			continue
		}
		metrics.SettlementRunsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		metrics.AdvanceAmountTotal.Add(float64(res.AdvanceAmount))
		report.Succeeded++
		report.Results = append(report.Results, *res)
	}

	logger.Info("settlement run finished",
		slog.String("batch_date", batchDate.Format(domain.DateLayout)),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Int64("total_advance", report.TotalAdvance()))

	if d.notifier != nil {
		d.notifier.NotifyRunReport(ctx, report)
	}
	return report, nil
}
