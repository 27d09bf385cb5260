package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/adapters/database/pgsql"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/adapters/notify"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/platform/config"
	"github.com/GOMI-PAYMENTS-INC/credot-api/pkg/database"
	"github.com/GOMI-PAYMENTS-INC/credot-api/pkg/logging"
)

// One-shot daily settlement run, intended to be invoked by cron shortly
// after midnight. Advances every enrolled user for today's batch date and
// exits non-zero when any user's run failed.
func main() {
	logger := logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	var notifier portssvc.Notifier
	if cfg.SlackWebhookURL != "" {
		notifier = notify.NewSlackNotifier(cfg.SlackWebhookURL)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewServiceContainer(cfg, repos, notifier)

	batchDate := time.Now().UTC()
	if err := container.FutureFund.AccrueAll(ctx, batchDate); err != nil {
		logger.Error("Accrual pass aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}

	report, err := container.Driver.RunAll(ctx, batchDate)
	if err != nil {
		logger.Error("Settlement run aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Settlement run finished",
		slog.Time("batch_date", report.BatchDate),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Int64("total_advance", report.TotalAdvance()),
	)
	if report.Failed > 0 {
		os.Exit(1)
	}
}
