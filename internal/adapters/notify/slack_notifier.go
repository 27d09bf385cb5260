package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portssvc "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/middleware"
)

// SlackNotifier posts settlement run briefings to a Slack webhook. Delivery
// failures are logged and never propagated to the run.
type SlackNotifier struct {
	webhookURL string
}

// NewSlackNotifier creates a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

var _ portssvc.Notifier = (*SlackNotifier)(nil)

// NotifyRunReport posts a short briefing for one daily run.
func (n *SlackNotifier) NotifyRunReport(ctx context.Context, report *dto.SettlementRunReport) {
	logger := middleware.GetLoggerFromCtx(ctx)

	text := fmt.Sprintf("Settlement run %s: %d users settled, %d failed, total advance %d KRW",
		report.BatchDate.Format(domain.DateLayout), report.Succeeded, report.Failed, report.TotalAdvance())
	for _, res := range report.Results {
		if res.Error != "" {
			text += fmt.Sprintf("\n- %s failed: %s", res.UserID, res.Error)
		}
	}

	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		logger.Error("failed to post slack briefing", slog.String("error", err.Error()))
	}
}
