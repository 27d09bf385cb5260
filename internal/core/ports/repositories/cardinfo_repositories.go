package repositories

import (
	"context"
	"time"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

// CardInfoReader supplies the per-user per-network settlement configuration.
type CardInfoReader interface {
	// FindNetworkConfigs returns the user's configured networks; networks
	// without a row fall back to domain.DefaultNetworkConfig.
	FindNetworkConfigs(ctx context.Context, userID string) ([]domain.NetworkConfig, error)
}

// HolidayReader supplies the substitute-holiday calendar.
type HolidayReader interface {
	// FindHolidaysBetween returns the substitute holidays inside [from, to].
	FindHolidaysBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}
