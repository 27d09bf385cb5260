package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
)

// PgxCardInfoRepository reads per-user card network configuration and the
// substitute-holiday calendar.
type PgxCardInfoRepository struct {
	BaseRepository
}

// NewPgxCardInfoRepository creates a new repository for card configuration
// data.
func NewPgxCardInfoRepository(pool *pgxpool.Pool) *PgxCardInfoRepository {
	return &PgxCardInfoRepository{BaseRepository{pool: pool}}
}

var (
	_ portsrepo.CardInfoReader = (*PgxCardInfoRepository)(nil)
	_ portsrepo.HolidayReader  = (*PgxCardInfoRepository)(nil)
)

// FindNetworkConfigs returns the user's configured networks.
func (r *PgxCardInfoRepository) FindNetworkConfigs(ctx context.Context, userID string) ([]domain.NetworkConfig, error) {
	query := `
		SELECT card_network, required_settlement_days, mode, check_rate, credit_rate
		FROM card_infos
		WHERE user_id = $1
		ORDER BY card_network;
	`
	rows, err := r.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query card infos: %w", err)
	}
	defer rows.Close()

	configs := []domain.NetworkConfig{}
	for rows.Next() {
		var cfg domain.NetworkConfig
		err := rows.Scan(
			&cfg.Network,
			&cfg.RequiredSettlementDays,
			&cfg.Mode,
			&cfg.Rate.Check,
			&cfg.Rate.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card info row: %w", err)
		}
		configs = append(configs, cfg)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating card info rows: %w", rows.Err())
	}
	return configs, nil
}

// FindHolidaysBetween returns the substitute holidays inside [from, to].
func (r *PgxCardInfoRepository) FindHolidaysBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT holiday_date FROM substitute_holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date;
	`
	rows, err := r.db(ctx).Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := []time.Time{}
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		holidays = append(holidays, day)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating holiday rows: %w", rows.Err())
	}
	return holidays, nil
}
