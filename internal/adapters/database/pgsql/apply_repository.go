package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
)

// PgxApplyRepository persists fund draw requests.
type PgxApplyRepository struct {
	BaseRepository
}

// NewPgxApplyRepository creates a new repository for draw request data.
func NewPgxApplyRepository(pool *pgxpool.Pool) *PgxApplyRepository {
	return &PgxApplyRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.ApplyRepositoryFacade = (*PgxApplyRepository)(nil)

const applyColumns = `apply_id, apply_date, apply_price, status, fund_limit, fund_in_use,
	avg_sales_price, avg_sales_price_rate, done_count, user_id,
	created_at, created_by, last_updated_at, last_updated_by`

// FindReadyApply returns the READY apply for (user, date), or nil.
func (r *PgxApplyRepository) FindReadyApply(ctx context.Context, userID string, applyDate time.Time) (*domain.FutureFundApply, error) {
	query := `
		SELECT ` + applyColumns + `
		FROM future_fund_applies
		WHERE user_id = $1 AND apply_date = $2 AND status = 'READY';
	`
	var a domain.FutureFundApply
	err := r.scanApply(r.db(ctx).QueryRow(ctx, query, userID, applyDate), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ready apply: %w", err)
	}
	return &a, nil
}

// CountDoneApplies counts the user's completed draws.
func (r *PgxApplyRepository) CountDoneApplies(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM future_fund_applies WHERE user_id = $1 AND status = 'DONE';`
	var count int
	if err := r.db(ctx).QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count done applies: %w", err)
	}
	return count, nil
}

// FindAppliesByIDs retrieves applies by ID.
func (r *PgxApplyRepository) FindAppliesByIDs(ctx context.Context, applyIDs []string) ([]domain.FutureFundApply, error) {
	query := `
		SELECT ` + applyColumns + `
		FROM future_fund_applies
		WHERE apply_id = ANY($1)
		ORDER BY created_at;
	`
	return r.queryApplies(ctx, query, applyIDs)
}

// ListAppliesByStatus lists applies in a status, newest first. READY applies
// are restricted to the given date.
func (r *PgxApplyRepository) ListAppliesByStatus(ctx context.Context, status domain.ApplyStatus, date time.Time) ([]domain.FutureFundApply, error) {
	if status == domain.ApplyReady {
		query := `
			SELECT ` + applyColumns + `
			FROM future_fund_applies
			WHERE status = $1 AND apply_date = $2
			ORDER BY created_at DESC;
		`
		return r.queryApplies(ctx, query, status, date)
	}
	query := `
		SELECT ` + applyColumns + `
		FROM future_fund_applies
		WHERE status = $1
		ORDER BY created_at DESC;
	`
	return r.queryApplies(ctx, query, status)
}

func (r *PgxApplyRepository) queryApplies(ctx context.Context, query string, args ...any) ([]domain.FutureFundApply, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applies: %w", err)
	}
	defer rows.Close()

	applies := []domain.FutureFundApply{}
	for rows.Next() {
		var a domain.FutureFundApply
		if err := r.scanApply(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan apply row: %w", err)
		}
		applies = append(applies, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating apply rows: %w", rows.Err())
	}
	return applies, nil
}

func (r *PgxApplyRepository) scanApply(row pgx.Row, a *domain.FutureFundApply) error {
	return row.Scan(
		&a.ApplyID,
		&a.ApplyDate,
		&a.ApplyPrice,
		&a.Status,
		&a.Limit,
		&a.FundInUse,
		&a.AvgSalesPrice,
		&a.AvgSalesPriceRate,
		&a.DoneCount,
		&a.UserID,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
}

// SaveApply persists a new request.
func (r *PgxApplyRepository) SaveApply(ctx context.Context, apply domain.FutureFundApply) error {
	query := `
		INSERT INTO future_fund_applies (` + applyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		apply.ApplyID,
		apply.ApplyDate,
		apply.ApplyPrice,
		apply.Status,
		apply.Limit,
		apply.FundInUse,
		apply.AvgSalesPrice,
		apply.AvgSalesPriceRate,
		apply.DoneCount,
		apply.UserID,
		apply.CreatedAt,
		apply.CreatedBy,
		apply.LastUpdatedAt,
		apply.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save apply: %w", err)
	}
	return nil
}

// UpdateApplyStatus moves applies to a status.
func (r *PgxApplyRepository) UpdateApplyStatus(ctx context.Context, applyIDs []string, status domain.ApplyStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE future_fund_applies
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE apply_id = ANY($1);
	`
	if _, err := r.db(ctx).Exec(ctx, query, applyIDs, status, at, updatedBy); err != nil {
		return fmt.Errorf("failed to update apply status: %w", err)
	}
	return nil
}
