package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
)

// PgxFutureFundRepository persists the future-fund ledger.
type PgxFutureFundRepository struct {
	BaseRepository
}

// NewPgxFutureFundRepository creates a new repository for fund ledger data.
func NewPgxFutureFundRepository(pool *pgxpool.Pool) *PgxFutureFundRepository {
	return &PgxFutureFundRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.FutureFundRepositoryFacade = (*PgxFutureFundRepository)(nil)

// CountDailyEntries counts DAILY rows for the (user, date).
func (r *PgxFutureFundRepository) CountDailyEntries(ctx context.Context, userID string, fundDate time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM future_fund_entries
		WHERE user_id = $1 AND fund_date = $2 AND kind = 'DAILY';
	`
	var count int
	if err := r.db(ctx).QueryRow(ctx, query, userID, fundDate).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count daily entries: %w", err)
	}
	return count, nil
}

func (r *PgxFutureFundRepository) sumEntries(ctx context.Context, query string, userID string, fundDate time.Time) (domain.FundSums, bool, error) {
	var sums domain.FundSums
	var count int
	err := r.db(ctx).QueryRow(ctx, query, userID, fundDate).Scan(
		&sums.Price,
		&sums.ApplyPrice,
		&sums.AccrualFee,
		&sums.AccumulatedFee,
		&sums.RepaymentFee,
		&sums.RepaymentPrice,
		&count,
	)
	if err != nil {
		return domain.FundSums{}, false, fmt.Errorf("failed to sum fund entries: %w", err)
	}
	return sums, count > 0, nil
}

// SumEntries sums every ledger row of the (user, date), all kinds included.
func (r *PgxFutureFundRepository) SumEntries(ctx context.Context, userID string, fundDate time.Time) (domain.FundSums, bool, error) {
	query := `
		SELECT COALESCE(SUM(price), 0), COALESCE(SUM(apply_price), 0), COALESCE(SUM(accrual_fee), 0),
		       COALESCE(SUM(accumulated_fee), 0), COALESCE(SUM(repayment_fee), 0), COALESCE(SUM(repayment_price), 0),
		       COUNT(*)
		FROM future_fund_entries
		WHERE user_id = $1 AND fund_date = $2;
	`
	return r.sumEntries(ctx, query, userID, fundDate)
}

// SumSettledEntries sums the (user, date) rows excluding REPAYMENT_READY.
func (r *PgxFutureFundRepository) SumSettledEntries(ctx context.Context, userID string, fundDate time.Time) (domain.FundSums, bool, error) {
	query := `
		SELECT COALESCE(SUM(price), 0), COALESCE(SUM(apply_price), 0), COALESCE(SUM(accrual_fee), 0),
		       COALESCE(SUM(accumulated_fee), 0), COALESCE(SUM(repayment_fee), 0), COALESCE(SUM(repayment_price), 0),
		       COUNT(*)
		FROM future_fund_entries
		WHERE user_id = $1 AND fund_date = $2 AND kind <> 'REPAYMENT_READY';
	`
	return r.sumEntries(ctx, query, userID, fundDate)
}

// SumEntriesByDay aggregates settled rows per fund date over a range.
func (r *PgxFutureFundRepository) SumEntriesByDay(ctx context.Context, userID string, from, to time.Time) ([]domain.FundDaySum, error) {
	query := `
		SELECT fund_date,
		       COALESCE(SUM(price), 0), COALESCE(SUM(apply_price), 0), COALESCE(SUM(accrual_fee), 0),
		       COALESCE(SUM(accumulated_fee), 0), COALESCE(SUM(repayment_fee), 0), COALESCE(SUM(repayment_price), 0)
		FROM future_fund_entries
		WHERE user_id = $1 AND fund_date BETWEEN $2 AND $3 AND kind <> 'REPAYMENT_READY'
		GROUP BY fund_date
		ORDER BY fund_date;
	`
	rows, err := r.db(ctx).Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund day sums: %w", err)
	}
	defer rows.Close()

	sums := []domain.FundDaySum{}
	for rows.Next() {
		var s domain.FundDaySum
		err := rows.Scan(&s.FundDate, &s.Price, &s.ApplyPrice, &s.AccrualFee, &s.AccumulatedFee, &s.RepaymentFee, &s.RepaymentPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund day sum: %w", err)
		}
		sums = append(sums, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fund day sums: %w", rows.Err())
	}
	return sums, nil
}

// ListFundFlows returns per-(user, date) draw and settled repayment sums
// across all users in ascending date order.
func (r *PgxFutureFundRepository) ListFundFlows(ctx context.Context) ([]domain.FundFlow, error) {
	query := `
		SELECT user_id, fund_date, COALESCE(SUM(apply_price), 0), COALESCE(SUM(repayment_price), 0)
		FROM future_fund_entries
		WHERE kind IN ('APPLY', 'REPAYMENT')
		GROUP BY user_id, fund_date
		ORDER BY user_id, fund_date;
	`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund flows: %w", err)
	}
	defer rows.Close()

	flows := []domain.FundFlow{}
	for rows.Next() {
		var f domain.FundFlow
		if err := rows.Scan(&f.UserID, &f.FundDate, &f.ApplyPrice, &f.RepaymentPrice); err != nil {
			return nil, fmt.Errorf("failed to scan fund flow: %w", err)
		}
		flows = append(flows, f)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fund flows: %w", rows.Err())
	}
	return flows, nil
}

// SaveEntry appends one journal row.
func (r *PgxFutureFundRepository) SaveEntry(ctx context.Context, entry domain.FutureFundEntry) error {
	return r.SaveEntries(ctx, []domain.FutureFundEntry{entry})
}

// SaveEntries appends journal rows in one statement batch.
func (r *PgxFutureFundRepository) SaveEntries(ctx context.Context, entries []domain.FutureFundEntry) error {
	query := `
		INSERT INTO future_fund_entries (entry_id, fund_date, kind, user_id, price, apply_price, accrual_fee,
			accumulated_fee, repayment_fee, repayment_price, funded_by_batch_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query,
			e.EntryID,
			e.FundDate,
			e.Kind,
			e.UserID,
			e.Price,
			e.ApplyPrice,
			e.AccrualFee,
			e.AccumulatedFee,
			e.RepaymentFee,
			e.RepaymentPrice,
			e.FundedByBatchID,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert fund entries: %w", err)
	}
	return nil
}

// DeleteUnpaidRepayments removes the REPAYMENT_READY rows funded by the
// user's READY batches of batchDate. Must run before those batches are
// deleted, in the same transaction, or the batch delete trips the
// funded_by_batch_id foreign key.
func (r *PgxFutureFundRepository) DeleteUnpaidRepayments(ctx context.Context, userID string, batchDate time.Time) (int64, error) {
	query := `
		DELETE FROM future_fund_entries
		WHERE kind = 'REPAYMENT_READY' AND funded_by_batch_id IN (
			SELECT batch_id FROM settlement_batches
			WHERE user_id = $1 AND batch_date = $2 AND status = 'READY'
		);
	`
	tag, err := r.db(ctx).Exec(ctx, query, userID, batchDate)
	if err != nil {
		return 0, fmt.Errorf("failed to delete unpaid repayment entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PromoteRepaymentsByBatchIDs flips REPAYMENT_READY rows funded by the given
// batches to REPAYMENT.
func (r *PgxFutureFundRepository) PromoteRepaymentsByBatchIDs(ctx context.Context, batchIDs []string) error {
	query := `
		UPDATE future_fund_entries
		SET kind = 'REPAYMENT'
		WHERE kind = 'REPAYMENT_READY' AND funded_by_batch_id = ANY($1);
	`
	if _, err := r.db(ctx).Exec(ctx, query, batchIDs); err != nil {
		return fmt.Errorf("failed to promote repayment entries: %w", err)
	}
	return nil
}
