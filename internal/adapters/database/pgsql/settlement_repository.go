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

// PgxSettlementRepository persists settlement batches and records.
type PgxSettlementRepository struct {
	BaseRepository
}

// NewPgxSettlementRepository creates a new repository for settlement data.
func NewPgxSettlementRepository(pool *pgxpool.Pool) *PgxSettlementRepository {
	return &PgxSettlementRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.SettlementRepositoryWithTx = (*PgxSettlementRepository)(nil)

const batchColumns = `batch_id, batch_date, sales_date, settlement_due_date, status, card_network,
	sales_price, card_commission, service_commission, setoff, user_id, advanced_at, collected_at`

// FindBatchesByBatchDate retrieves all of a user's batches posted on a batch
// date.
func (r *PgxSettlementRepository) FindBatchesByBatchDate(ctx context.Context, userID string, batchDate time.Time) ([]domain.SettlementBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM settlement_batches
		WHERE user_id = $1 AND batch_date = $2
		ORDER BY card_network, sales_date;
	`
	return r.queryBatches(ctx, query, userID, batchDate)
}

// FindBatchesByIDs retrieves batches by ID.
func (r *PgxSettlementRepository) FindBatchesByIDs(ctx context.Context, batchIDs []string) ([]domain.SettlementBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM settlement_batches
		WHERE batch_id = ANY($1)
		ORDER BY card_network, sales_date;
	`
	return r.queryBatches(ctx, query, batchIDs)
}

// ListBatchesByStatus retrieves batches in a status within a date range.
// READY batches filter on the batch date; paid ones on the settlement due
// date.
func (r *PgxSettlementRepository) ListBatchesByStatus(ctx context.Context, status domain.SettlementStatus, from, to time.Time) ([]domain.SettlementBatch, error) {
	dateColumn := "settlement_due_date"
	if status == domain.StatusReady {
		dateColumn = "batch_date"
	}
	query := `
		SELECT ` + batchColumns + `
		FROM settlement_batches
		WHERE status = $1 AND ` + dateColumn + ` BETWEEN $2 AND $3
		ORDER BY ` + dateColumn + `, user_id, card_network;
	`
	return r.queryBatches(ctx, query, status, from, to)
}

func (r *PgxSettlementRepository) queryBatches(ctx context.Context, query string, args ...any) ([]domain.SettlementBatch, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	batches := []domain.SettlementBatch{}
	for rows.Next() {
		var b domain.SettlementBatch
		err := rows.Scan(
			&b.BatchID,
			&b.BatchDate,
			&b.SalesDate,
			&b.SettlementDueDate,
			&b.Status,
			&b.CardNetwork,
			&b.SalesPrice,
			&b.CardCommission,
			&b.ServiceCommission,
			&b.Setoff,
			&b.UserID,
			&b.AdvancedAt,
			&b.CollectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		batches = append(batches, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating batch rows: %w", rows.Err())
	}
	return batches, nil
}

// SumBatchesByDay aggregates a user's batches per batch date over a range.
func (r *PgxSettlementRepository) SumBatchesByDay(ctx context.Context, userID string, from, to time.Time) ([]domain.BatchDaySum, error) {
	query := `
		SELECT batch_date,
		       COALESCE(SUM(sales_price), 0),
		       COALESCE(SUM(card_commission), 0),
		       COALESCE(SUM(service_commission), 0),
		       COALESCE(SUM(setoff), 0)
		FROM settlement_batches
		WHERE user_id = $1 AND batch_date BETWEEN $2 AND $3
		GROUP BY batch_date
		ORDER BY batch_date;
	`
	rows, err := r.db(ctx).Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch day sums: %w", err)
	}
	defer rows.Close()

	sums := []domain.BatchDaySum{}
	for rows.Next() {
		var s domain.BatchDaySum
		if err := rows.Scan(&s.BatchDate, &s.SalesPrice, &s.CardCommission, &s.ServiceCommission, &s.Setoff); err != nil {
			return nil, fmt.Errorf("failed to scan batch day sum: %w", err)
		}
		sums = append(sums, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating batch day sums: %w", rows.Err())
	}
	return sums, nil
}

// DeleteUnpaidBatches removes a user's READY batches and their records for a
// batch date. Paid batches (and SETOFF records, which belong to paid
// approvals) survive a rebuild untouched.
func (r *PgxSettlementRepository) DeleteUnpaidBatches(ctx context.Context, userID string, batchDate time.Time) (int64, error) {
	recordQuery := `
		DELETE FROM settlement_records
		WHERE batch_id IN (
			SELECT batch_id FROM settlement_batches
			WHERE user_id = $1 AND batch_date = $2 AND status = 'READY'
		);
	`
	if _, err := r.db(ctx).Exec(ctx, recordQuery, userID, batchDate); err != nil {
		return 0, fmt.Errorf("failed to delete unpaid records: %w", err)
	}

	batchQuery := `
		DELETE FROM settlement_batches
		WHERE user_id = $1 AND batch_date = $2 AND status = 'READY';
	`
	tag, err := r.db(ctx).Exec(ctx, batchQuery, userID, batchDate)
	if err != nil {
		return 0, fmt.Errorf("failed to delete unpaid batches: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SaveBatches persists freshly aggregated batches in one statement batch.
func (r *PgxSettlementRepository) SaveBatches(ctx context.Context, batches []domain.SettlementBatch) error {
	query := `
		INSERT INTO settlement_batches (batch_id, batch_date, sales_date, settlement_due_date, status, card_network,
			sales_price, card_commission, service_commission, setoff, user_id, advanced_at, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, b := range batches {
		batch.Queue(query,
			b.BatchID,
			b.BatchDate,
			b.SalesDate,
			b.SettlementDueDate,
			b.Status,
			b.CardNetwork,
			b.SalesPrice,
			b.CardCommission,
			b.ServiceCommission,
			b.Setoff,
			b.UserID,
			b.AdvancedAt,
			b.CollectedAt,
		)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert settlement batches: %w", err)
	}
	return nil
}

// SaveRecords persists the per-transaction records linked to batches.
func (r *PgxSettlementRepository) SaveRecords(ctx context.Context, records []domain.SettlementRecord) error {
	query := `
		INSERT INTO settlement_records (record_id, bond_id, transaction_id, batch_date, status, sales_price,
			card_commission, service_commission, advance_days, card_network, approval_kind, approval_number,
			transaction_at, user_id, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query,
			rec.RecordID,
			rec.BondID,
			rec.TransactionID,
			rec.BatchDate,
			rec.Status,
			rec.SalesPrice,
			rec.CardCommission,
			rec.ServiceCommission,
			rec.AdvanceDays,
			rec.CardNetwork,
			rec.ApprovalKind,
			rec.ApprovalNumber,
			rec.TransactionAt,
			rec.UserID,
			rec.BatchID,
		)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert settlement records: %w", err)
	}
	return nil
}

// UpdateBatchStatus moves batches to status, stamping advanced_at on
// DEPOSIT_DONE and collected_at on DONE.
func (r *PgxSettlementRepository) UpdateBatchStatus(ctx context.Context, batchIDs []string, status domain.SettlementStatus, at time.Time) error {
	stampColumn := ""
	switch status {
	case domain.StatusDepositDone:
		stampColumn = ", advanced_at = $3"
	case domain.StatusDone:
		stampColumn = ", collected_at = $3"
	}

	query := `UPDATE settlement_batches SET status = $2` + stampColumn + ` WHERE batch_id = ANY($1);`
	args := []any{batchIDs, status}
	if stampColumn != "" {
		args = append(args, at)
	}

	if _, err := r.db(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}
	return nil
}
