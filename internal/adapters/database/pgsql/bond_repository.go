package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/apperrors"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	portsrepo "github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/ports/repositories"
)

// PgxBondRepository persists and selects raw card events.
type PgxBondRepository struct {
	BaseRepository
}

// NewPgxBondRepository creates a new repository for bond data.
func NewPgxBondRepository(pool *pgxpool.Pool) *PgxBondRepository {
	return &PgxBondRepository{BaseRepository{pool: pool}}
}

var _ portsrepo.BondRepositoryFacade = (*PgxBondRepository)(nil)

// SaveBond persists a bond. The (user_id, transaction_id) unique constraint
// turns redelivered rows into apperrors.ErrDuplicate.
func (r *PgxBondRepository) SaveBond(ctx context.Context, bond domain.Bond) error {
	query := `
		INSERT INTO bonds (bond_id, transaction_id, transaction_at, card_network, card_kind, approval_kind,
			approval_number, approval_amount, commission, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		bond.BondID,
		bond.TransactionID,
		bond.TransactionAt,
		bond.CardNetwork,
		bond.CardKind,
		bond.ApprovalKind,
		bond.ApprovalNumber,
		bond.ApprovalAmount,
		bond.Commission,
		bond.UserID,
		bond.CreatedAt,
		bond.CreatedBy,
		bond.LastUpdatedAt,
		bond.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bond %s already ingested: %w", bond.TransactionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save bond: %w", err)
	}
	return nil
}

// unsettledGroups selects, per approval number, the latest unsettled bond at
// or before the cutoff together with the group's net amount and commission.
// A group is unsettled while none of its rows appear in settlement_records.
const unsettledGroups = `
	WITH unsettled AS (
		SELECT b.*
		FROM bonds b
		WHERE b.user_id = $1
		  AND b.transaction_at <= $2
		  AND NOT EXISTS (
			SELECT 1 FROM settlement_records r
			WHERE r.user_id = b.user_id AND r.transaction_id = b.transaction_id
		  )
	),
	grouped AS (
		SELECT approval_number,
		       SUM(approval_amount) AS net_amount,
		       SUM(commission)      AS net_commission
		FROM unsettled
		GROUP BY approval_number
	),
	latest AS (
		SELECT DISTINCT ON (approval_number) *
		FROM unsettled
		ORDER BY approval_number, transaction_at DESC, transaction_id DESC
	)
	SELECT l.bond_id, l.transaction_id, l.transaction_at, l.card_network, l.card_kind, l.approval_kind,
	       l.approval_number, g.net_amount, g.net_commission, l.user_id,
	       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
	FROM latest l
	JOIN grouped g ON g.approval_number = l.approval_number
`

// SelectAdvanceCandidates returns one bond per net-approved group, carrying
// the group's net amount and commission.
func (r *PgxBondRepository) SelectAdvanceCandidates(ctx context.Context, userID string, cutoff time.Time) ([]domain.Bond, error) {
	query := unsettledGroups + `
	WHERE g.net_amount > 0
	ORDER BY l.transaction_at, l.approval_number;
	`
	return r.queryBonds(ctx, query, userID, cutoff)
}

// SelectReversalCandidates returns one bond per net-canceled group whose
// earlier advance was already collected and not yet set off. Cancellations of
// never-advanced sales settle outside the engine.
func (r *PgxBondRepository) SelectReversalCandidates(ctx context.Context, userID string, cutoff time.Time) ([]domain.Bond, error) {
	query := unsettledGroups + `
	WHERE g.net_amount < 0
	  AND EXISTS (
		SELECT 1
		FROM settlement_records pr
		JOIN settlement_batches pb ON pb.batch_id = pr.batch_id
		WHERE pr.user_id = $1
		  AND pr.approval_number = l.approval_number
		  AND pb.status IN ('DEPOSIT_DONE', 'DONE')
	  )
	  AND NOT EXISTS (
		SELECT 1 FROM settlement_records sr
		WHERE sr.user_id = $1
		  AND sr.approval_number = l.approval_number
		  AND sr.status = 'SETOFF'
	  )
	ORDER BY l.transaction_at, l.approval_number;
	`
	return r.queryBonds(ctx, query, userID, cutoff)
}

func (r *PgxBondRepository) queryBonds(ctx context.Context, query string, args ...any) ([]domain.Bond, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonds: %w", err)
	}
	defer rows.Close()

	bonds := []domain.Bond{}
	for rows.Next() {
		var b domain.Bond
		err := rows.Scan(
			&b.BondID,
			&b.TransactionID,
			&b.TransactionAt,
			&b.CardNetwork,
			&b.CardKind,
			&b.ApprovalKind,
			&b.ApprovalNumber,
			&b.ApprovalAmount,
			&b.Commission,
			&b.UserID,
			&b.CreatedAt,
			&b.CreatedBy,
			&b.LastUpdatedAt,
			&b.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bond row: %w", err)
		}
		bonds = append(bonds, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bond rows: %w", rows.Err())
	}
	return bonds, nil
}

// SumApprovalAmountBetween sums approval amounts in [from, to).
func (r *PgxBondRepository) SumApprovalAmountBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(approval_amount), 0)
		FROM bonds
		WHERE user_id = $1 AND transaction_at >= $2 AND transaction_at < $3;
	`
	var total int64
	if err := r.db(ctx).QueryRow(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum approval amounts: %w", err)
	}
	return total, nil
}
