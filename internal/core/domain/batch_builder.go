package domain

import (
	"fmt"
	"time"
)

// batchKey groups settlement records into batches. A struct key avoids the
// collisions a concatenated string key could produce.
type batchKey struct {
	Network   CardNetwork
	SalesDate string // YYYY-MM-DD
}

// BatchBuilder turns eligible bonds into settlement records and aggregates
// them into per-network per-sales-date batches for one user and one batch
// date. Configuration and the holiday calendar are injected once per run.
type BatchBuilder struct {
	userID    string
	batchDate time.Time
	holidays  HolidaySet
	configs   *NetworkConfigStore
}

// NewBatchBuilder creates a builder for one user's run on batchDate.
func NewBatchBuilder(userID string, batchDate time.Time, holidays HolidaySet, configs *NetworkConfigStore) *BatchBuilder {
	return &BatchBuilder{
		userID:    userID,
		batchDate: batchDate,
		holidays:  holidays,
		configs:   configs,
	}
}

// BuildAdvanceRecords maps net-approved bonds to READY settlement records.
// Bonds whose outstanding-day count is zero carry no time value and are
// skipped. Bonds with an unknown card network are rejected individually and
// reported so the rest of the batch can proceed.
func (b *BatchBuilder) BuildAdvanceRecords(bonds []Bond) ([]SettlementRecord, []error) {
	records := make([]SettlementRecord, 0, len(bonds))
	var rejected []error

	for _, bond := range bonds {
		if !bond.CardNetwork.IsValid() {
			rejected = append(rejected, fmt.Errorf("bond %s: unmapped card network %q", bond.BondID, bond.CardNetwork))
			continue
		}

		cfg := b.configs.Get(bond.CardNetwork)
		salesPrice := bond.ApprovalAmount
		cardCommission := CardCommission(salesPrice, bond.Commission, bond.CardKind, cfg.Rate)
		svc := ServiceCommission(bond.TransactionAt, b.batchDate, salesPrice, cardCommission, cfg, b.holidays)
		if svc.OutstandingDays == 0 {
			// No days outstanding means no fee to earn; the sale settles
			// normally without an advance.
			continue
		}

		records = append(records, SettlementRecord{
			BondID:            bond.BondID,
			TransactionID:     bond.TransactionID,
			BatchDate:         b.batchDate,
			Status:            StatusReady,
			SalesPrice:        salesPrice,
			CardCommission:    cardCommission,
			ServiceCommission: svc.Fee,
			AdvanceDays:       svc.OutstandingDays,
			CardNetwork:       bond.CardNetwork,
			ApprovalKind:      bond.ApprovalKind,
			ApprovalNumber:    bond.ApprovalNumber,
			TransactionAt:     bond.TransactionAt,
			UserID:            b.userID,
		})
	}

	return records, rejected
}

// BuildReversalRecords maps net-canceled bonds to SETOFF records. The card
// commission is recomputed with the same rule as advances; reversals carry no
// service commission and no advance days.
func (b *BatchBuilder) BuildReversalRecords(bonds []Bond) ([]SettlementRecord, []error) {
	records := make([]SettlementRecord, 0, len(bonds))
	var rejected []error

	for _, bond := range bonds {
		if !bond.CardNetwork.IsValid() {
			rejected = append(rejected, fmt.Errorf("bond %s: unmapped card network %q", bond.BondID, bond.CardNetwork))
			continue
		}

		cfg := b.configs.Get(bond.CardNetwork)
		records = append(records, SettlementRecord{
			BondID:            bond.BondID,
			TransactionID:     bond.TransactionID,
			BatchDate:         b.batchDate,
			Status:            StatusSetoff,
			SalesPrice:        bond.ApprovalAmount, // negative
			CardCommission:    CardCommission(bond.ApprovalAmount, bond.Commission, bond.CardKind, cfg.Rate),
			ServiceCommission: 0,
			AdvanceDays:       0,
			CardNetwork:       bond.CardNetwork,
			ApprovalKind:      bond.ApprovalKind,
			ApprovalNumber:    bond.ApprovalNumber,
			TransactionAt:     bond.TransactionAt,
			UserID:            b.userID,
		})
	}

	return records, rejected
}

// Aggregate groups records by (card network, sales date) into batches. READY
// records contribute their price and commissions; SETOFF records contribute
// only their net reversal amount (salesPrice + cardCommission) to setoff.
// The settlement due date is walked once per group from the sales date.
func (b *BatchBuilder) Aggregate(records []SettlementRecord) []SettlementBatch {
	batches := make(map[batchKey]*SettlementBatch)
	order := make([]batchKey, 0)

	for _, rec := range records {
		salesDate := DateOf(rec.TransactionAt)
		key := batchKey{Network: rec.CardNetwork, SalesDate: salesDate.Format(DateLayout)}

		batch, ok := batches[key]
		if !ok {
			cfg := b.configs.Get(rec.CardNetwork)
			offset := SettlementDayOffset(salesDate, cfg.RequiredSettlementDays, b.holidays, cfg.Mode)
			batch = &SettlementBatch{
				BatchDate:         b.batchDate,
				SalesDate:         salesDate,
				SettlementDueDate: salesDate.AddDate(0, 0, offset),
				Status:            StatusReady,
				CardNetwork:       rec.CardNetwork,
				UserID:            b.userID,
			}
			batches[key] = batch
			order = append(order, key)
		}

		if rec.Status == StatusSetoff {
			batch.Setoff += rec.SalesPrice + rec.CardCommission
			continue
		}
		batch.SalesPrice += rec.SalesPrice
		batch.CardCommission += rec.CardCommission
		batch.ServiceCommission += rec.ServiceCommission
	}

	result := make([]SettlementBatch, 0, len(batches))
	for _, key := range order {
		result = append(result, *batches[key])
	}
	return result
}

// LinkRecordsToBatches resolves each record's owning batch by (network,
// sales date). Returns an error when a record has no matching batch, which
// indicates the run persisted an inconsistent batch set.
func (b *BatchBuilder) LinkRecordsToBatches(records []SettlementRecord, batches []SettlementBatch) ([]SettlementRecord, error) {
	ids := make(map[batchKey]string, len(batches))
	for _, batch := range batches {
		ids[batchKey{Network: batch.CardNetwork, SalesDate: batch.SalesDate.Format(DateLayout)}] = batch.BatchID
	}

	linked := make([]SettlementRecord, len(records))
	for i, rec := range records {
		key := batchKey{Network: rec.CardNetwork, SalesDate: DateOf(rec.TransactionAt).Format(DateLayout)}
		id, ok := ids[key]
		if !ok {
			return nil, fmt.Errorf("no batch for record %s (%s %s)", rec.TransactionID, key.Network, key.SalesDate)
		}
		linked[i] = rec
		linked[i].BatchID = id
	}
	return linked, nil
}
