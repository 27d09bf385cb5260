package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

func testConfigs() *domain.NetworkConfigStore {
	return domain.NewNetworkConfigStore([]domain.NetworkConfig{
		{
			Network:                domain.NetworkBC,
			RequiredSettlementDays: 2,
			Mode:                   domain.ModeStrictBusinessDays,
			Rate:                   domain.CardRate{Check: decimal.NewFromFloat(0.01), Credit: decimal.NewFromFloat(0.03)},
		},
		{
			Network:                domain.NetworkKB,
			RequiredSettlementDays: 3,
			Mode:                   domain.ModeCalendarSafeLanding,
			Rate:                   domain.CardRate{Check: decimal.NewFromFloat(0.01), Credit: decimal.NewFromFloat(0.025)},
		},
	})
}

func testBond(network domain.CardNetwork, approvalNumber string, amount int64, at time.Time) domain.Bond {
	return domain.Bond{
		BondID:         "bond-" + approvalNumber,
		TransactionID:  "txn-" + approvalNumber,
		TransactionAt:  at,
		CardNetwork:    network,
		CardKind:       domain.CardKindCredit,
		ApprovalKind:   domain.ApprovalApproved,
		ApprovalNumber: approvalNumber,
		ApprovalAmount: amount,
		UserID:         "user-1",
	}
}

func TestBatchBuilder_BuildAdvanceRecords(t *testing.T) {
	batchDate := date("2023-10-31")
	builder := domain.NewBatchBuilder("user-1", batchDate, domain.NewHolidaySet(nil), testConfigs())

	t.Run("prices a valid bond", func(t *testing.T) {
		bonds := []domain.Bond{testBond(domain.NetworkBC, "A1", 30000, date("2023-10-30"))}

		records, rejected := builder.BuildAdvanceRecords(bonds)

		require.Empty(t, rejected)
		require.Len(t, records, 1)
		rec := records[0]
		assert.Equal(t, domain.StatusReady, rec.Status)
		assert.Equal(t, int64(30000), rec.SalesPrice)
		assert.Equal(t, int64(-900), rec.CardCommission)
		assert.Equal(t, int64(-29), rec.ServiceCommission)
		assert.Equal(t, 1, rec.AdvanceDays)
		assert.Equal(t, batchDate, rec.BatchDate)
		assert.Equal(t, "user-1", rec.UserID)
	})

	t.Run("rejects unmapped network but keeps the rest", func(t *testing.T) {
		bonds := []domain.Bond{
			testBond("MYSTERY_CARD", "B1", 10000, date("2023-10-30")),
			testBond(domain.NetworkBC, "B2", 30000, date("2023-10-30")),
		}

		records, rejected := builder.BuildAdvanceRecords(bonds)

		require.Len(t, rejected, 1)
		assert.Contains(t, rejected[0].Error(), "MYSTERY_CARD")
		require.Len(t, records, 1)
		assert.Equal(t, "B2", records[0].ApprovalNumber)
	})

	t.Run("skips sales with no time value", func(t *testing.T) {
		// Friday sale settles the following Tuesday; a run on that Tuesday
		// has nothing left to advance.
		lateBuilder := domain.NewBatchBuilder("user-1", date("2023-11-07"), domain.NewHolidaySet(nil), testConfigs())
		bonds := []domain.Bond{testBond(domain.NetworkBC, "C1", 30000, date("2023-11-03"))}

		records, rejected := lateBuilder.BuildAdvanceRecords(bonds)

		assert.Empty(t, rejected)
		assert.Empty(t, records)
	})
}

func TestBatchBuilder_BuildReversalRecords(t *testing.T) {
	builder := domain.NewBatchBuilder("user-1", date("2023-10-31"), domain.NewHolidaySet(nil), testConfigs())
	bonds := []domain.Bond{testBond(domain.NetworkBC, "R1", -30000, date("2023-10-30"))}

	records, rejected := builder.BuildReversalRecords(bonds)

	require.Empty(t, rejected)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, domain.StatusSetoff, rec.Status)
	assert.Equal(t, int64(-30000), rec.SalesPrice)
	assert.Equal(t, int64(900), rec.CardCommission) // floor(-30000*0.03)*-1
	assert.Equal(t, int64(0), rec.ServiceCommission)
	assert.Equal(t, 0, rec.AdvanceDays)
}

func TestBatchBuilder_Aggregate(t *testing.T) {
	batchDate := date("2023-10-31")
	builder := domain.NewBatchBuilder("user-1", batchDate, domain.NewHolidaySet(nil), testConfigs())

	records := []domain.SettlementRecord{
		{Status: domain.StatusReady, CardNetwork: domain.NetworkBC, TransactionAt: date("2023-10-30"), SalesPrice: 30000, CardCommission: -900, ServiceCommission: -29},
		{Status: domain.StatusReady, CardNetwork: domain.NetworkBC, TransactionAt: date("2023-10-30"), SalesPrice: 20000, CardCommission: -600, ServiceCommission: -19},
		{Status: domain.StatusSetoff, CardNetwork: domain.NetworkBC, TransactionAt: date("2023-10-30"), SalesPrice: -10000, CardCommission: 300},
		{Status: domain.StatusReady, CardNetwork: domain.NetworkKB, TransactionAt: date("2023-10-30"), SalesPrice: 5000, CardCommission: -125, ServiceCommission: -4},
	}

	batches := builder.Aggregate(records)

	require.Len(t, batches, 2)

	bc := batches[0]
	assert.Equal(t, domain.NetworkBC, bc.CardNetwork)
	assert.Equal(t, date("2023-10-30"), bc.SalesDate)
	assert.Equal(t, date("2023-11-01"), bc.SettlementDueDate) // 2 strict business days
	assert.Equal(t, int64(50000), bc.SalesPrice)
	assert.Equal(t, int64(-1500), bc.CardCommission)
	assert.Equal(t, int64(-48), bc.ServiceCommission)
	assert.Equal(t, int64(-9700), bc.Setoff)
	assert.Equal(t, int64(38752), bc.NetDeposit())
	assert.Equal(t, domain.StatusReady, bc.Status)

	kb := batches[1]
	assert.Equal(t, domain.NetworkKB, kb.CardNetwork)
	assert.Equal(t, date("2023-11-02"), kb.SettlementDueDate) // 3 safe-landing days
	assert.Equal(t, int64(5000), kb.SalesPrice)
	assert.Equal(t, int64(0), kb.Setoff)
}

func TestBatchBuilder_RepeatedRunsProduceIdenticalBatches(t *testing.T) {
	batchDate := date("2023-10-31")
	builder := domain.NewBatchBuilder("user-1", batchDate, domain.NewHolidaySet(nil), testConfigs())

	bonds := []domain.Bond{
		testBond(domain.NetworkBC, "A1", 30000, date("2023-10-30")),
		testBond(domain.NetworkBC, "A2", 20000, date("2023-10-30")),
		testBond(domain.NetworkKB, "A3", 5000, date("2023-10-30")),
	}
	reversals := []domain.Bond{testBond(domain.NetworkBC, "A4", -10000, date("2023-10-30"))}

	build := func() []domain.SettlementBatch {
		records, rejected := builder.BuildAdvanceRecords(bonds)
		require.Empty(t, rejected)
		setoffs, rejected := builder.BuildReversalRecords(reversals)
		require.Empty(t, rejected)
		return builder.Aggregate(append(records, setoffs...))
	}

	first := build()
	second := build()

	assert.Equal(t, first, second)
}

func TestBatchBuilder_LinkRecordsToBatches(t *testing.T) {
	builder := domain.NewBatchBuilder("user-1", date("2023-10-31"), domain.NewHolidaySet(nil), testConfigs())

	records := []domain.SettlementRecord{
		{TransactionID: "t1", CardNetwork: domain.NetworkBC, TransactionAt: date("2023-10-30")},
		{TransactionID: "t2", CardNetwork: domain.NetworkBC, TransactionAt: date("2023-10-30").Add(13 * time.Hour)},
	}
	batches := []domain.SettlementBatch{
		{BatchID: "batch-1", CardNetwork: domain.NetworkBC, SalesDate: date("2023-10-30")},
	}

	t.Run("links by network and sales date", func(t *testing.T) {
		linked, err := builder.LinkRecordsToBatches(records, batches)

		require.NoError(t, err)
		require.Len(t, linked, 2)
		assert.Equal(t, "batch-1", linked[0].BatchID)
		assert.Equal(t, "batch-1", linked[1].BatchID)
	})

	t.Run("fails on a record without a batch", func(t *testing.T) {
		orphan := []domain.SettlementRecord{
			{TransactionID: "t3", CardNetwork: domain.NetworkKB, TransactionAt: date("2023-10-30")},
		}

		_, err := builder.LinkRecordsToBatches(orphan, batches)
		assert.Error(t, err)
	})
}
