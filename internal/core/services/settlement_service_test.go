package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/apperrors"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/services"
)

type settlementFixture struct {
	bondRepo       *MockBondRepo
	settlementRepo *MockSettlementRepo
	cardInfoRepo   *MockCardInfoRepo
	fundRepo       *MockFundRepo
	userRepo       *MockUserRepo
}

func newSettlementFixture() settlementFixture {
	return settlementFixture{
		bondRepo:       new(MockBondRepo),
		settlementRepo: new(MockSettlementRepo),
		cardInfoRepo:   new(MockCardInfoRepo),
		fundRepo:       new(MockFundRepo),
		userRepo:       new(MockUserRepo),
	}
}

func TestSettlementService_RunDailySettlement(t *testing.T) {
	f := newSettlementFixture()
	fundSvc := services.NewFutureFundService(f.fundRepo, f.userRepo)
	svc := services.NewSettlementService(f.bondRepo, f.settlementRepo, f.cardInfoRepo, f.cardInfoRepo, f.fundRepo, fundSvc, 10*time.Second)

	batchDate := day("2023-10-31")
	ctx := context.Background()

	f.settlementRepo.On("WithTx", mock.Anything).Return(nil)
	f.fundRepo.On("DeleteUnpaidRepayments", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	f.settlementRepo.On("DeleteUnpaidBatches", mock.Anything, "user-1", day("2023-10-30")).Return(int64(0), nil)
	f.settlementRepo.On("DeleteUnpaidBatches", mock.Anything, "user-1", batchDate).Return(int64(1), nil)

	f.cardInfoRepo.On("FindNetworkConfigs", mock.Anything, "user-1").Return([]domain.NetworkConfig{
		{
			Network:                domain.NetworkBC,
			RequiredSettlementDays: 2,
			Mode:                   domain.ModeStrictBusinessDays,
			Rate:                   domain.CardRate{Check: decimal.NewFromFloat(0.01), Credit: decimal.NewFromFloat(0.03)},
		},
	}, nil)
	f.cardInfoRepo.On("FindHolidaysBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	f.bondRepo.On("SelectAdvanceCandidates", mock.Anything, "user-1", batchDate).Return([]domain.Bond{
		{
			BondID:         "bond-1",
			TransactionID:  "txn-1",
			TransactionAt:  day("2023-10-30"),
			CardNetwork:    domain.NetworkBC,
			CardKind:       domain.CardKindCredit,
			ApprovalKind:   domain.ApprovalApproved,
			ApprovalNumber: "A1",
			ApprovalAmount: 30000,
			UserID:         "user-1",
		},
	}, nil)
	f.bondRepo.On("SelectReversalCandidates", mock.Anything, "user-1", batchDate).Return(nil, nil)

	var savedBatches []domain.SettlementBatch
	f.settlementRepo.On("SaveBatches", mock.Anything, mock.AnythingOfType("[]domain.SettlementBatch")).
		Run(func(args mock.Arguments) { savedBatches = args.Get(1).([]domain.SettlementBatch) }).
		Return(nil)
	var savedRecords []domain.SettlementRecord
	f.settlementRepo.On("SaveRecords", mock.Anything, mock.AnythingOfType("[]domain.SettlementRecord")).
		Run(func(args mock.Arguments) { savedRecords = args.Get(1).([]domain.SettlementRecord) }).
		Return(nil)

	// accrual already posted, nothing outstanding to net
	f.fundRepo.On("CountDailyEntries", mock.Anything, "user-1", batchDate).Return(1, nil)
	f.fundRepo.On("SumEntries", mock.Anything, "user-1", batchDate).Return(domain.FundSums{}, false, nil)

	result, err := svc.RunDailySettlement(ctx, "user-1", batchDate)

	require.NoError(t, err)
	assert.Equal(t, 1, result.BatchCount)
	assert.Equal(t, 1, result.RecordCount)
	assert.Equal(t, int64(29071), result.AdvanceAmount) // 30000 - 900 - 29

	require.Len(t, savedBatches, 1)
	assert.NotEmpty(t, savedBatches[0].BatchID)
	assert.Equal(t, domain.StatusReady, savedBatches[0].Status)
	assert.Equal(t, day("2023-11-01"), savedBatches[0].SettlementDueDate)

	require.Len(t, savedRecords, 1)
	assert.Equal(t, savedBatches[0].BatchID, savedRecords[0].BatchID)
	assert.NotEmpty(t, savedRecords[0].RecordID)
}

// A rerun must drop the repayment rows funded by the batches it is about to
// rebuild, and drop them first: the ledger references the batches through
// funded_by_batch_id, so the reverse order would abort the transaction.
func TestSettlementService_RunDailySettlement_RerunClearsFundedRepayments(t *testing.T) {
	f := newSettlementFixture()
	fundSvc := services.NewFutureFundService(f.fundRepo, f.userRepo)
	svc := services.NewSettlementService(f.bondRepo, f.settlementRepo, f.cardInfoRepo, f.cardInfoRepo, f.fundRepo, fundSvc, 10*time.Second)

	batchDate := day("2023-10-31")
	ctx := context.Background()

	f.settlementRepo.On("WithTx", mock.Anything).Return(nil)

	var order []string
	f.fundRepo.On("DeleteUnpaidRepayments", mock.Anything, "user-1", day("2023-10-30")).
		Run(func(mock.Arguments) { order = append(order, "repayments") }).
		Return(int64(0), nil)
	f.fundRepo.On("DeleteUnpaidRepayments", mock.Anything, "user-1", batchDate).
		Run(func(mock.Arguments) { order = append(order, "repayments") }).
		Return(int64(2), nil)
	f.settlementRepo.On("DeleteUnpaidBatches", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { order = append(order, "batches") }).
		Return(int64(1), nil)

	f.cardInfoRepo.On("FindNetworkConfigs", mock.Anything, "user-1").Return(nil, nil)
	f.cardInfoRepo.On("FindHolidaysBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.bondRepo.On("SelectAdvanceCandidates", mock.Anything, "user-1", batchDate).Return(nil, nil)
	f.bondRepo.On("SelectReversalCandidates", mock.Anything, "user-1", batchDate).Return(nil, nil)
	f.fundRepo.On("CountDailyEntries", mock.Anything, "user-1", batchDate).Return(1, nil)
	f.fundRepo.On("SumEntries", mock.Anything, "user-1", batchDate).Return(domain.FundSums{}, false, nil)

	_, err := svc.RunDailySettlement(ctx, "user-1", batchDate)

	require.NoError(t, err)
	f.fundRepo.AssertExpectations(t)
	require.Equal(t, []string{"repayments", "batches", "repayments", "batches"}, order)
}

func TestSettlementService_UpdateBatchStatus(t *testing.T) {
	ctx := context.Background()
	batchIDs := []string{"batch-1", "batch-2"}

	t.Run("fails when a batch is missing", func(t *testing.T) {
		f := newSettlementFixture()
		svc := services.NewSettlementService(f.bondRepo, f.settlementRepo, f.cardInfoRepo, f.cardInfoRepo, f.fundRepo, services.NewFutureFundService(f.fundRepo, f.userRepo), 10*time.Second)

		f.settlementRepo.On("FindBatchesByIDs", ctx, batchIDs).Return([]domain.SettlementBatch{
			{BatchID: "batch-1", Status: domain.StatusReady},
		}, nil)

		err := svc.UpdateBatchStatus(ctx, batchIDs, domain.StatusDepositDone, "admin-1")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("refuses an illegal transition", func(t *testing.T) {
		f := newSettlementFixture()
		svc := services.NewSettlementService(f.bondRepo, f.settlementRepo, f.cardInfoRepo, f.cardInfoRepo, f.fundRepo, services.NewFutureFundService(f.fundRepo, f.userRepo), 10*time.Second)

		f.settlementRepo.On("FindBatchesByIDs", ctx, batchIDs).Return([]domain.SettlementBatch{
			{BatchID: "batch-1", Status: domain.StatusReady},
			{BatchID: "batch-2", Status: domain.StatusReady},
		}, nil)

		err := svc.UpdateBatchStatus(ctx, batchIDs, domain.StatusDone, "admin-1")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.settlementRepo.AssertNotCalled(t, "UpdateBatchStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deposit done promotes funded repayments", func(t *testing.T) {
		f := newSettlementFixture()
		svc := services.NewSettlementService(f.bondRepo, f.settlementRepo, f.cardInfoRepo, f.cardInfoRepo, f.fundRepo, services.NewFutureFundService(f.fundRepo, f.userRepo), 10*time.Second)

		f.settlementRepo.On("FindBatchesByIDs", ctx, batchIDs).Return([]domain.SettlementBatch{
			{BatchID: "batch-1", Status: domain.StatusReady},
			{BatchID: "batch-2", Status: domain.StatusReady},
		}, nil)
		f.settlementRepo.On("WithTx", mock.Anything).Return(nil)
		f.settlementRepo.On("UpdateBatchStatus", mock.Anything, batchIDs, domain.StatusDepositDone, mock.AnythingOfType("time.Time")).Return(nil)
		f.fundRepo.On("PromoteRepaymentsByBatchIDs", mock.Anything, batchIDs).Return(nil)

		err := svc.UpdateBatchStatus(ctx, batchIDs, domain.StatusDepositDone, "admin-1")

		require.NoError(t, err)
		f.fundRepo.AssertExpectations(t)
	})

	t.Run("closing a batch does not touch the ledger", func(t *testing.T) {
		f := newSettlementFixture()
		svc := services.NewSettlementService(f.bondRepo, f.settlementRepo, f.cardInfoRepo, f.cardInfoRepo, f.fundRepo, services.NewFutureFundService(f.fundRepo, f.userRepo), 10*time.Second)

		f.settlementRepo.On("FindBatchesByIDs", ctx, batchIDs).Return([]domain.SettlementBatch{
			{BatchID: "batch-1", Status: domain.StatusDepositDone},
			{BatchID: "batch-2", Status: domain.StatusDepositDone},
		}, nil)
		f.settlementRepo.On("WithTx", mock.Anything).Return(nil)
		f.settlementRepo.On("UpdateBatchStatus", mock.Anything, batchIDs, domain.StatusDone, mock.AnythingOfType("time.Time")).Return(nil)

		err := svc.UpdateBatchStatus(ctx, batchIDs, domain.StatusDone, "admin-1")

		require.NoError(t, err)
		f.fundRepo.AssertNotCalled(t, "PromoteRepaymentsByBatchIDs", mock.Anything, mock.Anything)
	})
}
