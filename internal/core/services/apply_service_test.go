package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/apperrors"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/services"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

func newApplyFixture() (*MockApplyRepo, *MockFundRepo, *MockBondRepo, *MockUserRepo, context.Context) {
	return new(MockApplyRepo), new(MockFundRepo), new(MockBondRepo), new(MockUserRepo), context.Background()
}

func TestApplyService_CreateApply(t *testing.T) {
	t.Run("rejects users without a facility", func(t *testing.T) {
		applyRepo, fundRepo, bondRepo, userRepo, ctx := newApplyFixture()
		svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

		userRepo.On("FindUserByID", ctx, "user-1").Return(&domain.User{UserID: "user-1", FundLimit: 0}, nil)

		_, err := svc.CreateApply(ctx, "user-1", dto.CreateApplyRequest{ApplyPrice: 100000})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("rejects a second request on the same day", func(t *testing.T) {
		applyRepo, fundRepo, bondRepo, userRepo, ctx := newApplyFixture()
		svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

		userRepo.On("FindUserByID", ctx, "user-1").Return(&domain.User{UserID: "user-1", FundLimit: 1000000}, nil)
		applyRepo.On("FindReadyApply", ctx, "user-1", mock.Anything).Return(&domain.FutureFundApply{ApplyID: "apply-1"}, nil)

		_, err := svc.CreateApply(ctx, "user-1", dto.CreateApplyRequest{ApplyPrice: 100000})

		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})

	t.Run("rejects draws over the remaining facility", func(t *testing.T) {
		applyRepo, fundRepo, bondRepo, userRepo, ctx := newApplyFixture()
		svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

		userRepo.On("FindUserByID", ctx, "user-1").Return(&domain.User{UserID: "user-1", FundLimit: 1000000}, nil)
		applyRepo.On("FindReadyApply", ctx, "user-1", mock.Anything).Return(nil, nil)
		fundRepo.On("SumSettledEntries", ctx, "user-1", mock.Anything).Return(domain.FundSums{Price: 900000}, true, nil)

		_, err := svc.CreateApply(ctx, "user-1", dto.CreateApplyRequest{ApplyPrice: 200000})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("records the request with risk metrics", func(t *testing.T) {
		applyRepo, fundRepo, bondRepo, userRepo, ctx := newApplyFixture()
		svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

		userRepo.On("FindUserByID", ctx, "user-1").Return(&domain.User{UserID: "user-1", FundLimit: 1000000}, nil)
		applyRepo.On("FindReadyApply", ctx, "user-1", mock.Anything).Return(nil, nil)
		fundRepo.On("SumSettledEntries", ctx, "user-1", mock.Anything).Return(domain.FundSums{Price: 200000}, true, nil)
		bondRepo.On("SumApprovalAmountBetween", ctx, "user-1", mock.Anything, mock.Anything).Return(int64(700000), nil).Once()
		bondRepo.On("SumApprovalAmountBetween", ctx, "user-1", mock.Anything, mock.Anything).Return(int64(350000), nil).Once()
		applyRepo.On("CountDoneApplies", ctx, "user-1").Return(2, nil)

		var saved domain.FutureFundApply
		applyRepo.On("SaveApply", ctx, mock.AnythingOfType("domain.FutureFundApply")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(domain.FutureFundApply) }).
			Return(nil)

		apply, err := svc.CreateApply(ctx, "user-1", dto.CreateApplyRequest{ApplyPrice: 300000})

		require.NoError(t, err)
		assert.Equal(t, domain.ApplyReady, apply.Status)
		assert.Equal(t, int64(300000), saved.ApplyPrice)
		assert.Equal(t, int64(1000000), saved.Limit)
		assert.Equal(t, int64(200000), saved.FundInUse)
		assert.Equal(t, int64(100000), saved.AvgSalesPrice) // 700000 over 7 days
		assert.Equal(t, float64(100), saved.AvgSalesPriceRate)
		assert.Equal(t, 2, saved.DoneCount)
	})
}

func TestApplyService_ApproveApplies(t *testing.T) {
	ctx := context.Background()
	applyIDs := []string{"apply-1", "apply-2"}

	t.Run("posts draw entries and marks applies done", func(t *testing.T) {
		applyRepo, fundRepo, bondRepo, userRepo, _ := newApplyFixture()
		svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

		applyRepo.On("FindAppliesByIDs", ctx, applyIDs).Return([]domain.FutureFundApply{
			{ApplyID: "apply-1", UserID: "user-1", ApplyPrice: 100000, Status: domain.ApplyReady},
			{ApplyID: "apply-2", UserID: "user-2", ApplyPrice: 50000, Status: domain.ApplyReady},
		}, nil)

		var entries []domain.FutureFundEntry
		fundRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.FutureFundEntry")).
			Run(func(args mock.Arguments) { entries = args.Get(1).([]domain.FutureFundEntry) }).
			Return(nil)
		applyRepo.On("UpdateApplyStatus", ctx, applyIDs, domain.ApplyDone, "admin-1", mock.AnythingOfType("time.Time")).Return(nil)

		err := svc.ApproveApplies(ctx, applyIDs, "admin-1")

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.FundApply, entries[0].Kind)
		assert.Equal(t, int64(100000), entries[0].ApplyPrice)
		assert.Equal(t, "user-2", entries[1].UserID)
		applyRepo.AssertExpectations(t)
	})

	t.Run("fails when an apply is missing", func(t *testing.T) {
		applyRepo, fundRepo, bondRepo, userRepo, _ := newApplyFixture()
		svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

		applyRepo.On("FindAppliesByIDs", ctx, applyIDs).Return([]domain.FutureFundApply{
			{ApplyID: "apply-1", Status: domain.ApplyReady},
		}, nil)

		err := svc.ApproveApplies(ctx, applyIDs, "admin-1")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("fails when an apply is not ready", func(t *testing.T) {
		applyRepo, fundRepo, bondRepo, userRepo, _ := newApplyFixture()
		svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

		applyRepo.On("FindAppliesByIDs", ctx, applyIDs).Return([]domain.FutureFundApply{
			{ApplyID: "apply-1", Status: domain.ApplyReady},
			{ApplyID: "apply-2", Status: domain.ApplyDone},
		}, nil)

		err := svc.ApproveApplies(ctx, applyIDs, "admin-1")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		fundRepo.AssertNotCalled(t, "SaveEntries", mock.Anything, mock.Anything)
	})
}

func TestApplyService_CancelApplies(t *testing.T) {
	ctx := context.Background()
	applyRepo, fundRepo, bondRepo, userRepo, _ := newApplyFixture()
	svc := services.NewApplyService(applyRepo, fundRepo, bondRepo, userRepo)

	applyRepo.On("FindAppliesByIDs", ctx, []string{"apply-1"}).Return([]domain.FutureFundApply{
		{ApplyID: "apply-1", Status: domain.ApplyReady},
	}, nil)
	applyRepo.On("UpdateApplyStatus", ctx, []string{"apply-1"}, domain.ApplyCancel, "admin-1", mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.CancelApplies(ctx, []string{"apply-1"}, "admin-1")

	require.NoError(t, err)
	applyRepo.AssertExpectations(t)
}
