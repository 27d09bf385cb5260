package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/dto"
)

// --- Mock bond repository ---

type MockBondRepo struct {
	mock.Mock
}

func (m *MockBondRepo) SaveBond(ctx context.Context, bond domain.Bond) error {
	args := m.Called(ctx, bond)
	return args.Error(0)
}

func (m *MockBondRepo) SelectAdvanceCandidates(ctx context.Context, userID string, cutoff time.Time) ([]domain.Bond, error) {
	args := m.Called(ctx, userID, cutoff)
	var bonds []domain.Bond
	if args.Get(0) != nil {
		bonds = args.Get(0).([]domain.Bond)
	}
	return bonds, args.Error(1)
}

func (m *MockBondRepo) SelectReversalCandidates(ctx context.Context, userID string, cutoff time.Time) ([]domain.Bond, error) {
	args := m.Called(ctx, userID, cutoff)
	var bonds []domain.Bond
	if args.Get(0) != nil {
		bonds = args.Get(0).([]domain.Bond)
	}
	return bonds, args.Error(1)
}

func (m *MockBondRepo) SumApprovalAmountBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock settlement repository (with transaction support) ---

type MockSettlementRepo struct {
	mock.Mock
}

// WithTx runs fn directly; the mock has no real transaction to scope.
func (m *MockSettlementRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

func (m *MockSettlementRepo) FindBatchesByBatchDate(ctx context.Context, userID string, batchDate time.Time) ([]domain.SettlementBatch, error) {
	args := m.Called(ctx, userID, batchDate)
	var batches []domain.SettlementBatch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.SettlementBatch)
	}
	return batches, args.Error(1)
}

func (m *MockSettlementRepo) FindBatchesByIDs(ctx context.Context, batchIDs []string) ([]domain.SettlementBatch, error) {
	args := m.Called(ctx, batchIDs)
	var batches []domain.SettlementBatch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.SettlementBatch)
	}
	return batches, args.Error(1)
}

func (m *MockSettlementRepo) ListBatchesByStatus(ctx context.Context, status domain.SettlementStatus, from, to time.Time) ([]domain.SettlementBatch, error) {
	args := m.Called(ctx, status, from, to)
	var batches []domain.SettlementBatch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.SettlementBatch)
	}
	return batches, args.Error(1)
}

func (m *MockSettlementRepo) SumBatchesByDay(ctx context.Context, userID string, from, to time.Time) ([]domain.BatchDaySum, error) {
	args := m.Called(ctx, userID, from, to)
	var sums []domain.BatchDaySum
	if args.Get(0) != nil {
		sums = args.Get(0).([]domain.BatchDaySum)
	}
	return sums, args.Error(1)
}

func (m *MockSettlementRepo) DeleteUnpaidBatches(ctx context.Context, userID string, batchDate time.Time) (int64, error) {
	args := m.Called(ctx, userID, batchDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSettlementRepo) SaveBatches(ctx context.Context, batches []domain.SettlementBatch) error {
	args := m.Called(ctx, batches)
	return args.Error(0)
}

func (m *MockSettlementRepo) SaveRecords(ctx context.Context, records []domain.SettlementRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockSettlementRepo) UpdateBatchStatus(ctx context.Context, batchIDs []string, status domain.SettlementStatus, at time.Time) error {
	args := m.Called(ctx, batchIDs, status, at)
	return args.Error(0)
}

// --- Mock future-fund repository ---

type MockFundRepo struct {
	mock.Mock
}

func (m *MockFundRepo) CountDailyEntries(ctx context.Context, userID string, fundDate time.Time) (int, error) {
	args := m.Called(ctx, userID, fundDate)
	return args.Int(0), args.Error(1)
}

func (m *MockFundRepo) SumEntries(ctx context.Context, userID string, fundDate time.Time) (domain.FundSums, bool, error) {
	args := m.Called(ctx, userID, fundDate)
	return args.Get(0).(domain.FundSums), args.Bool(1), args.Error(2)
}

func (m *MockFundRepo) SumSettledEntries(ctx context.Context, userID string, fundDate time.Time) (domain.FundSums, bool, error) {
	args := m.Called(ctx, userID, fundDate)
	return args.Get(0).(domain.FundSums), args.Bool(1), args.Error(2)
}

func (m *MockFundRepo) SumEntriesByDay(ctx context.Context, userID string, from, to time.Time) ([]domain.FundDaySum, error) {
	args := m.Called(ctx, userID, from, to)
	var sums []domain.FundDaySum
	if args.Get(0) != nil {
		sums = args.Get(0).([]domain.FundDaySum)
	}
	return sums, args.Error(1)
}

func (m *MockFundRepo) ListFundFlows(ctx context.Context) ([]domain.FundFlow, error) {
	args := m.Called(ctx)
	var flows []domain.FundFlow
	if args.Get(0) != nil {
		flows = args.Get(0).([]domain.FundFlow)
	}
	return flows, args.Error(1)
}

func (m *MockFundRepo) SaveEntry(ctx context.Context, entry domain.FutureFundEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFundRepo) SaveEntries(ctx context.Context, entries []domain.FutureFundEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockFundRepo) DeleteUnpaidRepayments(ctx context.Context, userID string, batchDate time.Time) (int64, error) {
	args := m.Called(ctx, userID, batchDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFundRepo) PromoteRepaymentsByBatchIDs(ctx context.Context, batchIDs []string) error {
	args := m.Called(ctx, batchIDs)
	return args.Error(0)
}

// --- Mock apply repository ---

type MockApplyRepo struct {
	mock.Mock
}

func (m *MockApplyRepo) FindReadyApply(ctx context.Context, userID string, applyDate time.Time) (*domain.FutureFundApply, error) {
	args := m.Called(ctx, userID, applyDate)
	var apply *domain.FutureFundApply
	if args.Get(0) != nil {
		apply = args.Get(0).(*domain.FutureFundApply)
	}
	return apply, args.Error(1)
}

func (m *MockApplyRepo) CountDoneApplies(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockApplyRepo) FindAppliesByIDs(ctx context.Context, applyIDs []string) ([]domain.FutureFundApply, error) {
	args := m.Called(ctx, applyIDs)
	var applies []domain.FutureFundApply
	if args.Get(0) != nil {
		applies = args.Get(0).([]domain.FutureFundApply)
	}
	return applies, args.Error(1)
}

func (m *MockApplyRepo) ListAppliesByStatus(ctx context.Context, status domain.ApplyStatus, date time.Time) ([]domain.FutureFundApply, error) {
	args := m.Called(ctx, status, date)
	var applies []domain.FutureFundApply
	if args.Get(0) != nil {
		applies = args.Get(0).([]domain.FutureFundApply)
	}
	return applies, args.Error(1)
}

func (m *MockApplyRepo) SaveApply(ctx context.Context, apply domain.FutureFundApply) error {
	args := m.Called(ctx, apply)
	return args.Error(0)
}

func (m *MockApplyRepo) UpdateApplyStatus(ctx context.Context, applyIDs []string, status domain.ApplyStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, applyIDs, status, updatedBy, at)
	return args.Error(0)
}

// --- Mock card info / holiday repository ---

type MockCardInfoRepo struct {
	mock.Mock
}

func (m *MockCardInfoRepo) FindNetworkConfigs(ctx context.Context, userID string) ([]domain.NetworkConfig, error) {
	args := m.Called(ctx, userID)
	var configs []domain.NetworkConfig
	if args.Get(0) != nil {
		configs = args.Get(0).([]domain.NetworkConfig)
	}
	return configs, args.Error(1)
}

func (m *MockCardInfoRepo) FindHolidaysBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	args := m.Called(ctx, from, to)
	var days []time.Time
	if args.Get(0) != nil {
		days = args.Get(0).([]time.Time)
	}
	return days, args.Error(1)
}

// --- Mock user repository ---

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepo) ListSettlementUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepo) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock settlement runner ---

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) RunDailySettlement(ctx context.Context, userID string, batchDate time.Time) (*dto.UserRunResult, error) {
	args := m.Called(ctx, userID, batchDate)
	var res *dto.UserRunResult
	if args.Get(0) != nil {
		res = args.Get(0).(*dto.UserRunResult)
	}
	return res, args.Error(1)
}

// --- Mock notifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRunReport(ctx context.Context, report *dto.SettlementRunReport) {
	m.Called(ctx, report)
}
