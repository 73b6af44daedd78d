package withdrawals

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sahana-dev/daansetu/pkg/common"
)

type mockWithdrawalRepository struct {
	mock.Mock
}

func (m *mockWithdrawalRepository) CreateWithDebit(ctx context.Context, withdrawal *Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *mockWithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error) {
	args := m.Called(ctx, id)
	withdrawal, _ := args.Get(0).(*Withdrawal)
	return withdrawal, args.Error(1)
}

func (m *mockWithdrawalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Withdrawal, error) {
	args := m.Called(ctx, id, status)
	withdrawal, _ := args.Get(0).(*Withdrawal)
	return withdrawal, args.Error(1)
}

func (m *mockWithdrawalRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Withdrawal, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	list, _ := args.Get(0).([]*Withdrawal)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockWithdrawalRepository) ListPending(ctx context.Context, limit, offset int) ([]*Withdrawal, int64, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*Withdrawal)
	return list, args.Get(1).(int64), args.Error(2)
}

func TestRequestCreatesPendingWithdrawal(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	userID := uuid.New()

	repo.On("CreateWithDebit", ctx, mock.MatchedBy(func(w *Withdrawal) bool {
		return w.UserID == userID &&
			w.Amount == 150 &&
			w.Status == StatusPending &&
			!w.RequestedAt.IsZero()
	})).Return(nil).Once()

	withdrawal, err := service.Request(ctx, userID, userID, 150)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, withdrawal.Status)
	assert.Equal(t, 150, withdrawal.Amount)
	repo.AssertExpectations(t)
}

func TestRequestRejectsNonOwner(t *testing.T) {
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)

	_, err := service.Request(context.Background(), uuid.New(), uuid.New(), 100)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeForbidden, appErr.Code)
	repo.AssertNotCalled(t, "CreateWithDebit", mock.Anything, mock.Anything)
}

func TestRequestRejectsNonPositiveAmounts(t *testing.T) {
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	userID := uuid.New()

	for _, amount := range []int{0, -1, -500} {
		_, err := service.Request(context.Background(), userID, userID, amount)

		require.Error(t, err)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, common.CodeBadRequest, appErr.Code)
	}
	repo.AssertNotCalled(t, "CreateWithDebit", mock.Anything, mock.Anything)
}

func TestRequestInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	userID := uuid.New()

	repo.On("CreateWithDebit", ctx, mock.Anything).Return(ErrInsufficientFunds).Once()

	_, err := service.Request(ctx, userID, userID, 10000)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeInsufficientFunds, appErr.Code)
}

func TestRequestUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	userID := uuid.New()

	repo.On("CreateWithDebit", ctx, mock.Anything).Return(ErrUserNotFound).Once()

	_, err := service.Request(ctx, userID, userID, 100)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeNotFound, appErr.Code)
}

func TestProcessMarksWithdrawalProcessed(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	withdrawalID := uuid.New()

	processed := &Withdrawal{ID: withdrawalID, UserID: uuid.New(), Amount: 200, Status: StatusProcessed}
	repo.On("UpdateStatus", ctx, withdrawalID, StatusProcessed).Return(processed, nil).Once()

	withdrawal, err := service.Process(ctx, withdrawalID, "processed")

	require.NoError(t, err)
	assert.Equal(t, StatusProcessed, withdrawal.Status)
	repo.AssertExpectations(t)
}

func TestProcessRejectionDoesNotRefund(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	withdrawalID := uuid.New()

	rejected := &Withdrawal{ID: withdrawalID, UserID: uuid.New(), Amount: 200, Status: StatusRejected}
	repo.On("UpdateStatus", ctx, withdrawalID, StatusRejected).Return(rejected, nil).Once()

	withdrawal, err := service.Process(ctx, withdrawalID, "rejected")

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, withdrawal.Status)
	// Only UpdateStatus runs; no balance mutation happens on rejection
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestProcessInvalidTargetIsBadRequest(t *testing.T) {
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)

	for _, target := range []string{"pending", "cancelled", ""} {
		_, err := service.Process(context.Background(), uuid.New(), target)

		require.Error(t, err)
		appErr, ok := common.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, common.CodeBadRequest, appErr.Code)
	}
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessAlreadyProcessedIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	withdrawalID := uuid.New()

	repo.On("UpdateStatus", ctx, withdrawalID, StatusProcessed).Return(nil, ErrAlreadyProcessed).Once()

	_, err := service.Process(ctx, withdrawalID, "processed")

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeConflict, appErr.Code)
}

func TestProcessUnknownWithdrawalIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	withdrawalID := uuid.New()

	repo.On("UpdateStatus", ctx, withdrawalID, StatusRejected).Return(nil, ErrNotFound).Once()

	_, err := service.Process(ctx, withdrawalID, "rejected")

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeNotFound, appErr.Code)
}

func TestListRepoFailuresAreInternalErrors(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWithdrawalRepository)
	service := NewService(repo)
	userID := uuid.New()

	repo.On("ListByUser", ctx, userID, 20, 0).Return(nil, int64(0), errors.New("connection refused")).Once()
	repo.On("ListPending", ctx, 20, 0).Return(nil, int64(0), errors.New("connection refused")).Once()

	_, _, err := service.ListForUser(ctx, userID, 20, 0)
	require.Error(t, err)

	_, _, err = service.ListPending(ctx, 20, 0)
	require.Error(t, err)
}
