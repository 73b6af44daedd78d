package withdrawals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/logger"
)

// Service owns the withdrawal ledger: the request-time debit and the
// admin-driven status change
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new withdrawals service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Request creates a pending withdrawal for the owner, debiting their
// withdrawable balance immediately and atomically with the record.
// callerID must be the owner; admins process withdrawals but do not
// request them on a user's behalf.
func (s *Service) Request(ctx context.Context, ownerID, callerID uuid.UUID, amount int) (*Withdrawal, error) {
	if ownerID != callerID {
		return nil, common.NewForbiddenError("not the account owner")
	}
	if amount <= 0 {
		return nil, common.NewBadRequestError("withdrawal amount must be a positive integer", nil)
	}

	withdrawal := &Withdrawal{
		ID:          uuid.New(),
		UserID:      ownerID,
		Amount:      amount,
		Status:      StatusPending,
		RequestedAt: time.Now(),
	}

	if err := s.repo.CreateWithDebit(ctx, withdrawal); err != nil {
		switch {
		case errors.Is(err, ErrInsufficientFunds):
			return nil, common.NewInsufficientFundsError("withdrawal amount exceeds withdrawable credits")
		case errors.Is(err, ErrUserNotFound):
			return nil, common.NewNotFoundError("user not found")
		default:
			return nil, common.NewInternalError("failed to create withdrawal", err)
		}
	}

	logger.WithContext(ctx).Info("withdrawal requested",
		zap.String("withdrawal_id", withdrawal.ID.String()),
		zap.String("user_id", ownerID.String()),
		zap.Int("amount", amount))

	return withdrawal, nil
}

// Process moves a pending withdrawal to processed or rejected.
//
// Rejection does NOT re-credit the debited amount: the funds stay held for
// manual reversal by support, matching how the product has always behaved.
// The warning below exists so operators can find held amounts.
func (s *Service) Process(ctx context.Context, withdrawalID uuid.UUID, target string) (*Withdrawal, error) {
	status := Status(target)
	if status != StatusProcessed && status != StatusRejected {
		return nil, common.NewBadRequestError("status must be processed or rejected", nil)
	}

	withdrawal, err := s.repo.UpdateStatus(ctx, withdrawalID, status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, common.NewNotFoundError("withdrawal not found")
		case errors.Is(err, ErrAlreadyProcessed):
			return nil, common.NewConflictError("withdrawal already processed")
		default:
			return nil, common.NewInternalError("failed to process withdrawal", err)
		}
	}

	if status == StatusRejected {
		logger.WithContext(ctx).Warn("withdrawal rejected, debited amount held for manual reversal",
			zap.String("withdrawal_id", withdrawal.ID.String()),
			zap.String("user_id", withdrawal.UserID.String()),
			zap.Int("amount", withdrawal.Amount))
	} else {
		logger.WithContext(ctx).Info("withdrawal processed",
			zap.String("withdrawal_id", withdrawal.ID.String()),
			zap.String("user_id", withdrawal.UserID.String()),
			zap.Int("amount", withdrawal.Amount))
	}

	return withdrawal, nil
}

// ListForUser returns a user's own withdrawals
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Withdrawal, int64, error) {
	list, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalError("failed to list withdrawals", err)
	}
	return list, total, nil
}

// ListPending returns the admin processing queue in request order
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*Withdrawal, int64, error) {
	list, total, err := s.repo.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalError("failed to list pending withdrawals", err)
	}
	return list, total, nil
}
