package withdrawals

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the interface for withdrawal repository operations
type RepositoryInterface interface {
	CreateWithDebit(ctx context.Context, withdrawal *Withdrawal) error
	GetByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Withdrawal, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Withdrawal, int64, error)
	ListPending(ctx context.Context, limit, offset int) ([]*Withdrawal, int64, error)
}
