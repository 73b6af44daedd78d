package donations

import (
	"context"

	"github.com/google/uuid"

	"github.com/sahana-dev/daansetu/internal/users"
)

// RepositoryInterface defines the interface for donation repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Donation, error)
	Approve(ctx context.Context, id uuid.UUID) (*Donation, *users.User, error)
	Reject(ctx context.Context, id uuid.UUID) (*Donation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Donation, int64, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Donation, int64, error)
}

// HistoryInvalidator drops a user's cached fraud history after a new
// submission is recorded
type HistoryInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}
