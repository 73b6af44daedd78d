package users

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the interface for user repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
