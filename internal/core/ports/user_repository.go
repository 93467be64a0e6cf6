package ports

import (
	"context"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence for the identity directory.
type UserRepository interface {
	// Create inserts a new user and returns it with the store-assigned id.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a batch of user ids, keyed by id. Missing ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}
