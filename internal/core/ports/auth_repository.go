package ports

import (
	"context"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
// Username lookups are case-insensitive; uniqueness is enforced by the store.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
