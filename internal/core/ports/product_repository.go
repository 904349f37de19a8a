package ports

import (
	"context"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

// ProductRepository defines the interface for catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// FindAll returns products newest first; isActive=nil returns everything.
	FindAll(ctx context.Context, isActive *bool) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Deactivate soft-deletes a product.
	Deactivate(ctx context.Context, id int64) error
}
