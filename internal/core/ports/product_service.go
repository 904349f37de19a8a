package ports

import (
	"context"
	"io"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

// ProductCreateInput captures the fields accepted when creating a product.
type ProductCreateInput struct {
	Name        string
	Description string
	PointsCost  int64
	ImageURL    string
}

// ProductUpdateInput carries a partial update; nil fields are left unchanged.
type ProductUpdateInput struct {
	Name        *string
	Description *string
	PointsCost  *int64
	IsActive    *bool
}

type ProductService interface {
	List(ctx context.Context, isActive *bool) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input ProductCreateInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductUpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	// AttachImage stores the image in object storage and records its URL on
	// the product, replacing (and best-effort deleting) any previous image.
	AttachImage(ctx context.Context, id int64, content io.Reader, contentType string) (*domain.Product, error)
}

// ImageStorage abstracts the object store holding product images.
type ImageStorage interface {
	Upload(ctx context.Context, key string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
