package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
)

// ProductService implements the catalog operations. All mutations are
// admin-gated at the transport layer; this service assumes authorization
// already happened.
type ProductService struct {
	repo    ports.ProductRepository
	storage ports.ImageStorage
	log     zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, storage ports.ImageStorage, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, storage: storage, log: log}
}

func (s *ProductService) List(ctx context.Context, isActive *bool) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx, isActive)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductCreateInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		PointsCost:  input.PointsCost,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, input ports.ProductUpdateInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PointsCost != nil {
		product.PointsCost = *input.PointsCost
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("product_id", id).Msg("product deactivated")
	return nil
}

func (s *ProductService) AttachImage(ctx context.Context, id int64, content io.Reader, contentType string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("products/%d/%s.%s",
		id, time.Now().UTC().Format("20060102_150405"), imageExtension(contentType))

	url, err := s.storage.Upload(ctx, key, content, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	previous := product.ImageURL
	product.ImageURL = url
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	// Best effort: losing an orphaned object is preferable to failing the
	// request after the new image is already live.
	if previous != "" && previous != url {
		if err := s.storage.Delete(ctx, previous); err != nil {
			s.log.Warn().Err(err).Str("url", previous).Msg("previous image not deleted")
		}
	}

	s.log.Info().Int64("product_id", id).Str("url", url).Msg("product image updated")
	return updated, nil
}

func imageExtension(contentType string) string {
	ext := strings.TrimPrefix(contentType, "image/")
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}
