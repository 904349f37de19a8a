package handler

import (
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
)

type productCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
	PointsCost  int64  `json:"points_cost" validate:"required,gt=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=500"`
}

func (r *productCreateRequest) toInput() ports.ProductCreateInput {
	return ports.ProductCreateInput{
		Name:        r.Name,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		ImageURL:    r.ImageURL,
	}
}

// productUpdateRequest is a partial update; omitted fields stay unchanged.
type productUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	PointsCost  *int64  `json:"points_cost" validate:"omitempty,gt=0"`
	IsActive    *bool   `json:"is_active"`
}

func (r *productUpdateRequest) toInput() ports.ProductUpdateInput {
	return ports.ProductUpdateInput{
		Name:        r.Name,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		IsActive:    r.IsActive,
	}
}

type productListResponse struct {
	Products []*domain.Product `json:"products"`
}

type imageUploadResponse struct {
	ImageURL string `json:"image_url"`
}
