package domain

import "time"

// Product is a catalog item redeemable with points. Products are never hard
// deleted; IsActive=false hides them from the storefront.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PointsCost  int64     `json:"points_cost"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
