package ports

import (
	"context"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

// CreateCommodityInput carries the fields of a new listing.
type CreateCommodityInput struct {
	Title       string
	Price       float64
	Description string
}

// CommodityService defines use-case operations for commodities. Mutations
// take the authenticated principal and consult the access policy.
type CommodityService interface {
	ListAll(ctx context.Context) ([]*domain.Commodity, error)
	FindByBusiness(ctx context.Context, businessID string) ([]*domain.Commodity, error)
	FindByCustomer(ctx context.Context, customerID string) ([]*domain.Commodity, error)
	FindByTitle(ctx context.Context, title string) ([]*domain.Commodity, error)
	FindByID(ctx context.Context, id string) (*domain.Commodity, error)

	Create(ctx context.Context, p domain.Principal, input CreateCommodityInput) (*domain.Commodity, error)
	Update(ctx context.Context, p domain.Principal, id string, patch domain.CommodityPatch) (*domain.Commodity, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	Enroll(ctx context.Context, p domain.Principal, id string) error
}
