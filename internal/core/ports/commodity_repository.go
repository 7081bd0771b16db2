package ports

import (
	"context"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

// CommodityFilter selects commodities by equality or membership. Zero values
// are ignored; an empty filter matches everything.
type CommodityFilter struct {
	BusinessID string // business == BusinessID
	CustomerID string // CustomerID in customers
	Title      string // exact title match
}

// CommodityRepository defines persistence operations for commodities. Every
// read resolves the owning business's username and email.
type CommodityRepository interface {
	Create(ctx context.Context, c *domain.Commodity) (*domain.Commodity, error)
	FindByID(ctx context.Context, id string) (*domain.Commodity, error)
	List(ctx context.Context, filter CommodityFilter) ([]*domain.Commodity, error)
	// Update applies patch only when the commodity is still owned by ownerID.
	Update(ctx context.Context, id, ownerID string, patch domain.CommodityPatch) (*domain.Commodity, error)
	// Delete removes the commodity only when it is still owned by ownerID.
	Delete(ctx context.Context, id, ownerID string) error
	// AppendCustomer atomically pushes customerID onto customers.
	AppendCustomer(ctx context.Context, id, customerID string) error
}
