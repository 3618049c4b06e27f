package ports

import (
	"context"

	"github.com/radnom/storefront-api/internal/core/domain"
)

// ProductFilter carries the catalog search parameters.
// Zero values mean "no constraint".
type ProductFilter struct {
	Query    string // case-insensitive match on name, description or category
	Category string // exact category, case-insensitive
	MinPrice int64
	MaxPrice int64
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
