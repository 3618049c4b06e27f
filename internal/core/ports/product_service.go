package ports

import (
	"context"

	"github.com/radnom/storefront-api/internal/core/domain"
)

// Sort orders accepted by list/search endpoints.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// CreateProductInput carries the fields for an admin catalog insert.
type CreateProductInput struct {
	Name        string
	Price       int64
	Description string
	Category    string
	ImageURL    string
	Stock       int
	Brand       string
}

type ProductService interface {
	List(ctx context.Context, sort string) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, filter ProductFilter, sort string) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
}
