package ports

import (
	"context"

	"github.com/radnom/storefront-api/internal/core/domain"
)

// CartService defines use-case operations on the authenticated user's cart.
// userID is the resolved identity from the request context, never a value
// supplied by the client.
type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Items(ctx context.Context, userID string) ([]domain.CartItem, error)
	ItemCount(ctx context.Context, userID string) (int, error)
	Total(ctx context.Context, userID string) (int64, error)
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}
