package ports

import (
	"context"

	"github.com/radnom/storefront-api/internal/core/domain"
)

// CartRepository defines persistence operations for carts. One cart exists
// per user (unique index on user_id); Save replaces the full item list.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
}
