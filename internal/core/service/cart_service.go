package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

// CartService implements the per-user cart use cases. All methods operate on
// the authenticated user's cart, creating it lazily on first access.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.getOrCreate(ctx, userID)
}

func (s *CartService) Items(ctx context.Context, userID string) ([]domain.CartItem, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *CartService) ItemCount(ctx context.Context, userID string) (int, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cart.TotalItems(), nil
}

func (s *CartService) Total(ctx context.Context, userID string) (int64, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cart.TotalPrice(), nil
}

// Add puts quantity units of a product into the cart, merging with an
// existing line for the same product. Stock is a best-effort guard against
// ordering more than the catalog holds.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	newQty := quantity
	if item := cart.FindItem(productID); item != nil {
		newQty += item.Quantity
	}
	if product.Stock > 0 && newQty > product.Stock {
		return nil, domain.ErrOutOfStock
	}

	if item := cart.FindItem(productID); item != nil {
		item.Quantity = newQty
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    quantity,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("product_id", productID).Int("quantity", quantity).Msg("product added to cart")
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line; zero removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		cart.RemoveItem(productID)
		if err := s.save(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	item := cart.FindItem(productID)
	if item == nil {
		return nil, domain.ErrItemNotInCart
	}
	item.Quantity = quantity

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(productID) {
		return nil, domain.ErrItemNotInCart
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("product_id", productID).Msg("product removed from cart")
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	cart.Clear()
	return s.save(ctx, cart)
}

func (s *CartService) getOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.carts.Create(ctx, &domain.Cart{
		UserID:    userID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user_id", userID).Msg("created new cart")
	return created, nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	return s.carts.Save(ctx, cart)
}
