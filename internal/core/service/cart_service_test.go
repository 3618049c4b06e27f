package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

type stubCartRepo struct {
	carts map[string]*domain.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *stubCartRepo) FindByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	if cart, ok := r.carts[userID]; ok {
		return cart, nil
	}
	return nil, domain.ErrCartNotFound
}

func (r *stubCartRepo) Create(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	cart.ID = "cart_" + cart.UserID
	r.carts[cart.UserID] = cart
	return cart, nil
}

func (r *stubCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.carts[cart.UserID] = cart
	return nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = "prod_" + p.Name
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Search(ctx context.Context, _ ports.ProductFilter) ([]*domain.Product, error) {
	return r.List(ctx)
}

func (r *stubProductRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func newCartFixture() (*CartService, *stubCartRepo) {
	products := newStubProductRepo(
		&domain.Product{ID: "p1", Name: "Keyboard", Price: 4999, Stock: 10},
		&domain.Product{ID: "p2", Name: "Mouse", Price: 1999, Stock: 2},
		&domain.Product{ID: "p3", Name: "Poster", Price: 500, Stock: 0},
	)
	carts := newStubCartRepo()
	return NewCartService(carts, products, zerolog.Nop()), carts
}

func TestCartService_GetCreatesEmptyCart(t *testing.T) {
	svc, repo := newCartFixture()

	cart, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if _, ok := repo.carts["u1"]; !ok {
		t.Fatalf("expected cart to be persisted")
	}
}

func TestCartService_AddMergesLines(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", "p1", 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := svc.Add(ctx, "u1", "p1", 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].ProductName != "Keyboard" || cart.Items[0].UnitPrice != 4999 {
		t.Fatalf("expected product snapshot on line, got %+v", cart.Items[0])
	}
	if cart.TotalItems() != 5 {
		t.Fatalf("expected total items 5, got %d", cart.TotalItems())
	}
	if cart.TotalPrice() != 5*4999 {
		t.Fatalf("expected total price %d, got %d", 5*4999, cart.TotalPrice())
	}
}

func TestCartService_AddValidation(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", "p1", 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "p2", 3); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestCartService_AddZeroStockUnlimited(t *testing.T) {
	svc, _ := newCartFixture()

	// a zero stock value means the catalog does not track stock
	if _, err := svc.Add(context.Background(), "u1", "p3", 50); err != nil {
		t.Fatalf("expected add to succeed for untracked stock, got %v", err)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", "p1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart, err := svc.UpdateQuantity(ctx, "u1", "p1", 7)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", cart.Items[0].Quantity)
	}

	// zero removes the line
	cart, err = svc.UpdateQuantity(ctx, "u1", "p1", 0)
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected line removed, got %d items", len(cart.Items))
	}

	if _, err := svc.UpdateQuantity(ctx, "u1", "p1", 1); !errors.Is(err, domain.ErrItemNotInCart) {
		t.Fatalf("expected ErrItemNotInCart, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "u1", "p1", -1); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCartService_Remove(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", "p1", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err := svc.Remove(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after remove")
	}
	if _, err := svc.Remove(ctx, "u1", "p1"); !errors.Is(err, domain.ErrItemNotInCart) {
		t.Fatalf("expected ErrItemNotInCart, got %v", err)
	}
}

func TestCartService_Clear(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", "p1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "p2", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	count, err := svc.ItemCount(ctx, "u1")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart, got %d items", count)
	}
}

func TestCartService_IsolatedPerUser(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "u1", "p1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	other, err := svc.Get(ctx, "u2")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(other.Items) != 0 {
		t.Fatalf("expected u2 cart to be empty, got %d items", len(other.Items))
	}
}
