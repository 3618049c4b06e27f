package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	apimw "github.com/radnom/storefront-api/internal/api/middleware"
	"github.com/radnom/storefront-api/internal/core/domain"
)

type stubCartService struct {
	getFn    func(ctx context.Context, userID string) (*domain.Cart, error)
	addFn    func(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	updateFn func(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	removeFn func(ctx context.Context, userID, productID string) (*domain.Cart, error)
	clearFn  func(ctx context.Context, userID string) error
}

func (s *stubCartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.getFn(ctx, userID)
}

func (s *stubCartService) Items(ctx context.Context, userID string) ([]domain.CartItem, error) {
	cart, err := s.getFn(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *stubCartService) ItemCount(ctx context.Context, userID string) (int, error) {
	cart, err := s.getFn(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cart.TotalItems(), nil
}

func (s *stubCartService) Total(ctx context.Context, userID string) (int64, error) {
	cart, err := s.getFn(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cart.TotalPrice(), nil
}

func (s *stubCartService) Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	return s.addFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	return s.updateFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) Remove(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.removeFn(ctx, userID, productID)
}

func (s *stubCartService) Clear(ctx context.Context, userID string) error {
	return s.clearFn(ctx, userID)
}

func sampleCart() *domain.Cart {
	return &domain.Cart{
		ID:     "cart_u1",
		UserID: "u1",
		Items: []domain.CartItem{
			{ProductID: "p1", ProductName: "Keyboard", UnitPrice: 4999, Quantity: 2},
			{ProductID: "p2", ProductName: "Mouse", UnitPrice: 1999, Quantity: 1},
		},
	}
}

func newCartContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(apimw.CtxUserID, "u1")
	c.Set(apimw.CtxEmail, "alice@example.com")
	return c, rec
}

func TestCartHandler_Get(t *testing.T) {
	stub := &stubCartService{
		getFn: func(_ context.Context, userID string) (*domain.Cart, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return sampleCart(), nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newCartContext(t, http.MethodGet, "/api/cart", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total_items"] != float64(3) {
		t.Fatalf("expected total_items 3, got %v", resp["total_items"])
	}
	if resp["total_price"] != float64(2*4999+1999) {
		t.Fatalf("unexpected total_price: %v", resp["total_price"])
	}
	items, ok := resp["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", resp["items"])
	}
}

func TestCartHandler_Get_Unauthenticated(t *testing.T) {
	handler := NewCartHandler(&stubCartService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestCartHandler_Count(t *testing.T) {
	stub := &stubCartService{
		getFn: func(context.Context, string) (*domain.Cart, error) {
			return sampleCart(), nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newCartContext(t, http.MethodGet, "/api/cart/count", "")
	if err := handler.Count(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(3) {
		t.Fatalf("expected count 3, got %v", resp["count"])
	}
}

func TestCartHandler_Add(t *testing.T) {
	stub := &stubCartService{
		addFn: func(_ context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
			if userID != "u1" || productID != "p1" || quantity != 2 {
				t.Fatalf("unexpected args: %s %s %d", userID, productID, quantity)
			}
			return sampleCart(), nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newCartContext(t, http.MethodPost, "/api/cart/add", `{"product_id":"p1","quantity":2}`)
	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_Add_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown product", domain.ErrProductNotFound, http.StatusNotFound},
		{"out of stock", domain.ErrOutOfStock, http.StatusUnprocessableEntity},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubCartService{
				addFn: func(context.Context, string, string, int) (*domain.Cart, error) {
					return nil, tc.err
				},
			}
			handler := NewCartHandler(stub)

			c, rec := newCartContext(t, http.MethodPost, "/api/cart/add", `{"product_id":"p1","quantity":2}`)
			_ = handler.Add(c)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestCartHandler_Add_RejectsZeroQuantity(t *testing.T) {
	stub := &stubCartService{
		addFn: func(context.Context, string, string, int) (*domain.Cart, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newCartContext(t, http.MethodPost, "/api/cart/add", `{"product_id":"p1","quantity":0}`)
	_ = handler.Add(c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCartHandler_Update(t *testing.T) {
	stub := &stubCartService{
		updateFn: func(_ context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
			if productID != "p1" || quantity != 0 {
				t.Fatalf("unexpected args: %s %d", productID, quantity)
			}
			return &domain.Cart{ID: "cart_u1", UserID: "u1", Items: []domain.CartItem{}}, nil
		},
	}
	handler := NewCartHandler(stub)

	// quantity zero removes the line
	c, rec := newCartContext(t, http.MethodPut, "/api/cart/update", `{"product_id":"p1","quantity":0}`)
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_Remove(t *testing.T) {
	stub := &stubCartService{
		removeFn: func(_ context.Context, userID, productID string) (*domain.Cart, error) {
			if productID != "p1" {
				t.Fatalf("unexpected product id: %s", productID)
			}
			return &domain.Cart{ID: "cart_u1", UserID: "u1", Items: []domain.CartItem{}}, nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newCartContext(t, http.MethodDelete, "/api/cart/remove?product_id=p1", "")
	if err := handler.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_Remove_MissingParam(t *testing.T) {
	handler := NewCartHandler(&stubCartService{})

	c, rec := newCartContext(t, http.MethodDelete, "/api/cart/remove", "")
	_ = handler.Remove(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartHandler_Clear(t *testing.T) {
	cleared := false
	stub := &stubCartService{
		clearFn: func(_ context.Context, userID string) error {
			cleared = true
			return nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newCartContext(t, http.MethodDelete, "/api/cart/clear", "")
	if err := handler.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !cleared {
		t.Fatalf("clear not invoked")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
