package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

// CartHandler handles the bearer-protected cart endpoints. The cart is
// always the authenticated user's own; no cart id ever comes from the client.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /api/cart.
//
// @Summary      Get the current user's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	cart, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Items handles GET /api/cart/items.
//
// @Summary      List cart items
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   cartItemResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/cart/items [get]
func (h *CartHandler) Items(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.service.Items(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartItemResponses(items))
}

// Count handles GET /api/cart/count.
//
// @Summary      Get the total quantity of items in the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartCountResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/cart/count [get]
func (h *CartHandler) Count(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	count, err := h.service.ItemCount(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartCountResponse{Count: count})
}

// Total handles GET /api/cart/total.
//
// @Summary      Get the cart total price
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartTotalResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/cart/total [get]
func (h *CartHandler) Total(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	total, err := h.service.Total(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartTotalResponse{Total: total})
}

// Add handles POST /api/cart/add.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	cart, err := h.service.Add(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Update handles PUT /api/cart/update.
//
// @Summary      Update the quantity of a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateQuantityRequest  true  "Product and new quantity (0 removes)"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/cart/update [put]
func (h *CartHandler) Update(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	cart, err := h.service.UpdateQuantity(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Remove handles DELETE /api/cart/remove?product_id=x.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  query     string  true  "Product id"
// @Success      200         {object}  cartResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/cart/remove [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	productID := c.QueryParam("product_id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "product_id is required"})
	}

	cart, err := h.service.Remove(c.Request().Context(), userID, productID)
	if err != nil {
		return mapCartError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /api/cart/clear.
//
// @Summary      Remove every item from the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /api/cart/clear [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Clear(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func mapCartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
	case errors.Is(err, domain.ErrItemNotInCart):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found in cart"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid quantity"})
	case errors.Is(err, domain.ErrOutOfStock):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "insufficient stock"})
	default:
		return err
	}
}

func toCartResponse(cart *domain.Cart) cartResponse {
	return cartResponse{
		ID:         cart.ID,
		Items:      toCartItemResponses(cart.Items),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
		UpdatedAt:  cart.UpdatedAt,
	}
}

func toCartItemResponses(items []domain.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return out
}
