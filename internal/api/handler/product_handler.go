package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/radnom/storefront-api/internal/api/metrics"
	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
)

// ProductHandler handles the public catalog endpoints and the admin insert.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        sort  query     string  false  "Sort order"  Enums(price-asc, price-desc, name-asc, name-desc)
// @Success      200   {array}   productResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context(), c.QueryParam("sort"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "product not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Search handles GET /api/products/search.
//
// @Summary      Search the catalog
// @Tags         products
// @Produce      json
// @Param        q          query     string  false  "Free text on name, description or category"
// @Param        category   query     string  false  "Category filter"
// @Param        min_price  query     int     false  "Minimum price (minor units)"
// @Param        max_price  query     int     false  "Maximum price (minor units)"
// @Param        sort       query     string  false  "Sort order"  Enums(price-asc, price-desc, name-asc, name-desc)
// @Success      200        {array}   productResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	filter := ports.ProductFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}
	if v := c.QueryParam("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "min_price must be a non-negative integer"})
		}
		filter.MinPrice = n
	}
	if v := c.QueryParam("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "max_price must be a non-negative integer"})
		}
		filter.MaxPrice = n
	}

	metrics.ProductSearchesTotal.Inc()
	products, err := h.service.Search(c.Request().Context(), filter, c.QueryParam("sort"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Categories handles GET /api/products/categories.
//
// @Summary      List all product categories
// @Tags         products
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: categories})
}

// Create handles POST /api/products (admin only).
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Brand:       req.Brand,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Brand:       p.Brand,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductResponses(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
