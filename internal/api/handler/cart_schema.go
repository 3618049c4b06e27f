package handler

import "time"

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	// Quantity zero removes the line.
	Quantity int `json:"quantity" validate:"gte=0"`
}

type cartItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

type cartResponse struct {
	ID         string             `json:"id"`
	Items      []cartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice int64              `json:"total_price"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type cartCountResponse struct {
	Count int `json:"count"`
}

type cartTotalResponse struct {
	Total int64 `json:"total"`
}
