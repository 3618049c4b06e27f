package handler

import "time"

type createProductRequest struct {
	Name        string `json:"name"        validate:"required"`
	Price       int64  `json:"price"       validate:"required,gt=0"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock"       validate:"gte=0"`
	Brand       string `json:"brand"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stock       int       `json:"stock"`
	Brand       string    `json:"brand,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}
