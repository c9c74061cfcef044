package request

import "time"

// QuoteItemRequest represents one line of a quote
type QuoteItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateQuoteRequest represents a quote creation request
type CreateQuoteRequest struct {
	ShopID     string             `json:"shop_id" binding:"required,uuid"`
	ValidUntil time.Time          `json:"valid_until" binding:"required"`
	Tier       string             `json:"tier"`
	Notes      *string            `json:"notes"`
	Items      []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateQuoteRequest represents a quote update request
type UpdateQuoteRequest struct {
	ValidUntil *time.Time         `json:"valid_until"`
	Tier       string             `json:"tier"`
	Notes      *string            `json:"notes"`
	Items      []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

// QuoteFilterRequest represents quote list query parameters
type QuoteFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	ShopID    string `form:"shop_id"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
