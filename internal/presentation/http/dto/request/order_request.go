package request

import "time"

// OrderItemRequest represents one line of an order
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents a direct order placement request
type CreateOrderRequest struct {
	ShopID        string             `json:"shop_id" binding:"required,uuid"`
	Tier          string             `json:"tier"`
	PromotionCode *string            `json:"promotion_code"`
	DeliveryDate  *time.Time         `json:"delivery_date"`
	Notes         *string            `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order through its pipeline
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderFilterRequest represents order list query parameters
type OrderFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	ShopID    string `form:"shop_id"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
