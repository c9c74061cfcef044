package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResolvePriceRequest asks for the effective price of a product
type ResolvePriceRequest struct {
	ProductID string `form:"product_id" binding:"required,uuid"`
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	Quantity  int    `form:"quantity"`
	Tier      string `form:"tier"`
}

// CreateVolumePricingRequest defines a quantity bracket price
type CreateVolumePricingRequest struct {
	ProductID       string          `json:"product_id" binding:"required,uuid"`
	MinQuantity     int             `json:"min_quantity" binding:"required,min=1"`
	MaxQuantity     *int            `json:"max_quantity"`
	PriceHT         decimal.Decimal `json:"price_ht" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// UpdateVolumePricingRequest updates a quantity bracket price
type UpdateVolumePricingRequest struct {
	MinQuantity     *int             `json:"min_quantity"`
	MaxQuantity     *int             `json:"max_quantity"`
	PriceHT         *decimal.Decimal `json:"price_ht"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	IsActive        *bool            `json:"is_active"`
}

// CreateClientPricingRequest defines a client-specific price
type CreateClientPricingRequest struct {
	ProductID  string          `json:"product_id" binding:"required,uuid"`
	UserID     string          `json:"user_id" binding:"required,uuid"`
	PriceHT    decimal.Decimal `json:"price_ht" binding:"required"`
	PriceHTT2  decimal.Decimal `json:"price_ht_t2"`
	ValidFrom  time.Time       `json:"valid_from" binding:"required"`
	ValidUntil *time.Time      `json:"valid_until"`
}

// UpdateClientPricingRequest updates a client-specific price
type UpdateClientPricingRequest struct {
	PriceHT    *decimal.Decimal `json:"price_ht"`
	PriceHTT2  *decimal.Decimal `json:"price_ht_t2"`
	ValidFrom  *time.Time       `json:"valid_from"`
	ValidUntil *time.Time       `json:"valid_until"`
	IsActive   *bool            `json:"is_active"`
}

// BulkPriceUpdateRequest applies one price adjustment to many products
type BulkPriceUpdateRequest struct {
	ProductIDs []string        `json:"product_ids" binding:"required,min=1,dive,uuid"`
	Action     string          `json:"action" binding:"required,oneof=increase decrease set"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	ValueType  string          `json:"value_type" binding:"required,oneof=percent absolute"`
	Reason     string          `json:"reason" binding:"required"`
}
