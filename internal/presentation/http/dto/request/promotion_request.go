package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePromotionRequest represents a promotion creation request
type CreatePromotionRequest struct {
	Code        string           `json:"code" binding:"required,min=3,max=50"`
	Description *string          `json:"description"`
	Type        string           `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING"`
	Value       decimal.Decimal  `json:"value" binding:"required"`
	MinAmount   *decimal.Decimal `json:"min_amount"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	ValidFrom   time.Time        `json:"valid_from" binding:"required"`
	ValidTo     time.Time        `json:"valid_to" binding:"required"`
	UsageLimit  *int             `json:"usage_limit"`
	AppliesTo   string           `json:"applies_to" binding:"omitempty,oneof=ENTIRE_ORDER SPECIFIC_PRODUCTS CATEGORY"`
	ProductIDs  []string         `json:"product_ids" binding:"omitempty,dive,uuid"`
	CategoryID  *string          `json:"category_id" binding:"omitempty,uuid"`
}

// UpdatePromotionRequest represents a promotion update request
type UpdatePromotionRequest struct {
	Description *string          `json:"description"`
	Value       *decimal.Decimal `json:"value"`
	MinAmount   *decimal.Decimal `json:"min_amount"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	ValidFrom   *time.Time       `json:"valid_from"`
	ValidTo     *time.Time       `json:"valid_to"`
	UsageLimit  *int             `json:"usage_limit"`
	IsActive    *bool            `json:"is_active"`
}

// ValidatePromotionRequest checks a code against an order amount
type ValidatePromotionRequest struct {
	Code        string          `json:"code" binding:"required"`
	OrderAmount decimal.Decimal `json:"order_amount" binding:"required"`
}
