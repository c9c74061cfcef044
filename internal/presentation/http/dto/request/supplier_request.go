package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	SIRET       *string `json:"siret"`
	ContactName *string `json:"contact_name"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	SIRET       *string `json:"siret"`
	ContactName *string `json:"contact_name"`
	IsActive    *bool   `json:"is_active"`
}

// AddSupplierProductRequest links a product to a supplier catalog
type AddSupplierProductRequest struct {
	ProductID       string          `json:"product_id" binding:"required,uuid"`
	SupplierRef     *string         `json:"supplier_ref"`
	PurchasePriceHT decimal.Decimal `json:"purchase_price_ht" binding:"required"`
}

// SupplierOrderItemRequest represents one line of a purchase order
type SupplierOrderItemRequest struct {
	ProductID   string          `json:"product_id" binding:"required,uuid"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPriceHT decimal.Decimal `json:"unit_price_ht" binding:"required"`
}

// CreateSupplierOrderRequest represents a purchase order creation request
type CreateSupplierOrderRequest struct {
	ExpectedDate *time.Time                 `json:"expected_date"`
	Items        []SupplierOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// EvaluateSupplierRequest rates a supplier
type EvaluateSupplierRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}
