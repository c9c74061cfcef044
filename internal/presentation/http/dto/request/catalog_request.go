package request

import "github.com/shopspring/decimal"

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CreateSubCategoryRequest represents a subcategory creation request
type CreateSubCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required,min=1,max=255"`
}

// UpdateSubCategoryRequest represents a subcategory update request
type UpdateSubCategoryRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=255"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"category_id" binding:"omitempty,uuid"`
	SubCategoryID *string          `json:"sub_category_id" binding:"omitempty,uuid"`
	PriceHT       decimal.Decimal  `json:"price_ht" binding:"required"`
	PriceHTT2     decimal.Decimal  `json:"price_ht_t2"`
	TVARate       decimal.Decimal  `json:"tva_rate"`
	Stock         int              `json:"stock" binding:"min=0"`
	StockAlert    int              `json:"stock_alert" binding:"min=0"`
	Unit          string           `json:"unit" binding:"required"`
	Origin        *string          `json:"origin"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"category_id" binding:"omitempty,uuid"`
	SubCategoryID *string          `json:"sub_category_id" binding:"omitempty,uuid"`
	PriceHT       *decimal.Decimal `json:"price_ht"`
	PriceHTT2     *decimal.Decimal `json:"price_ht_t2"`
	TVARate       *decimal.Decimal `json:"tva_rate"`
	Stock         *int             `json:"stock"`
	StockAlert    *int             `json:"stock_alert"`
	Unit          *string          `json:"unit"`
	Origin        *string          `json:"origin"`
	IsActive      *bool            `json:"is_active"`
	PriceReason   string           `json:"price_reason"`
}

// AdjustStockRequest represents a signed stock adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductFilterRequest represents product list query parameters
type ProductFilterRequest struct {
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Search        string `form:"search"`
	CategoryID    string `form:"category_id"`
	SubCategoryID string `form:"sub_category_id"`
	LowStock      bool   `form:"low_stock"`
	ActiveOnly    bool   `form:"active_only"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
}
