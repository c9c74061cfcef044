package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote represents a commercial quote issued to a shop. Monetary figures
// are frozen at creation time: later catalog price changes never alter an
// existing quote.
type Quote struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	QuoteNumber        string           `gorm:"size:50;unique;not null" json:"quote_number"`
	ShopID             uuid.UUID        `gorm:"type:uuid;not null;index" json:"shop_id"`
	CreatedByID        uuid.UUID        `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	Status             enum.QuoteStatus `gorm:"default:0" json:"status"`
	TotalHT            decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"total_ht"`
	TotalTVA           decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0;column:total_tva" json:"total_tva"`
	TotalTTC           decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0;column:total_ttc" json:"total_ttc"`
	ValidUntil         time.Time        `gorm:"not null" json:"valid_until"`
	ConvertedToOrderID *uuid.UUID       `gorm:"type:uuid" json:"converted_to_order_id,omitempty"`
	Notes              *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Shop      Shop        `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	CreatedBy User        `gorm:"foreignKey:CreatedByID" json:"-"`
	Items     []QuoteItem `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// IsExpired reports whether validUntil has passed
func (q *Quote) IsExpired(now time.Time) bool {
	return q.ValidUntil.Before(now)
}

// QuoteItem is a line item snapshot: product name, unit price and totals are
// copied at creation time and never re-read from the catalog.
type QuoteItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"quote_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Unit        string          `gorm:"size:20" json:"unit"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	PriceHT     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ht"`
	TVARate     decimal.Decimal `gorm:"type:decimal(5,2);not null;column:tva_rate" json:"tva_rate"`
	TotalHT     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_ht"`
	TotalTVA    decimal.Decimal `gorm:"type:decimal(12,2);not null;column:total_tva" json:"total_tva"`
	TotalTTC    decimal.Decimal `gorm:"type:decimal(12,2);not null;column:total_ttc" json:"total_ttc"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Quote   Quote   `gorm:"foreignKey:QuoteID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}
