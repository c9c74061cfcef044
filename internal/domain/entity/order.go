package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order represents a confirmed order from a shop, created either directly
// or by converting an accepted quote.
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber    string           `gorm:"size:50;unique;not null" json:"order_number"`
	ShopID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"shop_id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	QuoteID        *uuid.UUID       `gorm:"type:uuid;index" json:"quote_id,omitempty"`
	Status         enum.OrderStatus `gorm:"default:0" json:"status"`
	TotalHT        decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"total_ht"`
	TotalTVA       decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0;column:total_tva" json:"total_tva"`
	TotalTTC       decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0;column:total_ttc" json:"total_ttc"`
	DiscountAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	PromotionCode  *string          `gorm:"size:50" json:"promotion_code,omitempty"`
	DeliveryDate   *time.Time       `json:"delivery_date,omitempty"`
	Notes          *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Shop  Shop        `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	User  User        `gorm:"foreignKey:UserID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item on an order; prices are snapshotted like quote items
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
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
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
