package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Return represents a merchandise return filed by a shop against an order
type Return struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ReturnNumber string            `gorm:"size:50;unique;not null" json:"return_number"`
	OrderID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	ShopID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	Status       enum.ReturnStatus `gorm:"default:0" json:"status"`
	PhotoPath    *string           `gorm:"size:500" json:"photo_path,omitempty"`
	DecisionNote *string           `gorm:"type:text" json:"decision_note,omitempty"`
	DecidedByID  *uuid.UUID        `gorm:"type:uuid;column:decided_by" json:"decided_by,omitempty"`
	DecidedAt    *time.Time        `json:"decided_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Order      Order        `gorm:"foreignKey:OrderID" json:"-"`
	Shop       Shop         `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	Items      []ReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
	CreditNote *CreditNote  `gorm:"foreignKey:ReturnID" json:"credit_note,omitempty"`
}

// BeforeCreate generates a UUID before creating a new return
func (r *Return) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Return model
func (Return) TableName() string {
	return "returns"
}

// TotalAmount sums item quantity times unit price over all items
func (r *Return) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.PriceHT.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ReturnItem is a returned line with its own reason and quantity
type ReturnItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	PriceHT   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ht"`
	Reason    string          `gorm:"size:255;not null" json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Return  Return  `gorm:"foreignKey:ReturnID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new return item
func (ri *ReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnItem model
func (ReturnItem) TableName() string {
	return "return_items"
}

// CreditNote is issued when a return is approved with compensation
type CreditNote struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"return_id"`
	CreditNumber string          `gorm:"size:50;unique;not null" json:"credit_number"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	IssuedAt     time.Time       `gorm:"not null" json:"issued_at"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relationships
	Return Return `gorm:"foreignKey:ReturnID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new credit note
func (cn *CreditNote) BeforeCreate(tx *gorm.DB) error {
	if cn.ID == uuid.Nil {
		cn.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditNote model
func (CreditNote) TableName() string {
	return "credit_notes"
}
