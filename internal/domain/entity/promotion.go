package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Promotion represents a discount code redeemable against an order
type Promotion struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Code        string              `gorm:"size:50;unique;not null" json:"code"`
	Description *string             `gorm:"type:text" json:"description,omitempty"`
	Type        enum.PromotionType  `gorm:"size:50;not null" json:"type"`
	Value       decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"value"`
	MinAmount   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"min_amount"`
	MaxDiscount decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"max_discount"`
	ValidFrom   time.Time           `gorm:"not null" json:"valid_from"`
	ValidTo     time.Time           `gorm:"not null" json:"valid_to"`
	UsageLimit  *int                `json:"usage_limit,omitempty"`
	UsageCount  int                 `gorm:"default:0" json:"usage_count"`
	AppliesTo   enum.PromotionScope `gorm:"size:50;default:'ENTIRE_ORDER'" json:"applies_to"`
	ProductIDs  []uuid.UUID         `gorm:"serializer:json" json:"product_ids,omitempty"`
	CategoryID  *uuid.UUID          `gorm:"type:uuid" json:"category_id,omitempty"`
	IsActive    bool                `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new promotion
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Promotion model
func (Promotion) TableName() string {
	return "promotions"
}

// InWindow reports whether the promotion is inside its validity window
func (p *Promotion) InWindow(now time.Time) bool {
	return !now.Before(p.ValidFrom) && !now.After(p.ValidTo)
}

// UsageExhausted reports whether the usage limit has been reached
func (p *Promotion) UsageExhausted() bool {
	return p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit
}
