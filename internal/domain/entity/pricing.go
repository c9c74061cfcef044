package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VolumePricing represents a quantity-bracket price override for a product.
// Brackets are matched by ascending min_quantity; a nil MaxQuantity means
// the bracket is unbounded above.
type VolumePricing struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	MinQuantity     int             `gorm:"not null" json:"min_quantity"`
	MaxQuantity     *int            `json:"max_quantity,omitempty"`
	PriceHT         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ht"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new volume pricing row
func (vp *VolumePricing) BeforeCreate(tx *gorm.DB) error {
	if vp.ID == uuid.Nil {
		vp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VolumePricing model
func (VolumePricing) TableName() string {
	return "volume_pricings"
}

// Matches reports whether the requested quantity falls inside this bracket
func (vp *VolumePricing) Matches(quantity int) bool {
	if quantity < vp.MinQuantity {
		return false
	}
	return vp.MaxQuantity == nil || quantity <= *vp.MaxQuantity
}

// ClientPricing represents a per-client negotiated price for a product,
// valid inside an optional time window.
type ClientPricing struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	PriceHT    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ht"`
	PriceHTT2  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:price_ht_t2" json:"price_ht_t2"`
	ValidFrom  time.Time       `gorm:"not null" json:"valid_from"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client pricing row
func (cp *ClientPricing) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ClientPricing model
func (ClientPricing) TableName() string {
	return "client_pricings"
}

// ValidAt reports whether the negotiated price applies at the given instant
func (cp *ClientPricing) ValidAt(now time.Time) bool {
	if now.Before(cp.ValidFrom) {
		return false
	}
	return cp.ValidUntil == nil || !now.After(*cp.ValidUntil)
}

// PriceHistory is an immutable append-only record of a product price change.
// Rows are never updated or deleted.
type PriceHistory struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"product_id"`
	OldPriceHT decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"old_price_ht"`
	NewPriceHT decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"new_price_ht"`
	ChangeType enum.PriceChangeType `gorm:"size:50;not null" json:"change_type"`
	Reason     string               `gorm:"size:255" json:"reason"`
	ChangedBy  uuid.UUID            `gorm:"type:uuid;not null" json:"changed_by"`
	CreatedAt  time.Time            `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new price history row
func (ph *PriceHistory) BeforeCreate(tx *gorm.DB) error {
	if ph.ID == uuid.Nil {
		ph.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PriceHistory model
func (PriceHistory) TableName() string {
	return "price_histories"
}
