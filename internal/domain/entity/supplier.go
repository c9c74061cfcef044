package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Supplier represents a produce supplier
type Supplier struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Email       *string         `gorm:"size:255" json:"email,omitempty"`
	Phone       *string         `gorm:"size:50" json:"phone,omitempty"`
	Address     *string         `gorm:"type:text" json:"address,omitempty"`
	SIRET       *string         `gorm:"size:20;column:siret" json:"siret,omitempty"`
	ContactName *string         `gorm:"size:255" json:"contact_name,omitempty"`
	Rating      decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Products    []SupplierProduct    `gorm:"foreignKey:SupplierID" json:"products,omitempty"`
	Orders      []SupplierOrder      `gorm:"foreignKey:SupplierID" json:"-"`
	Evaluations []SupplierEvaluation `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierProduct links a catalog product to a supplier with its purchase price
type SupplierProduct struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	SupplierRef     *string         `gorm:"size:100" json:"supplier_ref,omitempty"`
	PurchasePriceHT decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price_ht"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new supplier product
func (sp *SupplierProduct) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierProduct model
func (SupplierProduct) TableName() string {
	return "supplier_products"
}

// SupplierOrder is a purchase order sent to a supplier. Totals are computed
// at a flat 20% VAT rate on purchases.
type SupplierOrder struct {
	ID           uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID   uuid.UUID                `gorm:"type:uuid;not null;index" json:"supplier_id"`
	OrderNumber  string                   `gorm:"size:50;unique;not null" json:"order_number"`
	Status       enum.SupplierOrderStatus `gorm:"default:0" json:"status"`
	TotalHT      decimal.Decimal          `gorm:"type:decimal(12,2);not null;default:0" json:"total_ht"`
	TotalTTC     decimal.Decimal          `gorm:"type:decimal(12,2);not null;default:0;column:total_ttc" json:"total_ttc"`
	ExpectedDate *time.Time               `json:"expected_date,omitempty"`
	CreatedByID  uuid.UUID                `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
	DeletedAt    gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier            `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []SupplierOrderItem `gorm:"foreignKey:SupplierOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new supplier order
func (so *SupplierOrder) BeforeCreate(tx *gorm.DB) error {
	if so.ID == uuid.Nil {
		so.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierOrder model
func (SupplierOrder) TableName() string {
	return "supplier_orders"
}

// SupplierOrderItem is a line item on a supplier purchase order
type SupplierOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SupplierOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_order_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPriceHT     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price_ht"`
	TotalHT         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_ht"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	SupplierOrder SupplierOrder `gorm:"foreignKey:SupplierOrderID" json:"-"`
	Product       Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new supplier order item
func (soi *SupplierOrderItem) BeforeCreate(tx *gorm.DB) error {
	if soi.ID == uuid.Nil {
		soi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierOrderItem model
func (SupplierOrderItem) TableName() string {
	return "supplier_order_items"
}

// SupplierEvaluation is a rating left after a delivery
type SupplierEvaluation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier evaluation
func (se *SupplierEvaluation) BeforeCreate(tx *gorm.DB) error {
	if se.ID == uuid.Nil {
		se.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierEvaluation model
func (SupplierEvaluation) TableName() string {
	return "supplier_evaluations"
}
