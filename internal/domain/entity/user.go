package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents an account able to authenticate against the API
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName     string         `gorm:"size:100;not null" json:"first_name"`
	LastName      string         `gorm:"size:100;not null" json:"last_name"`
	Email         string         `gorm:"size:255;unique;not null" json:"email"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Role          enum.Role      `gorm:"size:50;default:'client'" json:"role"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	IsApproved    bool           `gorm:"default:false" json:"is_approved"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop *Shop `gorm:"foreignKey:UserID" json:"shop,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Shop represents a client shop ordering from the distributor
type Shop struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	SIRET      *string        `gorm:"size:20;column:siret" json:"siret,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	City       *string        `gorm:"size:100" json:"city,omitempty"`
	PostalCode *string        `gorm:"size:20" json:"postal_code,omitempty"`
	Phone      *string        `gorm:"size:50" json:"phone,omitempty"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shop
func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}
