package request

// CreateShopRequest creates a shop together with its owning client account
type CreateShopRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	SIRET      *string `json:"siret"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	Phone      *string `json:"phone"`

	FirstName string `json:"first_name" binding:"required,min=2,max=255"`
	LastName  string `json:"last_name" binding:"required,min=2,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// UpdateShopRequest represents a shop update request
type UpdateShopRequest struct {
	Name       *string `json:"name"`
	SIRET      *string `json:"siret"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	Phone      *string `json:"phone"`
	IsActive   *bool   `json:"is_active"`
}
