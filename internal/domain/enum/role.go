package enum

import (
	"database/sql/driver"
)

// Role represents a user role in the distribution workflow
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleClient      Role = "client"
	RolePreparateur Role = "preparateur"
	RoleLivreur     Role = "livreur"
	RoleCommercial  Role = "commercial"
	RoleStock       Role = "stock"
	RoleFinance     Role = "finance"
)

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleClient, RolePreparateur, RoleLivreur, RoleCommercial, RoleStock, RoleFinance:
		return true
	}
	return false
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleClient
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	}
	return nil
}
