package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primeurdirect/primeur-api/internal/domain/enum"
)

// GetUserID returns the authenticated user ID from the request context,
// or nil for anonymous requests.
func GetUserID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetUserEmail returns the authenticated user's email, or "" when absent.
func GetUserEmail(c *gin.Context) string {
	value, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	email, _ := value.(string)
	return email
}

// GetUserRole returns the authenticated user's role, or "" when absent.
func GetUserRole(c *gin.Context) enum.Role {
	value, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, _ := value.(enum.Role)
	return role
}

// IsAdmin reports whether the request comes from an admin.
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == enum.RoleAdmin
}

// parseTariffTier maps the tier query/body value, defaulting to T1.
func parseTariffTier(s string) enum.TariffTier {
	tier := enum.TariffTier(strings.ToUpper(s))
	if tier.IsValid() {
		return tier
	}
	return enum.TariffTierT1
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
