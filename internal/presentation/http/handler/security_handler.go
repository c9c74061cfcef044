package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/dto/response"
)

// SecurityHandler exposes audit trail statistics to administrators
type SecurityHandler struct {
	auditService *service.AuditService
}

// NewSecurityHandler creates a new security handler
func NewSecurityHandler(auditService *service.AuditService) *SecurityHandler {
	return &SecurityHandler{auditService: auditService}
}

// Stats aggregates the audit trail over the last seven days
func (h *SecurityHandler) Stats(c *gin.Context) {
	stats, err := h.auditService.SecurityStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Security statistics retrieved", stats)
}
