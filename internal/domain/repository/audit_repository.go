package repository

import (
	"context"
	"time"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
)

// AuditLogRepository defines the interface for the audit trail
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// Stats aggregates audit activity since the given instant
	Stats(ctx context.Context, since time.Time) (*SecurityStats, error)
}

// SecurityStats aggregates audit log activity for the admin security endpoint
type SecurityStats struct {
	Total    int64            `json:"total"`
	ByAction map[string]int64 `json:"by_action"`
	ByEntity map[string]int64 `json:"by_entity"`
	ByDay    []DayCount       `json:"by_day"`
}

// DayCount is one day's worth of audit activity
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}
