package repository

import (
	"context"
	"time"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) Stats(ctx context.Context, since time.Time) (*repository.SecurityStats, error) {
	stats := &repository.SecurityStats{
		ByAction: make(map[string]int64),
		ByEntity: make(map[string]int64),
	}

	db := r.db.WithContext(ctx)

	if err := db.Model(&entity.AuditLog{}).
		Where("created_at >= ?", since).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var byAction []struct {
		Action string
		Count  int64
	}
	err := db.Model(&entity.AuditLog{}).
		Select("action, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("action").
		Scan(&byAction).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byAction {
		stats.ByAction[row.Action] = row.Count
	}

	var byEntity []struct {
		Entity string
		Count  int64
	}
	err = db.Model(&entity.AuditLog{}).
		Select("entity, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("entity").
		Scan(&byEntity).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byEntity {
		stats.ByEntity[row.Entity] = row.Count
	}

	var byDay []struct {
		Day   string
		Count int64
	}
	err = db.Model(&entity.AuditLog{}).
		Select("DATE(created_at) as day, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day asc").
		Scan(&byDay).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byDay {
		stats.ByDay = append(stats.ByDay, repository.DayCount{Day: row.Day, Count: row.Count})
	}

	return stats, nil
}
