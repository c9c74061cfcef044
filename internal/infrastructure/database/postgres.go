package database

import (
	"fmt"

	"github.com/primeurdirect/primeur-api/internal/config"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Accounts
		&entity.User{},
		&entity.Shop{},

		// Catalog
		&entity.Category{},
		&entity.SubCategory{},
		&entity.Product{},

		// Pricing
		&entity.VolumePricing{},
		&entity.ClientPricing{},
		&entity.PriceHistory{},
		&entity.Promotion{},

		// Trade documents
		&entity.Quote{},
		&entity.QuoteItem{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Return{},
		&entity.ReturnItem{},
		&entity.CreditNote{},

		// Suppliers
		&entity.Supplier{},
		&entity.SupplierProduct{},
		&entity.SupplierOrder{},
		&entity.SupplierOrderItem{},
		&entity.SupplierEvaluation{},

		// System
		&entity.Notification{},
		&entity.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SeedDefaultData creates the admin account when configured via environment
func SeedDefaultData(db *gorm.DB, log *zap.Logger) error {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Info("admin user already exists", zap.String("email", adminEmail))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		FirstName:     "Admin",
		LastName:      "Primeur",
		Email:         adminEmail,
		Password:      string(hashed),
		Role:          enum.RoleAdmin,
		EmailVerified: true,
		IsApproved:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("admin user created", zap.String("email", adminEmail))
	return nil
}
