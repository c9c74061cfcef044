package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/config"
	"github.com/primeurdirect/primeur-api/internal/infrastructure/database"
	"github.com/primeurdirect/primeur-api/internal/infrastructure/logger"
	"github.com/primeurdirect/primeur-api/internal/infrastructure/repository"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/handler"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/routes"
	"github.com/primeurdirect/primeur-api/pkg/email"
	"github.com/primeurdirect/primeur-api/pkg/oauth"
	"github.com/primeurdirect/primeur-api/pkg/utils"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := database.SeedDefaultData(db, zapLogger); err != nil {
		zapLogger.Warn("Failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subCategoryRepo := repository.NewSubCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	volumePricingRepo := repository.NewVolumePricingRepository(db)
	clientPricingRepo := repository.NewClientPricingRepository(db)
	priceHistoryRepo := repository.NewPriceHistoryRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	supplierProductRepo := repository.NewSupplierProductRepository(db)
	supplierOrderRepo := repository.NewSupplierOrderRepository(db)
	supplierEvaluationRepo := repository.NewSupplierEvaluationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.Username,
		SMTPPassword: cfg.Email.Password,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.From,
		FrontendURL:  cfg.App.FrontendURL,
	})

	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Services. Audit comes first: most services record to it.
	auditService := service.NewAuditService(auditRepo, zapLogger)
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService, auditService, emailService, zapLogger)
	userService := service.NewUserService(userRepo, auditService)
	shopService := service.NewShopService(shopRepo, userRepo, auditService)
	categoryService := service.NewCategoryService(categoryRepo, subCategoryRepo, productRepo, auditService)
	pricingService := service.NewPricingService(productRepo, volumePricingRepo, clientPricingRepo, priceHistoryRepo, auditService)
	productService := service.NewProductService(productRepo, categoryRepo, subCategoryRepo, pricingService, auditService, zapLogger)
	promotionService := service.NewPromotionService(promotionRepo, auditService)
	quoteService := service.NewQuoteService(quoteRepo, orderRepo, productRepo, shopRepo, pricingService, auditService, emailService, zapLogger)
	orderService := service.NewOrderService(orderRepo, productRepo, shopRepo, productService, pricingService, promotionService, auditService)
	returnService := service.NewReturnService(returnRepo, orderRepo, auditService)
	supplierService := service.NewSupplierService(supplierRepo, supplierProductRepo, supplierOrderRepo, supplierEvaluationRepo, productRepo, auditService)
	notificationService := service.NewNotificationService(notificationRepo, zapLogger)

	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Shop:         handler.NewShopHandler(shopService),
		Category:     handler.NewCategoryHandler(categoryService),
		Product:      handler.NewProductHandler(productService),
		Pricing:      handler.NewPricingHandler(pricingService),
		Promotion:    handler.NewPromotionHandler(promotionService),
		Quote:        handler.NewQuoteHandler(quoteService),
		Order:        handler.NewOrderHandler(orderService),
		Return:       handler.NewReturnHandler(returnService, cfg.App.UploadDir),
		Supplier:     handler.NewSupplierHandler(supplierService),
		Notification: handler.NewNotificationHandler(notificationService),
		Security:     handler.NewSecurityHandler(auditService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     zapLogger,
	})

	zapLogger.Info("Starting server",
		zap.String("name", cfg.App.Name),
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + cfg.App.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
