package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/infrastructure/database"
	infrarepo "github.com/primeurdirect/primeur-api/internal/infrastructure/repository"
	"github.com/primeurdirect/primeur-api/pkg/email"
)

// testEnv wires the full service graph against an in-memory database so
// business rules are exercised through real repositories.
type testEnv struct {
	db *gorm.DB

	categoryService  *CategoryService
	productService   *ProductService
	pricingService   *PricingService
	promotionService *PromotionService
	quoteService     *QuoteService
	orderService     *OrderService
	returnService    *ReturnService
	supplierService  *SupplierService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	logger := zap.NewNop()

	categoryRepo := infrarepo.NewCategoryRepository(db)
	subCategoryRepo := infrarepo.NewSubCategoryRepository(db)
	productRepo := infrarepo.NewProductRepository(db)
	volumePricingRepo := infrarepo.NewVolumePricingRepository(db)
	clientPricingRepo := infrarepo.NewClientPricingRepository(db)
	priceHistoryRepo := infrarepo.NewPriceHistoryRepository(db)
	promotionRepo := infrarepo.NewPromotionRepository(db)
	quoteRepo := infrarepo.NewQuoteRepository(db)
	orderRepo := infrarepo.NewOrderRepository(db)
	returnRepo := infrarepo.NewReturnRepository(db)
	supplierRepo := infrarepo.NewSupplierRepository(db)
	supplierProductRepo := infrarepo.NewSupplierProductRepository(db)
	supplierOrderRepo := infrarepo.NewSupplierOrderRepository(db)
	evaluationRepo := infrarepo.NewSupplierEvaluationRepository(db)
	shopRepo := infrarepo.NewShopRepository(db)
	auditRepo := infrarepo.NewAuditLogRepository(db)

	auditService := NewAuditService(auditRepo, logger)
	pricingService := NewPricingService(productRepo, volumePricingRepo, clientPricingRepo, priceHistoryRepo, auditService)
	productService := NewProductService(productRepo, categoryRepo, subCategoryRepo, pricingService, auditService, logger)
	promotionService := NewPromotionService(promotionRepo, auditService)
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:  "127.0.0.1",
		SMTPPort:  2525,
		FromName:  "Primeur Direct",
		FromEmail: "test@primeurdirect.fr",
	})

	return &testEnv{
		db:               db,
		categoryService:  NewCategoryService(categoryRepo, subCategoryRepo, productRepo, auditService),
		productService:   productService,
		pricingService:   pricingService,
		promotionService: promotionService,
		quoteService:     NewQuoteService(quoteRepo, orderRepo, productRepo, shopRepo, pricingService, auditService, emailService, logger),
		orderService:     NewOrderService(orderRepo, productRepo, shopRepo, productService, pricingService, promotionService, auditService),
		returnService:    NewReturnService(returnRepo, orderRepo, auditService),
		supplierService:  NewSupplierService(supplierRepo, supplierProductRepo, supplierOrderRepo, evaluationRepo, productRepo, auditService),
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func (e *testEnv) createProduct(t *testing.T, name string, priceHT, priceT2 string, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:      name,
		PriceHT:   dec(t, priceHT),
		PriceHTT2: dec(t, priceT2),
		TVARate:   dec(t, "5.5"),
		Stock:     stock,
		Unit:      "kg",
		IsActive:  true,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) createClientShop(t *testing.T, email string) (*entity.User, *entity.Shop) {
	t.Helper()
	user := &entity.User{
		FirstName:  "Marie",
		LastName:   "Dubois",
		Email:      email,
		Password:   "hashed-password",
		Role:       enum.RoleClient,
		IsApproved: true,
	}
	require.NoError(t, e.db.Create(user).Error)

	shop := &entity.Shop{
		UserID:   user.ID,
		Name:     "Primeurs " + email,
		IsActive: true,
	}
	require.NoError(t, e.db.Create(shop).Error)
	return user, shop
}

func (e *testEnv) productStock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var product entity.Product
	require.NoError(t, e.db.First(&product, "id = ?", id).Error)
	return product.Stock
}
