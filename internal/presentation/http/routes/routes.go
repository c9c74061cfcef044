package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/primeurdirect/primeur-api/internal/config"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/handler"
	"github.com/primeurdirect/primeur-api/internal/presentation/http/middleware"
	"github.com/primeurdirect/primeur-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Shop         *handler.ShopHandler
	Category     *handler.CategoryHandler
	Product      *handler.ProductHandler
	Pricing      *handler.PricingHandler
	Promotion    *handler.PromotionHandler
	Quote        *handler.QuoteHandler
	Order        *handler.OrderHandler
	Return       *handler.ReturnHandler
	Supplier     *handler.SupplierHandler
	Notification *handler.NotificationHandler
	Security     *handler.SecurityHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewRateLimiter(&deps.Cfg.RateLimit)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(rg *gin.RouterGroup, h *Handlers) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.GET("/google/url", h.Auth.GoogleAuthURL)
		auth.POST("/google/callback", h.Auth.GoogleLogin)
	}
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers) {
	staff := middleware.RequireRole(
		enum.RolePreparateur,
		enum.RoleLivreur,
		enum.RoleCommercial,
		enum.RoleStock,
		enum.RoleFinance,
	)
	commercial := middleware.RequireRole(enum.RoleCommercial)
	stock := middleware.RequireRole(enum.RoleStock)
	logistics := middleware.RequireRole(enum.RolePreparateur, enum.RoleLivreur)
	adminOnly := middleware.RequireRole()

	me := rg.Group("/me")
	{
		me.GET("", h.Auth.Profile)
		me.PUT("", h.Auth.UpdateProfile)
		me.PUT("/password", h.Auth.ChangePassword)
		me.GET("/shop", h.Shop.Mine)
	}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.PUT("/read-all", h.Notification.MarkAllRead)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.Delete)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", commercial, h.Category.Create)
		categories.PUT("/:id", commercial, h.Category.Update)
		categories.DELETE("/:id", adminOnly, h.Category.Delete)
	}

	subCategories := rg.Group("/subcategories")
	{
		subCategories.POST("", commercial, h.Category.CreateSubCategory)
		subCategories.PUT("/:id", commercial, h.Category.UpdateSubCategory)
		subCategories.DELETE("/:id", adminOnly, h.Category.DeleteSubCategory)
	}

	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", staff, h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/price-history", commercial, h.Pricing.PriceHistory)
		products.GET("/:id/volume-pricing", h.Pricing.ListVolumePricing)
		products.GET("/:id/client-pricing", commercial, h.Pricing.ListClientPricingByProduct)
		products.POST("", commercial, h.Product.Create)
		products.POST("/:id/stock", stock, h.Product.AdjustStock)
		products.PUT("/:id", commercial, h.Product.Update)
		products.DELETE("/:id", adminOnly, h.Product.Delete)
	}

	pricing := rg.Group("/pricing")
	{
		pricing.GET("/resolve", h.Pricing.Resolve)
		pricing.POST("/bulk", commercial, h.Pricing.BulkUpdate)
		pricing.POST("/volume", commercial, h.Pricing.CreateVolumePricing)
		pricing.PUT("/volume/:id", commercial, h.Pricing.UpdateVolumePricing)
		pricing.DELETE("/volume/:id", commercial, h.Pricing.DeleteVolumePricing)
		pricing.POST("/client", commercial, h.Pricing.CreateClientPricing)
		pricing.PUT("/client/:id", commercial, h.Pricing.UpdateClientPricing)
		pricing.DELETE("/client/:id", commercial, h.Pricing.DeleteClientPricing)
	}

	promotions := rg.Group("/promotions")
	{
		promotions.POST("/validate", h.Promotion.Validate)
		promotions.GET("", commercial, h.Promotion.List)
		promotions.GET("/:id", commercial, h.Promotion.Get)
		promotions.POST("", commercial, h.Promotion.Create)
		promotions.PUT("/:id", commercial, h.Promotion.Update)
		promotions.DELETE("/:id", adminOnly, h.Promotion.Delete)
	}

	quotes := rg.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.GET("/:id", h.Quote.Get)
		quotes.POST("", commercial, h.Quote.Create)
		quotes.PUT("/:id", commercial, h.Quote.Update)
		quotes.POST("/:id/send", commercial, h.Quote.Send)
		quotes.POST("/:id/accept", h.Quote.Accept)
		quotes.POST("/:id/reject", h.Quote.Reject)
		quotes.POST("/:id/expire", commercial, h.Quote.Expire)
		quotes.POST("/:id/convert", commercial, h.Quote.Convert)
		quotes.DELETE("/:id", adminOnly, h.Quote.Delete)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("", h.Order.Create)
		orders.PUT("/:id/status", logistics, h.Order.UpdateStatus)
	}

	returns := rg.Group("/returns")
	{
		returns.GET("", h.Return.List)
		returns.GET("/stats", commercial, h.Return.Stats)
		returns.GET("/:id", h.Return.Get)
		returns.POST("", h.Return.Create)
		returns.POST("/:id/photo", h.Return.UploadPhoto)
		returns.POST("/:id/approve", commercial, h.Return.Approve)
		returns.POST("/:id/reject", commercial, h.Return.Reject)
	}

	shops := rg.Group("/shops")
	{
		shops.GET("", staff, h.Shop.List)
		shops.GET("/:id", staff, h.Shop.Get)
		shops.POST("", commercial, h.Shop.Create)
		shops.PUT("/:id", commercial, h.Shop.Update)
		shops.DELETE("/:id", adminOnly, h.Shop.Delete)
	}

	suppliers := rg.Group("/suppliers")
	suppliers.Use(stock)
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("", h.Supplier.Create)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
		suppliers.GET("/:id/products", h.Supplier.ListProducts)
		suppliers.POST("/:id/products", h.Supplier.AddProduct)
		suppliers.GET("/:id/orders", h.Supplier.ListOrders)
		suppliers.POST("/:id/orders", h.Supplier.CreateOrder)
		suppliers.GET("/:id/evaluations", h.Supplier.ListEvaluations)
		suppliers.POST("/:id/evaluations", h.Supplier.Evaluate)
	}

	supplierProducts := rg.Group("/supplier-products")
	supplierProducts.Use(stock)
	{
		supplierProducts.DELETE("/:productId", h.Supplier.RemoveProduct)
	}

	supplierOrders := rg.Group("/supplier-orders")
	supplierOrders.Use(stock)
	{
		supplierOrders.GET("/:orderId", h.Supplier.GetOrder)
		supplierOrders.POST("/:orderId/ordered", h.Supplier.MarkOrdered)
		supplierOrders.POST("/:orderId/receive", h.Supplier.ReceiveOrder)
		supplierOrders.POST("/:orderId/cancel", h.Supplier.CancelOrder)
	}

	admin := rg.Group("/admin")
	admin.Use(adminOnly)
	{
		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.Get)
		admin.PUT("/users/:id/role", h.User.SetRole)
		admin.PUT("/users/:id/approve", h.User.Approve)
		admin.DELETE("/users/:id", h.User.Delete)
		admin.GET("/users/:id/client-pricing", h.Pricing.ListClientPricingByUser)
		admin.GET("/security/stats", h.Security.Stats)
	}
}
