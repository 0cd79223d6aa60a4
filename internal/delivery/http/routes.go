package http

import (
	"github.com/gin-gonic/gin"
	"github.com/smartmall/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Catalog endpoints
		v1.GET("/products", handler.ListProducts)
		v1.GET("/products/:id", handler.GetProduct)
		v1.GET("/payment-methods", handler.ListPaymentMethods)

		// Scan endpoints
		v1.POST("/scan", handler.Scan)
		offline := v1.Group("/offline")
		{
			offline.POST("/mode", handler.SetOfflineMode)
			offline.GET("/pending", handler.OfflinePending)
			offline.POST("/sync", handler.SyncOfflineScans)
			offline.DELETE("/synced", handler.ClearSyncedScans)
		}

		// Cart endpoints
		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.POST("/items", handler.AddCartItem)
			cart.PATCH("/items/:id", handler.UpdateCartItem)
			cart.DELETE("/items/:id", handler.RemoveCartItem)
			cart.DELETE("", handler.ClearCart)
		}

		// Budget endpoints
		budget := v1.Group("/budget")
		{
			budget.GET("", handler.GetBudget)
			budget.PATCH("/settings", handler.UpdateBudgetSettings)
			budget.POST("/check", handler.CheckBudget)
		}

		// Checkout endpoint
		v1.POST("/checkout", handler.Checkout)

		// Insights endpoints
		insights := v1.Group("/insights")
		{
			insights.GET("/weekly", handler.WeeklyInsights)
			insights.GET("/monthly", handler.MonthlyInsights)
			insights.GET("/breakdown", handler.CategoryBreakdown)
		}
		v1.GET("/deals", handler.ListDeals)
		v1.DELETE("/deals/:id", handler.DismissDeal)
		v1.GET("/reminders", handler.ListReminders)
		v1.DELETE("/reminders/:productId", handler.DismissReminder)
		v1.GET("/price-alerts", handler.ListPriceAlerts)
		v1.DELETE("/price-alerts/:productId", handler.DismissPriceAlert)

		// Shopping list endpoints
		list := v1.Group("/shopping-list")
		{
			list.GET("", handler.GetShoppingList)
			list.POST("", handler.AddShoppingListItem)
			list.GET("/suggest", handler.SuggestProducts)
			list.PATCH("/:id/toggle", handler.ToggleShoppingListItem)
			list.DELETE("/checked", handler.ClearCheckedShoppingListItems)
			list.DELETE("/:id", handler.RemoveShoppingListItem)
			list.DELETE("", handler.ClearShoppingList)
		}

		// Auth endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handler.Register)
			auth.POST("/login", handler.Login)
			auth.POST("/logout", handler.Logout)
			auth.GET("/me", handler.Me)
			auth.GET("/purchases", handler.PurchaseHistory)
		}
	}

	return router
}
