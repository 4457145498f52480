package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/config"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/handler"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/middleware"
	"github.com/sangkips/tailorshop-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Shop      *handler.ShopHandler
	Worker    *handler.WorkerHandler
	Order     *handler.OrderHandler
	Payment   *handler.PaymentHandler
	Expense   *handler.ExpenseHandler
	Dashboard *handler.DashboardHandler
	Receipt   *handler.ReceiptHandler
	System    *handler.SystemHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Log             *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Suspension      middleware.SuspensionSource
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(deps.Log))
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Reachable while suspended so clients can render the billing screen.
		registerSystemRoutes(v1, h)

		live := v1.Group("")
		live.Use(middleware.KillSwitch(deps.Suspension))

		registerAuthRoutes(live, h)

		protected := live.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerSystemRoutes(v1 *gin.RouterGroup, h *Handlers) {
	system := v1.Group("/system")
	{
		system.GET("/status", h.System.Status)
		system.GET("/branding", h.System.Branding)
		system.GET("/garments", h.System.Garments)
	}
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.GetProfile)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
		Log:  deps.Log,
	})

	registerShopRoutes(protected, h)
	registerWorkerRoutes(protected, h)
	registerOrderRoutes(protected, h, idempotency)
	registerExpenseRoutes(protected, h)
	registerDashboardRoutes(protected, h)
	registerReceiptRoutes(protected, h)
}

func registerShopRoutes(protected *gin.RouterGroup, h *Handlers) {
	shops := protected.Group("/shops")
	shops.Use(middleware.RequireRole(enum.RoleOwner))
	{
		shops.GET("", h.Shop.List)
		shops.POST("", h.Shop.Create)
		shops.GET("/:id", h.Shop.Get)
		shops.PUT("/:id", h.Shop.Update)
		shops.DELETE("/:id", h.Shop.Delete)
		shops.POST("/:id/manager", h.Shop.AppointManager)
		shops.DELETE("/:id/manager", h.Shop.FireManager)
		shops.PUT("/:id/manager/password", h.Shop.ResetManagerPassword)
	}
}

func registerWorkerRoutes(protected *gin.RouterGroup, h *Handlers) {
	workers := protected.Group("/workers")
	{
		workers.GET("", h.Worker.List)
		workers.POST("", h.Worker.Create)
		workers.GET("/:id", h.Worker.Get)
		workers.PUT("/:id", h.Worker.Update)
		workers.DELETE("/:id", h.Worker.Delete)
		workers.GET("/:id/assignments", h.Worker.Assignments)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", idempotency, h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/finalize", h.Order.Finalize)
		orders.GET("/:id/payments", h.Payment.List)
		orders.POST("/:id/payments", idempotency, h.Payment.QuickPay)
		orders.GET("/:id/receipt", h.Receipt.Get)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/categories", h.Expense.Categories)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/dashboard", h.Dashboard.GetMetrics)

	owner := protected.Group("/dashboard")
	owner.Use(middleware.RequireRole(enum.RoleOwner))
	{
		owner.GET("/overview", h.Dashboard.GetOverview)
		owner.GET("/export.csv", h.Dashboard.ExportCSV)
		owner.GET("/export.xlsx", h.Dashboard.ExportXLSX)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Receipt.GetStatus)
		printer.POST("/test", h.Receipt.TestPrint)
		printer.POST("/print", h.Receipt.Print)
	}
}
