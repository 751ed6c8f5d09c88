package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/config"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	domainRepo "github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/handler"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/middleware"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Order    *handler.OrderHandler
	Kitchen  *handler.KitchenHandler
	Billing  *handler.BillingHandler
	Offer    *handler.OfferHandler
	Menu     *handler.MenuHandler
	Table    *handler.TableHandler
	Customer *handler.CustomerHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rps := 10.0
	burst := 20
	if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
		rps = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
		burst = deps.Cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewRateLimiter(rps, burst)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerPublicRoutes(v1, h)
		registerGuestRoutes(v1, h, deps)
		registerStaffRoutes(v1, h, deps)
	}

	return router
}

// registerPublicRoutes registers routes that need no session at all:
// staff login and the QR scan that starts a guest session.
func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}

	v1.GET("/scan/:token", h.Auth.ScanTable)
}

// registerGuestRoutes registers routes behind a guest table session
func registerGuestRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	guest := v1.Group("/guest")
	guest.Use(middleware.GuestMiddleware(deps.JWTManager))
	{
		guest.GET("/menu", h.Menu.PublicMenu)
		guest.GET("/menu/categories", h.Menu.ListCategories)

		guest.POST("/otp/request", h.Auth.RequestOTP)
		guest.POST("/otp/verify", h.Auth.VerifyOTP)

		guest.POST("/orders",
			middleware.IdempotencyRequired(deps.IdempotencyRepo, 24*time.Hour),
			h.Order.Place)
		guest.POST("/orders/:id/items", h.Order.AddItems)
		guest.GET("/order", h.Order.MyOrder)

		guest.POST("/offers/suggest", h.Offer.Suggest)
	}
}

// registerStaffRoutes registers routes behind staff authentication
func registerStaffRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	staff := v1.Group("")
	staff.Use(middleware.AuthMiddleware(deps.JWTManager))

	staff.GET("/auth/me", h.Auth.Me)
	staff.POST("/auth/refresh", h.Auth.Refresh)

	// Kitchen display, shared by kitchen staff and admins
	kitchen := staff.Group("/kitchen")
	kitchen.Use(middleware.RequireRole(entity.RoleKitchen, entity.RoleAdmin, entity.RoleWaiter))
	{
		kitchen.GET("/tickets", h.Kitchen.ListTickets)
		kitchen.GET("/tickets/:id", h.Kitchen.GetTicket)
		kitchen.PATCH("/tickets/:id/status", h.Kitchen.UpdateTicketStatus)
		kitchen.PATCH("/items/:id/status", h.Kitchen.UpdateItemStatus)
	}

	// Order management for waiters and admins
	orders := staff.Group("/orders")
	orders.Use(middleware.RequireRole(entity.RoleWaiter, entity.RoleAdmin))
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/items", h.Order.AddItems)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/bill/preview", h.Billing.Preview)
		orders.POST("/:id/bill/settle", h.Billing.Settle)
		orders.POST("/:id/paid", h.Order.MarkPaid)
	}

	// Everything below is admin only
	admin := staff.Group("")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))

	admin.POST("/users", h.Auth.CreateUser)

	menu := admin.Group("/menu")
	{
		menu.GET("/categories", h.Menu.ListCategories)
		menu.POST("/categories", h.Menu.CreateCategory)
		menu.PUT("/categories/:id", h.Menu.UpdateCategory)
		menu.DELETE("/categories/:id", h.Menu.DeleteCategory)

		menu.GET("/items", h.Menu.ListItems)
		menu.POST("/items", h.Menu.CreateItem)
		menu.GET("/items/:id", h.Menu.GetItem)
		menu.PUT("/items/:id", h.Menu.UpdateItem)
		menu.DELETE("/items/:id", h.Menu.DeleteItem)
		menu.PATCH("/items/:id/availability", h.Menu.SetAvailability)
	}

	tables := admin.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.POST("", h.Table.Create)
		tables.GET("/:id", h.Table.Get)
		tables.PUT("/:id", h.Table.Update)
		tables.DELETE("/:id", h.Table.Delete)
		tables.POST("/:id/qr/regenerate", h.Table.RegenerateQR)
	}

	offers := admin.Group("/offers")
	{
		offers.GET("", h.Offer.List)
		offers.POST("", h.Offer.Create)
		offers.GET("/:id", h.Offer.Get)
		offers.PUT("/:id", h.Offer.Update)
		offers.DELETE("/:id", h.Offer.Delete)
		offers.GET("/:id/redemptions", h.Offer.Redemptions)
	}

	customers := admin.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
	}

	settings := admin.Group("/settings")
	{
		settings.GET("/taxes", h.Settings.ListTaxes)
		settings.POST("/taxes", h.Settings.CreateTax)
		settings.PUT("/taxes/:id", h.Settings.UpdateTax)
		settings.DELETE("/taxes/:id", h.Settings.DeleteTax)
		settings.GET("/restaurant", h.Settings.GetRestaurant)
		settings.PUT("/restaurant", h.Settings.UpdateRestaurant)
	}

	admin.GET("/printer/status", h.Printer.Status)
	admin.POST("/printer/test", h.Printer.TestPrint)
}
