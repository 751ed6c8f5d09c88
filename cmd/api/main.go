package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/application/service"
	"github.com/ochiengk/dineqr-api/internal/config"
	"github.com/ochiengk/dineqr-api/internal/infrastructure/database"
	"github.com/ochiengk/dineqr-api/internal/infrastructure/repository"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/handler"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/routes"
	"github.com/ochiengk/dineqr-api/pkg/otp"
	"github.com/ochiengk/dineqr-api/pkg/printer"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.GuestSessionHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	kotRepo := repository.NewKOTRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	taxRepo := repository.NewTaxSettingRepository(db)
	settingsRepo := repository.NewRestaurantSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize OTP delivery
	otpService := otp.NewService(
		otp.NewSenderFromConfig(cfg.OTP.GatewayURL, cfg.OTP.GatewayAPIKey),
		cfg.OTP.ExpiryMinutes,
	)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	printerService := service.NewPrinterService(thermalPrinter, settingsRepo, cfg.Printer.Type, cfg.Printer.CharWidth)
	authService := service.NewAuthService(userRepo, tableRepo, customerRepo, otpService, jwtManager)
	orderService := service.NewOrderService(orderRepo, menuItemRepo, tableRepo, customerRepo, offerRepo, taxRepo, settingsRepo, printerService)
	kitchenService := service.NewKitchenService(kotRepo, orderItemRepo)
	billingService := service.NewBillingService(orderRepo, taxRepo, settingsRepo, printerService)
	offerService := service.NewOfferService(offerRepo, menuItemRepo, customerRepo)
	menuService := service.NewMenuService(categoryRepo, menuItemRepo)
	tableService := service.NewTableService(tableRepo)
	customerService := service.NewCustomerService(customerRepo)
	settingsService := service.NewSettingsService(taxRepo, settingsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Order:    handler.NewOrderHandler(orderService),
		Kitchen:  handler.NewKitchenHandler(kitchenService),
		Billing:  handler.NewBillingHandler(billingService),
		Offer:    handler.NewOfferHandler(offerService),
		Menu:     handler.NewMenuHandler(menuService),
		Table:    handler.NewTableHandler(tableService),
		Customer: handler.NewCustomerHandler(customerService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
