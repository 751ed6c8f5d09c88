package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ochiengk/dineqr-api/internal/config"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff and guests
		&entity.User{},
		&entity.Customer{},

		// Menu
		&entity.Category{},
		&entity.MenuItem{},

		// Floor
		&entity.DiningTable{},

		// Orders and kitchen
		&entity.Order{},
		&entity.OrderItem{},
		&entity.KOT{},

		// Offers
		&entity.Offer{},
		&entity.OfferItem{},
		&entity.OfferRedemption{},

		// Settings
		&entity.TaxSetting{},
		&entity.RestaurantSettings{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (admin user,
// tax components, restaurant settings)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Default tax components, standard GST split
	taxes := []entity.TaxSetting{
		{Name: "CGST", Rate: 2.5, Active: true, DisplayOrder: 1},
		{Name: "SGST", Rate: 2.5, Active: true, DisplayOrder: 2},
	}
	for i := range taxes {
		var existing entity.TaxSetting
		if err := db.Where("name = ?", taxes[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&taxes[i]).Error; err != nil {
				log.Printf("Warning: failed to create tax setting %s: %v", taxes[i].Name, err)
			}
		}
	}

	// Restaurant settings singleton
	var settings entity.RestaurantSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.RestaurantSettings{
			Name:     viper.GetString("APP_NAME"),
			Currency: "INR",
			TaxMode:  enum.TaxModeExclusive,
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create restaurant settings: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			if adminName == "" {
				adminName = "Admin"
			}
			adminUser := entity.User{
				ID:     utils.NewUUID(),
				Name:   adminName,
				Email:  adminEmail,
				Role:   entity.RoleAdmin,
				Active: true,
			}
			if err := adminUser.SetPassword(adminPassword); err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else if err := db.Create(&adminUser).Error; err != nil {
				log.Printf("Warning: failed to create admin user: %v", err)
			} else {
				log.Printf("Admin user created: %s", adminEmail)
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
