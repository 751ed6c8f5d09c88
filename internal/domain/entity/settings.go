package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

// TaxSetting is one configurable tax component, e.g. CGST or SGST.
// Rate is a percentage, not a fraction.
type TaxSetting struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:50;not null;unique" json:"name"`
	Rate         float64        `gorm:"not null" json:"rate"`
	Active       bool           `gorm:"default:true" json:"active"`
	DisplayOrder int            `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax setting
func (t *TaxSetting) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxSetting model
func (TaxSetting) TableName() string {
	return "tax_settings"
}

// RestaurantSettings is a singleton row of restaurant-wide configuration
type RestaurantSettings struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string       `gorm:"size:150;not null" json:"name"`
	Address   string       `gorm:"type:text" json:"address,omitempty"`
	Phone     string       `gorm:"size:20" json:"phone,omitempty"`
	GSTIN     string       `gorm:"size:30" json:"gstin,omitempty"`
	Currency  string       `gorm:"size:10;default:'INR'" json:"currency"`
	TaxMode   enum.TaxMode `gorm:"default:0" json:"tax_mode"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the settings row
func (r *RestaurantSettings) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RestaurantSettings model
func (RestaurantSettings) TableName() string {
	return "restaurant_settings"
}
