package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a guest identified by phone number. OrderCount drives
// customer-based and repeat-customer offer eligibility.
type Customer struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Phone       string         `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Name        string         `gorm:"size:100" json:"name,omitempty"`
	Verified    bool           `gorm:"default:false" json:"verified"`
	OrderCount  int            `gorm:"default:0" json:"order_count"`
	LastOrderAt *time.Time     `json:"last_order_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
