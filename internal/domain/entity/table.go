package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiningTable represents a physical table with its QR code token
type DiningTable struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Number    int            `gorm:"not null;uniqueIndex" json:"number"`
	Capacity  int            `gorm:"default:4" json:"capacity"`
	QRToken   string         `gorm:"size:64;uniqueIndex;not null" json:"qr_token"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *DiningTable) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DiningTable model
func (DiningTable) TableName() string {
	return "dining_tables"
}
