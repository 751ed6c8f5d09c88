package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores a response snapshot so retried order requests
// return the original result instead of creating duplicates
type IdempotencyKey struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key        string    `gorm:"size:255;not null;uniqueIndex" json:"key"`
	Endpoint   string    `gorm:"size:255;not null" json:"endpoint"`
	StatusCode int       `gorm:"not null" json:"status_code"`
	Response   string    `gorm:"type:text" json:"response"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks whether the key has passed its expiry time
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
