package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

// KOT is a kitchen order ticket: the batch of order items fired to
// the kitchen together. Status is the aggregate of its items'
// statuses, denormalized so kitchen screens can filter by it. A KOT
// lives and dies with its order; it is never deleted on its own.
type KOT struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Number      int             `gorm:"not null" json:"number"` // sequence within the order
	TableNumber int             `gorm:"not null" json:"table_number"`
	Status      enum.ItemStatus `gorm:"size:20;default:'placed';index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Order Order       `gorm:"foreignKey:OrderID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:KOTID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new KOT
func (k *KOT) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the KOT model
func (KOT) TableName() string {
	return "kots"
}

// ItemStatuses collects the statuses of the ticket's items.
func (k *KOT) ItemStatuses() []enum.ItemStatus {
	statuses := make([]enum.ItemStatus, 0, len(k.Items))
	for _, it := range k.Items {
		statuses = append(statuses, it.Status)
	}
	return statuses
}
