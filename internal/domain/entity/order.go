package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

// Order represents one table order placed by a guest or staff
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TableID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"table_id"`
	CustomerID     *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderNo        string           `gorm:"size:100;unique;not null" json:"order_no"`
	Status         enum.OrderStatus `gorm:"default:0" json:"status"`
	TotalItems     int              `gorm:"default:0" json:"total_items"`
	SubTotal       int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalTax       int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total          int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxBreakdown   JSONMap          `gorm:"type:jsonb" json:"tax_breakdown,omitempty"`
	AppliedOfferID *uuid.UUID       `gorm:"type:uuid;index" json:"applied_offer_id,omitempty"`
	Notes          string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Table        DiningTable `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Customer     *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	AppliedOffer *Offer      `gorm:"foreignKey:AppliedOfferID" json:"applied_offer,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"sub_total"`
		DiscountAmount float64 `json:"discount_amount"`
		TotalTax       float64 `json:"total_tax"`
		Total          float64 `json:"total"`
	}{
		Alias:          Alias(o),
		SubTotal:       float64(o.SubTotal) / 100,
		DiscountAmount: float64(o.DiscountAmount) / 100,
		TotalTax:       float64(o.TotalTax) / 100,
		Total:          float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// TotalDecimal returns the total as a decimal
func (o *Order) TotalDecimal() float64 {
	return float64(o.Total) / 100
}

// OrderItem represents a line item in an order. KOT fields are set
// when the line is batched to the kitchen and never change afterwards.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID  *uuid.UUID      `gorm:"type:uuid;index" json:"menu_item_id,omitempty"`
	Name        string          `gorm:"size:150;not null" json:"name"`
	Vegetarian  bool            `gorm:"default:false" json:"vegetarian"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TotalPrice  int64           `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Status      enum.ItemStatus `gorm:"size:20;default:'placed'" json:"status"`
	ManualEntry bool            `gorm:"default:false" json:"manual_entry"`
	KOTID       *uuid.UUID      `gorm:"type:uuid;index" json:"kot_id,omitempty"`
	KOTNumber   int             `gorm:"default:0" json:"kot_number,omitempty"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Order    Order     `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(oi),
		UnitPrice:  float64(oi.UnitPrice) / 100,
		TotalPrice: float64(oi.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
