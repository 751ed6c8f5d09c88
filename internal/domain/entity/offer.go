package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/offer"
)

// JSONMap is a jsonb-backed free-form object column
type JSONMap map[string]any

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(data, m)
}

// Offer is a promotional rule configured by an admin. Conditions and
// Benefits hold the type-specific fields as free-form JSON; they are
// validated against the offer type when the offer is saved, so rows
// read back from the database always parse.
type Offer struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Type        enum.OfferType `gorm:"size:50;not null;index" json:"type"`
	Priority    int            `gorm:"default:0" json:"priority"`
	Active      bool           `gorm:"default:true;index" json:"active"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	HoursStart  string         `gorm:"size:5" json:"hours_start,omitempty"` // HH:MM
	HoursEnd    string         `gorm:"size:5" json:"hours_end,omitempty"`   // HH:MM
	ValidDays   string         `gorm:"size:100" json:"valid_days,omitempty"` // comma separated lowercase weekdays
	PromoCode   string         `gorm:"size:50;index" json:"promo_code,omitempty"`
	UsageLimit  int            `gorm:"default:0" json:"usage_limit"`
	UsageCount  int            `gorm:"default:0" json:"usage_count"`
	Conditions  JSONMap        `gorm:"type:jsonb" json:"conditions"`
	Benefits    JSONMap        `gorm:"type:jsonb" json:"benefits"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OfferItem `gorm:"foreignKey:OfferID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new offer
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}

// Offer item roles tying menu items or categories into an offer's scope
const (
	OfferRoleBuy        = "buy"
	OfferRoleGet        = "get"
	OfferRoleQualifying = "qualifying"
	OfferRoleFreeAddon  = "free_addon"
	OfferRoleComponent  = "component"
	OfferRoleCategory   = "category"
)

// OfferItem links an offer to a menu item or category with a role
type OfferItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OfferID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"offer_id"`
	MenuItemID *uuid.UUID `gorm:"type:uuid;index" json:"menu_item_id,omitempty"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Role       string     `gorm:"size:20;not null" json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new offer item
func (oi *OfferItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OfferItem model
func (OfferItem) TableName() string {
	return "offer_items"
}

// OfferRedemption records one application of an offer to an order
type OfferRedemption struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OfferID        uuid.UUID `gorm:"type:uuid;not null;index" json:"offer_id"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	CustomerID     *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	DiscountAmount int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r OfferRedemption) MarshalJSON() ([]byte, error) {
	type Alias OfferRedemption
	return json.Marshal(&struct {
		Alias
		DiscountAmount float64 `json:"discount_amount"`
	}{
		Alias:          Alias(r),
		DiscountAmount: float64(r.DiscountAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new redemption
func (r *OfferRedemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OfferRedemption model
func (OfferRedemption) TableName() string {
	return "offer_redemptions"
}

// Scope builds the evaluation scope from the offer's item rows
func (o *Offer) Scope() offer.Scope {
	var s offer.Scope
	for _, it := range o.Items {
		switch it.Role {
		case OfferRoleBuy:
			if it.MenuItemID != nil {
				s.BuyItems = append(s.BuyItems, *it.MenuItemID)
			}
		case OfferRoleGet:
			if it.MenuItemID != nil {
				s.GetItems = append(s.GetItems, *it.MenuItemID)
			}
		case OfferRoleQualifying:
			if it.MenuItemID != nil {
				s.QualifyingItems = append(s.QualifyingItems, *it.MenuItemID)
			}
		case OfferRoleFreeAddon:
			if it.MenuItemID != nil {
				s.AddonItems = append(s.AddonItems, *it.MenuItemID)
			}
		case OfferRoleComponent:
			if it.MenuItemID != nil {
				s.ComponentItems = append(s.ComponentItems, *it.MenuItemID)
			}
		case OfferRoleCategory:
			if it.CategoryID != nil {
				s.Categories = append(s.Categories, *it.CategoryID)
			}
		}
	}
	return s
}

// ToRule converts the stored offer into an evaluation rule. Returns an
// error when the stored conditions or benefits do not satisfy the
// offer type's required fields.
func (o *Offer) ToRule() (offer.Rule, error) {
	terms, err := offer.ParseTerms(o.Type, o.Conditions, o.Benefits, o.Scope())
	if err != nil {
		return offer.Rule{}, err
	}

	var days []string
	if o.ValidDays != "" {
		for _, d := range strings.Split(o.ValidDays, ",") {
			d = strings.ToLower(strings.TrimSpace(d))
			if d != "" {
				days = append(days, d)
			}
		}
	}

	return offer.Rule{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Type:        o.Type,
		Priority:    o.Priority,
		Active:      o.Active,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		HoursStart:  o.HoursStart,
		HoursEnd:    o.HoursEnd,
		ValidDays:   days,
		UsageLimit:  o.UsageLimit,
		UsageCount:  o.UsageCount,
		PromoCode:   o.PromoCode,
		Terms:       terms,
	}, nil
}
