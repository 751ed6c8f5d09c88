// Package offer evaluates promotional offers against a cart
// snapshot: validity windows, per-type applicability, discount
// amounts and guest-facing upsell suggestions. Everything here is
// pure; rules are parsed once from stored offer rows and never
// mutated by evaluation.
package offer

import (
	"time"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

// AlmostThereRatio is the fraction of a threshold a cart must reach
// before an "almost there" suggestion is surfaced.
const AlmostThereRatio = 0.60

// CartItem is one cart line as seen by the evaluator.
type CartItem struct {
	MenuItemID uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// Cart is a consistent snapshot of a guest's cart.
type Cart struct {
	Items []CartItem
	Total float64
}

func (c Cart) quantityOf(id uuid.UUID) int {
	n := 0
	for _, it := range c.Items {
		if it.MenuItemID == id {
			n += it.Quantity
		}
	}
	return n
}

func (c Cart) lineFor(id uuid.UUID) (CartItem, bool) {
	for _, it := range c.Items {
		if it.MenuItemID == id {
			return it, true
		}
	}
	return CartItem{}, false
}

func (c Cart) containsCategory(id uuid.UUID) bool {
	for _, it := range c.Items {
		if it.CategoryID == id {
			return true
		}
	}
	return false
}

// Env carries everything outside the cart that one evaluation pass
// reads: a single clock instant, the guest's prior order count, and
// the guest's inputs. Using one Env for a whole pass keeps the
// result consistent at window boundaries.
type Env struct {
	Now             time.Time
	GuestOrderCount int
	PromoCode       string
	ChosenFreeItems []uuid.UUID
}

// Rule is the validated, in-memory form of a stored offer. Terms is
// nil when the stored conditions/benefits were malformed for the
// offer's type; such rules are never applicable.
type Rule struct {
	ID          uuid.UUID
	Name        string
	Description string
	Type        enum.OfferType
	Priority    int
	Active      bool
	StartDate   *time.Time
	EndDate     *time.Time
	HoursStart  string // "HH:MM"; both bounds set or the window is ignored
	HoursEnd    string
	ValidDays   []string // lowercase full weekday names
	UsageLimit  int      // 0 = unlimited
	UsageCount  int
	PromoCode   string
	Terms       Terms
}

// Scope lists the menu items and categories an item-scoped offer
// references, keyed by the role each plays.
type Scope struct {
	BuyItems        []uuid.UUID
	GetItems        []uuid.UUID
	QualifyingItems []uuid.UUID
	AddonItems      []uuid.UUID
	ComponentItems  []uuid.UUID
	Categories      []uuid.UUID
}

// SuggestionState distinguishes an offer the cart already qualifies
// for from one that is close to unlocking.
type SuggestionState string

const (
	SuggestionUnlocked    SuggestionState = "unlocked"
	SuggestionAlmostThere SuggestionState = "almost_there"
)

// Suggestion is the single upsell the UI surfaces for a cart.
type Suggestion struct {
	OfferID      uuid.UUID       `json:"offer_id"`
	OfferName    string          `json:"offer_name"`
	Type         enum.OfferType  `json:"type"`
	State        SuggestionState `json:"state"`
	Discount     float64         `json:"discount"`
	AmountNeeded float64         `json:"amount_needed,omitempty"`
	Message      string          `json:"message"`
}
