package offer

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

// Terms is the typed per-offer-type payload parsed once from the
// stored conditions/benefits maps. Each variant carries only the
// fields its evaluator reads, so missing-field surprises become
// parse-time errors instead of checkout-time ones.
type Terms interface {
	offerTerms()
}

type MinOrderTerms struct {
	Threshold      float64
	DiscountAmount float64
}

type CartPercentageTerms struct {
	MinAmount   float64
	Percentage  float64
	MaxDiscount float64 // 0 = uncapped
}

type CartFlatTerms struct {
	MinAmount      float64
	DiscountAmount float64
}

// PercentOrFlatTerms serves the offer types whose benefit is simply
// a percentage or a flat amount: promo_code, time_based and
// repeat_customer_discount.
type PercentOrFlatTerms struct {
	MinOrdersCount int // repeat_customer_discount only
	Percentage     float64
	DiscountAmount float64
	MaxDiscount    float64
}

type CustomerTerms struct {
	TargetType     enum.CustomerType
	MinOrders      int
	Percentage     float64
	DiscountAmount float64
	MaxDiscount    float64
}

type BOGOTerms struct {
	BuyItems     []uuid.UUID
	GetItems     []uuid.UUID
	BuyQuantity  int
	GetQuantity  int
	GetSameItem  bool
	GetItemPrice float64 // catalog fallback when the get item is not in the cart
}

type FreeAddonTerms struct {
	QualifyingItems []uuid.UUID
	AddonItems      []uuid.UUID
	MaxFreeItems    int
}

type ItemPercentageTerms struct {
	Items       []uuid.UUID
	Categories  []uuid.UUID
	Percentage  float64
	MaxDiscount float64
}

type ThresholdItemTerms struct {
	Threshold float64
	ItemName  string
	ItemPrice float64
}

type ComboTerms struct {
	ComponentItems []uuid.UUID
	ComboPrice     float64
}

func (MinOrderTerms) offerTerms()       {}
func (CartPercentageTerms) offerTerms() {}
func (CartFlatTerms) offerTerms()       {}
func (PercentOrFlatTerms) offerTerms()  {}
func (CustomerTerms) offerTerms()       {}
func (BOGOTerms) offerTerms()           {}
func (FreeAddonTerms) offerTerms()      {}
func (ItemPercentageTerms) offerTerms() {}
func (ThresholdItemTerms) offerTerms()  {}
func (ComboTerms) offerTerms()          {}

// numField reads a numeric field from a loosely typed JSON map.
// Stored values arrive as float64, int or numeric strings depending
// on which client wrote them.
func numField(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func intField(m map[string]any, key string) (int, bool) {
	f, ok := numField(m, key)
	return int(f), ok
}

func boolField(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case float64:
		return b != 0
	}
	return false
}

func strField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// ParseTerms validates the stored conditions/benefits for an offer
// type and returns the typed terms. A non-nil error marks the offer
// as never applicable; it is a catalog data problem, not a checkout
// failure.
func ParseTerms(t enum.OfferType, conditions, benefits map[string]any, scope Scope) (Terms, error) {
	if conditions == nil {
		conditions = map[string]any{}
	}
	if benefits == nil {
		benefits = map[string]any{}
	}

	switch t {
	case enum.OfferMinOrderDiscount:
		threshold, ok := numField(conditions, "threshold_amount")
		if !ok || threshold <= 0 {
			return nil, fmt.Errorf("min_order_discount: missing threshold_amount")
		}
		amount, ok := numField(benefits, "discount_amount")
		if !ok || amount <= 0 {
			return nil, fmt.Errorf("min_order_discount: missing discount_amount")
		}
		return MinOrderTerms{Threshold: threshold, DiscountAmount: amount}, nil

	case enum.OfferCartPercentage:
		pct, ok := numField(benefits, "discount_percentage")
		if !ok || pct <= 0 {
			return nil, fmt.Errorf("cart_percentage: missing discount_percentage")
		}
		minAmount, _ := numField(conditions, "min_amount")
		maxDiscount, _ := numField(benefits, "max_discount_amount")
		return CartPercentageTerms{MinAmount: minAmount, Percentage: pct, MaxDiscount: maxDiscount}, nil

	case enum.OfferCartFlatAmount:
		amount, ok := numField(benefits, "discount_amount")
		if !ok || amount <= 0 {
			return nil, fmt.Errorf("cart_flat_amount: missing discount_amount")
		}
		minAmount, _ := numField(conditions, "min_amount")
		return CartFlatTerms{MinAmount: minAmount, DiscountAmount: amount}, nil

	case enum.OfferPromoCode, enum.OfferTimeBased:
		return parsePercentOrFlat(t, benefits, 0)

	case enum.OfferRepeatCustomer:
		minOrders, ok := intField(conditions, "min_orders_count")
		if !ok || minOrders <= 0 {
			return nil, fmt.Errorf("repeat_customer_discount: missing min_orders_count")
		}
		return parsePercentOrFlat(t, benefits, minOrders)

	case enum.OfferCustomerBased:
		target := enum.CustomerType(strField(conditions, "target_customer_type"))
		minOrders, hasMin := intField(conditions, "min_orders_count")
		switch target {
		case enum.CustomerFirstTime:
		case enum.CustomerReturning:
			if !hasMin {
				minOrders = 1
			}
		case enum.CustomerLoyalty:
			if !hasMin {
				minOrders = 5
			}
		default:
			return nil, fmt.Errorf("customer_based: unknown target_customer_type %q", target)
		}
		pct, _ := numField(benefits, "discount_percentage")
		amount, _ := numField(benefits, "discount_amount")
		if pct <= 0 && amount <= 0 {
			return nil, fmt.Errorf("customer_based: missing discount benefit")
		}
		maxDiscount, _ := numField(benefits, "max_discount_amount")
		return CustomerTerms{
			TargetType:     target,
			MinOrders:      minOrders,
			Percentage:     pct,
			DiscountAmount: amount,
			MaxDiscount:    maxDiscount,
		}, nil

	case enum.OfferItemBuyGetFree:
		if len(scope.BuyItems) == 0 || len(scope.GetItems) == 0 {
			return nil, fmt.Errorf("item_buy_get_free: needs at least one buy and one get item")
		}
		buyQty, ok := intField(benefits, "buy_quantity")
		if !ok || buyQty <= 0 {
			buyQty = 1
		}
		getQty, ok := intField(benefits, "get_quantity")
		if !ok || getQty <= 0 {
			getQty = 1
		}
		price, _ := numField(benefits, "get_item_price")
		return BOGOTerms{
			BuyItems:     scope.BuyItems,
			GetItems:     scope.GetItems,
			BuyQuantity:  buyQty,
			GetQuantity:  getQty,
			GetSameItem:  boolField(benefits, "get_same_item"),
			GetItemPrice: price,
		}, nil

	case enum.OfferItemFreeAddon:
		if len(scope.QualifyingItems) == 0 || len(scope.AddonItems) == 0 {
			return nil, fmt.Errorf("item_free_addon: needs at least one qualifying and one addon item")
		}
		maxFree, ok := intField(benefits, "max_free_items")
		if !ok || maxFree <= 0 {
			maxFree = 1
		}
		return FreeAddonTerms{
			QualifyingItems: scope.QualifyingItems,
			AddonItems:      scope.AddonItems,
			MaxFreeItems:    maxFree,
		}, nil

	case enum.OfferItemPercentage:
		if len(scope.QualifyingItems) == 0 && len(scope.Categories) == 0 {
			return nil, fmt.Errorf("item_percentage: needs qualifying items or categories")
		}
		pct, ok := numField(benefits, "discount_percentage")
		if !ok || pct <= 0 {
			return nil, fmt.Errorf("item_percentage: missing discount_percentage")
		}
		maxDiscount, _ := numField(benefits, "max_discount_amount")
		return ItemPercentageTerms{
			Items:       scope.QualifyingItems,
			Categories:  scope.Categories,
			Percentage:  pct,
			MaxDiscount: maxDiscount,
		}, nil

	case enum.OfferCartThresholdItem:
		threshold, ok := numField(conditions, "threshold_amount")
		if !ok || threshold <= 0 {
			return nil, fmt.Errorf("cart_threshold_item: missing threshold_amount")
		}
		price, ok := numField(benefits, "item_price")
		if !ok || price <= 0 {
			return nil, fmt.Errorf("cart_threshold_item: missing item_price")
		}
		return ThresholdItemTerms{
			Threshold: threshold,
			ItemName:  strField(benefits, "item_name"),
			ItemPrice: price,
		}, nil

	case enum.OfferComboMeal:
		if len(scope.ComponentItems) < 2 {
			return nil, fmt.Errorf("combo_meal: needs at least two component items")
		}
		price, ok := numField(benefits, "combo_price")
		if !ok || price <= 0 {
			return nil, fmt.Errorf("combo_meal: missing combo_price")
		}
		return ComboTerms{ComponentItems: scope.ComponentItems, ComboPrice: price}, nil
	}

	return nil, fmt.Errorf("unknown offer type %q", t)
}

func parsePercentOrFlat(t enum.OfferType, benefits map[string]any, minOrders int) (Terms, error) {
	pct, _ := numField(benefits, "discount_percentage")
	amount, _ := numField(benefits, "discount_amount")
	if pct <= 0 && amount <= 0 {
		return nil, fmt.Errorf("%s: missing discount benefit", t)
	}
	maxDiscount, _ := numField(benefits, "max_discount_amount")
	return PercentOrFlatTerms{
		MinOrdersCount: minOrders,
		Percentage:     pct,
		DiscountAmount: amount,
		MaxDiscount:    maxDiscount,
	}, nil
}
