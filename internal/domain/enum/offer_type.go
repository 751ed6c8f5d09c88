package enum

// OfferType tags a promotional offer with the rule family that
// evaluates it.
type OfferType string

const (
	OfferMinOrderDiscount   OfferType = "min_order_discount"
	OfferCartPercentage     OfferType = "cart_percentage"
	OfferCartFlatAmount     OfferType = "cart_flat_amount"
	OfferTimeBased          OfferType = "time_based"
	OfferCustomerBased      OfferType = "customer_based"
	OfferPromoCode          OfferType = "promo_code"
	OfferItemBuyGetFree     OfferType = "item_buy_get_free"
	OfferItemFreeAddon      OfferType = "item_free_addon"
	OfferItemPercentage     OfferType = "item_percentage"
	OfferCartThresholdItem  OfferType = "cart_threshold_item"
	OfferComboMeal          OfferType = "combo_meal"
	OfferRepeatCustomer     OfferType = "repeat_customer_discount"
)

// Valid reports whether t is a known offer type.
func (t OfferType) Valid() bool {
	switch t {
	case OfferMinOrderDiscount, OfferCartPercentage, OfferCartFlatAmount,
		OfferTimeBased, OfferCustomerBased, OfferPromoCode,
		OfferItemBuyGetFree, OfferItemFreeAddon, OfferItemPercentage,
		OfferCartThresholdItem, OfferComboMeal, OfferRepeatCustomer:
		return true
	}
	return false
}
