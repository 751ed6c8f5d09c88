package offer

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

const eps = 1e-9

// A Tuesday and a Saturday, both at 17:00.
var (
	tuesday17  = time.Date(2025, 1, 7, 17, 0, 0, 0, time.UTC)
	saturday17 = time.Date(2025, 1, 4, 17, 0, 0, 0, time.UTC)
)

func mustRule(t *testing.T, typ enum.OfferType, conditions, benefits map[string]any, scope Scope) Rule {
	t.Helper()
	terms, err := ParseTerms(typ, conditions, benefits, scope)
	if err != nil {
		t.Fatalf("ParseTerms(%s): %v", typ, err)
	}
	return Rule{ID: uuid.New(), Name: string(typ), Type: typ, Active: true, Terms: terms}
}

func cartOf(total float64) Cart {
	return Cart{
		Items: []CartItem{{MenuItemID: uuid.New(), Name: "combined", Quantity: 1, UnitPrice: total, TotalPrice: total}},
		Total: total,
	}
}

func TestMinOrderThresholdBoundary(t *testing.T) {
	r := mustRule(t, enum.OfferMinOrderDiscount,
		map[string]any{"threshold_amount": 1000.0},
		map[string]any{"discount_amount": 100.0}, Scope{})
	env := Env{Now: tuesday17}

	if ok, _ := EvaluateForCheckout(r, cartOf(999.99), env); ok {
		t.Error("999.99 must not reach a 1000 threshold")
	}
	ok, discount := EvaluateForCheckout(r, cartOf(1000.00), env)
	if !ok || discount != 100 {
		t.Errorf("1000.00 must unlock the offer with discount 100, got ok=%v discount=%v", ok, discount)
	}
}

func TestAlmostThereBoundary(t *testing.T) {
	r := mustRule(t, enum.OfferMinOrderDiscount,
		map[string]any{"threshold_amount": 1000.0},
		map[string]any{"discount_amount": 100.0}, Scope{})
	env := Env{Now: tuesday17}

	if s := Suggest(cartOf(599.99), []Rule{r}, env, SuggestOptions{}); s != nil {
		t.Errorf("599.99 is below 60%% of 1000, want no suggestion, got %+v", s)
	}

	s := Suggest(cartOf(600.00), []Rule{r}, env, SuggestOptions{})
	if s == nil {
		t.Fatal("600.00 should yield an almost-there suggestion")
	}
	if s.State != SuggestionAlmostThere {
		t.Errorf("state = %q, want %q", s.State, SuggestionAlmostThere)
	}
	if math.Abs(s.AmountNeeded-400.00) > eps {
		t.Errorf("amount needed = %v, want 400.00", s.AmountNeeded)
	}
	if s.Discount != 100 {
		t.Errorf("reward forgone = %v, want 100", s.Discount)
	}

	unlocked := Suggest(cartOf(1000.00), []Rule{r}, env, SuggestOptions{})
	if unlocked == nil || unlocked.State != SuggestionUnlocked {
		t.Errorf("1000.00 should flip to an unlocked suggestion, got %+v", unlocked)
	}
}

func TestCartPercentageCapping(t *testing.T) {
	r := mustRule(t, enum.OfferCartPercentage,
		nil,
		map[string]any{"discount_percentage": 20.0, "max_discount_amount": 200.0}, Scope{})

	ok, discount := EvaluateForCheckout(r, cartOf(2000), Env{Now: tuesday17})
	if !ok {
		t.Fatal("cart_percentage with no minimum should always apply")
	}
	if discount != 200 {
		t.Errorf("discount = %v, want raw 400 capped to 200", discount)
	}
}

func TestDayAndTimeFilter(t *testing.T) {
	r := mustRule(t, enum.OfferCartPercentage,
		nil,
		map[string]any{"discount_percentage": 10.0}, Scope{})
	r.ValidDays = []string{"saturday", "sunday"}
	r.HoursStart = "16:00"
	r.HoursEnd = "19:00"

	if ok, _ := EvaluateForCheckout(r, cartOf(500), Env{Now: tuesday17}); ok {
		t.Error("a weekend-only offer must not apply on a Tuesday, regardless of cart")
	}
	if ok, _ := EvaluateForCheckout(r, cartOf(500), Env{Now: saturday17}); !ok {
		t.Error("Saturday 17:00 sits inside the window, offer should apply")
	}

	early := time.Date(2025, 1, 4, 15, 59, 0, 0, time.UTC)
	if ok, _ := EvaluateForCheckout(r, cartOf(500), Env{Now: early}); ok {
		t.Error("15:59 is before the 16:00 window start")
	}
	boundary := time.Date(2025, 1, 4, 19, 0, 0, 0, time.UTC)
	if ok, _ := EvaluateForCheckout(r, cartOf(500), Env{Now: boundary}); !ok {
		t.Error("19:00 is inclusive, offer should still apply")
	}
}

func TestDateWindow(t *testing.T) {
	r := mustRule(t, enum.OfferCartFlatAmount,
		nil,
		map[string]any{"discount_amount": 50.0}, Scope{})
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)
	r.StartDate = &start
	r.EndDate = &end

	if ok, _ := EvaluateForCheckout(r, cartOf(100), Env{Now: tuesday17}); ok {
		t.Error("offer must not apply before its start date")
	}
	inside := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	if ok, _ := EvaluateForCheckout(r, cartOf(100), Env{Now: inside}); !ok {
		t.Error("offer should apply inside its date range")
	}
}

func TestBOGODiscount(t *testing.T) {
	buyID, getID := uuid.New(), uuid.New()
	r := mustRule(t, enum.OfferItemBuyGetFree,
		nil,
		map[string]any{"buy_quantity": 1.0, "get_quantity": 1.0},
		Scope{BuyItems: []uuid.UUID{buyID}, GetItems: []uuid.UUID{getID}})

	cart := Cart{
		Items: []CartItem{
			{MenuItemID: buyID, Name: "Biryani", Quantity: 1, UnitPrice: 450, TotalPrice: 450},
			{MenuItemID: getID, Name: "Kulfi", Quantity: 1, UnitPrice: 150, TotalPrice: 150},
		},
		Total: 600,
	}

	ok, discount := EvaluateForCheckout(r, cart, Env{Now: tuesday17})
	if !ok || discount != 150 {
		t.Errorf("BOGO discount = (%v, %v), want the get item's 150 regardless of the buy price", ok, discount)
	}

	// Same cart, pricier buy item: the discount must not move.
	cart.Items[0].UnitPrice = 900
	cart.Items[0].TotalPrice = 900
	cart.Total = 1050
	if _, discount = EvaluateForCheckout(r, cart, Env{Now: tuesday17}); discount != 150 {
		t.Errorf("discount = %v, want 150 independent of buy-item price", discount)
	}

	// Missing the buy item: no discount.
	cart.Items = cart.Items[1:]
	cart.Total = 150
	if ok, _ = EvaluateForCheckout(r, cart, Env{Now: tuesday17}); ok {
		t.Error("BOGO must not apply without the buy item")
	}
}

func TestFreeAddonSelection(t *testing.T) {
	mainID, addonID, otherID := uuid.New(), uuid.New(), uuid.New()
	r := mustRule(t, enum.OfferItemFreeAddon,
		nil,
		map[string]any{"max_free_items": 1.0},
		Scope{QualifyingItems: []uuid.UUID{mainID}, AddonItems: []uuid.UUID{addonID}})

	cart := Cart{
		Items: []CartItem{
			{MenuItemID: mainID, Name: "Thali", Quantity: 1, UnitPrice: 300, TotalPrice: 300},
			{MenuItemID: addonID, Name: "Papad", Quantity: 1, UnitPrice: 40, TotalPrice: 40},
		},
		Total: 340,
	}

	ok, discount := EvaluateForCheckout(r, cart, Env{Now: tuesday17, ChosenFreeItems: []uuid.UUID{addonID}})
	if !ok || discount != 40 {
		t.Errorf("free addon = (%v, %v), want the chosen addon's 40", ok, discount)
	}

	if ok, _ = EvaluateForCheckout(r, cart, Env{Now: tuesday17, ChosenFreeItems: []uuid.UUID{otherID}}); ok {
		t.Error("a selection outside the addon set must not apply")
	}
	if ok, _ = EvaluateForCheckout(r, cart, Env{Now: tuesday17}); ok {
		t.Error("no selection means nothing to discount")
	}
}

func TestItemPercentageScopedToLines(t *testing.T) {
	pizzaCat := uuid.New()
	r := mustRule(t, enum.OfferItemPercentage,
		nil,
		map[string]any{"discount_percentage": 50.0},
		Scope{Categories: []uuid.UUID{pizzaCat}})

	cart := Cart{
		Items: []CartItem{
			{MenuItemID: uuid.New(), CategoryID: pizzaCat, Name: "Margherita", Quantity: 1, UnitPrice: 400, TotalPrice: 400},
			{MenuItemID: uuid.New(), CategoryID: uuid.New(), Name: "Coke", Quantity: 2, UnitPrice: 60, TotalPrice: 120},
		},
		Total: 520,
	}

	ok, discount := EvaluateForCheckout(r, cart, Env{Now: tuesday17})
	if !ok || discount != 200 {
		t.Errorf("discount = (%v, %v), want 200 (half of the pizza line only)", ok, discount)
	}
}

func TestComboMeal(t *testing.T) {
	burgerID, friesID, drinkID := uuid.New(), uuid.New(), uuid.New()
	r := mustRule(t, enum.OfferComboMeal,
		nil,
		map[string]any{"combo_price": 350.0},
		Scope{ComponentItems: []uuid.UUID{burgerID, friesID, drinkID}})

	cart := Cart{
		Items: []CartItem{
			{MenuItemID: burgerID, Quantity: 1, UnitPrice: 250, TotalPrice: 250},
			{MenuItemID: friesID, Quantity: 1, UnitPrice: 120, TotalPrice: 120},
			{MenuItemID: drinkID, Quantity: 1, UnitPrice: 80, TotalPrice: 80},
		},
		Total: 450,
	}

	ok, discount := EvaluateForCheckout(r, cart, Env{Now: tuesday17})
	if !ok || discount != 100 {
		t.Errorf("combo discount = (%v, %v), want 450 - 350 = 100", ok, discount)
	}

	cart.Items = cart.Items[:2]
	cart.Total = 370
	if ok, _ = EvaluateForCheckout(r, cart, Env{Now: tuesday17}); ok {
		t.Error("combo must not apply with a component missing")
	}
}

func TestPromoCode(t *testing.T) {
	r := mustRule(t, enum.OfferPromoCode,
		nil,
		map[string]any{"discount_percentage": 10.0}, Scope{})
	r.PromoCode = "WELCOME10"
	r.UsageLimit = 2
	r.UsageCount = 1

	if ok, _ := EvaluateForCheckout(r, cartOf(500), Env{Now: tuesday17, PromoCode: "welcome10"}); ok {
		t.Error("promo codes are case-sensitive")
	}
	ok, discount := EvaluateForCheckout(r, cartOf(500), Env{Now: tuesday17, PromoCode: "WELCOME10"})
	if !ok || discount != 50 {
		t.Errorf("promo = (%v, %v), want 10%% of 500", ok, discount)
	}

	r.UsageCount = 2
	if ok, _ = EvaluateForCheckout(r, cartOf(500), Env{Now: tuesday17, PromoCode: "WELCOME10"}); ok {
		t.Error("an exhausted promo must not apply")
	}
}

func TestCustomerClassification(t *testing.T) {
	first := mustRule(t, enum.OfferCustomerBased,
		map[string]any{"target_customer_type": "first_time"},
		map[string]any{"discount_percentage": 15.0}, Scope{})
	loyal := mustRule(t, enum.OfferCustomerBased,
		map[string]any{"target_customer_type": "loyalty"},
		map[string]any{"discount_amount": 75.0}, Scope{})
	repeat := mustRule(t, enum.OfferRepeatCustomer,
		map[string]any{"min_orders_count": 3.0},
		map[string]any{"discount_percentage": 5.0}, Scope{})

	if ok, _ := EvaluateForCheckout(first, cartOf(200), Env{Now: tuesday17, GuestOrderCount: 2}); ok {
		t.Error("first_time offer must not apply to a guest with prior orders")
	}
	if ok, _ := EvaluateForCheckout(first, cartOf(200), Env{Now: tuesday17, GuestOrderCount: 0}); !ok {
		t.Error("first_time offer should apply to a new guest")
	}
	if ok, _ := EvaluateForCheckout(loyal, cartOf(200), Env{Now: tuesday17, GuestOrderCount: 4}); ok {
		t.Error("loyalty offer needs five prior orders by default")
	}
	if ok, _ := EvaluateForCheckout(loyal, cartOf(200), Env{Now: tuesday17, GuestOrderCount: 5}); !ok {
		t.Error("loyalty offer should apply at five prior orders")
	}
	if ok, _ := EvaluateForCheckout(repeat, cartOf(200), Env{Now: tuesday17, GuestOrderCount: 2}); ok {
		t.Error("repeat offer below min_orders_count must not apply")
	}
	ok, discount := EvaluateForCheckout(repeat, cartOf(200), Env{Now: tuesday17, GuestOrderCount: 3})
	if !ok || discount != 10 {
		t.Errorf("repeat = (%v, %v), want 5%% of 200", ok, discount)
	}
}

func TestMalformedOffersAreSkipped(t *testing.T) {
	// Missing threshold: ParseTerms must reject it.
	if _, err := ParseTerms(enum.OfferMinOrderDiscount, nil, map[string]any{"discount_amount": 50.0}, Scope{}); err == nil {
		t.Error("min_order_discount without a threshold should fail to parse")
	}
	// BOGO without tagged buy/get items violates the catalog invariant.
	if _, err := ParseTerms(enum.OfferItemBuyGetFree, nil, nil, Scope{}); err == nil {
		t.Error("item_buy_get_free without buy and get items should fail to parse")
	}
	if _, err := ParseTerms(enum.OfferItemFreeAddon, nil, nil, Scope{QualifyingItems: []uuid.UUID{uuid.New()}}); err == nil {
		t.Error("item_free_addon without addon items should fail to parse")
	}

	// A rule whose terms never parsed is silently not applicable.
	broken := Rule{ID: uuid.New(), Name: "broken", Type: enum.OfferMinOrderDiscount, Active: true}
	if ok, _ := EvaluateForCheckout(broken, cartOf(5000), Env{Now: tuesday17}); ok {
		t.Error("a rule without terms must never apply")
	}
	if s := Suggest(cartOf(5000), []Rule{broken}, Env{Now: tuesday17}, SuggestOptions{}); s != nil {
		t.Errorf("a rule without terms must never be suggested, got %+v", s)
	}
}

func TestSuggestPicksBestOffer(t *testing.T) {
	small := mustRule(t, enum.OfferCartFlatAmount, nil, map[string]any{"discount_amount": 30.0}, Scope{})
	small.Priority = 10
	big := mustRule(t, enum.OfferCartPercentage, nil, map[string]any{"discount_percentage": 10.0}, Scope{})
	big.Priority = 1

	s := Suggest(cartOf(1000), []Rule{small, big}, Env{Now: tuesday17}, SuggestOptions{})
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	// 10% of 1000 beats the flat 30 even though the flat offer has
	// higher priority.
	if s.Discount != 100 {
		t.Errorf("suggested discount = %v, want the larger 100", s.Discount)
	}

	// An unlocked offer always beats a nearer almost-there one.
	locked := mustRule(t, enum.OfferMinOrderDiscount,
		map[string]any{"threshold_amount": 1100.0},
		map[string]any{"discount_amount": 500.0}, Scope{})
	locked.Priority = 100
	s = Suggest(cartOf(1000), []Rule{locked, small}, Env{Now: tuesday17}, SuggestOptions{})
	if s == nil || s.State != SuggestionUnlocked || s.Discount != 30 {
		t.Errorf("expected the unlocked flat offer, got %+v", s)
	}
}

func TestSuggestEqualPriorityKeepsInputOrder(t *testing.T) {
	a := mustRule(t, enum.OfferCartFlatAmount, nil, map[string]any{"discount_amount": 50.0}, Scope{})
	b := mustRule(t, enum.OfferCartFlatAmount, nil, map[string]any{"discount_amount": 50.0}, Scope{})
	a.Name, b.Name = "first", "second"
	a.Priority, b.Priority = 5, 5

	s := Suggest(cartOf(1000), []Rule{a, b}, Env{Now: tuesday17}, SuggestOptions{})
	if s == nil || s.OfferName != "first" {
		t.Errorf("equal priority should keep input order, got %+v", s)
	}
}

func TestSuggestTunableRatio(t *testing.T) {
	r := mustRule(t, enum.OfferMinOrderDiscount,
		map[string]any{"threshold_amount": 1000.0},
		map[string]any{"discount_amount": 100.0}, Scope{})

	// At 80% the same cart no longer earns an almost-there nudge.
	if s := Suggest(cartOf(700), []Rule{r}, Env{Now: tuesday17}, SuggestOptions{AlmostThereRatio: 0.8}); s != nil {
		t.Errorf("700 is below 80%% of 1000, want no suggestion, got %+v", s)
	}
	if s := Suggest(cartOf(800), []Rule{r}, Env{Now: tuesday17}, SuggestOptions{AlmostThereRatio: 0.8}); s == nil {
		t.Error("800 reaches 80% of 1000, want an almost-there suggestion")
	}
}

func TestEvaluationDoesNotMutateRules(t *testing.T) {
	r := mustRule(t, enum.OfferMinOrderDiscount,
		map[string]any{"threshold_amount": 500.0},
		map[string]any{"discount_amount": 50.0}, Scope{})
	before := r.UsageCount

	EvaluateForCheckout(r, cartOf(600), Env{Now: tuesday17})
	Suggest(cartOf(600), []Rule{r}, Env{Now: tuesday17}, SuggestOptions{})

	if r.UsageCount != before {
		t.Error("evaluation must never mutate the rule")
	}
}
