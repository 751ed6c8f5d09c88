package offer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

// Result is the outcome of evaluating one rule against a cart.
// AmountNeeded is set when the cart is within the almost-there ratio
// of a threshold; Discount then holds the reward forgone.
type Result struct {
	Applies      bool
	Discount     float64
	AmountNeeded float64
}

type evalContext struct {
	Env
	Ratio float64
}

type evalFunc func(r Rule, cart Cart, ec evalContext) Result

// Evaluators are registered per type so new offer families plug in
// without growing a conditional chain.
var evaluators = map[enum.OfferType]evalFunc{
	enum.OfferMinOrderDiscount:  evalMinOrder,
	enum.OfferCartPercentage:    evalCartPercentage,
	enum.OfferCartFlatAmount:    evalCartFlat,
	enum.OfferPromoCode:         evalPromoCode,
	enum.OfferTimeBased:         evalTimeBased,
	enum.OfferCustomerBased:     evalCustomerBased,
	enum.OfferRepeatCustomer:    evalRepeatCustomer,
	enum.OfferItemBuyGetFree:    evalBuyGetFree,
	enum.OfferItemFreeAddon:     evalFreeAddon,
	enum.OfferItemPercentage:    evalItemPercentage,
	enum.OfferCartThresholdItem: evalThresholdItem,
	enum.OfferComboMeal:         evalCombo,
}

// WindowOpen applies the common validity filter: date range, then
// daily time window, then weekday set, short-circuiting on the first
// failure. The HH:MM comparison is lexicographic; windows never wrap
// past midnight.
func WindowOpen(r Rule, now time.Time) bool {
	if r.StartDate != nil && now.Before(*r.StartDate) {
		return false
	}
	if r.EndDate != nil && now.After(*r.EndDate) {
		return false
	}

	if r.HoursStart != "" && r.HoursEnd != "" {
		current := now.Format("15:04")
		if current < r.HoursStart || current > r.HoursEnd {
			return false
		}
	}

	if len(r.ValidDays) > 0 {
		day := strings.ToLower(now.Weekday().String())
		found := false
		for _, d := range r.ValidDays {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Usable reports whether a rule can be considered at all: it must be
// active, well formed, inside its validity window and not exhausted.
// Exhaustion and window expiry are ordinary "not applicable"
// outcomes, never errors.
func Usable(r Rule, now time.Time) bool {
	if !r.Active || r.Terms == nil {
		return false
	}
	if r.UsageLimit > 0 && r.UsageCount >= r.UsageLimit {
		return false
	}
	return WindowOpen(r, now)
}

// EvaluateForCheckout decides whether an offer applies to a cart at
// order placement and what discount it yields. Committing the
// discount (usage increment, redemption record) is the data layer's
// job, done atomically with the order itself.
func EvaluateForCheckout(r Rule, cart Cart, env Env) (bool, float64) {
	if !Usable(r, env.Now) {
		return false, 0
	}
	eval, ok := evaluators[r.Type]
	if !ok {
		return false, 0
	}
	res := eval(r, cart, evalContext{Env: env})
	if !res.Applies || res.Discount <= 0 {
		return false, 0
	}
	return true, res.Discount
}

// SuggestOptions tunes suggestion behavior. A zero value uses the
// package defaults.
type SuggestOptions struct {
	AlmostThereRatio float64
}

// Suggest evaluates every usable offer against the cart and returns
// the single suggestion worth surfacing, or nil. Unlocked offers
// beat almost-there ones; among unlocked offers the largest discount
// wins, and among almost-there ones the smallest remaining amount
// wins. Rules are ordered by descending priority with the input
// order preserved for equal priorities, so ties resolve to the
// earlier catalog entry.
func Suggest(cart Cart, rules []Rule, env Env, opts SuggestOptions) *Suggestion {
	ratio := opts.AlmostThereRatio
	if ratio <= 0 {
		ratio = AlmostThereRatio
	}

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	ec := evalContext{Env: env, Ratio: ratio}

	var best *Suggestion
	for _, r := range ordered {
		if !Usable(r, env.Now) {
			continue
		}
		eval, ok := evaluators[r.Type]
		if !ok {
			continue
		}
		res := eval(r, cart, ec)

		switch {
		case res.Applies && res.Discount > 0:
			if best == nil || best.State == SuggestionAlmostThere || res.Discount > best.Discount {
				best = unlockedSuggestion(r, res)
			}
		case res.AmountNeeded > 0:
			if best == nil || (best.State == SuggestionAlmostThere && res.AmountNeeded < best.AmountNeeded) {
				best = almostThereSuggestion(r, res)
			}
		}
	}
	return best
}

func unlockedSuggestion(r Rule, res Result) *Suggestion {
	return &Suggestion{
		OfferID:   r.ID,
		OfferName: r.Name,
		Type:      r.Type,
		State:     SuggestionUnlocked,
		Discount:  res.Discount,
		Message:   fmt.Sprintf("%s unlocked! Apply now and save %.2f", r.Name, res.Discount),
	}
}

func almostThereSuggestion(r Rule, res Result) *Suggestion {
	return &Suggestion{
		OfferID:      r.ID,
		OfferName:    r.Name,
		Type:         r.Type,
		State:        SuggestionAlmostThere,
		Discount:     res.Discount,
		AmountNeeded: res.AmountNeeded,
		Message:      fmt.Sprintf("Add %.2f more to unlock %s and save %.2f", res.AmountNeeded, r.Name, res.Discount),
	}
}

// capped applies an optional maximum to a computed discount.
func capped(v, max float64) float64 {
	if max > 0 && v > max {
		return max
	}
	return v
}

// percentOrFlat resolves the common "percentage or flat amount"
// benefit shape against a base amount.
func percentOrFlat(base, pct, flat, max float64) float64 {
	if pct > 0 {
		return capped(base*pct/100, max)
	}
	return capped(flat, max)
}

// thresholdResult implements the shared threshold/almost-there
// policy: at or above the threshold the reward applies (inclusive
// boundary); within ratio*threshold of it, the remaining amount and
// the reward forgone are reported.
func thresholdResult(total, threshold, reward, ratio float64) Result {
	if total >= threshold {
		return Result{Applies: true, Discount: reward}
	}
	if ratio > 0 && threshold > 0 && total >= threshold*ratio {
		return Result{Discount: reward, AmountNeeded: threshold - total}
	}
	return Result{}
}

func evalMinOrder(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(MinOrderTerms)
	return thresholdResult(cart.Total, t.Threshold, t.DiscountAmount, ec.Ratio)
}

func evalCartPercentage(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(CartPercentageTerms)
	if cart.Total >= t.MinAmount {
		return Result{Applies: true, Discount: capped(cart.Total*t.Percentage/100, t.MaxDiscount)}
	}
	// Reward forgone is what the discount would be right at the threshold.
	reward := capped(t.MinAmount*t.Percentage/100, t.MaxDiscount)
	return thresholdResult(cart.Total, t.MinAmount, reward, ec.Ratio)
}

func evalCartFlat(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(CartFlatTerms)
	if t.MinAmount <= 0 {
		return Result{Applies: true, Discount: t.DiscountAmount}
	}
	return thresholdResult(cart.Total, t.MinAmount, t.DiscountAmount, ec.Ratio)
}

func evalPromoCode(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(PercentOrFlatTerms)
	// Case-sensitive exact match, and never suggested unprompted.
	if r.PromoCode == "" || ec.PromoCode != r.PromoCode {
		return Result{}
	}
	return Result{Applies: true, Discount: percentOrFlat(cart.Total, t.Percentage, t.DiscountAmount, t.MaxDiscount)}
}

func evalTimeBased(r Rule, cart Cart, _ evalContext) Result {
	// The shared validity window already encodes the time constraint.
	t := r.Terms.(PercentOrFlatTerms)
	return Result{Applies: true, Discount: percentOrFlat(cart.Total, t.Percentage, t.DiscountAmount, t.MaxDiscount)}
}

func evalCustomerBased(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(CustomerTerms)
	switch t.TargetType {
	case enum.CustomerFirstTime:
		if ec.GuestOrderCount != 0 {
			return Result{}
		}
	case enum.CustomerReturning, enum.CustomerLoyalty:
		if ec.GuestOrderCount < t.MinOrders {
			return Result{}
		}
	default:
		return Result{}
	}
	return Result{Applies: true, Discount: percentOrFlat(cart.Total, t.Percentage, t.DiscountAmount, t.MaxDiscount)}
}

func evalRepeatCustomer(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(PercentOrFlatTerms)
	if ec.GuestOrderCount < t.MinOrdersCount {
		return Result{}
	}
	return Result{Applies: true, Discount: percentOrFlat(cart.Total, t.Percentage, t.DiscountAmount, t.MaxDiscount)}
}

func evalBuyGetFree(r Rule, cart Cart, _ evalContext) Result {
	t := r.Terms.(BOGOTerms)

	if t.GetSameItem {
		// Guest must carry enough of one buy item to cover both the
		// bought and the free units.
		for _, id := range t.BuyItems {
			line, ok := cart.lineFor(id)
			if ok && line.Quantity >= t.BuyQuantity+t.GetQuantity {
				return Result{Applies: true, Discount: line.UnitPrice * float64(t.GetQuantity)}
			}
		}
		return Result{}
	}

	for _, id := range t.BuyItems {
		if cart.quantityOf(id) < t.BuyQuantity {
			return Result{}
		}
	}

	// The discount is the get item's price; the buy item's price is
	// irrelevant. Prefer the cart line, fall back to the catalog price.
	getPrice := t.GetItemPrice
	for _, id := range t.GetItems {
		if line, ok := cart.lineFor(id); ok {
			getPrice = line.UnitPrice
			break
		}
	}
	if getPrice <= 0 {
		return Result{}
	}
	return Result{Applies: true, Discount: getPrice * float64(t.GetQuantity)}
}

func evalFreeAddon(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(FreeAddonTerms)

	qualified := false
	for _, id := range t.QualifyingItems {
		if _, ok := cart.lineFor(id); ok {
			qualified = true
			break
		}
	}
	if !qualified {
		return Result{}
	}

	chosen := ec.ChosenFreeItems
	if len(chosen) == 0 || len(chosen) > t.MaxFreeItems {
		return Result{}
	}

	// The choice itself is a UI concern; here the selection is only
	// validated against the configured addon set and priced from the
	// cart snapshot.
	var discount float64
	for _, id := range chosen {
		member := false
		for _, addon := range t.AddonItems {
			if addon == id {
				member = true
				break
			}
		}
		if !member {
			return Result{}
		}
		line, ok := cart.lineFor(id)
		if !ok {
			return Result{}
		}
		discount += line.UnitPrice
	}
	return Result{Applies: true, Discount: discount}
}

func evalItemPercentage(r Rule, cart Cart, _ evalContext) Result {
	t := r.Terms.(ItemPercentageTerms)

	// Percentage off the qualifying lines only, never the whole cart.
	var qualifyingTotal float64
	for _, it := range cart.Items {
		matched := false
		for _, id := range t.Items {
			if it.MenuItemID == id {
				matched = true
				break
			}
		}
		if !matched {
			for _, id := range t.Categories {
				if it.CategoryID == id {
					matched = true
					break
				}
			}
		}
		if matched {
			qualifyingTotal += it.TotalPrice
		}
	}
	if qualifyingTotal <= 0 {
		return Result{}
	}
	return Result{Applies: true, Discount: capped(qualifyingTotal*t.Percentage/100, t.MaxDiscount)}
}

func evalThresholdItem(r Rule, cart Cart, ec evalContext) Result {
	t := r.Terms.(ThresholdItemTerms)
	return thresholdResult(cart.Total, t.Threshold, t.ItemPrice, ec.Ratio)
}

func evalCombo(r Rule, cart Cart, _ evalContext) Result {
	t := r.Terms.(ComboTerms)

	var componentTotal float64
	for _, id := range t.ComponentItems {
		line, ok := cart.lineFor(id)
		if !ok {
			return Result{}
		}
		componentTotal += line.UnitPrice
	}
	discount := componentTotal - t.ComboPrice
	if discount <= 0 {
		return Result{}
	}
	return Result{Applies: true, Discount: discount}
}
