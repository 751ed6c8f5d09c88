// Package billing computes bill totals for an order snapshot:
// subtotal, discount, per-tax breakdown and final amount, in both
// tax-exclusive and tax-inclusive modes. All functions are pure and
// operate on full-precision values; rounding to two decimals happens
// only at the display/persistence boundary via Round2.
package billing

import (
	"math"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

// LineItem is one billable line. TotalPrice is trusted as
// unit_price * quantity; the data layer owns that invariant.
type LineItem struct {
	Name        string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
	ManualEntry bool
}

// TaxRule is one configured tax (e.g. CGST 2.5%).
type TaxRule struct {
	Name string
	Rate float64
}

// TaxLine is one computed tax amount in a bill breakdown.
type TaxLine struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Bill carries every figure a receipt needs to print without
// recomputation.
type Bill struct {
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discount_amount"`
	TaxableBase    float64   `json:"taxable_base"`
	Taxes          []TaxLine `json:"taxes"`
	TotalTax       float64   `json:"total_tax"`
	FinalAmount    float64   `json:"final_amount"`
}

// Calculate computes a bill from the given lines, discount
// percentage and tax rules.
//
// discountPct must already be within [0, 100]; out-of-range values
// are propagated untouched so a caller bug surfaces on the bill
// instead of being silently rewritten.
//
// With no lines or no tax rules the result is an all-zero Bill:
// billing screens render "nothing to bill", they do not error.
func Calculate(items []LineItem, discountPct float64, rules []TaxRule, mode enum.TaxMode) Bill {
	if len(items) == 0 || len(rules) == 0 {
		return Bill{Taxes: []TaxLine{}}
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.TotalPrice
	}
	discount := subtotal * discountPct / 100

	if mode == enum.TaxModeInclusive {
		return calculateInclusive(subtotal, discount, rules)
	}
	return calculateExclusive(subtotal, discount, rules)
}

// CalculateFlat is Calculate with an absolute discount amount instead
// of a percentage, used when the discount comes from an applied offer.
func CalculateFlat(items []LineItem, discountAmount float64, rules []TaxRule, mode enum.TaxMode) Bill {
	if len(items) == 0 || len(rules) == 0 {
		return Bill{Taxes: []TaxLine{}}
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.TotalPrice
	}

	if mode == enum.TaxModeInclusive {
		return calculateInclusive(subtotal, discountAmount, rules)
	}
	return calculateExclusive(subtotal, discountAmount, rules)
}

// calculateExclusive adds tax on top of the discounted subtotal.
func calculateExclusive(subtotal, discount float64, rules []TaxRule) Bill {
	base := subtotal - discount

	taxes := make([]TaxLine, 0, len(rules))
	var totalTax float64
	for _, r := range rules {
		amount := base * r.Rate / 100
		taxes = append(taxes, TaxLine{Name: r.Name, Rate: r.Rate, Amount: amount})
		totalTax += amount
	}

	return Bill{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableBase:    base,
		Taxes:          taxes,
		TotalTax:       totalTax,
		FinalAmount:    base + totalTax,
	}
}

// calculateInclusive treats the subtotal as already containing tax.
// The discount applies to the gross amount, then the combined rate
// backs the taxable base out of the discounted gross: for combined
// rate R, base = gross * 100/(100+R), and each rule's line is
// base * rate/100. The final amount stays the discounted gross, so
// the bill remains a consistent tax-inclusive figure.
func calculateInclusive(subtotal, discount float64, rules []TaxRule) Bill {
	gross := subtotal - discount

	var combined float64
	for _, r := range rules {
		combined += r.Rate
	}
	base := gross * 100 / (100 + combined)

	taxes := make([]TaxLine, 0, len(rules))
	for _, r := range rules {
		taxes = append(taxes, TaxLine{Name: r.Name, Rate: r.Rate, Amount: base * r.Rate / 100})
	}

	return Bill{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableBase:    base,
		Taxes:          taxes,
		TotalTax:       gross - base,
		FinalAmount:    gross,
	}
}

// Round2 rounds a monetary amount to two decimals. Used only when a
// figure leaves the engine for display or storage.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
