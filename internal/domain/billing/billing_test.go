package billing

import (
	"math"
	"testing"

	"github.com/ochiengk/dineqr-api/internal/domain/enum"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func gstRules() []TaxRule {
	return []TaxRule{
		{Name: "CGST", Rate: 2.5},
		{Name: "SGST", Rate: 2.5},
	}
}

func TestCalculateExclusiveScenario(t *testing.T) {
	items := []LineItem{
		{Name: "Paneer Tikka", Quantity: 2, UnitPrice: 200, TotalPrice: 400},
		{Name: "Lassi", Quantity: 1, UnitPrice: 150, TotalPrice: 150},
	}

	bill := Calculate(items, 0, gstRules(), enum.TaxModeExclusive)

	if !almostEqual(bill.Subtotal, 550) {
		t.Errorf("subtotal = %v, want 550", bill.Subtotal)
	}
	if !almostEqual(bill.TotalTax, 27.5) {
		t.Errorf("total tax = %v, want 27.5", bill.TotalTax)
	}
	if !almostEqual(bill.FinalAmount, 577.5) {
		t.Errorf("final amount = %v, want 577.5", bill.FinalAmount)
	}
	if len(bill.Taxes) != 2 {
		t.Fatalf("tax lines = %d, want 2", len(bill.Taxes))
	}
	for _, line := range bill.Taxes {
		if !almostEqual(line.Amount, 13.75) {
			t.Errorf("%s amount = %v, want 13.75", line.Name, line.Amount)
		}
	}
}

func TestCalculateEmptyInputs(t *testing.T) {
	if bill := Calculate(nil, 10, gstRules(), enum.TaxModeExclusive); bill.FinalAmount != 0 || bill.Subtotal != 0 {
		t.Errorf("empty items should produce a zero bill, got %+v", bill)
	}
	items := []LineItem{{Name: "Tea", Quantity: 1, UnitPrice: 20, TotalPrice: 20}}
	if bill := Calculate(items, 0, nil, enum.TaxModeExclusive); bill.FinalAmount != 0 {
		t.Errorf("no tax rules should produce a zero bill, got %+v", bill)
	}
}

// Splitting a line list in two must never change the combined subtotal.
func TestSubtotalAdditivity(t *testing.T) {
	a := []LineItem{{TotalPrice: 120.50}, {TotalPrice: 89.99}}
	b := []LineItem{{TotalPrice: 45}, {TotalPrice: 310.01}, {TotalPrice: 7.77}}

	both := append(append([]LineItem{}, a...), b...)
	rules := gstRules()

	sumA := Calculate(a, 0, rules, enum.TaxModeExclusive).Subtotal
	sumB := Calculate(b, 0, rules, enum.TaxModeExclusive).Subtotal
	sumAll := Calculate(both, 0, rules, enum.TaxModeExclusive).Subtotal

	if !almostEqual(sumA+sumB, sumAll) {
		t.Errorf("subtotal(A)+subtotal(B) = %v, want %v", sumA+sumB, sumAll)
	}
}

func TestDiscountBounds(t *testing.T) {
	items := []LineItem{{TotalPrice: 999.99}, {TotalPrice: 0.01}}
	for _, pct := range []float64{0, 0.5, 10, 33.33, 50, 99.99, 100} {
		bill := Calculate(items, pct, gstRules(), enum.TaxModeExclusive)
		if bill.DiscountAmount < 0 || bill.DiscountAmount > bill.Subtotal+eps {
			t.Errorf("pct=%v: discount %v outside [0, %v]", pct, bill.DiscountAmount, bill.Subtotal)
		}
	}
}

func TestExclusiveRoundTrip(t *testing.T) {
	items := []LineItem{{TotalPrice: 123.45}, {TotalPrice: 678.90}}
	rules := []TaxRule{
		{Name: "CGST", Rate: 2.5},
		{Name: "SGST", Rate: 2.5},
		{Name: "Service", Rate: 10},
	}

	bill := Calculate(items, 12.5, rules, enum.TaxModeExclusive)

	if !almostEqual(bill.FinalAmount, bill.TaxableBase+bill.TotalTax) {
		t.Errorf("final %v != base %v + tax %v", bill.FinalAmount, bill.TaxableBase, bill.TotalTax)
	}

	var sum float64
	for _, line := range bill.Taxes {
		sum += line.Amount
	}
	if !almostEqual(sum, bill.TotalTax) {
		t.Errorf("tax line sum %v != total tax %v", sum, bill.TotalTax)
	}
}

func TestCalculateInclusive(t *testing.T) {
	// 525 gross at a combined 5% means a 500 taxable base.
	items := []LineItem{{TotalPrice: 525}}
	bill := Calculate(items, 0, gstRules(), enum.TaxModeInclusive)

	if !almostEqual(bill.TaxableBase, 500) {
		t.Errorf("taxable base = %v, want 500", bill.TaxableBase)
	}
	if !almostEqual(bill.TotalTax, 25) {
		t.Errorf("total tax = %v, want 25", bill.TotalTax)
	}
	// Inclusive final amount stays the gross figure.
	if !almostEqual(bill.FinalAmount, 525) {
		t.Errorf("final amount = %v, want 525", bill.FinalAmount)
	}
	if !almostEqual(bill.Taxes[0].Amount, 12.5) || !almostEqual(bill.Taxes[1].Amount, 12.5) {
		t.Errorf("tax lines = %+v, want 12.5 each", bill.Taxes)
	}
}

func TestCalculateInclusiveWithDiscount(t *testing.T) {
	items := []LineItem{{TotalPrice: 1050}}
	bill := Calculate(items, 10, gstRules(), enum.TaxModeInclusive)

	// Discount on the gross: 1050 - 105 = 945; base = 945/1.05 = 900.
	if !almostEqual(bill.DiscountAmount, 105) {
		t.Errorf("discount = %v, want 105", bill.DiscountAmount)
	}
	if !almostEqual(bill.TaxableBase, 900) {
		t.Errorf("taxable base = %v, want 900", bill.TaxableBase)
	}
	if !almostEqual(bill.FinalAmount, 945) {
		t.Errorf("final amount = %v, want 945", bill.FinalAmount)
	}
	if !almostEqual(bill.TotalTax, 45) {
		t.Errorf("total tax = %v, want 45", bill.TotalTax)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{13.754, 13.75},
		{13.756, 13.76},
		{577.5, 577.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
