package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/printer"
)

type fakeOrderRepo struct {
	repository.OrderRepository
	order *entity.Order
}

func (f *fakeOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, nil
	}
	out := *f.order
	return &out, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	f.order = order
	return nil
}

type fakeTaxRepo struct {
	repository.TaxSettingRepository
	taxes []entity.TaxSetting
}

func (f *fakeTaxRepo) ListActive(ctx context.Context) ([]entity.TaxSetting, error) {
	return f.taxes, nil
}

type fakeSettingsRepo struct {
	repository.RestaurantSettingsRepository
	settings *entity.RestaurantSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.RestaurantSettings, error) {
	return f.settings, nil
}

func newBillingFixture(mode enum.TaxMode, order *entity.Order) (*BillingService, *fakeOrderRepo) {
	orderRepo := &fakeOrderRepo{order: order}
	taxRepo := &fakeTaxRepo{taxes: []entity.TaxSetting{
		{Name: "CGST", Rate: 2.5, Active: true},
		{Name: "SGST", Rate: 2.5, Active: true},
	}}
	settingsRepo := &fakeSettingsRepo{settings: &entity.RestaurantSettings{
		Name: "Test Kitchen", Currency: "INR", TaxMode: mode,
	}}
	printerSvc := NewPrinterService(printer.NewNullPrinter(), settingsRepo, "none", 32)
	return NewBillingService(orderRepo, taxRepo, settingsRepo, printerSvc), orderRepo
}

func testOrder(status enum.OrderStatus) *entity.Order {
	return &entity.Order{
		ID:      uuid.New(),
		OrderNo: "ORD-TEST",
		Status:  status,
		Table:   entity.DiningTable{Number: 2},
		Items: []entity.OrderItem{
			{Name: "Paneer Tikka", Quantity: 2, UnitPrice: 20000, TotalPrice: 40000},
			{Name: "Lassi", Quantity: 1, UnitPrice: 15000, TotalPrice: 15000},
		},
	}
}

func TestPreviewBillExclusive(t *testing.T) {
	order := testOrder(enum.OrderStatusOpen)
	svc, _ := newBillingFixture(enum.TaxModeExclusive, order)

	result, err := svc.PreviewBill(context.Background(), order.ID, 0)
	if err != nil {
		t.Fatalf("PreviewBill: %v", err)
	}

	bill := result.Bill
	if bill.Subtotal != 550.0 {
		t.Errorf("subtotal = %v, want 550", bill.Subtotal)
	}
	if bill.TotalTax != 27.5 {
		t.Errorf("total tax = %v, want 27.5", bill.TotalTax)
	}
	if bill.FinalAmount != 577.5 {
		t.Errorf("final = %v, want 577.5", bill.FinalAmount)
	}
}

func TestPreviewBillManualDiscountClamped(t *testing.T) {
	order := testOrder(enum.OrderStatusOpen)
	svc, _ := newBillingFixture(enum.TaxModeExclusive, order)

	result, err := svc.PreviewBill(context.Background(), order.ID, 250)
	if err != nil {
		t.Fatalf("PreviewBill: %v", err)
	}

	// 250% clamps to 100%, so everything is discounted away
	if result.Bill.DiscountAmount != 550.0 {
		t.Errorf("discount = %v, want 550", result.Bill.DiscountAmount)
	}
	if result.Bill.FinalAmount != 0.0 {
		t.Errorf("final = %v, want 0", result.Bill.FinalAmount)
	}
}

func TestPreviewBillInclusiveKeepsGross(t *testing.T) {
	order := testOrder(enum.OrderStatusOpen)
	svc, _ := newBillingFixture(enum.TaxModeInclusive, order)

	result, err := svc.PreviewBill(context.Background(), order.ID, 0)
	if err != nil {
		t.Fatalf("PreviewBill: %v", err)
	}

	bill := result.Bill
	if bill.FinalAmount != 550.0 {
		t.Errorf("final = %v, want gross 550", bill.FinalAmount)
	}
	var taxSum float64
	for _, tax := range bill.Taxes {
		taxSum += tax.Amount
	}
	if got := bill.TaxableBase + taxSum; got < 549.99 || got > 550.01 {
		t.Errorf("base + taxes = %v, want 550", got)
	}
}

func TestSettleBillMarksBilled(t *testing.T) {
	order := testOrder(enum.OrderStatusOpen)
	svc, orderRepo := newBillingFixture(enum.TaxModeExclusive, order)

	result, err := svc.SettleBill(context.Background(), order.ID, 0)
	if err != nil {
		t.Fatalf("SettleBill: %v", err)
	}

	if result.Order.Status != enum.OrderStatusBilled {
		t.Errorf("status = %v, want billed", result.Order.Status)
	}
	if orderRepo.order.Total != 57750 {
		t.Errorf("stored total = %d cents, want 57750", orderRepo.order.Total)
	}
	if orderRepo.order.TaxBreakdown == nil {
		t.Error("expected tax breakdown to be stored")
	}
}

func TestSettleBillRejectsNonOpenOrder(t *testing.T) {
	order := testOrder(enum.OrderStatusPaid)
	svc, _ := newBillingFixture(enum.TaxModeExclusive, order)

	if _, err := svc.SettleBill(context.Background(), order.ID, 0); err == nil {
		t.Fatal("expected error settling a paid order")
	}
}

func TestSettleBillManualDiscountDropsOffer(t *testing.T) {
	order := testOrder(enum.OrderStatusOpen)
	offerID := uuid.New()
	order.AppliedOfferID = &offerID
	svc, orderRepo := newBillingFixture(enum.TaxModeExclusive, order)

	result, err := svc.SettleBill(context.Background(), order.ID, 10)
	if err != nil {
		t.Fatalf("SettleBill: %v", err)
	}

	if result.Bill.DiscountAmount != 55.0 {
		t.Errorf("discount = %v, want 55", result.Bill.DiscountAmount)
	}
	if orderRepo.order.AppliedOfferID != nil {
		t.Error("manual discount should clear the applied offer")
	}
}

func TestCustomerClassification(t *testing.T) {
	cases := []struct {
		orders int
		want   enum.CustomerType
	}{
		{0, enum.CustomerFirstTime},
		{1, enum.CustomerReturning},
		{4, enum.CustomerReturning},
		{5, enum.CustomerLoyalty},
		{12, enum.CustomerLoyalty},
	}
	for _, tc := range cases {
		if got := Classify(tc.orders); got != tc.want {
			t.Errorf("Classify(%d) = %v, want %v", tc.orders, got, tc.want)
		}
	}
}
