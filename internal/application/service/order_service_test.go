package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/printer"
)

type fakeOrderPlacementRepo struct {
	repository.OrderRepository
	placed     *entity.Order
	placedKOT  *entity.KOT
	redemption *entity.OfferRedemption
	addedKOT   *entity.KOT
	kotCount   int64
}

func (f *fakeOrderPlacementRepo) PlaceWithItems(ctx context.Context, order *entity.Order, kot *entity.KOT, redemption *entity.OfferRedemption) error {
	f.placed = order
	f.placedKOT = kot
	f.redemption = redemption
	f.kotCount = 1
	return nil
}

func (f *fakeOrderPlacementRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if f.placed == nil || f.placed.ID != id {
		return nil, nil
	}
	return f.placed, nil
}

func (f *fakeOrderPlacementRepo) CountKOTs(ctx context.Context, orderID uuid.UUID) (int64, error) {
	return f.kotCount, nil
}

func (f *fakeOrderPlacementRepo) AddItemsWithKOT(ctx context.Context, order *entity.Order, items []entity.OrderItem, kot *entity.KOT) error {
	order.Items = append(order.Items, items...)
	f.placed = order
	f.addedKOT = kot
	f.kotCount++
	return nil
}

type fakeTableRepo struct {
	repository.TableRepository
	table *entity.DiningTable
}

func (f *fakeTableRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	if f.table == nil || f.table.ID != id {
		return nil, nil
	}
	return f.table, nil
}

type fakeMenuRepo struct {
	repository.MenuItemRepository
	items []entity.MenuItem
}

func (f *fakeMenuRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	for _, id := range ids {
		for _, item := range f.items {
			if item.ID == id {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

type fakeGuestRepo struct {
	repository.CustomerRepository
	customer   *entity.Customer
	increments int
}

func (f *fakeGuestRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if f.customer == nil || f.customer.ID != id {
		return nil, nil
	}
	return f.customer, nil
}

func (f *fakeGuestRepo) IncrementOrderCount(ctx context.Context, id uuid.UUID) error {
	f.increments++
	return nil
}

type fakeOfferListRepo struct {
	repository.OfferRepository
	offers []entity.Offer
}

func (f *fakeOfferListRepo) ListActive(ctx context.Context) ([]entity.Offer, error) {
	return f.offers, nil
}

func (f *fakeOfferListRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	for i := range f.offers {
		if f.offers[i].ID == id {
			return &f.offers[i], nil
		}
	}
	return nil, nil
}

type orderFixture struct {
	svc       *OrderService
	orderRepo *fakeOrderPlacementRepo
	guestRepo *fakeGuestRepo
	table     *entity.DiningTable
	paneer    entity.MenuItem
	lassi     entity.MenuItem
}

func newOrderFixture(offers ...entity.Offer) *orderFixture {
	table := &entity.DiningTable{ID: uuid.New(), Number: 5, Active: true}
	paneer := entity.MenuItem{ID: uuid.New(), Name: "Paneer Tikka", Price: 20000, Available: true, CategoryID: uuid.New()}
	lassi := entity.MenuItem{ID: uuid.New(), Name: "Lassi", Price: 15000, Available: true, CategoryID: uuid.New()}

	orderRepo := &fakeOrderPlacementRepo{}
	guestRepo := &fakeGuestRepo{}
	taxRepo := &fakeTaxRepo{taxes: []entity.TaxSetting{
		{Name: "CGST", Rate: 2.5, Active: true},
		{Name: "SGST", Rate: 2.5, Active: true},
	}}
	settingsRepo := &fakeSettingsRepo{settings: &entity.RestaurantSettings{
		Name: "Test Kitchen", Currency: "INR", TaxMode: enum.TaxModeExclusive,
	}}
	printerSvc := NewPrinterService(printer.NewNullPrinter(), settingsRepo, "none", 32)

	svc := NewOrderService(
		orderRepo,
		&fakeMenuRepo{items: []entity.MenuItem{paneer, lassi}},
		&fakeTableRepo{table: table},
		guestRepo,
		&fakeOfferListRepo{offers: offers},
		taxRepo,
		settingsRepo,
		printerSvc,
	)

	return &orderFixture{
		svc:       svc,
		orderRepo: orderRepo,
		guestRepo: guestRepo,
		table:     table,
		paneer:    paneer,
		lassi:     lassi,
	}
}

func (f *orderFixture) cart() []OrderItemInput {
	return []OrderItemInput{
		{MenuItemID: &f.paneer.ID, Quantity: 2},
		{MenuItemID: &f.lassi.ID, Quantity: 1},
	}
}

func TestPlaceOrderComputesTotals(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID: f.table.ID,
		Items:   f.cart(),
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if order.Status != enum.OrderStatusOpen {
		t.Errorf("status = %v, want open", order.Status)
	}
	// 550.00 subtotal + 5% tax = 577.50
	if order.SubTotal != 55000 {
		t.Errorf("subtotal = %d cents, want 55000", order.SubTotal)
	}
	if order.Total != 57750 {
		t.Errorf("total = %d cents, want 57750", order.Total)
	}
	if order.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", order.TotalItems)
	}
	if f.orderRepo.placedKOT == nil || f.orderRepo.placedKOT.Number != 1 {
		t.Error("expected first kitchen ticket with number 1")
	}
	for _, item := range order.Items {
		if item.Status != enum.ItemStatusPlaced {
			t.Errorf("item %s status = %v, want placed", item.Name, item.Status)
		}
	}
}

func TestPlaceOrderAppliesBestOffer(t *testing.T) {
	small := entity.Offer{
		ID: uuid.New(), Name: "30 off", Active: true,
		Type:       enum.OfferCartFlatAmount,
		Conditions: entity.JSONMap{"min_amount": 100.0},
		Benefits:   entity.JSONMap{"discount_amount": 30.0},
	}
	big := entity.Offer{
		ID: uuid.New(), Name: "50 off over 500", Active: true,
		Type:       enum.OfferMinOrderDiscount,
		Conditions: entity.JSONMap{"threshold_amount": 500.0},
		Benefits:   entity.JSONMap{"discount_amount": 50.0},
	}
	f := newOrderFixture(small, big)

	order, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID: f.table.ID,
		Items:   f.cart(),
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if order.AppliedOfferID == nil || *order.AppliedOfferID != big.ID {
		t.Fatalf("applied offer = %v, want the larger discount %s", order.AppliedOfferID, big.ID)
	}
	if order.DiscountAmount != 5000 {
		t.Errorf("discount = %d cents, want 5000", order.DiscountAmount)
	}
	// (550 - 50) * 1.05 = 525.00
	if order.Total != 52500 {
		t.Errorf("total = %d cents, want 52500", order.Total)
	}
	if f.orderRepo.redemption == nil || f.orderRepo.redemption.OfferID != big.ID {
		t.Error("expected a redemption recorded for the applied offer")
	}
}

func TestPlaceOrderRejectsUnusablePromoCode(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID:   f.table.ID,
		Items:     f.cart(),
		PromoCode: "WELCOME10",
	})
	if err != apperror.ErrOfferNotApplicable {
		t.Fatalf("err = %v, want ErrOfferNotApplicable", err)
	}
}

func TestPlaceOrderRejectsInactiveTable(t *testing.T) {
	f := newOrderFixture()
	f.table.Active = false

	_, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID: f.table.ID,
		Items:   f.cart(),
	})
	if err != apperror.ErrTableInactive {
		t.Fatalf("err = %v, want ErrTableInactive", err)
	}
}

func TestPlaceOrderRejectsUnavailableItem(t *testing.T) {
	f := newOrderFixture()

	missing := uuid.New()
	_, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID: f.table.ID,
		Items:   []OrderItemInput{{MenuItemID: &missing, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error for unknown menu item")
	}
}

func TestPlaceOrderIncrementsGuestOrderCount(t *testing.T) {
	f := newOrderFixture()
	f.guestRepo.customer = &entity.Customer{ID: uuid.New(), Phone: "+919800000000", OrderCount: 2}

	_, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID:    f.table.ID,
		CustomerID: &f.guestRepo.customer.ID,
		Items:      f.cart(),
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if f.guestRepo.increments != 1 {
		t.Errorf("order count increments = %d, want 1", f.guestRepo.increments)
	}
}

func TestAddItemsOpensNewTicket(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID: f.table.ID,
		Items:   f.cart(),
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	order.Table = *f.table

	updated, err := f.svc.AddItems(context.Background(), order.ID, []OrderItemInput{
		{MenuItemID: &f.lassi.ID, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}

	if f.orderRepo.addedKOT == nil || f.orderRepo.addedKOT.Number != 2 {
		t.Error("expected second kitchen ticket with number 2")
	}
	if updated.TotalItems != 5 {
		t.Errorf("total items = %d, want 5", updated.TotalItems)
	}
	// 850.00 subtotal + 5% tax = 892.50
	if updated.Total != 89250 {
		t.Errorf("total = %d cents, want 89250", updated.Total)
	}
}

func TestAddItemsRejectsBilledOrder(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.PlaceOrder(context.Background(), &PlaceOrderInput{
		TableID: f.table.ID,
		Items:   f.cart(),
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	order.Status = enum.OrderStatusBilled

	if _, err := f.svc.AddItems(context.Background(), order.ID, f.cart()); err != apperror.ErrOrderNotOpen {
		t.Fatalf("err = %v, want ErrOrderNotOpen", err)
	}
}
