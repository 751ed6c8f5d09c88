package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/billing"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/offer"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
	"github.com/ochiengk/dineqr-api/pkg/pagination"
	"github.com/ochiengk/dineqr-api/pkg/utils"
)

// OrderService handles order placement and lifecycle
type OrderService struct {
	orderRepo    repository.OrderRepository
	menuItemRepo repository.MenuItemRepository
	tableRepo    repository.TableRepository
	customerRepo repository.CustomerRepository
	offerRepo    repository.OfferRepository
	taxRepo      repository.TaxSettingRepository
	settingsRepo repository.RestaurantSettingsRepository
	printerSvc   *PrinterService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	menuItemRepo repository.MenuItemRepository,
	tableRepo repository.TableRepository,
	customerRepo repository.CustomerRepository,
	offerRepo repository.OfferRepository,
	taxRepo repository.TaxSettingRepository,
	settingsRepo repository.RestaurantSettingsRepository,
	printerSvc *PrinterService,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		menuItemRepo: menuItemRepo,
		tableRepo:    tableRepo,
		customerRepo: customerRepo,
		offerRepo:    offerRepo,
		taxRepo:      taxRepo,
		settingsRepo: settingsRepo,
		printerSvc:   printerSvc,
	}
}

// OrderItemInput represents one requested line. MenuItemID is nil for
// manual entries keyed in by staff, which must then carry their own
// name and unit price.
type OrderItemInput struct {
	MenuItemID *uuid.UUID
	Name       string
	UnitPrice  float64
	Quantity   int
	Notes      string
}

// PlaceOrderInput represents the place order input
type PlaceOrderInput struct {
	TableID     uuid.UUID
	CustomerID  *uuid.UUID
	Items       []OrderItemInput
	PromoCode   string
	FreeItemIDs []uuid.UUID
	Notes       string
}

// PlaceOrder validates the cart against the menu, applies the best
// usable offer, computes the bill and persists the order together
// with its first kitchen ticket.
func (s *OrderService) PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}

	table, err := s.tableRepo.GetByID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	if !table.Active {
		return nil, apperror.ErrTableInactive
	}

	var customer *entity.Customer
	if input.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	orderItems, cart, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	env := offer.Env{
		Now:             time.Now(),
		PromoCode:       input.PromoCode,
		ChosenFreeItems: input.FreeItemIDs,
	}
	if customer != nil {
		env.GuestOrderCount = customer.OrderCount
	}

	appliedOfferID, discount, err := s.bestOffer(ctx, cart, env)
	if err != nil {
		return nil, err
	}
	if input.PromoCode != "" && appliedOfferID == nil {
		return nil, apperror.ErrOfferNotApplicable
	}

	taxRules, mode, err := s.billingContext(ctx)
	if err != nil {
		return nil, err
	}
	bill := billing.CalculateFlat(cartLines(orderItems), discount, taxRules, mode)

	totalItems := 0
	for _, it := range orderItems {
		totalItems += it.Quantity
	}

	order := &entity.Order{
		ID:             utils.NewUUID(),
		TableID:        table.ID,
		OrderNo:        utils.GenerateOrderNo(),
		Status:         enum.OrderStatusOpen,
		TotalItems:     totalItems,
		SubTotal:       toCents(bill.Subtotal),
		DiscountAmount: toCents(bill.DiscountAmount),
		TotalTax:       toCents(bill.TotalTax),
		Total:          toCents(bill.FinalAmount),
		TaxBreakdown:   taxBreakdown(bill),
		AppliedOfferID: appliedOfferID,
		Notes:          input.Notes,
		Items:          orderItems,
	}
	if customer != nil {
		order.CustomerID = &customer.ID
	}

	kot := &entity.KOT{
		ID:          utils.NewUUID(),
		OrderID:     order.ID,
		Number:      1,
		TableNumber: table.Number,
		Status:      enum.ItemStatusPlaced,
	}

	var redemption *entity.OfferRedemption
	if appliedOfferID != nil {
		redemption = &entity.OfferRedemption{
			OfferID:        *appliedOfferID,
			DiscountAmount: toCents(bill.DiscountAmount),
		}
		if customer != nil {
			redemption.CustomerID = &customer.ID
		}
	}

	if err := s.orderRepo.PlaceWithItems(ctx, order, kot, redemption); err != nil {
		return nil, err
	}

	if customer != nil {
		if err := s.customerRepo.IncrementOrderCount(ctx, customer.ID); err != nil {
			log.Printf("Warning: failed to increment order count for customer %s: %v", customer.ID, err)
		}
	}

	s.printerSvc.PrintTicket(order, kot, order.Items)

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// AddItems appends items to an open order under a new kitchen ticket
// and recomputes the order totals. The originally applied offer is
// re-evaluated against the grown cart; the order never switches to a
// different offer after placement.
func (s *OrderService) AddItems(ctx context.Context, orderID uuid.UUID, inputs []OrderItemInput) (*entity.Order, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewBadRequestError("No items to add")
	}

	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusOpen {
		return nil, apperror.ErrOrderNotOpen
	}

	newItems, _, err := s.buildItems(ctx, inputs)
	if err != nil {
		return nil, err
	}

	allItems := append(append([]entity.OrderItem{}, order.Items...), newItems...)

	var discount float64
	if order.AppliedOfferID != nil {
		discount, err = s.reapplyOffer(ctx, order, allItems)
		if err != nil {
			return nil, err
		}
	}

	taxRules, mode, err := s.billingContext(ctx)
	if err != nil {
		return nil, err
	}
	bill := billing.CalculateFlat(cartLines(allItems), discount, taxRules, mode)

	totalItems := 0
	for _, it := range allItems {
		totalItems += it.Quantity
	}

	kotCount, err := s.orderRepo.CountKOTs(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.TotalItems = totalItems
	order.SubTotal = toCents(bill.Subtotal)
	order.DiscountAmount = toCents(bill.DiscountAmount)
	order.TotalTax = toCents(bill.TotalTax)
	order.Total = toCents(bill.FinalAmount)
	order.TaxBreakdown = taxBreakdown(bill)

	kot := &entity.KOT{
		ID:          utils.NewUUID(),
		OrderID:     order.ID,
		Number:      int(kotCount) + 1,
		TableNumber: order.Table.Number,
		Status:      enum.ItemStatusPlaced,
	}

	if err := s.orderRepo.AddItemsWithKOT(ctx, order, newItems, kot); err != nil {
		return nil, err
	}

	s.printerSvc.PrintTicket(order, kot, newItems)

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// GetOrder returns an order with its items, table and offer preloaded
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// GetOpenOrderForTable returns the table's current open order, or nil
func (s *OrderService) GetOpenOrderForTable(ctx context.Context, tableID uuid.UUID) (*entity.Order, error) {
	return s.orderRepo.GetOpenByTable(ctx, tableID)
}

// ListOrders returns orders matching the filter with pagination
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, *pagination.Pagination, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	return orders, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// CancelOrder cancels an open order. Billed or paid orders stay put.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusOpen {
		return apperror.ErrOrderNotOpen
	}
	return s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusCancelled)
}

// MarkPaid settles a billed order
func (s *OrderService) MarkPaid(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusBilled {
		return apperror.NewConflictError("Order must be billed before payment")
	}
	return s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusPaid)
}

// buildItems resolves menu items, prices the lines in cents and
// builds the matching evaluation cart.
func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]entity.OrderItem, offer.Cart, error) {
	menuIDs := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, offer.Cart{}, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if in.MenuItemID != nil {
			menuIDs = append(menuIDs, *in.MenuItemID)
		}
	}

	menuItems, err := s.menuItemRepo.GetByIDs(ctx, menuIDs)
	if err != nil {
		return nil, offer.Cart{}, err
	}
	menuMap := make(map[uuid.UUID]*entity.MenuItem, len(menuItems))
	for i := range menuItems {
		menuMap[menuItems[i].ID] = &menuItems[i]
	}

	items := make([]entity.OrderItem, 0, len(inputs))
	cart := offer.Cart{}
	for _, in := range inputs {
		item := entity.OrderItem{
			ID:       utils.NewUUID(),
			Quantity: in.Quantity,
			Status:   enum.ItemStatusPlaced,
			Notes:    in.Notes,
		}
		cartItem := offer.CartItem{Quantity: in.Quantity}

		if in.MenuItemID != nil {
			menuItem, ok := menuMap[*in.MenuItemID]
			if !ok {
				return nil, offer.Cart{}, apperror.NewNotFoundError("Menu item")
			}
			if !menuItem.Available {
				return nil, offer.Cart{}, apperror.NewBadRequestError(menuItem.Name + " is currently unavailable")
			}
			item.MenuItemID = &menuItem.ID
			item.Name = menuItem.Name
			item.Vegetarian = menuItem.Vegetarian
			item.UnitPrice = menuItem.Price
			cartItem.MenuItemID = menuItem.ID
			cartItem.CategoryID = menuItem.CategoryID
		} else {
			if in.Name == "" || in.UnitPrice <= 0 {
				return nil, offer.Cart{}, apperror.NewBadRequestError("Manual items need a name and a price")
			}
			item.Name = in.Name
			item.UnitPrice = toCents(in.UnitPrice)
			item.ManualEntry = true
		}

		item.TotalPrice = item.UnitPrice * int64(item.Quantity)
		cartItem.Name = item.Name
		cartItem.UnitPrice = float64(item.UnitPrice) / 100
		cartItem.TotalPrice = float64(item.TotalPrice) / 100

		items = append(items, item)
		cart.Items = append(cart.Items, cartItem)
		cart.Total += cartItem.TotalPrice
	}

	return items, cart, nil
}

// bestOffer evaluates every active offer against the cart and returns
// the one yielding the largest discount, if any applies.
func (s *OrderService) bestOffer(ctx context.Context, cart offer.Cart, env offer.Env) (*uuid.UUID, float64, error) {
	offers, err := s.offerRepo.ListActive(ctx)
	if err != nil {
		return nil, 0, err
	}

	var bestID *uuid.UUID
	var bestDiscount float64
	for i := range offers {
		rule, err := offers[i].ToRule()
		if err != nil {
			log.Printf("Warning: skipping malformed offer %s: %v", offers[i].ID, err)
			continue
		}
		applies, discount := offer.EvaluateForCheckout(rule, cart, env)
		if applies && discount > bestDiscount {
			id := offers[i].ID
			bestID = &id
			bestDiscount = discount
		}
	}
	return bestID, bestDiscount, nil
}

// reapplyOffer re-evaluates the order's applied offer against the
// full item set. A discount of zero means the offer stopped applying.
func (s *OrderService) reapplyOffer(ctx context.Context, order *entity.Order, items []entity.OrderItem) (float64, error) {
	applied, err := s.offerRepo.GetByID(ctx, *order.AppliedOfferID)
	if err != nil {
		return 0, err
	}
	if applied == nil {
		return 0, nil
	}
	rule, err := applied.ToRule()
	if err != nil {
		return 0, nil
	}

	cart := offer.Cart{}
	for _, it := range items {
		ci := offer.CartItem{
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  float64(it.UnitPrice) / 100,
			TotalPrice: float64(it.TotalPrice) / 100,
		}
		if it.MenuItemID != nil {
			ci.MenuItemID = *it.MenuItemID
		}
		cart.Items = append(cart.Items, ci)
		cart.Total += ci.TotalPrice
	}

	env := offer.Env{Now: time.Now(), PromoCode: rule.PromoCode}
	if order.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *order.CustomerID)
		if err == nil && customer != nil {
			env.GuestOrderCount = customer.OrderCount
		}
	}

	_, discount := offer.EvaluateForCheckout(rule, cart, env)
	return discount, nil
}

// billingContext loads the active tax rules and the configured tax mode
func (s *OrderService) billingContext(ctx context.Context) ([]billing.TaxRule, enum.TaxMode, error) {
	taxes, err := s.taxRepo.ListActive(ctx)
	if err != nil {
		return nil, enum.TaxModeExclusive, err
	}
	rules := make([]billing.TaxRule, 0, len(taxes))
	for _, t := range taxes {
		rules = append(rules, billing.TaxRule{Name: t.Name, Rate: t.Rate})
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, enum.TaxModeExclusive, err
	}
	mode := enum.TaxModeExclusive
	if settings != nil {
		mode = settings.TaxMode
	}
	return rules, mode, nil
}

// cartLines converts persisted order items into billing line items
func cartLines(items []entity.OrderItem) []billing.LineItem {
	lines := make([]billing.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, billing.LineItem{
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   float64(it.UnitPrice) / 100,
			TotalPrice:  float64(it.TotalPrice) / 100,
			ManualEntry: it.ManualEntry,
		})
	}
	return lines
}

// taxBreakdown flattens a bill's tax lines for the jsonb column
func taxBreakdown(bill billing.Bill) entity.JSONMap {
	taxes := make([]map[string]any, 0, len(bill.Taxes))
	for _, t := range bill.Taxes {
		taxes = append(taxes, map[string]any{
			"name":   t.Name,
			"rate":   t.Rate,
			"amount": billing.Round2(t.Amount),
		})
	}
	return entity.JSONMap{
		"taxable_base": billing.Round2(bill.TaxableBase),
		"taxes":        taxes,
	}
}

// toCents converts a display amount to cents after rounding
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
