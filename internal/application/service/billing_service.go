package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ochiengk/dineqr-api/internal/domain/billing"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/apperror"
)

// BillingService produces bills for open orders and settles them
type BillingService struct {
	orderRepo    repository.OrderRepository
	taxRepo      repository.TaxSettingRepository
	settingsRepo repository.RestaurantSettingsRepository
	printerSvc   *PrinterService
}

// NewBillingService creates a new billing service
func NewBillingService(
	orderRepo repository.OrderRepository,
	taxRepo repository.TaxSettingRepository,
	settingsRepo repository.RestaurantSettingsRepository,
	printerSvc *PrinterService,
) *BillingService {
	return &BillingService{
		orderRepo:    orderRepo,
		taxRepo:      taxRepo,
		settingsRepo: settingsRepo,
		printerSvc:   printerSvc,
	}
}

// BillResult pairs the computed bill with rounded display figures
type BillResult struct {
	Order *entity.Order `json:"order"`
	Bill  billing.Bill  `json:"bill"`
}

// PreviewBill recomputes the bill for an order with an optional
// manual discount percentage on top. The manual percentage replaces
// any offer discount rather than stacking with it; the larger of the
// two never applies together. Percentages outside [0, 100] are
// clamped here, before the engine sees them.
func (s *BillingService) PreviewBill(ctx context.Context, orderID uuid.UUID, manualDiscountPct float64) (*BillResult, error) {
	order, rules, mode, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	bill := s.compute(order, manualDiscountPct, rules, mode)
	return &BillResult{Order: order, Bill: bill}, nil
}

// SettleBill finalizes an open order's bill, persists the figures and
// marks the order billed. The printed receipt uses the same figures.
func (s *BillingService) SettleBill(ctx context.Context, orderID uuid.UUID, manualDiscountPct float64) (*BillResult, error) {
	order, rules, mode, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enum.OrderStatusOpen {
		return nil, apperror.ErrOrderNotOpen
	}

	bill := s.compute(order, manualDiscountPct, rules, mode)

	order.SubTotal = toCents(bill.Subtotal)
	order.DiscountAmount = toCents(bill.DiscountAmount)
	order.TotalTax = toCents(bill.TotalTax)
	order.Total = toCents(bill.FinalAmount)
	order.TaxBreakdown = taxBreakdown(bill)
	order.Status = enum.OrderStatusBilled
	if manualDiscountPct > 0 {
		// A manual discount overrides the offer on the final bill.
		order.AppliedOfferID = nil
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.printerSvc.PrintReceipt(ctx, order, bill)

	return &BillResult{Order: order, Bill: bill}, nil
}

func (s *BillingService) load(ctx context.Context, orderID uuid.UUID) (*entity.Order, []billing.TaxRule, enum.TaxMode, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, nil, enum.TaxModeExclusive, err
	}
	if order == nil {
		return nil, nil, enum.TaxModeExclusive, apperror.NewNotFoundError("Order")
	}

	taxes, err := s.taxRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, enum.TaxModeExclusive, err
	}
	rules := make([]billing.TaxRule, 0, len(taxes))
	for _, t := range taxes {
		rules = append(rules, billing.TaxRule{Name: t.Name, Rate: t.Rate})
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, enum.TaxModeExclusive, err
	}
	mode := enum.TaxModeExclusive
	if settings != nil {
		mode = settings.TaxMode
	}
	return order, rules, mode, nil
}

func (s *BillingService) compute(order *entity.Order, manualDiscountPct float64, rules []billing.TaxRule, mode enum.TaxMode) billing.Bill {
	lines := cartLines(order.Items)

	if manualDiscountPct > 0 {
		if manualDiscountPct > 100 {
			manualDiscountPct = 100
		}
		return billing.Calculate(lines, manualDiscountPct, rules, mode)
	}
	return billing.CalculateFlat(lines, float64(order.DiscountAmount)/100, rules, mode)
}
