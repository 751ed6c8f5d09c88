package service

import (
	"context"
	"log"
	"time"

	"github.com/ochiengk/dineqr-api/internal/domain/billing"
	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/enum"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/pkg/printer"
)

// PrinterService renders kitchen tickets and guest bills to the
// configured thermal printer. Printing is best effort: a dead printer
// must never block an order or a bill.
type PrinterService struct {
	printer      printer.Printer
	settingsRepo repository.RestaurantSettingsRepository
	printerType  string
	charWidth    int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	settingsRepo repository.RestaurantSettingsRepository,
	printerType string,
	charWidth int,
) *PrinterService {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &PrinterService{
		printer:      p,
		settingsRepo: settingsRepo,
		printerType:  printerType,
		charWidth:    charWidth,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintTicket fires a kitchen ticket for the given items
func (s *PrinterService) PrintTicket(order *entity.Order, kot *entity.KOT, items []entity.OrderItem) {
	ticket := printer.Ticket{
		OrderNo:     order.OrderNo,
		KOTNumber:   kot.Number,
		TableNumber: kot.TableNumber,
		PlacedAt:    time.Now(),
	}
	for _, it := range items {
		ticket.Lines = append(ticket.Lines, printer.TicketLine{
			Quantity:   it.Quantity,
			Name:       it.Name,
			Vegetarian: it.Vegetarian,
			Notes:      it.Notes,
		})
	}

	if err := s.printer.Print(printer.RenderTicket(ticket, s.charWidth)); err != nil {
		log.Printf("Warning: failed to print KOT %d for order %s: %v", kot.Number, order.OrderNo, err)
	}
}

// PrintReceipt prints the final guest bill for a settled order
func (s *PrinterService) PrintReceipt(ctx context.Context, order *entity.Order, bill billing.Bill) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("Warning: failed to load settings for receipt: %v", err)
	}

	receipt := printer.Receipt{
		OrderNo:     order.OrderNo,
		TableNumber: order.Table.Number,
		BilledAt:    time.Now(),
		Currency:    "",
		Subtotal:    billing.Round2(bill.Subtotal),
		Discount:    billing.Round2(bill.DiscountAmount),
		Total:       billing.Round2(bill.FinalAmount),
	}
	if settings != nil {
		receipt.RestaurantName = settings.Name
		receipt.Address = settings.Address
		receipt.GSTIN = settings.GSTIN
		receipt.Currency = settings.Currency + " "
		receipt.TaxInclusive = settings.TaxMode == enum.TaxModeInclusive
	}

	for _, it := range order.Items {
		receipt.Lines = append(receipt.Lines, printer.ReceiptLine{
			Quantity: it.Quantity,
			Name:     it.Name,
			Total:    float64(it.TotalPrice) / 100,
		})
	}
	for _, t := range bill.Taxes {
		receipt.Taxes = append(receipt.Taxes, printer.ReceiptTax{
			Name:   t.Name,
			Rate:   t.Rate,
			Amount: billing.Round2(t.Amount),
		})
	}

	if err := s.printer.Print(printer.RenderReceipt(receipt, s.charWidth)); err != nil {
		log.Printf("Warning: failed to print receipt for order %s: %v", order.OrderNo, err)
	}
}

// TestPrint sends a test ticket so staff can verify the printer
func (s *PrinterService) TestPrint() error {
	ticket := printer.Ticket{
		OrderNo:     "TEST-000",
		KOTNumber:   0,
		TableNumber: 0,
		PlacedAt:    time.Now(),
		Lines: []printer.TicketLine{
			{Quantity: 1, Name: "Test Item", Notes: "printer check"},
		},
	}
	return s.printer.Print(printer.RenderTicket(ticket, s.charWidth))
}
