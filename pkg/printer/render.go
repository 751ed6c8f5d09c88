package printer

import (
	"fmt"
	"time"
)

// TicketLine is one item line on a kitchen ticket.
type TicketLine struct {
	Quantity   int
	Name       string
	Vegetarian bool
	Notes      string
}

// Ticket holds the data printed on a kitchen order ticket.
type Ticket struct {
	OrderNo     string
	KOTNumber   int
	TableNumber int
	PlacedAt    time.Time
	Lines       []TicketLine
}

// RenderTicket renders a kitchen order ticket as an ESC/POS byte stream.
// Kitchen tickets carry no prices, only quantities and preparation notes.
func RenderTicket(t Ticket, charWidth int) []byte {
	d := NewDocument(charWidth)

	d.SetAlign(AlignCenter).SetFontSize(FontDouble).
		TextF("KOT #%d", t.KOTNumber).
		SetFontSize(FontNormal)
	d.TextF("Table %d", t.TableNumber)
	d.Text(t.PlacedAt.Format("02 Jan 15:04"))
	d.SetAlign(AlignLeft).Separator('-')

	for _, line := range t.Lines {
		name := line.Name
		if line.Vegetarian {
			name = name + " (V)"
		}
		d.SetBold(true).TextF("%dx %s", line.Quantity, name).SetBold(false)
		if line.Notes != "" {
			d.TextF("   %s", line.Notes)
		}
	}

	d.Separator('-')
	d.TextF("Order %s", t.OrderNo)
	d.FeedLines(3).Cut()
	return d.Bytes()
}

// ReceiptLine is one item line on a guest bill.
type ReceiptLine struct {
	Quantity int
	Name     string
	Total    float64
}

// ReceiptTax is one tax component line on a guest bill.
type ReceiptTax struct {
	Name   string
	Rate   float64
	Amount float64
}

// Receipt holds the data printed on a guest bill.
type Receipt struct {
	RestaurantName string
	Address        string
	GSTIN          string
	OrderNo        string
	TableNumber    int
	BilledAt       time.Time
	Currency       string
	Lines          []ReceiptLine
	Subtotal       float64
	Discount       float64
	Taxes          []ReceiptTax
	Total          float64
	TaxInclusive   bool
}

// RenderReceipt renders a guest bill as an ESC/POS byte stream.
func RenderReceipt(r Receipt, charWidth int) []byte {
	d := NewDocument(charWidth)
	money := func(v float64) string { return fmt.Sprintf("%s%.2f", r.Currency, v) }

	d.SetAlign(AlignCenter).SetFontSize(FontWide).
		Text(r.RestaurantName).
		SetFontSize(FontNormal)
	if r.Address != "" {
		d.Text(r.Address)
	}
	if r.GSTIN != "" {
		d.TextF("GSTIN: %s", r.GSTIN)
	}
	d.SetAlign(AlignLeft).Separator('=')
	d.KeyValue("Order", r.OrderNo)
	d.KeyValue("Table", fmt.Sprintf("%d", r.TableNumber))
	d.KeyValue("Date", r.BilledAt.Format("02 Jan 2006 15:04"))
	d.Separator('-')

	for _, line := range r.Lines {
		d.ItemLine(line.Quantity, line.Name, money(line.Total))
	}

	d.Separator('-')
	d.KeyValue("Subtotal", money(r.Subtotal))
	if r.Discount > 0 {
		d.KeyValue("Discount", "-"+money(r.Discount))
	}
	for _, tax := range r.Taxes {
		d.KeyValue(fmt.Sprintf("%s (%.2f%%)", tax.Name, tax.Rate), money(tax.Amount))
	}
	if r.TaxInclusive {
		d.Text("Prices are inclusive of taxes")
	}
	d.Separator('=')
	d.SetBold(true).KeyValue("TOTAL", money(r.Total)).SetBold(false)
	d.Separator('=')
	d.SetAlign(AlignCenter).Text("Thank you, visit again!")
	d.FeedLines(3).Cut()
	return d.Bytes()
}
