// Package invoice computes GST totals, display rows and metadata defaults
// for Australian tax invoices. Everything here is pure and deterministic.
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/au-invoice/internal/decimal"
	"github.com/rezonia/au-invoice/internal/model"
)

// Labels used in the GST column
const (
	GSTLabelTaxed  = "10%"
	GSTLabelExempt = "0%"
)

// Line holds the display and aggregate values for one line item
type Line struct {
	ID        string             `json:"id,omitempty"`
	Name      string             `json:"name"`
	Quantity  decimal.Decimal    `json:"quantity"`
	GST       model.GSTTreatment `json:"gst"`
	GSTLabel  string             `json:"gstLabel"`
	UnitPrice decimal.Decimal    `json:"unitPrice"` // GST-exclusive for inclusive items
	Amount    decimal.Decimal    `json:"amount"`    // quantity * price as entered
	Subtotal  decimal.Decimal    `json:"subtotal"`  // contribution to the subtotal
	GSTAmount decimal.Decimal    `json:"gstAmount"` // contribution to the GST total
}

// ComputeLine derives the per-row values for item.
// Unknown treatments are handled like GSTNone.
func ComputeLine(item model.LineItem) Line {
	gross := item.Quantity.Mul(item.Price)

	line := Line{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		GST:       item.GST,
		GSTLabel:  GSTLabelExempt,
		UnitPrice: item.Price,
		Amount:    gross,
		Subtotal:  gross,
		GSTAmount: money.Zero,
	}

	if item.GST.Taxable() {
		line.GSTLabel = GSTLabelTaxed
	}

	switch item.GST {
	case model.GSTAdd:
		line.GSTAmount = money.GSTOn(gross)
	case model.GSTInclusive:
		line.UnitPrice = money.ExcludingGST(item.Price)
		line.Subtotal = money.ExcludingGST(gross)
		line.GSTAmount = money.GSTIncluded(gross)
	}

	return line
}

// ComputeLines derives display rows for every item
func ComputeLines(items []model.LineItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, ComputeLine(item))
	}
	return lines
}

// ComputeTotals sums subtotal and GST across items.
// GrandTotal is always Subtotal + GSTTotal.
func ComputeTotals(items []model.LineItem) model.Totals {
	subtotal := money.Zero
	gst := money.Zero

	for _, item := range items {
		line := ComputeLine(item)
		subtotal = subtotal.Add(line.Subtotal)
		gst = gst.Add(line.GSTAmount)
	}

	return model.Totals{
		Subtotal:   subtotal,
		GSTTotal:   gst,
		GrandTotal: subtotal.Add(gst),
	}
}

// SummaryRow is one line of the totals block under the item table
type SummaryRow struct {
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
	Bold      bool            `json:"bold"`
}

// Summary labels
const (
	LabelSubtotal = "Subtotal"
	LabelGSTTotal = "TOTAL GST(10%)"
	LabelTotal    = "Total"
)

// SummaryRows returns the totals block. When the aggregate GST is positive
// it shows Subtotal, GST and Total; otherwise only the Total row.
func SummaryRows(totals model.Totals, currency string) []SummaryRow {
	total := SummaryRow{
		Label:     withCurrency(LabelTotal, currency),
		Amount:    totals.GrandTotal,
		Formatted: money.FormatCurrency(totals.GrandTotal),
		Bold:      true,
	}

	if !totals.HasGST() {
		return []SummaryRow{total}
	}

	return []SummaryRow{
		{
			Label:     LabelSubtotal,
			Amount:    totals.Subtotal,
			Formatted: money.FormatCurrency(totals.Subtotal),
		},
		{
			Label:     LabelGSTTotal,
			Amount:    totals.GSTTotal,
			Formatted: money.FormatCurrency(totals.GSTTotal),
		},
		total,
	}
}

// AmountHeader is the heading of the amount column, e.g. "Amount AUD"
func AmountHeader(currency string) string {
	return withCurrency("Amount", currency)
}

func withCurrency(label, currency string) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return label
	}
	return label + " " + currency
}
