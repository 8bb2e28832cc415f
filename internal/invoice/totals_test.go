package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

func item(qty int64, price string, gst model.GSTTreatment) model.LineItem {
	return model.LineItem{
		Name:     "Item",
		Quantity: decimal.NewFromInt(qty),
		Price:    decimal.RequireFromString(price),
		GST:      gst,
	}
}

func assertCents(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.Equal(t, expected, actual.Round(2).StringFixed(2), field)
}

func TestComputeTotals_AddGST(t *testing.T) {
	totals := invoice.ComputeTotals([]model.LineItem{item(1, "100", model.GSTAdd)})

	assertCents(t, "100.00", totals.Subtotal, "subtotal")
	assertCents(t, "10.00", totals.GSTTotal, "gst")
	assertCents(t, "110.00", totals.GrandTotal, "grand total")
}

func TestComputeTotals_InclusiveGST(t *testing.T) {
	totals := invoice.ComputeTotals([]model.LineItem{item(1, "110", model.GSTInclusive)})

	assertCents(t, "100.00", totals.Subtotal, "subtotal")
	assertCents(t, "10.00", totals.GSTTotal, "gst")
	assertCents(t, "110.00", totals.GrandTotal, "grand total")
}

func TestComputeTotals_Mixed(t *testing.T) {
	totals := invoice.ComputeTotals([]model.LineItem{
		item(2, "100", model.GSTAdd),
		item(1, "50", model.GSTNone),
	})

	assertCents(t, "250.00", totals.Subtotal, "subtotal")
	assertCents(t, "20.00", totals.GSTTotal, "gst")
	assertCents(t, "270.00", totals.GrandTotal, "grand total")
}

func TestComputeTotals_NoGST(t *testing.T) {
	totals := invoice.ComputeTotals([]model.LineItem{
		item(3, "10", model.GSTNone),
		item(1, "5.50", model.GSTNone),
	})

	assert.True(t, totals.GSTTotal.IsZero())
	assert.False(t, totals.HasGST())
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal))
	assertCents(t, "35.50", totals.GrandTotal, "grand total")
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := invoice.ComputeTotals(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GSTTotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotals_InclusiveKeepsGross(t *testing.T) {
	// 3 x $99.99 inclusive: parts must add back to the entered total
	totals := invoice.ComputeTotals([]model.LineItem{item(3, "99.99", model.GSTInclusive)})

	assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("299.97")), "got %s", totals.GrandTotal)
	assertCents(t, "272.70", totals.Subtotal, "subtotal")
	assertCents(t, "27.27", totals.GSTTotal, "gst")
}

func TestComputeTotals_UnknownTreatment(t *testing.T) {
	totals := invoice.ComputeTotals([]model.LineItem{item(1, "40", model.GSTTreatment("maybe"))})

	assertCents(t, "40.00", totals.Subtotal, "subtotal")
	assert.True(t, totals.GSTTotal.IsZero())
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name      string
		item      model.LineItem
		unitPrice string
		amount    string
		label     string
	}{
		{"no gst", item(2, "50", model.GSTNone), "50.00", "100.00", "0%"},
		{"add gst shows price unchanged", item(2, "50", model.GSTAdd), "50.00", "100.00", "10%"},
		{"inclusive shows exclusive unit price", item(2, "110", model.GSTInclusive), "100.00", "220.00", "10%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := invoice.ComputeLine(tt.item)
			assertCents(t, tt.unitPrice, line.UnitPrice, "unit price")
			assertCents(t, tt.amount, line.Amount, "amount")
			assert.Equal(t, tt.label, line.GSTLabel)
		})
	}
}

func TestComputeLines(t *testing.T) {
	lines := invoice.ComputeLines([]model.LineItem{
		item(1, "10", model.GSTAdd),
		item(1, "20", model.GSTNone),
	})

	require.Len(t, lines, 2)
	assertCents(t, "1.00", lines[0].GSTAmount, "first gst")
	assert.True(t, lines[1].GSTAmount.IsZero())
}

func TestSummaryRows_WithGST(t *testing.T) {
	totals := invoice.ComputeTotals([]model.LineItem{item(1, "100", model.GSTAdd)})
	rows := invoice.SummaryRows(totals, "AUD")

	require.Len(t, rows, 3)
	assert.Equal(t, "Subtotal", rows[0].Label)
	assert.Equal(t, "$100.00", rows[0].Formatted)
	assert.Equal(t, "TOTAL GST(10%)", rows[1].Label)
	assert.Equal(t, "$10.00", rows[1].Formatted)
	assert.Equal(t, "Total AUD", rows[2].Label)
	assert.Equal(t, "$110.00", rows[2].Formatted)
	assert.True(t, rows[2].Bold)
}

func TestSummaryRows_WithoutGST(t *testing.T) {
	totals := invoice.ComputeTotals([]model.LineItem{item(4, "25", model.GSTNone)})
	rows := invoice.SummaryRows(totals, "")

	require.Len(t, rows, 1)
	assert.Equal(t, "Total", rows[0].Label)
	assert.Equal(t, "$100.00", rows[0].Formatted)
}

func TestAmountHeader(t *testing.T) {
	assert.Equal(t, "Amount", invoice.AmountHeader(""))
	assert.Equal(t, "Amount USD", invoice.AmountHeader("USD"))
}
