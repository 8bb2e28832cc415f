// Package render turns an invoice document into a PDF or a plain text table.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	money "github.com/rezonia/au-invoice/internal/decimal"
	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

// TextRenderer writes an invoice as an aligned text table
type TextRenderer struct{}

// NewTextRenderer creates a text renderer
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// ContentType is the MIME type written by Render
func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes doc to w
func (r *TextRenderer) Render(w io.Writer, doc model.Document) error {
	d := doc.Details

	fmt.Fprintf(w, "Tax Invoice # %s\n", d.InvoiceNumber)
	fmt.Fprintf(w, "Invoice Date: %s\n", invoice.FormatDisplayDate(d.InvoiceDate))
	if d.DueDate != "" {
		fmt.Fprintf(w, "Due Date:     %s\n", invoice.FormatDisplayDate(d.DueDate))
	}
	if doc.Client.Name != "" {
		fmt.Fprintf(w, "Bill To:      %s\n", doc.Client.Name)
	}
	fmt.Fprintln(w)

	summary := invoice.SummaryRows(invoice.ComputeTotals(doc.Items), d.Currency)
	if err := WriteItemTable(w, invoice.ComputeLines(doc.Items), summary, d.Currency); err != nil {
		return model.NewRenderError("text", "failed to write table", err)
	}
	return nil
}

// WriteItemTable writes the item rows and the summary rows under them as
// an aligned table
func WriteItemTable(w io.Writer, lines []invoice.Line, summary []invoice.SummaryRow, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DESCRIPTION\tQTY\tUNIT PRICE\tGST\t%s\n", invoice.AmountHeader(currency))
	fmt.Fprintln(tw, "-----------\t---\t----------\t---\t------")
	for _, line := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			line.Name,
			line.Quantity.String(),
			money.FormatCurrency(line.UnitPrice),
			line.GSTLabel,
			money.FormatCurrency(line.Amount),
		)
	}
	fmt.Fprintln(tw, "\t\t\t\t")
	for _, row := range summary {
		fmt.Fprintf(tw, "\t\t\t%s\t%s\n", row.Label, row.Formatted)
	}
	return tw.Flush()
}
