package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	money "github.com/rezonia/au-invoice/internal/decimal"
	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/processor"
	"github.com/rezonia/au-invoice/internal/render"
)

var totalsCmd = &cobra.Command{
	Use:   "totals [file|link|-]",
	Short: "Compute invoice totals",
	Long: `Compute line amounts, subtotal, GST and total for an invoice.

Output formats (--format):
  json   full line and summary breakdown
  table  aligned item table with the summary rows underneath
  csv    one row per line item

Examples:
  au-invoice totals invoice.json -f table
  au-invoice totals "?itemName_0=Design&itemPrice_0=500&itemGst_0=inclusive"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTotals,
}

func init() {
	rootCmd.AddCommand(totalsCmd)
}

// TotalsOutput is the JSON form of the totals command
type TotalsOutput struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Lines         []invoice.Line       `json:"lines"`
	Summary       []invoice.SummaryRow `json:"summary"`
	Subtotal      string               `json:"subtotal"`
	GSTTotal      string               `json:"gstTotal"`
	GrandTotal    string               `json:"grandTotal"`
	Warnings      []string             `json:"warnings,omitempty"`
}

func runTotals(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	result, err := processInput(pipeline, args, 30*time.Second)
	if err != nil {
		return err
	}

	return writeTotals(os.Stdout, result)
}

func writeTotals(w io.Writer, result *processor.Result) error {
	switch outputFormat {
	case "json":
		return writeJSON(w, TotalsOutput{
			InvoiceNumber: result.Document.Details.InvoiceNumber,
			Lines:         result.Lines,
			Summary:       result.Summary,
			Subtotal:      money.FormatAmount(result.Totals.Subtotal),
			GSTTotal:      money.FormatAmount(result.Totals.GSTTotal),
			GrandTotal:    money.FormatAmount(result.Totals.GrandTotal),
			Warnings:      result.Warnings,
		})
	case "table":
		return render.WriteItemTable(w, result.Lines, result.Summary, result.Document.Details.Currency)
	case "csv":
		return writeTotalsCSV(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func writeTotalsCSV(w io.Writer, result *processor.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "quantity", "gst", "unit_price", "amount", "subtotal", "gst_amount"}); err != nil {
		return err
	}

	for _, line := range result.Lines {
		record := []string{
			line.Name,
			line.Quantity.String(),
			string(line.GST),
			money.FormatAmount(line.UnitPrice),
			money.FormatAmount(line.Amount),
			money.FormatAmount(line.Subtotal),
			money.FormatAmount(line.GSTAmount),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
