package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/model"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults [YYYY-MM-DD]",
	Short: "Derive invoice number and due date",
	Long: `Derive the default invoice number and due date from an invoice date.

The number is the date as YYYYMMDD followed by -0001 and the due date is
30 days later. Without a date, today in --timezone is used.

Examples:
  au-invoice defaults 2025-01-15    # 20250115-0001, due 2025-02-14
  au-invoice defaults --timezone Australia/Perth -f table`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDefaults,
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}

func runDefaults(cmd *cobra.Command, args []string) error {
	var details model.InvoiceDetails

	if len(args) == 1 {
		number, due, err := invoice.DeriveInvoiceDefaults(args[0])
		if err != nil {
			return err
		}
		details = model.InvoiceDetails{InvoiceDate: args[0], InvoiceNumber: number, DueDate: due}
	} else {
		now, err := today()
		if err != nil {
			return err
		}
		details = invoice.NewDetails(now)
	}

	if outputFormat == "json" {
		return writeJSON(os.Stdout, details)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Invoice Date:\t%s\n", invoice.FormatDisplayDate(details.InvoiceDate))
	fmt.Fprintf(tw, "Invoice Number:\t%s\n", details.InvoiceNumber)
	fmt.Fprintf(tw, "Due Date:\t%s\n", invoice.FormatDisplayDate(details.DueDate))
	return tw.Flush()
}
