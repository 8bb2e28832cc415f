package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/urlstate"
)

var linkBaseURL string

var linkCmd = &cobra.Command{
	Use:   "link [file|link|-]",
	Short: "Print a shareable link for an invoice",
	Long: `Encode an invoice document as a shareable link.

The whole invoice lives in the query string, so the link can be opened
again with render, totals or GET /api/v1/state.

Examples:
  au-invoice link invoice.json
  au-invoice link invoice.json --base-url https://invoice.example/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().StringVar(&linkBaseURL, "base-url", "", "Prefix the query string with this URL")
}

func runLink(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	result, err := processInput(pipeline, args, 30*time.Second)
	if err != nil {
		return err
	}

	query, err := urlstate.EncodeQuery(*result.Document)
	if err != nil {
		return err
	}

	if len(result.Document.Items) > urlstate.MaxURLItems {
		printVerbose("Only the first %d items are repeated as indexed parameters\n", urlstate.MaxURLItems)
	}

	if linkBaseURL == "" {
		fmt.Println("?" + query)
		return nil
	}
	fmt.Println(strings.TrimSuffix(linkBaseURL, "?") + "?" + query)
	return nil
}
