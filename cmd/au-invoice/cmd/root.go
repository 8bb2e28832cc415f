package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	apiKey       string
	llmBaseURL   string
	llmModel     string
	timezone     string
	envFile      string
)

var rootCmd = &cobra.Command{
	Use:   "au-invoice",
	Short: "Build Australian tax invoices",
	Long: `AU Invoice computes and renders Australian tax invoices.

Supports:
  - GST per line item: added on top, already included, or none
  - ABN, ACN, BSB and phone number formatting
  - Invoice numbers and due dates derived from the invoice date
  - Shareable invoice links (query string state)
  - PDF rendering and inspection

Examples:
  # Render an invoice from a saved link
  au-invoice render "https://invoice.example/?businessName=Acme&itemName_0=Design&itemPrice_0=500"

  # Show totals for a JSON document as a table
  au-invoice totals invoice.json -f table

  # Format an ABN
  au-invoice format abn 51824753556

  # Start the HTTP API
  au-invoice serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for LLM provider (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for address completion (env: LLM_MODEL)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "IANA time zone for today's date (env: INVOICE_TIMEZONE)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading variables")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// A missing env file is fine; variables may come from the shell
	if err := godotenv.Load(envFile); err == nil {
		printVerbose("Loaded environment from %s\n", envFile)
	}

	// API key
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}
	// Base URL
	if llmBaseURL == "" {
		llmBaseURL = os.Getenv("LLM_BASE_URL")
	}
	// Model
	if llmModel == "" {
		llmModel = os.Getenv("LLM_MODEL")
	}
	// Time zone
	if timezone == "" {
		timezone = os.Getenv("INVOICE_TIMEZONE")
	}
}

// location resolves the configured time zone, falling back to local time
func location() (*time.Location, error) {
	if timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// today returns the current time in the configured time zone
func today() (time.Time, error) {
	loc, err := location()
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
