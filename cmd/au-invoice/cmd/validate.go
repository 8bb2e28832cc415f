package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/processor"
)

var (
	strictValidation bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice documents",
	Long: `Validate one or more invoice documents before rendering.

Checks performed:
  - Quantities and prices are not negative
  - GST treatment is one of no, add or inclusive
  - ABN and ACN check digits
  - State is an Australian state or territory
  - Dates are YYYY-MM-DD and the due date is not before the invoice date

Errors make an invoice invalid; warnings are reported but do not, unless
--strict is set.

Examples:
  au-invoice validate invoice.json
  au-invoice validate invoices/ --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strictValidation, "strict", false, "Treat warnings as errors")
}

// ValidationResult holds the validation outcome for one document
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args, ".json", ".txt", ".url")
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(pipeline, file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	// Output results
	if outputFormat == "json" {
		if err := writeJSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func validateFile(pipeline *processor.Pipeline, filePath string) *ValidationResult {
	result := &ValidationResult{File: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Errors = []string{fmt.Sprintf("failed to read file: %v", err)}
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	processed := pipeline.Process(ctx, data)
	if processed.Document == nil {
		result.Errors = []string{processed.Error.Error()}
		return result
	}

	errs, _ := invoice.Validate(*processed.Document)
	for _, e := range errs {
		result.Errors = append(result.Errors, e.Error())
	}
	result.Warnings = processed.Warnings

	result.Valid = len(result.Errors) == 0
	if strictValidation && len(result.Warnings) > 0 {
		result.Valid = false
	}
	return result
}
