package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/format"
)

var formatCmd = &cobra.Command{
	Use:   "format <abn|acn|bsb|phone|postcode> <value>",
	Short: "Format an Australian identifier",
	Long: `Format an ABN, ACN, BSB, phone number or postcode for display.

ABNs and ACNs are also checked against their check digits; a failing
check is reported but the formatted value is still printed.

Examples:
  au-invoice format abn 51824753556      # 51 824 753 556
  au-invoice format bsb 062000           # 062-000
  au-invoice format phone 0412345678     # 0412 345 678`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

// FormatOutput is the JSON form of the format command
type FormatOutput struct {
	Field     string `json:"field"`
	Input     string `json:"input"`
	Formatted string `json:"formatted"`
	Valid     *bool  `json:"valid,omitempty"`
}

func runFormat(cmd *cobra.Command, args []string) error {
	field := format.Field(strings.ToLower(args[0]))
	value := strings.Join(args[1:], " ")

	switch field {
	case format.FieldABN, format.FieldACN, format.FieldBSB, format.FieldPhone, format.FieldPostcode:
	default:
		return fmt.Errorf("unknown field %q (want abn, acn, bsb, phone or postcode)", args[0])
	}

	out := FormatOutput{
		Field:     string(field),
		Input:     value,
		Formatted: format.SanitizeField(field, value),
	}

	switch field {
	case format.FieldABN:
		valid := format.ValidABN(value)
		out.Valid = &valid
	case format.FieldACN:
		valid := format.ValidACN(value)
		out.Valid = &valid
	}

	if outputFormat == "json" {
		return writeJSON(os.Stdout, out)
	}

	fmt.Println(out.Formatted)
	if out.Valid != nil && !*out.Valid {
		fmt.Fprintf(os.Stderr, "warning: %s %q fails the check digit test\n", strings.ToUpper(out.Field), value)
	}
	return nil
}
