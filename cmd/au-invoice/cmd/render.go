package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/processor"
	"github.com/rezonia/au-invoice/internal/render"
)

var (
	renderOutput   string
	renderText     bool
	renderPageSize string
	renderTimeout  time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render [file|link|-]",
	Short: "Render an invoice to PDF",
	Long: `Render an invoice document to a PDF file.

The input is a JSON document, a shareable invoice link or a bare query
string. It may be given as a file, directly as the argument, or on stdin.

The output file defaults to invoice-<number>.pdf in the current directory.
Use "-o -" to write to stdout.

Examples:
  au-invoice render invoice.json
  au-invoice render "?businessName=Acme&itemName_0=Design&itemPrice_0=500" -o acme.pdf
  cat invoice.json | au-invoice render - --text -o -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: invoice-<number>.pdf)")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Render a plain text invoice instead of a PDF")
	renderCmd.Flags().StringVar(&renderPageSize, "page-size", "A4", "PDF page size (A4, Letter, Legal)")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 30*time.Second, "Processing timeout")
}

func runRender(cmd *cobra.Command, args []string) error {
	var renderer processor.Renderer = render.NewPDFRenderer(render.WithPageSize(renderPageSize))
	if renderText {
		renderer = render.NewTextRenderer()
	}

	pipeline, err := newPipeline(processor.WithRenderer(renderer))
	if err != nil {
		return err
	}

	result, err := processInput(pipeline, args, renderTimeout)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pipeline.Render(cmd.Context(), *result.Document, &buf); err != nil {
		return err
	}

	output := renderOutput
	if output == "" {
		output = render.Filename(result.Document.Details.InvoiceNumber)
		if renderText {
			output = output[:len(output)-len(".pdf")] + ".txt"
		}
	}

	if output == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if renderText {
		fmt.Printf("Wrote %s\n", output)
		return nil
	}

	info, err := render.Inspect(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d pages, %d bytes)\n", output, info.Pages, info.Size)
	return nil
}
