package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for computing and rendering invoices.

The API provides endpoints for:
  - POST /api/v1/totals           - Line amounts and totals
  - POST /api/v1/format           - Format ABN, ACN, BSB, phone, postcode
  - GET  /api/v1/defaults         - Invoice number and due date for a date
  - POST /api/v1/details/reduce   - Apply an edit to invoice details
  - POST /api/v1/process          - Process a JSON document or link
  - POST /api/v1/render           - Render a PDF
  - POST /api/v1/validate         - Validate a document
  - GET  /api/v1/state            - Decode a shareable link
  - POST /api/v1/address/suggest  - Address suggestions (needs API key)
  - GET  /health                  - Health check

Examples:
  # Start server on default port
  au-invoice serve

  # Start on custom port with API key
  au-invoice serve --address :8080 --api-key <key>

  # Start in debug mode
  au-invoice serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: INVOICE_ADDR, default :8080)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serverAddr == "" {
		serverAddr = os.Getenv("INVOICE_ADDR")
	}
	if serverAddr == "" {
		serverAddr = ":8080"
	}

	loc, err := location()
	if err != nil {
		return err
	}

	config := &server.Config{
		Address:      serverAddr,
		APIKey:       apiKey,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
		Location:     loc,
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s (dates in %s)\n", serverAddr, loc)
	if apiKey != "" {
		fmt.Println("Address suggestions enabled")
	} else {
		fmt.Println("Address suggestions disabled (no API key)")
	}

	return srv.Run()
}
