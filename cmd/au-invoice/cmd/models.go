package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available LLM models from API",
	Long: `Fetch and list available LLM models from the configured API endpoint.

This command queries the /models endpoint of your LLM provider to show
all available models. Requires LLM_API_KEY to be set.

To use a specific model for address suggestions, set:
  LLM_MODEL=<model-id>

Or use the CLI flag:
  --llm-model <model-id>`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	baseURL := llmBaseURL
	if baseURL == "" {
		baseURL = llm.DefaultBaseURL + " (default)"
	}
	currentModel := llmModel
	if currentModel == "" {
		currentModel = llm.ModelGPT4oMini + " (default)"
	}
	apiKeyStatus := "Not set"
	if apiKey != "" {
		apiKeyStatus = "Set"
		if len(apiKey) > 8 {
			apiKeyStatus = "Set (" + apiKey[:8] + "...)"
		}
	}

	fmt.Println("Current Configuration:")
	fmt.Println("----------------------")
	fmt.Printf("  LLM_BASE_URL: %s\n", baseURL)
	fmt.Printf("  LLM_MODEL:    %s\n", currentModel)
	fmt.Printf("  LLM_API_KEY:  %s\n", apiKeyStatus)
	fmt.Println()

	if apiKey == "" {
		fmt.Println("⚠️  LLM_API_KEY is required. Set it via environment variable or --api-key flag.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	models, err := newLLMClient().ListModels(ctx)
	if err != nil {
		fmt.Printf("⚠️  Could not fetch models: %v\n", err)
		fmt.Println()
		fmt.Println("Tip: Your API provider may not support the /models endpoint.")
		fmt.Println("     You can still use a model by setting LLM_MODEL directly.")
		return nil
	}

	if len(models) == 0 {
		fmt.Println("No models returned from API.")
		return nil
	}

	fmt.Printf("Available Models (%d):\n", len(models))
	fmt.Println("=====================")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL ID\tOWNER\tCREATED")
	fmt.Fprintln(w, "--------\t-----\t-------")
	for _, m := range models {
		created := ""
		if m.Created > 0 {
			created = time.Unix(m.Created, 0).Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.OwnedBy, created)
	}
	return w.Flush()
}
