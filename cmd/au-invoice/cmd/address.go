package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/llm"
)

var (
	addressLimit   int
	addressTimeout time.Duration
)

var addressCmd = &cobra.Command{
	Use:   "address <partial address...>",
	Short: "Suggest complete Australian addresses",
	Long: `Complete a partial Australian address with an LLM provider.

Suggestions are split into street, suburb, state and postcode. Requires an
API key (--api-key or LLM_API_KEY).

Examples:
  au-invoice address 1 george st syd
  au-invoice address "10 smith st fitzroy" -f table --limit 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAddress,
}

func init() {
	rootCmd.AddCommand(addressCmd)

	addressCmd.Flags().IntVar(&addressLimit, "limit", llm.DefaultSuggestionLimit, "Maximum number of suggestions")
	addressCmd.Flags().DurationVar(&addressTimeout, "timeout", 30*time.Second, "Request timeout")
}

func runAddress(cmd *cobra.Command, args []string) error {
	if apiKey == "" {
		return fmt.Errorf("address suggestions need an API key (--api-key or LLM_API_KEY)")
	}

	client := newLLMClient()
	suggester := llm.NewAddressSuggester(client, llm.WithLimit(addressLimit))

	query := strings.Join(args, " ")
	printVerbose("Suggesting addresses for %q with %s\n", query, client.DefaultModel())

	ctx, cancel := context.WithTimeout(context.Background(), addressTimeout)
	defer cancel()

	suggestions, err := suggester.Suggest(ctx, query)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return writeJSON(os.Stdout, suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Println("No matching addresses.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STREET\tSUBURB\tSTATE\tPOSTCODE")
	fmt.Fprintln(tw, "------\t------\t-----\t--------")
	for _, a := range suggestions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Street, a.Suburb, a.State, a.Postcode)
	}
	return tw.Flush()
}

func newLLMClient() *llm.Client {
	var clientOpts []llm.ClientOption
	if llmBaseURL != "" {
		clientOpts = append(clientOpts, llm.WithBaseURL(llmBaseURL))
	}
	if llmModel != "" {
		clientOpts = append(clientOpts, llm.WithDefaultModel(llmModel))
	}
	return llm.NewClient(apiKey, clientOpts...)
}
