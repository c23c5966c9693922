package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested documents",
	Long: `Answers a question using only the ingested documents as context.
The answer streams as it is generated and ends with the list of source
chunks it cites.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of context chunks to retrieve (0 = configured default)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	if queryService == nil {
		return errors.New("query service not configured")
	}

	opts := driving.AskOptions{
		TopK: askTopK,
		OnFragment: func(fragment string) {
			cmd.Print(fragment)
		},
	}

	answer, err := queryService.Ask(cmd.Context(), question, opts)
	if errors.Is(err, domain.ErrGeneration) {
		// Transient upstream failures are worth one retry before
		// giving up. The index is untouched either way.
		cmd.Println()
		cmd.Println("Generation failed, retrying once...")
		answer, err = queryService.Ask(cmd.Context(), question, opts)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			cmd.Println("No documents ingested yet.")
			cmd.Println("Run 'askdocs ingest <file>...' to build a corpus first.")
			return nil
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println()
	printAnswerFooter(cmd, answer)
	return nil
}

// printAnswerFooter prints the citations and metadata that follow a
// streamed answer.
func printAnswerFooter(cmd *cobra.Command, answer *domain.Answer) {
	if answer.LowConfidence {
		cmd.Println()
		cmd.Println("Warning: retrieved context had low relevance to the question;")
		cmd.Println("the answer above may be incomplete.")
	}

	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, c := range answer.Citations {
			cmd.Printf("  - %s, chunk %d\n", c.Source, c.ChunkIndex)
		}
	}

	cmd.Println()
	cmd.Printf("(%s, %.1fs)\n", answer.Model, answer.Duration.Seconds())
}
