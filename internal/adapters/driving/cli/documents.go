package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List the ingested corpus",
	Long:  `Lists every ingested document with its chunk count.`,
	RunE:  runDocuments,
}

func init() {
	documentsCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	docs, err := ingestService.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if documentsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	total := 0
	cmd.Println("Loaded documents:")
	for _, doc := range docs {
		cmd.Printf("  %s (%d chunks)\n", doc.Source, doc.ChunkCount)
		total += doc.ChunkCount
	}
	cmd.Printf("%d documents, %d chunks\n", len(docs), total)
	return nil
}
