package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the entire corpus",
	Long: `Removes every ingested document and its embeddings from the index.
This is the only way documents leave the corpus; there is no per-file
delete. Asks for confirmation unless --force is given.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if !resetForce {
		cmd.Print("This deletes every ingested document. Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n') //nolint:errcheck
		if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := ingestService.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	cmd.Println("Corpus deleted.")
	return nil
}
