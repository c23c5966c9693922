package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/logger"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Add documents to the corpus",
	Long: `Chunks, embeds, and indexes plain-text (.txt) or markdown (.md) files.
Files already in the corpus are skipped; remove them with 'askdocs reset'.

With --watch, the argument is a directory and askdocs keeps running,
ingesting supported files as they appear or change. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "watch a directory and ingest files as they appear")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if ingestWatch {
		if len(args) != 1 {
			return errors.New("--watch takes exactly one directory")
		}
		return watchDir(cmd, args[0])
	}

	batch, err := ingestService.IngestFiles(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	printBatchReport(cmd, batch)
	if len(batch.Failures) > 0 {
		return fmt.Errorf("%d of %d files failed", len(batch.Failures), len(args))
	}
	return nil
}

func printBatchReport(cmd *cobra.Command, batch *domain.BatchReport) {
	for _, report := range batch.Reports {
		if report.Skipped {
			cmd.Printf("  %s: already loaded, skipped\n", report.Source)
			continue
		}
		cmd.Printf("  %s: %d chunks indexed (%.1fs)\n",
			report.Source, report.ChunkCount, report.Duration.Seconds())
	}
	for path, ferr := range batch.Failures {
		cmd.Printf("  %s: FAILED: %v\n", path, ferr)
	}
}

// watchDir ingests supported files from dir as they are created or
// written, until the context is cancelled.
func watchDir(cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for new documents (Ctrl-C to stop)...\n", dir)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !supportedFile(event.Name) {
				logger.Debug("ignoring %s: unsupported file type", event.Name)
				continue
			}

			batch, err := ingestService.IngestFiles(ctx, []string{event.Name})
			if err != nil {
				return fmt.Errorf("ingest failed: %w", err)
			}
			printBatchReport(cmd, batch)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func supportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}
