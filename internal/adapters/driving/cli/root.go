// Package cli implements the askdocs command-line interface using cobra.
// Commands talk to core services through the driving ports; services are
// injected by main via the Set* functions before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs-cli/internal/logger"
)

// version is set by main from build information.
var version = "dev"

// Injected services. Nil until main wires them; commands guard against
// running unconfigured.
var (
	queryService  driving.QueryService
	ingestService driving.IngestService
	settingsStore driven.SettingsStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Ask questions about your documents",
	Long: `Askdocs answers natural-language questions strictly from documents
you have ingested, citing the exact source chunks behind every claim.

Ingest plain-text or markdown files, then ask away:

  askdocs ingest notes.txt report.md
  askdocs ask "What were the Q3 revenue figures?"

Answers come only from the ingested corpus. When the corpus does not
cover a question, askdocs says so instead of guessing.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetQueryService injects the question-answering service.
func SetQueryService(s driving.QueryService) {
	queryService = s
}

// SetIngestService injects the document ingestion service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetSettingsStore injects the configuration store.
func SetSettingsStore(s driven.SettingsStore) {
	settingsStore = s
}
