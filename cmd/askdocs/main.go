// Command askdocs answers questions about a local document corpus,
// grounded in the ingested text with per-claim citations.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/askdocs-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/askdocs-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/askdocs-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/askdocs-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/askdocs-cli/internal/chunker"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs-cli/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)

	settingsStore, err := configfile.NewSettingsStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cli.SetSettingsStore(settingsStore)

	// A broken provider configuration must not lock the user out of
	// the commands that fix it, so wiring failures degrade to a
	// warning and the pipeline commands report themselves unavailable.
	if err := wireServices(settingsStore); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// wireServices builds the ingestion and query pipelines from the stored
// settings and injects them into the CLI.
func wireServices(settingsStore driven.SettingsStore) error {
	settings, err := settingsStore.Load()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening vector index: %w", err)
	}

	embedder, err := ai.SharedEmbeddingService(settings.Embedding)
	if err != nil {
		return err
	}

	// The index only makes sense with the model that wrote it.
	if err := ai.EnsureModelMatch(context.Background(), store, embedder); err != nil {
		return err
	}

	llm, err := ai.CreateAndValidateLLMService(settings.LLM)
	if err != nil {
		return err
	}

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return err
	}

	chunk := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithOverlap(settings.ChunkOverlap),
	)

	retriever := services.NewRetrieverService(
		embedder, store, settings.TopK, settings.LowConfidenceThreshold,
	)
	generator := services.NewGenerator(llm)
	query := services.NewQueryService(
		retriever,
		services.NewPromptBuilder(prompts),
		generator,
		driven.GenerateOptions{
			Temperature: settings.LLM.Temperature,
			MaxTokens:   settings.LLM.MaxTokens,
		},
	)
	ingest := services.NewIngestService(chunk, embedder, store)

	cli.SetQueryService(query)
	cli.SetIngestService(ingest)
	return nil
}
