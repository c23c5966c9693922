// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	ollamaembed "github.com/custodia-labs/askdocs-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/askdocs-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/custodia-labs/askdocs-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/askdocs-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Embedding services are process-wide singletons: ingestion and querying
// must embed with the same model instance, and hosted providers meter by
// connection. Keyed by settings so tests with differing configs don't
// collide.
var (
	embedMu        sync.Mutex
	embedSingleton driven.EmbeddingService
	embedKey       domain.EmbeddingSettings
)

// SharedEmbeddingService returns the process-wide embedding service for
// the given settings, creating and validating it on first use. Settings
// changes mid-process produce a fresh instance.
func SharedEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	embedMu.Lock()
	defer embedMu.Unlock()

	if embedSingleton != nil && embedKey == settings {
		return embedSingleton, nil
	}

	svc, err := CreateAndValidateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	if embedSingleton != nil {
		embedSingleton.Close()
	}
	embedSingleton = svc
	embedKey = settings
	return svc, nil
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'askdocs config' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'askdocs config' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'askdocs config' to fix",
			domain.ErrLLMUnavailable, err)
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'askdocs config' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// EnsureModelMatch verifies the vector index was built with the
// configured embedding model. A fresh index adopts the model; a mismatch
// is fatal, since similarities across models are meaningless. The only
// ways out are reconfiguring the model or 'askdocs reset'.
func EnsureModelMatch(ctx context.Context, store driven.VectorStore, svc driven.EmbeddingService) error {
	indexModel, err := store.EmbeddingModel(ctx)
	if err != nil {
		return fmt.Errorf("reading index embedding model: %w", err)
	}

	if indexModel == "" {
		return store.SetEmbeddingModel(ctx, svc.ModelName())
	}

	if indexModel != svc.ModelName() {
		return fmt.Errorf("%w: index was built with %q but %q is configured; "+
			"switch the model back or run 'askdocs reset'",
			domain.ErrModelMismatch, indexModel, svc.ModelName())
	}
	return nil
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderGroq:
		// Groq does not offer an embeddings endpoint.
		return nil, fmt.Errorf("groq does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderGroq:
		baseURL := settings.BaseURL
		if baseURL == "" {
			baseURL = openaillm.GroqBaseURL
		}
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: baseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
