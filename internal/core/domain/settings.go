package domain

import "fmt"

// AIProvider identifies an AI service provider.
type AIProvider string

// Supported providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGroq is the Groq API (OpenAI-compatible).
	AIProviderGroq AIProvider = "groq"
)

// RequiresAPIKey reports whether the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGroq
}

// Valid reports whether the provider is one of the supported values.
func (p AIProvider) Valid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGroq:
		return true
	}
	return false
}

// EmbeddingSettings configures the embedding service.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model identifier, e.g. "nomic-embed-text".
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey authenticates hosted providers. Unused for Ollama.
	APIKey string `toml:"api_key,omitempty"`
}

// LLMSettings configures the answer-generation service.
type LLMSettings struct {
	// Provider selects the LLM backend.
	Provider AIProvider `toml:"provider"`

	// Model is the LLM model identifier, e.g. "llama-3.1-8b-instant".
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey authenticates hosted providers. Unused for Ollama.
	APIKey string `toml:"api_key,omitempty"`

	// Temperature controls decoding randomness. Kept low to favour
	// factual consistency over creative variation.
	Temperature float64 `toml:"temperature"`

	// MaxTokens bounds the generated answer length.
	MaxTokens int `toml:"max_tokens"`
}

// Default tunables. Thresholds are heuristics, not calibrated per corpus,
// and remain configurable.
const (
	DefaultChunkSize              = 500
	DefaultChunkOverlap           = 50
	DefaultTopK                   = 5
	DefaultTemperature            = 0.3
	DefaultMaxTokens              = 1024
	DefaultLowConfidenceThreshold = 0.30
)

// AppSettings is the full application configuration.
type AppSettings struct {
	// Embedding configures the embedding service.
	Embedding EmbeddingSettings `toml:"embedding"`

	// LLM configures the answer-generation service.
	LLM LLMSettings `toml:"llm"`

	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the number of characters repeated from the
	// previous chunk.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k"`

	// LowConfidenceThreshold flags retrievals whose mean similarity
	// falls below it.
	LowConfidenceThreshold float64 `toml:"low_confidence_threshold"`

	// DataDir is the persistence directory for the vector index.
	// Empty means the default under the user's home directory.
	DataDir string `toml:"data_dir,omitempty"`
}

// DefaultSettings returns settings with all tunables at their defaults.
// Provider settings still need to be filled in before Validate passes.
func DefaultSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
		},
		LLM: LLMSettings{
			Provider:    AIProviderOllama,
			Model:       "llama3.2",
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		ChunkSize:              DefaultChunkSize,
		ChunkOverlap:           DefaultChunkOverlap,
		TopK:                   DefaultTopK,
		LowConfidenceThreshold: DefaultLowConfidenceThreshold,
	}
}

// Validate checks the settings for startup. Any failure here is a
// configuration error: fatal before the first request, never per-request.
func (s AppSettings) Validate() error {
	if !s.Embedding.Provider.Valid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrConfig, s.Embedding.Provider)
	}
	if s.Embedding.Model == "" {
		return fmt.Errorf("%w: embedding model is required", ErrConfig)
	}
	if s.Embedding.Provider.RequiresAPIKey() && s.Embedding.APIKey == "" {
		return fmt.Errorf("%w: %s embedding requires an API key", ErrConfig, s.Embedding.Provider)
	}
	if !s.LLM.Provider.Valid() {
		return fmt.Errorf("%w: unknown LLM provider %q", ErrConfig, s.LLM.Provider)
	}
	if s.LLM.Model == "" {
		return fmt.Errorf("%w: LLM model is required", ErrConfig)
	}
	if s.LLM.Provider.RequiresAPIKey() && s.LLM.APIKey == "" {
		return fmt.Errorf("%w: %s LLM requires an API key", ErrConfig, s.LLM.Provider)
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", ErrConfig)
	}
	if s.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk_overlap must be zero or greater", ErrConfig)
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap must be smaller than chunk_size", ErrConfig)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", ErrConfig)
	}
	if s.LLM.Temperature < 0 || s.LLM.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be in [0, 2]", ErrConfig)
	}
	return nil
}
