package services

import (
	"context"

	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing.
// Vectors come from a fixed text->vector map; unknown texts get the
// fallback vector so tests control similarity geometry exactly.
type mockEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	model    string
	embedErr error
	calls    int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors:  make(map[string][]float32),
		fallback: []float32{1, 0, 0},
		model:    "mock-embed",
	}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.calls++
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return m.fallback, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		result[i] = vec
	}
	return result, nil
}

func (m *mockEmbedder) Dimensions() int              { return len(m.fallback) }
func (m *mockEmbedder) ModelName() string            { return m.model }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

// mockLLM implements driven.LLMService for testing.
// It streams reply word-group fragments and records the prompts it saw.
type mockLLM struct {
	fragments []string
	streamErr error
	model     string

	lastSystem string
	lastUser   string
}

func newMockLLM(fragments ...string) *mockLLM {
	return &mockLLM{fragments: fragments, model: "mock-llm"}
}

func (m *mockLLM) Generate(ctx context.Context, system, user string, opts driven.GenerateOptions) (string, error) {
	var out string
	err := m.GenerateStream(ctx, system, user, opts, func(frag string) error {
		out += frag
		return nil
	})
	return out, err
}

func (m *mockLLM) GenerateStream(_ context.Context, system, user string, _ driven.GenerateOptions, emit func(string) error) error {
	m.lastSystem = system
	m.lastUser = user
	if m.streamErr != nil {
		return m.streamErr
	}
	for _, frag := range m.fragments {
		if err := emit(frag); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockLLM) ModelName() string            { return m.model }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

var _ driven.LLMService = (*mockLLM)(nil)

// mockPromptStore implements driven.PromptStore with in-memory templates.
type mockPromptStore struct {
	prompts map[string]string
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{
		prompts: map[string]string{
			driven.PromptGroundingSystem: "Answer ONLY from the provided context.",
			driven.PromptContextUser:     "Context:\n%s\n\nQuestion: %s",
		},
	}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}

var _ driven.PromptStore = (*mockPromptStore)(nil)
