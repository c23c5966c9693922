package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

func newTestChat(t *testing.T) *Chat {
	t.Helper()
	chat, err := NewChat(&Ports{
		Query:  &mockQueryService{},
		Ingest: &mockIngestService{},
	})
	require.NoError(t, err)
	return chat
}

func TestNewChat_Success(t *testing.T) {
	chat := newTestChat(t)
	assert.NotNil(t, chat)
	assert.False(t, chat.busy)
}

func TestNewChat_MissingQueryService(t *testing.T) {
	chat, err := NewChat(&Ports{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingQueryService)
	assert.Nil(t, chat)
}

func TestPorts_Validate(t *testing.T) {
	t.Run("query only is valid", func(t *testing.T) {
		ports := &Ports{Query: &mockQueryService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("nil query returns error", func(t *testing.T) {
		ports := &Ports{Ingest: &mockIngestService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingQueryService)
	})
}

func TestChat_Update_WindowSize(t *testing.T) {
	chat := newTestChat(t)

	model, _ := chat.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	updated := model.(*Chat)
	assert.Equal(t, 100, updated.width)
	assert.Equal(t, 40, updated.height)
}

func TestChat_Update_Fragments(t *testing.T) {
	chat := newTestChat(t)
	chat.busy = true
	chat.pending = "question"

	model, cmd := chat.Update(fragmentMsg("Paris is "))
	model, _ = model.(*Chat).Update(fragmentMsg("the capital."))

	updated := model.(*Chat)
	assert.NotNil(t, cmd) // keeps listening
	assert.Equal(t, "Paris is the capital.", updated.streamed.String())
}

func TestChat_Update_AnswerCompletesExchange(t *testing.T) {
	chat := newTestChat(t)
	chat.busy = true
	chat.pending = "What is the capital of France?"
	chat.streamed.WriteString("partial")

	answer := &domain.Answer{
		Text: "Paris.",
		Citations: []domain.Citation{
			{Source: "geo.txt", ChunkIndex: 0},
		},
		Model:    "llama3.2",
		Duration: 1200 * time.Millisecond,
	}
	model, _ := chat.Update(answerMsg{answer: answer})

	updated := model.(*Chat)
	assert.False(t, updated.busy)
	require.Len(t, updated.history, 1)
	assert.Equal(t, "What is the capital of France?", updated.history[0].question)
	assert.Equal(t, answer, updated.history[0].answer)
	assert.Zero(t, updated.streamed.Len())
}

func TestChat_Update_FailureRecordedInTranscript(t *testing.T) {
	chat := newTestChat(t)
	chat.busy = true
	chat.pending = "question"

	model, _ := chat.Update(failedMsg{err: errors.New("model unreachable")})

	updated := model.(*Chat)
	assert.False(t, updated.busy)
	require.Len(t, updated.history, 1)
	assert.EqualError(t, updated.history[0].err, "model unreachable")
}

func TestChat_Update_StateTransition(t *testing.T) {
	chat := newTestChat(t)
	chat.busy = true

	model, cmd := chat.Update(stateMsg(domain.QueryStateRetrieving))

	updated := model.(*Chat)
	assert.Equal(t, domain.QueryStateRetrieving, updated.state)
	assert.NotNil(t, cmd)
}

func TestChat_Update_CorpusRefresh(t *testing.T) {
	chat := newTestChat(t)

	docs := []domain.CorpusDocument{{Source: "notes.txt", ChunkCount: 3}}
	model, _ := chat.Update(corpusMsg{docs: docs})

	updated := model.(*Chat)
	assert.Equal(t, docs, updated.docs)
}

func TestChat_View_RendersTranscript(t *testing.T) {
	chat := newTestChat(t)
	chat.history = []exchange{
		{
			question: "What is the capital of France?",
			answer: &domain.Answer{
				Text: "Paris.",
				Citations: []domain.Citation{
					{Source: "geo.txt", ChunkIndex: 0},
				},
				Model:    "llama3.2",
				Duration: time.Second,
			},
		},
	}

	view := chat.View()

	assert.Contains(t, view, "askdocs chat")
	assert.Contains(t, view, "What is the capital of France?")
	assert.Contains(t, view, "Paris.")
	assert.Contains(t, view, "geo.txt #0")
	assert.Contains(t, view, "llama3.2, 1.0s")
}

func TestChat_View_LowConfidenceWarning(t *testing.T) {
	chat := newTestChat(t)
	chat.history = []exchange{
		{
			question: "q",
			answer: &domain.Answer{
				Text:          "Maybe.",
				LowConfidence: true,
				Model:         "m",
			},
		},
	}

	view := chat.View()

	assert.Contains(t, view, "Low-relevance context")
}

func TestChat_View_SourcesPanel(t *testing.T) {
	chat := newTestChat(t)
	chat.docs = []domain.CorpusDocument{{Source: "notes.txt", ChunkCount: 3}}

	hidden := chat.View()
	assert.NotContains(t, hidden, "Loaded documents")

	chat.showSources = true
	shown := chat.View()
	assert.Contains(t, shown, "Loaded documents")
	assert.Contains(t, shown, "notes.txt (3 chunks)")
}

func TestChat_KeyCtrlS_TogglesSources(t *testing.T) {
	chat := newTestChat(t)

	model, _ := chat.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, model.(*Chat).showSources)

	model, _ = model.(*Chat).Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, model.(*Chat).showSources)
}

func TestChat_KeyEsc_Quits(t *testing.T) {
	chat := newTestChat(t)

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestChat_Enter_EmptyInputIgnored(t *testing.T) {
	chat := newTestChat(t)

	model, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, model.(*Chat).busy)
}

func TestChat_Enter_WhileBusyIgnored(t *testing.T) {
	chat := newTestChat(t)
	chat.busy = true
	chat.input.SetValue("another question")

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestStateCaption(t *testing.T) {
	tests := []struct {
		state    domain.QueryState
		expected string
	}{
		{domain.QueryStateRetrieving, " searching documents..."},
		{domain.QueryStateLowContext, " low-relevance context found..."},
		{domain.QueryStateGenerating, " generating answer..."},
		{domain.QueryStateStreaming, " streaming..."},
		{domain.QueryStateIdle, " thinking..."},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.expected, stateCaption(tt.state))
		})
	}
}
