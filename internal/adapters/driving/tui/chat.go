package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

// Messages emitted by the background query goroutine.
type (
	// fragmentMsg carries one streamed answer fragment.
	fragmentMsg string

	// stateMsg carries a query lifecycle transition.
	stateMsg domain.QueryState

	// answerMsg carries the completed answer.
	answerMsg struct {
		answer *domain.Answer
	}

	// failedMsg carries a query failure.
	failedMsg struct {
		err error
	}

	// corpusMsg carries the refreshed sources sidebar content.
	corpusMsg struct {
		docs []domain.CorpusDocument
	}
)

// exchange is one question/answer pair in the session transcript.
type exchange struct {
	question string
	answer   *domain.Answer
	err      error
}

// Chat is the interactive chat session following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Chat struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the session styles.
	styles *Styles

	// input is the question input field.
	input textinput.Model

	// spin animates while retrieval and generation run.
	spin spinner.Model

	// history is the completed transcript, oldest first.
	history []exchange

	// pending is the question currently being answered.
	pending string

	// streamed accumulates the in-flight answer text.
	streamed strings.Builder

	// state is the current query lifecycle state.
	state domain.QueryState

	// busy is set while a question is in flight.
	busy bool

	// activity delivers messages from the query goroutine.
	activity chan tea.Msg

	// docs backs the sources sidebar.
	docs []domain.CorpusDocument

	// showSources toggles the sources sidebar.
	showSources bool

	// width and height are terminal dimensions.
	width  int
	height int
}

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// NewChat creates a chat session with the given ports.
func NewChat(ports *Ports) (*Chat, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	s := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = s.Muted

	return &Chat{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		input:    input,
		spin:     spin,
		activity: make(chan tea.Msg, 16),
		width:    80,
		height:   24,
	}, nil
}

// WithContext sets the context used for queries.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	c.ctx = ctx
	return c
}

// Init initialises the session.
func (c *Chat) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, c.refreshCorpus())
}

// Update handles messages for the chat session.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.input.Width = msg.Width - 6
		return c, nil

	case tea.KeyMsg:
		return c.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !c.busy {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd

	case stateMsg:
		c.state = domain.QueryState(msg)
		return c, c.waitForActivity()

	case fragmentMsg:
		c.streamed.WriteString(string(msg))
		return c, c.waitForActivity()

	case answerMsg:
		c.history = append(c.history, exchange{question: c.pending, answer: msg.answer})
		c.endQuestion()
		return c, c.refreshCorpus()

	case failedMsg:
		c.history = append(c.history, exchange{question: c.pending, err: msg.err})
		c.endQuestion()
		return c, nil

	case corpusMsg:
		c.docs = msg.docs
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *Chat) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return c, tea.Quit

	case tea.KeyCtrlS:
		c.showSources = !c.showSources
		return c, nil

	case tea.KeyEnter:
		if c.busy {
			return c, nil
		}
		question := strings.TrimSpace(c.input.Value())
		if question == "" {
			return c, nil
		}
		c.input.Reset()
		return c, c.ask(question)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// ask launches the query in the background and starts listening for
// its fragments and state transitions.
func (c *Chat) ask(question string) tea.Cmd {
	c.busy = true
	c.pending = question
	c.streamed.Reset()
	c.state = domain.QueryStateIdle

	go func() {
		answer, err := c.ports.Query.Ask(c.ctx, question, driving.AskOptions{
			OnFragment: func(fragment string) {
				c.activity <- fragmentMsg(fragment)
			},
			OnState: func(state domain.QueryState) {
				c.activity <- stateMsg(state)
			},
		})
		if err != nil {
			c.activity <- failedMsg{err: err}
			return
		}
		c.activity <- answerMsg{answer: answer}
	}()

	return tea.Batch(c.spin.Tick, c.waitForActivity())
}

// waitForActivity delivers the next message from the query goroutine.
func (c *Chat) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		return <-c.activity
	}
}

// endQuestion resets the in-flight question state.
func (c *Chat) endQuestion() {
	c.busy = false
	c.pending = ""
	c.streamed.Reset()
	c.input.Focus()
}

// refreshCorpus reloads the sources sidebar content.
func (c *Chat) refreshCorpus() tea.Cmd {
	if c.ports.Ingest == nil {
		return nil
	}
	return func() tea.Msg {
		docs, err := c.ports.Ingest.Documents(c.ctx)
		if err != nil {
			return corpusMsg{}
		}
		return corpusMsg{docs: docs}
	}
}

// View renders the chat session.
func (c *Chat) View() string {
	var b strings.Builder

	b.WriteString(c.styles.Title.Render("askdocs chat"))
	b.WriteString("\n\n")

	if c.showSources {
		b.WriteString(c.renderSources())
		b.WriteString("\n")
	}

	for _, ex := range c.history {
		b.WriteString(c.renderExchange(ex))
	}

	if c.busy {
		b.WriteString(c.styles.Question.Render("> " + c.pending))
		b.WriteString("\n")
		if c.streamed.Len() > 0 {
			b.WriteString(c.styles.Answer.Render(c.streamed.String()))
			b.WriteString("\n")
		} else {
			b.WriteString(c.spin.View())
			b.WriteString(c.styles.Muted.Render(stateCaption(c.state)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(c.styles.InputField.Render(c.input.View()))
	b.WriteString("\n")
	b.WriteString(c.styles.Muted.Render("enter: ask • ctrl+s: sources • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (c *Chat) renderExchange(ex exchange) string {
	var b strings.Builder

	b.WriteString(c.styles.Question.Render("> " + ex.question))
	b.WriteString("\n")

	if ex.err != nil {
		b.WriteString(c.styles.Error.Render("Error: " + ex.err.Error()))
		b.WriteString("\n\n")
		return b.String()
	}

	b.WriteString(c.styles.Answer.Render(ex.answer.Text))
	b.WriteString("\n")

	if ex.answer.LowConfidence {
		b.WriteString(c.styles.Warning.Render("Low-relevance context; answer may be incomplete."))
		b.WriteString("\n")
	}

	if len(ex.answer.Citations) > 0 {
		sources := make([]string, len(ex.answer.Citations))
		for i, cit := range ex.answer.Citations {
			sources[i] = fmt.Sprintf("%s #%d", cit.Source, cit.ChunkIndex)
		}
		b.WriteString(c.styles.Muted.Render("Sources: " + strings.Join(sources, ", ")))
		b.WriteString("\n")
	}

	caption := fmt.Sprintf("%s, %.1fs", ex.answer.Model, ex.answer.Duration.Seconds())
	b.WriteString(c.styles.Muted.Render(caption))
	b.WriteString("\n\n")

	return b.String()
}

func (c *Chat) renderSources() string {
	if len(c.docs) == 0 {
		return c.styles.Muted.Render("No documents ingested.") + "\n"
	}

	var b strings.Builder
	b.WriteString(c.styles.Muted.Render("Loaded documents:"))
	b.WriteString("\n")
	for _, doc := range c.docs {
		b.WriteString(c.styles.Muted.Render(fmt.Sprintf("  %s (%d chunks)", doc.Source, doc.ChunkCount)))
		b.WriteString("\n")
	}
	return b.String()
}

// stateCaption maps a lifecycle state to the caption shown while the
// spinner runs.
func stateCaption(state domain.QueryState) string {
	switch state {
	case domain.QueryStateRetrieving:
		return " searching documents..."
	case domain.QueryStateLowContext:
		return " low-relevance context found..."
	case domain.QueryStateReady, domain.QueryStateGenerating:
		return " generating answer..."
	case domain.QueryStateStreaming:
		return " streaming..."
	default:
		return " thinking..."
	}
}
