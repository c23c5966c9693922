package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch an interactive chat session over the ingested documents.

Questions stream their answers as they generate, with cited sources and
a low-confidence warning when the retrieved context is a poor match.

Controls:
  Enter   - Ask
  Ctrl+S  - Toggle the loaded-documents panel
  Esc     - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panic recovery so terminal state is restored with a stack trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Query:  queryService,
		Ingest: ingestService,
	}

	chat, err := tui.NewChat(ports)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	chat.WithContext(cmd.Context())

	p := tea.NewProgram(chat, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}

	return nil
}
