package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the chat session.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	// Title style for the header.
	Title lipgloss.Style

	// Question style for user questions in the transcript.
	Question lipgloss.Style

	// Answer style for streamed answers.
	Answer lipgloss.Style

	// Muted style for captions and sources.
	Muted lipgloss.Style

	// Warning style for low-confidence notes.
	Warning lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// InputField style for the question input.
	InputField lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Question: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		Answer: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		InputField: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}
