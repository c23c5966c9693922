package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the embedding provider, LLM provider, and retrieval
tunables. Settings live in a TOML file under ~/.askdocs.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a single configuration value.

Available keys:
  embedding.provider   ollama | openai
  embedding.model      embedding model name
  embedding.base_url   endpoint override
  llm.provider         ollama | openai | groq
  llm.model            LLM model name
  llm.base_url         endpoint override
  llm.temperature      decoding temperature
  llm.max_tokens       answer length bound
  chunk_size           chunk length in characters
  chunk_overlap        characters carried between chunks
  top_k                chunks retrieved per question
  low_confidence_threshold  mean-similarity cutoff`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [embedding|llm]",
	Short: "Set a provider API key",
	Long:  `Reads an API key without echoing it and stores it for the given service.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Printf("Settings (%s)\n", settingsStore.Path())
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider)
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", describeAPIKey(settings.Embedding.APIKey))
	}
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider)
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", describeAPIKey(settings.LLM.APIKey))
	}
	cmd.Printf("  Temperature: %.2f\n", settings.LLM.Temperature)
	cmd.Printf("  Max tokens: %d\n", settings.LLM.MaxTokens)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Chunk size: %d\n", settings.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", settings.ChunkOverlap)
	cmd.Printf("  Top K: %d\n", settings.TopK)
	cmd.Printf("  Low-confidence threshold: %.2f\n", settings.LowConfidenceThreshold)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	key, value := args[0], args[1]
	if err := applySetting(&settings, key, value); err != nil {
		return err
	}

	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	target := args[0]
	if target != "embedding" && target != "llm" {
		return fmt.Errorf("unknown service %q: want embedding or llm", target)
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Printf("Enter %s API key: ", target)
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key is empty")
	}

	if target == "embedding" {
		settings.Embedding.APIKey = key
	} else {
		settings.LLM.APIKey = key
	}

	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("API key saved for %s.\n", target)
	return nil
}

// applySetting sets a single dotted key on the settings struct.
func applySetting(s *domain.AppSettings, key, value string) error {
	switch key {
	case "embedding.provider":
		s.Embedding.Provider = domain.AIProvider(value)
	case "embedding.model":
		s.Embedding.Model = value
	case "embedding.base_url":
		s.Embedding.BaseURL = value
	case "llm.provider":
		s.LLM.Provider = domain.AIProvider(value)
	case "llm.model":
		s.LLM.Model = value
	case "llm.base_url":
		s.LLM.BaseURL = value
	case "llm.temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q: %w", value, err)
		}
		s.LLM.Temperature = f
	case "llm.max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_tokens %q: %w", value, err)
		}
		s.LLM.MaxTokens = n
	case "chunk_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid chunk_size %q: %w", value, err)
		}
		s.ChunkSize = n
	case "chunk_overlap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid chunk_overlap %q: %w", value, err)
		}
		s.ChunkOverlap = n
	case "top_k":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid top_k %q: %w", value, err)
		}
		s.TopK = n
	case "low_confidence_threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid low_confidence_threshold %q: %w", value, err)
		}
		s.LowConfidenceThreshold = f
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func describeAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
