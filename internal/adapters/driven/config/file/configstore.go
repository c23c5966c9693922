package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is a file-based implementation of driven.SettingsStore
// using TOML. Settings are stored in a TOML file within the askdocs
// config directory.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSettingsStore creates a new TOML-based settings store.
// If configDir is empty, defaults to ~/.askdocs/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".askdocs")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load returns the stored settings. Values the file never set keep their
// defaults, so a partial config file is valid.
func (s *SettingsStore) Load() (domain.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - defaults apply
			return settings, nil
		}
		return settings, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("%w: parse %s: %v", domain.ErrConfig, s.filePath, err)
	}

	return settings, nil
}

// Save persists the settings to the TOML file.
func (s *SettingsStore) Save(settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restricted permissions: the file may hold API keys
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
