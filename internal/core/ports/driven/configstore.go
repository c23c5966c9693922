package driven

import "github.com/custodia-labs/askdocs-cli/internal/core/domain"

// SettingsStore persists application configuration.
type SettingsStore interface {
	// Load returns the stored settings, with defaults applied for any
	// value the store has never seen.
	Load() (domain.AppSettings, error)

	// Save persists the settings durably.
	Save(settings domain.AppSettings) error

	// Path returns the backing file path, for display purposes.
	Path() string
}
