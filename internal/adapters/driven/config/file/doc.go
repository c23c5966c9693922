// Package file provides file-based implementations of configuration ports.
//
// SettingsStore persists application settings as TOML at ~/.askdocs/config.toml.
// PromptStore serves LLM prompt templates from user-editable files under
// ~/.askdocs/prompts/, falling back to embedded defaults.
package file
