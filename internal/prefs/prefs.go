package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the user's cosmetic choices.
type Prefs struct {
	Theme string `toml:"theme"`
	// Language overrides the configured countdown language when set.
	Language string `toml:"language,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/matchday/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path, unexpanded.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Any problem with the file yields the
// defaults; preferences are never worth failing startup over.
func Load(path string) Prefs {
	out := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return out
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return out
	}

	var stored Prefs
	if err := toml.Unmarshal(data, &stored); err != nil {
		return out
	}
	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		out.Theme = theme
	}
	out.Language = strings.TrimSpace(stored.Language)
	return out
}

// Save writes preferences to path, creating parent directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file.
	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	return filepath.Abs(trimmed)
}
