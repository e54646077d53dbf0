package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTheme loads the renderer theme.
// Search order: customPath -> ~/.mineterm/theme.yaml -> embedded default.
func LoadTheme(customPath string) (Theme, error) {
	var th Theme

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return th, fmt.Errorf("failed to read theme %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &th); err != nil {
			return th, fmt.Errorf("failed to parse theme %s: %w", customPath, err)
		}
		return th, nil
	}

	// Try user config directory
	if userPath := userThemePath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &th); err == nil {
				return th, nil
			}
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultThemeYAML, &th); err != nil {
		return DefaultTheme(), nil // Fallback to hardcoded if embed fails
	}
	return th, nil
}

// userThemePath returns the path to the user theme file, or empty if home
// is unavailable.
func userThemePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mineterm", "theme.yaml")
}
