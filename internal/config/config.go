// Package config provides YAML-based theme loading for the terminal
// renderer: which glyphs and colors represent each kind of board cell.
package config

// Theme contains the renderer's appearance configuration.
type Theme struct {
	Glyphs GlyphConfig `yaml:"glyphs"`
	Colors ColorConfig `yaml:"colors"`
}

// GlyphConfig maps cell kinds to the character drawn for them.
// Each value is a string whose first rune is used.
type GlyphConfig struct {
	Hidden  string `yaml:"hidden"`
	Flag    string `yaml:"flag"`
	Mine    string `yaml:"mine"`
	MisFlag string `yaml:"mis_flag"`
	Empty   string `yaml:"empty"`
}

// ColorConfig selects named colors for non-numbered cells.
// Valid names: default, red, green, yellow, blue, magenta, cyan, white,
// bright_* variants, gray.
type ColorConfig struct {
	Hidden string `yaml:"hidden"`
	Flag   string `yaml:"flag"`
	Mine   string `yaml:"mine"`
}

// Rune returns the first rune of s, or fallback when s is empty.
func Rune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

// DefaultTheme returns the hardcoded theme used when no YAML is available.
func DefaultTheme() Theme {
	return Theme{
		Glyphs: GlyphConfig{
			Hidden:  "·",
			Flag:    "⚑",
			Mine:    "*",
			MisFlag: "✗",
			Empty:   " ",
		},
		Colors: ColorConfig{
			Hidden: "gray",
			Flag:   "bright_yellow",
			Mine:   "bright_red",
		},
	}
}
