package ui

import (
	_ "embed"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	MarginLeft   int    `yaml:"marginLeft,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// StyleConfig is the styles.yaml document
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// styleRegistry maps semantic names to lipgloss styles
var styleRegistry = map[string]lipgloss.Style{}

func init() {
	if err := LoadStyles(embeddedStyles); err != nil {
		// unstyled output is still correct output
		styleRegistry = map[string]lipgloss.Style{}
	}
}

// LoadStyles replaces the style registry with the definitions in data
func LoadStyles(data []byte) error {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		registry[name] = buildStyle(def, colors)
	}
	styleRegistry = registry
	return nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}
	return style
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := styleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
