// Package config handles textmesh configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/textmesh/pkg/textmesh"
)

// Config holds all textmesh settings.
type Config struct {
	Font    FontConfig    `yaml:"font"`
	Style   StyleConfig   `yaml:"style"`
	Size    SizeConfig    `yaml:"size"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// FontConfig selects the font and where font files are looked up.
type FontConfig struct {
	Name        string   `yaml:"name"`
	SearchPaths []string `yaml:"search_paths"` // Later entries take priority
}

// StyleConfig holds glyph appearance settings. Size values are "auto" or a
// decimal number.
type StyleConfig struct {
	FontSize string `yaml:"font_size"`
	Casing   string `yaml:"casing"`  // none, upper, lower
	Quality  string `yaml:"quality"` // low, medium, high
	Depth    string `yaml:"depth"`
}

// SizeConfig holds the layout box. An empty depth falls back to style.depth.
type SizeConfig struct {
	Width  string `yaml:"width"`
	Height string `yaml:"height"`
	Depth  string `yaml:"depth"`
	Wrap   bool   `yaml:"wrap"`
}

// OutputConfig holds mesh export settings.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Object string `yaml:"object"` // OBJ object name
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Font: FontConfig{
			Name:        "goregular",
			SearchPaths: []string{"fonts"},
		},
		Style: StyleConfig{
			FontSize: "18",
			Casing:   "none",
			Quality:  "medium",
			Depth:    "0.08",
		},
		Size: SizeConfig{
			Width:  "72",
			Height: "180",
			Wrap:   true,
		},
		Output: OutputConfig{
			Path:   "text.obj",
			Object: "text",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Request builds a meshing request for text from the configured style and
// size.
func (c *Config) Request(text string) (*textmesh.Request, error) {
	req := &textmesh.Request{Text: text}
	req.Style.Font = c.Font.Name
	req.Size.Wrapping = c.Size.Wrap

	units := []struct {
		name  string
		value string
		dst   *textmesh.SizeUnit
	}{
		{"style.font_size", c.Style.FontSize, &req.Style.FontSize},
		{"style.depth", c.Style.Depth, &req.Style.Depth},
		{"size.width", c.Size.Width, &req.Size.Width},
		{"size.height", c.Size.Height, &req.Size.Height},
		{"size.depth", c.Size.Depth, &req.Size.Depth},
	}
	for _, u := range units {
		v, err := textmesh.ParseSizeUnit(u.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.name, err)
		}
		*u.dst = v
	}

	casing, err := textmesh.ParseCasing(c.Style.Casing)
	if err != nil {
		return nil, fmt.Errorf("style.casing: %w", err)
	}
	req.Style.Casing = casing

	quality, err := textmesh.ParseQuality(c.Style.Quality)
	if err != nil {
		return nil, fmt.Errorf("style.quality: %w", err)
	}
	req.Style.Quality = quality

	return req, nil
}
