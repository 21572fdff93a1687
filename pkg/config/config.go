package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Canvas Canvas `json:"canvas"`
	Fonts  Fonts  `json:"fonts"`
	Layout Layout `json:"layout"`
	Output Output `json:"output"`
}

// Canvas holds the dimensions and background of the output image
type Canvas struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Margin          int    `json:"margin"`
	Background      string `json:"background"`
	BackgroundImage string `json:"background_image,omitempty"`
}

// Fonts holds the font file paths. Empty paths select the embedded Go
// fonts instead of failing.
type Fonts struct {
	TitlePath   string `json:"title_path"`
	RegularPath string `json:"regular_path"`
}

// Layout holds font sizing and placement tuning. The fill threshold and
// top bias are empirical values for a 4:5 canvas, kept configurable.
type Layout struct {
	TitleBaseSize    int     `json:"title_base_size"`
	TitleMinSize     int     `json:"title_min_size"`
	TitleWidthStep   int     `json:"title_width_step"`
	TitleCountStep   int     `json:"title_count_step"`
	MaxTitleLines    int     `json:"max_title_lines"`
	SummaryFontSize  int     `json:"summary_font_size"`
	UsernameFontSize int     `json:"username_font_size"`
	TitleLineGap     int     `json:"title_line_gap"`
	SummaryLineGap   int     `json:"summary_line_gap"`
	BlockGap         int     `json:"block_gap"`
	HighlightColor   string  `json:"highlight_color"`
	HighlightPadX    int     `json:"highlight_pad_x"`
	HighlightPadY    int     `json:"highlight_pad_y"`
	FillThreshold    float64 `json:"fill_threshold"`
	TopBias          float64 `json:"top_bias"`
}

// Output holds configuration for where and how images are written
type Output struct {
	Dir      string `json:"dir"`
	Format   string `json:"format"`
	Quality  int    `json:"quality"`
	Lossless bool   `json:"lossless"`
	Username string `json:"username"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Canvas: Canvas{
			Width:      2000,
			Height:     2500,
			Margin:     120,
			Background: "#F3EED7",
		},
		Fonts: Fonts{
			TitlePath:   "",
			RegularPath: "",
		},
		Layout: Layout{
			TitleBaseSize:    400,
			TitleMinSize:     90,
			TitleWidthStep:   6,
			TitleCountStep:   8,
			MaxTitleLines:    5,
			SummaryFontSize:  80,
			UsernameFontSize: 46,
			TitleLineGap:     18,
			SummaryLineGap:   10,
			BlockGap:         60,
			HighlightColor:   "#E7FF00",
			HighlightPadX:    8,
			HighlightPadY:    6,
			FillThreshold:    0.6,
			TopBias:          0.15,
		},
		Output: Output{
			Dir:      "generated_posts",
			Format:   "png",
			Quality:  90,
			Lossless: false,
			Username: "dailytech_drops",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Canvas.Width < 1 || c.Canvas.Height < 1 {
		return fmt.Errorf("canvas dimensions must be positive")
	}

	if c.Canvas.Margin < 0 {
		return fmt.Errorf("canvas.margin must not be negative")
	}

	if c.Canvas.Margin >= c.Canvas.Width/2 || c.Canvas.Margin >= c.Canvas.Height/2 {
		return fmt.Errorf("canvas.margin must be smaller than half the canvas on both axes")
	}

	if c.Layout.TitleMinSize < 1 || c.Layout.TitleBaseSize < c.Layout.TitleMinSize {
		return fmt.Errorf("layout.title_base_size must be at least layout.title_min_size, both positive")
	}

	if c.Layout.TitleWidthStep < 1 || c.Layout.TitleCountStep < 1 {
		return fmt.Errorf("layout font size steps must be positive")
	}

	if c.Layout.MaxTitleLines < 1 {
		return fmt.Errorf("layout.max_title_lines must be positive")
	}

	if c.Layout.SummaryFontSize < 1 || c.Layout.UsernameFontSize < 1 {
		return fmt.Errorf("layout font sizes must be positive")
	}

	if c.Layout.FillThreshold <= 0 || c.Layout.FillThreshold > 1 {
		return fmt.Errorf("layout.fill_threshold must be in (0, 1]")
	}

	if c.Layout.TopBias < 0 || c.Layout.TopBias >= 1 {
		return fmt.Errorf("layout.top_bias must be in [0, 1)")
	}

	switch c.Output.Format {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("output.format must be one of png, jpg, jpeg, webp")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "post-generator", "config.json")
}
