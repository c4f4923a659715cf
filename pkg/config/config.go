package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Valid themes for the generated report.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Options holds the configuration for report generation. All fields are
// optional; malformed values fall back to the defaults from NewOptions.
type Options struct {
	OutputDir     string `mapstructure:"output_dir" json:"outputDir"`
	OutputFile    string `mapstructure:"output_file" json:"outputFile"`
	Title         string `mapstructure:"title" json:"title"`
	IncludeCharts bool   `mapstructure:"include_charts" json:"includeCharts"`
	IncludeTrends bool   `mapstructure:"include_trends" json:"includeTrends"`
	OpenReport    bool   `mapstructure:"open_report" json:"openReport"`
	Theme         string `mapstructure:"theme" json:"theme"`

	// History settings
	EnableHistory bool `mapstructure:"enable_history" json:"enableHistory"`
	RetentionDays int  `mapstructure:"retention_days" json:"retentionDays"`
}

// NewOptions creates options with default values.
func NewOptions() *Options {
	return &Options{
		OutputDir:     defaultOutputDir(),
		OutputFile:    "enhanced-report.html",
		Title:         "Enhanced Test Report",
		IncludeCharts: true,
		IncludeTrends: true,
		OpenReport:    false,
		Theme:         ThemeAuto,
		EnableHistory: true,
		RetentionDays: 90,
	}
}

// DefaultOptions returns the default configuration
func DefaultOptions() *Options {
	return NewOptions()
}

// LoadOptions loads configuration from a known config file or returns
// defaults overridden by environment variables.
func LoadOptions() (*Options, error) {
	opts := NewOptions()

	configPaths := []string{
		"reporter-config.yml",
		"reporter-config.yaml",
		"reporter-config.json",
		".config/reporter.yml",
	}

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := opts.LoadFromFile(path); err == nil {
				opts.LoadFromEnv()
				opts.Normalize()
				return opts, nil
			}
		}
	}

	opts.LoadFromEnv()
	opts.Normalize()
	return opts, nil
}

// LoadFromFile loads configuration from a file (YAML, JSON, or TOML)
func (o *Options) LoadFromFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(o)
}

// LoadFromEnv loads configuration from environment variables
func (o *Options) LoadFromEnv() {
	if dir := os.Getenv("REPORTER_OUTPUT_DIR"); dir != "" {
		o.OutputDir = dir
	}

	if file := os.Getenv("REPORTER_OUTPUT_FILE"); file != "" {
		o.OutputFile = file
	}

	if title := os.Getenv("REPORTER_TITLE"); title != "" {
		o.Title = title
	}

	if theme := os.Getenv("REPORTER_THEME"); theme != "" {
		o.Theme = theme
	}

	if trends := os.Getenv("REPORTER_INCLUDE_TRENDS"); trends == "false" {
		o.IncludeTrends = false
	}

	if charts := os.Getenv("REPORTER_INCLUDE_CHARTS"); charts == "false" {
		o.IncludeCharts = false
	}

	if open := os.Getenv("REPORTER_OPEN_REPORT"); open == "true" {
		o.OpenReport = true
	}
}

// Normalize replaces malformed option values with their defaults.
func (o *Options) Normalize() {
	if o.OutputDir == "" {
		o.OutputDir = defaultOutputDir()
	}
	if o.OutputFile == "" {
		o.OutputFile = "enhanced-report.html"
	}
	if o.Title == "" {
		o.Title = "Enhanced Test Report"
	}
	switch o.Theme {
	case ThemeLight, ThemeDark, ThemeAuto:
	default:
		o.Theme = ThemeAuto
	}
	if o.RetentionDays <= 0 {
		o.RetentionDays = 90
	}
}

// Save saves the configuration to a file
func (o *Options) Save(path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	v.Set("output_dir", o.OutputDir)
	v.Set("output_file", o.OutputFile)
	v.Set("title", o.Title)
	v.Set("include_charts", o.IncludeCharts)
	v.Set("include_trends", o.IncludeTrends)
	v.Set("open_report", o.OpenReport)
	v.Set("theme", o.Theme)

	return v.WriteConfig()
}

// HTMLPath returns the full path of the HTML artifact.
func (o *Options) HTMLPath() string {
	return filepath.Join(o.OutputDir, o.OutputFile)
}

// DetailedJSONPath returns the full path of the detailed JSON artifact.
func (o *Options) DetailedJSONPath() string {
	return filepath.Join(o.OutputDir, "detailed-report.json")
}

// TrendsPath returns the full path of the trend log.
func (o *Options) TrendsPath() string {
	return filepath.Join(o.OutputDir, "trends.json")
}

// defaultOutputDir resolves the default reports directory under cwd.
func defaultOutputDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join("test-results", "reports")
	}
	return filepath.Join(cwd, "test-results", "reports")
}
