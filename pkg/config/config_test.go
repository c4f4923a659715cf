package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOptions_Defaults(t *testing.T) {
	opts := NewOptions()

	if !strings.HasSuffix(opts.OutputDir, filepath.Join("test-results", "reports")) {
		t.Errorf("OutputDir = %v, want suffix test-results/reports", opts.OutputDir)
	}
	if opts.OutputFile != "enhanced-report.html" {
		t.Errorf("OutputFile = %v, want enhanced-report.html", opts.OutputFile)
	}
	if opts.Title != "Enhanced Test Report" {
		t.Errorf("Title = %v, want Enhanced Test Report", opts.Title)
	}
	if !opts.IncludeCharts || !opts.IncludeTrends {
		t.Error("expected charts and trends enabled by default")
	}
	if opts.OpenReport {
		t.Error("expected OpenReport disabled by default")
	}
	if opts.Theme != ThemeAuto {
		t.Errorf("Theme = %v, want auto", opts.Theme)
	}
}

func TestOptions_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		theme string
		want  string
	}{
		{"light kept", ThemeLight, ThemeLight},
		{"dark kept", ThemeDark, ThemeDark},
		{"auto kept", ThemeAuto, ThemeAuto},
		{"unknown falls back to auto", "solarized", ThemeAuto},
		{"empty falls back to auto", "", ThemeAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			opts.Theme = tt.theme
			opts.Normalize()
			if opts.Theme != tt.want {
				t.Errorf("Theme after Normalize = %v, want %v", opts.Theme, tt.want)
			}
		})
	}
}

func TestOptions_NormalizeEmptyFields(t *testing.T) {
	opts := &Options{}
	opts.Normalize()

	if opts.OutputDir == "" || opts.OutputFile == "" || opts.Title == "" {
		t.Errorf("Normalize left empty fields: %+v", opts)
	}
	if opts.OutputFile != "enhanced-report.html" {
		t.Errorf("OutputFile = %v, want default", opts.OutputFile)
	}
}

func TestOptions_ArtifactPaths(t *testing.T) {
	opts := NewOptions()
	opts.OutputDir = "/tmp/reports"

	if got := opts.HTMLPath(); got != filepath.Join("/tmp/reports", "enhanced-report.html") {
		t.Errorf("HTMLPath() = %v", got)
	}
	if got := opts.DetailedJSONPath(); got != filepath.Join("/tmp/reports", "detailed-report.json") {
		t.Errorf("DetailedJSONPath() = %v", got)
	}
	if got := opts.TrendsPath(); got != filepath.Join("/tmp/reports", "trends.json") {
		t.Errorf("TrendsPath() = %v", got)
	}
}

func TestOptions_LoadFromEnv(t *testing.T) {
	t.Setenv("REPORTER_OUTPUT_DIR", "/custom/out")
	t.Setenv("REPORTER_THEME", "dark")
	t.Setenv("REPORTER_INCLUDE_TRENDS", "false")
	t.Setenv("REPORTER_OPEN_REPORT", "true")

	opts := NewOptions()
	opts.LoadFromEnv()

	if opts.OutputDir != "/custom/out" {
		t.Errorf("OutputDir = %v, want /custom/out", opts.OutputDir)
	}
	if opts.Theme != ThemeDark {
		t.Errorf("Theme = %v, want dark", opts.Theme)
	}
	if opts.IncludeTrends {
		t.Error("expected IncludeTrends disabled via env")
	}
	if !opts.OpenReport {
		t.Error("expected OpenReport enabled via env")
	}
}
