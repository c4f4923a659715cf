package reporter

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/your-org/enhanced-html-reporter/pkg/config"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
	"github.com/your-org/enhanced-html-reporter/pkg/renderer"
)

func testReporter(t *testing.T) *Reporter {
	t.Helper()
	dir, err := os.MkdirTemp("", "reporter_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	opts := config.NewOptions()
	opts.OutputDir = dir
	opts.EnableHistory = false
	return New(opts)
}

func TestReporter_FullLifecycle(t *testing.T) {
	r := testReporter(t)

	r.OnBegin()
	r.OnTestEnd(models.TestEvent{Name: "a", Status: models.StatusPassed, Duration: 100, Browser: "Chromium"})
	r.OnTestEnd(models.TestEvent{Name: "b", Status: models.StatusFailed, Duration: 50, Browser: "Firefox", Error: "fetch failed: network error"})
	r.OnTestEnd(models.TestEvent{Name: "c", Status: models.StatusSkipped, Duration: 0, Browser: "Chromium"})

	if err := r.OnEnd(); err != nil {
		t.Fatalf("OnEnd() error = %v", err)
	}

	data, err := os.ReadFile(r.Options().DetailedJSONPath())
	if err != nil {
		t.Fatalf("detailed JSON not written: %v", err)
	}
	var report renderer.DetailedReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("detailed JSON is not valid: %v", err)
	}

	if report.Summary.TotalTests != 3 {
		t.Errorf("TotalTests = %v, want 3", report.Summary.TotalTests)
	}
	if report.Summary.Passed != 1 || report.Summary.Failed != 1 || report.Summary.Skipped != 1 {
		t.Errorf("counts = %v/%v/%v, want 1/1/1",
			report.Summary.Passed, report.Summary.Failed, report.Summary.Skipped)
	}
	if report.Summary.ErrorCategories["Network"] != 1 {
		t.Errorf("ErrorCategories = %v, want Network:1", report.Summary.ErrorCategories)
	}
}

func TestReporter_TestEndWithoutBegin(t *testing.T) {
	r := testReporter(t)

	// The first event implicitly starts the run
	r.OnTestEnd(models.TestEvent{Name: "a", Status: models.StatusPassed, Duration: 10})

	if err := r.OnEnd(); err != nil {
		t.Fatalf("OnEnd() error = %v", err)
	}
	if _, err := os.Stat(r.Options().HTMLPath()); err != nil {
		t.Errorf("HTML report not written: %v", err)
	}
}

func TestReporter_EmptyRun(t *testing.T) {
	r := testReporter(t)

	r.OnBegin()
	if err := r.OnEnd(); err != nil {
		t.Fatalf("OnEnd() on empty run error = %v", err)
	}

	data, err := os.ReadFile(r.Options().DetailedJSONPath())
	if err != nil {
		t.Fatalf("detailed JSON not written: %v", err)
	}
	var report renderer.DetailedReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("detailed JSON is not valid: %v", err)
	}
	if report.Summary.PassRate != 0 || report.Summary.FailRate != 0 {
		t.Errorf("rates on empty run = %v/%v, want 0/0",
			report.Summary.PassRate, report.Summary.FailRate)
	}
}

func TestNew_NilOptionsUsesDefaults(t *testing.T) {
	r := New(nil)
	if r.Options() == nil {
		t.Fatal("expected defaults for nil options")
	}
	if r.Options().Title != "Enhanced Test Report" {
		t.Errorf("Title = %v, want default", r.Options().Title)
	}
}

func TestNew_NormalizesOptions(t *testing.T) {
	opts := &config.Options{Theme: "neon"}
	r := New(opts)
	if r.Options().Theme != config.ThemeAuto {
		t.Errorf("Theme = %v, want auto fallback", r.Options().Theme)
	}
}
