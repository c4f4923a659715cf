package analyzer

import (
	"testing"

	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

func TestGenerateErrorSignature_MasksDynamicParts(t *testing.T) {
	a := GenerateErrorSignature("Timeout 30000ms exceeded at /home/ci/spec.ts", "Timeout")
	b := GenerateErrorSignature("Timeout 15000ms exceeded at /var/build/other.ts", "Timeout")

	if a != b {
		t.Errorf("signatures differ for equivalent errors: %v vs %v", a, b)
	}

	c := GenerateErrorSignature("element not found", "Selector/Locator")
	if a == c {
		t.Error("different errors produced the same signature")
	}
}

func TestGroupFailures(t *testing.T) {
	details := []*models.TestResultDetail{
		{Name: "a", Status: models.StatusFailed, Error: "Timeout 30000ms exceeded"},
		{Name: "b", Status: models.StatusFailed, Error: "Timeout 15000ms exceeded"},
		{Name: "c", Status: models.StatusTimedOut, Error: "Timeout 5000ms exceeded"},
		{Name: "d", Status: models.StatusFailed, Error: "locator.click: element not found"},
		{Name: "passed", Status: models.StatusPassed},
		{Name: "no error", Status: models.StatusFailed},
	}

	groups := GroupFailures(details)
	if len(groups) != 2 {
		t.Fatalf("GroupFailures() returned %d groups, want 2", len(groups))
	}

	// Largest group first
	if groups[0].Count != 3 || groups[0].Category != "Timeout" {
		t.Errorf("groups[0] = %+v, want 3 Timeout failures", groups[0])
	}
	if len(groups[0].AffectedTests) != 3 {
		t.Errorf("AffectedTests = %v, want 3 entries", groups[0].AffectedTests)
	}
	if groups[0].Severity != "high" {
		t.Errorf("Severity = %v, want high for 3 occurrences", groups[0].Severity)
	}

	if groups[1].Count != 1 || groups[1].Category != "Selector/Locator" {
		t.Errorf("groups[1] = %+v, want 1 Selector/Locator failure", groups[1])
	}
	if groups[1].Severity != "low" {
		t.Errorf("Severity = %v, want low for 1 occurrence", groups[1].Severity)
	}
}

func TestGroupFailures_Empty(t *testing.T) {
	groups := GroupFailures(nil)
	if len(groups) != 0 {
		t.Errorf("GroupFailures(nil) = %d groups, want 0", len(groups))
	}
}

func TestHealthStatus(t *testing.T) {
	tests := []struct {
		passRate float64
		expected string
	}{
		{100, "Excellent"},
		{95, "Excellent"},
		{85, "Good"},
		{70, "Fair"},
		{30, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			m := &models.RunMetrics{PassRate: tt.passRate}
			if got := HealthStatus(m); got != tt.expected {
				t.Errorf("HealthStatus(%.0f%%) = %v, want %v", tt.passRate, got, tt.expected)
			}
		})
	}
}
