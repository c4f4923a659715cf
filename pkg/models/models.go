package models

import (
	"time"
)

// TestStatus is the outcome reported by the host runner for one test.
type TestStatus string

const (
	StatusPassed      TestStatus = "passed"
	StatusFailed      TestStatus = "failed"
	StatusSkipped     TestStatus = "skipped"
	StatusTimedOut    TestStatus = "timedOut"
	StatusInterrupted TestStatus = "interrupted"
)

// CountsAsFailed reports whether the status is folded into the failed
// bucket for counting. timedOut and interrupted keep their original
// status on the detail record for display only.
func (s TestStatus) CountsAsFailed() bool {
	return s == StatusFailed || s == StatusTimedOut || s == StatusInterrupted
}

// Annotation is a free-form {type, description} tag attached to a test.
type Annotation struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// AnnotationInfo is the normalized severity/feature/epic triple extracted
// from a test's annotations.
type AnnotationInfo struct {
	Severity string `json:"severity"`
	Feature  string `json:"feature"`
	Epic     string `json:"epic"`
}

// Attachment references a file captured during a test (screenshot, trace).
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Path        string `json:"path"`
}

// TestEvent is the per-test completion event delivered by the host runner.
type TestEvent struct {
	Name        string       `json:"name"`
	File        string       `json:"file"`
	Browser     string       `json:"browser"`
	Status      TestStatus   `json:"status"`
	Duration    int64        `json:"duration"` // milliseconds
	Retries     int          `json:"retries"`  // 0 = first attempt
	Error       string       `json:"error,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// TestResultDetail is the immutable per-test record appended to the run's
// ordered detail list.
type TestResultDetail struct {
	Name        string          `json:"name"`
	Status      TestStatus      `json:"status"`
	Duration    int64           `json:"duration"`
	Browser     string          `json:"browser"`
	File        string          `json:"file"`
	Retries     int             `json:"retries"`
	Error       string          `json:"error,omitempty"`
	Annotations *AnnotationInfo `json:"annotations,omitempty"`
	Attachments []Attachment    `json:"attachments,omitempty"`
}

// IsFlaky reports whether the test failed on an earlier attempt but
// passed on a retry within the same run.
func (d *TestResultDetail) IsFlaky() bool {
	return d.Status == StatusPassed && d.Retries > 0
}

// DisplayStatus returns the status label shown in the report. Flaky tests
// are surfaced as "flaky" even though they count as passed.
func (d *TestResultDetail) DisplayStatus() string {
	if d.IsFlaky() {
		return "flaky"
	}
	return string(d.Status)
}

// BrowserMetrics aggregates per-browser outcomes.
type BrowserMetrics struct {
	Passed   int   `json:"passed"`
	Failed   int   `json:"failed"`
	Duration int64 `json:"duration"`
}

// TagMetrics aggregates outcomes for one severity/feature/epic value.
type TagMetrics struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// TestExtreme references the slowest or fastest test seen so far.
type TestExtreme struct {
	Name     string `json:"name"`
	Duration int64  `json:"duration"`
}

// RunMetrics is the mutable aggregate owned by the accumulator for the
// lifetime of one run.
type RunMetrics struct {
	TotalTests int `json:"totalTests"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	Flaky      int `json:"flaky"`

	Duration    int64     `json:"duration"` // cumulative, milliseconds
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	PassRate    float64   `json:"passRate"`
	FailRate    float64   `json:"failRate"`
	AvgDuration float64   `json:"avgDuration"`

	SlowestTest *TestExtreme `json:"slowestTest,omitempty"`
	FastestTest *TestExtreme `json:"fastestTest,omitempty"`

	BrowserStats    map[string]*BrowserMetrics `json:"browserStats"`
	ErrorCategories map[string]int             `json:"errorCategories"`
	SeverityStats   map[string]*TagMetrics     `json:"severityStats"`
	FeatureStats    map[string]*TagMetrics     `json:"featureStats"`
	EpicStats       map[string]*TagMetrics     `json:"epicStats"`
}

// NewRunMetrics returns zeroed metrics with the start timestamp set.
func NewRunMetrics(start time.Time) *RunMetrics {
	return &RunMetrics{
		StartTime:       start,
		BrowserStats:    make(map[string]*BrowserMetrics),
		ErrorCategories: make(map[string]int),
		SeverityStats:   make(map[string]*TagMetrics),
		FeatureStats:    make(map[string]*TagMetrics),
		EpicStats:       make(map[string]*TagMetrics),
	}
}

// TrendEntry is the compact summary of one run kept in the trend log.
type TrendEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	TotalTests  int       `json:"totalTests"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	PassRate    float64   `json:"passRate"`
	Duration    int64     `json:"duration"`
	AvgDuration float64   `json:"avgDuration"`
}

// NewTrendEntry derives a trend entry from finalized run metrics.
func NewTrendEntry(m *RunMetrics) TrendEntry {
	return TrendEntry{
		Timestamp:   m.EndTime,
		TotalTests:  m.TotalTests,
		Passed:      m.Passed,
		Failed:      m.Failed,
		PassRate:    m.PassRate,
		Duration:    m.Duration,
		AvgDuration: m.AvgDuration,
	}
}
