package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"time"

	"github.com/your-org/enhanced-html-reporter/pkg/analyzer"
	"github.com/your-org/enhanced-html-reporter/pkg/config"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

// Renderer turns the finalized summary and detail list into the HTML
// document and the detailed JSON payload.
type Renderer struct {
	opts *config.Options
	tmpl *template.Template
}

// DetailedReport is the schema of detailed-report.json.
type DetailedReport struct {
	Summary       *models.RunMetrics         `json:"summary"`
	TestResults   []*models.TestResultDetail `json:"testResults"`
	FailureGroups []*analyzer.FailureGroup   `json:"failureGroups"`
	GeneratedAt   string                     `json:"generatedAt"`
	Options       *config.Options            `json:"options"`
}

// reportData is the root object bound to the HTML template.
type reportData struct {
	Title         string
	Theme         string
	IncludeCharts bool
	IncludeTrends bool
	GeneratedAt   time.Time
	Health        string

	Summary       *models.RunMetrics
	Details       []*models.TestResultDetail
	Trends        []models.TrendEntry
	FailureGroups []*analyzer.FailureGroup
}

// ansiPattern matches terminal color and cursor escape sequences that
// test runners leave in error messages.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes terminal escape sequences from a string.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// NewRenderer creates a renderer for the given options.
func NewRenderer(opts *config.Options) *Renderer {
	funcMap := template.FuncMap{
		"formatDuration": FormatDuration,
		"formatRate": func(rate float64) string {
			return fmt.Sprintf("%.1f", rate)
		},
		"formatTimestamp": func(t time.Time) string {
			return t.Format("January 2, 2006 at 3:04 PM")
		},
		"statusClass": func(d *models.TestResultDetail) string {
			switch {
			case d.IsFlaky():
				return "flaky"
			case d.Status.CountsAsFailed():
				return "failed"
			case d.Status == models.StatusSkipped:
				return "skipped"
			default:
				return "passed"
			}
		},
	}

	return &Renderer{
		opts: opts,
		tmpl: template.Must(template.New("report").Funcs(funcMap).Parse(reportTemplate)),
	}
}

// RenderHTML produces the complete self-contained HTML document. All
// free-form text passes through html/template's contextual escaping;
// error messages are additionally stripped of ANSI sequences first.
func (r *Renderer) RenderHTML(summary *models.RunMetrics, details []*models.TestResultDetail, trendEntries []models.TrendEntry, groups []*analyzer.FailureGroup) (string, error) {
	data := reportData{
		Title:         r.opts.Title,
		Theme:         r.opts.Theme,
		IncludeCharts: r.opts.IncludeCharts,
		IncludeTrends: r.opts.IncludeTrends,
		GeneratedAt:   time.Now(),
		Health:        analyzer.HealthStatus(summary),
		Summary:       summary,
		Details:       sanitizeDetails(details),
		FailureGroups: sanitizeGroups(groups),
	}
	if r.opts.IncludeTrends {
		data.Trends = trendEntries
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}

	return buf.String(), nil
}

// BuildJSON assembles the detailed JSON payload written next to the HTML
// report. Error messages carry the same ANSI stripping as the HTML.
func (r *Renderer) BuildJSON(summary *models.RunMetrics, details []*models.TestResultDetail, groups []*analyzer.FailureGroup) *DetailedReport {
	return &DetailedReport{
		Summary:       summary,
		TestResults:   sanitizeDetails(details),
		FailureGroups: sanitizeGroups(groups),
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Options:       r.opts,
	}
}

// sanitizeDetails returns copies of the detail records with error text
// cleaned. The accumulator's records stay untouched.
func sanitizeDetails(details []*models.TestResultDetail) []*models.TestResultDetail {
	out := make([]*models.TestResultDetail, len(details))
	for i, d := range details {
		if d.Error == "" {
			out[i] = d
			continue
		}
		clean := *d
		clean.Error = StripANSI(d.Error)
		out[i] = &clean
	}
	return out
}

func sanitizeGroups(groups []*analyzer.FailureGroup) []*analyzer.FailureGroup {
	out := make([]*analyzer.FailureGroup, len(groups))
	for i, g := range groups {
		clean := *g
		clean.SampleError = StripANSI(g.SampleError)
		out[i] = &clean
	}
	return out
}

// FormatDuration renders a millisecond duration for display.
func FormatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
