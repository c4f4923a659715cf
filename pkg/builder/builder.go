package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/enhanced-html-reporter/pkg/analyzer"
	"github.com/your-org/enhanced-html-reporter/pkg/config"
	"github.com/your-org/enhanced-html-reporter/pkg/logger"
	"github.com/your-org/enhanced-html-reporter/pkg/metrics"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
	"github.com/your-org/enhanced-html-reporter/pkg/renderer"
	"github.com/your-org/enhanced-html-reporter/pkg/storage"
	"github.com/your-org/enhanced-html-reporter/pkg/trends"
)

// ReportBuilder assembles the report artifacts from a finalized run.
type ReportBuilder struct {
	opts     *config.Options
	renderer *renderer.Renderer
	trends   *trends.Store
	db       *storage.Database
}

// NewReportBuilder creates a builder for the given options. History
// storage failing to open disables history but never fails the build.
func NewReportBuilder(opts *config.Options) *ReportBuilder {
	var db *storage.Database
	if opts.EnableHistory {
		var err error
		db, err = storage.NewDatabase(opts.OutputDir)
		if err != nil {
			logger.Warnf("Failed to initialize history database: %v", err)
			logger.Warn("Cross-run history will not be available")
			db = nil
		}
	}

	return &ReportBuilder{
		opts:     opts,
		renderer: renderer.NewRenderer(opts),
		trends:   trends.NewStore(opts.TrendsPath()),
		db:       db,
	}
}

// Close releases history database resources.
func (rb *ReportBuilder) Close() error {
	if rb.db != nil {
		return rb.db.Close()
	}
	return nil
}

// Build writes the HTML report, the detailed JSON payload, and (when
// enabled) the trend log. File-write failures are fatal: accumulation has
// already finished, so the run's results are unaffected, but no partial
// report is produced.
func (rb *ReportBuilder) Build(summary *models.RunMetrics, details []*models.TestResultDetail) error {
	start := time.Now()
	logger.Info("Generating enhanced test report...")

	if err := os.MkdirAll(rb.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	groups := analyzer.GroupFailures(details)

	var trendEntries []models.TrendEntry
	if rb.opts.IncludeTrends {
		entries, err := rb.trends.Append(models.NewTrendEntry(summary))
		if err != nil {
			return fmt.Errorf("failed to update trend log: %w", err)
		}
		trendEntries = entries
	}

	html, err := rb.renderer.RenderHTML(summary, details, trendEntries, groups)
	if err != nil {
		return err
	}
	if err := os.WriteFile(rb.opts.HTMLPath(), []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}

	payload := rb.renderer.BuildJSON(summary, details, groups)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal detailed report: %w", err)
	}
	if err := os.WriteFile(rb.opts.DetailedJSONPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write detailed report: %w", err)
	}

	if rb.db != nil {
		runID := uuid.New().String()
		if err := rb.db.SaveRun(runID, summary, details); err != nil {
			logger.Warnf("Failed to save run history: %v", err)
		}
		rb.logHistoryDelta(summary)
		rb.logPersistentFailures(details)
		if err := rb.db.CleanupOldData(rb.opts.RetentionDays); err != nil {
			logger.Warnf("Failed to clean up run history: %v", err)
		}
	}

	logger.Infof("Report generated in %v", time.Since(start).Round(time.Millisecond))
	logger.Infof("Open: file://%s", rb.opts.HTMLPath())

	if rb.opts.OpenReport {
		if err := openBrowser(rb.opts.HTMLPath()); err != nil {
			logger.Warnf("Could not open report in browser: %v", err)
		}
	}

	return nil
}

// logHistoryDelta compares this run's pass rate against the previous
// recorded run.
func (rb *ReportBuilder) logHistoryDelta(summary *models.RunMetrics) {
	runs, err := rb.db.GetRecentRuns(2)
	if err != nil || len(runs) < 2 {
		return
	}

	previous := runs[1]
	delta := summary.PassRate - previous.PassRate
	switch {
	case delta > 0:
		logger.Infof("Pass rate up %.1f%% from the previous run", delta)
	case delta < 0:
		logger.Infof("Pass rate down %.1f%% from the previous run", -delta)
	}
}

// logPersistentFailures flags failed tests that also fail in most
// recorded runs, to separate chronic breakage from fresh regressions.
func (rb *ReportBuilder) logPersistentFailures(details []*models.TestResultDetail) {
	for _, d := range details {
		if !d.Status.CountsAsFailed() {
			continue
		}
		rate, err := rb.db.FailureRate(d.Name, rb.opts.RetentionDays)
		if err != nil {
			continue
		}
		if rate >= 0.8 {
			logger.Warnf("Test %q has failed in %.0f%% of recent runs", d.Name, rate*100)
		}
	}
}

// BuildFromFile generates a report from a saved JSON file containing an
// array of test completion events.
func (rb *ReportBuilder) BuildFromFile(inputFile string) error {
	logger.Infof("Reading test results from %s", inputFile)

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var events []models.TestEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	acc := metrics.NewAccumulator(time.Now())
	for _, ev := range events {
		acc.OnTestComplete(ev)
	}
	summary := acc.Finalize()

	return rb.Build(summary, acc.Details())
}

// openBrowser launches the system browser on the generated report.
func openBrowser(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
