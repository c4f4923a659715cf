package metrics

import (
	"time"

	"github.com/your-org/enhanced-html-reporter/pkg/logger"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

// DefaultBrowser is assumed when an event carries no browser identity.
// Kept for compatibility with existing report consumers.
const DefaultBrowser = "Chromium"

// Accumulator consumes one completion event per test and keeps the
// running aggregate for a single run. One instance is created per run and
// owns its RunMetrics and detail list; event delivery is serialized by
// the host runner, so no locking is needed.
type Accumulator struct {
	metrics   *models.RunMetrics
	details   []*models.TestResultDetail
	finalized bool
}

// NewAccumulator starts a new run at the given time.
func NewAccumulator(start time.Time) *Accumulator {
	return &Accumulator{
		metrics: models.NewRunMetrics(start),
		details: make([]*models.TestResultDetail, 0),
	}
}

// OnTestComplete folds one completion event into the running metrics.
// Malformed fields are defaulted, never rejected.
func (a *Accumulator) OnTestComplete(ev models.TestEvent) {
	m := a.metrics

	browser := ev.Browser
	if browser == "" {
		browser = DefaultBrowser
	}

	duration := ev.Duration
	if duration < 0 {
		duration = 0
	}

	info := ExtractAnnotations(ev.Annotations)

	m.TotalTests++

	switch {
	case ev.Status == models.StatusPassed:
		m.Passed++
		a.browserStats(browser).Passed++
		a.bumpTagStats(info, true)
		if ev.Retries > 0 {
			m.Flaky++
		}
	case ev.Status.CountsAsFailed():
		m.Failed++
		a.browserStats(browser).Failed++
		a.bumpTagStats(info, false)
		if ev.Error != "" {
			m.ErrorCategories[ClassifyError(ev.Error)]++
		}
	case ev.Status == models.StatusSkipped:
		m.Skipped++
	default:
		// Unknown status from the runner, count it as skipped
		logger.Debugf("unknown test status %q for %s, counting as skipped", ev.Status, ev.Name)
		m.Skipped++
	}

	m.Duration += duration
	bs := a.browserStats(browser)
	bs.Duration += duration

	if m.SlowestTest == nil || duration > m.SlowestTest.Duration {
		m.SlowestTest = &models.TestExtreme{Name: ev.Name, Duration: duration}
	}
	if m.FastestTest == nil || duration < m.FastestTest.Duration {
		m.FastestTest = &models.TestExtreme{Name: ev.Name, Duration: duration}
	}

	detail := &models.TestResultDetail{
		Name:        ev.Name,
		Status:      ev.Status,
		Duration:    duration,
		Browser:     browser,
		File:        ev.File,
		Retries:     ev.Retries,
		Error:       ev.Error,
		Annotations: &info,
		Attachments: ev.Attachments,
	}
	a.details = append(a.details, detail)
}

// Finalize computes the derived summary values. The end timestamp is set
// on the first call only, so repeated calls yield identical summaries.
func (a *Accumulator) Finalize() *models.RunMetrics {
	m := a.metrics

	if !a.finalized {
		m.EndTime = time.Now()
		a.finalized = true
	}

	if m.TotalTests > 0 {
		m.PassRate = float64(m.Passed) / float64(m.TotalTests) * 100
		m.FailRate = float64(m.Failed) / float64(m.TotalTests) * 100
		m.AvgDuration = float64(m.Duration) / float64(m.TotalTests)
	} else {
		m.PassRate = 0
		m.FailRate = 0
		m.AvgDuration = 0
	}

	return m
}

// Metrics exposes the current aggregate. Callers must not mutate it.
func (a *Accumulator) Metrics() *models.RunMetrics {
	return a.metrics
}

// Details returns the ordered per-test detail list.
func (a *Accumulator) Details() []*models.TestResultDetail {
	return a.details
}

func (a *Accumulator) browserStats(browser string) *models.BrowserMetrics {
	bs, ok := a.metrics.BrowserStats[browser]
	if !ok {
		bs = &models.BrowserMetrics{}
		a.metrics.BrowserStats[browser] = bs
	}
	return bs
}

// bumpTagStats updates the severity/feature/epic maps for a passed or
// failed test. Skipped tests never reach here.
func (a *Accumulator) bumpTagStats(info models.AnnotationInfo, passed bool) {
	bump(a.metrics.SeverityStats, info.Severity, passed)
	bump(a.metrics.FeatureStats, info.Feature, passed)
	bump(a.metrics.EpicStats, info.Epic, passed)
}

func bump(stats map[string]*models.TagMetrics, tag string, passed bool) {
	tm, ok := stats[tag]
	if !ok {
		tm = &models.TagMetrics{}
		stats[tag] = tm
	}
	tm.Total++
	if passed {
		tm.Passed++
	} else {
		tm.Failed++
	}
}
