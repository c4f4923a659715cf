package reporter

import (
	"time"

	"github.com/your-org/enhanced-html-reporter/pkg/builder"
	"github.com/your-org/enhanced-html-reporter/pkg/config"
	"github.com/your-org/enhanced-html-reporter/pkg/logger"
	"github.com/your-org/enhanced-html-reporter/pkg/metrics"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

// Reporter is the lifecycle surface the host test runner drives: OnBegin
// once at run start, OnTestEnd once per completed test, OnEnd once after
// the last test. Event delivery is serialized by the runner.
type Reporter struct {
	opts *config.Options
	acc  *metrics.Accumulator
}

// New creates a reporter. Passing nil options loads configuration from
// file and environment with defaults.
func New(opts *config.Options) *Reporter {
	if opts == nil {
		loaded, err := config.LoadOptions()
		if err != nil {
			logger.Warnf("Failed to load options, using defaults: %v", err)
			loaded = config.DefaultOptions()
		}
		opts = loaded
	} else {
		opts.Normalize()
	}

	return &Reporter{opts: opts}
}

// Options exposes the effective configuration.
func (r *Reporter) Options() *config.Options {
	return r.opts
}

// OnBegin starts a new run, discarding any previous accumulation.
func (r *Reporter) OnBegin() {
	logger.Debug("Run starting")
	r.acc = metrics.NewAccumulator(time.Now())
}

// OnTestEnd folds one completion event into the run. A missing OnBegin
// is tolerated: the first event starts the run.
func (r *Reporter) OnTestEnd(ev models.TestEvent) {
	if r.acc == nil {
		r.OnBegin()
	}
	r.acc.OnTestComplete(ev)
}

// OnEnd finalizes the run and writes all report artifacts. If the host
// process dies before OnEnd, nothing is flushed.
func (r *Reporter) OnEnd() error {
	if r.acc == nil {
		r.acc = metrics.NewAccumulator(time.Now())
	}
	summary := r.acc.Finalize()

	b := builder.NewReportBuilder(r.opts)
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warnf("Failed to close report builder: %v", err)
		}
	}()

	return b.Build(summary, r.acc.Details())
}
