package scimark

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Suite runs the selected kernels in fixed order against one random stream.
// The stream passes from kernel to kernel; kernels never run concurrently.
type Suite struct {
	cfg      Config
	registry *Registry
	logger   *slog.Logger
	metrics  *Metrics
	now      func() time.Time
}

// SuiteOption configures a Suite.
type SuiteOption func(*Suite)

// WithSuiteLogger sets the logger used by the suite and its harness.
func WithSuiteLogger(l *slog.Logger) SuiteOption {
	return func(s *Suite) { s.logger = l }
}

// WithMetrics records every measurement into m.
func WithMetrics(m *Metrics) SuiteOption {
	return func(s *Suite) { s.metrics = m }
}

// WithSuiteClock replaces the time source of the suite and its harness.
func WithSuiteClock(now func() time.Time) SuiteOption {
	return func(s *Suite) { s.now = now }
}

// WithRegistry replaces the standard kernels.
func WithRegistry(r *Registry) SuiteOption {
	return func(s *Suite) { s.registry = r }
}

// NewSuite validates cfg and returns a runnable suite. Configuration errors
// surface here, before any kernel runs.
func NewSuite(cfg Config, opts ...SuiteOption) (*Suite, error) {
	s := &Suite{
		cfg:      cfg,
		registry: defaultRegistry,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.registry.Resolve(cfg.Kernels); err != nil {
		return nil, kernelErrorf(opSuite, err)
	}
	return s, nil
}

// Config returns the validated configuration.
func (s *Suite) Config() Config { return s.cfg }

// Run measures every selected kernel Repeat times. ctx is checked between
// measurements only; a timed burst always runs to completion. On error the
// partial report gathered so far is returned with it.
func (s *Suite) Run(ctx context.Context) (*Report, error) {
	specs, err := s.registry.Resolve(s.cfg.Kernels)
	if err != nil {
		return nil, kernelErrorf(opSuite, err)
	}

	h, err := NewHarness(s.cfg.MinTime, WithClock(s.now), WithLogger(s.logger))
	if err != nil {
		return nil, kernelErrorf(opSuite, err)
	}

	rnd := NewRandom(s.cfg.Seed)
	report := newReport(s.cfg, s.now())

	s.logger.Info("suite starting",
		"run_id", report.RunID,
		"kernels", len(specs),
		"min_time", s.cfg.MinTime,
		"large", s.cfg.Large,
		"seed", rnd.Seed(),
	)

	for _, spec := range specs {
		kr := KernelResult{
			Kernel: spec.Name,
			Title:  spec.Title,
			Params: spec.Describe(s.cfg.Sizes),
		}

		for i := 0; i < s.cfg.Repeat; i++ {
			if err := ctx.Err(); err != nil {
				return report, kernelErrorf(opSuite, err)
			}

			m, err := spec.Measure(h, s.cfg.Sizes, rnd)
			if err != nil {
				return report, kernelErrorf(opSuite, fmt.Errorf("%s: %w", spec.Name, err))
			}
			kr.Runs = append(kr.Runs, m)

			if s.metrics != nil {
				s.metrics.Observe(m)
			}
		}

		kr.finish()
		report.Results = append(report.Results, kr)
	}

	if s.registry.IsComplete(specs) {
		composite := CompositeScore(report.Results)
		report.Composite = &composite
		if s.metrics != nil {
			s.metrics.SetComposite(composite)
		}
		s.logger.Info("suite finished", "composite_mflops", composite)
	} else {
		s.logger.Info("suite finished", "kernels", len(report.Results))
	}

	return report, nil
}

// CompositeScore is the arithmetic mean of the kernel rates.
func CompositeScore(results []KernelResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Mflops
	}
	return sum / float64(len(results))
}
