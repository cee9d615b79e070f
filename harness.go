package scimark

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"
)

// Body executes a kernel cycles times back to back. It is the only code
// inside the timed interval.
type Body func(cycles int) error

// CalibrationState is the state of the doubling search.
// The only transition is StateMeasuring -> StateCalibrated, taken once a
// timed burst lasts at least the minimum time.
type CalibrationState int

const (
	StateMeasuring CalibrationState = iota
	StateCalibrated
)

func (s CalibrationState) String() string {
	switch s {
	case StateMeasuring:
		return "measuring"
	case StateCalibrated:
		return "calibrated"
	default:
		return fmt.Sprintf("CalibrationState(%d)", int(s))
	}
}

// maxCycles bounds the doubling search. A body that still runs under the
// minimum time at this count is not doing measurable work.
const maxCycles = 1 << 30

// Attempt records one timed burst of the doubling search.
type Attempt struct {
	Cycles  int
	Elapsed time.Duration
}

// Calibration is the outcome of the doubling search.
type Calibration struct {
	State    CalibrationState
	Cycles   int
	Elapsed  time.Duration
	Attempts []Attempt
}

// Measurement is the reported result of one kernel measurement.
type Measurement struct {
	Kernel   string        // Registry name of the kernel
	Cycles   int           // Calibrated repetition count
	Elapsed  time.Duration // Wall-clock duration of the calibrated burst
	Flops    float64       // Analytical operation count of the burst
	Mflops   float64       // Flops / Elapsed / 1e6
	Attempts int           // Timed bursts needed to calibrate
	Check    float64       // Correctness value, not a score: FFT round-trip RMS error, Monte Carlo pi estimate
}

// Harness calibrates and times kernel bodies.
type Harness struct {
	minTime time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// HarnessOption configures a Harness.
type HarnessOption func(*Harness)

// WithClock replaces the time source. time.Now carries a monotonic reading,
// replacements used in tests need only be non-decreasing.
func WithClock(now func() time.Time) HarnessOption {
	return func(h *Harness) { h.now = now }
}

// WithLogger sets the logger for calibration traces.
func WithLogger(l *slog.Logger) HarnessOption {
	return func(h *Harness) { h.logger = l }
}

// NewHarness returns a Harness that calibrates every burst to at least minTime.
func NewHarness(minTime time.Duration, opts ...HarnessOption) (*Harness, error) {
	if minTime <= 0 {
		return nil, kernelErrorf(opHarness, fmt.Errorf("%v: %w", minTime, ErrInvalidMinTime))
	}
	h := &Harness{minTime: minTime, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// MinTime reports the minimum burst duration.
func (h *Harness) MinTime() time.Duration { return h.minTime }

// Calibrate runs body with 1, 2, 4, ... cycles, each burst timed from a fresh
// start, until one burst lasts at least the minimum time. A burst measuring
// zero elapsed time never calibrates, so the later rate division is safe.
func (h *Harness) Calibrate(kernel string, body Body) (Calibration, error) {
	cal := Calibration{State: StateMeasuring}

	for cycles := 1; ; cycles *= 2 {
		start := h.now()
		if err := body(cycles); err != nil {
			return cal, err
		}
		elapsed := h.now().Sub(start)

		cal.Attempts = append(cal.Attempts, Attempt{Cycles: cycles, Elapsed: elapsed})
		h.logger.Debug("calibration attempt", "kernel", kernel, "cycles", cycles, "elapsed", elapsed)

		if elapsed > 0 && elapsed >= h.minTime {
			cal.State = StateCalibrated
			cal.Cycles = cycles
			cal.Elapsed = elapsed
			return cal, nil
		}
		if cycles >= maxCycles {
			return cal, kernelErrorf(opCalibrate, fmt.Errorf("%s after %d cycles: %w", kernel, cycles, ErrCalibration))
		}
	}
}

// measure calibrates body and converts the calibrated burst into a rate.
func (h *Harness) measure(kernel string, flopsPerCycle float64, body Body) (Measurement, error) {
	cal, err := h.Calibrate(kernel, body)
	if err != nil {
		return Measurement{Kernel: kernel}, err
	}

	flops := flopsPerCycle * float64(cal.Cycles)
	m := Measurement{
		Kernel:   kernel,
		Cycles:   cal.Cycles,
		Elapsed:  cal.Elapsed,
		Flops:    flops,
		Mflops:   flops / cal.Elapsed.Seconds() * 1e-6,
		Attempts: len(cal.Attempts),
	}

	h.logger.Info("kernel measured",
		"kernel", kernel,
		"mflops", math.Round(m.Mflops*100)/100,
		"cycles", m.Cycles,
		"elapsed", m.Elapsed,
	)
	return m, nil
}

// Statistics summarizes repeated measurements of one kernel.
type Statistics struct {
	Runs       int
	MeanMflops float64
	MinMflops  float64
	MaxMflops  float64
	Mean       time.Duration // Elapsed per calibrated burst
	Stddev     time.Duration
	P50        time.Duration
	P95        time.Duration
}

// CalculateStatistics computes rate and elapsed-time statistics.
func CalculateStatistics(runs []Measurement) Statistics {
	if len(runs) == 0 {
		return Statistics{}
	}

	sorted := make([]time.Duration, len(runs))
	stats := Statistics{
		Runs:      len(runs),
		MinMflops: math.Inf(1),
		MaxMflops: math.Inf(-1),
	}

	var sum time.Duration
	for i, r := range runs {
		sorted[i] = r.Elapsed
		sum += r.Elapsed
		stats.MeanMflops += r.Mflops
		stats.MinMflops = math.Min(stats.MinMflops, r.Mflops)
		stats.MaxMflops = math.Max(stats.MaxMflops, r.Mflops)
	}
	stats.MeanMflops /= float64(len(runs))
	stats.Mean = sum / time.Duration(len(runs))

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var variance float64
	for _, d := range sorted {
		diff := float64(d - stats.Mean)
		variance += diff * diff
	}
	stats.Stddev = time.Duration(math.Sqrt(variance / float64(len(sorted))))

	stats.P50 = sorted[len(sorted)*50/100]
	stats.P95 = sorted[len(sorted)*95/100]

	return stats
}
