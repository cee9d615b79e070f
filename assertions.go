package scimark

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// AssertionConfig contains thresholds for measurement and accuracy checks.
type AssertionConfig struct {
	// Relative spread allowed between repeated rates (0.5 = within 50% of the mean)
	MaxRateSpread float64

	// Maximum RMS error of an FFT round trip
	MaxRoundTripError float64

	// Maximum absolute error of a Monte Carlo pi estimate
	MaxPiError float64

	// Maximum relative residual of P*A - L*U
	MaxLUResidual float64
}

// DefaultAssertionConfig returns conservative thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		MaxRateSpread:     0.5,   // Shared CI machines are noisy
		MaxRoundTripError: 1e-10, // Double precision, N up to 2^20
		MaxPiError:        0.01,  // Needs roughly 10^6 samples
		MaxLUResidual:     1e-8,
	}
}

// AssertCalibrated verifies that m is the outcome of a completed calibration:
// the burst lasted at least minTime and its rate is finite and positive.
func AssertCalibrated(t testing.TB, m Measurement, minTime float64) {
	t.Helper()

	if m.Cycles < 1 {
		t.Errorf("%s: not calibrated, cycles = %d", m.Kernel, m.Cycles)
	}
	if m.Elapsed.Seconds() < minTime {
		t.Errorf("%s: burst too short: %.6fs (min: %.6fs)", m.Kernel, m.Elapsed.Seconds(), minTime)
	}
	if !(m.Mflops > 0) || math.IsInf(m.Mflops, 0) {
		t.Errorf("%s: rate not finite and positive: %v Mflops", m.Kernel, m.Mflops)
	}

	t.Logf("✓ %s calibrated: %d cycles in %v (%.2f Mflops, %d attempts)",
		m.Kernel, m.Cycles, m.Elapsed, m.Mflops, m.Attempts)
}

// AssertRateConverges verifies that repeated measurements of one kernel
// agree within cfg.MaxRateSpread of their mean.
func AssertRateConverges(t testing.TB, runs []Measurement, cfg AssertionConfig) {
	t.Helper()

	if len(runs) < 2 {
		t.Fatalf("need at least 2 runs, got %d", len(runs))
	}

	stats := CalculateStatistics(runs)

	var failures []string
	for i, r := range runs {
		spread := math.Abs(r.Mflops-stats.MeanMflops) / stats.MeanMflops
		if spread > cfg.MaxRateSpread {
			failures = append(failures, fmt.Sprintf(
				"  run %d: %.2f Mflops (%.1f%% from mean)", i, r.Mflops, spread*100))
		}
	}

	if len(failures) > 0 {
		t.Errorf("Rates do not converge (mean %.2f Mflops, max spread %.0f%%):\n%s",
			stats.MeanMflops, cfg.MaxRateSpread*100, failures)
	}

	t.Logf("✓ Rates converge: mean %.2f Mflops, range [%.2f, %.2f] over %d runs",
		stats.MeanMflops, stats.MinMflops, stats.MaxMflops, stats.Runs)
}

// AssertRoundTrip verifies that inverse(forward(data)) reproduces data.
func AssertRoundTrip(t testing.TB, data []float64, cfg AssertionConfig) {
	t.Helper()

	rms, err := FFTRoundTripError(data)
	if err != nil {
		t.Fatalf("FFT round trip failed: %v", err)
	}

	if rms > cfg.MaxRoundTripError {
		t.Errorf("Round trip error too high: RMS = %.3e (max: %.3e)", rms, cfg.MaxRoundTripError)
	}

	t.Logf("✓ FFT round trip: RMS = %.3e for N=%d", rms, len(data)/2)
}

// AssertPiEstimate verifies a Monte Carlo estimate.
func AssertPiEstimate(t testing.TB, estimate float64, cfg AssertionConfig) {
	t.Helper()

	if diff := math.Abs(estimate - math.Pi); diff > cfg.MaxPiError {
		t.Errorf("Pi estimate off: %.6f (|err| = %.6f, max: %.6f)", estimate, diff, cfg.MaxPiError)
	}

	t.Logf("✓ Pi estimate: %.6f", estimate)
}

// AssertFactorization verifies P*A = L*U for the factorization of a,
// relative to the largest entry of P*A.
func AssertFactorization(t testing.TB, a *Dense, cfg AssertionConfig) {
	t.Helper()

	f, err := NewLU(a)
	if err != nil {
		t.Fatalf("LU failed: %v", err)
	}

	pa, err := f.Permute(a)
	if err != nil {
		t.Fatalf("permute failed: %v", err)
	}
	lu, err := f.L().Mul(f.U())
	if err != nil {
		t.Fatalf("L*U failed: %v", err)
	}

	var maxDiff, maxAbs float64
	for i, v := range pa.Data() {
		maxDiff = math.Max(maxDiff, math.Abs(v-lu.Data()[i]))
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	residual := maxDiff
	if maxAbs > 0 {
		residual /= maxAbs
	}

	if residual > cfg.MaxLUResidual {
		t.Errorf("P*A != L*U: relative residual %.3e (max: %.3e)", residual, cfg.MaxLUResidual)
	}

	t.Logf("✓ P*A = L*U: relative residual %.3e for %dx%d", residual, a.Rows(), a.Cols())
}

// PrintReport logs the text report to the test log.
func PrintReport(t testing.TB, r *Report) {
	t.Helper()

	var sb strings.Builder
	if err := r.writeText(&sb); err != nil {
		t.Fatalf("render report: %v", err)
	}
	t.Logf("\n%s", sb.String())
}
