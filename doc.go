// Package scimark measures floating-point throughput with five fixed
// numerical kernels and reports each as a rate in Mflops.
//
// # Overview
//
// Every kernel is timed through the same calibration harness: the body runs
// 1, 2, 4, ... cycles back to back, each burst timed from a fresh start,
// until one burst lasts at least the minimum time. The rate is the analytical
// operation count of that burst divided by its duration. All inputs come from
// one deterministic generator, so the same seed gives bit-identical data on
// every machine.
//
// # Architecture
//
// The package components:
//
//   - random     - Lagged subtractive generator (seed 101010 by default)
//   - harness    - Doubling calibration, rate conversion, statistics
//   - fft        - In-place radix-2 complex FFT
//   - sor        - Gauss-Seidel successive over-relaxation on a grid
//   - montecarlo - Quarter-circle estimate of pi
//   - sparse     - Compressed-row matrix times vector
//   - lu         - Dense LU with partial pivoting
//   - suite      - Runs the selected kernels and builds a Report
//   - metrics    - Prometheus gauges for the last run
//   - assertions - Test helpers for calibration and accuracy
//
// # Quick Start
//
// Run the standard suite:
//
//	cfg := scimark.DefaultConfig()
//	cfg.MinTime = 500 * time.Millisecond
//
//	suite, err := scimark.NewSuite(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := suite.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report.Write(os.Stdout, scimark.FormatText)
//
// Measure a single kernel:
//
//	r := scimark.NewRandom(scimark.DefaultSeed)
//	m, err := scimark.MeasureFFT(1024, time.Second, r)
//	fmt.Printf("FFT: %.2f Mflops\n", m.Mflops)
//
// # Operation Counts
//
// One measured cycle of each kernel counts as:
//
//	FFT        2 * 5 * N * log2(N)       forward plus inverse transform
//	SOR        (N-1)^2 * 100 * 6          100 sweeps of an N x N grid
//	MonteCarlo 100000 * 4                 one batch of samples
//	Sparse     2 * nz                     one product y = A*x
//	LU         2/3 * N^3                  one factorization
//
// The composite score is the arithmetic mean of the five rates and is only
// reported when all five kernels ran.
//
// # Testing
//
// Use assertions to validate kernels and measurements:
//
//	func TestMyKernel(t *testing.T) {
//	    cfg := scimark.DefaultAssertionConfig()
//
//	    scimark.AssertRoundTrip(t, scimark.NewRandom(7).Vector(2048), cfg)
//	    scimark.AssertFactorization(t, a, cfg)
//	    scimark.AssertCalibrated(t, m, 0.01)
//	}
package scimark
