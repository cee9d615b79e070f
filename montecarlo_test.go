package scimark

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonteCarloIntegrate(t *testing.T) {
	estimate := MonteCarloIntegrate(NewRandom(DefaultSeed), 1_000_000)
	assert.InDelta(t, 3.144292, estimate, 1e-9)
	AssertPiEstimate(t, estimate, DefaultAssertionConfig())
}

func TestMonteCarloLargeSample(t *testing.T) {
	if testing.Short() {
		t.Skip("10M samples")
	}
	estimate := MonteCarloIntegrate(NewRandom(DefaultSeed), 10_000_000)
	assert.InDelta(t, math.Pi, estimate, 0.01)
}

func TestMonteCarloDeterministic(t *testing.T) {
	a := MonteCarloIntegrate(NewRandom(11), 50_000)
	b := MonteCarloIntegrate(NewRandom(11), 50_000)
	assert.Equal(t, a, b)
}

func TestMonteCarloConsumesTwoPerSample(t *testing.T) {
	r := NewRandom(DefaultSeed)
	MonteCarloIntegrate(r, 100)

	ref := NewRandom(DefaultSeed)
	ref.Vector(200)
	assert.Equal(t, ref.Float64(), r.Float64())
}

func TestMonteCarloNoSamples(t *testing.T) {
	assert.Equal(t, 0.0, MonteCarloIntegrate(NewRandom(1), 0))
	assert.Equal(t, 0.0, MonteCarloIntegrate(NewRandom(1), -5))
}

func TestMeasureMonteCarlo(t *testing.T) {
	m, err := MeasureMonteCarlo(5 * time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, KernelMonteCarlo, m.Kernel)
	AssertCalibrated(t, m, 0.005)
	assert.Equal(t, MonteCarloFlops()*float64(m.Cycles), m.Flops)
	assert.InDelta(t, math.Pi, m.Check, 0.05)

	want := MonteCarloIntegrate(NewRandom(monteCarloSeed), m.Cycles*MonteCarloBatch)
	assert.Equal(t, want, m.Check, "each burst samples the fixed private sequence")
}

func TestMeasureMonteCarloLeavesStreamUntouched(t *testing.T) {
	spec, ok := DefaultRegistry().Lookup(KernelMonteCarlo)
	require.True(t, ok)
	rnd := NewRandom(DefaultSeed)

	for _, minTime := range []time.Duration{time.Millisecond, 20 * time.Millisecond} {
		h, err := NewHarness(minTime)
		require.NoError(t, err)
		_, err = spec.Measure(h, DefaultSizes(), rnd)
		require.NoError(t, err)
	}

	ref := NewRandom(DefaultSeed)
	assert.Equal(t, ref.Float64(), rnd.Float64())
}
