package scimark

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when a body charges it.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// linearBody costs perCycle of fake time per cycle.
func linearBody(c *fakeClock, perCycle time.Duration) Body {
	return func(cycles int) error {
		c.Advance(time.Duration(cycles) * perCycle)
		return nil
	}
}

func TestNewHarnessInvalidMinTime(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		_, err := NewHarness(d)
		assert.ErrorIs(t, err, ErrInvalidMinTime)
	}
}

func TestCalibrateDoubling(t *testing.T) {
	clock := newFakeClock()
	h, err := NewHarness(10*time.Millisecond, WithClock(clock.Now))
	require.NoError(t, err)

	cal, err := h.Calibrate("test", linearBody(clock, time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, StateCalibrated, cal.State)
	assert.Equal(t, 16, cal.Cycles)
	assert.Equal(t, 16*time.Millisecond, cal.Elapsed)

	wantCycles := []int{1, 2, 4, 8, 16}
	require.Len(t, cal.Attempts, len(wantCycles))
	for i, a := range cal.Attempts {
		assert.Equal(t, wantCycles[i], a.Cycles)
		assert.Equal(t, time.Duration(wantCycles[i])*time.Millisecond, a.Elapsed)
	}
}

func TestCalibrateBoundaryInclusive(t *testing.T) {
	clock := newFakeClock()
	h, err := NewHarness(8*time.Millisecond, WithClock(clock.Now))
	require.NoError(t, err)

	cal, err := h.Calibrate("test", linearBody(clock, time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 8, cal.Cycles)
	assert.Len(t, cal.Attempts, 4)
}

func TestCalibrateFirstBurstSuffices(t *testing.T) {
	clock := newFakeClock()
	h, err := NewHarness(time.Millisecond, WithClock(clock.Now))
	require.NoError(t, err)

	cal, err := h.Calibrate("test", linearBody(clock, time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, cal.Cycles)
	assert.Len(t, cal.Attempts, 1)
}

func TestCalibrateZeroElapsedNeverCalibrates(t *testing.T) {
	clock := newFakeClock()
	h, err := NewHarness(time.Millisecond, WithClock(clock.Now))
	require.NoError(t, err)

	calls := 0
	cal, err := h.Calibrate("frozen", func(int) error {
		calls++
		return nil
	})
	require.ErrorIs(t, err, ErrCalibration)
	assert.Equal(t, StateMeasuring, cal.State)
	assert.Equal(t, 31, calls)
	assert.Equal(t, maxCycles, cal.Attempts[len(cal.Attempts)-1].Cycles)
}

func TestCalibrateBodyError(t *testing.T) {
	clock := newFakeClock()
	h, err := NewHarness(time.Second, WithClock(clock.Now))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = h.Calibrate("test", func(cycles int) error {
		if cycles == 4 {
			return boom
		}
		clock.Advance(time.Millisecond)
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestMeasureRate(t *testing.T) {
	clock := newFakeClock()
	h, err := NewHarness(time.Second, WithClock(clock.Now))
	require.NoError(t, err)

	// 1e6 flops per cycle at 10ms per cycle is 100 Mflops.
	m, err := h.measure("test", 1e6, linearBody(clock, 10*time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, 128, m.Cycles)
	assert.Equal(t, 1280*time.Millisecond, m.Elapsed)
	assert.Equal(t, 128e6, m.Flops)
	assert.InDelta(t, 100.0, m.Mflops, 1e-9)
	assert.Equal(t, 8, m.Attempts)
	AssertCalibrated(t, m, 1.0)
}

func TestMeasureRateConverges(t *testing.T) {
	clock := newFakeClock()
	h, err := NewHarness(50*time.Millisecond, WithClock(clock.Now))
	require.NoError(t, err)

	var runs []Measurement
	for i := 0; i < 5; i++ {
		m, err := h.measure("test", 2e5, linearBody(clock, time.Duration(1000+i*10)*time.Microsecond))
		require.NoError(t, err)
		runs = append(runs, m)
	}
	AssertRateConverges(t, runs, DefaultAssertionConfig())
}

func TestCalibrationMonotoneInMinTime(t *testing.T) {
	clock := newFakeClock()
	body := linearBody(clock, 300*time.Microsecond)

	var runs []Measurement
	for _, minTime := range []time.Duration{
		time.Millisecond, 5 * time.Millisecond, 20 * time.Millisecond, 100 * time.Millisecond,
	} {
		h, err := NewHarness(minTime, WithClock(clock.Now))
		require.NoError(t, err)

		m, err := h.measure("test", 1e5, body)
		require.NoError(t, err)
		AssertCalibrated(t, m, minTime.Seconds())

		if len(runs) > 0 {
			prev := runs[len(runs)-1]
			assert.GreaterOrEqual(t, m.Elapsed, prev.Elapsed, "min time %v", minTime)
			assert.GreaterOrEqual(t, m.Cycles, prev.Cycles, "min time %v", minTime)
		}
		assert.InDelta(t, 1e5/300e-6/1e6, m.Mflops, 1e-6)
		runs = append(runs, m)
	}
	AssertRateConverges(t, runs, DefaultAssertionConfig())
}

func TestCalibrationStateString(t *testing.T) {
	assert.Equal(t, "measuring", StateMeasuring.String())
	assert.Equal(t, "calibrated", StateCalibrated.String())
	assert.Equal(t, "CalibrationState(7)", CalibrationState(7).String())
}

// TestCalculateStatistics verifies percentile calculations.
func TestCalculateStatistics(t *testing.T) {
	runs := []Measurement{
		{Elapsed: 500 * time.Microsecond, Mflops: 50},
		{Elapsed: 100 * time.Microsecond, Mflops: 10},
		{Elapsed: 300 * time.Microsecond, Mflops: 30},
		{Elapsed: 200 * time.Microsecond, Mflops: 20},
		{Elapsed: 400 * time.Microsecond, Mflops: 40},
	}

	stats := CalculateStatistics(runs)

	assert.Equal(t, 5, stats.Runs)
	assert.Equal(t, 300*time.Microsecond, stats.P50, "middle value")
	assert.Equal(t, 500*time.Microsecond, stats.P95)
	assert.Equal(t, 300*time.Microsecond, stats.Mean)
	assert.InDelta(t, 30.0, stats.MeanMflops, 1e-12)
	assert.Equal(t, 10.0, stats.MinMflops)
	assert.Equal(t, 50.0, stats.MaxMflops)
	assert.InDelta(t, float64(141421*time.Nanosecond), float64(stats.Stddev), 1000)

	t.Logf("Stats: mean=%v, p50=%v, p95=%v, stddev=%v",
		stats.Mean, stats.P50, stats.P95, stats.Stddev)

	assert.Equal(t, Statistics{}, CalculateStatistics(nil))
}
