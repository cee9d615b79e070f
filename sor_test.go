package scimark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSORBoundaryUnchanged(t *testing.T) {
	n := 12
	g, err := NewRandom(DefaultSeed).Matrix(n, n)
	require.NoError(t, err)
	orig := g.Clone()

	SORExecute(g, SOROmega, 25)

	for i := 0; i < n; i++ {
		assert.Equal(t, orig.At(i, 0), g.At(i, 0))
		assert.Equal(t, orig.At(i, n-1), g.At(i, n-1))
		assert.Equal(t, orig.At(0, i), g.At(0, i))
		assert.Equal(t, orig.At(n-1, i), g.At(n-1, i))
	}
	assert.NotEqual(t, orig.At(n/2, n/2), g.At(n/2, n/2))
}

func TestSORSingleUpdate(t *testing.T) {
	// 3x3 grid: only the centre moves.
	g, err := NewDenseFrom(3, 3, []float64{
		0, 1, 0,
		2, 5, 3,
		0, 4, 0,
	})
	require.NoError(t, err)

	SORExecute(g, SOROmega, 1)

	want := SOROmega/4*(1+4+2+3) + (1-SOROmega)*5
	assert.InDelta(t, want, g.At(1, 1), 1e-15)
}

func TestSORConvergesToHarmonic(t *testing.T) {
	// A constant boundary makes the constant grid the fixed point.
	n := 10
	g, err := NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == 0 || j == 0 || i == n-1 || j == n-1 {
				g.Set(i, j, 1)
			}
		}
	}

	SORExecute(g, SOROmega, 500)

	for _, v := range g.Data() {
		assert.InDelta(t, 1.0, v, 1e-9)
	}
}

func TestSORFlops(t *testing.T) {
	assert.Equal(t, 99.0*99.0*100*6, SORFlops(100))
	assert.Greater(t, SORFlops(100), 98.0*98.0*100*6, "counts (n-1)^2 cells, not the written interior")
}

func TestMeasureSOR(t *testing.T) {
	m, err := MeasureSOR(20, 5*time.Millisecond, NewRandom(DefaultSeed))
	require.NoError(t, err)

	assert.Equal(t, KernelSOR, m.Kernel)
	AssertCalibrated(t, m, 0.005)
	assert.InDelta(t, SORFlops(20)*float64(m.Cycles), m.Flops, 1e-6)

	_, err = MeasureSOR(2, time.Millisecond, NewRandom(1))
	assert.ErrorIs(t, err, ErrBadSize)
}
