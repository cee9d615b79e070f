package scimark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomDefaultSeedSequence(t *testing.T) {
	r := NewRandom(DefaultSeed)

	want := []float64{
		0.33525962398166753,
		0.6972472442766872,
		0.9718488529193443,
		0.9384686127018503,
		0.39871413279264895,
	}
	for i, w := range want {
		assert.Equal(t, w, r.Float64(), "value %d", i)
	}
}

func TestRandomInitialHistory(t *testing.T) {
	r := NewRandom(DefaultSeed)

	want := [randomHistory]int32{
		916050621, 1196331385, 441940869, 757253793, 2029426061,
		930083849, 1762140885, 1429861297, 905835869, 900542361,
		138358565, 643375553, 59818541, 1328469033, 502394997,
		1407410385, 1309461501,
	}
	assert.Equal(t, want, r.m)
	assert.Equal(t, randomLagI, r.i)
	assert.Equal(t, randomLagJ, r.j)
}

func TestRandomOtherSeed(t *testing.T) {
	r := NewRandom(7)

	assert.Equal(t, 0.6994757576377484, r.Float64())
	assert.Equal(t, 0.24574919754906985, r.Float64())
	assert.Equal(t, 0.34967976033207016, r.Float64())
}

func TestRandomSeedSubstitution(t *testing.T) {
	tests := []struct {
		name string
		seed int32
		want int32
	}{
		{"zero uses default", 0, DefaultSeed},
		{"negative is negated", -12345, 12345},
		{"positive kept", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRandom(tt.seed).Seed())
		})
	}

	assert.Equal(t, 0.33525962398166753, NewRandom(0).Float64())
	assert.Equal(t, NewRandom(12345).Vector(10), NewRandom(-12345).Vector(10))
}

func TestRandomReproducible(t *testing.T) {
	a := NewRandom(2024).Vector(10000)
	b := NewRandom(2024).Vector(10000)
	assert.Equal(t, a, b)

	c := NewRandom(2025).Vector(10000)
	assert.NotEqual(t, a, c)
}

func TestRandomUnitInterval(t *testing.T) {
	r := NewRandom(DefaultSeed)
	for i := 0; i < 100000; i++ {
		v := r.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestRandomRange(t *testing.T) {
	plain := NewRandom(99)
	ranged := NewRandomRange(99, -2, 3)

	for i := 0; i < 10000; i++ {
		u := plain.Float64()
		v := ranged.Float64()
		require.GreaterOrEqual(t, v, -2.0)
		require.Less(t, v, 3.0)
		require.InDelta(t, -2+5*u, v, 1e-12)
	}
}

func TestRandomFillMatchesFloat64(t *testing.T) {
	a := NewRandom(5)
	b := NewRandom(5)

	dst := make([]float64, 64)
	a.Fill(dst)
	for i := range dst {
		assert.Equal(t, b.Float64(), dst[i])
	}
}

func TestRandomMatrixRowMajor(t *testing.T) {
	r := NewRandom(DefaultSeed)
	m, err := r.Matrix(3, 4)
	require.NoError(t, err)

	ref := NewRandom(DefaultSeed).Vector(12)
	assert.Equal(t, ref, m.Data())
	assert.Equal(t, ref[4], m.At(1, 0))

	_, err = r.Matrix(0, 4)
	assert.ErrorIs(t, err, ErrBadShape)
}
