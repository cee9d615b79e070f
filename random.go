package scimark

// Random is a deterministic lagged subtractive generator producing doubles in
// [0,1) (or in [left,right) for a ranged stream).
//
// The state is a 17-entry circular history of 31-bit integers. Each call
// combines the entries at lags i and j:
//
//	k = m[i] - m[j]  (mod 2^31-1)
//
// stores k back at j, steps both cursors down (wrapping at 0) and returns
// k / (2^31-1). Only 32-bit integer arithmetic is involved, so the sequence is
// bit-identical on every platform for a given seed.
//
// A Random is not safe for concurrent use. The suite hands one stream from
// kernel to kernel; tests create their own.
type Random struct {
	m    [randomHistory]int32
	i, j int
	seed int32

	haveRange bool
	left      float64
	width     float64
}

const (
	randomHistory = 17
	randomLagI    = 4
	randomLagJ    = 16

	// m1 = 2^31 - 1, m2 = 2^16.
	randomM1 int32 = (1 << 30) + ((1 << 30) - 1)
	randomM2 int32 = 1 << 16

	randomMultiplier int32 = 9069

	randomDM1 = 1.0 / float64(randomM1)
)

// NewRandom returns a stream seeded with seed. Seed 0 is replaced by
// DefaultSeed; negative seeds are negated.
func NewRandom(seed int32) *Random {
	r := &Random{}
	r.initialize(seed)
	return r
}

// NewRandomRange returns a stream whose values lie in [left, right).
func NewRandomRange(seed int32, left, right float64) *Random {
	r := NewRandom(seed)
	r.haveRange = true
	r.left = left
	r.width = right - left
	return r
}

// Seed reports the effective seed after zero/negative substitution.
func (r *Random) Seed() int32 { return r.seed }

func (r *Random) initialize(seed int32) {
	if seed == 0 {
		seed = DefaultSeed
	}
	if seed < 0 {
		seed = -seed
	}
	r.seed = seed

	jseed := min(seed, randomM1)
	if jseed%2 == 0 {
		jseed--
	}

	k0 := randomMultiplier % randomM2
	k1 := randomMultiplier / randomM2
	j0 := jseed % randomM2
	j1 := jseed / randomM2

	for n := 0; n < randomHistory; n++ {
		jseed = j0 * k0
		j1 = (jseed/randomM2 + j0*k1 + j1*k0) % (randomM2 / 2)
		j0 = jseed % randomM2
		r.m[n] = j0 + randomM2*j1
	}

	r.i = randomLagI
	r.j = randomLagJ
}

// Float64 returns the next value of the stream.
func (r *Random) Float64() float64 {
	k := r.m[r.i] - r.m[r.j]
	if k < 0 {
		k += randomM1
	}
	r.m[r.j] = k

	if r.i == 0 {
		r.i = randomHistory - 1
	} else {
		r.i--
	}
	if r.j == 0 {
		r.j = randomHistory - 1
	} else {
		r.j--
	}

	if r.haveRange {
		return r.left + randomDM1*float64(k)*r.width
	}
	return randomDM1 * float64(k)
}

// Fill overwrites dst with consecutive stream values.
func (r *Random) Fill(dst []float64) {
	for i := range dst {
		dst[i] = r.Float64()
	}
}

// Vector returns n fresh stream values.
func (r *Random) Vector(n int) []float64 {
	v := make([]float64, n)
	r.Fill(v)
	return v
}

// Matrix returns a rows x cols Dense filled row by row from the stream.
func (r *Random) Matrix(rows, cols int) (*Dense, error) {
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	r.Fill(d.data)
	return d, nil
}
