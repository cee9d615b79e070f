package scimark

import (
	"fmt"
	"math"
	"time"
)

// LUFlops is the operation count of one n x n factorization: 2/3 * n^3.
func LUFlops(n int) float64 {
	nd := float64(n)
	return 2.0 * nd * nd * nd / 3.0
}

// LUFactor factors a in place by Gaussian elimination with partial pivoting.
//
// On return the strictly lower part of a holds the multipliers of L (unit
// diagonal implied) and the upper part holds U. pivot[j] is the row that was
// exchanged with row j at step j, so applying those swaps in order to the
// input matrix yields L*U.
//
// A pivot column that is exactly zero at or below the diagonal is reported as
// ErrSingular; a is partially factored in that case.
func LUFactor(a *Dense, pivot []int) error {
	m, n := a.rows, a.cols
	minMN := min(m, n)
	if len(pivot) < minMN {
		return kernelErrorf(opLU, fmt.Errorf("len(pivot)=%d, want %d: %w", len(pivot), minMN, ErrDimensionMismatch))
	}

	for j := 0; j < minMN; j++ {
		// Largest magnitude in column j at or below the diagonal.
		jp := j
		t := math.Abs(a.At(j, j))
		for i := j + 1; i < m; i++ {
			if ab := math.Abs(a.At(i, j)); ab > t {
				jp = i
				t = ab
			}
		}
		pivot[j] = jp

		if a.At(jp, j) == 0 {
			return kernelErrorf(opLU, fmt.Errorf("column %d: %w", j, ErrSingular))
		}

		a.SwapRows(j, jp)

		aj := a.Row(j)
		if j < m-1 {
			recp := 1.0 / aj[j]
			for k := j + 1; k < m; k++ {
				a.data[k*n+j] *= recp
			}
		}

		if j < minMN-1 {
			for ii := j + 1; ii < m; ii++ {
				aii := a.Row(ii)
				aiiJ := aii[j]
				for jj := j + 1; jj < n; jj++ {
					aii[jj] -= aiiJ * aj[jj]
				}
			}
		}
	}
	return nil
}

// Factorization is a square LU factorization with its pivot record.
type Factorization struct {
	lu    *Dense
	pivot []int
}

// NewLU factors a copy of the square matrix a.
func NewLU(a *Dense) (*Factorization, error) {
	if a.rows != a.cols {
		return nil, kernelErrorf(opLU, fmt.Errorf("%dx%d: %w", a.rows, a.cols, ErrDimensionMismatch))
	}
	f := &Factorization{lu: a.Clone(), pivot: make([]int, a.rows)}
	if err := LUFactor(f.lu, f.pivot); err != nil {
		return nil, err
	}
	return f, nil
}

// Pivot returns the pivot record.
func (f *Factorization) Pivot() []int { return f.pivot }

// Packed returns the combined L\U storage.
func (f *Factorization) Packed() *Dense { return f.lu }

// L returns the unit lower-triangular factor.
func (f *Factorization) L() *Dense {
	n := f.lu.rows
	l, _ := NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			l.Set(i, j, f.lu.At(i, j))
		}
		l.Set(i, i, 1)
	}
	return l
}

// U returns the upper-triangular factor.
func (f *Factorization) U() *Dense {
	n := f.lu.rows
	u, _ := NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			u.Set(i, j, f.lu.At(i, j))
		}
	}
	return u
}

// Permute applies the recorded row swaps to a copy of a, giving P*a.
func (f *Factorization) Permute(a *Dense) (*Dense, error) {
	if a.rows != f.lu.rows {
		return nil, kernelErrorf(opLU, fmt.Errorf("%d rows, want %d: %w", a.rows, f.lu.rows, ErrDimensionMismatch))
	}
	pa := a.Clone()
	for j, jp := range f.pivot {
		pa.SwapRows(j, jp)
	}
	return pa, nil
}

// Solve returns x with A*x = b by forward and back substitution.
func (f *Factorization) Solve(b []float64) ([]float64, error) {
	n := f.lu.rows
	if len(b) != n {
		return nil, kernelErrorf(opLU, fmt.Errorf("len(b)=%d, want %d: %w", len(b), n, ErrDimensionMismatch))
	}

	x := make([]float64, n)
	copy(x, b)
	for j, jp := range f.pivot {
		x[j], x[jp] = x[jp], x[j]
	}

	// L*y = Pb, unit diagonal
	for i := 1; i < n; i++ {
		li := f.lu.Row(i)
		sum := x[i]
		for j := 0; j < i; j++ {
			sum -= li[j] * x[j]
		}
		x[i] = sum
	}

	// U*x = y
	for i := n - 1; i >= 0; i-- {
		ui := f.lu.Row(i)
		sum := x[i]
		for j := i + 1; j < n; j++ {
			sum -= ui[j] * x[j]
		}
		x[i] = sum / ui[i]
	}
	return x, nil
}

// MeasureLU measures factorizations of a random n x n matrix. Factoring is
// destructive, so every cycle first copies the generated matrix into the work
// buffer; the copy is part of the timed cycle.
func (h *Harness) MeasureLU(n int, r *Random) (Measurement, error) {
	if n <= 0 {
		return Measurement{Kernel: KernelLU}, kernelErrorf(opLU, fmt.Errorf("n=%d: %w", n, ErrBadSize))
	}

	a, err := r.Matrix(n, n)
	if err != nil {
		return Measurement{Kernel: KernelLU}, kernelErrorf(opLU, err)
	}
	work := a.Clone()
	pivot := make([]int, n)

	body := func(cycles int) error {
		for c := 0; c < cycles; c++ {
			copy(work.data, a.data)
			if err := LUFactor(work, pivot); err != nil {
				return err
			}
		}
		return nil
	}

	return h.measure(KernelLU, LUFlops(n), body)
}

// MeasureLU is the stand-alone form of (*Harness).MeasureLU.
func MeasureLU(n int, minTime time.Duration, r *Random) (Measurement, error) {
	h, err := NewHarness(minTime)
	if err != nil {
		return Measurement{Kernel: KernelLU}, err
	}
	return h.MeasureLU(n, r)
}
