package scimark

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// CompressedRow is a sparse matrix in compressed-row form. Row i stores its
// nonzeros at positions RowStart[i] .. RowStart[i+1]-1 of Values and ColIndex.
// Matrices built by NewCompressedRow or RandomCompressedRow are immutable by
// convention.
type CompressedRow struct {
	Rows, Cols int
	Values     []float64
	ColIndex   []int
	RowStart   []int
}

// NewCompressedRow validates and wraps the three parallel arrays (no copy).
//
// Invariants:
//   - len(RowStart) == rows+1, RowStart[0] == 0, RowStart[rows] == len(Values)
//   - RowStart is non-decreasing
//   - len(ColIndex) == len(Values), every column index in [0, cols)
func NewCompressedRow(rows, cols int, values []float64, colIndex, rowStart []int) (*CompressedRow, error) {
	if rows <= 0 || cols <= 0 {
		return nil, kernelErrorf(opSparse, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	if len(rowStart) != rows+1 {
		return nil, kernelErrorf(opSparse, fmt.Errorf("len(rowStart)=%d, want %d: %w", len(rowStart), rows+1, ErrMalformedSparse))
	}
	if len(colIndex) != len(values) {
		return nil, kernelErrorf(opSparse, fmt.Errorf("len(colIndex)=%d, len(values)=%d: %w", len(colIndex), len(values), ErrMalformedSparse))
	}
	if rowStart[0] != 0 || rowStart[rows] != len(values) {
		return nil, kernelErrorf(opSparse, fmt.Errorf("rowStart spans [%d,%d), want [0,%d): %w", rowStart[0], rowStart[rows], len(values), ErrMalformedSparse))
	}
	for i := 0; i < rows; i++ {
		if rowStart[i+1] < rowStart[i] {
			return nil, kernelErrorf(opSparse, fmt.Errorf("rowStart decreases at row %d: %w", i, ErrMalformedSparse))
		}
	}
	for k, c := range colIndex {
		if c < 0 || c >= cols {
			return nil, kernelErrorf(opSparse, fmt.Errorf("colIndex[%d]=%d outside [0,%d): %w", k, c, cols, ErrMalformedSparse))
		}
	}

	return &CompressedRow{Rows: rows, Cols: cols, Values: values, ColIndex: colIndex, RowStart: rowStart}, nil
}

// NNZ returns the number of stored entries.
func (a *CompressedRow) NNZ() int { return len(a.Values) }

// MulVec computes y = A*x. The inner loop is unrolled by two with a single
// accumulator, so the summation order equals the plain loop.
func (a *CompressedRow) MulVec(y, x []float64) error {
	if len(x) != a.Cols || len(y) != a.Rows {
		return kernelErrorf(opSparse, fmt.Errorf("A %dx%d, len(x)=%d, len(y)=%d: %w", a.Rows, a.Cols, len(x), len(y), ErrDimensionMismatch))
	}
	a.mulVec(y, x)
	return nil
}

func (a *CompressedRow) mulVec(y, x []float64) {
	val, col, row := a.Values, a.ColIndex, a.RowStart
	for r := 0; r < a.Rows; r++ {
		sum := 0.0
		rowR := row[r]
		rowRp1 := row[r+1]

		i := rowR
		for ; i+1 < rowRp1; i += 2 {
			sum += x[col[i]] * val[i]
			sum += x[col[i+1]] * val[i+1]
		}
		if i < rowRp1 {
			sum += x[col[i]] * val[i]
		}

		y[r] = sum
	}
}

// ToDense expands the matrix; duplicate entries are summed.
func (a *CompressedRow) ToDense() (*Dense, error) {
	d, err := NewDense(a.Rows, a.Cols)
	if err != nil {
		return nil, err
	}
	for r := 0; r < a.Rows; r++ {
		dr := d.Row(r)
		for k := a.RowStart[r]; k < a.RowStart[r+1]; k++ {
			dr[a.ColIndex[k]] += a.Values[k]
		}
	}
	return d, nil
}

// RandomCompressedRow builds an m x m matrix with exactly nz entries from r.
//
// nz is spread over the rows, the first nz%m rows taking one extra entry.
// Each row holds its diagonal, then its band neighbours (i-1, i+1) while the
// row budget allows, then distinct columns drawn uniformly from r. Columns are
// sorted within a row. Off-diagonal values are drawn from r row by row after
// the columns; the diagonal is 1 plus the row's absolute off-diagonal sum,
// which makes the matrix strictly diagonally dominant. r must be an unranged
// stream (values in [0,1)).
func RandomCompressedRow(m, nz int, r *Random) (*CompressedRow, error) {
	if m <= 0 || nz < m || nz/m > m || (nz/m == m && nz%m != 0) {
		return nil, kernelErrorf(opSparse, fmt.Errorf("m=%d, nz=%d (need m <= nz <= m*m): %w", m, nz, ErrBadSize))
	}

	perRow := nz / m
	extra := nz % m

	values := make([]float64, nz)
	colIndex := make([]int, nz)
	rowStart := make([]int, m+1)

	used := make([]bool, m)
	for i := 0; i < m; i++ {
		count := perRow
		if i < extra {
			count++
		}
		start := rowStart[i]
		rowStart[i+1] = start + count
		cols := colIndex[start : start+count]

		cols[0] = i
		filled := 1
		used[i] = true
		for _, c := range [2]int{i - 1, i + 1} {
			if filled < count && c >= 0 && c < m {
				cols[filled] = c
				used[c] = true
				filled++
			}
		}
		for filled < count {
			c := int(r.Float64() * float64(m))
			if used[c] {
				continue
			}
			cols[filled] = c
			used[c] = true
			filled++
		}
		for _, c := range cols {
			used[c] = false
		}

		slices.Sort(cols)

		vals := values[start : start+count]
		offSum := 0.0
		diag := -1
		for k, c := range cols {
			if c == i {
				diag = k
				continue
			}
			vals[k] = r.Float64()
			offSum += math.Abs(vals[k])
		}
		vals[diag] = 1.0 + offSum
	}

	return &CompressedRow{Rows: m, Cols: m, Values: values, ColIndex: colIndex, RowStart: rowStart}, nil
}

// SparseMatMultFlops is the operation count of one product with nz entries.
func SparseMatMultFlops(nz int) float64 {
	return 2.0 * float64(nz)
}

// MeasureSparseMatMult measures y = A*x on a random m x m matrix with nz
// entries. x is drawn before the matrix; both are reused across cycles.
func (h *Harness) MeasureSparseMatMult(m, nz int, r *Random) (Measurement, error) {
	if m <= 0 {
		return Measurement{Kernel: KernelSparse}, kernelErrorf(opSparse, fmt.Errorf("m=%d: %w", m, ErrBadSize))
	}

	x := r.Vector(m)
	y := make([]float64, m)
	a, err := RandomCompressedRow(m, nz, r)
	if err != nil {
		return Measurement{Kernel: KernelSparse}, err
	}

	body := func(cycles int) error {
		for c := 0; c < cycles; c++ {
			a.mulVec(y, x)
		}
		return nil
	}

	return h.measure(KernelSparse, SparseMatMultFlops(a.NNZ()), body)
}

// MeasureSparseMatMult is the stand-alone form of (*Harness).MeasureSparseMatMult.
func MeasureSparseMatMult(m, nz int, minTime time.Duration, r *Random) (Measurement, error) {
	h, err := NewHarness(minTime)
	if err != nil {
		return Measurement{Kernel: KernelSparse}, err
	}
	return h.MeasureSparseMatMult(m, nz, r)
}
