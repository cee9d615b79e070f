package scimark

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix backed by one contiguous slice.
// Kernels index data directly; At/Set exist for tests and reference code.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense allocates a zeroed rows x cols matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, kernelErrorf(opDense, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom wraps data (len rows*cols, row-major) without copying.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, kernelErrorf(opDense, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	if len(data) != rows*cols {
		return nil, kernelErrorf(opDense, fmt.Errorf("len %d for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch))
	}
	return &Dense{rows: rows, cols: cols, data: data}, nil
}

func (m *Dense) Rows() int { return m.rows }

func (m *Dense) Cols() int { return m.cols }

// Data exposes the backing slice.
func (m *Dense) Data() []float64 { return m.data }

// Row returns row i as a subslice of the backing storage.
func (m *Dense) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

func (m *Dense) At(i, j int) float64 { return m.data[i*m.cols+j] }

func (m *Dense) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	out := &Dense{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// CopyFrom overwrites m with src; shapes must match.
func (m *Dense) CopyFrom(src *Dense) error {
	if m.rows != src.rows || m.cols != src.cols {
		return kernelErrorf(opDense, fmt.Errorf("%dx%d <- %dx%d: %w", m.rows, m.cols, src.rows, src.cols, ErrDimensionMismatch))
	}
	copy(m.data, src.data)
	return nil
}

// SwapRows exchanges rows i and k in place.
func (m *Dense) SwapRows(i, k int) {
	if i == k {
		return
	}
	ri, rk := m.Row(i), m.Row(k)
	for j := range ri {
		ri[j], rk[j] = rk[j], ri[j]
	}
}

// Mul returns m * b (i-k-j loop order).
func (m *Dense) Mul(b *Dense) (*Dense, error) {
	if m.cols != b.rows {
		return nil, kernelErrorf(opDense, fmt.Errorf("%dx%d * %dx%d: %w", m.rows, m.cols, b.rows, b.cols, ErrDimensionMismatch))
	}
	out, err := NewDense(m.rows, b.cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.rows; i++ {
		oi := out.Row(i)
		ai := m.Row(i)
		for k, aik := range ai {
			if aik == 0 {
				continue
			}
			bk := b.Row(k)
			for j, bkj := range bk {
				oi[j] += aik * bkj
			}
		}
	}
	return out, nil
}

// String renders the matrix one row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j, v := range m.Row(i) {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
