package scimark

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every message carries the "scimark:" prefix; callers match
// them with errors.Is, context is added with kernelErrorf.
var (
	// ErrBadSize is returned when a kernel size parameter is out of range.
	ErrBadSize = errors.New("scimark: invalid size parameter")

	// ErrNotPowerOfTwo is returned by the FFT for lengths that are not 2^k.
	ErrNotPowerOfTwo = errors.New("scimark: data length is not a power of 2")

	// ErrBadShape is returned when a dense buffer is requested with rows<=0 or cols<=0.
	ErrBadShape = errors.New("scimark: invalid shape")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("scimark: dimension mismatch")

	// ErrMalformedSparse indicates a compressed-row matrix violating its invariants.
	ErrMalformedSparse = errors.New("scimark: malformed compressed-row matrix")

	// ErrSingular is the numerical degeneracy condition: LU met an exactly zero pivot.
	ErrSingular = errors.New("scimark: singular matrix (zero pivot)")

	// ErrInvalidMinTime is a configuration error: the minimum time must be positive.
	ErrInvalidMinTime = errors.New("scimark: minimum time must be > 0")

	// ErrCalibration is raised when the doubling search exhausts its cycle limit
	// without reaching the minimum time. It is a configuration error.
	ErrCalibration = errors.New("scimark: calibration did not reach minimum time")

	// ErrUnknownKernel is a configuration error for an unrecognized benchmark name.
	ErrUnknownKernel = errors.New("scimark: benchmark not recognized")

	// ErrUnknownFormat is a configuration error for an unsupported report format.
	ErrUnknownFormat = errors.New("scimark: unknown report format")
)

// Operation tags used with kernelErrorf.
const (
	opFFT       = "FFT"
	opSOR       = "SOR"
	opSparse    = "SparseMatMult"
	opLU        = "LU"
	opHarness   = "Harness"
	opDense     = "Dense"
	opConfig    = "Config"
	opReport    = "Report"
	opSuite     = "Suite"
	opRegistry  = "Registry"
	opLoadConf  = "LoadConfig"
	opTextfile  = "WriteTextfile"
	opCalibrate = "Calibrate"
)

// kernelErrorf wraps err as "<op>: <err>", keeping it matchable with errors.Is.
// Only call it with a non-nil err.
func kernelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
