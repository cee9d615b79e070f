package scimark

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

// FFT on interleaved complex data: data[2k] is the real part and data[2k+1]
// the imaginary part of element k. All transforms work in place.
//
// Iterative radix-2 Cooley-Tukey: bit-reversal permutation, then log2(n)
// butterfly passes. Twiddles come from a trigonometric recurrence per pass,
// the direction only flips the sign of the twiddle angle.

const (
	fftForward = -1
	fftInverse = +1
)

// FFTFlops is the operation count of one measured cycle (forward plus inverse)
// on n complex elements: 2 * 5*n*log2(n).
func FFTFlops(n int) float64 {
	nd := float64(n)
	return 2 * 5 * nd * float64(log2(n))
}

// FFTTransform computes the forward transform of data in place.
func FFTTransform(data []float64) error {
	return fftTransformInternal(data, fftForward)
}

// FFTInverseTransform computes the inverse transform (sign flip plus 1/n scaling).
func FFTInverseTransform(data []float64) error {
	if err := fftTransformInternal(data, fftInverse); err != nil {
		return err
	}

	n := len(data) / 2
	norm := 1.0 / float64(n)
	for i := range data {
		data[i] *= norm
	}
	return nil
}

// FFTRoundTripError returns the RMS difference between data and
// inverse(forward(data)). data is left untouched.
func FFTRoundTripError(data []float64) (float64, error) {
	cp := make([]float64, len(data))
	copy(cp, data)

	if err := FFTTransform(cp); err != nil {
		return 0, err
	}
	if err := FFTInverseTransform(cp); err != nil {
		return 0, err
	}
	return rmsDiff(data, cp), nil
}

func rmsDiff(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var diff float64
	for i := range a {
		d := a[i] - b[i]
		diff += d * d
	}
	return math.Sqrt(diff / float64(len(a)))
}

// validateFFTLength checks that data holds 2^k complex values.
func validateFFTLength(data []float64) error {
	if len(data)%2 != 0 {
		return kernelErrorf(opFFT, fmt.Errorf("odd length %d: %w", len(data), ErrBadSize))
	}
	n := len(data) / 2
	if n == 0 || n&(n-1) != 0 {
		return kernelErrorf(opFFT, fmt.Errorf("n=%d: %w", n, ErrNotPowerOfTwo))
	}
	return nil
}

// log2 of a power of two.
func log2(n int) int {
	return bits.TrailingZeros(uint(n))
}

// FFTBitReverse applies the bit-reversal permutation to the complex elements.
// data must hold 2^k complex values.
func FFTBitReverse(data []float64) error {
	if err := validateFFTLength(data); err != nil {
		return err
	}
	fftBitReverse(data)
	return nil
}

func fftBitReverse(data []float64) {
	n := len(data) / 2
	nm1 := n - 1
	j := 0
	for i := 0; i < nm1; i++ {
		ii := i << 1
		jj := j << 1
		k := n >> 1

		if i < j {
			data[ii], data[jj] = data[jj], data[ii]
			data[ii+1], data[jj+1] = data[jj+1], data[ii+1]
		}

		for k <= j {
			j -= k
			k >>= 1
		}
		j += k
	}
}

func fftTransformInternal(data []float64, direction int) error {
	if err := validateFFTLength(data); err != nil {
		return err
	}

	n := len(data) / 2
	if n == 1 {
		return nil
	}
	logn := log2(n)

	fftBitReverse(data)

	for bit, dual := 0, 1; bit < logn; bit, dual = bit+1, dual*2 {
		wReal, wImag := 1.0, 0.0

		theta := 2.0 * float64(direction) * math.Pi / (2.0 * float64(dual))
		s := math.Sin(theta)
		t := math.Sin(theta / 2.0)
		s2 := 2.0 * t * t

		// a = 0: twiddle is 1.
		for b := 0; b < n; b += 2 * dual {
			i := 2 * b
			j := 2 * (b + dual)

			wdReal := data[j]
			wdImag := data[j+1]

			data[j] = data[i] - wdReal
			data[j+1] = data[i+1] - wdImag
			data[i] += wdReal
			data[i+1] += wdImag
		}

		for a := 1; a < dual; a++ {
			// w <- w * exp(i*theta), via w + s*(i*w) - s2*w
			tmpReal := wReal - s*wImag - s2*wReal
			tmpImag := wImag + s*wReal - s2*wImag
			wReal, wImag = tmpReal, tmpImag

			for b := 0; b < n; b += 2 * dual {
				i := 2 * (b + a)
				j := 2 * (b + a + dual)

				z1Real := data[j]
				z1Imag := data[j+1]

				wdReal := wReal*z1Real - wImag*z1Imag
				wdImag := wReal*z1Imag + wImag*z1Real

				data[j] = data[i] - wdReal
				data[j+1] = data[i+1] - wdImag
				data[i] += wdReal
				data[i+1] += wdImag
			}
		}
	}
	return nil
}

// MeasureFFT measures n-point forward+inverse transform pairs.
func (h *Harness) MeasureFFT(n int, r *Random) (Measurement, error) {
	if n < 2 {
		return Measurement{Kernel: KernelFFT}, kernelErrorf(opFFT, fmt.Errorf("n=%d: %w", n, ErrBadSize))
	}
	if n&(n-1) != 0 {
		return Measurement{Kernel: KernelFFT}, kernelErrorf(opFFT, fmt.Errorf("n=%d: %w", n, ErrNotPowerOfTwo))
	}

	// The pair returns the buffer to (nearly) its input, so it is reused
	// across cycles without copying.
	x := r.Vector(2 * n)
	orig := make([]float64, len(x))
	copy(orig, x)

	body := func(cycles int) error {
		for c := 0; c < cycles; c++ {
			if err := FFTTransform(x); err != nil {
				return err
			}
			if err := FFTInverseTransform(x); err != nil {
				return err
			}
		}
		return nil
	}

	m, err := h.measure(KernelFFT, FFTFlops(n), body)
	if err != nil {
		return m, err
	}
	m.Check = rmsDiff(orig, x)
	return m, nil
}

// MeasureFFT is the stand-alone form of (*Harness).MeasureFFT.
func MeasureFFT(n int, minTime time.Duration, r *Random) (Measurement, error) {
	h, err := NewHarness(minTime)
	if err != nil {
		return Measurement{Kernel: KernelFFT}, err
	}
	return h.MeasureFFT(n, r)
}
