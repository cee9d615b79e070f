package scimark

import (
	"fmt"
	"time"
)

const (
	// SOROmega is the relaxation factor.
	SOROmega = 1.25

	// SORSweepsPerCycle is the number of full sweeps in one measured cycle.
	SORSweepsPerCycle = 100
)

// SORFlops is the operation count of one measured cycle on an n x n grid.
// It counts (n-1)*(n-1) cells at 6 flops per update, not the (n-2)*(n-2)
// interior cells actually written; SciMark rates are reported on that count.
func SORFlops(n int) float64 {
	nd := float64(n)
	return (nd - 1) * (nd - 1) * SORSweepsPerCycle * 6.0
}

// SORExecute performs sweeps Gauss-Seidel over-relaxation sweeps on g in
// place. Boundary rows and columns are read but never written:
//
//	g[i][j] = omega/4 * (g[i-1][j] + g[i+1][j] + g[i][j-1] + g[i][j+1]) + (1-omega) * g[i][j]
func SORExecute(g *Dense, omega float64, sweeps int) {
	omegaOverFour := omega * 0.25
	oneMinusOmega := 1.0 - omega

	mm1 := g.rows - 1
	nm1 := g.cols - 1

	for p := 0; p < sweeps; p++ {
		for i := 1; i < mm1; i++ {
			gi := g.Row(i)
			gim1 := g.Row(i - 1)
			gip1 := g.Row(i + 1)
			for j := 1; j < nm1; j++ {
				gi[j] = omegaOverFour*(gim1[j]+gip1[j]+gi[j-1]+gi[j+1]) + oneMinusOmega*gi[j]
			}
		}
	}
}

// MeasureSOR measures SOR cycles on a random n x n grid. The grid is reused
// across cycles; the relaxation keeps it bounded.
func (h *Harness) MeasureSOR(n int, r *Random) (Measurement, error) {
	if n < 3 {
		return Measurement{Kernel: KernelSOR}, kernelErrorf(opSOR, fmt.Errorf("n=%d: %w", n, ErrBadSize))
	}

	g, err := r.Matrix(n, n)
	if err != nil {
		return Measurement{Kernel: KernelSOR}, kernelErrorf(opSOR, err)
	}

	body := func(cycles int) error {
		SORExecute(g, SOROmega, cycles*SORSweepsPerCycle)
		return nil
	}

	return h.measure(KernelSOR, SORFlops(n), body)
}

// MeasureSOR is the stand-alone form of (*Harness).MeasureSOR.
func MeasureSOR(n int, minTime time.Duration, r *Random) (Measurement, error) {
	h, err := NewHarness(minTime)
	if err != nil {
		return Measurement{Kernel: KernelSOR}, err
	}
	return h.MeasureSOR(n, r)
}
