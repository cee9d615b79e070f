package scimark

import (
	"fmt"
	"strings"
)

// Kernel names accepted on the command line, in suite order.
const (
	KernelAll        = "all"
	KernelFFT        = "fft"
	KernelSOR        = "sor"
	KernelMonteCarlo = "monte"
	KernelSparse     = "sparse"
	KernelLU         = "lu"
)

// KernelSpec describes one registered kernel.
type KernelSpec struct {
	Name  string // Command-line name
	Title string // Report label, e.g. "Sparse matmult"

	// Measure runs the calibrated measurement for the configured sizes.
	Measure func(h *Harness, sizes Sizes, r *Random) (Measurement, error)

	// Describe renders the size parameters for the report line.
	Describe func(sizes Sizes) string
}

// Registry maps kernel names to their specs and keeps the suite order.
type Registry struct {
	specs map[string]KernelSpec
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]KernelSpec)}
}

// Register adds spec; later registrations under the same name replace the
// spec but keep its position.
func (r *Registry) Register(spec KernelSpec) {
	if _, ok := r.specs[spec.Name]; !ok {
		r.order = append(r.order, spec.Name)
	}
	r.specs[spec.Name] = spec
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (KernelSpec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns the registered names in suite order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve turns user-supplied names into specs in suite order. "all" (or an
// empty list) selects every kernel; duplicates collapse.
func (r *Registry) Resolve(names []string) ([]KernelSpec, error) {
	want := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == KernelAll {
			for _, n := range r.order {
				want[n] = true
			}
			continue
		}
		if _, ok := r.specs[name]; !ok {
			return nil, kernelErrorf(opRegistry, fmt.Errorf("%q (options are [%s, %s]): %w",
				raw, KernelAll, strings.Join(r.order, ", "), ErrUnknownKernel))
		}
		want[name] = true
	}
	if len(names) == 0 {
		for _, n := range r.order {
			want[n] = true
		}
	}

	specs := make([]KernelSpec, 0, len(want))
	for _, n := range r.order {
		if want[n] {
			specs = append(specs, r.specs[n])
		}
	}
	return specs, nil
}

// IsComplete reports whether specs covers every registered kernel.
func (r *Registry) IsComplete(specs []KernelSpec) bool {
	return len(specs) == len(r.order)
}

// defaultRegistry holds the five standard kernels.
var defaultRegistry = newStandardRegistry()

// DefaultRegistry returns the registry of the five standard kernels.
func DefaultRegistry() *Registry { return defaultRegistry }

// ParseKernels resolves names against the standard kernels.
func ParseKernels(names []string) ([]KernelSpec, error) {
	return defaultRegistry.Resolve(names)
}

func newStandardRegistry() *Registry {
	r := NewRegistry()
	r.Register(KernelSpec{
		Name:  KernelFFT,
		Title: "FFT",
		Measure: func(h *Harness, s Sizes, rnd *Random) (Measurement, error) {
			return h.MeasureFFT(s.FFT, rnd)
		},
		Describe: func(s Sizes) string { return fmt.Sprintf("(N=%d)", s.FFT) },
	})
	r.Register(KernelSpec{
		Name:  KernelSOR,
		Title: "SOR",
		Measure: func(h *Harness, s Sizes, rnd *Random) (Measurement, error) {
			return h.MeasureSOR(s.SOR, rnd)
		},
		Describe: func(s Sizes) string { return fmt.Sprintf("(%d x %d)", s.SOR, s.SOR) },
	})
	r.Register(KernelSpec{
		Name:  KernelMonteCarlo,
		Title: "MonteCarlo:",
		Measure: func(h *Harness, _ Sizes, _ *Random) (Measurement, error) {
			return h.MeasureMonteCarlo()
		},
		Describe: func(Sizes) string { return "" },
	})
	r.Register(KernelSpec{
		Name:  KernelSparse,
		Title: "Sparse matmult",
		Measure: func(h *Harness, s Sizes, rnd *Random) (Measurement, error) {
			return h.MeasureSparseMatMult(s.SparseM, s.SparseNZ, rnd)
		},
		Describe: func(s Sizes) string { return fmt.Sprintf("(N=%d, nz=%d)", s.SparseM, s.SparseNZ) },
	})
	r.Register(KernelSpec{
		Name:  KernelLU,
		Title: "LU",
		Measure: func(h *Harness, s Sizes, rnd *Random) (Measurement, error) {
			return h.MeasureLU(s.LU, rnd)
		},
		Describe: func(s Sizes) string { return fmt.Sprintf("(M=%d, N=%d)", s.LU, s.LU) },
	})
	return r
}
