package scimark

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults. The seed and both size presets are fixed so that results are
// reproducible and comparable between machines.
const (
	DefaultSeed    int32 = 101010
	DefaultMinTime       = 2 * time.Second
	DefaultRepeat        = 1

	// Cache-resident preset.
	FFTSize      = 1024
	SORSize      = 100
	SparseSizeM  = 1000
	SparseSizeNZ = 5000
	LUSize       = 100

	// Out-of-cache preset.
	LargeFFTSize      = 1048576
	LargeSORSize      = 1000
	LargeSparseSizeM  = 100000
	LargeSparseSizeNZ = 1000000
	LargeLUSize       = 1000
)

// Sizes holds the per-kernel problem sizes.
type Sizes struct {
	FFT      int `yaml:"fft" json:"fft"`
	SOR      int `yaml:"sor" json:"sor"`
	SparseM  int `yaml:"sparse_m" json:"sparse_m"`
	SparseNZ int `yaml:"sparse_nz" json:"sparse_nz"`
	LU       int `yaml:"lu" json:"lu"`
}

// DefaultSizes returns the cache-resident preset.
func DefaultSizes() Sizes {
	return Sizes{FFT: FFTSize, SOR: SORSize, SparseM: SparseSizeM, SparseNZ: SparseSizeNZ, LU: LUSize}
}

// LargeSizes returns the preset for data that does not fit in cache.
func LargeSizes() Sizes {
	return Sizes{FFT: LargeFFTSize, SOR: LargeSORSize, SparseM: LargeSparseSizeM, SparseNZ: LargeSparseSizeNZ, LU: LargeLUSize}
}

// Config controls a suite run.
type Config struct {
	Seed    int32
	MinTime time.Duration // Minimum calibrated burst per kernel
	Large   bool          // Sizes holds the large preset
	Sizes   Sizes
	Repeat  int      // Measurements per kernel
	Kernels []string // Empty or "all" selects every kernel
}

// DefaultConfig returns the standard run: every kernel, small sizes, 2s each.
func DefaultConfig() Config {
	return Config{
		Seed:    DefaultSeed,
		MinTime: DefaultMinTime,
		Sizes:   DefaultSizes(),
		Repeat:  DefaultRepeat,
		Kernels: []string{KernelAll},
	}
}

// UseLarge switches to the large preset.
func (c *Config) UseLarge() {
	c.Large = true
	c.Sizes = LargeSizes()
}

// Validate reports configuration errors. It does not touch any kernel.
// Kernel names are resolved by the registry that runs them, not here.
func (c Config) Validate() error {
	if c.MinTime <= 0 {
		return kernelErrorf(opConfig, fmt.Errorf("min time %v: %w", c.MinTime, ErrInvalidMinTime))
	}
	if c.Repeat < 1 {
		return kernelErrorf(opConfig, fmt.Errorf("repeat %d: %w", c.Repeat, ErrBadSize))
	}

	s := c.Sizes
	var errs []error
	if s.FFT < 2 || s.FFT&(s.FFT-1) != 0 {
		errs = append(errs, fmt.Errorf("fft size %d: %w", s.FFT, ErrNotPowerOfTwo))
	}
	if s.SOR < 3 {
		errs = append(errs, fmt.Errorf("sor size %d: %w", s.SOR, ErrBadSize))
	}
	if s.SparseM <= 0 || s.SparseNZ < s.SparseM || int64(s.SparseNZ) > int64(s.SparseM)*int64(s.SparseM) {
		errs = append(errs, fmt.Errorf("sparse size %d/%d: %w", s.SparseM, s.SparseNZ, ErrBadSize))
	}
	if s.LU <= 0 {
		errs = append(errs, fmt.Errorf("lu size %d: %w", s.LU, ErrBadSize))
	}
	if len(errs) > 0 {
		return kernelErrorf(opConfig, errors.Join(errs...))
	}
	return nil
}

// fileConfig mirrors Config with a float seconds field for the min time, the
// unit used on the command line.
type fileConfig struct {
	Seed           *int32   `yaml:"seed"`
	MinTimeSeconds *float64 `yaml:"min_time_seconds"`
	Large          *bool    `yaml:"large"`
	Sizes          *Sizes   `yaml:"sizes"`
	Repeat         *int     `yaml:"repeat"`
	Kernels        []string `yaml:"kernels"`
}

// LoadConfig overlays the YAML file at path onto DefaultConfig. Fields absent
// from the file keep their defaults; "large: true" selects the large preset
// before explicit sizes are applied.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, kernelErrorf(opLoadConf, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, kernelErrorf(opLoadConf, fmt.Errorf("%s: %w", path, err))
	}

	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.MinTimeSeconds != nil {
		cfg.MinTime = SecondsToDuration(*fc.MinTimeSeconds)
	}
	if fc.Large != nil && *fc.Large {
		cfg.UseLarge()
	}
	if fc.Sizes != nil {
		cfg.Sizes = mergeSizes(cfg.Sizes, *fc.Sizes)
	}
	if fc.Repeat != nil {
		cfg.Repeat = *fc.Repeat
	}
	if len(fc.Kernels) > 0 {
		cfg.Kernels = fc.Kernels
	}
	return cfg, nil
}

// mergeSizes takes every non-zero field of override.
func mergeSizes(base, override Sizes) Sizes {
	if override.FFT != 0 {
		base.FFT = override.FFT
	}
	if override.SOR != 0 {
		base.SOR = override.SOR
	}
	if override.SparseM != 0 {
		base.SparseM = override.SparseM
	}
	if override.SparseNZ != 0 {
		base.SparseNZ = override.SparseNZ
	}
	if override.LU != 0 {
		base.LU = override.LU
	}
	return base
}

// SecondsToDuration converts a float number of seconds, rounding to the
// nearest nanosecond. NaN and infinities map to 0, which Validate rejects.
func SecondsToDuration(s float64) time.Duration {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	ns := math.Round(s * float64(time.Second))
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	if ns <= math.MinInt64 {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}
