package scimark

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/cpu"
	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// HostInfo describes the machine the suite ran on.
type HostInfo struct {
	OS        string   `json:"os" yaml:"os"`
	Arch      string   `json:"arch" yaml:"arch"`
	NumCPU    int      `json:"num_cpu" yaml:"num_cpu"`
	GoVersion string   `json:"go_version" yaml:"go_version"`
	Features  []string `json:"cpu_features,omitempty" yaml:"cpu_features,omitempty"`
}

// DetectHost fills HostInfo from the runtime and golang.org/x/sys/cpu.
func DetectHost() HostInfo {
	return HostInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
		Features:  cpuFeatures(),
	}
}

// cpuFeatures lists the floating-point relevant ISA extensions.
func cpuFeatures() []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
		add(cpu.X86.HasAVX512DQ, "avx512dq")
	case "arm64":
		add(cpu.ARM64.HasFP, "fp")
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasSVE2, "sve2")
	}
	return out
}

// RunResult is one measurement in report form.
type RunResult struct {
	Mflops         float64 `json:"mflops" yaml:"mflops"`
	Cycles         int     `json:"cycles" yaml:"cycles"`
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Flops          float64 `json:"flops" yaml:"flops"`
	Attempts       int     `json:"attempts" yaml:"attempts"`
	Check          float64 `json:"check,omitempty" yaml:"check,omitempty"`
}

// KernelResult aggregates the runs of one kernel.
type KernelResult struct {
	Kernel string        `json:"kernel" yaml:"kernel"`
	Title  string        `json:"-" yaml:"-"`
	Params string        `json:"params,omitempty" yaml:"params,omitempty"`
	Mflops float64       `json:"mflops" yaml:"mflops"` // Mean over runs
	Runs   []Measurement `json:"-" yaml:"-"`

	Details []RunResult `json:"runs" yaml:"runs"`
	Stats   Statistics  `json:"-" yaml:"-"`
}

func (k *KernelResult) finish() {
	k.Stats = CalculateStatistics(k.Runs)
	k.Mflops = k.Stats.MeanMflops
	k.Details = make([]RunResult, len(k.Runs))
	for i, m := range k.Runs {
		k.Details[i] = RunResult{
			Mflops:         m.Mflops,
			Cycles:         m.Cycles,
			ElapsedSeconds: m.Elapsed.Seconds(),
			Flops:          m.Flops,
			Attempts:       m.Attempts,
			Check:          m.Check,
		}
	}
}

// Report is the outcome of a suite run.
type Report struct {
	RunID          string         `json:"run_id" yaml:"run_id"`
	StartedAt      time.Time      `json:"started_at" yaml:"started_at"`
	Host           HostInfo       `json:"host" yaml:"host"`
	Seed           int32          `json:"seed" yaml:"seed"`
	MinTimeSeconds float64        `json:"min_time_seconds" yaml:"min_time_seconds"`
	Large          bool           `json:"large" yaml:"large"`
	Sizes          Sizes          `json:"sizes" yaml:"sizes"`
	Results        []KernelResult `json:"results" yaml:"results"`
	Composite      *float64       `json:"composite_mflops,omitempty" yaml:"composite_mflops,omitempty"`
}

func newReport(cfg Config, started time.Time) *Report {
	return &Report{
		RunID:          uuid.NewString(),
		StartedAt:      started.UTC(),
		Host:           DetectHost(),
		Seed:           cfg.Seed,
		MinTimeSeconds: cfg.MinTime.Seconds(),
		Large:          cfg.Large,
		Sizes:          cfg.Sizes,
	}
}

// Result returns the result for kernel name.
func (r *Report) Result(name string) (KernelResult, bool) {
	for _, kr := range r.Results {
		if kr.Kernel == name {
			return kr, true
		}
	}
	return KernelResult{}, false
}

// ValidateFormat reports ErrUnknownFormat for anything but text, json, yaml.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return kernelErrorf(opReport, fmt.Errorf("%q (options are [%s, %s, %s]): %w",
			format, FormatText, FormatJSON, FormatYAML, ErrUnknownFormat))
	}
}

// Write renders the report in format.
func (r *Report) Write(w io.Writer, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return kernelErrorf(opReport, err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return kernelErrorf(opReport, err)
		}
		if err := enc.Close(); err != nil {
			return kernelErrorf(opReport, err)
		}
		return nil
	default:
		return r.writeText(w)
	}
}

// Banner is printed above text reports.
const Banner = `**                                                              **
** SciMark2 Numeric Benchmark, see http://math.nist.gov/scimark **
** for details. (Results can be submitted to pozo@nist.gov)     **
**                                                              **
`

// writeText renders the classic SciMark layout, one line per measurement.
func (r *Report) writeText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(Banner)

	for _, kr := range r.Results {
		for _, m := range kr.Runs {
			line := fmt.Sprintf("%-16sMflops: %8.2f    %s", kr.Title, m.Mflops, kr.Params)
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteByte('\n')
		}
		if len(kr.Runs) > 1 {
			fmt.Fprintf(&sb, "\n%-16sAverage time per run: %f s (%d runs, mean %.2f Mflops)\n\n",
				kr.Title, kr.Stats.Mean.Seconds(), kr.Stats.Runs, kr.Stats.MeanMflops)
		}
	}

	if r.Composite != nil {
		fmt.Fprintf(&sb, "Composite Score:        %8.2f\n", *r.Composite)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return kernelErrorf(opReport, err)
	}
	return nil
}
