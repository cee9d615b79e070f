package scimark

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()

	m.Observe(Measurement{Kernel: KernelLU, Cycles: 32, Elapsed: 2 * time.Second, Mflops: 812.5, Attempts: 6})
	m.Observe(Measurement{Kernel: KernelLU, Cycles: 64, Elapsed: 3 * time.Second, Mflops: 900, Attempts: 7})

	assert.Equal(t, 900.0, testutil.ToFloat64(m.mflops.WithLabelValues(KernelLU)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.elapsed.WithLabelValues(KernelLU)))
	assert.Equal(t, 64.0, testutil.ToFloat64(m.cycles.WithLabelValues(KernelLU)))
	assert.Equal(t, 13.0, testutil.ToFloat64(m.attempts.WithLabelValues(KernelLU)))

	m.SetComposite(123.4)
	assert.Equal(t, 123.4, testutil.ToFloat64(m.composite))
}

func TestMetricsPrivateRegistry(t *testing.T) {
	// Two instances must not collide on registration.
	a := NewMetrics()
	b := NewMetrics()
	a.Observe(Measurement{Kernel: KernelFFT, Mflops: 1})

	assert.Equal(t, 1, testutil.CollectAndCount(a.mflops))
	assert.Equal(t, 0, testutil.CollectAndCount(b.mflops))
}

func TestMetricsGather(t *testing.T) {
	m := NewMetrics()
	m.Observe(Measurement{Kernel: KernelSOR, Mflops: 42})

	expected := `
# HELP scimark_kernel_mflops Measured throughput of the last run of each kernel in Mflops.
# TYPE scimark_kernel_mflops gauge
scimark_kernel_mflops{kernel="sor"} 42
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "scimark_kernel_mflops"))
}

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.Observe(Measurement{Kernel: KernelFFT, Mflops: 321, Cycles: 8, Elapsed: time.Second, Attempts: 4})
	m.SetComposite(321)

	path := filepath.Join(t.TempDir(), "scimark.prom")
	require.NoError(t, m.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `scimark_kernel_mflops{kernel="fft"} 321`)
	assert.Contains(t, out, `scimark_calibration_attempts_total{kernel="fft"} 4`)
	assert.Contains(t, out, "scimark_composite_mflops 321")

	err = m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
