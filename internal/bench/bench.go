// Package bench provides the timing, comparison and reporting pieces of
// the benchmark driver: warm-cache timing loops, relative-tolerance
// verification against the serial reference, xxh3 digests of result
// vectors, and the perf summary line.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/qrv0/magpie/internal/csr"
)

// AutoIterations picks a timing iteration count aiming to stream about
// 16 billion nonzeros through the kernel in total.
func AutoIterations(nnz int32) int {
	if nnz < 1 {
		return 100
	}
	iters := int((16 << 30) / int64(nnz))
	return min(200000, max(100, iters))
}

// Time runs fn iterations times and returns the average milliseconds
// per run.
func Time(iterations int, fn func()) float64 {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)
	return float64(elapsed.Nanoseconds()) / 1e6 / float64(iterations)
}

// Perf is one kernel's timing summary.
type Perf struct {
	Name      string
	SetupMS   float64
	AvgMS     float64
	GFLOPS    float64
	EffGBps   float64
	ValueBits int
}

// Measure fills in derived throughput numbers for a timed kernel run:
// 2 flops per nonzero, and the effective bytes model of one matrix
// value, one column index and one gathered x element per nonzero plus
// one offset and one output per row.
func Measure[T csr.Float](a *csr.Matrix[T], name string, setupMS, avgMS float64) Perf {
	valueBytes := valueSize[T]()
	nnz := float64(a.NumNonzeros())
	totalBytes := nnz*float64(valueBytes*2+4) + float64(a.NumRows)*float64(4+valueBytes)
	return Perf{
		Name:      name,
		SetupMS:   setupMS,
		AvgMS:     avgMS,
		GFLOPS:    2 * nnz / avgMS / 1e6,
		EffGBps:   totalBytes / avgMS / 1e6,
		ValueBits: valueBytes * 8,
	}
}

// Display prints the perf line: prose by default, bare CSV fields in
// quiet mode for machine consumption.
func (p Perf) Display(w io.Writer, quiet bool) {
	if quiet {
		fmt.Fprintf(w, "%s, %.5f, %.5f, %.6f, %.3f\n", p.Name, p.SetupMS, p.AvgMS, p.GFLOPS, p.EffGBps)
		return
	}
	fmt.Fprintf(w, "%s fp%d: %.4f setup ms, %.4f avg ms, %.5f gflops, %.3f effective GB/s\n",
		p.Name, p.ValueBits, p.SetupMS, p.AvgMS, p.GFLOPS, p.EffGBps)
}

func valueSize[T csr.Float]() int {
	var z T
	switch any(z).(type) {
	case float32:
		return 4
	default:
		return 8
	}
}
