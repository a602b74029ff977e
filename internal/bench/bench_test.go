package bench

import (
	"strings"
	"testing"

	"github.com/qrv0/magpie/internal/csr"
)

func TestAutoIterations(t *testing.T) {
	if got := AutoIterations(0); got != 100 {
		t.Fatalf("nnz=0: %d, want 100", got)
	}
	if got := AutoIterations(100); got != 200000 {
		t.Fatalf("tiny matrix should hit the 200000 cap, got %d", got)
	}
	if got := AutoIterations(2_000_000_000); got != 100 {
		t.Fatalf("huge matrix should hit the 100 floor, got %d", got)
	}
	// 16Gi / 1Mi nonzeros = 16384 iterations.
	if got := AutoIterations(1 << 20); got != 16384 {
		t.Fatalf("AutoIterations(1Mi) = %d, want 16384", got)
	}
}

func TestTolerance(t *testing.T) {
	if Tolerance[float32]() != 1e-5 {
		t.Fatal("fp32 tolerance")
	}
	if Tolerance[float64]() != 1e-10 {
		t.Fatal("fp64 tolerance")
	}
}

func TestCompare(t *testing.T) {
	want := []float64{1, 2, 3}
	if _, ok := Compare([]float64{1, 2, 3}, want, 1e-10); !ok {
		t.Fatal("identical vectors must pass")
	}
	got := []float64{1, 2.5, 3}
	worst, ok := Compare(got, want, 1e-10)
	if ok {
		t.Fatal("mismatch must fail")
	}
	if worst.Index != 1 || worst.Got != 2.5 || worst.Want != 2 {
		t.Fatalf("worst = %+v", worst)
	}
	// Relative criterion: small absolute error on a large value passes.
	if _, ok := Compare([]float64{1e12 + 1}, []float64{1e12}, 1e-10); !ok {
		t.Fatal("relative comparison should absorb small error on large values")
	}
}

func TestDigest(t *testing.T) {
	a := []float64{1, 2, 3}
	if Digest(a) != Digest([]float64{1, 2, 3}) {
		t.Fatal("digest not stable")
	}
	if Digest(a) == Digest([]float64{1, 2, 4}) {
		t.Fatal("digest missed a changed value")
	}
	// Same numbers, different width: different bit patterns, so the
	// digests are unrelated.
	if Digest(a) == Digest([]float32{1, 2, 3}) {
		t.Fatal("fp32 and fp64 digests should not collide on this input")
	}
	// +0 and -0 differ in bits and must differ in digest.
	negZero := []float64{0}
	negZero[0] = -negZero[0]
	if Digest([]float64{0}) == Digest(negZero) {
		t.Fatal("digest must see sign of zero")
	}
}

func TestMeasure(t *testing.T) {
	a := &csr.Matrix[float64]{
		NumRows:       2,
		NumCols:       2,
		RowOffsets:    []int32{0, 1, 2},
		ColumnIndices: []int32{0, 1},
		Values:        []float64{1, 1},
	}
	p := Measure(a, "merge", 0.5, 1.0)
	// 2 nonzeros * 2 flops / 1ms = 4e-6 gflops.
	if p.GFLOPS < 3.9e-6 || p.GFLOPS > 4.1e-6 {
		t.Fatalf("GFLOPS = %g", p.GFLOPS)
	}
	if p.ValueBits != 64 {
		t.Fatalf("ValueBits = %d", p.ValueBits)
	}

	var sb strings.Builder
	p.Display(&sb, false)
	if !strings.Contains(sb.String(), "merge fp64") {
		t.Fatalf("prose display: %q", sb.String())
	}
	sb.Reset()
	p.Display(&sb, true)
	if !strings.HasPrefix(sb.String(), "merge, ") {
		t.Fatalf("quiet display: %q", sb.String())
	}
}

func TestTime(t *testing.T) {
	calls := 0
	ms := Time(5, func() { calls++ })
	if calls != 5 {
		t.Fatalf("fn called %d times, want 5", calls)
	}
	if ms < 0 {
		t.Fatalf("negative elapsed %g", ms)
	}
}
