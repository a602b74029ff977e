package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBenchVector(t *testing.T) {
	x := benchVector[float64](4, false)
	// Original harness ramp: n - c + 2.
	want := []float64{6, 5, 4, 3}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("x = %v, want %v", x, want)
		}
	}
	ones := benchVector[float32](3, true)
	for _, v := range ones {
		if v != 1 {
			t.Fatalf("ones fill produced %v", ones)
		}
	}
}

func TestTrivial(t *testing.T) {
	if a, _, err := loadSource[float64](&sourceFlags{wheel: 5}); err != nil || trivial(a) {
		t.Fatalf("wheel_5 should be non-trivial (err %v)", err)
	}
	one, _, _ := loadSource[float64](&sourceFlags{powerlaw: 1, zipf: 2, seed: 1})
	if !trivial(one) {
		t.Fatal("1x1 matrix should be trivial")
	}
}

func TestLoadSourceRequiresOne(t *testing.T) {
	if _, _, err := loadSource[float64](&sourceFlags{}); err == nil {
		t.Fatal("expected an error with no source selected")
	}
}

func TestLoadSourceNames(t *testing.T) {
	cases := []struct {
		src  sourceFlags
		name string
	}{
		{sourceFlags{grid2d: 8}, "grid2d_8"},
		{sourceFlags{grid3d: 4}, "grid3d_4"},
		{sourceFlags{wheel: 16}, "wheel_16"},
		{sourceFlags{powerlaw: 32, zipf: 2, seed: 1}, "powerlaw_32"},
	}
	for _, c := range cases {
		a, name, err := loadSource[float64](&c.src)
		if err != nil {
			t.Fatalf("%+v: %v", c.src, err)
		}
		if name != c.name {
			t.Fatalf("name %q, want %q", name, c.name)
		}
		if err := a.Validate(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestResolveMatrixPath(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "a.mtx")
	if err := os.WriteFile(local, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := resolveMatrixPath(local); got != local {
		t.Fatalf("existing path rewritten to %q", got)
	}
	// A bare name that exists nowhere passes through untouched so the
	// loader reports the original spelling.
	if got := resolveMatrixPath("definitely-missing.mtx"); got != "definitely-missing.mtx" {
		t.Fatalf("missing bare name rewritten to %q", got)
	}
}

func TestIsMatrixFile(t *testing.T) {
	yes := []string{"a.mtx", "a.mtx.gz", "a.mtx.zst", "a.mtx.lz4"}
	no := []string{"a.txt", "a.gz", "mtx", "a.mtx.bak"}
	for _, n := range yes {
		if !isMatrixFile(n) {
			t.Fatalf("%s should be recognized", n)
		}
	}
	for _, n := range no {
		if isMatrixFile(n) {
			t.Fatalf("%s should not be recognized", n)
		}
	}
}
