package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qrv0/magpie/internal/csr"
	"github.com/qrv0/magpie/internal/matrixio"
)

// sourceFlags selects where the benchmark matrix comes from: a Matrix
// Market file or one of the generators. Exactly one source is used;
// the first non-empty option wins in the order below, matching the
// original harness.
type sourceFlags struct {
	mtx      string
	grid2d   int
	grid3d   int
	wheel    int
	dense    int
	powerlaw int
	zipf     float64
	seed     uint64
}

func addSourceFlags(fs *flag.FlagSet) *sourceFlags {
	s := &sourceFlags{}
	fs.StringVar(&s.mtx, "mtx", "", "Matrix Market file, optionally .gz/.zst/.lz4 compressed")
	fs.IntVar(&s.grid2d, "grid2d", 0, "width of a 2D lattice")
	fs.IntVar(&s.grid3d, "grid3d", 0, "width of a 3D lattice")
	fs.IntVar(&s.wheel, "wheel", 0, "spokes of a wheel graph")
	fs.IntVar(&s.dense, "dense", 0, "columns of a synthetic dense matrix")
	fs.IntVar(&s.powerlaw, "powerlaw", 0, "dimension of a Zipf-row-length matrix")
	fs.Float64Var(&s.zipf, "zipf", 2.0, "Zipf exponent for -powerlaw")
	fs.Uint64Var(&s.seed, "seed", 1234, "random seed for -powerlaw")
	return s
}

// loadSource materializes the selected matrix. Matrix Market paths that
// do not exist locally are retried against ~/.magpie/matrices so pulled
// files can be named bare.
func loadSource[T csr.Float](s *sourceFlags) (*csr.Matrix[T], string, error) {
	switch {
	case s.mtx != "":
		path := resolveMatrixPath(s.mtx)
		m, err := matrixio.ReadMarket[T](path)
		if err != nil {
			return nil, "", err
		}
		return m, filepath.Base(path), nil
	case s.grid2d > 0:
		return csr.Grid2D[T](int32(s.grid2d), false), fmt.Sprintf("grid2d_%d", s.grid2d), nil
	case s.grid3d > 0:
		return csr.Grid3D[T](int32(s.grid3d), false), fmt.Sprintf("grid3d_%d", s.grid3d), nil
	case s.wheel > 0:
		return csr.Wheel[T](int32(s.wheel)), fmt.Sprintf("wheel_%d", s.wheel), nil
	case s.dense > 0:
		rows := (1 << 24) / s.dense
		return csr.Dense[T](int32(rows), int32(s.dense)), fmt.Sprintf("dense_%d_x_%d", rows, s.dense), nil
	case s.powerlaw > 0:
		return csr.PowerLaw[T](int32(s.powerlaw), s.zipf, s.seed), fmt.Sprintf("powerlaw_%d", s.powerlaw), nil
	}
	return nil, "", fmt.Errorf("no matrix source given (one of -mtx, -grid2d, -grid3d, -wheel, -dense, -powerlaw)")
}

func resolveMatrixPath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if filepath.Base(path) == path {
		cached := filepath.Join(matricesDir, path)
		if _, err := os.Stat(cached); err == nil {
			return cached
		}
	}
	return path
}

// benchVector fills x the way the original harness does: a descending
// ramp n-c+2 unless ones are requested.
func benchVector[T csr.Float](n int32, ones bool) []T {
	x := make([]T, n)
	for c := int32(0); c < n; c++ {
		if ones {
			x[c] = 1
		} else {
			x[c] = T(n-c) + 2
		}
	}
	return x
}

// trivial reports datasets too small to say anything useful about.
func trivial[T csr.Float](a *csr.Matrix[T]) bool {
	return a.NumRows <= 1 || a.NumCols <= 1 || a.NumNonzeros() <= 1
}
