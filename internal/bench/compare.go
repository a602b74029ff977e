package bench

import (
	"math"

	"github.com/qrv0/magpie/internal/csr"
)

// Tolerance returns the relative verification tolerance for the element
// type: parallel partial sums reassociate split rows, so comparison is
// tolerance-based, never bitwise, across different partitions.
func Tolerance[T csr.Float]() float64 {
	if valueSize[T]() == 4 {
		return 1e-5
	}
	return 1e-10
}

// Mismatch describes the worst element-wise deviation found by Compare.
type Mismatch struct {
	Index  int
	Got    float64
	Want   float64
	RelErr float64
}

// Compare checks got against want element-wise with the relative
// criterion |got-want| <= tol * (1 + |want|). It returns the worst
// offender and whether the whole vector passed.
func Compare[T csr.Float](got, want []T, tol float64) (Mismatch, bool) {
	worst := Mismatch{Index: -1}
	ok := true
	for i := range want {
		g, w := float64(got[i]), float64(want[i])
		rel := math.Abs(g-w) / (1 + math.Abs(w))
		if rel > worst.RelErr {
			worst = Mismatch{Index: i, Got: g, Want: w, RelErr: rel}
		}
		if rel > tol {
			ok = false
		}
	}
	return worst, ok
}
