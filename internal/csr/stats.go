package csr

import (
	"fmt"
	"io"
	"math/bits"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the row-length distribution of a matrix.
type Stats struct {
	NumRows    int32
	NumCols    int32
	NumNonzero int32
	RowMean    float64
	RowStdDev  float64
	RowMax     int32
}

// ComputeStats gathers row-length statistics for display by inspect and
// the non-quiet bench output.
func ComputeStats[T Float](a *Matrix[T]) Stats {
	lengths := make([]float64, a.NumRows)
	var rowMax int32
	for i := int32(0); i < a.NumRows; i++ {
		l := a.RowLen(i)
		lengths[i] = float64(l)
		if l > rowMax {
			rowMax = l
		}
	}
	mean, std := stat.MeanStdDev(lengths, nil)
	if a.NumRows == 1 {
		std = 0
	}
	return Stats{
		NumRows:    a.NumRows,
		NumCols:    a.NumCols,
		NumNonzero: a.NumNonzeros(),
		RowMean:    mean,
		RowStdDev:  std,
		RowMax:     rowMax,
	}
}

func (s Stats) Display(w io.Writer) {
	fmt.Fprintf(w, "%d rows, %d cols, %d nonzeros\n", s.NumRows, s.NumCols, s.NumNonzero)
	fmt.Fprintf(w, "row length: mean %.2f, stddev %.2f, max %d\n", s.RowMean, s.RowStdDev, s.RowMax)
}

// DisplayHistogram prints a log2-bucketed histogram of row lengths.
func DisplayHistogram[T Float](w io.Writer, a *Matrix[T]) {
	buckets := make([]int, 34)
	top := 0
	for i := int32(0); i < a.NumRows; i++ {
		b := bucketOf(a.RowLen(i))
		buckets[b]++
		if b > top {
			top = b
		}
	}
	fmt.Fprintln(w, "row length histogram:")
	for b := 0; b <= top; b++ {
		lo, hi := bucketBounds(b)
		fmt.Fprintf(w, "  [%8d, %8d): %d\n", lo, hi, buckets[b])
	}
}

// bucketOf maps a row length to its histogram bucket: 0 for empty rows,
// then one bucket per power of two.
func bucketOf(length int32) int {
	if length == 0 {
		return 0
	}
	return bits.Len32(uint32(length))
}

func bucketBounds(b int) (lo, hi int64) {
	if b == 0 {
		return 0, 1
	}
	return 1 << (b - 1), 1 << b
}
