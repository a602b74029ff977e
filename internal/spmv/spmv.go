// Package spmv implements the sparse matrix times dense vector kernels:
// a serial reference, the merge-path load-balanced parallel kernel, and
// a row-split parallel baseline for comparison.
//
// All kernels compute y = A*x, fully overwriting y. The matrix and x
// are read-only for the duration of a call. Malformed inputs are
// documented precondition violations, not runtime errors.
package spmv

import (
	"github.com/qrv0/magpie/internal/csr"
	"github.com/qrv0/magpie/internal/workerpool"
)

// Reference computes y = A*x with a straight serial row loop. It is the
// correctness oracle for the parallel kernels.
func Reference[T csr.Float](a *csr.Matrix[T], x, y []T) {
	checkDims(a, x, y)
	for i := int32(0); i < a.NumRows; i++ {
		var sum T
		for k := a.RowOffsets[i]; k < a.RowOffsets[i+1]; k++ {
			sum += a.Values[k] * x[a.ColumnIndices[k]]
		}
		y[i] = sum
	}
}

// RowSplit computes y = A*x by handing each worker a contiguous chunk
// of rows. Simple and fast on uniform matrices, but throughput
// collapses when row lengths are skewed; it is the baseline the merge
// kernel is benchmarked against.
func RowSplit[T csr.Float](a *csr.Matrix[T], pool *workerpool.Pool, x, y []T) {
	checkDims(a, x, y)
	body := func(start, end int) {
		for i := start; i < end; i++ {
			var sum T
			for k := a.RowOffsets[i]; k < a.RowOffsets[i+1]; k++ {
				sum += a.Values[k] * x[a.ColumnIndices[k]]
			}
			y[i] = sum
		}
	}
	if pool == nil {
		body(0, int(a.NumRows))
		return
	}
	pool.ParallelFor(int(a.NumRows), body)
}

func checkDims[T csr.Float](a *csr.Matrix[T], x, y []T) {
	if len(x) < int(a.NumCols) {
		panic("spmv: x shorter than matrix columns")
	}
	if len(y) < int(a.NumRows) {
		panic("spmv: y shorter than matrix rows")
	}
}
