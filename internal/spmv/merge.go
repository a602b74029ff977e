package spmv

import (
	"github.com/qrv0/magpie/internal/csr"
	"github.com/qrv0/magpie/internal/mergepath"
	"github.com/qrv0/magpie/internal/workerpool"
)

// carryOut records the partial sum a slot accumulated for the row that
// straddles its ending boundary. Each worker keeps the running total in
// locals and stores its slot exactly once, before the join barrier.
type carryOut[T csr.Float] struct {
	row int32
	val T
}

// Merge computes y = A*x over the merge-path partition. Each slot
// consumes exactly one diagonal segment of the merge path: it finishes
// every row it fully owns, then accumulates the partial tail of the row
// crossing its end boundary as a carry-out. A serial pass in ascending
// slot order stitches the carries back in after the barrier, so rows
// split across slots sum deterministically for a fixed partition.
//
// The partition must have been built from a.RowOffsets. y is fully
// overwritten; no row is written by more than one worker during the
// parallel phase.
func Merge[T csr.Float](a *csr.Matrix[T], part *mergepath.Partition, pool *workerpool.Pool, x, y []T) {
	checkDims(a, x, y)
	carries := make([]carryOut[T], part.Workers)

	segment := func(tid int) {
		coord := part.Start[tid]
		end := part.End[tid]

		// Rows fully owned by this slot.
		for ; coord.Row < end.Row; coord.Row++ {
			var sum T
			for rowEnd := a.RowOffsets[coord.Row+1]; coord.Nonzero < rowEnd; coord.Nonzero++ {
				sum += a.Values[coord.Nonzero] * x[a.ColumnIndices[coord.Nonzero]]
			}
			y[coord.Row] = sum
		}

		// Partial tail of the boundary-straddling row.
		var sum T
		for ; coord.Nonzero < end.Nonzero; coord.Nonzero++ {
			sum += a.Values[coord.Nonzero] * x[a.ColumnIndices[coord.Nonzero]]
		}
		carries[tid] = carryOut[T]{row: end.Row, val: sum}
	}

	if pool == nil || part.Workers == 1 {
		for tid := 0; tid < part.Workers; tid++ {
			segment(tid)
		}
	} else {
		pool.RunN(part.Workers, segment)
	}

	// Carry-out fix-up. The final slot ends at row m and is skipped by
	// the guard, as are trailing empty slots when workers exceed the
	// merge path length.
	for _, c := range carries {
		if c.row < a.NumRows {
			y[c.row] += c.val
		}
	}
}
