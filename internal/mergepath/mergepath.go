// Package mergepath carves the CSR merge path into equal diagonal
// segments so that every worker receives the same number of merge items
// regardless of how nonzeros are distributed over rows.
//
// The decomposition views SpMV as merging two sorted lists: list A is
// the row end-offsets RowOffsets[1..m], list B is the counting sequence
// 0..nnz-1 (never materialized; an integer stands in for it). Diagonal
// d of the merge grid is the set of coordinates with Row+Nonzero = d,
// and the merge path crosses each diagonal in exactly one point.
package mergepath

import "github.com/qrv0/magpie/internal/workerpool"

// Coordinate is a point on the merge path: Row rows completed and
// Nonzero nonzeros consumed. Passed by value everywhere.
type Coordinate struct {
	Row     int32
	Nonzero int32
}

// Search returns the coordinate where the given diagonal intersects the
// merge path. rowEnds is RowOffsets[1:]. On a tie between the two lists
// the search advances along the row list, so zero-length rows are fully
// absorbed before the nonzeros that follow them.
//
// Cost is O(log min(diagonal, numRows)).
func Search(diagonal int32, rowEnds []int32, numRows, numNonzeros int32) Coordinate {
	lo := max(diagonal-numNonzeros, 0)
	hi := min(diagonal, numRows)

	for lo < hi {
		pivot := (lo + hi) >> 1
		if rowEnds[pivot] <= diagonal-pivot-1 {
			lo = pivot + 1 // contract range up A (down B)
		} else {
			hi = pivot // contract range down A (up B)
		}
	}
	return Coordinate{Row: lo, Nonzero: diagonal - lo}
}

// Partition holds the per-slot merge path segments for one matrix.
// It depends only on the row offsets, so one Partition serves both
// element widths, and it is reused across repeated SpMV calls on the
// same matrix.
//
// Invariants: Start[0] = (0,0), End[Workers-1] = (m,nnz), and
// End[t] = Start[t+1] for every interior boundary.
type Partition struct {
	Workers int
	Quantum int32
	Start   []Coordinate
	End     []Coordinate
}

// Make splits the merge path of the matrix described by rowOffsets into
// workers equal diagonal segments. The per-slot searches are mutually
// independent and run on the pool when one is supplied; pass nil to
// search serially. Preconditions (workers >= 1, valid offsets) are
// programmer errors.
func Make(rowOffsets []int32, workers int, pool *workerpool.Pool) *Partition {
	if workers < 1 {
		panic("mergepath: workers must be >= 1")
	}
	if len(rowOffsets) < 2 || rowOffsets[0] != 0 {
		panic("mergepath: malformed row offsets")
	}

	numRows := int32(len(rowOffsets) - 1)
	numNonzeros := rowOffsets[numRows]
	rowEnds := rowOffsets[1:]
	mergeItems := numRows + numNonzeros
	quantum := (mergeItems + int32(workers) - 1) / int32(workers)

	p := &Partition{
		Workers: workers,
		Quantum: quantum,
		Start:   make([]Coordinate, workers),
		End:     make([]Coordinate, workers),
	}
	split := func(tid int) {
		startDiag := int32(min(int64(quantum)*int64(tid), int64(mergeItems)))
		endDiag := int32(min(int64(startDiag)+int64(quantum), int64(mergeItems)))
		p.Start[tid] = Search(startDiag, rowEnds, numRows, numNonzeros)
		p.End[tid] = Search(endDiag, rowEnds, numRows, numNonzeros)
	}
	if pool != nil {
		pool.RunN(workers, split)
	} else {
		for tid := 0; tid < workers; tid++ {
			split(tid)
		}
	}
	return p
}
