package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/qrv0/magpie/internal/bench"
	"github.com/qrv0/magpie/internal/csr"
	"github.com/qrv0/magpie/internal/mergepath"
	"github.com/qrv0/magpie/internal/spmv"
	"github.com/qrv0/magpie/internal/workerpool"
)

// verifyWorkerCounts covers P = 1, powers of two, a prime, and more
// workers than most test matrices have merge items.
var verifyWorkerCounts = []int{1, 2, 4, 8, 17, 64}

func cmdVerify() {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	src := addSourceFlags(fs)
	fp32 := fs.Bool("fp32", false, "float32 elements (default float64)")
	fs.Parse(os.Args[2:])

	if *fp32 {
		runVerify[float32](src)
	} else {
		runVerify[float64](src)
	}
}

func runVerify[T csr.Float](src *sourceFlags) {
	a, name, err := loadSource[T](src)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %d rows, %d cols, %d nonzeros\n", name, a.NumRows, a.NumCols, a.NumNonzeros())

	pool := workerpool.New(runtime.NumCPU())
	defer pool.Close()

	x := benchVector[T](a.NumCols, false)
	reference := make([]T, a.NumRows)
	spmv.Reference(a, x, reference)
	tol := bench.Tolerance[T]()

	okAll := true
	for _, workers := range verifyWorkerCounts {
		part := mergepath.Make(a.RowOffsets, workers, pool)
		y := make([]T, a.NumRows)
		spmv.Merge(a, part, pool, x, y)
		first := bench.Digest(y)
		spmv.Merge(a, part, pool, x, y)
		if second := bench.Digest(y); second != first {
			fmt.Printf("P=%-3d digest %016x: not idempotent (rerun gave %016x)\n", workers, first, second)
			okAll = false
			continue
		}
		worst, ok := bench.Compare(y, reference, tol)
		if !ok {
			fmt.Printf("P=%-3d digest %016x: FAIL at y[%d] = %g, want %g (rel err %g)\n",
				workers, first, worst.Index, worst.Got, worst.Want, worst.RelErr)
			okAll = false
			continue
		}
		fmt.Printf("P=%-3d digest %016x: ok (worst rel err %g)\n", workers, first, worst.RelErr)
	}

	if okAll {
		fmt.Println("verify: PASS")
		return
	}
	fmt.Fprintln(os.Stderr, "verify: FAILED")
	os.Exit(3)
}
