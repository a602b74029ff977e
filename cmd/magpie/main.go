package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/qrv0/magpie/internal/matrixio"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "init":
		cmdInit()
	case "list":
		cmdList()
	case "pull":
		cmdPull()
	case "inspect":
		cmdInspect()
	case "bench":
		cmdBench()
	case "verify":
		cmdVerify()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("magpie - merge-path SpMV benchmark harness")
	fmt.Println("usage: magpie <command> [args]")
	fmt.Println("  init                         initialize ~/.magpie")
	fmt.Println("  list                         list matrices in ~/.magpie/matrices")
	fmt.Println("  pull <url>                   download a matrix file to ~/.magpie/matrices")
	fmt.Println("  inspect <source>             show matrix stats and row-length histogram")
	fmt.Println("  bench   <source> [-threads P] [-i K] [-fp32] [-quiet] [-v]")
	fmt.Println("  verify  <source> [-fp32]     check the merge kernel against the serial reference")
	fmt.Println("")
	fmt.Println("matrix sources (one required for inspect/bench/verify):")
	fmt.Println("  -mtx FILE      Matrix Market file (.mtx, .mtx.gz, .mtx.zst, .mtx.lz4)")
	fmt.Println("  -grid2d W      2D lattice, W x W nodes, 4-point connectivity")
	fmt.Println("  -grid3d W      3D lattice, W^3 nodes, 6-point connectivity")
	fmt.Println("  -wheel S       wheel graph with S spokes (one fat hub row)")
	fmt.Println("  -dense C       dense rows of C columns, ~16M nonzeros total")
	fmt.Println("  -powerlaw N    N x N matrix with Zipf row lengths")
}

var (
	homeDir     = must(os.UserHomeDir())
	magpieHome  = filepath.Join(homeDir, ".magpie")
	matricesDir = filepath.Join(magpieHome, "matrices")
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func cmdInit() {
	if err := os.MkdirAll(matricesDir, 0o755); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Initialized:", magpieHome)
}

func cmdList() {
	entries, err := os.ReadDir(matricesDir)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isMatrixFile(e.Name()) {
			fmt.Println(e.Name())
		}
	}
}

func isMatrixFile(name string) bool {
	for _, ext := range []string{".mtx", ".mtx.gz", ".mtx.zst", ".mtx.lz4"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func cmdPull() {
	if len(os.Args) < 3 {
		fmt.Println("usage: magpie pull <url>")
		os.Exit(1)
	}
	url := os.Args[2]
	if err := os.MkdirAll(matricesDir, 0o755); err != nil {
		log.Fatal(err)
	}
	out := filepath.Join(matricesDir, filepath.Base(url))
	if err := matrixio.Fetch(url, out); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Downloaded:", out)
}
