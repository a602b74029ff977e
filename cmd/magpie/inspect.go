package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/qrv0/magpie/internal/csr"
)

func cmdInspect() {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	src := addSourceFlags(fs)
	fs.Parse(os.Args[2:])

	a, name, err := loadSource[float64](src)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(name)
	csr.ComputeStats(a).Display(os.Stdout)
	csr.DisplayHistogram(os.Stdout, a)
}
