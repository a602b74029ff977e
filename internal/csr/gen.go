package csr

import (
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Synthetic matrix generators for the benchmark driver. Shapes follow
// the usual stencil and graph constructions: lattices connect each node
// to its axis neighbors, the wheel puts every spoke on one hub row, and
// the power-law generator draws row lengths from a Zipf distribution to
// stress load balancing.

// Grid2D builds the adjacency matrix of a width x width 2D lattice.
// Each node is connected to its 4 axis neighbors; selfLoop adds the
// diagonal, giving the classic 5-point stencil.
func Grid2D[T Float](width int32, selfLoop bool) *Matrix[T] {
	n := width * width
	c := NewCoo[T](n, n)
	node := func(x, y int32) int32 { return y*width + x }
	for y := int32(0); y < width; y++ {
		for x := int32(0); x < width; x++ {
			me := node(x, y)
			if y > 0 {
				c.Append(me, node(x, y-1), 1)
			}
			if x > 0 {
				c.Append(me, node(x-1, y), 1)
			}
			if selfLoop {
				c.Append(me, me, 1)
			}
			if x < width-1 {
				c.Append(me, node(x+1, y), 1)
			}
			if y < width-1 {
				c.Append(me, node(x, y+1), 1)
			}
		}
	}
	return c.ToCSR()
}

// Grid3D builds the adjacency matrix of a width^3 3D lattice with 6
// axis neighbors per interior node; selfLoop adds the diagonal for the
// 7-point stencil.
func Grid3D[T Float](width int32, selfLoop bool) *Matrix[T] {
	n := width * width * width
	c := NewCoo[T](n, n)
	node := func(x, y, z int32) int32 { return (z*width+y)*width + x }
	for z := int32(0); z < width; z++ {
		for y := int32(0); y < width; y++ {
			for x := int32(0); x < width; x++ {
				me := node(x, y, z)
				if z > 0 {
					c.Append(me, node(x, y, z-1), 1)
				}
				if y > 0 {
					c.Append(me, node(x, y-1, z), 1)
				}
				if x > 0 {
					c.Append(me, node(x-1, y, z), 1)
				}
				if selfLoop {
					c.Append(me, me, 1)
				}
				if x < width-1 {
					c.Append(me, node(x+1, y, z), 1)
				}
				if y < width-1 {
					c.Append(me, node(x, y+1, z), 1)
				}
				if z < width-1 {
					c.Append(me, node(x, y, z+1), 1)
				}
			}
		}
	}
	return c.ToCSR()
}

// Wheel builds a wheel graph: the hub row 0 holds an edge to every
// spoke, and each spoke holds one edge back to the hub. The hub row is
// the worst case for row-parallel SpMV.
func Wheel[T Float](spokes int32) *Matrix[T] {
	n := spokes + 1
	c := NewCoo[T](n, n)
	c.Reserve(int(2 * spokes))
	for s := int32(1); s <= spokes; s++ {
		c.Append(0, s, 1)
	}
	for s := int32(1); s <= spokes; s++ {
		c.Append(s, 0, 1)
	}
	return c.ToCSR()
}

// Dense builds a fully populated rows x cols matrix of ones stored in
// CSR form, used to measure peak streaming throughput.
func Dense[T Float](rows, cols int32) *Matrix[T] {
	c := NewCoo[T](rows, cols)
	c.Reserve(int(rows) * int(cols))
	for i := int32(0); i < rows; i++ {
		for j := int32(0); j < cols; j++ {
			c.Append(i, j, 1)
		}
	}
	return c.ToCSR()
}

// PowerLaw builds an n x n matrix whose row lengths follow a Zipf
// distribution with the given exponent (> 1) and whose values are
// uniform in [-1, 1]. Column picks may repeat; repeats stay as distinct
// structural nonzeros, which SpMV handles like any other entry.
func PowerLaw[T Float](n int32, exponent float64, seed uint64) *Matrix[T] {
	if n < 1 || exponent <= 1 {
		panic("csr: power-law generator needs n >= 1 and exponent > 1")
	}
	src := rand.NewSource(seed)
	rng := rand.New(src)
	zipf := rand.NewZipf(rng, exponent, 1, uint64(n))
	val := distuv.Uniform{Min: -1, Max: 1, Src: src}

	c := NewCoo[T](n, n)
	row := make([]int32, 0, 64)
	for i := int32(0); i < n; i++ {
		length := int(zipf.Uint64())
		row = row[:0]
		for k := 0; k < length; k++ {
			row = append(row, int32(rng.Intn(int(n))))
		}
		sort.Slice(row, func(a, b int) bool { return row[a] < row[b] })
		for _, j := range row {
			c.Append(i, j, T(val.Rand()))
		}
	}
	return c.ToCSR()
}
