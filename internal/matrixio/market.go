// Package matrixio loads Matrix Market files into CSR form, with
// transparent decompression for .gz, .zst and .lz4 files and an HTTP
// fetch helper for pulling matrices into the local cache.
package matrixio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/qrv0/magpie/internal/csr"
)

const maxLineBytes = 1 << 20

// ReadMarket parses a Matrix Market coordinate file at path. Supported
// banners: object "matrix", format "coordinate", field real/integer/
// pattern, symmetry general/symmetric. Symmetric files are expanded to
// full storage, pattern entries get value 1, indices are converted from
// 1-based to 0-based, and entries are sorted to ascending (row, column)
// before conversion.
func ReadMarket[T csr.Float](path string) (*csr.Matrix[T], error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	m, err := ParseMarket[T](r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseMarket reads Matrix Market coordinate data from r.
func ParseMarket[T csr.Float](r io.Reader) (*csr.Matrix[T], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("matrixio: empty input")
	}
	pattern, symmetric, err := parseBanner(sc.Text())
	if err != nil {
		return nil, err
	}

	rows, cols, nnz, err := parseSizeLine(sc)
	if err != nil {
		return nil, err
	}

	coo := csr.NewCoo[T](rows, cols)
	coo.Reserve(nnz)
	seen := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '%' {
			continue
		}
		fields := strings.Fields(line)
		want := 3
		if pattern {
			want = 2
		}
		if len(fields) < want {
			return nil, fmt.Errorf("matrixio: short entry line %q", line)
		}
		i, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("matrixio: bad row index %q", fields[0])
		}
		j, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("matrixio: bad column index %q", fields[1])
		}
		v := 1.0
		if !pattern {
			v, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("matrixio: bad value %q", fields[2])
			}
		}
		if i < 1 || i > int64(rows) || j < 1 || j > int64(cols) {
			return nil, fmt.Errorf("matrixio: entry (%d, %d) outside %dx%d", i, j, rows, cols)
		}
		coo.Append(int32(i-1), int32(j-1), T(v))
		if symmetric && i != j {
			coo.Append(int32(j-1), int32(i-1), T(v))
		}
		seen++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if seen != nnz {
		return nil, fmt.Errorf("matrixio: header promised %d entries, found %d", nnz, seen)
	}

	sort.Slice(coo.Entries, func(a, b int) bool {
		ea, eb := coo.Entries[a], coo.Entries[b]
		if ea.Row != eb.Row {
			return ea.Row < eb.Row
		}
		return ea.Col < eb.Col
	})
	m := coo.ToCSR()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseBanner(line string) (pattern, symmetric bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) != 5 || fields[0] != "%%matrixmarket" {
		return false, false, fmt.Errorf("matrixio: not a Matrix Market banner: %q", line)
	}
	if fields[1] != "matrix" || fields[2] != "coordinate" {
		return false, false, fmt.Errorf("matrixio: unsupported object/format %q %q", fields[1], fields[2])
	}
	switch fields[3] {
	case "real", "integer":
	case "pattern":
		pattern = true
	default:
		return false, false, fmt.Errorf("matrixio: unsupported field type %q", fields[3])
	}
	switch fields[4] {
	case "general":
	case "symmetric":
		symmetric = true
	default:
		return false, false, fmt.Errorf("matrixio: unsupported symmetry %q", fields[4])
	}
	return pattern, symmetric, nil
}

func parseSizeLine(sc *bufio.Scanner) (rows, cols int32, nnz int, err error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '%' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return 0, 0, 0, fmt.Errorf("matrixio: bad size line %q", line)
		}
		r, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return 0, 0, 0, err
		}
		c, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return 0, 0, 0, err
		}
		n, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return 0, 0, 0, err
		}
		return int32(r), int32(c), int(n), nil
	}
	if err := sc.Err(); err != nil {
		return 0, 0, 0, err
	}
	return 0, 0, 0, fmt.Errorf("matrixio: missing size line")
}
