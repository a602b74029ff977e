package matrixio

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	lz4 "github.com/pierrec/lz4/v4"
)

// Open opens a matrix file for reading, decompressing transparently
// based on the file extension: .gz, .zst and .lz4 are recognized,
// anything else is read as-is.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &layered{r: gz, close: func() error { gz.Close(); return f.Close() }}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &layered{r: dec, close: func() error { dec.Close(); return f.Close() }}, nil
	case ".lz4":
		return &layered{r: lz4.NewReader(f), close: f.Close}, nil
	default:
		return f, nil
	}
}

// layered pairs a decompressing reader with the close of everything
// under it.
type layered struct {
	r     io.Reader
	close func() error
}

func (l *layered) Read(p []byte) (int, error) { return l.r.Read(p) }

func (l *layered) Close() error { return l.close() }
