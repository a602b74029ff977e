package bench

import (
	"encoding/binary"
	"math"

	xxh3 "github.com/zeebo/xxh3"

	"github.com/qrv0/magpie/internal/csr"
)

// Digest fingerprints a result vector by hashing its raw bits. Two runs
// of the same kernel on the same matrix and partition produce identical
// digests; this is how the idempotence property is checked.
func Digest[T csr.Float](y []T) uint64 {
	switch v := any(y).(type) {
	case []float32:
		buf := make([]byte, 4*len(v))
		for i, f := range v {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
		}
		return xxh3.Hash(buf)
	case []float64:
		buf := make([]byte, 8*len(v))
		for i, f := range v {
			binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
		}
		return xxh3.Hash(buf)
	}
	return 0
}
