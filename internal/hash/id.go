package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of a byte payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates float64 and int values into a running xxHash64.
// Values are fed as little-endian bit patterns so the result does not depend
// on the host byte order.
type Digest struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewDigest returns an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Float feeds the IEEE-754 bits of v.
func (d *Digest) Float(v float64) {
	binary.LittleEndian.PutUint64(d.buf[:], math.Float64bits(v))
	_, _ = d.d.Write(d.buf[:])
}

// Floats feeds every value of vs in order.
func (d *Digest) Floats(vs []float64) {
	for _, v := range vs {
		d.Float(v)
	}
}

// Int feeds v as a 64-bit two's complement value.
func (d *Digest) Int(v int) {
	binary.LittleEndian.PutUint64(d.buf[:], uint64(int64(v))) //nolint:gosec // bit pattern only
	_, _ = d.d.Write(d.buf[:])
}

// Sum64 returns the current hash.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
