package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

const lz4SizePrefix = 4

var errLZ4Truncated = errors.New("lz4: payload truncated")

var lz4Compressors = sync.Pool{New: func() any { return new(lz4.Compressor) }}

// LZ4Codec stores payloads as one LZ4 block.
//
// The block format does not record the decompressed size, so the block is
// prefixed with the raw length as a little-endian uint32.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec returns the LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress encodes data as a size-prefixed LZ4 block.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("lz4: %w: %d bytes", ErrTooLarge, len(data))
	}

	out := make([]byte, lz4SizePrefix+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(out, uint32(len(data))) //nolint:gosec // bounded by MaxDecodedSize

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	n, err := lc.CompressBlock(data, out[lz4SizePrefix:])
	lz4Compressors.Put(lc)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	return out[:lz4SizePrefix+n], nil
}

// Decompress decodes a block written by Compress.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, errLZ4Truncated
	}

	size := int(binary.LittleEndian.Uint32(data))
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("lz4: %w: %d bytes", ErrTooLarge, size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[lz4SizePrefix:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if n != size {
		return nil, errLZ4Truncated
	}

	return out, nil
}
