package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Codec stores payloads as a single S2 block.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec returns the S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress encodes data in better mode; artifacts are written once and
// loaded many times, so the slower encoder is worth its ratio.
func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress checks the declared block length against MaxDecodedSize before
// allocating the output.
func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}
	if n > MaxDecodedSize {
		return nil, fmt.Errorf("s2: %w: %d bytes", ErrTooLarge, n)
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}

	return out, nil
}
