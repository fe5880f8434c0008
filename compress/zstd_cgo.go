//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// libzstd level matching the ratio of zstd.SpeedBetterCompression.
const gozstdLevel = 6

// Compress encodes data with libzstd.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

// Decompress decodes data with libzstd. gozstd has no output limit, so the
// size check happens after decoding.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(out) > MaxDecodedSize {
		return nil, fmt.Errorf("zstd: %w: %d bytes", ErrTooLarge, len(out))
	}

	return out, nil
}
