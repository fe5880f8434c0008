//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Artifacts are loaded at process start and occasionally re-packed, so the
// pools mostly hold one encoder and one decoder.
var (
	zstdEncoders = sync.Pool{New: func() any { return mustZstdEncoder() }}
	zstdDecoders = sync.Pool{New: func() any { return mustZstdDecoder() }}
)

func mustZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderCRC(false), // the artifact header checksums the raw payload
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd encoder: %v", err))
	}

	return enc
}

func mustZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(MaxDecodedSize),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd decoder: %v", err))
	}

	return dec
}

// Compress encodes data as one zstd frame.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	enc, _ := zstdEncoders.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, make([]byte, 0, len(data)/2))
	zstdEncoders.Put(enc)

	return out, nil
}

// Decompress decodes a zstd frame. Frames larger than MaxDecodedSize are
// rejected by the decoder.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoders.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	zstdDecoders.Put(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out, nil
}
