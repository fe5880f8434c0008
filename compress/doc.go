// Package compress provides the payload codecs used by cropfit model artifacts.
//
// A model artifact is dominated by the training matrix: a few thousand rows of
// seven float64 features, already standard-scaled. Such payloads compress well
// because scaled features cluster around a small range of exponents, so the
// artifact writer lets the caller pick a codec:
//
//   - None: payload stored verbatim
//   - Zstd: best ratio, preferred for shipped artifacts
//   - S2: fast, good ratio
//   - LZ4: fastest decompression, block format
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// The zstd codec is pure Go (klauspost/compress) by default. Building with
// both cgo and the "gozstd" tag switches it to the libzstd binding
// (valyala/gozstd).
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Encoders and
// decoders that benefit from reuse are kept in sync.Pool instances internally.
package compress
