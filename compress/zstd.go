package compress

// ZstdCodec stores payloads as a Zstandard frame. It gives the best ratio of
// the built-in codecs and is the default for artifacts shipped to servers.
//
// The implementation is selected at build time, see zstd_pure.go and
// zstd_cgo.go.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns the zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
