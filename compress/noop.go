package compress

// NoOpCodec stores payloads verbatim, which keeps artifacts readable by
// external msgpack tools.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec returns the pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data itself.
func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself.
func (NoOpCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) > MaxDecodedSize {
		return nil, ErrTooLarge
	}

	return data, nil
}
