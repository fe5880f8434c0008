package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/cropfit/compress"
	"github.com/arloliu/cropfit/format"
	"github.com/arloliu/cropfit/internal/hash"
	"github.com/arloliu/cropfit/internal/options"
	"github.com/arloliu/cropfit/internal/pool"
)

const (
	// Version is the artifact format version written by Encode.
	Version uint8 = 1

	// maxPayload bounds payload lengths read from a header.
	maxPayload = compress.MaxDecodedSize
)

var (
	// ErrBadMagic is returned when the input is not a cropfit artifact.
	ErrBadMagic = errors.New("not a cropfit artifact")
	// ErrUnsupportedVersion is returned for artifacts of an unknown version.
	ErrUnsupportedVersion = errors.New("unsupported artifact version")
	// ErrChecksum is returned when the payload does not match its checksum.
	ErrChecksum = errors.New("artifact checksum mismatch")
	// ErrCorrupt is returned for inconsistent header fields.
	ErrCorrupt = errors.New("corrupt artifact")
)

// Info describes an encoded artifact.
type Info struct {
	Version     uint8
	Compression format.CompressionType
	StoredSize  int    // payload bytes on disk
	RawSize     int    // msgpack payload bytes
	Checksum    uint64 // xxHash64 of the raw payload
}

// Ratio returns StoredSize / RawSize.
func (i Info) Ratio() float64 {
	return compress.Stats{
		Algorithm:      i.Compression,
		OriginalSize:   int64(i.RawSize),
		CompressedSize: int64(i.StoredSize),
	}.Ratio()
}

// EncodeConfig holds the settings for Encode.
type EncodeConfig struct {
	Compression format.CompressionType
}

// EncodeOption is a functional option for EncodeConfig.
type EncodeOption = options.Option[*EncodeConfig]

// WithCompression selects the payload codec. The default is zstd.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *EncodeConfig) error {
		if !c.Valid() {
			return fmt.Errorf("invalid compression type: %d", uint8(c))
		}
		cfg.Compression = c

		return nil
	})
}

// Encode validates m and writes it to w as an artifact.
func Encode(w io.Writer, m *Model, opts ...EncodeOption) (Info, error) {
	cfg := EncodeConfig{Compression: format.CompressionZstd}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Info{}, err
	}
	if err := m.Validate(); err != nil {
		return Info{}, fmt.Errorf("invalid model: %w", err)
	}

	buf := pool.GetArtifactBuffer()
	defer pool.PutArtifactBuffer(buf)

	enc := msgpack.NewEncoder(buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(m); err != nil {
		return Info{}, fmt.Errorf("encode payload: %w", err)
	}
	raw := buf.Bytes()

	stored, _, err := compress.CompressWithStats(cfg.Compression, raw)
	if err != nil {
		return Info{}, err
	}

	storedLen, err := safecast.Conv[uint32](len(stored))
	if err != nil {
		return Info{}, fmt.Errorf("payload too large: %w", err)
	}
	rawLen, err := safecast.Conv[uint32](len(raw))
	if err != nil {
		return Info{}, fmt.Errorf("payload too large: %w", err)
	}

	h := Header{
		Version:     Version,
		Compression: cfg.Compression,
		StoredSize:  storedLen,
		RawSize:     rawLen,
		Checksum:    hash.Sum(raw),
	}

	if _, err := w.Write(h.Bytes()); err != nil {
		return Info{}, fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return Info{}, fmt.Errorf("write payload: %w", err)
	}

	return h.Info()
}

// Decode reads an artifact from r. The model is not validated; callers
// building runtime collaborators get validation errors from those builders.
func Decode(r io.Reader) (*Model, Info, error) {
	info, err := readHeader(r)
	if err != nil {
		return nil, Info{}, err
	}

	// The header length is untrusted, so the buffer grows with the bytes
	// actually present.
	stored, err := io.ReadAll(io.LimitReader(r, int64(info.StoredSize)))
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: read payload: %w", ErrCorrupt, err)
	}
	if len(stored) != info.StoredSize {
		return nil, Info{}, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(stored), info.StoredSize)
	}

	codec, err := compress.GetCodec(info.Compression)
	if err != nil {
		return nil, Info{}, err
	}
	raw, err := codec.Decompress(stored)
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if len(raw) != info.RawSize {
		return nil, Info{}, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(raw), info.RawSize)
	}
	if sum := hash.Sum(raw); sum != info.Checksum {
		return nil, Info{}, fmt.Errorf("%w: got %016x, want %016x", ErrChecksum, sum, info.Checksum)
	}

	var m Model
	if err := msgpack.NewDecoder(bytes.NewReader(raw)).Decode(&m); err != nil {
		return nil, Info{}, fmt.Errorf("%w: decode payload: %w", ErrCorrupt, err)
	}

	return &m, info, nil
}

// ReadInfo reads only the header of an artifact.
func ReadInfo(r io.Reader) (Info, error) {
	return readHeader(r)
}

func readHeader(r io.Reader) (Info, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Info{}, fmt.Errorf("%w: short header", ErrBadMagic)
		}

		return Info{}, fmt.Errorf("read header: %w", err)
	}

	var h Header
	if err := h.Parse(buf[:]); err != nil {
		return Info{}, err
	}

	return h.Info()
}
