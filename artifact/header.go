package artifact

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"

	"github.com/arloliu/cropfit/format"
)

// HeaderSize is the fixed size of the artifact header in bytes.
const HeaderSize = 24

var magic = [4]byte{'C', 'F', 'I', 'T'}

// Header is the fixed-size section at the start of an artifact. All
// multi-byte fields are little-endian.
type Header struct {
	// Version is the format version. byte offset 4
	Version uint8
	// Compression is the payload codec. byte offset 5
	Compression format.CompressionType
	// StoredSize is the payload length on disk. byte offset 8-11
	StoredSize uint32
	// RawSize is the payload length after decompression. byte offset 12-15
	RawSize uint32
	// Checksum is the xxHash64 of the raw payload. byte offset 16-23
	Checksum uint64
}

// Parse parses the header from data, which must be exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", ErrCorrupt, len(data), HeaderSize)
	}
	if !bytes.Equal(data[0:4], magic[:]) {
		return ErrBadMagic
	}

	h.Version = data[4]
	h.Compression = format.CompressionType(data[5])
	h.StoredSize = binary.LittleEndian.Uint32(data[8:12])
	h.RawSize = binary.LittleEndian.Uint32(data[12:16])
	h.Checksum = binary.LittleEndian.Uint64(data[16:24])

	return h.Validate()
}

// Validate checks the version, compression and payload lengths.
func (h *Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: unknown compression %d", ErrCorrupt, uint8(h.Compression))
	}
	if h.StoredSize > maxPayload || h.RawSize > maxPayload {
		return fmt.Errorf("%w: payload length exceeds %d bytes", ErrCorrupt, maxPayload)
	}

	return nil
}

// Bytes serializes the header. Reserved bytes 6-7 are zero.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:4], magic[:])
	b[4] = h.Version
	b[5] = byte(h.Compression)
	binary.LittleEndian.PutUint32(b[8:12], h.StoredSize)
	binary.LittleEndian.PutUint32(b[12:16], h.RawSize)
	binary.LittleEndian.PutUint64(b[16:24], h.Checksum)

	return b
}

// Info converts the header into an Info.
func (h *Header) Info() (Info, error) {
	stored, err := safecast.Conv[int](h.StoredSize)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	raw, err := safecast.Conv[int](h.RawSize)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return Info{
		Version:     h.Version,
		Compression: h.Compression,
		StoredSize:  stored,
		RawSize:     raw,
		Checksum:    h.Checksum,
	}, nil
}
