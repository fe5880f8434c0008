package compress

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/arloliu/cropfit/format"
	"github.com/stretchr/testify/require"
)

// scaledMatrix mimics an artifact training matrix: rows of standard-scaled
// features serialized as little-endian float64.
func scaledMatrix(rows int) []byte {
	buf := make([]byte, 0, rows*7*8)
	for i := 0; i < rows; i++ {
		for j := 0; j < 7; j++ {
			v := math.Sin(float64(i*7+j)) * 1.5
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}

	return buf
}

func allTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"matrix":     scaledMatrix(500),
		"repetitive": bytes.Repeat([]byte("rice maize chickpea "), 200),
		"single":     {0x42},
	}

	for _, ct := range allTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, data, restored)
			})
		}
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range allTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, packed)

			restored, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestCodecs_CorruptInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11, 0x22}

	t.Run("zstd", func(t *testing.T) {
		_, err := NewZstdCodec().Decompress(garbage)
		require.Error(t, err)
	})

	t.Run("lz4 truncated prefix", func(t *testing.T) {
		_, err := NewLZ4Codec().Decompress([]byte{0x01, 0x02})
		require.ErrorIs(t, err, errLZ4Truncated)
	})

	t.Run("lz4 oversized prefix", func(t *testing.T) {
		data := binary.LittleEndian.AppendUint32(nil, math.MaxUint32)
		_, err := NewLZ4Codec().Decompress(append(data, 0x00))
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("s2 oversized length", func(t *testing.T) {
		data := binary.AppendUvarint(nil, 1<<31)
		_, err := NewS2Codec().Decompress(append(data, 0x00))
		require.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported compression type")
}

func TestCompressWithStats(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 1024)

	packed, stats, err := CompressWithStats(format.CompressionZstd, data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(len(packed)), stats.CompressedSize)
	require.Less(t, stats.Ratio(), 1.0)
	require.Greater(t, stats.SpaceSavings(), 0.0)

	require.Zero(t, Stats{}.Ratio())
}

func BenchmarkZstdDecompress(b *testing.B) {
	codec := NewZstdCodec()
	packed, err := codec.Compress(scaledMatrix(2200))
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = codec.Decompress(packed)
	}
}
