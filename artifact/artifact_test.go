package artifact

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cropfit/feature"
	"github.com/arloliu/cropfit/format"
	"github.com/arloliu/cropfit/refset"
)

func testModel() *Model {
	return &Model{
		Points: [][]float64{
			{-1.2, 0.3, 0.1, -0.4, 0.9, 0.2, 1.8},
			{-1.1, 0.2, 0.0, -0.5, 1.0, 0.3, 1.7},
			{0.8, -0.4, -0.2, 0.6, 0.1, -0.1, -0.3},
			{0.9, -0.5, -0.1, 0.7, 0.2, 0.0, -0.2},
		},
		Labels:      []int{0, 0, 1, 1},
		Crops:       []string{"rice", "maize"},
		ScalerMean:  []float64{50.5, 53.4, 48.1, 25.6, 71.5, 6.5, 103.5},
		ScalerScale: []float64{36.9, 32.9, 50.6, 5.1, 22.3, 0.8, 55.0},
		Neighbors:   3,
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			m := testModel()

			var buf bytes.Buffer
			info, err := Encode(&buf, m, WithCompression(ct))
			require.NoError(t, err)
			require.Equal(t, Version, info.Version)
			require.Equal(t, ct, info.Compression)
			require.Equal(t, HeaderSize+info.StoredSize, buf.Len())

			got, gotInfo, err := Decode(&buf)
			require.NoError(t, err)
			require.Equal(t, info, gotInfo)
			require.Equal(t, m, got)
		})
	}
}

func TestEncode_DefaultCompressionIsZstd(t *testing.T) {
	var buf bytes.Buffer
	info, err := Encode(&buf, testModel())
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, info.Compression)
	require.Equal(t, byte(format.CompressionZstd), buf.Bytes()[5])
}

func TestEncode_InvalidCompression(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, testModel(), WithCompression(format.CompressionType(99)))
	require.Error(t, err)
	require.Zero(t, buf.Len())
}

func TestEncode_InvalidModel(t *testing.T) {
	t.Run("label out of range", func(t *testing.T) {
		m := testModel()
		m.Labels[0] = 7

		_, err := Encode(&bytes.Buffer{}, m)
		require.ErrorIs(t, err, refset.ErrLabelOutOfRange)
	})

	t.Run("length mismatch", func(t *testing.T) {
		m := testModel()
		m.Labels = m.Labels[:3]

		_, err := Encode(&bytes.Buffer{}, m)
		require.ErrorIs(t, err, refset.ErrLengthMismatch)
	})

	t.Run("points outside feature space", func(t *testing.T) {
		m := testModel()
		m.Points = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
		m.ScalerMean = nil
		m.ScalerScale = nil

		require.ErrorIs(t, m.Validate(), refset.ErrDimensionMismatch)

		var buf bytes.Buffer
		_, err := Encode(&buf, m)
		require.ErrorIs(t, err, refset.ErrDimensionMismatch)
		require.Zero(t, buf.Len())
	})

	t.Run("bad scaler", func(t *testing.T) {
		m := testModel()
		m.ScalerScale = m.ScalerScale[:3]

		_, err := Encode(&bytes.Buffer{}, m)
		require.ErrorIs(t, err, feature.ErrDimension)
	})
}

func TestDecode_Errors(t *testing.T) {
	var good bytes.Buffer
	_, err := Encode(&good, testModel(), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	mutate := func(f func(b []byte) []byte) []byte {
		b := bytes.Clone(good.Bytes())
		return f(b)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "empty",
			data: nil,
			want: ErrBadMagic,
		},
		{
			name: "wrong magic",
			data: mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
			want: ErrBadMagic,
		},
		{
			name: "future version",
			data: mutate(func(b []byte) []byte { b[4] = 2; return b }),
			want: ErrUnsupportedVersion,
		},
		{
			name: "unknown compression",
			data: mutate(func(b []byte) []byte { b[5] = 42; return b }),
			want: ErrCorrupt,
		},
		{
			name: "truncated payload",
			data: mutate(func(b []byte) []byte { return b[:len(b)-10] }),
			want: ErrCorrupt,
		},
		{
			name: "raw size mismatch",
			data: mutate(func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[12:16], binary.LittleEndian.Uint32(b[12:16])+1)
				return b
			}),
			want: ErrCorrupt,
		},
		{
			name: "flipped payload bit",
			data: mutate(func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }),
			want: ErrChecksum,
		},
		{
			name: "oversized length",
			data: mutate(func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[8:12], maxPayload+1)
				return b
			}),
			want: ErrCorrupt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadInfo(t *testing.T) {
	var buf bytes.Buffer
	info, err := Encode(&buf, testModel(), WithCompression(format.CompressionS2))
	require.NoError(t, err)

	got, err := ReadInfo(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, info, got)
	assert.Greater(t, got.Ratio(), 0.0)
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "crops.cfit")
	m := testModel()

	info, err := SaveFile(path, m, WithCompression(format.CompressionLZ4))
	require.NoError(t, err)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temp file must be renamed away")

	got, gotInfo, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, info, gotInfo)
	require.Equal(t, m, got)
}

func TestSaveFile_InvalidModelLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.cfit")
	m := testModel()
	m.Crops = nil

	_, err := SaveFile(path, m)
	require.Error(t, err)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestLoadFile_Missing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.cfit"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestModel_Collaborators(t *testing.T) {
	m := testModel()

	set, err := m.ReferenceSet()
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())
	require.Equal(t, 2, set.ClassCount())

	clf, err := m.Classifier()
	require.NoError(t, err)
	require.Equal(t, 3, clf.K())

	table, err := m.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"Rice", "Maize"}, table.Names())

	s, err := m.Scaler()
	require.NoError(t, err)
	require.InDelta(t, 50.5, s.Mean[0], 1e-12)
}

func TestModel_Classes(t *testing.T) {
	m := testModel()
	require.Equal(t, 2, m.Classes())

	m.ClassCount = 5
	require.Equal(t, 5, m.Classes())
}

func TestModel_IdentityScaler(t *testing.T) {
	m := testModel()
	m.ScalerMean = nil
	m.ScalerScale = nil

	s, err := m.Scaler()
	require.NoError(t, err)
	require.Equal(t, feature.IdentityScaler(), s)
}

func TestReadJSON(t *testing.T) {
	const export = `{
		"points": [[0,0,0,0,0,0,0],[1,1,1,1,1,1,1]],
		"labels": [0, 1],
		"crops": ["rice", "kidneybeans"],
		"neighbors": 1
	}`

	m, err := ReadJSON(strings.NewReader(export))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, m.Labels)
	require.Equal(t, 1, m.Neighbors)
	require.NoError(t, m.Validate())

	table, err := m.Names()
	require.NoError(t, err)
	require.Equal(t, "Kidneybeans", table.Resolve(1))

	_, err = ReadJSON(strings.NewReader(`{"points": [], "bogus": 1}`))
	require.Error(t, err)
}

func TestHeader_BytesParse(t *testing.T) {
	h := Header{
		Version:     Version,
		Compression: format.CompressionLZ4,
		StoredSize:  1234,
		RawSize:     5678,
		Checksum:    0xdeadbeefcafef00d,
	}

	b := h.Bytes()
	require.Len(t, b, HeaderSize)
	require.Equal(t, []byte("CFIT"), b[0:4])
	require.Equal(t, []byte{0, 0}, b[6:8], "reserved bytes")

	var got Header
	require.NoError(t, got.Parse(b))
	require.Equal(t, h, got)

	require.ErrorIs(t, got.Parse(b[:HeaderSize-1]), ErrCorrupt)
}

func TestDecode_HeaderOnlyWithLargeDeclaredPayload(t *testing.T) {
	h := Header{
		Version:     Version,
		Compression: format.CompressionNone,
		StoredSize:  maxPayload,
		RawSize:     maxPayload,
	}

	_, _, err := Decode(bytes.NewReader(h.Bytes()))
	require.ErrorIs(t, err, ErrCorrupt)
	require.ErrorContains(t, err, "payload is 0 bytes")
}
