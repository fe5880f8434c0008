package cropfit

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cropfit/artifact"
	"github.com/arloliu/cropfit/feature"
	"github.com/arloliu/cropfit/format"
	"github.com/arloliu/cropfit/refset"
	"github.com/arloliu/cropfit/suitability"
)

var (
	riceField  = feature.Measurements{N: 90, P: 42, K: 43, Temperature: 20.9, Humidity: 82, PH: 6.5, Rainfall: 202.9}
	maizeField = feature.Measurements{N: 71, P: 54, K: 16, Temperature: 22.6, Humidity: 63.7, PH: 5.7, Rainfall: 87.8}
)

// rawModel is an unscaled two-crop model.
func rawModel() *artifact.Model {
	return &artifact.Model{
		Points: [][]float64{
			riceField.Vector().Slice(),
			{85, 58, 41, 21.8, 80, 7.0, 226.7},
			maizeField.Vector().Slice(),
			{61, 44, 17, 26.1, 71.6, 6.9, 102.3},
		},
		Labels:    []int{0, 0, 1, 1},
		Crops:     []string{"rice", "maize"},
		Neighbors: 3,
	}
}

func TestNew_Recommend(t *testing.T) {
	rec, err := New(rawModel())
	require.NoError(t, err)

	res, err := rec.Recommend(riceField)
	require.NoError(t, err)
	require.Equal(t, "Rice", res.Predicted.Name)
	require.Equal(t, suitability.ClassID(0), res.Predicted.Label)
	require.Len(t, res.Report, 2)
	require.Equal(t, "Rice", res.Report[0].Name)
	require.Equal(t, 100.0, res.Report[0].Probability)
	require.Less(t, res.Report[1].Probability, 100.0)

	res, err = rec.Recommend(maizeField)
	require.NoError(t, err)
	require.Equal(t, "Maize", res.Predicted.Name)
	require.Equal(t, "Maize", res.Report[0].Name)
}

func TestNew_NilModel(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNew_InvalidModel(t *testing.T) {
	m := rawModel()
	m.Crops = []string{"rice", "rice"}

	_, err := New(m)
	require.Error(t, err)
}

func TestNew_RejectsPointsOutsideFeatureSpace(t *testing.T) {
	m := &artifact.Model{
		Points: [][]float64{{0, 0}, {1, 1}},
		Labels: []int{0, 1},
		Crops:  []string{"rice", "maize"},
	}

	_, err := New(m)
	require.ErrorIs(t, err, refset.ErrDimensionMismatch)
}

func TestRecommend_RangeCheck(t *testing.T) {
	rec, err := New(rawModel())
	require.NoError(t, err)

	low := riceField
	low.N = 0
	_, err = rec.Recommend(low)
	require.ErrorIs(t, err, feature.ErrOutOfRange)

	var rangeErr *feature.RangeError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, feature.N, rangeErr.Field)

	lenient, err := New(rawModel(), WithoutRangeCheck())
	require.NoError(t, err)
	_, err = lenient.Recommend(low)
	require.NoError(t, err)

	nan := riceField
	nan.PH = math.NaN()
	_, err = lenient.Recommend(nan)
	require.ErrorIs(t, err, feature.ErrNonFinite)
}

func TestRecommend_AppliesScaler(t *testing.T) {
	m := rawModel()
	m.ScalerMean = []float64{75, 50, 30, 22, 75, 6.5, 150}
	m.ScalerScale = []float64{15, 8, 14, 2, 9, 0.6, 60}

	scaler, err := m.Scaler()
	require.NoError(t, err)
	for i, p := range m.Points {
		v, err := feature.FromSlice(p)
		require.NoError(t, err)
		m.Points[i] = scaler.Transform(v).Slice()
	}

	rec, err := New(m)
	require.NoError(t, err)
	require.Equal(t, scaler, rec.Scaler())

	got, err := rec.Recommend(maizeField)
	require.NoError(t, err)

	want, err := rec.Engine().Recommend(scaler.Transform(maizeField.Vector()).Slice())
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "Maize", got.Predicted.Name)
}

func TestWithEngineOptions(t *testing.T) {
	rec, err := New(rawModel(), WithEngineOptions(suitability.WithPrecision(-1)))
	require.NoError(t, err)

	res, err := rec.Recommend(riceField)
	require.NoError(t, err)

	p := res.Report[1].Probability
	require.NotEqual(t, math.Round(p*100)/100, p, "unrounded probability expected")

	_, err = New(rawModel(), WithEngineOptions(suitability.WithNeighborCap(0)))
	require.ErrorIs(t, err, suitability.ErrInvalidNeighborCap)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.cfit")
	_, err := artifact.SaveFile(path, rawModel(), artifact.WithCompression(format.CompressionS2))
	require.NoError(t, err)

	rec, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, rec.Info().Compression)
	require.Equal(t, []string{"rice", "maize"}, rec.Model().Crops)

	res, err := rec.Recommend(riceField)
	require.NoError(t, err)
	require.Equal(t, "Rice", res.Predicted.Name)

	_, err = Open(filepath.Join(t.TempDir(), "missing.cfit"))
	require.Error(t, err)
}

func TestRecommendBatch(t *testing.T) {
	rec, err := New(rawModel())
	require.NoError(t, err)

	fields := []feature.Measurements{riceField, maizeField, riceField}
	results, err := rec.RecommendBatch(context.Background(), fields, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, f := range fields {
		want, err := rec.Recommend(f)
		require.NoError(t, err)
		require.Equal(t, want, results[i])
	}

	bad := riceField
	bad.Humidity = 101
	_, err = rec.RecommendBatch(context.Background(), []feature.Measurements{riceField, bad}, 2)
	require.ErrorIs(t, err, feature.ErrOutOfRange)
	require.ErrorContains(t, err, "query 1")
}
