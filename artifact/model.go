package artifact

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arloliu/cropfit/feature"
	"github.com/arloliu/cropfit/knn"
	"github.com/arloliu/cropfit/names"
	"github.com/arloliu/cropfit/refset"
)

// Model is the serialized form of a trained crop classifier.
//
// The same struct is used for the JSON export written by the training
// pipeline, which the pack command converts into a binary artifact.
type Model struct {
	// Points are the scaled training feature vectors.
	Points [][]float64 `msgpack:"points" json:"points"`
	// Labels are the class labels, parallel to Points.
	Labels []int `msgpack:"labels" json:"labels"`
	// ClassCount is the number of classes. Zero means len(Crops).
	ClassCount int `msgpack:"class_count" json:"class_count,omitempty"`
	// Crops are the raw crop identifiers indexed by label, e.g. "rice".
	Crops []string `msgpack:"crops" json:"crops"`
	// ScalerMean and ScalerScale are the fitted standard-scaler parameters.
	// Both empty means the points are used unscaled.
	ScalerMean  []float64 `msgpack:"scaler_mean,omitempty" json:"scaler_mean,omitempty"`
	ScalerScale []float64 `msgpack:"scaler_scale,omitempty" json:"scaler_scale,omitempty"`
	// Neighbors is the k the classifier votes with. Zero selects knn.DefaultNeighbors.
	Neighbors int `msgpack:"neighbors" json:"neighbors,omitempty"`
}

// Classes returns the effective class count.
func (m *Model) Classes() int {
	if m.ClassCount > 0 {
		return m.ClassCount
	}

	return len(m.Crops)
}

// ReferenceSet builds the immutable reference set.
func (m *Model) ReferenceSet() (*refset.Set, error) {
	set, err := refset.New(m.Points, m.Labels, m.Classes())
	if err != nil {
		return nil, fmt.Errorf("reference set: %w", err)
	}

	return set, nil
}

// Classifier builds the kNN classifier over a reference set built from m.
func (m *Model) Classifier() (*knn.Classifier, error) {
	set, err := m.ReferenceSet()
	if err != nil {
		return nil, err
	}

	return knn.New(set, m.Neighbors)
}

// Names builds the label → display-name table.
func (m *Model) Names() (*names.Table, error) {
	table, err := names.FromCrops(m.Crops)
	if err != nil {
		return nil, fmt.Errorf("crop names: %w", err)
	}

	return table, nil
}

// Scaler returns the fitted scaler, or the identity scaler when the model
// carries no scaler parameters.
func (m *Model) Scaler() (feature.Scaler, error) {
	if len(m.ScalerMean) == 0 && len(m.ScalerScale) == 0 {
		return feature.IdentityScaler(), nil
	}

	s, err := feature.NewScaler(m.ScalerMean, m.ScalerScale)
	if err != nil {
		return s, fmt.Errorf("scaler: %w", err)
	}

	return s, nil
}

// Validate checks that every runtime collaborator can be built from m and
// that the points live in the feature.Dim-dimensional feature space.
func (m *Model) Validate() error {
	set, err := m.ReferenceSet()
	if err != nil {
		return err
	}
	if set.Len() > 0 && set.Dim() != feature.Dim {
		return fmt.Errorf("reference set: %w: points have %d values, want %d",
			refset.ErrDimensionMismatch, set.Dim(), feature.Dim)
	}
	if _, err := m.Names(); err != nil {
		return err
	}
	if _, err := m.Scaler(); err != nil {
		return err
	}

	return nil
}

// ReadJSON decodes a training-pipeline JSON export.
func ReadJSON(r io.Reader) (*Model, error) {
	var m Model
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model export: %w", err)
	}

	return &m, nil
}
