package feature

import (
	"errors"
	"fmt"
	"math"
)

// Scaler applies a fitted standard-score transform: (x - Mean) / Scale.
//
// A zero Scale entry is treated as 1, which is how a constant training
// column is handled when the scaler is fitted.
type Scaler struct {
	Mean  [Dim]float64
	Scale [Dim]float64
}

// IdentityScaler returns a Scaler that leaves vectors unchanged.
func IdentityScaler() Scaler {
	var s Scaler
	for i := range s.Scale {
		s.Scale[i] = 1
	}

	return s
}

// NewScaler builds a Scaler from fitted parameters.
func NewScaler(mean, scale []float64) (Scaler, error) {
	var s Scaler
	if len(mean) != Dim || len(scale) != Dim {
		return s, fmt.Errorf("%w: scaler has %d means and %d scales, want %d",
			ErrDimension, len(mean), len(scale), Dim)
	}

	for i := 0; i < Dim; i++ {
		if !isFinite(mean[i]) || !isFinite(scale[i]) {
			return s, fmt.Errorf("%w: scaler parameter for %s", ErrNonFinite, Index(i))
		}
		if scale[i] < 0 {
			return s, errors.New("scaler scale must be non-negative")
		}
		s.Mean[i] = mean[i]
		s.Scale[i] = scale[i]
	}

	return s, nil
}

// Transform maps a raw vector into the classifier's coordinate space.
func (s Scaler) Transform(v Vector) Vector {
	var out Vector
	for i, x := range v {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (x - s.Mean[i]) / scale
	}

	return out
}

// Inverse maps a scaled vector back to raw units.
func (s Scaler) Inverse(v Vector) Vector {
	var out Vector
	for i, x := range v {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = x*scale + s.Mean[i]
	}

	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
