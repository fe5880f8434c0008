package feature

import (
	"errors"
	"fmt"
	"math"
)

// Dim is the number of features in a Vector.
const Dim = 7

// Index names a position in a Vector.
type Index int

// Feature positions, in the order the classifier was trained with.
const (
	N Index = iota
	P
	K
	Temperature
	Humidity
	PH
	Rainfall
)

var indexNames = [Dim]string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

func (i Index) String() string {
	if i < 0 || int(i) >= Dim {
		return fmt.Sprintf("feature(%d)", int(i))
	}

	return indexNames[i]
}

var (
	// ErrNonFinite is returned for NaN or infinite feature values.
	ErrNonFinite = errors.New("feature value is not finite")
	// ErrDimension is returned when a slice does not have exactly Dim values.
	ErrDimension = errors.New("feature vector has wrong dimension")
)

// Vector is one query in feature space: (N, P, K, temperature, humidity, ph,
// rainfall). Whether it is raw or scaled depends on where it came from;
// Measurements.Vector returns raw values and Scaler.Transform scaled ones.
type Vector [Dim]float64

// FromSlice copies s into a Vector.
func FromSlice(s []float64) (Vector, error) {
	var v Vector
	if len(s) != Dim {
		return v, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(s), Dim)
	}
	copy(v[:], s)

	return v, nil
}

// Slice returns a freshly allocated copy of v as a slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Dim)
	copy(out, v[:])

	return out
}

// Get returns the value at position i.
func (v Vector) Get(i Index) float64 {
	return v[i]
}

// Validate rejects vectors containing NaN or ±Inf.
func (v Vector) Validate() error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFinite, Index(i), x)
		}
	}

	return nil
}
