package feature

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is the sentinel wrapped by every RangeError.
var ErrOutOfRange = errors.New("measurement out of range")

// Measurements are the raw physical inputs for one field.
type Measurements struct {
	N           float64 `json:"n" toml:"n"`                     // nitrogen ratio in soil
	P           float64 `json:"p" toml:"p"`                     // phosphorous ratio in soil
	K           float64 `json:"k" toml:"k"`                     // potassium ratio in soil
	Temperature float64 `json:"temperature" toml:"temperature"` // °C
	Humidity    float64 `json:"humidity" toml:"humidity"`       // relative humidity, %
	PH          float64 `json:"ph" toml:"ph"`
	Rainfall    float64 `json:"rainfall" toml:"rainfall"` // mm
}

// Vector returns the measurements in feature order, unscaled.
func (m Measurements) Vector() Vector {
	return Vector{m.N, m.P, m.K, m.Temperature, m.Humidity, m.PH, m.Rainfall}
}

// Range is an inclusive interval of accepted raw values.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether x lies in [Min, Max].
func (r Range) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

func (r Range) String() string {
	if math.IsInf(r.Max, 1) {
		return fmt.Sprintf(">= %g", r.Min)
	}

	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

// Limits are the accepted ranges for raw measurements, indexed by feature.
var Limits = [Dim]Range{
	N:           {1, 200},
	P:           {1, 200},
	K:           {1, 200},
	Temperature: {1, 65},
	Humidity:    {1, 100},
	PH:          {1, 14},
	Rainfall:    {0, math.Inf(1)},
}

// RangeError reports a measurement outside its accepted range.
type RangeError struct {
	Field Index
	Value float64
	Range Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%g out of range (%s)", e.Field, e.Value, e.Range)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Validate checks that every measurement is finite and within Limits. The
// first violation, in feature order, is returned.
func (m Measurements) Validate() error {
	v := m.Vector()
	if err := v.Validate(); err != nil {
		return err
	}

	for i, x := range v {
		if !Limits[i].Contains(x) {
			return &RangeError{Field: Index(i), Value: x, Range: Limits[i]}
		}
	}

	return nil
}
