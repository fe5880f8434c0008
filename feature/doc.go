// Package feature defines the seven-dimensional soil/climate feature vector,
// the raw measurements it is derived from, request-level range validation and
// the application of a fitted standard scaler.
//
// Raw inputs flow through the package in this order:
//
//	m := feature.Measurements{N: 90, P: 42, K: 43, Temperature: 20.9,
//	    Humidity: 82, PH: 6.5, Rainfall: 202.9}
//	if err := m.Validate(); err != nil {
//	    return err // *feature.RangeError or ErrNonFinite
//	}
//	q := scaler.Transform(m.Vector())
//
// The scaled vector lives in the same coordinate space as the classifier's
// training matrix and can be passed to the suitability engine via q.Slice().
package feature
