package suitability

const (
	// Epsilon is added to every distance before inversion so a query that
	// coincides with a training point or centroid gets a large finite weight.
	Epsilon = 1e-5

	// BaselineCeiling is the value the largest centroid baseline is rescaled to.
	BaselineCeiling = 5.0

	// DefaultNeighborCap is the upper bound on K for neighbor evidence.
	DefaultNeighborCap = 200

	// percentScale maps combined/max into the suitability range before clipping.
	percentScale = 200.0
	maxPercent   = 100.0
)

// ClassID identifies a class; it is an index in [0, classCount).
type ClassID int

// Evidence holds one non-negative score per class, indexed by ClassID.
type Evidence []float64

// Max returns the largest score, or 0 for empty evidence.
func (e Evidence) Max() float64 {
	var m float64
	for i, v := range e {
		if i == 0 || v > m {
			m = v
		}
	}

	return m
}

func inverseDistance(d float64) float64 {
	return 1 / (d + Epsilon)
}
