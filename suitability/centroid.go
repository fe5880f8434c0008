package suitability

import (
	"github.com/arloliu/cropfit/refset"
)

// CentroidBaseline scores q against every class centroid with
// 1/(‖q − centroid‖ + Epsilon), then rescales the scores so the maximum is
// exactly BaselineCeiling. Classes without a centroid score 0. If every score
// is 0 the result is left unscaled.
//
// q must have the dimension of the centroids.
func CentroidBaseline(c *refset.Centroids, q []float64) Evidence {
	out := make(Evidence, c.Len())
	baselineInto(out, c, q)

	return out
}

func baselineInto(dst []float64, c *refset.Centroids, q []float64) {
	var peak float64
	for label := range dst {
		mean, ok := c.Get(label)
		if !ok {
			dst[label] = 0
			continue
		}
		dst[label] = inverseDistance(refset.Distance(q, mean))
		peak = max(peak, dst[label])
	}

	if peak == 0 {
		return
	}

	// Divide before multiplying so the peak maps to exactly BaselineCeiling.
	for label := range dst {
		dst[label] = dst[label] / peak * BaselineCeiling
	}
}
