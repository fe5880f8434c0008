package suitability

import (
	"github.com/arloliu/cropfit/refset"
)

// NeighborEvidence retrieves the K = min(neighborCap, set.Len()) training
// points nearest to q and accumulates 1/(d + Epsilon) into the score of each
// neighbor's class.
//
// The result has set.ClassCount() entries. An empty set returns
// ErrEmptyReferenceSet; a query of the wrong dimension returns
// refset.ErrDimensionMismatch.
func NeighborEvidence(set *refset.Set, q []float64, neighborCap int) (Evidence, error) {
	out := make(Evidence, set.ClassCount())
	if _, err := accumulateNeighbors(out, set, q, neighborCap); err != nil {
		return nil, err
	}

	return out, nil
}

// accumulateNeighbors adds neighbor weights into dst, which must be zeroed
// and sized to the class count, and returns K.
func accumulateNeighbors(dst []float64, set *refset.Set, q []float64, neighborCap int) (int, error) {
	k := min(neighborCap, set.Len())
	if k <= 0 {
		return 0, ErrEmptyReferenceSet
	}

	neighbors, err := set.Nearest(q, k)
	if err != nil {
		return 0, err
	}

	for _, n := range neighbors {
		dst[n.Label] += inverseDistance(n.Distance)
	}

	return k, nil
}
