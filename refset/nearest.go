package refset

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/cropfit/internal/pool"
)

// Neighbor is one training point returned by a nearest-neighbor query.
type Neighbor struct {
	Index    int     // position in the Set
	Label    int     // class label of the point
	Distance float64 // Euclidean distance to the query
}

// Nearest returns the k training points closest to q under Euclidean
// distance, nearest first. Equal distances are ordered by ascending index.
// k is clamped to Len(); k <= 0 or an empty set yields no neighbors.
func (s *Set) Nearest(q []float64, k int) ([]Neighbor, error) {
	n := len(s.points)
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}
	if len(q) != s.dim {
		return nil, fmt.Errorf("%w: query has %d values, want %d", ErrDimensionMismatch, len(q), s.dim)
	}

	dist, releaseDist := pool.GetFloat64Slice(n)
	defer releaseDist()
	order, releaseOrder := pool.GetIntSlice(n)
	defer releaseOrder()

	for i, p := range s.points {
		dist[i] = Distance(q, p)
		order[i] = i
	}

	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(dist[a], dist[b]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	out := make([]Neighbor, k)
	for i, idx := range order[:k] {
		out[i] = Neighbor{Index: idx, Label: s.labels[idx], Distance: dist[idx]}
	}

	return out, nil
}
