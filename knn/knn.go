// Package knn provides a brute-force k-nearest-neighbor classifier over a
// refset.Set. It mirrors a uniformly weighted kNN model: the predicted class
// is the most common label among the k nearest training points, with ties
// going to the smallest label.
//
// Classifier exposes its reference set, so it satisfies the neighbor-query
// capability required for suitability scoring.
package knn

import (
	"errors"
	"fmt"

	"github.com/arloliu/cropfit/refset"
)

// DefaultNeighbors is the number of neighbors consulted by Predict.
const DefaultNeighbors = 5

var (
	// ErrNilReferenceSet is returned by New for a nil set.
	ErrNilReferenceSet = errors.New("reference set is nil")
	// ErrNoNeighbors is returned by Predict when the set has no points.
	ErrNoNeighbors = errors.New("no neighbors: reference set is empty")
)

// Classifier is an immutable kNN classifier, safe for concurrent use.
type Classifier struct {
	set *refset.Set
	k   int
}

// New creates a classifier that votes among the k nearest points.
// k <= 0 selects DefaultNeighbors.
func New(set *refset.Set, k int) (*Classifier, error) {
	if set == nil {
		return nil, ErrNilReferenceSet
	}
	if k <= 0 {
		k = DefaultNeighbors
	}

	return &Classifier{set: set, k: k}, nil
}

// K returns the number of voting neighbors.
func (c *Classifier) K() int {
	return c.k
}

// References returns the training data the classifier votes over.
func (c *Classifier) References() *refset.Set {
	return c.set
}

// Predict returns the majority label among the k nearest training points.
func (c *Classifier) Predict(q []float64) (int, error) {
	votes, err := c.Votes(q)
	if err != nil {
		return -1, err
	}

	best, total := 0, 0
	for label, v := range votes {
		total += v
		if v > votes[best] {
			best = label
		}
	}
	if total == 0 {
		return -1, ErrNoNeighbors
	}

	return best, nil
}

// Votes returns the per-class vote counts among the k nearest points.
func (c *Classifier) Votes(q []float64) ([]int, error) {
	neighbors, err := c.set.Nearest(q, c.k)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbors: %w", err)
	}

	votes := make([]int, c.set.ClassCount())
	for _, n := range neighbors {
		votes[n.Label]++
	}

	return votes, nil
}
