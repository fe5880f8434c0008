package refset

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/arloliu/cropfit/internal/hash"
)

var (
	// ErrNoClasses is returned when classCount is not positive.
	ErrNoClasses = errors.New("reference set needs at least one class")
	// ErrLengthMismatch is returned when points and labels differ in length.
	ErrLengthMismatch = errors.New("points and labels differ in length")
	// ErrDimensionMismatch is returned for points (or queries) of the wrong dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrLabelOutOfRange is returned for labels outside [0, classCount).
	ErrLabelOutOfRange = errors.New("label out of range")
	// ErrNonFinite is returned for NaN or infinite coordinates.
	ErrNonFinite = errors.New("non-finite coordinate")
)

// Set is an immutable reference set.
type Set struct {
	points     [][]float64
	labels     []int
	classCount int
	dim        int
	classSizes []int

	fingerprint uint64

	centroidsOnce sync.Once
	centroids     *Centroids
}

// New validates its inputs and builds a Set. The points and labels are
// copied, so the caller may reuse its slices afterwards.
//
// An empty set (no points) is valid; its dimension is 0 and scoring against
// it is rejected by the consumer.
func New(points [][]float64, labels []int, classCount int) (*Set, error) {
	if classCount <= 0 {
		return nil, ErrNoClasses
	}
	if len(points) != len(labels) {
		return nil, fmt.Errorf("%w: %d points, %d labels", ErrLengthMismatch, len(points), len(labels))
	}

	s := &Set{
		points:     make([][]float64, len(points)),
		labels:     make([]int, len(labels)),
		classCount: classCount,
		classSizes: make([]int, classCount),
	}
	if len(points) > 0 {
		s.dim = len(points[0])
	}

	// One backing array keeps rows contiguous for the distance scans.
	backing := make([]float64, len(points)*s.dim)
	for i, p := range points {
		if len(p) != s.dim {
			return nil, fmt.Errorf("%w: point %d has %d values, want %d", ErrDimensionMismatch, i, len(p), s.dim)
		}
		for j, x := range p {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("%w: point %d, column %d", ErrNonFinite, i, j)
			}
		}
		row := backing[i*s.dim : (i+1)*s.dim : (i+1)*s.dim]
		copy(row, p)
		s.points[i] = row

		label := labels[i]
		if label < 0 || label >= classCount {
			return nil, fmt.Errorf("%w: point %d has label %d, class count %d", ErrLabelOutOfRange, i, label, classCount)
		}
		s.labels[i] = label
		s.classSizes[label]++
	}

	s.fingerprint = s.computeFingerprint()

	return s, nil
}

// Len returns the number of training points.
func (s *Set) Len() int {
	return len(s.points)
}

// Dim returns the dimension of the training points, 0 for an empty set.
func (s *Set) Dim() int {
	return s.dim
}

// ClassCount returns the number of classes, including classes without points.
func (s *Set) ClassCount() int {
	return s.classCount
}

// Point returns the i-th training point. The slice is shared with the Set
// and must not be modified.
func (s *Set) Point(i int) []float64 {
	return s.points[i]
}

// Label returns the class label of the i-th training point.
func (s *Set) Label(i int) int {
	return s.labels[i]
}

// ClassSize returns the number of training points labeled c.
func (s *Set) ClassSize(c int) int {
	if c < 0 || c >= s.classCount {
		return 0
	}

	return s.classSizes[c]
}

// Fingerprint returns a 64-bit content hash over the class count, labels and
// coordinates. Two sets with the same fingerprint score identically.
func (s *Set) Fingerprint() uint64 {
	return s.fingerprint
}

func (s *Set) computeFingerprint() uint64 {
	d := hash.NewDigest()
	d.Int(s.classCount)
	d.Int(s.dim)
	d.Int(len(s.points))
	for i, p := range s.points {
		d.Int(s.labels[i])
		d.Floats(p)
	}

	return d.Sum64()
}

// Distance returns the Euclidean distance between a and b, which must have
// the same length.
func Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}
