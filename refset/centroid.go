package refset

// Centroids holds the elementwise mean of each class's training points.
// Classes without points have no centroid.
type Centroids struct {
	means   [][]float64
	defined []bool
}

// Centroids returns the per-class centroids, computing them on first use.
// Concurrent first callers block until the single computation finishes.
func (s *Set) Centroids() *Centroids {
	s.centroidsOnce.Do(func() {
		s.centroids = s.computeCentroids()
	})

	return s.centroids
}

func (s *Set) computeCentroids() *Centroids {
	c := &Centroids{
		means:   make([][]float64, s.classCount),
		defined: make([]bool, s.classCount),
	}

	for i, p := range s.points {
		label := s.labels[i]
		if c.means[label] == nil {
			c.means[label] = make([]float64, s.dim)
		}
		mean := c.means[label]
		for j, x := range p {
			mean[j] += x
		}
	}

	for label, mean := range c.means {
		size := s.classSizes[label]
		if size == 0 {
			continue
		}
		for j := range mean {
			mean[j] /= float64(size)
		}
		c.defined[label] = true
	}

	return c
}

// Len returns the number of classes covered, defined or not.
func (c *Centroids) Len() int {
	return len(c.means)
}

// Get returns the centroid of class label and whether it is defined. The
// slice is shared and must not be modified.
func (c *Centroids) Get(label int) ([]float64, bool) {
	if label < 0 || label >= len(c.means) || !c.defined[label] {
		return nil, false
	}

	return c.means[label], true
}
