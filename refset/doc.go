// Package refset holds the immutable training reference set of a
// nearest-neighbor crop classifier: feature vectors, their integer class
// labels and the class count.
//
// A Set is built once at process start and shared read-only by every
// request. Derived views (per-class centroids, the fingerprint) are computed
// at most once and cached on the Set; all methods are safe for concurrent use.
//
//	set, err := refset.New(points, labels, 22)
//	if err != nil {
//	    return err
//	}
//	neighbors, err := set.Nearest(query, 200)
//	centroids := set.Centroids()
package refset
