// Package suitability turns a nearest-neighbor crop classifier into a ranked
// suitability report covering every known crop.
//
// Two independent evidence sources are computed for a scaled query vector:
//
//   - Neighbor evidence: the K = min(200, |reference set|) nearest training
//     points each vote for their class with weight 1/(d + 1e-5).
//   - Centroid baseline: 1/(‖q − centroid‖ + 1e-5) per class, rescaled so the
//     largest entry is exactly 5. This adds a small bounded correction on top
//     of the neighbor votes, whose sum is unbounded.
//
// The two are summed per class, divided by the maximum, multiplied by 200 and
// clipped to [0, 100]. Every class whose combined score is at least half the
// maximum therefore reads 100. The values are a bounded suitability
// indicator, not probabilities, and do not sum to 100.
//
// # Usage
//
//	engine, err := suitability.New(classifier, table)
//	if err != nil {
//	    return err
//	}
//	rec, err := engine.Recommend(query)
//	fmt.Println(rec.Predicted.Name)
//	for _, e := range rec.Report.Top(3) {
//	    fmt.Printf("%-12s %6.2f\n", e.Name, e.Probability)
//	}
//
// The classifier's own prediction and the top of the report are computed
// independently and may disagree at the margin; both are returned.
//
// # Capabilities
//
// Scoring needs access to the classifier's training data. Classifiers that
// implement NeighborQuerier get a full report; any other Classifier still
// yields a prediction, with an empty report.
//
// # Concurrency
//
// An Engine is immutable after New and safe for concurrent use. New computes
// the class centroids eagerly so no request ever races their initialization.
// RecommendBatch fans a slice of queries out over a bounded worker pool.
package suitability
