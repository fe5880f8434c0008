package suitability

import "fmt"

// Entry is the suitability of one class for a query.
type Entry struct {
	Label       ClassID `json:"label"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"` // suitability in [0, 100]
}

// Report holds one Entry per class, sorted by Probability descending and by
// ascending Label among equal probabilities.
type Report []Entry

// Top returns the first n entries, or the whole report when n is out of range.
func (r Report) Top(n int) Report {
	if n <= 0 || n >= len(r) {
		return r
	}

	return r[:n]
}

// Find returns the entry for label.
func (r Report) Find(label ClassID) (Entry, bool) {
	for _, e := range r {
		if e.Label == label {
			return e, true
		}
	}

	return Entry{}, false
}

// Prediction is the classifier's own answer for a query.
type Prediction struct {
	Label ClassID `json:"label"`
	Name  string  `json:"name"`
}

// Recommendation bundles the classifier's prediction with the suitability
// report. The two are computed independently; Report[0] need not equal
// Predicted.
type Recommendation struct {
	Predicted Prediction `json:"predicted"`
	Report    Report     `json:"probabilities"`
}

// String returns a one-line summary of the recommendation.
func (r Recommendation) String() string {
	if len(r.Report) == 0 {
		return fmt.Sprintf("Recommendation{Predicted: %s (%d)}", r.Predicted.Name, r.Predicted.Label)
	}

	top := r.Report[0]

	return fmt.Sprintf("Recommendation{Predicted: %s (%d), Top: %s %.2f, Classes: %d}",
		r.Predicted.Name, r.Predicted.Label, top.Name, top.Probability, len(r.Report))
}
