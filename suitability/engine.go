package suitability

import (
	"fmt"

	"github.com/arloliu/cropfit/internal/options"
	"github.com/arloliu/cropfit/internal/pool"
	"github.com/arloliu/cropfit/names"
	"github.com/arloliu/cropfit/refset"
)

// Classifier predicts a class label for a scaled query vector.
type Classifier interface {
	Predict(q []float64) (int, error)
}

// NeighborQuerier is the capability a Classifier needs for suitability
// scoring: read access to the training data it was fitted on.
type NeighborQuerier interface {
	References() *refset.Set
}

// Engine produces recommendations for scaled query vectors.
type Engine struct {
	clf   Classifier
	refs  *refset.Set // nil when clf is not a NeighborQuerier
	names *names.Table
	cfg   Config
}

// New creates an Engine for clf. When clf implements NeighborQuerier, the
// class centroids of its reference set are computed before New returns.
func New(clf Classifier, table *names.Table, opts ...Option) (*Engine, error) {
	if clf == nil {
		return nil, ErrNilClassifier
	}

	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	e := &Engine{clf: clf, names: table, cfg: cfg}

	nq, ok := clf.(NeighborQuerier)
	if !ok {
		cfg.Logger.Info("classifier cannot be queried for neighbors, reports will be empty")
		return e, nil
	}

	e.refs = nq.References()
	if e.refs == nil {
		return nil, fmt.Errorf("%w: classifier has no reference set", ErrEmptyReferenceSet)
	}
	e.refs.Centroids()

	if table.Len() != e.refs.ClassCount() {
		cfg.Logger.Warn("name table does not cover every class",
			"names", table.Len(), "classes", e.refs.ClassCount())
	}
	cfg.Logger.Debug("suitability engine ready",
		"points", e.refs.Len(),
		"classes", e.refs.ClassCount(),
		"fingerprint", fmt.Sprintf("%016x", e.refs.Fingerprint()))

	return e, nil
}

// SupportsNeighborQuery reports whether the engine produces non-empty reports.
func (e *Engine) SupportsNeighborQuery() bool {
	return e.refs != nil
}

// Score computes the suitability report for q. It returns an empty report
// when the classifier lacks the NeighborQuerier capability and
// ErrEmptyReferenceSet when the reference set has no points.
func (e *Engine) Score(q []float64) (Report, error) {
	if e.refs == nil {
		return Report{}, nil
	}
	if e.refs.Len() == 0 {
		return nil, ErrEmptyReferenceSet
	}
	if len(q) != e.refs.Dim() {
		return nil, fmt.Errorf("%w: query has %d values, want %d",
			refset.ErrDimensionMismatch, len(q), e.refs.Dim())
	}

	classes := e.refs.ClassCount()

	neighbor, releaseNeighbor := pool.GetZeroedFloat64Slice(classes)
	defer releaseNeighbor()
	k, err := accumulateNeighbors(neighbor, e.refs, q, e.cfg.NeighborCap)
	if err != nil {
		return nil, err
	}

	baseline, releaseBaseline := pool.GetFloat64Slice(classes)
	defer releaseBaseline()
	baselineInto(baseline, e.refs.Centroids(), q)

	report := Combine(neighbor, baseline, e.names, e.cfg.Precision)
	e.cfg.Logger.Debug("scored query", "neighbors", k, "top", report[0].Name, "probability", report[0].Probability)

	return report, nil
}

// Predict returns the classifier's own prediction for q.
func (e *Engine) Predict(q []float64) (Prediction, error) {
	label, err := e.clf.Predict(q)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}

	name, ok := e.names.Name(label)
	if !ok {
		name = fmt.Sprintf("Unknown label: %d", label)
	}

	return Prediction{Label: ClassID(label), Name: name}, nil
}

// Recommend returns both the classifier's prediction and the suitability
// report for q.
func (e *Engine) Recommend(q []float64) (Recommendation, error) {
	report, err := e.Score(q)
	if err != nil {
		return Recommendation{}, fmt.Errorf("score: %w", err)
	}

	predicted, err := e.Predict(q)
	if err != nil {
		return Recommendation{}, err
	}

	return Recommendation{Predicted: predicted, Report: report}, nil
}
