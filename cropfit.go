// Package cropfit recommends crops for a field from seven soil and climate
// measurements and scores how suitable every known crop is.
//
// A Recommender wraps a trained k-nearest-neighbor classifier loaded from a
// model artifact. For each query it returns the predicted crop and a report
// ranking every crop by a 0-100 suitability value that blends
// inverse-distance evidence from the nearest training samples with a
// baseline from each crop's centroid.
//
// # Core Features
//
//   - Deterministic scoring: identical inputs give identical reports
//   - Single model file bundling reference set, crop names and scaler
//   - Optional artifact compression (None, Zstd, S2, LZ4)
//   - Concurrent batch scoring with a bounded worker pool
//
// # Basic Usage
//
//	rec, err := cropfit.Open("crops.cfit")
//	if err != nil {
//	    return err
//	}
//
//	res, err := rec.Recommend(feature.Measurements{
//	    N: 90, P: 42, K: 43,
//	    Temperature: 20.9, Humidity: 82, PH: 6.5, Rainfall: 202.9,
//	})
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println(res.Predicted.Name)
//	for _, e := range res.Report.Top(3) {
//	    fmt.Printf("%s %.2f\n", e.Name, e.Probability)
//	}
//
// # Package Structure
//
// This package is a thin facade over the artifact, feature, knn and
// suitability packages. Use suitability directly to score pre-scaled vectors
// or to plug in a different classifier.
package cropfit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/cropfit/artifact"
	"github.com/arloliu/cropfit/feature"
	"github.com/arloliu/cropfit/internal/options"
	"github.com/arloliu/cropfit/suitability"
)

// Config holds the Recommender settings.
type Config struct {
	// SkipRangeCheck accepts measurements outside feature.Limits. Non-finite
	// values are always rejected.
	SkipRangeCheck bool
	// Logger is passed on to the suitability engine.
	Logger *slog.Logger
	// Engine holds extra suitability engine options.
	Engine []suitability.Option
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithoutRangeCheck disables the feature.Limits check on measurements.
func WithoutRangeCheck() Option {
	return options.NoError(func(cfg *Config) {
		cfg.SkipRangeCheck = true
	})
}

// WithLogger sets the logger used by the recommender and its engine.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Logger = logger
	})
}

// WithEngineOptions appends suitability engine options, e.g.
// suitability.WithPrecision.
func WithEngineOptions(opts ...suitability.Option) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Engine = append(cfg.Engine, opts...)
	})
}

// Recommender turns raw field measurements into crop recommendations.
// It is safe for concurrent use.
type Recommender struct {
	engine *suitability.Engine
	scaler feature.Scaler
	model  *artifact.Model
	info   artifact.Info
	cfg    Config
}

// Open loads the model artifact at path and builds a Recommender from it.
func Open(path string, opts ...Option) (*Recommender, error) {
	m, info, err := artifact.LoadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := New(m, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.info = info

	return r, nil
}

// New builds a Recommender from an in-memory model.
func New(m *artifact.Model, opts ...Option) (*Recommender, error) {
	if m == nil {
		return nil, errors.New("cropfit: nil model")
	}

	cfg := Config{Logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	clf, err := m.Classifier()
	if err != nil {
		return nil, err
	}
	table, err := m.Names()
	if err != nil {
		return nil, err
	}
	scaler, err := m.Scaler()
	if err != nil {
		return nil, err
	}

	engineOpts := append([]suitability.Option{suitability.WithLogger(cfg.Logger)}, cfg.Engine...)
	engine, err := suitability.New(clf, table, engineOpts...)
	if err != nil {
		return nil, err
	}

	return &Recommender{
		engine: engine,
		scaler: scaler,
		model:  m,
		cfg:    cfg,
	}, nil
}

// Recommend validates and scales m, then scores it.
func (r *Recommender) Recommend(m feature.Measurements) (suitability.Recommendation, error) {
	q, err := r.query(m)
	if err != nil {
		return suitability.Recommendation{}, err
	}

	return r.engine.Recommend(q)
}

// RecommendBatch scores many measurements with at most workers goroutines.
// Results are in input order. The first failure cancels the remaining work.
func (r *Recommender) RecommendBatch(ctx context.Context, ms []feature.Measurements, workers int) ([]suitability.Recommendation, error) {
	queries := make([][]float64, len(ms))
	for i, m := range ms {
		q, err := r.query(m)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		queries[i] = q
	}

	return r.engine.RecommendBatch(ctx, queries, workers)
}

func (r *Recommender) query(m feature.Measurements) ([]float64, error) {
	if r.cfg.SkipRangeCheck {
		v := m.Vector()
		if err := v.Validate(); err != nil {
			return nil, err
		}
	} else if err := m.Validate(); err != nil {
		return nil, err
	}

	scaled := r.scaler.Transform(m.Vector())
	r.cfg.Logger.Debug("scaled query", "raw", m, "scaled", scaled)

	return scaled.Slice(), nil
}

// Engine returns the underlying suitability engine.
func (r *Recommender) Engine() *suitability.Engine {
	return r.engine
}

// Scaler returns the fitted scaler applied to measurements.
func (r *Recommender) Scaler() feature.Scaler {
	return r.scaler
}

// Model returns the model the recommender was built from.
func (r *Recommender) Model() *artifact.Model {
	return r.model
}

// Info returns the artifact header of the loaded model. It is the zero Info
// for recommenders built with New.
func (r *Recommender) Info() artifact.Info {
	return r.info
}
