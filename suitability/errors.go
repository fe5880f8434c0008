package suitability

import "errors"

var (
	// ErrEmptyReferenceSet is returned when scoring against a reference set
	// with no training points. It indicates a misconfigured model artifact.
	ErrEmptyReferenceSet = errors.New("reference set is empty")
	// ErrNilClassifier is returned by New when no classifier is given.
	ErrNilClassifier = errors.New("classifier is nil")
	// ErrInvalidNeighborCap is returned for a non-positive neighbor cap.
	ErrInvalidNeighborCap = errors.New("neighbor cap must be positive")
)
