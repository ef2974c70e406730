package app

import "errors"

// Sentinel kinds for core invariant violations. Storage-level kinds
// (not found, duplicates) surface from the repository package unchanged.
var (
	// ErrPhaseViolation marks an action attempted outside its time window.
	ErrPhaseViolation = errors.New("action not allowed in the current hackathon phase")

	// ErrWeightInvariant marks a criterion write that would push the
	// hackathon's weight sum past the allowed bound.
	ErrWeightInvariant = errors.New("criteria weights must sum to at most 1")

	// ErrValidation marks malformed input: out-of-range values,
	// unordered dates, restricted file types.
	ErrValidation = errors.New("validation failed")
)
