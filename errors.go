package main

import "github.com/cockroachdb/errors"

// Per-file failures. None of these abort a batch; the processor records them
// against the file and moves on.
var (
	// ErrNoMatch means no instrument's keywords appear in the name.
	ErrNoMatch = errors.New("no instrument matches name")

	// ErrNoSynthesis means the instrument matched but no canonical name could be built.
	ErrNoSynthesis = errors.New("no canonical name for instrument")

	// ErrAliasInconsistency means a keyword match could not be traced back to
	// any keyword or alias. The catalog is malformed.
	ErrAliasInconsistency = errors.New("keyword match not found in alias table")

	// ErrPathExhausted means every numbered variant of a destination was taken.
	ErrPathExhausted = errors.New("too many conflicting names")

	// ErrRenameFailed wraps the underlying I/O error of a failed move.
	ErrRenameFailed = errors.New("rename failed")

	// ErrEmptyMatcher is returned when a matcher is requested for zero literals.
	ErrEmptyMatcher = errors.New("matcher needs at least one literal")

	// ErrInvalidCatalog marks catalog validation failures.
	ErrInvalidCatalog = errors.New("invalid instrument catalog")
)
