package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Scrape taxonomy. Errors carry one of these marks so the transport layer
// can map them without string matching. Per-tournament failures are isolated
// by the callers; only single-entity queries propagate them.
var (
	// ErrFetch marks network or non-2xx failures reaching a source page.
	ErrFetch = crerr.New("fetch failure")
	// ErrParse marks an unexpected absence of a required structural marker.
	// Rare and logged; extraction otherwise degrades to partial records.
	ErrParse = crerr.New("parse failure")
	// ErrResolution marks a tournament whose event id or widget day index
	// could not be determined. The tournament is skipped, not the batch.
	ErrResolution = crerr.New("resolution failure")
)
