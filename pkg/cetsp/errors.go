package cetsp

import "errors"

// Sentinel errors for the public API. Callers should compare with
// errors.Is rather than string matching; functions that return one of these
// typically wrap it with fmt.Errorf("%w: ...") for additional context.
var (
	// ErrInvalidInstance is returned for an empty closed-tour request or
	// conflicting start/end endpoints.
	ErrInvalidInstance = errors.New("cetsp: invalid instance")

	// ErrBackendUnavailable is returned by an oracle whose external solver
	// is missing or unlicensed. SOCP callers treat this as fatal; TSP
	// callers may recover via the fallback 2-opt heuristic when
	// HeuristicOptions.FallbackIfNoTSPBackend is set.
	ErrBackendUnavailable = errors.New("cetsp: backend unavailable")

	// ErrNumeric is returned when the SOCP oracle fails to converge to
	// tolerance. The engine treats this as non-fatal: the child whose
	// solve failed is dropped, Stats.NumericFailures is incremented and a
	// warning is appended to Stats.
	ErrNumeric = errors.New("cetsp: numeric convergence failure")

	// ErrDuplicate is returned by PartialSolution.Insert when the disk is
	// already present in the sequence.
	ErrDuplicate = errors.New("cetsp: duplicate disk index")

	// ErrInternalInvariant marks an assertion failure (duplicate insert
	// slipping past a caller check, non-unique indices surfacing from a
	// corrupted partial solution). Treated as fatal by the engine.
	ErrInternalInvariant = errors.New("cetsp: internal invariant violated")
)
