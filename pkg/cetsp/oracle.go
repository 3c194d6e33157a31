package cetsp

import "context"

// Mode selects whether the oracle solves a closed tour or a fixed-endpoint
// path.
type Mode int

const (
	// ModeTour requests the shortest closed tour through the sequence.
	ModeTour Mode = iota
	// ModePath requests the shortest path from Start to End through the
	// sequence, in order.
	ModePath
)

// SOCPRequest is the input to a SOCPOracle.Solve call: an ordered sequence
// of disks and, for ModePath, the fixed path endpoints.
type SOCPRequest struct {
	Sequence []Disk
	Mode     Mode
	Start    *Point
	End      *Point

	// Tol is the caller-provided tolerance: feasibility_tol for disk
	// containment, and the target precision in length.
	Tol float64
}

// SOCPResult is the output of a SOCPOracle.Solve call.
type SOCPResult struct {
	Length    float64
	HitPoints []Point
}

// SOCPOracle computes the optimal tour/path length and hit points for a
// fixed, ordered disk sequence. Implementations must be deterministic for a
// fixed (request, tolerance) up to that tolerance, and must return
// ErrBackendUnavailable if their backend cannot be reached, or a wrapped
// ErrNumeric if they fail to converge within Tol.
type SOCPOracle interface {
	Solve(ctx context.Context, req SOCPRequest) (SOCPResult, error)
}

// TSPRequest is the input to a TSPOracle.Solve call.
type TSPRequest struct {
	Points []Point
}

// TSPOracle computes a permutation of the given points approximating the
// shortest closed tour through them. Implementations must return
// ErrBackendUnavailable if their backend cannot be reached.
type TSPOracle interface {
	Solve(ctx context.Context, req TSPRequest) ([]int, error)
}
