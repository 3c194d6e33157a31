package cetsp

import (
	"sync"
	"time"

	"github.com/gitrdm/gokando-cetsp/internal/parallel"
)

// Reason records why an Optimize call stopped (§5).
type Reason string

const (
	ReasonOptimal     Reason = "optimal"
	ReasonGapReached  Reason = "gap_reached"
	ReasonTimelimit   Reason = "timelimit"
	ReasonCancelled   Reason = "cancelled"
	ReasonFrontierDry Reason = "frontier_dry"
)

// BoundSample is one (elapsed, bound) point in a Stats bound trajectory.
type BoundSample struct {
	Elapsed time.Duration
	Bound   float64
}

// Stats accumulates counters and timing for one Optimize run. All
// mutators are safe for concurrent use by the engine's worker goroutines
// (§4.6/§5).
type Stats struct {
	mu sync.Mutex

	StartTime time.Time
	EndTime   time.Time
	Reason    Reason

	NodesExplored   int64
	BranchesCreated int64
	PrunedByBound   int64
	PrunedByRule    int64
	NumericFailures int64

	LowerBoundTrajectory []BoundSample
	UpperBoundTrajectory []BoundSample

	Warnings []string

	// Execution carries per-call SOCP oracle timing plus worker/frontier
	// and watchdog samples for the run, collected by the
	// monitoredSOCPOracle wrapper and Engine.worker (§4.6).
	Execution *parallel.ExecutionStats
}

// NewStats starts a Stats clock.
func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) recordNodeExplored() {
	s.mu.Lock()
	s.NodesExplored++
	s.mu.Unlock()
}

func (s *Stats) recordBranch(n int) {
	s.mu.Lock()
	s.BranchesCreated += int64(n)
	s.mu.Unlock()
}

func (s *Stats) recordPrunedByBound() {
	s.mu.Lock()
	s.PrunedByBound++
	s.mu.Unlock()
}

func (s *Stats) recordPrunedByRule() {
	s.mu.Lock()
	s.PrunedByRule++
	s.mu.Unlock()
}

func (s *Stats) recordNumericFailure(warning string) {
	s.mu.Lock()
	s.NumericFailures++
	s.Warnings = append(s.Warnings, warning)
	s.mu.Unlock()
}

func (s *Stats) recordLowerBound(lb float64) {
	s.mu.Lock()
	s.LowerBoundTrajectory = append(s.LowerBoundTrajectory, BoundSample{Elapsed: time.Since(s.StartTime), Bound: lb})
	s.mu.Unlock()
}

func (s *Stats) recordUpperBound(ub float64) {
	s.mu.Lock()
	s.UpperBoundTrajectory = append(s.UpperBoundTrajectory, BoundSample{Elapsed: time.Since(s.StartTime), Bound: ub})
	s.mu.Unlock()
}

func (s *Stats) finish(reason Reason) {
	s.mu.Lock()
	s.EndTime = time.Now()
	s.Reason = reason
	s.mu.Unlock()
}

// Elapsed returns the wall-clock duration of the run so far (or in total,
// once finished).
func (s *Stats) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
