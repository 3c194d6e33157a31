package cetsp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gitrdm/gokando-cetsp/internal/parallel"
)

// monitoredSOCPOracle wraps an SOCPOracle with the node-expansion
// executor's stall watchdog and task statistics (§4.6): every Solve call
// registers with a DeadlockDetector for the call's duration and records
// its outcome on an ExecutionStats. This repurposes internal/parallel's
// generic task-monitoring machinery — built for goal-evaluation task
// pools — as a SOCP-stall watchdog: it only observes and counts, it never
// cancels an in-flight Solve call itself.
type monitoredSOCPOracle struct {
	inner SOCPOracle
	dd    *parallel.DeadlockDetector
	stats *parallel.ExecutionStats
}

func newMonitoredSOCPOracle(inner SOCPOracle, dd *parallel.DeadlockDetector, stats *parallel.ExecutionStats) *monitoredSOCPOracle {
	return &monitoredSOCPOracle{inner: inner, dd: dd, stats: stats}
}

func (m *monitoredSOCPOracle) Solve(ctx context.Context, req SOCPRequest) (SOCPResult, error) {
	callID := uuid.NewString()
	m.dd.RegisterCall(callID, fmt.Sprintf("socp solve over %d disks", len(req.Sequence)))
	defer m.dd.UnregisterCall(callID)

	m.stats.RecordSOCPCallSubmitted()
	start := time.Now()

	result, err := m.inner.Solve(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			m.stats.RecordSOCPCallCancelled()
		} else {
			m.stats.RecordSOCPCallFailed(err)
		}
		return result, err
	}
	m.stats.RecordSOCPCallCompleted(time.Since(start))
	return result, nil
}

// drainStallWarnings copies any accumulated deadlock-watchdog alerts into
// stats as warnings, without blocking if none are pending, and classifies
// each alert onto the run's ExecutionStats counters.
func drainStallWarnings(dd *parallel.DeadlockDetector, stats *Stats) {
	alerts := dd.GetAlerts()
	for {
		select {
		case alert := <-alerts:
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("socp stall watchdog: %s", alert.Description))
			switch alert.Type {
			case parallel.AlertCallTimeout:
				stats.Execution.RecordTimeout()
			case parallel.AlertPotentialDeadlock, parallel.AlertSystemStall:
				stats.Execution.RecordPotentialDeadlock()
			}
		default:
			return
		}
	}
}
