package parallel

import (
	"context"
	"time"

	"testing"
)

func TestExecutionStats(t *testing.T) {
	stats := NewExecutionStats()

	if stats.SOCPCallsSubmitted != 0 {
		t.Errorf("expected 0 calls submitted initially, got %d", stats.SOCPCallsSubmitted)
	}

	stats.RecordSOCPCallSubmitted()
	if stats.SOCPCallsSubmitted != 1 {
		t.Errorf("expected 1 call submitted, got %d", stats.SOCPCallsSubmitted)
	}

	duration := 100 * time.Millisecond
	stats.RecordSOCPCallCompleted(duration)
	if stats.SOCPCallsCompleted != 1 {
		t.Errorf("expected 1 call completed, got %d", stats.SOCPCallsCompleted)
	}

	err := context.DeadlineExceeded
	stats.RecordSOCPCallFailed(err)
	if stats.SOCPCallsFailed != 1 {
		t.Errorf("expected 1 call failed, got %d", stats.SOCPCallsFailed)
	}
	if stats.LastError != err {
		t.Errorf("expected last error to be %v, got %v", err, stats.LastError)
	}

	stats.RecordSOCPCallCancelled()
	if stats.SOCPCallsCancelled != 1 {
		t.Errorf("expected 1 call cancelled, got %d", stats.SOCPCallsCancelled)
	}

	stats.RecordWorkerCount(5)
	if stats.PeakActiveWorkers != 5 {
		t.Errorf("expected peak active workers 5, got %d", stats.PeakActiveWorkers)
	}

	stats.RecordQueueDepth(10)
	if stats.PeakFrontierDepth != 10 {
		t.Errorf("expected peak frontier depth 10, got %d", stats.PeakFrontierDepth)
	}

	stats.RecordTimeout()
	if stats.TimeoutEvents != 1 {
		t.Errorf("expected 1 timeout event, got %d", stats.TimeoutEvents)
	}

	stats.RecordPotentialDeadlock()
	if stats.PotentialDeadlocks != 1 {
		t.Errorf("expected 1 potential deadlock, got %d", stats.PotentialDeadlocks)
	}

	stats.Finalize()
	if stats.TotalExecutionTime <= 0 {
		t.Errorf("expected positive total execution time, got %v", stats.TotalExecutionTime)
	}
}

func TestDeadlockDetector(t *testing.T) {
	dd := NewDeadlockDetector(100*time.Millisecond, 50*time.Millisecond)
	defer dd.Shutdown()

	// Register, update, and unregister a call; none of these should
	// panic or block, and a subsequent timeout check should find nothing
	// to report once unregistered.
	dd.RegisterCall("call1", "test call")
	dd.UpdateCall("call1")
	dd.UnregisterCall("call1")
}

func TestDeadlockDetectorTimeout(t *testing.T) {
	dd := NewDeadlockDetector(50*time.Millisecond, 25*time.Millisecond)
	defer dd.Shutdown()

	alerts := dd.GetAlerts()

	// Register a call and don't update it (simulates a stalled SOCP solve).
	dd.RegisterCall("slow-call", "slow call")

	select {
	case alert := <-alerts:
		if alert.Type != AlertCallTimeout {
			t.Errorf("expected timeout alert, got %v", alert.Type)
		}
		if alert.CallID != "slow-call" {
			t.Errorf("expected call ID 'slow-call', got %s", alert.CallID)
		}
	case <-time.After(200 * time.Millisecond):
		t.Error("expected timeout alert but none received")
	}
}
