package engine

import (
	"time"
)

// TimeManager tracks the wall-clock and node budget of one search.
type TimeManager struct {
	maximumTime time.Duration // Zero means no time limit
	maxNodes    uint64        // Zero means no node limit
	startTime   time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init initializes the time manager for a new search.
func (tm *TimeManager) Init(limits SearchLimits) {
	tm.startTime = time.Now()
	tm.maximumTime = limits.MoveTime
	tm.maxNodes = limits.Nodes
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// MaximumTime returns the maximum time allowed, or zero for none.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}

// ShouldStop returns true once either budget is spent.
func (tm *TimeManager) ShouldStop(nodes uint64) bool {
	if tm.maxNodes > 0 && nodes >= tm.maxNodes {
		return true
	}
	return tm.maximumTime > 0 && tm.Elapsed() >= tm.maximumTime
}

// CanStartIteration returns false when the next, deeper iteration would most
// likely not finish: more than half of the time is already used.
func (tm *TimeManager) CanStartIteration() bool {
	if tm.maximumTime == 0 {
		return true
	}
	elapsed := tm.Elapsed()
	return tm.maximumTime-elapsed >= elapsed
}
