package sim

import (
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

// Simulator produces a full-year TechnologyProfile from its parameters and
// the shared immutable tariff schedule. Implementations are pure functions
// of their inputs and safe to run concurrently with each other.
type Simulator interface {
	Technology() model.Technology
	Simulate(sched *tariff.Schedule) (*model.TechnologyProfile, error)
}

// inWindow checks whether hour is in [start, end) on a 24h clock.
// start == end is an empty window; start > end wraps across midnight.
func inWindow(hour, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
