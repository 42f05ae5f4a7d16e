package models

import "site-valuation/internal/config"

// ScenarioRequest is the body for running a full scenario.
type ScenarioRequest struct {
	Config  config.Config   `json:"config" binding:"required"`
	Options ScenarioOptions `json:"options,omitempty"`
}

// ScenarioOptions tunes the response payload.
type ScenarioOptions struct {
	// IncludeHourlyProfiles adds the full 8760 per-technology series to the
	// response. The response grows by roughly 1 MB per technology.
	IncludeHourlyProfiles bool `json:"include_hourly_profiles,omitempty"`
}

// CalculateRequest is the body for a single-technology calculation. The
// technology itself comes from the URL path.
type CalculateRequest struct {
	Config  config.Config   `json:"config" binding:"required"`
	Options ScenarioOptions `json:"options,omitempty"`
}

// ProjectRequest creates or updates a stored project.
type ProjectRequest struct {
	Name   string        `json:"name" binding:"required"`
	Config config.Config `json:"config" binding:"required"`
}
