package models

import (
	"site-valuation/internal/model"
	"site-valuation/internal/store"
)

// ScenarioResponse wraps a completed scenario run.
type ScenarioResponse struct {
	Status string                `json:"status"`
	Result *model.ScenarioResult `json:"result"`
}

// CalculateResponse wraps a single-technology calculation. Profile is only
// present when the request asked for hourly series.
type CalculateResponse struct {
	Technology model.Technology         `json:"technology"`
	Summary    model.TechnologySummary  `json:"summary"`
	Profile    *model.TechnologyProfile `json:"profile,omitempty"`
}

// TechnologyListResponse lists the supported technology identifiers.
type TechnologyListResponse struct {
	Technologies []model.Technology `json:"technologies"`
}

// ProjectResponse wraps one stored project.
type ProjectResponse struct {
	Project *store.Project `json:"project"`
}

// ProjectListResponse lists all stored projects.
type ProjectListResponse struct {
	Projects []*store.Project `json:"projects"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
