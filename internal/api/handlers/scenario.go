package handlers

import (
	"errors"
	"net/http"

	"site-valuation/internal/api/models"
	"site-valuation/internal/config"
	"site-valuation/internal/model"
	"site-valuation/internal/scenario"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler runs ad-hoc scenario simulations.
type ScenarioHandler struct{}

func NewScenarioHandler() *ScenarioHandler {
	return &ScenarioHandler{}
}

// RunScenario handles POST /api/v1/simulate.
func (h *ScenarioHandler) RunScenario(c *gin.Context) {
	var req models.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	res, err := runScenario(req.Config, req.Options.IncludeHourlyProfiles)
	if err != nil {
		respondScenarioError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ScenarioResponse{
		Status: "completed",
		Result: res,
	})
}

// runScenario defaults, validates and executes a scenario config. Shared by
// the ad-hoc and project-backed endpoints.
func runScenario(cfg config.Config, includeHourly bool) (*model.ScenarioResult, error) {
	cfg.ApplyDefaults()
	sc, err := cfg.ToScenario()
	if err != nil {
		return nil, err
	}
	sc.IncludeHourlyProfiles = includeHourly
	return scenario.Run(sc)
}

// respondScenarioError maps domain error types onto HTTP codes. Parameter
// and configuration problems are the caller's fault; a balance violation is
// an internal inconsistency.
func respondScenarioError(c *gin.Context, err error) {
	var paramErr *model.InvalidParameterError
	var cfgErr *model.ConfigurationError
	var balanceErr *model.EnergyBalanceError

	switch {
	case errors.As(err, &paramErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PARAMETER",
				Message: err.Error(),
				Details: map[string]interface{}{
					"technology": paramErr.Technology,
					"param":      paramErr.Param,
				},
			},
		})
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
				Details: map[string]interface{}{"field": cfgErr.Field},
			},
		})
	case errors.As(err, &balanceErr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ENERGY_BALANCE_VIOLATION",
				Message: err.Error(),
				Details: map[string]interface{}{
					"hour":  balanceErr.Hour,
					"delta": balanceErr.Delta,
				},
			},
		})
	default:
		respondError(c, http.StatusInternalServerError, "SIMULATION_ERROR", err)
	}
}

func respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}
