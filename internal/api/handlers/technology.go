package handlers

import (
	"net/http"

	"site-valuation/internal/api/models"
	"site-valuation/internal/model"
	"site-valuation/internal/scenario"

	"github.com/gin-gonic/gin"
)

// TechnologyHandler serves technology metadata and single-technology
// calculations.
type TechnologyHandler struct{}

func NewTechnologyHandler() *TechnologyHandler {
	return &TechnologyHandler{}
}

// ListTechnologies handles GET /api/v1/technologies.
func (h *TechnologyHandler) ListTechnologies(c *gin.Context) {
	c.JSON(http.StatusOK, models.TechnologyListResponse{
		Technologies: model.AllTechnologies(),
	})
}

// Calculate handles POST /api/v1/calculate/:technology. It simulates one
// technology in isolation against the request's tariff and baseline.
func (h *TechnologyHandler) Calculate(c *gin.Context) {
	tech, err := model.ParseTechnology(c.Param("technology"))
	if err != nil {
		respondError(c, http.StatusNotFound, "UNKNOWN_TECHNOLOGY", err)
		return
	}

	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	req.Config.ApplyDefaults()
	sc, err := req.Config.ToScenario()
	if err != nil {
		respondScenarioError(c, err)
		return
	}

	profile, summary, err := scenario.Calculate(tech, sc)
	if err != nil {
		respondScenarioError(c, err)
		return
	}

	resp := models.CalculateResponse{Technology: tech, Summary: summary}
	if req.Options.IncludeHourlyProfiles {
		resp.Profile = profile
	}
	c.JSON(http.StatusOK, resp)
}
