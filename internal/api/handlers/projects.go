package handlers

import (
	"errors"
	"net/http"

	"site-valuation/internal/api/models"
	"site-valuation/internal/store"

	"github.com/gin-gonic/gin"
)

// ProjectsHandler exposes per-user CRUD over the persistent project store
// plus a run endpoint that simulates a stored configuration.
type ProjectsHandler struct {
	store *store.Store
}

func NewProjectsHandler(s *store.Store) *ProjectsHandler {
	return &ProjectsHandler{store: s}
}

// ListProjects handles GET /api/v1/users/:user/projects.
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.store.List(c.Param("user"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: projects})
}

// GetProject handles GET /api/v1/users/:user/projects/:id.
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	p, err := h.store.Get(c.Param("user"), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProjectResponse{Project: p})
}

// CreateProject handles POST /api/v1/users/:user/projects. The config is
// validated before anything is written.
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	req.Config.ApplyDefaults()
	if err := req.Config.Validate(); err != nil {
		respondScenarioError(c, err)
		return
	}

	p, err := h.store.Create(c.Param("user"), req.Name, req.Config)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ProjectResponse{Project: p})
}

// UpdateProject handles PUT /api/v1/users/:user/projects/:id.
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	req.Config.ApplyDefaults()
	if err := req.Config.Validate(); err != nil {
		respondScenarioError(c, err)
		return
	}

	p, err := h.store.Update(c.Param("user"), c.Param("id"), req.Name, req.Config)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProjectResponse{Project: p})
}

// DeleteProject handles DELETE /api/v1/users/:user/projects/:id.
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	if err := h.store.Delete(c.Param("user"), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RunProject handles POST /api/v1/users/:user/projects/:id/run. Results are
// always recomputed; only configurations are persisted.
func (h *ProjectsHandler) RunProject(c *gin.Context) {
	p, err := h.store.Get(c.Param("user"), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	includeHourly := c.Query("include_hourly_profiles") == "true"
	res, err := runScenario(p.Config, includeHourly)
	if err != nil {
		respondScenarioError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ScenarioResponse{
		Status: "completed",
		Result: res,
	})
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "PROJECT_NOT_FOUND", err)
	case errors.Is(err, store.ErrInvalidUser):
		respondError(c, http.StatusBadRequest, "INVALID_USER", err)
	default:
		respondError(c, http.StatusInternalServerError, "STORE_ERROR", err)
	}
}
