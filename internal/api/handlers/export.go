package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"site-valuation/internal/export"
	"site-valuation/internal/store"

	"github.com/gin-gonic/gin"
)

// ExportHandler renders stored projects to downloadable report files.
type ExportHandler struct {
	store *store.Store
}

func NewExportHandler(s *store.Store) *ExportHandler {
	return &ExportHandler{store: s}
}

// ExportProject handles GET /api/v1/users/:user/projects/:id/export
// ?format=csv|summary|pdf. The scenario is recomputed, rendered into a temp
// file and streamed back as an attachment.
func (h *ExportHandler) ExportProject(c *gin.Context) {
	p, err := h.store.Get(c.Param("user"), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")

	res, err := runScenario(p.Config, format == "csv")
	if err != nil {
		respondScenarioError(c, err)
		return
	}

	dir, err := os.MkdirTemp("", "site-valuation-export")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err)
		return
	}
	defer os.RemoveAll(dir)

	var path, name string
	switch format {
	case "csv":
		name = p.ID + "_hourly.csv"
		path = filepath.Join(dir, name)
		err = export.WriteHourlyCSV(path, res)
	case "summary":
		name = p.ID + "_summary.csv"
		path = filepath.Join(dir, name)
		err = export.WriteSummaryCSV(path, res)
	case "pdf":
		name = p.ID + "_summary.pdf"
		path = filepath.Join(dir, name)
		err = export.WriteSummaryPDF(path, p.Name, res)
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT",
			fmt.Errorf("unsupported format %q (want csv, summary or pdf)", format))
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err)
		return
	}

	c.FileAttachment(path, name)
}
