package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	"github.com/ojtrack/ojt-tracker-api/internal/service"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
	"github.com/ojtrack/ojt-tracker-api/pkg/response"
)

type exportService interface {
	CohortProgress(ctx context.Context, course string, format service.ExportFormat) (*service.ExportFile, error)
}

// ExportHandler streams cohort progress reports.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// CohortProgress godoc
// @Summary Download the cohort progress table
// @Tags Cohort
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param course query string false "Course (admin only; coordinators use their own)"
// @Success 200 {file} file
// @Router /cohort/export [get]
func (h *ExportHandler) CohortProgress(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	course := claims.Course
	if claims.Role == models.RoleAdmin {
		course = strings.TrimSpace(c.Query("course"))
	}

	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	file, err := h.exports.CohortProgress(c.Request.Context(), course, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
