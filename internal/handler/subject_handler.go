package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	"github.com/ojtrack/ojt-tracker-api/pkg/response"
)

type directoryService interface {
	ListUsers(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
}

// SubjectHandler exposes the admin user directory.
type SubjectHandler struct {
	directory directoryService
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(directory directoryService) *SubjectHandler {
	return &SubjectHandler{directory: directory}
}

// List godoc
// @Summary List registered users
// @Tags Admin
// @Produce json
// @Param role query string false "Filter by role"
// @Param course query string false "Filter by course"
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *SubjectHandler) List(c *gin.Context) {
	var filter models.SubjectFilter
	if raw := strings.ToUpper(strings.TrimSpace(c.Query("role"))); raw != "" {
		role := models.SubjectRole(raw)
		if role.Valid() {
			filter.Role = &role
		}
	}
	filter.Course = strings.TrimSpace(c.Query("course"))

	subjects, err := h.directory.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}
