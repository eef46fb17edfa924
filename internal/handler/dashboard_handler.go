package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojt-tracker-api/internal/dto"
	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
	"github.com/ojtrack/ojt-tracker-api/pkg/response"
)

type ledgerService interface {
	StudentStats(ctx context.Context, subjectID string) (*dto.StudentStatsResponse, error)
	History(ctx context.Context, subjectID string) ([]models.TimeLog, error)
	Today(ctx context.Context, subjectID string) (*models.TodayLog, error)
	CohortOverview(ctx context.Context, course string) (*dto.CohortOverviewResponse, error)
	CohortProgress(ctx context.Context, course string) ([]dto.StudentProgressRow, error)
	CohortSubmissions(ctx context.Context, course string) ([]models.SubmissionRecord, error)
	StudentDetail(ctx context.Context, subjectID, expectedCourse string) (*dto.StudentDetailResponse, error)
	AdminOverview(ctx context.Context) (*dto.AdminOverviewResponse, error)
}

type activityService interface {
	Recent(ctx context.Context, subjectID string, limit int) ([]models.ActivityItem, error)
}

// DashboardHandler exposes the aggregated student, coordinator and admin views.
type DashboardHandler struct {
	ledger   ledgerService
	activity activityService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(ledger ledgerService, activity activityService) *DashboardHandler {
	return &DashboardHandler{ledger: ledger, activity: activity}
}

// Stats godoc
// @Summary Aggregate progress stats for the current subject
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	stats, err := h.ledger.StudentStats(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// History godoc
// @Summary Full session history, newest first
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/logs [get]
func (h *DashboardHandler) History(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	logs, err := h.ledger.History(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}

// Today godoc
// @Summary Daily roll-up for the current local date
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/logs/today [get]
func (h *DashboardHandler) Today(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	today, err := h.ledger.Today(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, today, nil)
}

// Activity godoc
// @Summary Recent activity feed
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Maximum feed items"
// @Success 200 {object} response.Envelope
// @Router /me/activity [get]
func (h *DashboardHandler) Activity(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	feed, err := h.activity.Recent(c.Request.Context(), claims.SubjectID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feed, nil)
}

// CohortOverview godoc
// @Summary Course-level summary for the coordinator's cohort
// @Tags Cohort
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cohort/overview [get]
func (h *DashboardHandler) CohortOverview(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	overview, err := h.ledger.CohortOverview(c.Request.Context(), claims.Course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// CohortStudents godoc
// @Summary Per-student progress table for the coordinator's cohort
// @Tags Cohort
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cohort/students [get]
func (h *DashboardHandler) CohortStudents(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	rows, err := h.ledger.CohortProgress(c.Request.Context(), claims.Course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// CohortSubmissions godoc
// @Summary Document submissions across the coordinator's cohort
// @Tags Cohort
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cohort/submissions [get]
func (h *DashboardHandler) CohortSubmissions(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	records, err := h.ledger.CohortSubmissions(c.Request.Context(), claims.Course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// StudentDetail godoc
// @Summary Full logs and documents for one student
// @Tags Cohort
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /cohort/students/{id} [get]
func (h *DashboardHandler) StudentDetail(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	// Admins see any student; coordinators only their own course.
	expectedCourse := claims.Course
	if claims.Role == models.RoleAdmin {
		expectedCourse = ""
	}
	detail, err := h.ledger.StudentDetail(c.Request.Context(), c.Param("id"), expectedCourse)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// AdminOverview godoc
// @Summary Directory-wide totals for the admin view
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/overview [get]
func (h *DashboardHandler) AdminOverview(c *gin.Context) {
	overview, err := h.ledger.AdminOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}
