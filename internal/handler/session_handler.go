package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojt-tracker-api/internal/dto"
	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
	"github.com/ojtrack/ojt-tracker-api/pkg/response"
)

type sessionService interface {
	State(ctx context.Context, subjectID string) (*dto.ClockStateResponse, error)
	ClockIn(ctx context.Context, subjectID string) (*models.TimeLog, error)
	ClockOut(ctx context.Context, subjectID string) (*models.TimeLog, error)
}

// SessionHandler exposes the clock-in/clock-out endpoints for students.
type SessionHandler struct {
	sessions sessionService
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(sessions sessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// State godoc
// @Summary Current clock state
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/clock [get]
func (h *SessionHandler) State(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	state, err := h.sessions.State(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// ClockIn godoc
// @Summary Open a new attendance session
// @Tags Sessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope "An active session already exists"
// @Router /me/clock-in [post]
func (h *SessionHandler) ClockIn(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	entry, err := h.sessions.ClockIn(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// ClockOut godoc
// @Summary Close the active attendance session
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "No active session"
// @Failure 422 {object} response.Envelope "Computed duration out of range"
// @Router /me/clock-out [post]
func (h *SessionHandler) ClockOut(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	entry, err := h.sessions.ClockOut(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}
