package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	"github.com/ojtrack/ojt-tracker-api/internal/service"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
	"github.com/ojtrack/ojt-tracker-api/pkg/response"
)

type documentService interface {
	List(ctx context.Context, subjectID string) ([]models.Document, error)
	Upload(ctx context.Context, subjectID string, req service.UploadDocumentRequest) (*service.UploadResult, error)
	Delete(ctx context.Context, subjectID, docID string) error
}

// DocumentHandler exposes document submission endpoints.
type DocumentHandler struct {
	documents documentService
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(documents documentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// List godoc
// @Summary List the current subject's documents
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	docs, err := h.documents.List(c.Request.Context(), claims.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, nil)
}

// Upload godoc
// @Summary Submit a document link
// @Description Links on unrecognised hosts return requires_confirmation=true;
// @Description resubmit with confirmed=true to proceed anyway.
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body service.UploadDocumentRequest true "Document payload"
// @Success 200 {object} response.Envelope "Confirmation required"
// @Success 201 {object} response.Envelope
// @Router /me/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.documents.Upload(c.Request.Context(), claims.SubjectID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.RequiresConfirmation {
		response.JSON(c, http.StatusOK, result, nil)
		return
	}
	response.Created(c, result.Document)
}

// Delete godoc
// @Summary Delete one of the current subject's documents
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 204
// @Router /me/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.documents.Delete(c.Request.Context(), claims.SubjectID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
