package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojt-tracker-api/internal/middleware"
	"github.com/ojtrack/ojt-tracker-api/internal/models"
	"github.com/ojtrack/ojt-tracker-api/internal/service"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type fakeDocumentSrv struct {
	docs      []models.Document
	result    *service.UploadResult
	uploadErr error
	deleteErr error
	lastReq   service.UploadDocumentRequest
}

func (f *fakeDocumentSrv) List(context.Context, string) ([]models.Document, error) {
	return f.docs, nil
}

func (f *fakeDocumentSrv) Upload(_ context.Context, _ string, req service.UploadDocumentRequest) (*service.UploadResult, error) {
	f.lastReq = req
	return f.result, f.uploadErr
}

func (f *fakeDocumentSrv) Delete(context.Context, string, string) error {
	return f.deleteErr
}

func uploadContext(t *testing.T, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/me/documents", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{SubjectID: "stu-1", Role: models.RoleStudent})
	return c, rec
}

func TestDocumentHandlerUploadCreated(t *testing.T) {
	srv := &fakeDocumentSrv{result: &service.UploadResult{Document: &models.Document{ID: "doc-1", Title: "Report"}}}
	handler := NewDocumentHandler(srv)

	c, rec := uploadContext(t, service.UploadDocumentRequest{
		Title: "Report",
		Type:  "REPORT",
		Link:  "https://drive.google.com/x",
	})
	handler.Upload(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Report", srv.lastReq.Title)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "doc-1", envelope.Data["id"])
}

func TestDocumentHandlerUploadNeedsConfirmation(t *testing.T) {
	srv := &fakeDocumentSrv{result: &service.UploadResult{RequiresConfirmation: true}}
	handler := NewDocumentHandler(srv)

	c, rec := uploadContext(t, service.UploadDocumentRequest{
		Title: "Portfolio",
		Type:  "OTHER",
		Link:  "https://example.com/p.pdf",
	})
	handler.Upload(c)

	// Confirmation request is a 200, not a 201: nothing was created.
	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Data["requires_confirmation"])
}

func TestDocumentHandlerUploadValidationError(t *testing.T) {
	srv := &fakeDocumentSrv{uploadErr: appErrors.Clone(appErrors.ErrMissingField, "please enter a document title")}
	handler := NewDocumentHandler(srv)

	c, rec := uploadContext(t, service.UploadDocumentRequest{Type: "REPORT"})
	handler.Upload(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "MISSING_FIELD", envelope.Error["code"])
}

func TestDocumentHandlerUploadMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDocumentHandler(&fakeDocumentSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/me/documents", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{SubjectID: "stu-1"})

	handler.Upload(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentHandlerDelete(t *testing.T) {
	handler := NewDocumentHandler(&fakeDocumentSrv{})

	c, rec := authedContext(t, http.MethodDelete, "/me/documents/doc-1")
	c.Params = gin.Params{{Key: "id", Value: "doc-1"}}
	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDocumentHandlerDeleteMissing(t *testing.T) {
	handler := NewDocumentHandler(&fakeDocumentSrv{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "document not found")})

	c, rec := authedContext(t, http.MethodDelete, "/me/documents/doc-404")
	c.Params = gin.Params{{Key: "id", Value: "doc-404"}}
	handler.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
