package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type documentRepository interface {
	ListBySubject(ctx context.Context, subjectID string) ([]models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, subjectID, docID string) (bool, error)
}

// UploadDocumentRequest is the submission form payload.
type UploadDocumentRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Link        string `json:"link" validate:"omitempty,url"`
	// Confirmed acknowledges an untrusted link host on resubmission.
	Confirmed bool `json:"confirmed"`
}

// UploadResult reports either the created document or that the caller must
// confirm an untrusted host first.
type UploadResult struct {
	Document             *models.Document `json:"document,omitempty"`
	RequiresConfirmation bool             `json:"requires_confirmation,omitempty"`
}

// DocumentService owns document submission and removal.
type DocumentService struct {
	repo         documentRepository
	cache        *CacheService
	validator    *validator.Validate
	logger       *zap.Logger
	trustedHosts []string
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(repo documentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, trustedHosts []string) *DocumentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{repo: repo, cache: cache, validator: validate, logger: logger, trustedHosts: trustedHosts}
}

// List returns the subject's documents, newest first.
func (s *DocumentService) List(ctx context.Context, subjectID string) ([]models.Document, error) {
	docs, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load documents")
	}
	return docs, nil
}

// Upload validates and stores a document link. Links on unrecognised hosts
// are not rejected outright: the first attempt returns a confirmation
// request and the caller resubmits with Confirmed set.
func (s *DocumentService) Upload(ctx context.Context, subjectID string, req UploadDocumentRequest) (*UploadResult, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Link = strings.TrimSpace(req.Link)

	if req.Title == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingField, "please enter a document title")
	}
	if req.Type == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingField, "please select a document type")
	}
	if req.Link == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingField, "please provide a document link")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "please enter a valid URL")
	}

	parsed, err := url.Parse(req.Link)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "please enter a valid URL")
	}

	if !s.trustedHost(parsed.Hostname()) && !req.Confirmed {
		return &UploadResult{RequiresConfirmation: true}, nil
	}

	doc := &models.Document{
		SubjectID: subjectID,
		Title:     req.Title,
		Type:      req.Type,
		Link:      req.Link,
	}
	if req.Description != "" {
		doc.Description = &req.Description
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to store document")
	}
	s.invalidateDashboards(ctx, subjectID)
	s.logger.Info("document uploaded",
		zap.String("subject_id", subjectID),
		zap.String("doc_id", doc.ID),
		zap.String("host", parsed.Hostname()))
	return &UploadResult{Document: doc}, nil
}

// Delete removes a document owned by the subject.
func (s *DocumentService) Delete(ctx context.Context, subjectID, docID string) error {
	deleted, err := s.repo.Delete(ctx, subjectID, docID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete document")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	s.invalidateDashboards(ctx, subjectID)
	return nil
}

// invalidateDashboards clears cached views whose document counts just
// changed. Stats and cohort rows are recomputed on the next read.
func (s *DocumentService) invalidateDashboards(ctx context.Context, subjectID string) {
	if !s.cache.Enabled() {
		return
	}
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("dash:student:%s:*", subjectID))
	_ = s.cache.Invalidate(ctx, "dash:cohort:*")
}

func (s *DocumentService) trustedHost(host string) bool {
	host = strings.ToLower(host)
	for _, trusted := range s.trustedHosts {
		trusted = strings.ToLower(strings.TrimSpace(trusted))
		if trusted == "" {
			continue
		}
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}
