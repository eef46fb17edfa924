package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type directorySubjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
}

// DirectoryService exposes read access to the subject directory.
type DirectoryService struct {
	repo   directorySubjectRepository
	logger *zap.Logger
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(repo directorySubjectRepository, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{repo: repo, logger: logger}
}

// ListUsers returns the full directory for the admin view, newest first.
// Password hashes never leave the model's json:"-" tag, so the rows are
// safe to return as-is.
func (s *DirectoryService) ListUsers(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list users")
	}
	return subjects, nil
}
