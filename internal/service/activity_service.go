package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type activityLogRepository interface {
	ListBySubject(ctx context.Context, subjectID string) ([]models.TimeLog, error)
}

type activityDocRepository interface {
	ListBySubject(ctx context.Context, subjectID string) ([]models.Document, error)
}

// ActivityService assembles the recent-activity feed from the two event
// streams. Either stream failing independently halves the feed instead of
// emptying it.
type ActivityService struct {
	logs   activityLogRepository
	docs   activityDocRepository
	logger *zap.Logger
	now    func() time.Time
	limit  int
}

// NewActivityService constructs an ActivityService.
func NewActivityService(logs activityLogRepository, docs activityDocRepository, logger *zap.Logger, limit int) *ActivityService {
	if limit <= 0 {
		limit = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{logs: logs, docs: docs, logger: logger, now: time.Now, limit: limit}
}

// Recent returns the merged feed for one subject, truncated to limit items
// (the service default when limit is non-positive).
func (s *ActivityService) Recent(ctx context.Context, subjectID string, limit int) ([]models.ActivityItem, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}

	entries, logErr := s.logs.ListBySubject(ctx, subjectID)
	if logErr != nil {
		s.logger.Warn("time log listing failed, activity feed omits sessions",
			zap.String("subject_id", subjectID), zap.Error(logErr))
	}
	docs, docErr := s.docs.ListBySubject(ctx, subjectID)
	if docErr != nil {
		s.logger.Warn("document listing failed, activity feed omits documents",
			zap.String("subject_id", subjectID), zap.Error(docErr))
	}
	if logErr != nil && docErr != nil {
		return nil, appErrors.Wrap(logErr, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load activity")
	}

	return MergeActivity(entries, docs, limit, s.now()), nil
}
