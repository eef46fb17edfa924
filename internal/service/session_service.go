package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ojtrack/ojt-tracker-api/internal/dto"
	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type sessionLogRepository interface {
	ListBySubject(ctx context.Context, subjectID string) ([]models.TimeLog, error)
	CreateIfIdle(ctx context.Context, log *models.TimeLog) (bool, error)
	Close(ctx context.Context, id string, timeOut time.Time, hours float64) (bool, error)
}

// SessionServiceConfig tunes the clock state machine.
type SessionServiceConfig struct {
	MaxSessionHours float64
}

// SessionService owns the clock-in/clock-out state machine for subjects.
// Reads are check-then-act against the latest snapshot; writes are
// conditional at the repository so racing requests fail closed instead of
// corrupting the single-open-session invariant.
type SessionService struct {
	repo    sessionLogRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     SessionServiceConfig
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionLogRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg SessionServiceConfig) *SessionService {
	if cfg.MaxSessionHours <= 0 {
		cfg.MaxSessionHours = 24
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// State reports whether the subject is currently clocked in.
func (s *SessionService) State(ctx context.Context, subjectID string) (*dto.ClockStateResponse, error) {
	entries, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load time logs")
	}
	active := FindActiveSession(entries)
	return &dto.ClockStateResponse{ClockedIn: active != nil, ActiveSession: active}, nil
}

// ClockIn opens a new session for the subject. Fails with ALREADY_ACTIVE
// when an open session exists, whether found in the snapshot or detected by
// the conditional insert losing a race.
func (s *SessionService) ClockIn(ctx context.Context, subjectID string) (*models.TimeLog, error) {
	entries, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load time logs")
	}
	if FindActiveSession(entries) != nil {
		s.metrics.RecordClockEvent("clock_in", "already_active")
		return nil, appErrors.ErrAlreadyActive
	}

	now := s.now()
	entry := &models.TimeLog{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		Date:      now.Format("2006-01-02"),
		TimeIn:    now,
		Hours:     0,
		Status:    models.SessionInProgress,
		CreatedAt: now,
	}

	inserted, err := s.repo.CreateIfIdle(ctx, entry)
	if err != nil {
		s.metrics.RecordClockEvent("clock_in", "error")
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to create time log")
	}
	if !inserted {
		s.metrics.RecordClockEvent("clock_in", "already_active")
		return nil, appErrors.ErrAlreadyActive
	}

	s.metrics.RecordClockEvent("clock_in", "ok")
	s.invalidateDashboards(ctx, subjectID)
	s.logger.Info("clocked in", zap.String("subject_id", subjectID), zap.String("log_id", entry.ID))
	return entry, nil
}

// ClockOut completes the subject's open session, computing the elapsed
// hours rounded to two decimals. Durations outside (0, MaxSessionHours] are
// rejected as INVALID_DURATION to guard against clock skew or corrupted
// time-in values.
func (s *SessionService) ClockOut(ctx context.Context, subjectID string) (*models.TimeLog, error) {
	entries, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load time logs")
	}
	active := FindActiveSession(entries)
	if active == nil {
		s.metrics.RecordClockEvent("clock_out", "no_active_session")
		return nil, appErrors.ErrNoActiveSession
	}

	now := s.now()
	hours := round2(now.Sub(active.TimeIn).Hours())
	if hours < 0 || hours > s.cfg.MaxSessionHours {
		s.metrics.RecordClockEvent("clock_out", "invalid_duration")
		return nil, appErrors.Clone(appErrors.ErrInvalidDuration,
			fmt.Sprintf("computed duration %.2fh is outside the allowed 0-%.0fh range", hours, s.cfg.MaxSessionHours))
	}

	closed, err := s.repo.Close(ctx, active.ID, now, hours)
	if err != nil {
		s.metrics.RecordClockEvent("clock_out", "error")
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to close time log")
	}
	if !closed {
		// Lost a race: the session was closed by another request.
		s.metrics.RecordClockEvent("clock_out", "no_active_session")
		return nil, appErrors.ErrNoActiveSession
	}

	completed := *active
	completed.TimeOut = &now
	completed.Hours = hours
	completed.Status = models.SessionCompleted

	s.metrics.RecordClockEvent("clock_out", "ok")
	s.metrics.ObserveSessionHours(hours)
	s.invalidateDashboards(ctx, subjectID)
	s.logger.Info("clocked out",
		zap.String("subject_id", subjectID),
		zap.String("log_id", completed.ID),
		zap.Float64("hours", hours))
	return &completed, nil
}

func (s *SessionService) invalidateDashboards(ctx context.Context, subjectID string) {
	if !s.cache.Enabled() {
		return
	}
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("dash:student:%s:*", subjectID))
	// The subject's course is not known here, so cohort views are cleared
	// wholesale.
	_ = s.cache.Invalidate(ctx, "dash:cohort:*")
}
