package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ojtrack/ojt-tracker-api/internal/dto"
	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type ledgerLogRepository interface {
	ListBySubject(ctx context.Context, subjectID string) ([]models.TimeLog, error)
	ListBySubjects(ctx context.Context, subjectIDs []string) (map[string][]models.TimeLog, error)
}

type ledgerDocRepository interface {
	ListBySubject(ctx context.Context, subjectID string) ([]models.Document, error)
	CountBySubjects(ctx context.Context, subjectIDs []string) (map[string]int, error)
	ListByCourse(ctx context.Context, course string) ([]models.SubmissionRecord, error)
}

type ledgerDirectory interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	RoleCounts(ctx context.Context) (map[models.SubjectRole]int, error)
}

// LedgerServiceConfig tunes aggregation behaviour.
type LedgerServiceConfig struct {
	TargetHours float64
	CacheTTL    time.Duration
}

// LedgerService composes attendance aggregates for the dashboard views.
// All computation runs over immutable snapshots through the pure helpers in
// tracker.go; this type only fetches, caches and isolates partial failures.
type LedgerService struct {
	logs      ledgerLogRepository
	docs      ledgerDocRepository
	directory ledgerDirectory
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
	cfg       LedgerServiceConfig
}

// LedgerServiceParams groups constructor dependencies.
type LedgerServiceParams struct {
	Logs      ledgerLogRepository
	Docs      ledgerDocRepository
	Directory ledgerDirectory
	Cache     *CacheService
	Logger    *zap.Logger
	Config    LedgerServiceConfig
}

// NewLedgerService constructs a LedgerService with sane defaults.
func NewLedgerService(params LedgerServiceParams) *LedgerService {
	cfg := params.Config
	if cfg.TargetHours <= 0 {
		cfg.TargetHours = 486
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		logs:      params.Logs,
		docs:      params.Docs,
		directory: params.Directory,
		cache:     params.Cache,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// StudentStats returns the subject's aggregate progress. A document listing
// failure degrades the doc count to zero rather than blocking the
// time-log figures.
func (s *LedgerService) StudentStats(ctx context.Context, subjectID string) (*dto.StudentStatsResponse, error) {
	cacheKey := fmt.Sprintf("dash:student:%s:stats", subjectID)
	var cached dto.StudentStatsResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	entries, err := s.logs.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load time logs")
	}

	docCount := 0
	if docs, err := s.docs.ListBySubject(ctx, subjectID); err != nil {
		s.logger.Warn("document listing failed, serving stats without doc count",
			zap.String("subject_id", subjectID), zap.Error(err))
	} else {
		docCount = len(docs)
	}

	stats := &dto.StudentStatsResponse{
		AggregateStats: ComputeStats(entries, docCount, s.cfg.TargetHours),
		TargetHours:    s.cfg.TargetHours,
	}
	_ = s.cache.Set(ctx, cacheKey, stats, s.cfg.CacheTTL)
	return stats, nil
}

// History returns every session for the subject, newest first.
func (s *LedgerService) History(ctx context.Context, subjectID string) ([]models.TimeLog, error) {
	entries, err := s.logs.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load time logs")
	}
	return entries, nil
}

// Today returns the daily roll-up for the subject's local date.
func (s *LedgerService) Today(ctx context.Context, subjectID string) (*models.TodayLog, error) {
	entries, err := s.logs.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load time logs")
	}
	today := ComputeTodayLog(entries, s.now().Format("2006-01-02"))
	return &today, nil
}

// CohortOverview summarises a whole course for the coordinator dashboard.
func (s *LedgerService) CohortOverview(ctx context.Context, course string) (*dto.CohortOverviewResponse, error) {
	if course == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no course assigned to this account")
	}
	cacheKey := fmt.Sprintf("dash:cohort:%s:overview", course)
	var cached dto.CohortOverviewResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	students, err := s.cohortStudents(ctx, course)
	if err != nil {
		return nil, err
	}
	ids := subjectIDs(students)

	grouped, err := s.logs.ListBySubjects(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load cohort time logs")
	}

	totalDocs := 0
	if counts, err := s.docs.CountBySubjects(ctx, ids); err != nil {
		s.logger.Warn("cohort document count failed, serving overview without docs",
			zap.String("course", course), zap.Error(err))
	} else {
		for _, c := range counts {
			totalDocs += c
		}
	}

	var totalHours float64
	for _, id := range ids {
		stats := ComputeStats(grouped[id], 0, s.cfg.TargetHours)
		totalHours += stats.TotalHours
	}

	overview := &dto.CohortOverviewResponse{
		Course:        course,
		TotalStudents: len(students),
		TotalDocs:     totalDocs,
		TotalHours:    totalHours,
		AverageHours:  CohortAverage(totalHours, len(students)),
	}
	_ = s.cache.Set(ctx, cacheKey, overview, s.cfg.CacheTTL)
	return overview, nil
}

// CohortProgress returns the per-student progress table for a course.
func (s *LedgerService) CohortProgress(ctx context.Context, course string) ([]dto.StudentProgressRow, error) {
	if course == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no course assigned to this account")
	}

	students, err := s.cohortStudents(ctx, course)
	if err != nil {
		return nil, err
	}
	ids := subjectIDs(students)

	grouped, err := s.logs.ListBySubjects(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load cohort time logs")
	}
	counts, err := s.docs.CountBySubjects(ctx, ids)
	if err != nil {
		s.logger.Warn("cohort document count failed, progress rows carry zero docs",
			zap.String("course", course), zap.Error(err))
		counts = map[string]int{}
	}

	rows := make([]dto.StudentProgressRow, 0, len(students))
	for _, student := range students {
		stats := ComputeStats(grouped[student.ID], counts[student.ID], s.cfg.TargetHours)
		rows = append(rows, dto.StudentProgressRow{
			SubjectID:       student.ID,
			Name:            student.Name,
			TotalHours:      stats.TotalHours,
			DaysLogged:      stats.DaysLogged,
			DocCount:        stats.DocCount,
			ProgressPercent: stats.ProgressPercent,
		})
	}
	return rows, nil
}

// CohortSubmissions lists every document submitted by the course's students.
func (s *LedgerService) CohortSubmissions(ctx context.Context, course string) ([]models.SubmissionRecord, error) {
	if course == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no course assigned to this account")
	}
	records, err := s.docs.ListByCourse(ctx, course)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load submissions")
	}
	return records, nil
}

// StudentDetail is the coordinator drill-down: full logs and documents for
// one student. When expectedCourse is non-empty the student must belong to
// that course.
func (s *LedgerService) StudentDetail(ctx context.Context, subjectID, expectedCourse string) (*dto.StudentDetailResponse, error) {
	subject, err := s.directory.FindByID(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if subject.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if expectedCourse != "" && subject.CourseName() != expectedCourse {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "student belongs to a different course")
	}

	logs, err := s.logs.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load time logs")
	}
	docs, err := s.docs.ListBySubject(ctx, subjectID)
	if err != nil {
		s.logger.Warn("document listing failed, student detail omits documents",
			zap.String("subject_id", subjectID), zap.Error(err))
		docs = []models.Document{}
	}

	return &dto.StudentDetailResponse{
		Subject: models.SubjectInfo{
			ID:     subject.ID,
			Name:   subject.Name,
			Email:  subject.Email,
			Role:   subject.Role,
			Course: subject.CourseName(),
		},
		Logs:      logs,
		Documents: docs,
	}, nil
}

// AdminOverview summarises the whole directory.
func (s *LedgerService) AdminOverview(ctx context.Context) (*dto.AdminOverviewResponse, error) {
	counts, err := s.directory.RoleCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to count users")
	}

	role := models.RoleStudent
	students, err := s.directory.List(ctx, models.SubjectFilter{Role: &role})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list students")
	}

	totalDocs := 0
	if docCounts, err := s.docs.CountBySubjects(ctx, subjectIDs(students)); err != nil {
		s.logger.Warn("admin document count failed, overview carries zero docs", zap.Error(err))
	} else {
		for _, c := range docCounts {
			totalDocs += c
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return &dto.AdminOverviewResponse{
		TotalUsers:   total,
		Students:     counts[models.RoleStudent],
		Coordinators: counts[models.RoleCoordinator],
		TotalDocs:    totalDocs,
	}, nil
}

func (s *LedgerService) cohortStudents(ctx context.Context, course string) ([]models.Subject, error) {
	role := models.RoleStudent
	students, err := s.directory.List(ctx, models.SubjectFilter{Role: &role, Course: course})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list cohort students")
	}
	return students, nil
}

func subjectIDs(subjects []models.Subject) []string {
	ids := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		ids = append(ids, subject.ID)
	}
	return ids
}
