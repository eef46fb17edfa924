package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
)

// TimeLogRepository manages persistence for attendance sessions.
type TimeLogRepository struct {
	db *sqlx.DB
}

// NewTimeLogRepository constructs a TimeLogRepository.
func NewTimeLogRepository(db *sqlx.DB) *TimeLogRepository {
	return &TimeLogRepository{db: db}
}

// ListBySubject returns every session for one subject, newest first.
func (r *TimeLogRepository) ListBySubject(ctx context.Context, subjectID string) ([]models.TimeLog, error) {
	const query = `SELECT id, subject_id, log_date, time_in, time_out, hours, status, created_at
        FROM time_logs WHERE subject_id = $1 ORDER BY time_in DESC`
	logs := []models.TimeLog{}
	if err := r.db.SelectContext(ctx, &logs, query, subjectID); err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	return logs, nil
}

// ListBySubjects returns sessions for a set of subjects grouped by owner.
func (r *TimeLogRepository) ListBySubjects(ctx context.Context, subjectIDs []string) (map[string][]models.TimeLog, error) {
	grouped := make(map[string][]models.TimeLog, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return grouped, nil
	}
	query, args, err := sqlx.In(`SELECT id, subject_id, log_date, time_in, time_out, hours, status, created_at
        FROM time_logs WHERE subject_id IN (?) ORDER BY time_in DESC`, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("build time log query: %w", err)
	}
	query = r.db.Rebind(query)

	var logs []models.TimeLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("list cohort time logs: %w", err)
	}
	for _, log := range logs {
		grouped[log.SubjectID] = append(grouped[log.SubjectID], log)
	}
	return grouped, nil
}

// CreateIfIdle inserts a new open session only when the subject has no other
// open session. The WHERE NOT EXISTS guard makes the single-open-session
// invariant hold under concurrent clock-ins; the caller treats a false
// return as "already active".
func (r *TimeLogRepository) CreateIfIdle(ctx context.Context, log *models.TimeLog) (bool, error) {
	const query = `INSERT INTO time_logs (id, subject_id, log_date, time_in, time_out, hours, status, created_at)
        SELECT $1, $2, $3, $4, NULL, 0, $5, $6
        WHERE NOT EXISTS (
            SELECT 1 FROM time_logs WHERE subject_id = $2 AND status = $7
        )`
	res, err := r.db.ExecContext(ctx, query,
		log.ID, log.SubjectID, log.Date, log.TimeIn, models.SessionInProgress, log.CreatedAt, models.SessionInProgress)
	if err != nil {
		return false, fmt.Errorf("create time log: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create time log result: %w", err)
	}
	return affected == 1, nil
}

// Close completes an open session in one conditional update so concurrent
// clock-outs cannot close the same session twice. Returns false when the
// session was not open anymore.
func (r *TimeLogRepository) Close(ctx context.Context, id string, timeOut time.Time, hours float64) (bool, error) {
	const query = `UPDATE time_logs SET time_out = $2, hours = $3, status = $4
        WHERE id = $1 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, id, timeOut, hours, models.SessionCompleted, models.SessionInProgress)
	if err != nil {
		return false, fmt.Errorf("close time log: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("close time log result: %w", err)
	}
	return affected == 1, nil
}
