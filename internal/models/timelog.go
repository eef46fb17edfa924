package models

import "time"

// SessionStatus represents the lifecycle state of a time log entry.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
)

// Valid returns true when the status is a supported value.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionInProgress, SessionCompleted:
		return true
	default:
		return false
	}
}

// TimeLog represents one clock-in-to-clock-out attendance session.
// Hours stays 0 while the session is open and is computed exactly once
// at close; TimeIn is immutable after creation.
type TimeLog struct {
	ID        string        `db:"id" json:"id"`
	SubjectID string        `db:"subject_id" json:"subject_id"`
	Date      string        `db:"log_date" json:"date"`
	TimeIn    time.Time     `db:"time_in" json:"time_in"`
	TimeOut   *time.Time    `db:"time_out" json:"time_out,omitempty"`
	Hours     float64       `db:"hours" json:"hours"`
	Status    SessionStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// Open reports whether the session has not been closed yet.
func (l TimeLog) Open() bool {
	return l.Status == SessionInProgress
}

// AggregateStats is the derived per-subject (or per-cohort) progress summary.
type AggregateStats struct {
	TotalHours      float64 `json:"total_hours"`
	DaysLogged      int     `json:"days_logged"`
	DocCount        int     `json:"doc_count"`
	ProgressPercent float64 `json:"progress_percent"`
}

// TodayLog is the daily roll-up of a subject's sessions.
type TodayLog struct {
	Date                string    `json:"date"`
	Sessions            []TimeLog `json:"sessions"`
	TotalCompletedHours float64   `json:"total_completed_hours"`
	ActiveSession       *TimeLog  `json:"active_session,omitempty"`
}
