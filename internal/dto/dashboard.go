package dto

import "github.com/ojtrack/ojt-tracker-api/internal/models"

// ClockStateResponse reports whether the subject is currently clocked in.
type ClockStateResponse struct {
	ClockedIn     bool            `json:"clocked_in"`
	ActiveSession *models.TimeLog `json:"active_session,omitempty"`
}

// StudentStatsResponse is the student dashboard stat card payload.
type StudentStatsResponse struct {
	models.AggregateStats
	TargetHours float64 `json:"target_hours"`
}

// CohortOverviewResponse summarises one course for the coordinator view.
type CohortOverviewResponse struct {
	Course        string  `json:"course"`
	TotalStudents int     `json:"total_students"`
	TotalDocs     int     `json:"total_docs"`
	TotalHours    float64 `json:"total_hours"`
	AverageHours  float64 `json:"average_hours"`
}

// StudentProgressRow is one line of the coordinator progress table.
type StudentProgressRow struct {
	SubjectID       string  `json:"subject_id"`
	Name            string  `json:"name"`
	TotalHours      float64 `json:"total_hours"`
	DaysLogged      int     `json:"days_logged"`
	DocCount        int     `json:"doc_count"`
	ProgressPercent float64 `json:"progress_percent"`
}

// StudentDetailResponse is the coordinator drill-down for one student.
type StudentDetailResponse struct {
	Subject   models.SubjectInfo `json:"subject"`
	Logs      []models.TimeLog   `json:"logs"`
	Documents []models.Document  `json:"documents"`
}

// AdminOverviewResponse summarises the whole directory for admins.
type AdminOverviewResponse struct {
	TotalUsers   int `json:"total_users"`
	Students     int `json:"students"`
	Coordinators int `json:"coordinators"`
	TotalDocs    int `json:"total_docs"`
}
