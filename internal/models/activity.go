package models

import "time"

// ActivityKind tags the origin stream of a feed item.
type ActivityKind string

const (
	ActivityTimeLog  ActivityKind = "TIME_LOG"
	ActivityDocument ActivityKind = "DOCUMENT"
)

// ActivityItem is one entry in the merged recent-activity feed. Timestamp
// drives ordering; items with unusable source timestamps carry a substituted
// "now" value rather than being dropped.
type ActivityItem struct {
	Kind      ActivityKind  `json:"kind"`
	Timestamp time.Time     `json:"timestamp"`
	Date      string        `json:"date,omitempty"`
	Hours     float64       `json:"hours,omitempty"`
	Status    SessionStatus `json:"status,omitempty"`
	Title     string        `json:"title,omitempty"`
	DocType   string        `json:"doc_type,omitempty"`
}
