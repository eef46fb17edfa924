package service

import (
	"math"
	"sort"
	"time"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
)

// The functions in this file form the aggregation core of the ledger. They
// are pure over already-fetched snapshots: no store access, no clock reads
// except through explicit arguments, so the services can compose them and
// the tests can drive them directly.

// FindActiveSession returns the subject's open session, or nil when none.
// When the backing store holds more than one open entry (a tolerated
// anomaly), the one with the latest TimeIn wins; ties keep the first
// encountered entry so the choice stays deterministic.
func FindActiveSession(entries []models.TimeLog) *models.TimeLog {
	var latest *models.TimeLog
	for i := range entries {
		entry := &entries[i]
		if !entry.Open() {
			continue
		}
		if latest == nil || entry.TimeIn.After(latest.TimeIn) {
			latest = entry
		}
	}
	if latest == nil {
		return nil
	}
	found := *latest
	return &found
}

// ComputeStats aggregates a subject's entries and document count into the
// dashboard summary. Open sessions contribute zero hours regardless of
// elapsed wall-clock time, but their dates still count toward DaysLogged.
func ComputeStats(entries []models.TimeLog, docCount int, targetHours float64) models.AggregateStats {
	var total float64
	days := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Status == models.SessionCompleted {
			total += entry.Hours
		}
		if entry.Date != "" {
			days[entry.Date] = struct{}{}
		}
	}

	return models.AggregateStats{
		TotalHours:      total,
		DaysLogged:      len(days),
		DocCount:        docCount,
		ProgressPercent: ProgressPercent(total, targetHours),
	}
}

// ProgressPercent normalises total hours against the target, clamped so the
// result never exceeds 100. A non-positive target yields 0.
func ProgressPercent(totalHours, targetHours float64) float64 {
	if targetHours <= 0 {
		return 0
	}
	return round1(math.Min(totalHours/targetHours*100, 100))
}

// CohortAverage computes average hours per subject, 0 when the cohort is
// empty, rounded to one decimal.
func CohortAverage(totalHours float64, subjectCount int) float64 {
	if subjectCount <= 0 {
		return 0
	}
	return round1(totalHours / float64(subjectCount))
}

// ComputeTodayLog rolls up the sessions for one calendar date. The active
// session is resolved against the full entry set, not the date-filtered one:
// an open session started yesterday is still active today.
func ComputeTodayLog(entries []models.TimeLog, today string) models.TodayLog {
	sessions := make([]models.TimeLog, 0)
	var completed float64
	for _, entry := range entries {
		if entry.Date != today {
			continue
		}
		if entry.Status == models.SessionCompleted {
			completed += entry.Hours
		}
		sessions = append(sessions, entry)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].TimeIn.After(sessions[j].TimeIn)
	})

	return models.TodayLog{
		Date:                today,
		Sessions:            sessions,
		TotalCompletedHours: completed,
		ActiveSession:       FindActiveSession(entries),
	}
}

// MergeActivity folds time logs and documents into one reverse-chronological
// feed bounded to limit items. Zero timestamps are substituted with now so a
// malformed record never drops the item or aborts the merge.
func MergeActivity(entries []models.TimeLog, docs []models.Document, limit int, now time.Time) []models.ActivityItem {
	items := make([]models.ActivityItem, 0, len(entries)+len(docs))

	for _, entry := range entries {
		ts := entry.TimeIn
		if ts.IsZero() {
			ts = now
		}
		items = append(items, models.ActivityItem{
			Kind:      models.ActivityTimeLog,
			Timestamp: ts,
			Date:      entry.Date,
			Hours:     entry.Hours,
			Status:    entry.Status,
		})
	}

	for _, doc := range docs {
		ts := doc.UploadedAt
		if ts.IsZero() {
			ts = now
		}
		title := doc.Title
		if title == "" {
			title = "Untitled"
		}
		items = append(items, models.ActivityItem{
			Kind:      models.ActivityDocument,
			Timestamp: ts,
			Title:     title,
			DocType:   doc.Type,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
