package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func completedLog(t *testing.T, date, timeIn string, hours float64) models.TimeLog {
	t.Helper()
	in := mustTime(t, timeIn)
	out := in.Add(time.Duration(hours * float64(time.Hour)))
	return models.TimeLog{
		ID:      "log-" + timeIn,
		Date:    date,
		TimeIn:  in,
		TimeOut: &out,
		Hours:   hours,
		Status:  models.SessionCompleted,
	}
}

func openLog(t *testing.T, date, timeIn string) models.TimeLog {
	t.Helper()
	return models.TimeLog{
		ID:     "open-" + timeIn,
		Date:   date,
		TimeIn: mustTime(t, timeIn),
		Status: models.SessionInProgress,
	}
}

func TestFindActiveSessionNone(t *testing.T) {
	assert.Nil(t, FindActiveSession(nil))
	assert.Nil(t, FindActiveSession([]models.TimeLog{
		completedLog(t, "2026-03-02", "2026-03-02T08:00:00Z", 4),
	}))
}

func TestFindActiveSessionSingle(t *testing.T) {
	entries := []models.TimeLog{
		completedLog(t, "2026-03-01", "2026-03-01T08:00:00Z", 8),
		openLog(t, "2026-03-02", "2026-03-02T09:00:00Z"),
	}

	active := FindActiveSession(entries)
	require.NotNil(t, active)
	assert.Equal(t, "open-2026-03-02T09:00:00Z", active.ID)

	// The returned entry is a copy; mutating it leaves the slice alone.
	active.Hours = 99
	assert.Zero(t, entries[1].Hours)
}

func TestFindActiveSessionPrefersLatestTimeIn(t *testing.T) {
	entries := []models.TimeLog{
		openLog(t, "2026-03-01", "2026-03-01T08:00:00Z"),
		openLog(t, "2026-03-02", "2026-03-02T09:30:00Z"),
		openLog(t, "2026-03-02", "2026-03-02T07:00:00Z"),
	}

	active := FindActiveSession(entries)
	require.NotNil(t, active)
	assert.Equal(t, "open-2026-03-02T09:30:00Z", active.ID)
}

func TestFindActiveSessionTieKeepsFirst(t *testing.T) {
	first := openLog(t, "2026-03-02", "2026-03-02T09:00:00Z")
	first.ID = "first"
	second := openLog(t, "2026-03-02", "2026-03-02T09:00:00Z")
	second.ID = "second"

	active := FindActiveSession([]models.TimeLog{first, second})
	require.NotNil(t, active)
	assert.Equal(t, "first", active.ID)
}

func TestComputeStatsSumsCompletedOnly(t *testing.T) {
	entries := []models.TimeLog{
		completedLog(t, "2026-03-01", "2026-03-01T08:00:00Z", 2),
		completedLog(t, "2026-03-01", "2026-03-01T13:00:00Z", 3),
		openLog(t, "2026-03-02", "2026-03-02T09:00:00Z"),
	}

	stats := ComputeStats(entries, 4, 486)

	assert.Equal(t, 5.0, stats.TotalHours)
	assert.Equal(t, 2, stats.DaysLogged)
	assert.Equal(t, 4, stats.DocCount)
	assert.Equal(t, 1.0, stats.ProgressPercent)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, 0, 486)

	assert.Zero(t, stats.TotalHours)
	assert.Zero(t, stats.DaysLogged)
	assert.Zero(t, stats.DocCount)
	assert.Zero(t, stats.ProgressPercent)
}

func TestProgressPercentClampsAt100(t *testing.T) {
	assert.Equal(t, 100.0, ProgressPercent(486, 486))
	assert.Equal(t, 100.0, ProgressPercent(1000, 486))
	assert.Equal(t, 50.0, ProgressPercent(243, 486))
	assert.Equal(t, 0.0, ProgressPercent(10, 0))
	assert.Equal(t, 0.0, ProgressPercent(10, -1))
}

func TestProgressPercentMonotonic(t *testing.T) {
	prev := -1.0
	for hours := 0.0; hours <= 600; hours += 25 {
		pct := ProgressPercent(hours, 486)
		assert.GreaterOrEqual(t, pct, prev)
		assert.LessOrEqual(t, pct, 100.0)
		prev = pct
	}
}

func TestCohortAverage(t *testing.T) {
	assert.Equal(t, 0.0, CohortAverage(120, 0))
	assert.Equal(t, 40.0, CohortAverage(120, 3))
	assert.Equal(t, 33.3, CohortAverage(100, 3))
}

func TestComputeTodayLogFiltersAndSorts(t *testing.T) {
	entries := []models.TimeLog{
		completedLog(t, "2026-03-01", "2026-03-01T08:00:00Z", 8),
		completedLog(t, "2026-03-02", "2026-03-02T07:00:00Z", 2),
		completedLog(t, "2026-03-02", "2026-03-02T12:00:00Z", 3),
	}

	today := ComputeTodayLog(entries, "2026-03-02")

	assert.Equal(t, "2026-03-02", today.Date)
	require.Len(t, today.Sessions, 2)
	assert.Equal(t, mustTime(t, "2026-03-02T12:00:00Z"), today.Sessions[0].TimeIn)
	assert.Equal(t, mustTime(t, "2026-03-02T07:00:00Z"), today.Sessions[1].TimeIn)
	assert.Equal(t, 5.0, today.TotalCompletedHours)
	assert.Nil(t, today.ActiveSession)
}

func TestComputeTodayLogActiveFromOtherDate(t *testing.T) {
	// An overnight session opened yesterday is still the active one today
	// even though it falls outside the date filter.
	entries := []models.TimeLog{
		openLog(t, "2026-03-01", "2026-03-01T22:00:00Z"),
		completedLog(t, "2026-03-02", "2026-03-02T08:00:00Z", 1),
	}

	today := ComputeTodayLog(entries, "2026-03-02")

	require.Len(t, today.Sessions, 1)
	assert.Equal(t, 1.0, today.TotalCompletedHours)
	require.NotNil(t, today.ActiveSession)
	assert.Equal(t, "open-2026-03-01T22:00:00Z", today.ActiveSession.ID)
}

func TestComputeTodayLogEmpty(t *testing.T) {
	today := ComputeTodayLog(nil, "2026-03-02")

	assert.NotNil(t, today.Sessions)
	assert.Empty(t, today.Sessions)
	assert.Zero(t, today.TotalCompletedHours)
	assert.Nil(t, today.ActiveSession)
}

func TestMergeActivityOrdersAndBounds(t *testing.T) {
	now := mustTime(t, "2026-03-02T18:00:00Z")
	entries := []models.TimeLog{
		completedLog(t, "2026-03-01", "2026-03-01T08:00:00Z", 8),
		completedLog(t, "2026-03-02", "2026-03-02T08:00:00Z", 4),
	}
	docs := []models.Document{
		{ID: "doc-1", Title: "Weekly Report", Type: "REPORT", UploadedAt: mustTime(t, "2026-03-01T17:00:00Z")},
		{ID: "doc-2", Title: "MOA", Type: "AGREEMENT", UploadedAt: mustTime(t, "2026-03-02T10:00:00Z")},
	}

	items := MergeActivity(entries, docs, 8, now)

	require.Len(t, items, 4)
	assert.Equal(t, models.ActivityDocument, items[0].Kind)
	assert.Equal(t, "MOA", items[0].Title)
	assert.Equal(t, models.ActivityTimeLog, items[1].Kind)
	assert.Equal(t, models.ActivityDocument, items[2].Kind)
	assert.Equal(t, models.ActivityTimeLog, items[3].Kind)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Timestamp.After(items[i-1].Timestamp))
	}
}

func TestMergeActivityTruncatesToLimit(t *testing.T) {
	now := mustTime(t, "2026-03-02T18:00:00Z")
	entries := make([]models.TimeLog, 0, 10)
	for i := 0; i < 10; i++ {
		ts := now.Add(-time.Duration(i) * time.Hour)
		entries = append(entries, models.TimeLog{
			ID:     ts.Format(time.RFC3339),
			Date:   ts.Format("2006-01-02"),
			TimeIn: ts,
			Hours:  1,
			Status: models.SessionCompleted,
		})
	}

	items := MergeActivity(entries, nil, 8, now)

	require.Len(t, items, 8)
	assert.True(t, items[0].Timestamp.Equal(now))
	assert.True(t, items[7].Timestamp.Equal(now.Add(-7*time.Hour)))
}

func TestMergeActivityZeroTimestampFallsBackToNow(t *testing.T) {
	now := mustTime(t, "2026-03-02T18:00:00Z")
	entries := []models.TimeLog{
		{ID: "bad", Date: "2026-03-01", Status: models.SessionCompleted, Hours: 2},
		completedLog(t, "2026-03-01", "2026-03-01T08:00:00Z", 8),
	}
	docs := []models.Document{
		{ID: "doc-1", Type: "REPORT", UploadedAt: mustTime(t, "2026-03-01T12:00:00Z")},
	}

	items := MergeActivity(entries, docs, 8, now)

	require.Len(t, items, 3)
	// The malformed entry sorts first on the substituted timestamp.
	assert.Equal(t, now, items[0].Timestamp)
	// A missing document title is substituted, never dropped.
	assert.Equal(t, models.ActivityDocument, items[1].Kind)
	assert.Equal(t, "Untitled", items[1].Title)
}

func TestMergeActivityEmptyInputs(t *testing.T) {
	items := MergeActivity(nil, nil, 8, mustTime(t, "2026-03-02T18:00:00Z"))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
