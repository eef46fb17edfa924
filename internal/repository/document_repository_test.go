package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
)

func TestDocumentRepositoryListBySubject(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	uploaded := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "subject_id", "title", "doc_type", "description", "link", "uploaded_at"}).
		AddRow("doc-1", "stu-1", "Weekly Report", "REPORT", nil, "https://drive.google.com/x", uploaded)
	mock.ExpectQuery("FROM documents WHERE subject_id = \\$1 ORDER BY uploaded_at DESC").
		WithArgs("stu-1").
		WillReturnRows(rows)

	docs, err := repo.ListBySubject(context.Background(), "stu-1")

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Weekly Report", docs[0].Title)
	assert.Nil(t, docs[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryCountBySubjects(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	rows := sqlmock.NewRows([]string{"subject_id", "doc_count"}).
		AddRow("stu-1", 3).
		AddRow("stu-2", 1)
	mock.ExpectQuery("FROM documents WHERE subject_id IN").
		WithArgs("stu-1", "stu-2", "stu-3").
		WillReturnRows(rows)

	counts, err := repo.CountBySubjects(context.Background(), []string{"stu-1", "stu-2", "stu-3"})

	require.NoError(t, err)
	assert.Equal(t, 3, counts["stu-1"])
	assert.Equal(t, 1, counts["stu-2"])
	assert.Zero(t, counts["stu-3"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryCountBySubjectsEmpty(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	counts, err := repo.CountBySubjects(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestDocumentRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	uploaded := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "subject_id", "title", "doc_type", "description", "link", "uploaded_at", "subject_name", "subject_email"}).
		AddRow("doc-1", "stu-1", "Weekly Report", "REPORT", nil, "https://drive.google.com/x", uploaded, "Ana Cruz", "ana@example.com")
	mock.ExpectQuery("JOIN subjects s ON s.id = d.subject_id").
		WithArgs("BSIT", models.RoleStudent).
		WillReturnRows(rows)

	records, err := repo.ListByCourse(context.Background(), "BSIT")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana Cruz", records[0].SubjectName)
	assert.Equal(t, "ana@example.com", records[0].SubjectEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc := &models.Document{
		SubjectID: "stu-1",
		Title:     "Weekly Report",
		Type:      "REPORT",
		Link:      "https://drive.google.com/x",
	}
	require.NoError(t, repo.Create(context.Background(), doc))

	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.UploadedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = $1 AND subject_id = $2")).
		WithArgs("doc-1", "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "stu-1", "doc-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = $1 AND subject_id = $2")).
		WithArgs("doc-404", "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = repo.Delete(context.Background(), "stu-1", "doc-404")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
