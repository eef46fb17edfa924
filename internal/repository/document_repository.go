package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
)

// DocumentRepository manages persistence for submitted document links.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs a DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ListBySubject returns a subject's documents, newest first.
func (r *DocumentRepository) ListBySubject(ctx context.Context, subjectID string) ([]models.Document, error) {
	const query = `SELECT id, subject_id, title, doc_type, description, link, uploaded_at
        FROM documents WHERE subject_id = $1 ORDER BY uploaded_at DESC`
	docs := []models.Document{}
	if err := r.db.SelectContext(ctx, &docs, query, subjectID); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// CountBySubjects returns document counts keyed by subject.
func (r *DocumentRepository) CountBySubjects(ctx context.Context, subjectIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return counts, nil
	}
	query, args, err := sqlx.In(`SELECT subject_id, COUNT(*) AS doc_count
        FROM documents WHERE subject_id IN (?) GROUP BY subject_id`, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("build document count query: %w", err)
	}
	query = r.db.Rebind(query)

	rows := []struct {
		SubjectID string `db:"subject_id"`
		DocCount  int    `db:"doc_count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	for _, row := range rows {
		counts[row.SubjectID] = row.DocCount
	}
	return counts, nil
}

// ListByCourse returns every submission for a cohort joined with the owning
// subject's name and email, newest first.
func (r *DocumentRepository) ListByCourse(ctx context.Context, course string) ([]models.SubmissionRecord, error) {
	const query = `SELECT d.id, d.subject_id, d.title, d.doc_type, d.description, d.link, d.uploaded_at,
        s.name AS subject_name, s.email AS subject_email
        FROM documents d
        JOIN subjects s ON s.id = d.subject_id
        WHERE s.course = $1 AND s.role = $2
        ORDER BY d.uploaded_at DESC`
	records := []models.SubmissionRecord{}
	if err := r.db.SelectContext(ctx, &records, query, course, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("list cohort submissions: %w", err)
	}
	return records, nil
}

// Create inserts a new document record.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO documents (id, subject_id, title, doc_type, description, link, uploaded_at)
        VALUES (:id, :subject_id, :title, :doc_type, :description, :link, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Delete removes a document owned by the subject. Returns false when no
// matching row existed.
func (r *DocumentRepository) Delete(ctx context.Context, subjectID, docID string) (bool, error) {
	const query = `DELETE FROM documents WHERE id = $1 AND subject_id = $2`
	res, err := r.db.ExecContext(ctx, query, docID, subjectID)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete document result: %w", err)
	}
	return affected == 1, nil
}
