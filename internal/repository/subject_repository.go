package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
)

// SubjectRepository manages persistence for the subject directory.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching the provided filters, newest first.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)+1))
		args = append(args, *filter.Role)
	}
	if filter.Course != "" {
		conditions = append(conditions, fmt.Sprintf("course = $%d", len(args)+1))
		args = append(args, filter.Course)
	}

	query := fmt.Sprintf(`SELECT id, name, email, password_hash, course, role, created_at
        FROM subjects WHERE %s ORDER BY created_at DESC`, strings.Join(conditions, " AND "))

	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches one subject by ID.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, name, email, password_hash, course, role, created_at
        FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// FindByEmail fetches one subject by email.
func (r *SubjectRepository) FindByEmail(ctx context.Context, email string) (*models.Subject, error) {
	const query = `SELECT id, name, email, password_hash, course, role, created_at
        FROM subjects WHERE email = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, email); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ExistsByEmail checks if a subject with the given email already exists.
func (r *SubjectRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM subjects WHERE email = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// Create inserts a new subject record.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO subjects (id, name, email, password_hash, course, role, created_at)
        VALUES (:id, :name, :email, :password_hash, :course, :role, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// RoleCounts returns how many subjects hold each role.
func (r *SubjectRepository) RoleCounts(ctx context.Context) (map[models.SubjectRole]int, error) {
	const query = `SELECT role, COUNT(*) AS total FROM subjects GROUP BY role`
	rows := []struct {
		Role  models.SubjectRole `db:"role"`
		Total int                `db:"total"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count roles: %w", err)
	}
	counts := make(map[models.SubjectRole]int, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}

// UpdateRole changes a subject's role by email. Used by the grantrole
// operational script, not exposed through the API.
func (r *SubjectRepository) UpdateRole(ctx context.Context, email string, role models.SubjectRole) (bool, error) {
	const query = `UPDATE subjects SET role = $2 WHERE email = $1`
	res, err := r.db.ExecContext(ctx, query, email, role)
	if err != nil {
		return false, fmt.Errorf("update role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update role result: %w", err)
	}
	return affected == 1, nil
}
