package models

import "time"

// Document represents one submitted document link. Documents are created
// once and may be deleted by their owner, never updated in place.
type Document struct {
	ID          string    `db:"id" json:"id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	Title       string    `db:"title" json:"title"`
	Type        string    `db:"doc_type" json:"type"`
	Description *string   `db:"description" json:"description,omitempty"`
	Link        string    `db:"link" json:"link"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// SubmissionRecord extends a document with its owner's metadata for
// coordinator review feeds.
type SubmissionRecord struct {
	Document
	SubjectName  string `db:"subject_name" json:"subject_name"`
	SubjectEmail string `db:"subject_email" json:"subject_email"`
}
