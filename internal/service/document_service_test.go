package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type fakeDocumentRepo struct {
	docs      []models.Document
	created   []models.Document
	createErr error
	deleted   bool
}

func (f *fakeDocumentRepo) ListBySubject(_ context.Context, _ string) ([]models.Document, error) {
	return f.docs, nil
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *doc)
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, _, _ string) (bool, error) {
	return f.deleted, nil
}

func newDocumentService(repo *fakeDocumentRepo) *DocumentService {
	return NewDocumentService(repo, nil, nil, zap.NewNop(), []string{"drive.google.com", "docs.google.com"})
}

// recordingCacheRepo captures invalidation patterns on top of the shared stub.
type recordingCacheRepo struct {
	stubCacheRepo
	patterns []string
}

func (r *recordingCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return r.stubCacheRepo.DeleteByPattern(ctx, pattern)
}

func TestDocumentServiceUploadTrustedHost(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := newDocumentService(repo)

	result, err := svc.Upload(context.Background(), "stu-1", UploadDocumentRequest{
		Title: "Weekly Report",
		Type:  "REPORT",
		Link:  "https://drive.google.com/file/d/abc123/view",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Document)
	assert.False(t, result.RequiresConfirmation)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "stu-1", repo.created[0].SubjectID)
	assert.Equal(t, "Weekly Report", repo.created[0].Title)
}

func TestDocumentServiceUploadTrustedSubdomain(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := newDocumentService(repo)

	result, err := svc.Upload(context.Background(), "stu-1", UploadDocumentRequest{
		Title: "Report",
		Type:  "REPORT",
		Link:  "https://www.docs.google.com/document/d/abc",
	})

	require.NoError(t, err)
	assert.NotNil(t, result.Document)
}

func TestDocumentServiceUploadUntrustedHostNeedsConfirmation(t *testing.T) {
	repo := &fakeDocumentRepo{}
	svc := newDocumentService(repo)

	req := UploadDocumentRequest{
		Title: "Portfolio",
		Type:  "OTHER",
		Link:  "https://example.com/portfolio.pdf",
	}

	result, err := svc.Upload(context.Background(), "stu-1", req)
	require.NoError(t, err)
	assert.True(t, result.RequiresConfirmation)
	assert.Nil(t, result.Document)
	assert.Empty(t, repo.created, "nothing stored until the caller confirms")

	req.Confirmed = true
	result, err = svc.Upload(context.Background(), "stu-1", req)
	require.NoError(t, err)
	assert.False(t, result.RequiresConfirmation)
	require.NotNil(t, result.Document)
	require.Len(t, repo.created, 1)
}

func TestDocumentServiceUploadMissingFields(t *testing.T) {
	svc := newDocumentService(&fakeDocumentRepo{})

	cases := []struct {
		name string
		req  UploadDocumentRequest
	}{
		{"missing title", UploadDocumentRequest{Type: "REPORT", Link: "https://drive.google.com/x"}},
		{"missing type", UploadDocumentRequest{Title: "Report", Link: "https://drive.google.com/x"}},
		{"missing link", UploadDocumentRequest{Title: "Report", Type: "REPORT"}},
		{"blank title", UploadDocumentRequest{Title: "   ", Type: "REPORT", Link: "https://drive.google.com/x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), "stu-1", tc.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrMissingField.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestDocumentServiceUploadInvalidURL(t *testing.T) {
	svc := newDocumentService(&fakeDocumentRepo{})

	for _, link := range []string{
		"not a url",
		"ftp://drive.google.com/file",
		"javascript:alert(1)",
	} {
		_, err := svc.Upload(context.Background(), "stu-1", UploadDocumentRequest{
			Title: "Report",
			Type:  "REPORT",
			Link:  link,
		})
		require.Error(t, err, link)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, link)
	}
}

func TestDocumentServiceUploadStoreError(t *testing.T) {
	repo := &fakeDocumentRepo{createErr: errors.New("connection refused")}
	svc := newDocumentService(repo)

	_, err := svc.Upload(context.Background(), "stu-1", UploadDocumentRequest{
		Title: "Report",
		Type:  "REPORT",
		Link:  "https://drive.google.com/x",
	})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErrors.FromError(err).Code)
}

func TestDocumentServiceDelete(t *testing.T) {
	svc := newDocumentService(&fakeDocumentRepo{deleted: true})
	require.NoError(t, svc.Delete(context.Background(), "stu-1", "doc-1"))

	svc = newDocumentService(&fakeDocumentRepo{deleted: false})
	err := svc.Delete(context.Background(), "stu-1", "doc-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDocumentServiceUploadInvalidatesDashboards(t *testing.T) {
	cacheRepo := &recordingCacheRepo{}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewDocumentService(&fakeDocumentRepo{}, cacheSvc, nil, zap.NewNop(), []string{"drive.google.com"})

	// A confirmation round-trip writes nothing, so nothing is invalidated.
	result, err := svc.Upload(context.Background(), "stu-1", UploadDocumentRequest{
		Title: "Portfolio",
		Type:  "OTHER",
		Link:  "https://example.com/portfolio.pdf",
	})
	require.NoError(t, err)
	require.True(t, result.RequiresConfirmation)
	assert.Empty(t, cacheRepo.patterns)

	_, err = svc.Upload(context.Background(), "stu-1", UploadDocumentRequest{
		Title: "Weekly Report",
		Type:  "REPORT",
		Link:  "https://drive.google.com/file/d/abc/view",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dash:student:stu-1:*", "dash:cohort:*"}, cacheRepo.patterns)
}

func TestDocumentServiceDeleteInvalidatesDashboards(t *testing.T) {
	cacheRepo := &recordingCacheRepo{}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)

	svc := NewDocumentService(&fakeDocumentRepo{deleted: false}, cacheSvc, nil, zap.NewNop(), nil)
	require.Error(t, svc.Delete(context.Background(), "stu-1", "doc-404"))
	assert.Empty(t, cacheRepo.patterns)

	svc = NewDocumentService(&fakeDocumentRepo{deleted: true}, cacheSvc, nil, zap.NewNop(), nil)
	require.NoError(t, svc.Delete(context.Background(), "stu-1", "doc-1"))
	assert.Equal(t, []string{"dash:student:stu-1:*", "dash:cohort:*"}, cacheRepo.patterns)
}

func TestDocumentServiceUploadRefreshesStudentStats(t *testing.T) {
	cacheRepo := &stubCacheRepo{}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)

	ledgerDocs := &fakeLedgerDocs{bySubject: map[string][]models.Document{}}
	logs := &fakeLedgerLogs{bySubject: map[string][]models.TimeLog{}}
	ledger := NewLedgerService(LedgerServiceParams{
		Logs:      logs,
		Docs:      ledgerDocs,
		Directory: &fakeDirectory{},
		Cache:     cacheSvc,
		Logger:    zap.NewNop(),
		Config:    LedgerServiceConfig{TargetHours: 486, CacheTTL: time.Minute},
	})
	docSvc := NewDocumentService(&fakeDocumentRepo{}, cacheSvc, nil, zap.NewNop(), []string{"drive.google.com"})

	stats, err := ledger.StudentStats(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DocCount)

	_, err = docSvc.Upload(context.Background(), "stu-1", UploadDocumentRequest{
		Title: "Weekly Report",
		Type:  "REPORT",
		Link:  "https://drive.google.com/file/d/abc/view",
	})
	require.NoError(t, err)
	ledgerDocs.bySubject["stu-1"] = []models.Document{{ID: "doc-1"}}

	stats, err = ledger.StudentStats(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DocCount)
}
