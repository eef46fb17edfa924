package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ojtrack/ojt-tracker-api/internal/dto"
	"github.com/ojtrack/ojt-tracker-api/pkg/export"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

// ExportFormat enumerates supported progress report formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type progressProvider interface {
	CohortProgress(ctx context.Context, course string) ([]dto.StudentProgressRow, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered report ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders cohort progress tables as downloadable files. The
// table is small enough to build in-request, so there is no job queue or
// spooling; the bytes go straight out.
type ExportService struct {
	progress progressProvider
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(progress progressProvider, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{progress: progress, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// CohortProgress renders the per-student progress table for a course.
func (s *ExportService) CohortProgress(ctx context.Context, course string, format ExportFormat) (*ExportFile, error) {
	rows, err := s.progress.CohortProgress(ctx, course)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Total Hours", "Days Logged", "Documents", "Progress %"},
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, []string{
			row.Name,
			fmt.Sprintf("%.2f", row.TotalHours),
			strconv.Itoa(row.DaysLogged),
			strconv.Itoa(row.DocCount),
			fmt.Sprintf("%.1f", row.ProgressPercent),
		})
	}

	stamp := s.now().Format("2006-01-02")
	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("progress-%s-%s.csv", course, stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, fmt.Sprintf("OJT Progress - %s", course))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("progress-%s-%s.pdf", course, stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format, use csv or pdf")
	}
}
