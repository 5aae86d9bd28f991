package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/ml"
	"github.com/itzjmbruhhh/NU-Admission/internal/models"
	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
	"github.com/itzjmbruhhh/NU-Admission/pkg/export"
)

// ExportFormat identifies a roster export rendering.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// rosterColumns is the column order of the applicant roster export,
// matching the registrar's historical sheet layout.
var rosterColumns = []string{
	"School Year", "School Term", "Campus Code",
	"Program (First Choice)", "Program (Second Choice)", "Entry Level",
	"Full Name", "Birth Date", "Age at Enrollment", "Gender",
	"Citizen of", "Religion", "Civil Status",
	"Birth City", "Place of Birth (Province)",
	"Permanent Province", "Permanent City",
	"Mobile Number", "Email Address",
	"Requirement Agreement", "Student Type", "School Type",
	"Student ID", "Status",
}

type exportApplicantLister interface {
	ListAll(ctx context.Context) ([]models.Applicant, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered roster ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders applicant rosters as CSV or PDF.
type ExportService struct {
	repo   exportApplicantLister
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(repo exportApplicantLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, logger: logger}
}

// Roster renders every applicant in the requested format.
func (s *ExportService) Roster(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	applicants, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicants for export")
	}

	dataset := export.Dataset{Headers: rosterColumns}
	for i := range applicants {
		record := ml.FlatRecord(&applicants[i])
		row := make(map[string]string, len(rosterColumns))
		for _, col := range rosterColumns {
			row[col] = cellString(record[col])
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("applicants-%s.csv", stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Applicant Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("applicants-%s.pdf", stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func cellString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
