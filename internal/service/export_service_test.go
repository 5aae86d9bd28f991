package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/models"
	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
	"github.com/itzjmbruhhh/NU-Admission/pkg/export"
)

type mockExportLister struct {
	applicants []models.Applicant
	err        error
}

func (m *mockExportLister) ListAll(ctx context.Context) ([]models.Applicant, error) {
	return m.applicants, m.err
}

type stubPDFRenderer struct {
	payload []byte
	err     error
	got     export.Dataset
}

func (s *stubPDFRenderer) Render(data export.Dataset, title string) ([]byte, error) {
	s.got = data
	return s.payload, s.err
}

func exportApplicant() models.Applicant {
	birth := time.Date(2007, time.June, 12, 0, 0, 0, 0, time.UTC)
	age := 18
	chance := 87.5
	return models.Applicant{
		ID:                 "a1",
		StudentID:          "2025-00042",
		FullName:           "Juan Dela Cruz",
		Email:              "juan@example.com",
		MobileNumber:       "09171234567",
		SchoolYear:         "2024-2025",
		SchoolTerm:         "1st",
		EntryLevel:         "Freshman",
		ProgramFirstChoice: "BS Nursing",
		BirthDate:          &birth,
		AgeAtEnrollment:    &age,
		Gender:             "Male",
		CivilStatus:        "Single",
		EnrollmentChance:   &chance,
	}
}

func TestExportServiceRosterCSV(t *testing.T) {
	repo := &mockExportLister{applicants: []models.Applicant{exportApplicant()}}
	svc := NewExportService(repo, nil, nil, zap.NewNop())

	result, err := svc.Roster(context.Background(), ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "applicants-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Payload)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Full Name")
	assert.Contains(t, lines[0], "Status")
	assert.Contains(t, lines[1], "Juan Dela Cruz")
	assert.Contains(t, lines[1], "ENROLLED")
	assert.Contains(t, lines[1], "2007-06-12")
	assert.Contains(t, lines[1], "FRESHMAN")
}

func TestExportServiceRosterPDF(t *testing.T) {
	repo := &mockExportLister{applicants: []models.Applicant{exportApplicant()}}
	pdf := &stubPDFRenderer{payload: []byte("%PDF-stub")}
	svc := NewExportService(repo, nil, pdf, zap.NewNop())

	result, err := svc.Roster(context.Background(), ExportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, []byte("%PDF-stub"), result.Payload)
	require.Len(t, pdf.got.Rows, 1)
	assert.Equal(t, "Juan Dela Cruz", pdf.got.Rows[0]["Full Name"])
}

func TestExportServiceRosterUnknownFormat(t *testing.T) {
	repo := &mockExportLister{}
	svc := NewExportService(repo, nil, nil, zap.NewNop())

	_, err := svc.Roster(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)

	var apiErr *appErrors.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, appErrors.ErrValidation.Code, apiErr.Code)
}

func TestExportServiceRosterRepoError(t *testing.T) {
	repo := &mockExportLister{err: errors.New("db down")}
	svc := NewExportService(repo, nil, nil, zap.NewNop())

	_, err := svc.Roster(context.Background(), ExportFormatCSV)
	require.Error(t, err)
}
