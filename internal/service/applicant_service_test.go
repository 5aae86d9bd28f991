package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/ml"
	"github.com/itzjmbruhhh/NU-Admission/internal/models"
	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
)

type mockApplicantRepo struct {
	applicants map[string]*models.Applicant
	createErr  error
}

func newMockApplicantRepo() *mockApplicantRepo {
	return &mockApplicantRepo{applicants: make(map[string]*models.Applicant)}
}

func (m *mockApplicantRepo) List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, int, error) {
	var out []models.Applicant
	for _, a := range m.applicants {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (m *mockApplicantRepo) ListAll(ctx context.Context) ([]models.Applicant, error) {
	var out []models.Applicant
	for _, a := range m.applicants {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockApplicantRepo) FindByID(ctx context.Context, id string) (*models.Applicant, error) {
	a, ok := m.applicants[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (m *mockApplicantRepo) Create(ctx context.Context, applicant *models.Applicant) error {
	if m.createErr != nil {
		return m.createErr
	}
	if applicant.ID == "" {
		applicant.ID = fmt.Sprintf("generated-%d", len(m.applicants)+1)
	}
	stored := *applicant
	m.applicants[applicant.ID] = &stored
	return nil
}

func (m *mockApplicantRepo) Update(ctx context.Context, applicant *models.Applicant) error {
	stored := *applicant
	m.applicants[applicant.ID] = &stored
	return nil
}

func (m *mockApplicantRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.applicants[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.applicants, id)
	return nil
}

type mockScorer struct {
	chance float64
	calls  int
}

func (m *mockScorer) ScoreAndSave(ctx context.Context, applicant *models.Applicant) float64 {
	m.calls++
	applicant.EnrollmentChance = &m.chance
	return m.chance
}

type mockExporter struct {
	written map[string]map[string]any
}

func (m *mockExporter) Write(applicantID string, features map[string]any) error {
	if m.written == nil {
		m.written = make(map[string]map[string]any)
	}
	m.written[applicantID] = features
	return nil
}

func validRegistration() RegisterApplicantRequest {
	return RegisterApplicantRequest{
		SchoolYear:           "2024-2025",
		SchoolTerm:           "1st",
		ProgramFirstChoice:   "BSN",
		EntryLevel:           "FRESHMAN",
		FirstName:            "Juan",
		LastName:             "Dela Cruz",
		BirthDate:            "2007-06-12",
		MobileNumber:         "09171234567",
		Email:                "juan@example.com",
		RequirementAgreement: "Agreed",
	}
}

func TestApplicantServiceRegister(t *testing.T) {
	repo := newMockApplicantRepo()
	scorer := &mockScorer{chance: 65.0}
	exporter := &mockExporter{}
	svc := NewApplicantService(repo, scorer, exporter, nil, nil, zap.NewNop())

	applicant, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.NotEmpty(t, applicant.ID)
	assert.Equal(t, "Juan Dela Cruz", applicant.FullName)
	require.NotNil(t, applicant.AgeAtEnrollment)
	assert.Equal(t, 1, scorer.calls)
	require.Contains(t, exporter.written, applicant.ID)
	// The export carries the flat record, not engineered features.
	exported := exporter.written[applicant.ID]
	assert.Equal(t, "Juan Dela Cruz", exported["Full Name"])
	assert.Equal(t, "BSN", exported["Program (First Choice)"])
	assert.Equal(t, "NOT ENROLLED", exported["Status"])
	assert.NotContains(t, exported, "first_faculty")
	assert.NotContains(t, exported, "gender_binary")
}

func TestApplicantServiceRegisterValidation(t *testing.T) {
	svc := NewApplicantService(newMockApplicantRepo(), nil, nil, nil, nil, zap.NewNop())

	req := validRegistration()
	req.Email = "not-an-email"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validRegistration()
	req.ProgramFirstChoice = ""
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
}

func TestApplicantServiceRegisterSurvivesHeaderRowExport(t *testing.T) {
	// A header-looking program still registers; only the export is skipped.
	repo := newMockApplicantRepo()
	exporter := &mockExporter{}
	svc := NewApplicantService(repo, &mockScorer{chance: 50.0}, exporter, nil, nil, zap.NewNop())

	req := validRegistration()
	req.ProgramFirstChoice = "Program (First Choice)"
	applicant, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.NotContains(t, exporter.written, applicant.ID)
}

func TestApplicantServiceGetNotFound(t *testing.T) {
	svc := NewApplicantService(newMockApplicantRepo(), nil, nil, nil, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicantServiceUpdateEnrollsAndRescores(t *testing.T) {
	repo := newMockApplicantRepo()
	scorer := &mockScorer{chance: 80.0}
	svc := NewApplicantService(repo, scorer, &mockExporter{}, nil, nil, zap.NewNop())

	applicant, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	scorer.calls = 0

	updated, err := svc.Update(context.Background(), applicant.ID, UpdateApplicantRequest{
		StudentID: "2025-00123",
		Rescore:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-00123", updated.StudentID)
	assert.Equal(t, "ENROLLED", updated.Status())
	assert.Equal(t, 1, scorer.calls)
}

func TestApplicantServiceDelete(t *testing.T) {
	repo := newMockApplicantRepo()
	svc := NewApplicantService(repo, nil, nil, nil, nil, zap.NewNop())

	applicant, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), applicant.ID))
	_, err = svc.Get(context.Background(), applicant.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	err = svc.Delete(context.Background(), applicant.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicantServiceRescoreAll(t *testing.T) {
	repo := newMockApplicantRepo()
	scorer := &mockScorer{chance: 55.0}
	svc := NewApplicantService(repo, scorer, nil, nil, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		req := validRegistration()
		req.Email = string(rune('a'+i)) + "@example.com"
		repo.Create(context.Background(), svc.buildApplicant(req))
	}
	scorer.calls = 0

	count, err := svc.RescoreAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, scorer.calls)
}

func TestApplicantServiceRegisterEndToEndHeuristic(t *testing.T) {
	// Full wiring minus the database: real predictor (no model on disk),
	// real chance service, real export service.
	repo := newMockApplicantRepo()
	cache := ml.NewModelCache(t.TempDir()+"/missing.json", zap.NewNop())
	predictor := ml.NewPredictor(cache, zap.NewNop())
	writer := &mockChanceWriter{}
	chance := NewChanceService(predictor, writer, nil, 0, zap.NewNop())
	exportSvc := NewFeatureExportService(t.TempDir(), zap.NewNop())
	svc := NewApplicantService(repo, chance, exportSvc, nil, nil, zap.NewNop())

	applicant, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	require.NotNil(t, applicant.EnrollmentChance)
	assert.InDelta(t, 65.0, *applicant.EnrollmentChance, 1e-9)

	doc := readExport(t, exportSvc)
	assert.Contains(t, doc, "dummy_Student"+applicant.ID)
}
