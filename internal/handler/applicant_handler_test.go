package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/models"
	"github.com/itzjmbruhhh/NU-Admission/internal/service"
	"github.com/itzjmbruhhh/NU-Admission/pkg/response"
)

type fakeApplicantRepo struct {
	applicants map[string]*models.Applicant
}

func newFakeApplicantRepo() *fakeApplicantRepo {
	return &fakeApplicantRepo{applicants: make(map[string]*models.Applicant)}
}

func (f *fakeApplicantRepo) List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, int, error) {
	var out []models.Applicant
	for _, a := range f.applicants {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (f *fakeApplicantRepo) ListAll(ctx context.Context) ([]models.Applicant, error) {
	var out []models.Applicant
	for _, a := range f.applicants {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeApplicantRepo) FindByID(ctx context.Context, id string) (*models.Applicant, error) {
	a, ok := f.applicants[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (f *fakeApplicantRepo) Create(ctx context.Context, applicant *models.Applicant) error {
	if applicant.ID == "" {
		applicant.ID = "a1"
	}
	stored := *applicant
	f.applicants[applicant.ID] = &stored
	return nil
}

func (f *fakeApplicantRepo) Update(ctx context.Context, applicant *models.Applicant) error {
	stored := *applicant
	f.applicants[applicant.ID] = &stored
	return nil
}

func (f *fakeApplicantRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.applicants[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.applicants, id)
	return nil
}

func newApplicantHandler(repo *fakeApplicantRepo) *ApplicantHandler {
	svc := service.NewApplicantService(repo, nil, nil, nil, nil, zap.NewNop())
	return NewApplicantHandler(svc)
}

func performJSON(t *testing.T, handlerFn gin.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	handlerFn(c)
	return rec
}

func TestApplicantHandlerRegister(t *testing.T) {
	repo := newFakeApplicantRepo()
	handler := newApplicantHandler(repo)

	rec := performJSON(t, handler.Register, http.MethodPost, "/applicants", map[string]any{
		"school_year":          "2024-2025",
		"school_term":          "1st",
		"program_first_choice": "BSN",
		"entry_level":          "FRESHMAN",
		"first_name":           "Juan",
		"last_name":            "Dela Cruz",
		"mobile_number":        "09171234567",
		"email":                "juan@example.com",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	payload, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Juan Dela Cruz", payload["full_name"])
	assert.Len(t, repo.applicants, 1)
}

func TestApplicantHandlerRegisterRejectsInvalidPayload(t *testing.T) {
	handler := newApplicantHandler(newFakeApplicantRepo())

	rec := performJSON(t, handler.Register, http.MethodPost, "/applicants", map[string]any{
		"school_year": "2024-2025",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicantHandlerGetNotFound(t *testing.T) {
	handler := newApplicantHandler(newFakeApplicantRepo())

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/applicants/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplicantHandlerList(t *testing.T) {
	repo := newFakeApplicantRepo()
	repo.applicants["a1"] = &models.Applicant{ID: "a1", FullName: "Juan Dela Cruz"}
	handler := newApplicantHandler(repo)

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/applicants?page=1&limit=20", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}
