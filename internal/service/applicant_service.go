package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/ml"
	"github.com/itzjmbruhhh/NU-Admission/internal/models"
	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
)

const dashboardCachePattern = "dashboard:*"

type applicantRepository interface {
	List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, int, error)
	ListAll(ctx context.Context) ([]models.Applicant, error)
	FindByID(ctx context.Context, id string) (*models.Applicant, error)
	Create(ctx context.Context, applicant *models.Applicant) error
	Update(ctx context.Context, applicant *models.Applicant) error
	Delete(ctx context.Context, id string) error
}

type chanceScorer interface {
	ScoreAndSave(ctx context.Context, applicant *models.Applicant) float64
}

type featureExporter interface {
	Write(applicantID string, features map[string]any) error
}

// RegisterApplicantRequest holds the admission form payload.
type RegisterApplicantRequest struct {
	SchoolYear          string `json:"school_year" validate:"required"`
	SchoolTerm          string `json:"school_term" validate:"required"`
	CampusCode          string `json:"campus_code"`
	ProgramFirstChoice  string `json:"program_first_choice" validate:"required"`
	ProgramSecondChoice string `json:"program_second_choice"`
	EntryLevel          string `json:"entry_level" validate:"required"`

	FirstName  string `json:"first_name" validate:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name" validate:"required"`
	Suffix     string `json:"suffix"`
	Prefix     string `json:"prefix"`

	BirthDate     string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	BirthCity     string `json:"birth_city"`
	BirthProvince string `json:"birth_province"`
	BirthCountry  string `json:"birth_country"`
	Gender        string `json:"gender"`
	CitizenOf     string `json:"citizen_of"`
	Religion      string `json:"religion"`
	CivilStatus   string `json:"civil_status"`

	CurrentRegion          string `json:"current_region"`
	CurrentProvince        string `json:"current_province"`
	CurrentCity            string `json:"current_city"`
	CurrentBrgy            string `json:"current_brgy"`
	CurrentStreet          string `json:"current_street"`
	CurrentPostalCode      string `json:"current_postal_code"`
	CompletePresentAddress string `json:"complete_present_address"`
	TelephoneNo            string `json:"telephone_no"`
	MobileNumber           string `json:"mobile_number" validate:"required"`
	Email                  string `json:"email" validate:"required,email"`

	PermanentCountry         string `json:"permanent_country"`
	PermanentRegion          string `json:"permanent_region"`
	PermanentProvince        string `json:"permanent_province"`
	PermanentCity            string `json:"permanent_city"`
	PermanentBrgy            string `json:"permanent_brgy"`
	PermanentStreet          string `json:"permanent_street"`
	PermanentPostalCode      string `json:"permanent_postal_code"`
	CompletePermanentAddress string `json:"complete_permanent_address"`

	Disability           string `json:"disability"`
	Indigenous           string `json:"indigenous"`
	RequirementAgreement string `json:"requirement_agreement"`
	StudentType          string `json:"student_type"`
	LastSchoolAttended   string `json:"last_school_attended"`
	SchoolType           string `json:"school_type"`
	AnnualIncome         string `json:"annual_income"`
}

// UpdateApplicantRequest holds registrar-editable fields. Assigning a
// student ID is how an applicant becomes enrolled.
type UpdateApplicantRequest struct {
	StudentID            string `json:"student_id"`
	ProgramFirstChoice   string `json:"program_first_choice"`
	ProgramSecondChoice  string `json:"program_second_choice"`
	EntryLevel           string `json:"entry_level"`
	MobileNumber         string `json:"mobile_number"`
	Email                string `json:"email" validate:"omitempty,email"`
	RequirementAgreement string `json:"requirement_agreement"`
	StudentType          string `json:"student_type"`
	SchoolType           string `json:"school_type"`
	Rescore              bool   `json:"rescore"`
}

// ApplicantService handles admission form use-cases.
type ApplicantService struct {
	repo      applicantRepository
	chance    chanceScorer
	exporter  featureExporter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicantService constructs the applicant service.
func NewApplicantService(repo applicantRepository, chance chanceScorer, exporter featureExporter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ApplicantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicantService{repo: repo, chance: chance, exporter: exporter, cache: cache, validator: validate, logger: logger}
}

// Register stores a new admission form, scores it, and exports its
// features. Scoring and export problems never fail the registration.
func (s *ApplicantService) Register(ctx context.Context, req RegisterApplicantRequest) (*models.Applicant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	applicant := s.buildApplicant(req)
	if err := s.repo.Create(ctx, applicant); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store registration")
	}

	if s.chance != nil {
		s.chance.ScoreAndSave(ctx, applicant)
	}
	s.exportFeatures(applicant)
	s.invalidateDashboard(ctx)

	return applicant, nil
}

// List returns applicants and pagination metadata.
func (s *ApplicantService) List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, *models.Pagination, error) {
	applicants, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applicants")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return applicants, pagination, nil
}

// Get returns one applicant.
func (s *ApplicantService) Get(ctx context.Context, id string) (*models.Applicant, error) {
	applicant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicant")
	}
	return applicant, nil
}

// Update applies registrar edits and optionally rescore the applicant.
func (s *ApplicantService) Update(ctx context.Context, id string, req UpdateApplicantRequest) (*models.Applicant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}

	applicant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StudentID != "" {
		applicant.StudentID = req.StudentID
	}
	if req.ProgramFirstChoice != "" {
		applicant.ProgramFirstChoice = req.ProgramFirstChoice
	}
	if req.ProgramSecondChoice != "" {
		applicant.ProgramSecondChoice = req.ProgramSecondChoice
	}
	if req.EntryLevel != "" {
		applicant.EntryLevel = req.EntryLevel
	}
	if req.MobileNumber != "" {
		applicant.MobileNumber = req.MobileNumber
	}
	if req.Email != "" {
		applicant.Email = req.Email
	}
	if req.RequirementAgreement != "" {
		applicant.RequirementAgreement = req.RequirementAgreement
	}
	if req.StudentType != "" {
		applicant.StudentType = req.StudentType
	}
	if req.SchoolType != "" {
		applicant.SchoolType = req.SchoolType
	}

	if err := s.repo.Update(ctx, applicant); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update applicant")
	}

	if req.Rescore && s.chance != nil {
		s.chance.ScoreAndSave(ctx, applicant)
		s.exportFeatures(applicant)
	}
	s.invalidateDashboard(ctx)

	return applicant, nil
}

// Delete removes an applicant record permanently.
func (s *ApplicantService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "applicant not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete applicant")
	}
	s.invalidateDashboard(ctx)
	return nil
}

// RescoreAll recomputes the enrollment chance for every applicant.
// Returns how many were scored.
func (s *ApplicantService) RescoreAll(ctx context.Context) (int, error) {
	if s.chance == nil {
		return 0, appErrors.Clone(appErrors.ErrInternal, "scoring is not configured")
	}
	applicants, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicants for rescoring")
	}
	for i := range applicants {
		s.chance.ScoreAndSave(ctx, &applicants[i])
	}
	s.invalidateDashboard(ctx)
	return len(applicants), nil
}

func (s *ApplicantService) buildApplicant(req RegisterApplicantRequest) *models.Applicant {
	applicant := &models.Applicant{
		SchoolYear:          req.SchoolYear,
		SchoolTerm:          req.SchoolTerm,
		CampusCode:          req.CampusCode,
		ProgramFirstChoice:  req.ProgramFirstChoice,
		ProgramSecondChoice: req.ProgramSecondChoice,
		EntryLevel:          req.EntryLevel,

		FullName:   buildFullName(req),
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Suffix:     req.Suffix,
		Prefix:     req.Prefix,

		BirthCity:     req.BirthCity,
		BirthProvince: req.BirthProvince,
		BirthCountry:  req.BirthCountry,
		Gender:        req.Gender,
		CitizenOf:     req.CitizenOf,
		Religion:      req.Religion,
		CivilStatus:   req.CivilStatus,

		CurrentRegion:          req.CurrentRegion,
		CurrentProvince:        req.CurrentProvince,
		CurrentCity:            req.CurrentCity,
		CurrentBrgy:            req.CurrentBrgy,
		CurrentStreet:          req.CurrentStreet,
		CurrentPostalCode:      req.CurrentPostalCode,
		CompletePresentAddress: req.CompletePresentAddress,
		TelephoneNo:            req.TelephoneNo,
		MobileNumber:           req.MobileNumber,
		Email:                  req.Email,

		PermanentCountry:         req.PermanentCountry,
		PermanentRegion:          req.PermanentRegion,
		PermanentProvince:        req.PermanentProvince,
		PermanentCity:            req.PermanentCity,
		PermanentBrgy:            req.PermanentBrgy,
		PermanentStreet:          req.PermanentStreet,
		PermanentPostalCode:      req.PermanentPostalCode,
		CompletePermanentAddress: req.CompletePermanentAddress,

		Disability:           req.Disability,
		Indigenous:           req.Indigenous,
		RequirementAgreement: req.RequirementAgreement,
		StudentType:          req.StudentType,
		LastSchoolAttended:   req.LastSchoolAttended,
		SchoolType:           req.SchoolType,
		AnnualIncome:         req.AnnualIncome,
	}

	if req.BirthDate != "" {
		if birth, err := time.Parse("2006-01-02", req.BirthDate); err == nil {
			applicant.BirthDate = &birth
			age := ml.CalculateAgeAtEnrollment(birth, time.Now())
			applicant.AgeAtEnrollment = &age
		}
	}

	return applicant
}

func (s *ApplicantService) exportFeatures(applicant *models.Applicant) {
	if s.exporter == nil {
		return
	}
	record := ml.FlatRecord(applicant)
	// Header rows fail feature engineering and are never exported.
	if _, err := ml.EngineerFeatures(record); err != nil {
		s.logger.Warn("skipping feature export",
			zap.String("applicant_id", applicant.ID),
			zap.Error(err))
		return
	}
	if err := s.exporter.Write(applicant.ID, record); err != nil {
		s.logger.Warn("feature export failed",
			zap.String("applicant_id", applicant.ID),
			zap.Error(err))
	}
}

func (s *ApplicantService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, dashboardCachePattern)
}

func buildFullName(req RegisterApplicantRequest) string {
	name := req.FirstName
	if req.MiddleName != "" {
		name += " " + req.MiddleName
	}
	name += " " + req.LastName
	if req.Suffix != "" {
		name += " " + req.Suffix
	}
	return name
}
