package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itzjmbruhhh/NU-Admission/internal/dto"
	"github.com/itzjmbruhhh/NU-Admission/internal/models"
)

// probabilityCeiling separates probability-style enrollment chances from
// percentage-style ones. Values at or below it were written as raw model
// output in [0,1] and belong on the percentage scale. The small epsilon
// absorbs float noise around exactly 1.0, which counts as a probability.
const probabilityCeiling = 1.0000001

// NormalizeChance lifts a probability-style value onto the percentage
// scale. Values already above the ceiling pass through unchanged, so the
// operation is idempotent.
func NormalizeChance(value float64) float64 {
	if value <= probabilityCeiling {
		return value * 100
	}
	return value
}

const applicantColumns = `id, school_year, school_term, campus_code, program_first_choice, program_second_choice, entry_level,
        full_name, first_name, middle_name, last_name, suffix, prefix,
        birth_date, birth_place, birth_city, birth_province, birth_country,
        gender, citizen_of, religion, civil_status,
        current_region, current_province, current_city, current_brgy, current_street, current_postal_code,
        complete_present_address, telephone_no, mobile_number, email,
        permanent_country, permanent_region, permanent_province, permanent_city, permanent_brgy, permanent_street, permanent_postal_code,
        complete_permanent_address,
        student_id, disability, indigenous, requirement_agreement, student_type, last_school_attended, school_type,
        annual_income, enrollment_chance, age_at_enrollment, created_at, updated_at`

// ApplicantRepository manages persistence for admission applicants.
type ApplicantRepository struct {
	db *sqlx.DB
}

// NewApplicantRepository constructs an ApplicantRepository.
func NewApplicantRepository(db *sqlx.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// List returns applicants matching the provided filters.
func (r *ApplicantRepository) List(ctx context.Context, filter models.ApplicantFilter) ([]models.Applicant, int, error) {
	base := "FROM applicants"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d OR LOWER(student_id) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Program != "" {
		conditions = append(conditions, fmt.Sprintf("program_first_choice = $%d", len(args)+1))
		args = append(args, filter.Program)
	}
	if filter.EntryLevel != "" {
		conditions = append(conditions, fmt.Sprintf("entry_level = $%d", len(args)+1))
		args = append(args, filter.EntryLevel)
	}
	if filter.SchoolYear != "" {
		conditions = append(conditions, fmt.Sprintf("school_year = $%d", len(args)+1))
		args = append(args, filter.SchoolYear)
	}
	if filter.Enrolled != nil {
		if *filter.Enrolled {
			conditions = append(conditions, "student_id <> ''")
		} else {
			conditions = append(conditions, "student_id = ''")
		}
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"full_name":         "full_name",
		"created_at":        "created_at",
		"enrollment_chance": "enrollment_chance",
		"entry_level":       "entry_level",
		"program":           "program_first_choice",
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", applicantColumns, base, column, order, size, offset)

	var applicants []models.Applicant
	if err := r.db.SelectContext(ctx, &applicants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applicants: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}
	return applicants, total, nil
}

// ListAll streams every applicant ordered by creation time. Used by the
// export and batch rescoring paths.
func (r *ApplicantRepository) ListAll(ctx context.Context) ([]models.Applicant, error) {
	query := fmt.Sprintf("SELECT %s FROM applicants ORDER BY created_at ASC", applicantColumns)
	var applicants []models.Applicant
	if err := r.db.SelectContext(ctx, &applicants, query); err != nil {
		return nil, fmt.Errorf("list all applicants: %w", err)
	}
	return applicants, nil
}

// FindByID fetches an applicant by ID.
func (r *ApplicantRepository) FindByID(ctx context.Context, id string) (*models.Applicant, error) {
	query := fmt.Sprintf("SELECT %s FROM applicants WHERE id = $1", applicantColumns)
	var applicant models.Applicant
	if err := r.db.GetContext(ctx, &applicant, query, id); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// Create inserts a new applicant. Probability-style enrollment chances
// are lifted to the percentage scale before they ever hit the row.
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	if applicant.ID == "" {
		applicant.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if applicant.CreatedAt.IsZero() {
		applicant.CreatedAt = now
	}
	applicant.UpdatedAt = now
	if applicant.EnrollmentChance != nil {
		normalized := NormalizeChance(*applicant.EnrollmentChance)
		applicant.EnrollmentChance = &normalized
	}
	const query = `INSERT INTO applicants (id, school_year, school_term, campus_code, program_first_choice, program_second_choice, entry_level,
        full_name, first_name, middle_name, last_name, suffix, prefix,
        birth_date, birth_place, birth_city, birth_province, birth_country,
        gender, citizen_of, religion, civil_status,
        current_region, current_province, current_city, current_brgy, current_street, current_postal_code,
        complete_present_address, telephone_no, mobile_number, email,
        permanent_country, permanent_region, permanent_province, permanent_city, permanent_brgy, permanent_street, permanent_postal_code,
        complete_permanent_address,
        student_id, disability, indigenous, requirement_agreement, student_type, last_school_attended, school_type,
        annual_income, enrollment_chance, age_at_enrollment, created_at, updated_at)
        VALUES (:id, :school_year, :school_term, :campus_code, :program_first_choice, :program_second_choice, :entry_level,
        :full_name, :first_name, :middle_name, :last_name, :suffix, :prefix,
        :birth_date, :birth_place, :birth_city, :birth_province, :birth_country,
        :gender, :citizen_of, :religion, :civil_status,
        :current_region, :current_province, :current_city, :current_brgy, :current_street, :current_postal_code,
        :complete_present_address, :telephone_no, :mobile_number, :email,
        :permanent_country, :permanent_region, :permanent_province, :permanent_city, :permanent_brgy, :permanent_street, :permanent_postal_code,
        :complete_permanent_address,
        :student_id, :disability, :indigenous, :requirement_agreement, :student_type, :last_school_attended, :school_type,
        :annual_income, :enrollment_chance, :age_at_enrollment, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, applicant); err != nil {
		return fmt.Errorf("create applicant: %w", err)
	}
	return nil
}

// Update modifies an existing applicant. The same chance normalization
// as Create applies.
func (r *ApplicantRepository) Update(ctx context.Context, applicant *models.Applicant) error {
	applicant.UpdatedAt = time.Now().UTC()
	if applicant.EnrollmentChance != nil {
		normalized := NormalizeChance(*applicant.EnrollmentChance)
		applicant.EnrollmentChance = &normalized
	}
	const query = `UPDATE applicants SET school_year = :school_year, school_term = :school_term, campus_code = :campus_code,
        program_first_choice = :program_first_choice, program_second_choice = :program_second_choice, entry_level = :entry_level,
        full_name = :full_name, first_name = :first_name, middle_name = :middle_name, last_name = :last_name, suffix = :suffix, prefix = :prefix,
        birth_date = :birth_date, birth_place = :birth_place, birth_city = :birth_city, birth_province = :birth_province, birth_country = :birth_country,
        gender = :gender, citizen_of = :citizen_of, religion = :religion, civil_status = :civil_status,
        current_region = :current_region, current_province = :current_province, current_city = :current_city, current_brgy = :current_brgy,
        current_street = :current_street, current_postal_code = :current_postal_code,
        complete_present_address = :complete_present_address, telephone_no = :telephone_no, mobile_number = :mobile_number, email = :email,
        permanent_country = :permanent_country, permanent_region = :permanent_region, permanent_province = :permanent_province,
        permanent_city = :permanent_city, permanent_brgy = :permanent_brgy, permanent_street = :permanent_street, permanent_postal_code = :permanent_postal_code,
        complete_permanent_address = :complete_permanent_address,
        student_id = :student_id, disability = :disability, indigenous = :indigenous, requirement_agreement = :requirement_agreement,
        student_type = :student_type, last_school_attended = :last_school_attended, school_type = :school_type,
        annual_income = :annual_income, enrollment_chance = :enrollment_chance, age_at_enrollment = :age_at_enrollment, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, applicant); err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	return nil
}

// Delete removes an applicant permanently. sql.ErrNoRows is returned
// when the id does not exist.
func (r *ApplicantRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM applicants WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateEnrollmentChance writes the chance column directly, bypassing
// normalization. This is the channel for values already on the right
// scale, and for the reconciliation tool which must be able to write
// probability-style values when rolling back.
func (r *ApplicantRepository) UpdateEnrollmentChance(ctx context.Context, id string, value float64) error {
	const query = `UPDATE applicants SET enrollment_chance = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("update enrollment chance: %w", err)
	}
	return nil
}

// ChanceRow pairs an applicant with their stored chance for scale
// reconciliation.
type ChanceRow struct {
	ID               string  `db:"id"`
	EnrollmentChance float64 `db:"enrollment_chance"`
}

// ListProbabilityStyle returns rows whose enrollment chance still sits
// on the [0,1] probability scale.
func (r *ApplicantRepository) ListProbabilityStyle(ctx context.Context) ([]ChanceRow, error) {
	const query = `SELECT id, enrollment_chance FROM applicants
        WHERE enrollment_chance IS NOT NULL AND enrollment_chance <= $1
        ORDER BY created_at ASC`
	var rows []ChanceRow
	if err := r.db.SelectContext(ctx, &rows, query, probabilityCeiling); err != nil {
		return nil, fmt.Errorf("list probability-style chances: %w", err)
	}
	return rows, nil
}

// ListPercentageStyle returns rows eligible for rollback to the
// probability scale: strictly above 1.0 and at most 100. Values above
// 100 were never produced by scaling and are left alone.
func (r *ApplicantRepository) ListPercentageStyle(ctx context.Context) ([]ChanceRow, error) {
	const query = `SELECT id, enrollment_chance FROM applicants
        WHERE enrollment_chance IS NOT NULL AND enrollment_chance > 1.0 AND enrollment_chance <= 100.0
        ORDER BY created_at ASC`
	var rows []ChanceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list percentage-style chances: %w", err)
	}
	return rows, nil
}

// Totals computes the headline dashboard numbers in one pass.
func (r *ApplicantRepository) Totals(ctx context.Context) (*dto.DashboardTotals, error) {
	const query = `SELECT COUNT(*) AS total_applicants,
        COUNT(*) FILTER (WHERE student_id <> '') AS enrolled,
        COUNT(*) FILTER (WHERE student_id = '') AS not_enrolled,
        AVG(enrollment_chance) AS avg_chance,
        COUNT(enrollment_chance) AS scored_applicants
        FROM applicants`
	var totals dto.DashboardTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	return &totals, nil
}

// CountByProgram breaks the population down by first-choice program.
func (r *ApplicantRepository) CountByProgram(ctx context.Context, limit int) ([]dto.CountBucket, error) {
	return r.countBy(ctx, "program_first_choice", limit)
}

// CountByEntryLevel breaks the population down by entry level.
func (r *ApplicantRepository) CountByEntryLevel(ctx context.Context, limit int) ([]dto.CountBucket, error) {
	return r.countBy(ctx, "entry_level", limit)
}

// CountByProvince breaks the population down by permanent province.
func (r *ApplicantRepository) CountByProvince(ctx context.Context, limit int) ([]dto.CountBucket, error) {
	return r.countBy(ctx, "permanent_province", limit)
}

func (r *ApplicantRepository) countBy(ctx context.Context, column string, limit int) ([]dto.CountBucket, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT %s AS label, COUNT(*) AS count,
        COUNT(*) FILTER (WHERE student_id <> '') AS enrolled
        FROM applicants WHERE %s <> '' GROUP BY %s ORDER BY count DESC LIMIT %d`, column, column, column, limit)
	var buckets []dto.CountBucket
	if err := r.db.SelectContext(ctx, &buckets, query); err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	return buckets, nil
}
