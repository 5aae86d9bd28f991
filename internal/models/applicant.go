package models

import "time"

// Applicant represents one admissions form submission.
type Applicant struct {
	ID string `db:"id" json:"id"`

	// Admission info
	SchoolYear          string `db:"school_year" json:"school_year"`
	SchoolTerm          string `db:"school_term" json:"school_term"`
	CampusCode          string `db:"campus_code" json:"campus_code"`
	ProgramFirstChoice  string `db:"program_first_choice" json:"program_first_choice"`
	ProgramSecondChoice string `db:"program_second_choice" json:"program_second_choice"`
	EntryLevel          string `db:"entry_level" json:"entry_level"`

	// Personal info
	FullName      string     `db:"full_name" json:"full_name"`
	FirstName     string     `db:"first_name" json:"first_name"`
	MiddleName    string     `db:"middle_name" json:"middle_name"`
	LastName      string     `db:"last_name" json:"last_name"`
	Suffix        string     `db:"suffix" json:"suffix"`
	Prefix        string     `db:"prefix" json:"prefix"`
	BirthDate     *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	BirthPlace    string     `db:"birth_place" json:"birth_place"`
	BirthCity     string     `db:"birth_city" json:"birth_city"`
	BirthProvince string     `db:"birth_province" json:"birth_province"`
	BirthCountry  string     `db:"birth_country" json:"birth_country"`
	Gender        string     `db:"gender" json:"gender"`
	CitizenOf     string     `db:"citizen_of" json:"citizen_of"`
	Religion      string     `db:"religion" json:"religion"`
	CivilStatus   string     `db:"civil_status" json:"civil_status"`

	// Current address
	CurrentRegion          string `db:"current_region" json:"current_region"`
	CurrentProvince        string `db:"current_province" json:"current_province"`
	CurrentCity            string `db:"current_city" json:"current_city"`
	CurrentBrgy            string `db:"current_brgy" json:"current_brgy"`
	CurrentStreet          string `db:"current_street" json:"current_street"`
	CurrentPostalCode      string `db:"current_postal_code" json:"current_postal_code"`
	CompletePresentAddress string `db:"complete_present_address" json:"complete_present_address"`
	TelephoneNo            string `db:"telephone_no" json:"telephone_no"`
	MobileNumber           string `db:"mobile_number" json:"mobile_number"`
	Email                  string `db:"email" json:"email"`

	// Permanent address
	PermanentCountry         string `db:"permanent_country" json:"permanent_country"`
	PermanentRegion          string `db:"permanent_region" json:"permanent_region"`
	PermanentProvince        string `db:"permanent_province" json:"permanent_province"`
	PermanentCity            string `db:"permanent_city" json:"permanent_city"`
	PermanentBrgy            string `db:"permanent_brgy" json:"permanent_brgy"`
	PermanentStreet          string `db:"permanent_street" json:"permanent_street"`
	PermanentPostalCode      string `db:"permanent_postal_code" json:"permanent_postal_code"`
	CompletePermanentAddress string `db:"complete_permanent_address" json:"complete_permanent_address"`

	// Student info
	StudentID            string `db:"student_id" json:"student_id"`
	Disability           string `db:"disability" json:"disability"`
	Indigenous           string `db:"indigenous" json:"indigenous"`
	RequirementAgreement string `db:"requirement_agreement" json:"requirement_agreement"`
	StudentType          string `db:"student_type" json:"student_type"`
	LastSchoolAttended   string `db:"last_school_attended" json:"last_school_attended"`
	SchoolType           string `db:"school_type" json:"school_type"`

	// Additional fields
	AnnualIncome string `db:"annual_income" json:"annual_income"`
	// EnrollmentChance is always stored as a percentage in [0,100].
	EnrollmentChance *float64 `db:"enrollment_chance" json:"enrollment_chance,omitempty"`
	// Computed once at registration time.
	AgeAtEnrollment *int `db:"age_at_enrollment" json:"age_at_enrollment,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Status reports whether the applicant has been issued a student ID.
func (a *Applicant) Status() string {
	if a.StudentID != "" {
		return "ENROLLED"
	}
	return "NOT ENROLLED"
}

// ApplicantFilter encapsulates allowed search parameters for listing applicants.
type ApplicantFilter struct {
	Search     string
	Program    string
	EntryLevel string
	SchoolYear string
	Enrolled   *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
