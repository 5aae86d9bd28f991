package ml

import (
	"fmt"
	"strings"
	"time"

	"github.com/itzjmbruhhh/NU-Admission/internal/models"
)

// upperFields are the categorical columns uppercased at flatten time so
// the record matches the casing the training exports used.
var upperFields = map[string]bool{
	"Program (First Choice)":    true,
	"Program (Second Choice)":   true,
	"Entry Level":               true,
	"Gender":                    true,
	"Citizen of":                true,
	"Religion":                  true,
	"Civil Status":              true,
	"Current Region":            true,
	"Current Province":          true,
	"City/Municipality":         true,
	"Current Brgy.":             true,
	"Permanent Country":         true,
	"Permanent Region":          true,
	"Permanent Province":        true,
	"Permanent City":            true,
	"Permanent Brgy.":           true,
	"Birth City":                true,
	"Birth Country":             true,
	"Place of Birth (Province)": true,
	"Student Type":              true,
	"School Type":               true,
}

// FlatRecord projects an applicant onto the column names the feature
// pipeline and export formats share with the historical registrar sheets.
func FlatRecord(a *models.Applicant) map[string]any {
	record := map[string]any{
		"School Year":                intOrNil(ParseSchoolYear(a.SchoolYear)),
		"School Term":                intOrNil(ParseSchoolTerm(a.SchoolTerm)),
		"Campus Code":                nilIfEmpty(a.CampusCode),
		"Program (First Choice)":     nilIfEmpty(a.ProgramFirstChoice),
		"Program (Second Choice)":    nilIfEmpty(a.ProgramSecondChoice),
		"Entry Level":                nilIfEmpty(a.EntryLevel),
		"Full Name":                  nilIfEmpty(a.FullName),
		"First Name":                 nilIfEmpty(a.FirstName),
		"Middle Name":                nilIfEmpty(a.MiddleName),
		"Last Name":                  nilIfEmpty(a.LastName),
		"Suffix":                     a.Suffix,
		"Prefix":                     a.Prefix,
		"Birth Date":                 formatBirthDate(a.BirthDate),
		"Birth Place":                birthPlace(a),
		"Birth City":                 nilIfEmpty(a.BirthCity),
		"Place of Birth (Province)":  nilIfEmpty(a.BirthProvince),
		"Birth Country":              nilIfEmpty(a.BirthCountry),
		"Gender":                     nilIfEmpty(a.Gender),
		"Citizen of":                 nilIfEmpty(a.CitizenOf),
		"Religion":                   nilIfEmpty(a.Religion),
		"Civil Status":               nilIfEmpty(a.CivilStatus),
		"Current Region":             nilIfEmpty(a.CurrentRegion),
		"Current Province":           nilIfEmpty(a.CurrentProvince),
		"City/Municipality":          nilIfEmpty(a.CurrentCity),
		"Current Brgy.":              nilIfEmpty(a.CurrentBrgy),
		"Current Street":             nilIfEmpty(a.CurrentStreet),
		"Current Postal Code":        coerceOrNil(a.CurrentPostalCode),
		"Complete Present Address":   nilIfEmpty(a.CompletePresentAddress),
		"Telephone No.":              nilIfEmpty(a.TelephoneNo),
		"Mobile Number":              nilIfEmpty(a.MobileNumber),
		"Email Address":              nilIfEmpty(a.Email),
		"Permanent Country":          nilIfEmpty(a.PermanentCountry),
		"Permanent Region":           nilIfEmpty(a.PermanentRegion),
		"Permanent Province":         nilIfEmpty(a.PermanentProvince),
		"Permanent City":             nilIfEmpty(a.PermanentCity),
		"Permanent Brgy.":            nilIfEmpty(a.PermanentBrgy),
		"Permanent Street":           nilIfEmpty(a.PermanentStreet),
		"Permanent Postal Code":      coerceOrNil(a.PermanentPostalCode),
		"Complete Permanent Address": nilIfEmpty(a.CompletePermanentAddress),
		"Student ID":                 nilIfEmpty(a.StudentID),
		"Disability":                 nilIfEmpty(a.Disability),
		"Indigenous":                 nilIfEmpty(a.Indigenous),
		"Requirement Agreement":      nilIfEmpty(a.RequirementAgreement),
		"Student Type":               nilIfEmpty(a.StudentType),
		"Last School Attended":       nilIfEmpty(a.LastSchoolAttended),
		"School Type":                nilIfEmpty(a.SchoolType),
		"Annual Income":              nilIfEmpty(a.AnnualIncome),
		"Status":                     a.Status(),
	}

	if a.AgeAtEnrollment != nil {
		record["Age at Enrollment"] = *a.AgeAtEnrollment
	} else if a.BirthDate != nil {
		record["Age at Enrollment"] = CalculateAgeAtEnrollment(*a.BirthDate, time.Now())
	} else {
		record["Age at Enrollment"] = nil
	}

	for key, value := range record {
		if !upperFields[key] {
			continue
		}
		if s, ok := value.(string); ok {
			record[key] = strings.ToUpper(s)
		}
	}

	return record
}

// CalculateAgeAtEnrollment returns whole years elapsed between the birth
// date and the reference time, accounting for whether the birthday has
// passed this year.
func CalculateAgeAtEnrollment(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

func birthPlace(a *models.Applicant) any {
	if a.BirthPlace != "" {
		return a.BirthPlace
	}
	if a.BirthCity == "" && a.BirthProvince == "" {
		return nil
	}
	return fmt.Sprintf("%s, %s", a.BirthCity, a.BirthProvince)
}

func formatBirthDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func nilIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func intOrNil(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func coerceOrNil(s string) any {
	if n := CoerceInt(s); n != nil {
		return *n
	}
	return nil
}
