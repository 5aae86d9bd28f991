package ml

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
)

// PipelineVersion tags which feature-engineering stage a classifier
// artifact was trained against. The predictor selects the matching
// builder and never mixes the two.
type PipelineVersion string

const (
	// PipelineLegacy feeds the raw flat record columns straight to the model.
	PipelineLegacy PipelineVersion = "legacy"
	// PipelineV2 runs the full engineered feature pipeline.
	PipelineV2 PipelineVersion = "v2"
)

// LegacyFeatureOrder is the flat column set the first-generation model
// was trained on.
var LegacyFeatureOrder = []string{
	"School Term", "Age at Enrollment", "Requirement Agreement", "Disability", "Indigenous",
	"Program (First Choice)", "Program (Second Choice)", "Entry Level", "Birth City", "Place of Birth (Province)",
	"Gender", "Citizen of", "Religion", "Civil Status", "Current Region", "Current Province", "City/Municipality",
	"Current Brgy.", "Permanent Country", "Permanent Region", "Permanent Province", "Permanent City", "Permanent Brgy.",
	"Birth Country", "Student Type", "School Type",
}

var birthDateLayouts = []string{"2006-01-02", "01/02/2006", "02/01/2006", time.RFC3339}

var cityColumns = []string{"Birth City", "City/Municipality", "Permanent City"}

var provinceColumns = []string{"Permanent Province", "Place of Birth (Province)"}

// EngineerFeatures expands a raw applicant record into the engineered
// feature set the current classifier expects. Parse failures degrade to
// the missing sentinel; the only returned error is the header-row guard,
// which signals caller misuse and must not be swallowed here.
func EngineerFeatures(raw map[string]any) (map[string]any, error) {
	data := make(map[string]any, len(raw))
	for k, v := range raw {
		data[k] = v
	}

	// Null handling: absent values become the sentinel.
	for k, v := range data {
		if v == nil || v == "" {
			data[k] = Missing
		}
	}

	// Age at enrollment from birth date and school year.
	if _, ok := data["Birth Date"]; ok {
		if _, ok := data["School Year"]; ok {
			data["Age at Enrollment"] = deriveAge(data["Birth Date"], data["School Year"])
		}
	}

	// Presence flags.
	for _, col := range []string{"Requirement Agreement", "Disability", "Indigenous"} {
		if v, ok := data[col]; ok {
			data[col] = BinaryFlag(v)
		} else {
			data[col] = 0
		}
	}

	// City and province normalization share the same cleaner.
	for _, col := range cityColumns {
		if v, ok := data[col]; ok {
			data[col] = NormalizeCityName(v)
		}
	}
	for _, col := range provinceColumns {
		if v, ok := data[col]; ok {
			data[col] = NormalizeCityName(v)
		}
	}

	// Uppercase every remaining string; the numeric-bearing columns keep
	// their raw representation.
	for k, v := range data {
		if k == "Age at Enrollment" || k == "School Year" || k == "School Term" {
			continue
		}
		if s, ok := v.(string); ok && s != Missing {
			data[k] = strings.ToUpper(s)
		}
	}

	// Program normalization. A missing second choice becomes nil so that
	// downstream columns can tell "absent" apart from an empty string.
	if v, ok := data["Program (First Choice)"]; ok {
		data["Program (First Choice)"] = NormalizeProgramName(v)
	}
	if v, ok := data["Program (Second Choice)"]; ok {
		second := NormalizeProgramName(v)
		if second == Missing {
			data["Program (Second Choice)"] = nil
		} else {
			data["Program (Second Choice)"] = second
		}
	}

	// Header rows ingested as data would poison every derived column.
	if first, ok := data["Program (First Choice)"].(string); ok && strings.Contains(first, "PROGRAM") {
		return nil, appErrors.Clone(appErrors.ErrHeaderRow, "")
	}

	firstProgram, _ := data["Program (First Choice)"].(string)
	secondProgram, hasSecond := data["Program (Second Choice)"].(string)

	firstFaculty := lookupFaculty(firstProgram)
	secondFaculty := "OTHER"
	if hasSecond {
		secondFaculty = lookupFaculty(secondProgram)
	}
	data["first_faculty"] = firstFaculty
	data["second_faculty"] = secondFaculty

	data["second_choice_missing"] = boolFlag(!hasSecond)
	data["same_faculty"] = boolFlag(firstFaculty == secondFaculty && secondFaculty != "OTHER")
	_, validSecond := facultyMap[secondProgram]
	data["valid_second_choice"] = boolFlag(hasSecond && validSecond)
	data["second_choice_other"] = boolFlag(secondFaculty == "OTHER")
	data["diff_faculty"] = boolFlag(firstFaculty != secondFaculty && secondFaculty != "OTHER")

	// Entry level grouping and frequency encoding.
	entryLevel := "FRESHMAN"
	if v, ok := data["Entry Level"].(string); ok {
		entryLevel = v
	}
	entryLevelGrouped := entryLevel
	switch entryLevel {
	case "2ND_DEGREE", "CROSS_ENROLLEE", "GRADUATE_STUDIES":
		entryLevelGrouped = "OTHER"
	}
	data["Entry Level Grouped"] = entryLevelGrouped
	data["is_transferee"] = boolFlag(entryLevel == "TRANSFEREE")
	data["is_other_entry"] = boolFlag(entryLevelGrouped == "OTHER")
	data["entry_level_freq"] = entryLevelFreq[entryLevel]

	// Geographic grouping: everything outside the training top-20 collapses.
	province := stringOr(data["Permanent Province"], Missing)
	if _, ok := top20Provinces[province]; ok {
		data["Permanent Province Grouped"] = province
	} else {
		data["Permanent Province Grouped"] = "OTHER"
	}
	city := stringOr(data["Permanent City"], Missing)
	if _, ok := top20Cities[city]; ok {
		data["Permanent City Grouped"] = city
	} else {
		data["Permanent City Grouped"] = "OTHER"
	}

	// Demographic derivations.
	data["civil_status_grouped"] = groupCivilStatus(data["Civil Status"])
	religion := strings.ToUpper(strings.TrimSpace(stringOr(data["Religion"], Missing)))
	if religion == "ROMAN CATHOLIC" {
		data["religion_grouped"] = "MAJORITY"
	} else {
		data["religion_grouped"] = "MINORITY"
	}
	gender := strings.ToUpper(strings.TrimSpace(stringOr(data["Gender"], Missing)))
	data["gender_binary"] = boolFlag(gender == "FEMALE")
	data["student_type_binary"] = groupStudentType(data["Student Type"])
	data["school_type_binary"] = groupSchoolType(data["School Type"])

	// Final column selection matching the training schema.
	features := map[string]any{
		"School Year":                 valueOr(data, "School Year", 2025),
		"School Term":                 valueOr(data, "School Term", 1),
		"Program (First Choice)":      valueOr(data, "Program (First Choice)", Missing),
		"Program (Second Choice)":     data["Program (Second Choice)"],
		"Place of Birth (Province)":   valueOr(data, "Place of Birth (Province)", Missing),
		"Permanent Region":            valueOr(data, "Permanent Region", Missing),
		"Age at Enrollment":           valueOr(data, "Age at Enrollment", Missing),
		"Requirement Agreement":       data["Requirement Agreement"],
		"Disability":                  data["Disability"],
		"Indigenous":                  data["Indigenous"],
		"first_faculty":               data["first_faculty"],
		"second_faculty":              data["second_faculty"],
		"second_choice_missing":       data["second_choice_missing"],
		"same_faculty":                data["same_faculty"],
		"valid_second_choice":         data["valid_second_choice"],
		"second_choice_other":         data["second_choice_other"],
		"diff_faculty":                data["diff_faculty"],
		"Entry Level Grouped":         data["Entry Level Grouped"],
		"is_transferee":               data["is_transferee"],
		"is_other_entry":              data["is_other_entry"],
		"entry_level_freq":            data["entry_level_freq"],
		"Permanent Province Grouped":  data["Permanent Province Grouped"],
		"Permanent City Grouped":      data["Permanent City Grouped"],
		"civil_status_grouped":        data["civil_status_grouped"],
		"religion_grouped":            data["religion_grouped"],
		"gender_binary":               data["gender_binary"],
		"student_type_binary":         data["student_type_binary"],
		"school_type_binary":          data["school_type_binary"],
	}

	return features, nil
}

// LegacyFeatures normalizes a flat record into the first-generation flat
// column set: categorical strings uppercased, absent keys empty.
func LegacyFeatures(raw map[string]any) map[string]any {
	features := make(map[string]any, len(LegacyFeatureOrder))
	for _, col := range LegacyFeatureOrder {
		v, ok := raw[col]
		if !ok || v == nil {
			features[col] = ""
			continue
		}
		if s, isStr := v.(string); isStr {
			features[col] = strings.ToUpper(strings.TrimSpace(s))
			continue
		}
		features[col] = v
	}
	return features
}

func deriveAge(birthDate, schoolYear any) any {
	if IsMissing(birthDate) {
		return Missing
	}
	year := CoerceInt(schoolYear)
	if year == nil {
		return Missing
	}
	raw := strings.TrimSpace(fmt.Sprintf("%v", birthDate))
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return *year - t.Year()
		}
	}
	return Missing
}

func lookupFaculty(program string) string {
	if faculty, ok := facultyMap[program]; ok {
		return faculty
	}
	return "OTHER"
}

func groupCivilStatus(value any) string {
	if IsMissing(value) {
		return "OTHER"
	}
	switch strings.ToUpper(strings.TrimSpace(stringOr(value, ""))) {
	case "MARRIED":
		return "MARRIED"
	case "SINGLE":
		return "SINGLE"
	default:
		return "OTHER"
	}
}

func groupStudentType(value any) int {
	if IsMissing(value) {
		return -1
	}
	if strings.ToUpper(strings.TrimSpace(stringOr(value, ""))) == "FULL-TIME STUDENT" {
		return 1
	}
	return 0
}

func groupSchoolType(value any) int {
	if IsMissing(value) {
		return -1
	}
	if strings.ToUpper(strings.TrimSpace(stringOr(value, ""))) == "PRIVATE" {
		return 1
	}
	return 0
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func stringOr(value any, fallback string) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fallback
}

func valueOr(data map[string]any, key string, fallback any) any {
	if v, ok := data[key]; ok && v != nil {
		return v
	}
	return fallback
}
