package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/itzjmbruhhh/NU-Admission/pkg/errors"
)

func sampleRecord() map[string]any {
	return map[string]any{
		"School Year":               2025,
		"School Term":               1,
		"Program (First Choice)":    "BSN",
		"Program (Second Choice)":   "BSMT",
		"Entry Level":               "Freshman",
		"Birth Date":                "2007-06-12",
		"Birth City":                "City of Lipa",
		"Place of Birth (Province)": "Batangas",
		"Gender":                    "Female",
		"Religion":                  "Roman Catholic",
		"Civil Status":              "Single",
		"City/Municipality":         "Lipa City",
		"Permanent Province":        "Batangas",
		"Permanent City":            "Lipa City",
		"Permanent Region":          "Region IV-A",
		"Requirement Agreement":     "Agreed",
		"Disability":                nil,
		"Indigenous":                "",
		"Student Type":              "Full-Time Student",
		"School Type":               "Private",
	}
}

func TestEngineerFeaturesHappyPath(t *testing.T) {
	features, err := EngineerFeatures(sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, "BACHELOR OF SCIENCE IN NURSING", features["Program (First Choice)"])
	assert.Equal(t, "BACHELOR OF SCIENCE IN MEDICAL TECHNOLOGY", features["Program (Second Choice)"])
	assert.Equal(t, 18, features["Age at Enrollment"])
	assert.Equal(t, 1, features["Requirement Agreement"])
	assert.Equal(t, 0, features["Disability"])
	assert.Equal(t, 0, features["Indigenous"])
	assert.Equal(t, "SAHS", features["first_faculty"])
	assert.Equal(t, "SAHS", features["second_faculty"])
	assert.Equal(t, 1, features["same_faculty"])
	assert.Equal(t, 0, features["second_choice_missing"])
	assert.Equal(t, 1, features["valid_second_choice"])
	assert.Equal(t, 0, features["diff_faculty"])
	assert.Equal(t, "FRESHMAN", features["Entry Level Grouped"])
	assert.Equal(t, 0, features["is_transferee"])
	assert.Equal(t, 18673, features["entry_level_freq"])
	assert.Equal(t, "BATANGAS", features["Permanent Province Grouped"])
	assert.Equal(t, "LIPA", features["Permanent City Grouped"])
	assert.Equal(t, "SINGLE", features["civil_status_grouped"])
	assert.Equal(t, "MAJORITY", features["religion_grouped"])
	assert.Equal(t, 1, features["gender_binary"])
	assert.Equal(t, 1, features["student_type_binary"])
	assert.Equal(t, 1, features["school_type_binary"])
}

func TestEngineerFeaturesSecondChoiceMissing(t *testing.T) {
	record := sampleRecord()
	record["Program (Second Choice)"] = nil

	features, err := EngineerFeatures(record)
	require.NoError(t, err)

	assert.Nil(t, features["Program (Second Choice)"])
	assert.Equal(t, 1, features["second_choice_missing"])
	assert.Equal(t, "OTHER", features["second_faculty"])
	assert.Equal(t, 0, features["same_faculty"])
	assert.Equal(t, 0, features["valid_second_choice"])
	assert.Equal(t, 1, features["second_choice_other"])
	assert.Equal(t, 0, features["diff_faculty"])
}

func TestEngineerFeaturesDiffFaculty(t *testing.T) {
	record := sampleRecord()
	record["Program (Second Choice)"] = "BSCS"

	features, err := EngineerFeatures(record)
	require.NoError(t, err)

	assert.Equal(t, "SAHS", features["first_faculty"])
	assert.Equal(t, "SACE", features["second_faculty"])
	assert.Equal(t, 0, features["same_faculty"])
	assert.Equal(t, 1, features["diff_faculty"])
}

func TestEngineerFeaturesMissingBirthDate(t *testing.T) {
	record := sampleRecord()
	record["Birth Date"] = nil

	features, err := EngineerFeatures(record)
	require.NoError(t, err)

	// Missing birth data must not pollute numeric columns as zero ages.
	assert.Equal(t, Missing, features["Age at Enrollment"])
}

func TestEngineerFeaturesUnparseableBirthDate(t *testing.T) {
	record := sampleRecord()
	record["Birth Date"] = "June twelfth"

	features, err := EngineerFeatures(record)
	require.NoError(t, err)
	assert.Equal(t, Missing, features["Age at Enrollment"])
}

func TestEngineerFeaturesHeaderRow(t *testing.T) {
	record := sampleRecord()
	record["Program (First Choice)"] = "Program (First Choice)"

	_, err := EngineerFeatures(record)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrHeaderRow.Code, appErr.Code)
}

func TestEngineerFeaturesEntryLevelGrouping(t *testing.T) {
	tests := []struct {
		entry        string
		grouped      string
		isTransferee int
		isOther      int
		freq         int
	}{
		{"FRESHMAN", "FRESHMAN", 0, 0, 18673},
		{"TRANSFEREE", "TRANSFEREE", 1, 0, 1478},
		{"2ND_DEGREE", "OTHER", 0, 1, 145},
		{"CROSS_ENROLLEE", "OTHER", 0, 1, 41},
		{"GRADUATE_STUDIES", "OTHER", 0, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			record := sampleRecord()
			record["Entry Level"] = tt.entry
			features, err := EngineerFeatures(record)
			require.NoError(t, err)
			assert.Equal(t, tt.grouped, features["Entry Level Grouped"])
			assert.Equal(t, tt.isTransferee, features["is_transferee"])
			assert.Equal(t, tt.isOther, features["is_other_entry"])
			assert.Equal(t, tt.freq, features["entry_level_freq"])
		})
	}
}

func TestEngineerFeaturesGeographicGrouping(t *testing.T) {
	record := sampleRecord()
	record["Permanent Province"] = "Zamboanga del Sur"
	record["Permanent City"] = "Pagadian City"

	features, err := EngineerFeatures(record)
	require.NoError(t, err)

	assert.Equal(t, "OTHER", features["Permanent Province Grouped"])
	assert.Equal(t, "OTHER", features["Permanent City Grouped"])
}

func TestEngineerFeaturesDemographicEdges(t *testing.T) {
	record := sampleRecord()
	record["Civil Status"] = "Widowed"
	record["Religion"] = "Iglesia ni Cristo"
	record["Gender"] = "Male"
	record["Student Type"] = nil
	record["School Type"] = "Public"

	features, err := EngineerFeatures(record)
	require.NoError(t, err)

	assert.Equal(t, "OTHER", features["civil_status_grouped"])
	assert.Equal(t, "MINORITY", features["religion_grouped"])
	assert.Equal(t, 0, features["gender_binary"])
	assert.Equal(t, -1, features["student_type_binary"])
	assert.Equal(t, 0, features["school_type_binary"])
}

func TestEngineerFeaturesDefaults(t *testing.T) {
	features, err := EngineerFeatures(map[string]any{
		"Program (First Choice)": "BSN",
	})
	require.NoError(t, err)

	assert.Equal(t, 2025, features["School Year"])
	assert.Equal(t, 1, features["School Term"])
	assert.Equal(t, 0, features["Requirement Agreement"])
	assert.Equal(t, 1, features["second_choice_missing"])
	assert.Equal(t, "FRESHMAN", features["Entry Level Grouped"])
}

func TestLegacyFeatures(t *testing.T) {
	features := LegacyFeatures(map[string]any{
		"Entry Level":       "freshman",
		"Age at Enrollment": 18,
	})

	assert.Len(t, features, len(LegacyFeatureOrder))
	assert.Equal(t, "FRESHMAN", features["Entry Level"])
	assert.Equal(t, 18, features["Age at Enrollment"])
	assert.Equal(t, "", features["Gender"])
}
