package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCityName(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"plain name", "Lipa", "lipa"},
		{"city of prefix", "City of Lipa", "lipa"},
		{"city suffix", "Lipa City", "lipa"},
		{"extra whitespace", "  Lipa   City  ", "lipa"},
		{"nil", nil, Missing},
		{"empty", "", Missing},
		{"na sentinel", "N/A", Missing},
		{"multi word", "City of  San   Pablo", "san pablo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCityName(tt.input))
		})
	}
}

func TestNormalizeCityNameVariantsConverge(t *testing.T) {
	variants := []string{"Lipa", "lipa city", "City of Lipa", "LIPA CITY", " city of lipa "}
	for _, v := range variants {
		assert.Equal(t, "lipa", NormalizeCityName(v), "variant %q", v)
	}
}

func TestNormalizeCityNameIdempotent(t *testing.T) {
	once := NormalizeCityName("City of Batangas City")
	assert.Equal(t, once, NormalizeCityName(once))
}

func TestNormalizeProgramName(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"abbreviation", "BSN", "BACHELOR OF SCIENCE IN NURSING"},
		{"lowercase abbreviation", "bsn", "BACHELOR OF SCIENCE IN NURSING"},
		{"campus suffix mla", "BSN - MLA", "BACHELOR OF SCIENCE IN NURSING"},
		{"campus suffix mwa", "BSCS - MWA", "BACHELOR OF SCIENCE IN COMPUTER SCIENCE"},
		{"full name passthrough", "Bachelor of Science in Nursing", "BACHELOR OF SCIENCE IN NURSING"},
		{"unknown program", "BS Basket Weaving", "BS BASKET WEAVING"},
		{"nil", nil, Missing},
		{"empty", "", Missing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeProgramName(tt.input))
		})
	}
}

func TestBinaryFlag(t *testing.T) {
	assert.Equal(t, 0, BinaryFlag(nil))
	assert.Equal(t, 0, BinaryFlag(""))
	assert.Equal(t, 0, BinaryFlag("N/A"))
	assert.Equal(t, 0, BinaryFlag("na"))
	assert.Equal(t, 0, BinaryFlag(false))
	assert.Equal(t, 0, BinaryFlag(0))
	assert.Equal(t, 1, BinaryFlag(true))
	assert.Equal(t, 1, BinaryFlag("Yes"))
	assert.Equal(t, 1, BinaryFlag("signed"))
	assert.Equal(t, 1, BinaryFlag(1))
}

func TestCoerceInt(t *testing.T) {
	five := CoerceInt("5")
	if assert.NotNil(t, five) {
		assert.Equal(t, 5, *five)
	}
	asFloat := CoerceInt("5.0")
	if assert.NotNil(t, asFloat) {
		assert.Equal(t, 5, *asFloat)
	}
	fromBool := CoerceInt(true)
	if assert.NotNil(t, fromBool) {
		assert.Equal(t, 1, *fromBool)
	}
	assert.Nil(t, CoerceInt("not a number"))
	assert.Nil(t, CoerceInt(nil))
}

func TestParseSchoolTerm(t *testing.T) {
	one := ParseSchoolTerm("1st")
	if assert.NotNil(t, one) {
		assert.Equal(t, 1, *one)
	}
	two := ParseSchoolTerm("2nd")
	if assert.NotNil(t, two) {
		assert.Equal(t, 2, *two)
	}
	assert.Nil(t, ParseSchoolTerm(""))
}

func TestParseSchoolYear(t *testing.T) {
	year := ParseSchoolYear("2024-2025")
	if assert.NotNil(t, year) {
		assert.Equal(t, 2025, *year)
	}
	bare := ParseSchoolYear("2025")
	if assert.NotNil(t, bare) {
		assert.Equal(t, 2025, *bare)
	}
	assert.Nil(t, ParseSchoolYear(""))
}
