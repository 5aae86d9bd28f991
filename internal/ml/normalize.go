package ml

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Missing is the sentinel standing in for absent data throughout the
// feature pipeline. It is distinct from numeric zero and the empty string.
const Missing = "N/A"

var (
	cityOfPrefix  = regexp.MustCompile(`^city of\s+`)
	citySuffix    = regexp.MustCompile(`\s+city$`)
	multiSpace    = regexp.MustCompile(`\s+`)
	mlaSuffix     = regexp.MustCompile(`\s*-\s*MLA$`)
	mwaSuffix     = regexp.MustCompile(`\s*-\s*MWA$`)
	ordinalSuffix = regexp.MustCompile(`(?i)(st|nd|rd|th)$`)
)

// IsMissing reports whether a raw form value carries no information.
func IsMissing(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "N/A", "NA", "NAN":
		return true
	}
	return false
}

// NormalizeCityName cleans city and province names: lowercase, strip a
// leading "city of " and a trailing " city", collapse runs of whitespace.
// Missing values yield the sentinel. Idempotent.
func NormalizeCityName(value any) string {
	if IsMissing(value) {
		return Missing
	}
	s := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	s = cityOfPrefix.ReplaceAllString(s, "")
	s = citySuffix.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return s
}

// NormalizeProgramName uppercases a program name, strips campus suffixes
// (" - MLA"/" - MWA") and expands known abbreviations to the full program
// title used in the training data. Unknown names pass through uppercased.
func NormalizeProgramName(value any) string {
	if IsMissing(value) {
		return Missing
	}
	s := strings.ToUpper(strings.TrimSpace(fmt.Sprintf("%v", value)))
	s = mlaSuffix.ReplaceAllString(s, "")
	s = mwaSuffix.ReplaceAllString(s, "")
	if full, ok := programAbbreviations[s]; ok {
		return full
	}
	return s
}

// BinaryFlag coerces a presence-style field to 0 or 1. A value counts as
// present unless it is nil, empty, the literal zero, or a missing sentinel.
func BinaryFlag(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		if v == 0 {
			return 0
		}
		return 1
	case int64:
		if v == 0 {
			return 0
		}
		return 1
	case float64:
		if v == 0 {
			return 0
		}
		return 1
	case string:
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "", "N/A", "NA":
			return 0
		}
		return 1
	default:
		return 1
	}
}

// CoerceInt converts loosely-typed form input to an integer. Booleans map
// to 0/1, numeric strings get a second-pass float parse, and anything
// unparseable yields nil rather than an error.
func CoerceInt(value any) *int {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		n := 0
		if v {
			n = 1
		}
		return &n
	case int:
		n := v
		return &n
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return &n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			n := int(f)
			return &n
		}
		return nil
	default:
		if n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprintf("%v", value))); err == nil {
			return &n
		}
		return nil
	}
}

// ParseSchoolTerm extracts the numeric term from ordinal form ("1st" -> 1).
func ParseSchoolTerm(term string) *int {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return CoerceInt(ordinalSuffix.ReplaceAllString(term, ""))
}

// ParseSchoolYear extracts the most recent year from a "2024-2025" range.
// A bare year string is returned as-is.
func ParseSchoolYear(year string) *int {
	year = strings.TrimSpace(year)
	if year == "" {
		return nil
	}
	if idx := strings.LastIndex(year, "-"); idx >= 0 {
		year = year[idx+1:]
	}
	return CoerceInt(year)
}
