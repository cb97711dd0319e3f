package utils

import (
	"regexp"
	"strings"
)

var (
	sheetURLPattern = regexp.MustCompile(`docs\.google\.com/spreadsheets/d/([a-zA-Z0-9\-_]+)`)
	sheetIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
	namePattern     = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9\s\-']+$`)
)

// ExtractSheetID extracts a Google Sheets ID from a URL, or returns the
// input unchanged if it already looks like an ID. Returns "" if the input
// is neither.
func ExtractSheetID(input string) string {
	input = strings.TrimSpace(input)

	if m := sheetURLPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}

	// Bare IDs are long alphanumeric strings with hyphens and underscores.
	if len(input) > 10 && sheetIDPattern.MatchString(input) {
		return input
	}

	return ""
}

// ValidateName reports whether a tutor name is acceptable: 2-100 characters,
// letters (Latin or Cyrillic), digits, spaces, hyphens and apostrophes.
func ValidateName(name string) bool {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 || len([]rune(name)) > 100 {
		return false
	}
	return namePattern.MatchString(name)
}

// SanitizeName trims a name and collapses internal whitespace runs to a
// single space.
func SanitizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
