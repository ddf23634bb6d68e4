// Package naming canonicalizes identifiers so that names taken from
// documentation comments and from test result files can be compared.
package naming

import (
	"strings"
)

// DefaultMarkers separate the subject of a test method name from its
// behavioral suffix, e.g. "Login" in "Login_ShouldReturnTrue_WhenValid".
var DefaultMarkers = []string{"_Should", "_When"}

// Normalize keeps only ASCII letters, digits and underscores and
// lower-cases the result. Normalize is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		}
	}
	return b.String()
}

// StripParameterList removes a parenthesized argument list, so
// "Login(System.String)" and "Login" compare equal.
func StripParameterList(raw string) string {
	if i := strings.IndexByte(raw, '('); i >= 0 {
		return raw[:i]
	}
	return raw
}

// ShortClass returns the last dot-separated segment of a qualified
// class name.
func ShortClass(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// Splitter isolates the function-under-test from a test method name.
type Splitter struct {
	// Markers are the separators tried against the method name. An
	// empty list means DefaultMarkers.
	Markers []string
}

// BaseFunctionName strips the parameter list and cuts the name at the
// earliest occurrence of any marker. The whole stripped name is
// returned when no marker occurs or when a marker starts the name.
func (s Splitter) BaseFunctionName(testMethod string) string {
	name := StripParameterList(testMethod)
	markers := s.Markers
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	cut := -1
	for _, m := range markers {
		if m == "" {
			continue
		}
		if i := strings.Index(name, m); i > 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		return name
	}
	return name[:cut]
}

// BaseFunctionName splits with DefaultMarkers.
func BaseFunctionName(testMethod string) string {
	return Splitter{}.BaseFunctionName(testMethod)
}
