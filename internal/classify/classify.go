// Package classify derives the expected result, the case type and the
// log message of a test case from its expected-behavior text and its
// display name. Every function here is pure.
package classify

import (
	"strings"

	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// Case is the classification of one test case.
type Case struct {
	Kind       taxonomy.ExpectedKind `json:"kind"`
	Type       taxonomy.CaseType     `json:"type"`
	LogMessage string                `json:"log_message,omitempty"`
}

// Classify computes the full classification of a test case.
func Classify(expectedText, displayName string) Case {
	kind := ExpectedKind(expectedText, displayName)
	return Case{
		Kind:       kind,
		Type:       CaseType(kind, displayName),
		LogMessage: logMessage(kind, expectedText, displayName),
	}
}

// ExpectedKind infers whether a test expects a true result, a false
// result or an exception. The expected-behavior text takes precedence;
// the display name is consulted only when the text is empty or
// inconclusive. KindUnknown is returned when neither source decides.
func ExpectedKind(expectedText, displayName string) taxonomy.ExpectedKind {
	if text := strings.ToLower(expectedText); text != "" {
		switch {
		case strings.Contains(text, "true") && !strings.Contains(text, "not"):
			return taxonomy.KindTrue
		case strings.Contains(text, "false"):
			return taxonomy.KindFalse
		case containsAny(text, errorKeywords, false):
			return taxonomy.KindException
		}
	}

	name := strings.ToLower(displayName)
	for _, nk := range nameKinds {
		if strings.Contains(name, nk.marker) {
			return nk.kind
		}
	}
	if containsAny(name, errorKeywords, true) {
		return taxonomy.KindException
	}
	return taxonomy.KindUnknown
}

// CaseType classifies a case as Normal, Abnormal or Boundary. A display
// name mentioning "boundary" wins over the kind; otherwise FALSE and
// EXCEPTION kinds are Abnormal and everything else is Normal.
func CaseType(kind taxonomy.ExpectedKind, displayName string) taxonomy.CaseType {
	if strings.Contains(strings.ToLower(displayName), "boundary") {
		return taxonomy.Boundary
	}
	switch kind {
	case taxonomy.KindException, taxonomy.KindFalse:
		return taxonomy.Abnormal
	default:
		return taxonomy.Normal
	}
}

// LogMessage derives the message a test expects to be logged or
// returned. A single-quoted phrase in the expected text is returned
// verbatim. Otherwise the keyword table is applied to the expected
// text and then to the display name. A TRUE expectation without
// negation yields "Success". The result is empty when nothing applies.
func LogMessage(expectedText, displayName string) string {
	return logMessage(ExpectedKind(expectedText, displayName), expectedText, displayName)
}

func logMessage(kind taxonomy.ExpectedKind, expectedText, displayName string) string {
	if quoted, ok := firstQuoted(expectedText); ok {
		return quoted
	}
	text := strings.ToLower(expectedText)
	if msg, ok := lookupMessage(text, false); ok {
		return msg
	}
	if msg, ok := lookupMessage(strings.ToLower(displayName), true); ok {
		return msg
	}
	if kind == taxonomy.KindTrue && !strings.Contains(text, "not") {
		return "Success"
	}
	return ""
}

// firstQuoted returns the text between the first pair of single
// quotes. An empty pair does not count.
func firstQuoted(s string) (string, bool) {
	for {
		open := strings.IndexByte(s, '\'')
		if open < 0 {
			return "", false
		}
		rest := s[open+1:]
		end := strings.IndexByte(rest, '\'')
		if end < 0 {
			return "", false
		}
		if end > 0 {
			return rest[:end], true
		}
		s = rest[1:]
	}
}
