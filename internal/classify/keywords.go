package classify

import (
	"strings"

	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// errorKeywords are phrases in expected-behavior text that signal the
// test asserts a failure path.
var errorKeywords = []string{
	"not found",
	"conflict",
	"bad request",
	"unauthorized",
	"forbidden",
	"invalid",
	"error",
	"exception",
	"missing",
	"null",
	"empty",
	"failed",
}

// nameKinds maps literal test-name markers to the expected kind they
// imply. Names are lower-cased before lookup.
var nameKinds = []struct {
	marker string
	kind   taxonomy.ExpectedKind
}{
	{"shouldreturntrue", taxonomy.KindTrue},
	{"shouldreturnfalse", taxonomy.KindFalse},
	{"shouldthrow", taxonomy.KindException},
	{"exception", taxonomy.KindException},
}

// logMessages maps keywords to the canonical log message reported for
// them, checked in order.
var logMessages = []struct {
	keyword string
	message string
}{
	{"not found", "Not Found"},
	{"conflict", "Conflict"},
	{"bad request", "Bad Request"},
	{"unauthorized", "Unauthorized"},
	{"forbidden", "Forbidden"},
	{"invalid", "Invalid input"},
	{"missing", "Missing input"},
	{"error", "Error"},
	{"exception", "Error"},
}

// compact removes spaces so a phrase keyword can be found in an
// identifier such as "GetUser_WhenNotFound".
func compact(keyword string) string {
	return strings.ReplaceAll(keyword, " ", "")
}

// containsAny reports whether text contains any keyword. With asName
// set, keywords are compacted to match identifiers.
func containsAny(text string, keywords []string, asName bool) bool {
	for _, kw := range keywords {
		if asName {
			kw = compact(kw)
		}
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// lookupMessage returns the canonical message for the first table
// keyword found in text.
func lookupMessage(text string, asName bool) (string, bool) {
	for _, lm := range logMessages {
		kw := lm.keyword
		if asName {
			kw = compact(kw)
		}
		if strings.Contains(text, kw) {
			return lm.message, true
		}
	}
	return "", false
}
