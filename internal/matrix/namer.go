package matrix

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sheet-name limits. Spreadsheet applications reject names longer than
// MaxSheetName characters.
const (
	DefaultSheetNameBase = 25
	MaxSheetName         = 31
)

// ReservedSheetNames are the summary sheets every report may contain.
var ReservedSheetNames = []string{
	"Functions",
	"Statistics",
	"Summary",
	"Failed Tests",
	"Code Coverage",
}

var forbidden = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	"*", "_",
	"[", "_",
	"]", "_",
	":", "_",
	"?", "_",
)

// Namer allocates run-unique sheet names. Names are compared
// case-insensitively. A Namer is not safe for concurrent use.
type Namer struct {
	base int
	max  int
	used map[string]struct{}
}

// NewNamer returns a Namer that truncates sanitized names to base
// characters and never returns a name longer than limit. Non-positive
// or out-of-range values fall back to the defaults. The reserved names
// are pre-registered.
func NewNamer(base, limit int, reserved ...string) *Namer {
	if limit <= 0 || limit > MaxSheetName {
		limit = MaxSheetName
	}
	if base <= 0 || base > limit {
		base = min(DefaultSheetNameBase, limit)
	}
	n := &Namer{base: base, max: limit, used: make(map[string]struct{})}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = struct{}{}
	}
	return n
}

// Sanitize replaces characters spreadsheets forbid in sheet names with
// underscores and truncates the result to the namer's base length.
// Leading and trailing apostrophes are replaced as well. An empty name
// becomes "Sheet".
func (n *Namer) Sanitize(name string) string {
	s := forbidden.Replace(name)
	if strings.HasPrefix(s, "'") {
		s = "_" + s[1:]
	}
	if strings.HasSuffix(s, "'") {
		s = s[:len(s)-1] + "_"
	}
	s = truncate(s, n.base)
	if strings.TrimSpace(s) == "" {
		return "Sheet"
	}
	return s
}

// Assign sanitizes name and de-duplicates it against every name
// assigned or reserved so far by appending " (2)", " (3)", and so on.
// The base is shortened when the suffix would exceed the length limit.
func (n *Namer) Assign(name string) string {
	safe := n.Sanitize(name)
	final := safe
	for counter := 2; n.taken(final); counter++ {
		suffix := " (" + strconv.Itoa(counter) + ")"
		final = truncate(safe, n.max-utf8.RuneCountInString(suffix)) + suffix
	}
	n.used[strings.ToLower(final)] = struct{}{}
	return final
}

func (n *Namer) taken(name string) bool {
	_, ok := n.used[strings.ToLower(name)]
	return ok
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
