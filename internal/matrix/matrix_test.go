package matrix

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"pgregory.net/rapid"

	"github.com/unbound-force/casegrid/internal/aggregate"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

func TestNamer_Dedup(t *testing.T) {
	n := NewNamer(0, 0, ReservedSheetNames...)
	if got := n.Assign("Validate"); got != "Validate" {
		t.Errorf("first Assign = %q, want Validate", got)
	}
	if got := n.Assign("Validate"); got != "Validate (2)" {
		t.Errorf("second Assign = %q, want %q", got, "Validate (2)")
	}
	if got := n.Assign("validate"); got != "validate (3)" {
		t.Errorf("case-insensitive Assign = %q, want %q", got, "validate (3)")
	}
}

func TestNamer_ReservedNames(t *testing.T) {
	n := NewNamer(0, 0, ReservedSheetNames...)
	if got := n.Assign("Statistics"); got != "Statistics (2)" {
		t.Errorf("Assign(Statistics) = %q, want %q", got, "Statistics (2)")
	}
	if got := n.Assign("summary"); got != "summary (2)" {
		t.Errorf("Assign(summary) = %q, want %q", got, "summary (2)")
	}
}

func TestNamer_Sanitize(t *testing.T) {
	n := NewNamer(0, 0)
	tests := []struct {
		in, want string
	}{
		{"Get/Set", "Get_Set"},
		{`a\b*c[d]e:f?g`, "a_b_c_d_e_f_g"},
		{"'quoted'", "_quoted_"},
		{"", "Sheet"},
		{"   ", "Sheet"},
		{"ThisFunctionNameIsDefinitelyTooLong", "ThisFunctionNameIsDefinit"},
		{"ÜberlangerFunktionsnameMitUmlauten", "ÜberlangerFunktionsnameMi"},
	}
	for _, tt := range tests {
		if got := n.Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamer_SuffixRetruncates(t *testing.T) {
	n := NewNamer(31, 31)
	long := strings.Repeat("x", 40)
	first := n.Assign(long)
	second := n.Assign(long)
	if first != strings.Repeat("x", 31) {
		t.Errorf("first = %q, want 31 x", first)
	}
	if want := strings.Repeat("x", 27) + " (2)"; second != want {
		t.Errorf("second = %q, want %q", second, want)
	}
}

func TestNamer_UniqueAndBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := NewNamer(0, 0, ReservedSheetNames...)
		names := rapid.SliceOf(rapid.SampledFrom([]string{
			"Validate", "validate", "Get/Set", "Login", "Summary", "",
			strings.Repeat("LongName", 5), "a:b", "Functions",
		})).Draw(t, "names")

		seen := map[string]bool{}
		for _, r := range ReservedSheetNames {
			seen[strings.ToLower(r)] = true
		}
		for _, name := range names {
			got := n.Assign(name)
			if l := utf8.RuneCountInString(got); l > MaxSheetName || l == 0 {
				t.Fatalf("Assign(%q) = %q has length %d", name, got, l)
			}
			if strings.ContainsAny(got, `\/*[]:?`) {
				t.Fatalf("Assign(%q) = %q contains a forbidden character", name, got)
			}
			key := strings.ToLower(got)
			if seen[key] {
				t.Fatalf("Assign(%q) = %q reused a name", name, got)
			}
			seen[key] = true
		}
	})
}

func TestColumnID(t *testing.T) {
	tests := map[int]string{1: "UTCID01", 9: "UTCID09", 10: "UTCID10", 123: "UTCID123"}
	for i, want := range tests {
		if got := ColumnID(i); got != want {
			t.Errorf("ColumnID(%d) = %q, want %q", i, got, want)
		}
	}
}

func buildLoginSheet(t *testing.T) Sheet {
	t.Helper()
	ctx := aggregate.NewContext([]taxonomy.MethodDoc{
		{Class: "AuthService", Method: "Login_ShouldReturnTrue_WhenValid", Scenario: "Valid credentials", Expected: "Returns true"},
		{Class: "AuthService", Method: "Login_ShouldReturnFalse_WhenInvalid", Scenario: "Wrong password", Expected: "Returns false"},
		{Class: "AuthService", Method: "Login_WhenLocked", Scenario: "Wrong password", Expected: "Throws 'Account locked' error"},
	}, aggregate.Options{})
	day := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	res := aggregate.BuildGroups(ctx, []taxonomy.TestRecord{
		{Class: "AuthService", Method: "Login_ShouldReturnTrue_WhenValid", Outcome: taxonomy.Passed, EndTime: day},
		{Class: "AuthService", Method: "Login_ShouldReturnFalse_WhenInvalid", Outcome: taxonomy.Failed, StartTime: day},
		{Class: "AuthService", Method: "Login_WhenLocked", Outcome: taxonomy.NotExecuted},
	})
	if len(res.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(res.Groups))
	}
	return Build(ctx, NewNamer(0, 0, ReservedSheetNames...), res.Groups[0], Options{})
}

func TestBuild_Layout(t *testing.T) {
	s := buildLoginSheet(t)

	if s.Name != "Login" || s.Class != "AuthService" || s.Width() != 3 {
		t.Fatalf("sheet = %q/%q width %d, want Login/AuthService width 3", s.Name, s.Class, s.Width())
	}

	want := []struct {
		kind  RowKind
		label string
		cells []string
	}{
		{RowHeader, "", []string{"UTCID01", "UTCID02", "UTCID03"}},
		{RowSection, "Condition", []string{"", "", ""}},
		{RowPrecondition, "Precondition", []string{"", "", ""}},
		{RowInput, "Input: Valid credentials", []string{"O", "", ""}},
		{RowInput, "Input: Wrong password", []string{"", "O", "O"}},
		{RowSection, "Confirm", []string{"", "", ""}},
		{RowReturn, "Return", []string{"", "", ""}},
		{RowFalse, "FALSE", []string{"", "O", ""}},
		{RowTrue, "TRUE", []string{"O", "", ""}},
		{RowException, "Exception", []string{"", "", ""}},
		{RowLogHeader, "Log message", []string{"", "", ""}},
		{RowLogMessage, "Success", []string{"O", "", ""}},
		{RowLogMessage, "Invalid input", []string{"", "O", ""}},
		{RowLogMessage, "Account locked", []string{"", "", "O"}},
		{RowSection, "Result", []string{"", "", ""}},
		{RowCaseType, "Type(N/A/B)", []string{"N", "A", "A"}},
		{RowOutcome, "Passed/Failed", []string{"P", "F", ""}},
		{RowExecutedDate, "Executed Date", []string{"2025-03-14", "2025-03-14", ""}},
		{RowDefectID, "Defect ID", []string{"", "", ""}},
	}
	if len(s.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(s.Rows), len(want))
	}
	for i, w := range want {
		r := s.Rows[i]
		if r.Kind != w.kind || r.Label != w.label {
			t.Errorf("row %d = %v %q, want %v %q", i, r.Kind, r.Label, w.kind, w.label)
		}
		if strings.Join(r.Cells, "|") != strings.Join(w.cells, "|") {
			t.Errorf("row %d (%s) cells = %q, want %q", i, w.label, r.Cells, w.cells)
		}
	}
}

func TestBuild_ReservedRowsBlank(t *testing.T) {
	s := buildLoginSheet(t)
	for _, r := range s.Rows {
		if !r.Kind.Reserved() {
			continue
		}
		for j, c := range r.Cells {
			if c != "" {
				t.Errorf("reserved row %s cell %d = %q, want blank", r.Label, j, c)
			}
		}
	}
}

func TestBuild_SelectedToken(t *testing.T) {
	ctx := aggregate.NewContext(nil, aggregate.Options{})
	res := aggregate.BuildGroups(ctx, []taxonomy.TestRecord{
		{Class: "C", Method: "Check_ShouldReturnTrue", Outcome: taxonomy.Passed},
	})
	s := Build(ctx, NewNamer(0, 0), res.Groups[0], Options{SelectedToken: "X"})
	for _, r := range s.Rows {
		if r.Kind == RowTrue && r.Cells[0] != "X" {
			t.Errorf("TRUE cell = %q, want X", r.Cells[0])
		}
	}
}

func TestRowKind_String(t *testing.T) {
	if RowLogMessage.String() != "log_message" {
		t.Errorf("String() = %q, want log_message", RowLogMessage.String())
	}
	if RowKind(99).String() != "unknown" {
		t.Errorf("String() = %q, want unknown", RowKind(99).String())
	}
	if !RowHeader.Section() || RowTrue.Section() {
		t.Error("Section() misclassified header or data row")
	}
}
