// Package report assembles the abstract report model of one run and
// renders it as a spreadsheet, JSON, styled text or Markdown.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/unbound-force/casegrid/internal/aggregate"
	"github.com/unbound-force/casegrid/internal/coverage"
	"github.com/unbound-force/casegrid/internal/matrix"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// Version is the version of the JSON report format.
const Version = "1.0.0"

// Summary sheet names.
const (
	SheetFunctions   = "Functions"
	SheetStatistics  = "Statistics"
	SheetSummary     = "Summary"
	SheetFailedTests = "Failed Tests"
	SheetCoverage    = "Code Coverage"
)

// maxErrorMessage is the length at which failure messages are cut on
// the Failed Tests sheet.
const maxErrorMessage = 100

// Project identifies the build the report was generated for.
type Project struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Branch  string `json:"branch,omitempty"`
	Build   string `json:"build,omitempty"`
}

// Report is the complete output of one run.
type Report struct {
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Project     Project   `json:"project"`

	Functions   []FunctionRow   `json:"functions"`
	Statistics  []StatisticsRow `json:"statistics"`
	Summary     Summary         `json:"summary"`
	FailedTests []FailedTest    `json:"failed_tests"`

	// Coverage is nil when no coverage summary was found.
	Coverage *coverage.Summary `json:"coverage,omitempty"`

	Sheets []matrix.Sheet `json:"sheets"`
}

// FunctionRow is one line of the Functions sheet.
type FunctionRow struct {
	No           int    `json:"no"`
	Requirement  string `json:"requirement"`
	Class        string `json:"class"`
	Function     string `json:"function"`
	Code         string `json:"code"`
	SheetName    string `json:"sheet_name"`
	Description  string `json:"description"`
	Precondition string `json:"precondition"`
	Synthesized  bool   `json:"synthesized"`
}

// StatisticsRow is one line of the Statistics sheet.
type StatisticsRow struct {
	No   int    `json:"no"`
	Code string `json:"code"`

	// Link points at the function's matrix sheet. It is nil for
	// functions without executed tests.
	Link *Link `json:"link,omitempty"`

	aggregate.Stats
}

// Link is an in-workbook reference to a cell of another sheet.
type Link struct {
	Sheet string `json:"sheet"`
	Cell  string `json:"cell"`
	Label string `json:"label"`
}

// Location returns the link target in "'Sheet'!A1" form.
func (l Link) Location() string {
	return QuoteSheet(l.Sheet) + "!" + l.Cell
}

// Formula returns the HYPERLINK spreadsheet formula for the link.
func (l Link) Formula() string {
	return fmt.Sprintf(`HYPERLINK("#%s","%s")`,
		strings.ReplaceAll(l.Location(), `"`, `""`),
		strings.ReplaceAll(l.Label, `"`, `""`))
}

// QuoteSheet quotes a sheet name for use in a cell reference.
func QuoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// Summary is the run-wide rollup shown on the Summary sheet.
type Summary struct {
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	Skipped     int     `json:"skipped"`
	Other       int     `json:"other"`
	Normal      int     `json:"normal"`
	Abnormal    int     `json:"abnormal"`
	Boundary    int     `json:"boundary"`
	Functions   int     `json:"functions"`
	Synthesized int     `json:"synthesized"`
	PassRate    float64 `json:"pass_rate"`

	Slowest []SlowTest `json:"slowest"`
}

// PassRateText formats the pass rate as "NN.NN%".
func (s Summary) PassRateText() string {
	return fmt.Sprintf("%.2f%%", s.PassRate)
}

// SlowTest is one entry of the slowest-tests list.
type SlowTest struct {
	Name     string           `json:"name"`
	Class    string           `json:"class"`
	Outcome  taxonomy.Outcome `json:"outcome"`
	Duration time.Duration    `json:"duration_ns"`
}

// FailedTest is one line of the Failed Tests sheet.
type FailedTest struct {
	Name         string           `json:"name"`
	Class        string           `json:"class"`
	Outcome      taxonomy.Outcome `json:"outcome"`
	Duration     time.Duration    `json:"duration_ns"`
	ErrorMessage string           `json:"error_message"`
}

// Options configures Build.
type Options struct {
	Project     Project
	GeneratedAt time.Time

	// Matrix configures the per-function sheets.
	Matrix matrix.Options

	// SheetNameBase and SheetNameMax bound matrix sheet names. Zero
	// means the matrix package defaults.
	SheetNameBase int
	SheetNameMax  int

	// Coverage is attached to the report when non-nil.
	Coverage *coverage.Summary
}

// Build assembles the report for an aggregated run. Functions and
// statistics rows follow registration order; every function with at
// least one record gets a matrix sheet. Statistics links are filled in
// only after all sheet names have been assigned.
func Build(ctx *aggregate.Context, res *aggregate.Result, opts Options) *Report {
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	r := &Report{
		Version:     Version,
		GeneratedAt: generated,
		Project:     opts.Project,
		Functions:   make([]FunctionRow, 0, len(res.Groups)),
		Statistics:  make([]StatisticsRow, 0, len(res.Groups)),
		FailedTests: []FailedTest{},
		Coverage:    opts.Coverage,
		Sheets:      []matrix.Sheet{},
	}

	for i, g := range res.Groups {
		no := i + 1
		code := fmt.Sprintf("Code_%d", no)
		r.Functions = append(r.Functions, FunctionRow{
			No:           no,
			Requirement:  g.Doc.Requirement,
			Class:        g.Doc.Class,
			Function:     g.Doc.Function,
			Code:         code,
			Description:  g.Doc.Description,
			Precondition: g.Doc.Precondition,
			Synthesized:  g.Doc.Synthesized,
		})
		r.Statistics = append(r.Statistics, StatisticsRow{
			No:    no,
			Code:  code,
			Stats: aggregate.Statistics(ctx, g),
		})
	}

	namer := matrix.NewNamer(opts.SheetNameBase, opts.SheetNameMax, matrix.ReservedSheetNames...)
	for i, g := range res.Groups {
		if len(g.Records) == 0 {
			continue
		}
		sheet := matrix.Build(ctx, namer, g, opts.Matrix)
		r.Sheets = append(r.Sheets, sheet)

		r.Functions[i].SheetName = sheet.Name
		r.Statistics[i].Link = &Link{Sheet: sheet.Name, Cell: "A1", Label: r.Statistics[i].Code}
	}

	totals := res.Totals(ctx)
	r.Summary = Summary{
		Total:       totals.Total,
		Passed:      totals.Passed,
		Failed:      totals.Failed,
		Skipped:     totals.Skipped,
		Other:       totals.Other,
		Normal:      totals.Normal,
		Abnormal:    totals.Abnormal,
		Boundary:    totals.Boundary,
		Functions:   totals.Functions,
		Synthesized: totals.Synthesized,
		PassRate:    totals.PassRate,
		Slowest:     make([]SlowTest, 0, len(totals.Slowest)),
	}
	for _, rec := range totals.Slowest {
		r.Summary.Slowest = append(r.Summary.Slowest, SlowTest{
			Name:     rec.Title(),
			Class:    rec.Class,
			Outcome:  rec.Outcome,
			Duration: rec.Duration,
		})
	}

	for _, g := range res.Groups {
		for _, rec := range g.Records {
			if rec.Outcome != taxonomy.Failed {
				continue
			}
			r.FailedTests = append(r.FailedTests, FailedTest{
				Name:         rec.Title(),
				Class:        rec.Class,
				Outcome:      rec.Outcome,
				Duration:     rec.Duration,
				ErrorMessage: truncateMessage(rec.ErrorMessage, maxErrorMessage),
			})
		}
	}
	return r
}

// truncateMessage cuts msg to limit runes and marks the cut with "...".
func truncateMessage(msg string, limit int) string {
	runes := []rune(msg)
	if len(runes) <= limit {
		return msg
	}
	return string(runes[:limit]) + "..."
}
