package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/unbound-force/casegrid/internal/coverage"
)

// WriteMarkdown writes the summary, statistics and failed tests as
// GitHub-flavored Markdown, suitable for a CI job summary.
func WriteMarkdown(w io.Writer, r *Report) error {
	var b strings.Builder

	title := "Test Matrix Report"
	if r.Project.Name != "" {
		title += ": " + r.Project.Name
	}
	fmt.Fprintf(&b, "## %s\n\n", title)

	sum := table.NewWriter()
	sum.AppendHeader(table.Row{"Metric", "Value"})
	sum.AppendRows([]table.Row{
		{"Total tests", r.Summary.Total},
		{"Passed", r.Summary.Passed},
		{"Failed", r.Summary.Failed},
		{"Skipped", r.Summary.Skipped},
		{"Other", r.Summary.Other},
		{"Pass rate", r.Summary.PassRateText()},
		{"Functions", r.Summary.Functions},
	})
	if r.Coverage != nil {
		sum.AppendRows([]table.Row{
			{"Line coverage", coverage.Percent(r.Coverage.LineCoverage)},
			{"Branch coverage", coverage.Percent(r.Coverage.BranchCoverage)},
			{"Method coverage", coverage.Percent(r.Coverage.MethodCoverage)},
		})
	}
	b.WriteString(sum.RenderMarkdown())
	b.WriteString("\n\n### Statistics\n\n")

	stats := table.NewWriter()
	stats.AppendHeader(table.Row{"No", "Code", "Function", "Passed", "Failed", "Untested", "N", "A", "B", "Total"})
	for i, st := range r.Statistics {
		fn := r.Functions[i]
		stats.AppendRow(table.Row{
			st.No, st.Code, fn.Class + "." + fn.Function,
			st.Passed, st.Failed, st.Untested,
			st.Normal, st.Abnormal, st.Boundary, st.Total,
		})
	}
	b.WriteString(stats.RenderMarkdown())
	b.WriteString("\n")

	if len(r.FailedTests) > 0 {
		b.WriteString("\n### Failed Tests\n\n")
		failed := table.NewWriter()
		failed.AppendHeader(table.Row{"Test", "Class", "Duration", "Error"})
		for _, f := range r.FailedTests {
			failed.AppendRow(table.Row{f.Name, f.Class, f.Duration.String(), f.ErrorMessage})
		}
		b.WriteString(failed.RenderMarkdown())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
