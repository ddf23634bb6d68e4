package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/unbound-force/casegrid/internal/coverage"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// TextOptions controls WriteTextOptions output.
type TextOptions struct {
	// Matrices prints every matrix sheet after the summary.
	Matrices bool
}

// WriteText writes the report as human-readable styled text to the
// writer. Output uses lipgloss for color and formatting when the
// output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, r *Report) error {
	return WriteTextOptions(w, r, TextOptions{})
}

// WriteTextOptions writes the report as styled text with options.
func WriteTextOptions(w io.Writer, r *Report, opts TextOptions) error {
	s := DefaultStyles()

	if len(r.Statistics) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No functions found."))
		return nil
	}

	fmt.Fprintln(w, s.Header.Render("--- Statistics ---"))
	fmt.Fprintln(w, statisticsTable(r, s))

	writeSummary(w, r, s)

	if len(r.Summary.Slowest) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render(
			fmt.Sprintf("--- Slowest Tests (top %d) ---", len(r.Summary.Slowest))))
		for i, t := range r.Summary.Slowest {
			fmt.Fprintf(w, "  %d. %s  %s  %s %s\n",
				i+1, t.Duration, t.Name, taxonomy.StatusOf(t.Outcome), s.Muted.Render("("+t.Class+")"))
		}
	}

	if len(r.FailedTests) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Header.Render(
			fmt.Sprintf("--- Failed Tests (%d) ---", len(r.FailedTests))))
		for _, f := range r.FailedTests {
			fmt.Fprintf(w, "  %s %s\n", s.Fail.Render("✗"), f.Name)
			if f.ErrorMessage != "" {
				fmt.Fprintf(w, "    %s\n", s.Muted.Render(f.ErrorMessage))
			}
		}
	}

	if opts.Matrices {
		for _, sheet := range r.Sheets {
			fmt.Fprintln(w)
			fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %s ===", sheet.Name)))
			fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf("    %s.%s", sheet.Class, sheet.Function)))
			fmt.Fprintln(w, MatrixTable(sheet, s))
		}
	}
	return nil
}

func statisticsTable(r *Report, s Styles) *table.Table {
	rows := make([][]string, 0, len(r.Statistics))
	for i, st := range r.Statistics {
		sheet := r.Functions[i].SheetName
		if sheet == "" {
			sheet = "-"
		}
		rows = append(rows, []string{
			st.Code,
			r.Functions[i].Class + "." + r.Functions[i].Function,
			strconv.Itoa(st.Passed),
			strconv.Itoa(st.Failed),
			strconv.Itoa(st.Untested),
			strconv.Itoa(st.Normal),
			strconv.Itoa(st.Abnormal),
			strconv.Itoa(st.Boundary),
			strconv.Itoa(st.Total),
			sheet,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if row < 0 || row >= len(rows) || rows[row][col] == "0" {
				return s.TableCell
			}
			switch col {
			case 2:
				return s.Pass
			case 3:
				return s.Fail
			case 4:
				return s.Untested
			}
			return s.TableCell
		}).
		Headers("CODE", "FUNCTION", "P", "F", "U", "N", "A", "B", "TOTAL", "SHEET").
		Rows(rows...)
}

func writeSummary(w io.Writer, r *Report, s Styles) {
	sum := r.Summary
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Header.Render("--- Summary ---"))
	if r.Project.Name != "" {
		fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Project:"), r.Project.Name)
	}
	fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Functions:"),
		fmt.Sprintf("%d (%d auto-generated)", sum.Functions, sum.Synthesized))
	fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Total tests:"), humanize.Comma(int64(sum.Total)))
	fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Passed:"), s.Pass.Render(strconv.Itoa(sum.Passed)))
	failed := strconv.Itoa(sum.Failed)
	if sum.Failed > 0 {
		failed = s.Fail.Render(failed)
	}
	fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Failed:"), failed)
	fmt.Fprintf(w, "%s  %d\n", s.SummaryLabel.Render("Skipped:"), sum.Skipped)
	fmt.Fprintf(w, "%s  %d\n", s.SummaryLabel.Render("Other:"), sum.Other)
	fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Pass rate:"), sum.PassRateText())
	fmt.Fprintf(w, "%s  N:%d A:%d B:%d\n", s.SummaryLabel.Render("Case types:"),
		sum.Normal, sum.Abnormal, sum.Boundary)
	if r.Coverage != nil {
		fmt.Fprintf(w, "%s  %s\n", s.SummaryLabel.Render("Line coverage:"), coverage.Percent(r.Coverage.LineCoverage))
	}
}
