package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/unbound-force/casegrid/internal/coverage"
	"github.com/unbound-force/casegrid/internal/matrix"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// Spreadsheet fills and column widths.
const (
	tableHeaderFill  = "1F4E78"
	matrixHeaderFill = "1E1B4B"

	matrixLabelWidth = 45
	matrixCellWidth  = 15
)

// xlsxStyles holds the style IDs registered with a workbook.
type xlsxStyles struct {
	tableHeader int
	header      int
	section     int
	label       int
	data        int
	link        int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	white := &excelize.Font{Bold: true, Color: "FFFFFF"}

	var st xlsxStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.tableHeader, &excelize.Style{
			Font:   white,
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{tableHeaderFill}},
			Border: border,
		}},
		{&st.header, &excelize.Style{
			Font:      white,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{matrixHeaderFill}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		}},
		{&st.section, &excelize.Style{
			Font:      white,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{matrixHeaderFill}},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Border:    border,
		}},
		{&st.label, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
			Border:    border,
		}},
		{&st.data, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		}},
		{&st.link, &excelize.Style{
			Font: &excelize.Font{Color: "0563C1", Underline: "single"},
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("registering style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

// WriteXLSX renders the report as an .xlsx workbook: the Functions,
// Statistics and Summary sheets, Failed Tests and Code Coverage when
// they have content, then one matrix sheet per function. Statistics
// codes link to the first cell of their matrix sheet.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newXLSXStyles(f)
	if err != nil {
		return err
	}

	// NewFile starts with a default sheet; rename it instead of
	// leaving an empty one behind.
	if err := f.SetSheetName(f.GetSheetName(0), SheetFunctions); err != nil {
		return fmt.Errorf("naming %s sheet: %w", SheetFunctions, err)
	}

	steps := []struct {
		sheet string
		skip  bool
		write func(*excelize.File, string, *Report, xlsxStyles) error
	}{
		{SheetFunctions, false, writeFunctionsSheet},
		{SheetStatistics, false, writeStatisticsSheet},
		{SheetSummary, false, writeSummarySheet},
		{SheetFailedTests, len(r.FailedTests) == 0, writeFailedSheet},
		{SheetCoverage, r.Coverage == nil, writeCoverageSheet},
	}
	for _, step := range steps {
		if step.skip {
			continue
		}
		if step.sheet != SheetFunctions {
			if _, err := f.NewSheet(step.sheet); err != nil {
				return fmt.Errorf("creating %s sheet: %w", step.sheet, err)
			}
		}
		if err := step.write(f, step.sheet, r, st); err != nil {
			return fmt.Errorf("writing %s sheet: %w", step.sheet, err)
		}
	}

	for _, sheet := range r.Sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet.Name, err)
		}
		if err := writeMatrixSheet(f, sheet, st); err != nil {
			return fmt.Errorf("writing sheet %q: %w", sheet.Name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// writeTable writes a header row styled as a table header followed by
// the data rows, starting at A1.
func writeTable(f *excelize.File, sheet string, headers []string, rows [][]any, st xlsxStyles) error {
	hdr := make([]any, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, st.tableHeader); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func writeFunctionsSheet(f *excelize.File, sheet string, r *Report, st xlsxStyles) error {
	rows := make([][]any, 0, len(r.Functions))
	for _, fn := range r.Functions {
		rows = append(rows, []any{
			fn.No, fn.Requirement, fn.Class, fn.Function,
			fn.Code, fn.SheetName, fn.Description, fn.Precondition,
		})
	}
	return writeTable(f, sheet, []string{
		"No", "RequirementName", "Class Name", "Function Name",
		"Function Code", "Sheet Name", "Description", "Pre-Condition",
	}, rows, st)
}

func writeStatisticsSheet(f *excelize.File, sheet string, r *Report, st xlsxStyles) error {
	rows := make([][]any, 0, len(r.Statistics))
	for _, s := range r.Statistics {
		rows = append(rows, []any{
			s.No, s.Code, s.Passed, s.Failed, s.Untested,
			s.Normal, s.Abnormal, s.Boundary, s.Total,
		})
	}
	if err := writeTable(f, sheet, []string{
		"No", "Function Code", "Passed", "Failed", "Untested",
		"N", "A", "B", "Total Test Cases",
	}, rows, st); err != nil {
		return err
	}

	// Links go in only after every matrix sheet name is final.
	for i, s := range r.Statistics {
		if s.Link == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(2, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellHyperLink(sheet, cell, s.Link.Location(), "Location"); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.link); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, r *Report, st xlsxStyles) error {
	s := r.Summary
	rows := [][]any{
		{"Project Name", r.Project.Name},
		{"Version", r.Project.Version},
		{"Branch", r.Project.Branch},
		{"Build Number", r.Project.Build},
		{"Generated At", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total Tests", s.Total},
		{"Passed", s.Passed},
		{"Failed", s.Failed},
		{"Skipped", s.Skipped},
		{"Other", s.Other},
		{"Pass Rate", s.PassRateText()},
		{"Functions", s.Functions},
		{"Auto-generated Functions", s.Synthesized},
	}
	return writeTable(f, sheet, []string{"Metric", "Value"}, rows, st)
}

func writeFailedSheet(f *excelize.File, sheet string, r *Report, st xlsxStyles) error {
	rows := make([][]any, 0, len(r.FailedTests))
	for _, t := range r.FailedTests {
		rows = append(rows, []any{
			t.Name, t.Class, taxonomy.StatusOf(t.Outcome), t.Duration.String(), t.ErrorMessage,
		})
	}
	return writeTable(f, sheet, []string{
		"Test Name", "Class Name", "Outcome", "Duration", "Error Message",
	}, rows, st)
}

func writeCoverageSheet(f *excelize.File, sheet string, r *Report, st xlsxStyles) error {
	c := r.Coverage
	rows := [][]any{{
		coverage.Percent(c.LineCoverage),
		coverage.Percent(c.BranchCoverage),
		coverage.Percent(c.MethodCoverage),
		coverage.Percent(c.ClassCoverage),
	}}
	return writeTable(f, sheet, []string{
		"Line Coverage", "Branch Coverage", "Method Coverage", "Class Coverage",
	}, rows, st)
}

func writeMatrixSheet(f *excelize.File, sheet matrix.Sheet, st xlsxStyles) error {
	if err := f.SetColWidth(sheet.Name, "A", "A", matrixLabelWidth); err != nil {
		return err
	}
	if sheet.Width() > 0 {
		last, err := excelize.ColumnNumberToName(sheet.Width() + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, "B", last, matrixCellWidth); err != nil {
			return err
		}
	}

	for i, row := range sheet.Rows {
		values := make([]any, 0, len(row.Cells)+1)
		values = append(values, row.Label)
		for _, c := range row.Cells {
			values = append(values, c)
		}
		first, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, first, &values); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(values), i+1)
		if err != nil {
			return err
		}

		switch row.Kind {
		case matrix.RowHeader:
			if err := f.SetCellStyle(sheet.Name, first, first, st.data); err != nil {
				return err
			}
			if len(values) > 1 {
				second, _ := excelize.CoordinatesToCellName(2, i+1)
				if err := f.SetCellStyle(sheet.Name, second, last, st.header); err != nil {
					return err
				}
			}
		case matrix.RowSection:
			if err := f.SetCellStyle(sheet.Name, first, last, st.section); err != nil {
				return err
			}
		default:
			if err := f.SetCellStyle(sheet.Name, first, first, st.label); err != nil {
				return err
			}
			if len(values) > 1 {
				second, _ := excelize.CoordinatesToCellName(2, i+1)
				if err := f.SetCellStyle(sheet.Name, second, last, st.data); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
