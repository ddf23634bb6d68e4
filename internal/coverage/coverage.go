// Package coverage reads the JSON coverage summary (Summary.json)
// written by ReportGenerator.
package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FileName is the name of the summary file searched for in the
// coverage directory.
const FileName = "Summary.json"

// Summary holds the run-wide coverage figures. Percentages are in the
// range 0-100 and are nil when the summary does not report them.
type Summary struct {
	Source string `json:"source,omitempty"`

	LineCoverage   *float64 `json:"line_coverage,omitempty"`
	BranchCoverage *float64 `json:"branch_coverage,omitempty"`
	MethodCoverage *float64 `json:"method_coverage,omitempty"`
	ClassCoverage  *float64 `json:"class_coverage,omitempty"`

	CoveredLines   int `json:"covered_lines"`
	CoverableLines int `json:"coverable_lines"`
}

// rawSummary mirrors the "summary" object of Summary.json.
type rawSummary struct {
	Summary struct {
		LineCoverage   *float64 `json:"linecoverage"`
		BranchCoverage *float64 `json:"branchcoverage"`
		MethodCoverage *float64 `json:"methodcoverage"`
		ClassCoverage  *float64 `json:"classcoverage"`
		CoveredLines   int      `json:"coveredlines"`
		CoverableLines int      `json:"coverablelines"`
	} `json:"summary"`
}

// Parse decodes a coverage summary from r.
func Parse(r io.Reader) (*Summary, error) {
	var raw rawSummary
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding coverage summary: %w", err)
	}
	s := raw.Summary
	return &Summary{
		LineCoverage:   s.LineCoverage,
		BranchCoverage: s.BranchCoverage,
		MethodCoverage: s.MethodCoverage,
		ClassCoverage:  s.ClassCoverage,
		CoveredLines:   s.CoveredLines,
		CoverableLines: s.CoverableLines,
	}, nil
}

// ParseFile reads the coverage summary at path.
func ParseFile(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening coverage summary: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

// Percent formats a coverage percentage with two decimals, or "N/A"
// when the value is unknown.
func Percent(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *p)
}
