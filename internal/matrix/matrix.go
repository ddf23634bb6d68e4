// Package matrix lays out the per-function test matrix: one column per
// executed test case and a fixed set of semantic rows describing
// conditions, confirmations and results.
package matrix

import (
	"fmt"

	"github.com/unbound-force/casegrid/internal/aggregate"
	"github.com/unbound-force/casegrid/internal/classify"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// DefaultSelectedToken marks the cells of a presence row that apply to
// a test case.
const DefaultSelectedToken = "O"

// Options configures Build.
type Options struct {
	// SelectedToken marks present cells. Empty means
	// DefaultSelectedToken.
	SelectedToken string
}

// Column is one test case of a sheet.
type Column struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Scenario string              `json:"scenario,omitempty"`
	Case     classify.Case       `json:"case"`
	Record   taxonomy.TestRecord `json:"record"`
}

// Sheet is the rendered grid of one function group. A Sheet is not
// modified after Build returns it.
type Sheet struct {
	// Name is the sanitized, run-unique sheet name.
	Name string `json:"name"`

	Class    string `json:"class"`
	Function string `json:"function"`

	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Width returns the number of test-case columns.
func (s Sheet) Width() int {
	return len(s.Columns)
}

// ColumnID returns the positional identifier of the i-th column,
// counting from 1.
func ColumnID(i int) string {
	return fmt.Sprintf("UTCID%02d", i)
}

// Build lays out the matrix of g. The sheet name is allocated from
// namer, so Build must be called once per group in report order.
func Build(ctx *aggregate.Context, namer *Namer, g *aggregate.Group, opts Options) Sheet {
	token := opts.SelectedToken
	if token == "" {
		token = DefaultSelectedToken
	}

	cols := make([]Column, len(g.Records))
	for i, rec := range g.Records {
		scenario, _ := ctx.Expectation(rec, g.Doc)
		cols[i] = Column{
			ID:       ColumnID(i + 1),
			Title:    rec.Title(),
			Scenario: scenario,
			Case:     ctx.Classify(rec, g.Doc),
			Record:   rec,
		}
	}

	b := rowBuilder{cols: cols, token: token}
	b.add(RowHeader, "", func(c Column) string { return c.ID })
	b.section("Condition")
	b.blank(RowPrecondition, "Precondition")
	for _, scenario := range distinct(cols, func(c Column) string { return c.Scenario }) {
		b.presence(RowInput, "Input: "+scenario, func(c Column) bool { return c.Scenario == scenario })
	}
	b.section("Confirm")
	b.blank(RowReturn, "Return")
	b.presence(RowFalse, "FALSE", func(c Column) bool { return c.Case.Kind == taxonomy.KindFalse })
	b.presence(RowTrue, "TRUE", func(c Column) bool { return c.Case.Kind == taxonomy.KindTrue })
	b.blank(RowException, "Exception")
	b.blank(RowLogHeader, "Log message")
	for _, msg := range distinct(cols, func(c Column) string { return c.Case.LogMessage }) {
		b.presence(RowLogMessage, msg, func(c Column) bool { return c.Case.LogMessage == msg })
	}
	b.section("Result")
	b.add(RowCaseType, "Type(N/A/B)", func(c Column) string { return string(c.Case.Type) })
	b.add(RowOutcome, "Passed/Failed", func(c Column) string { return taxonomy.ResultMark(c.Record.Outcome) })
	b.add(RowExecutedDate, "Executed Date", func(c Column) string { return c.Record.ExecutedDate() })
	b.blank(RowDefectID, "Defect ID")

	return Sheet{
		Name:     namer.Assign(g.Doc.Function),
		Class:    g.Doc.Class,
		Function: g.Doc.Function,
		Columns:  cols,
		Rows:     b.rows,
	}
}

// distinct returns the non-empty values of key in order of first
// appearance.
func distinct(cols []Column, key func(Column) string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range cols {
		v := key(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

type rowBuilder struct {
	cols  []Column
	token string
	rows  []Row
}

func (b *rowBuilder) add(kind RowKind, label string, cell func(Column) string) {
	cells := make([]string, len(b.cols))
	if cell != nil {
		for i, c := range b.cols {
			cells[i] = cell(c)
		}
	}
	b.rows = append(b.rows, Row{Kind: kind, Label: label, Cells: cells})
}

func (b *rowBuilder) section(label string) {
	b.add(RowSection, label, nil)
}

func (b *rowBuilder) blank(kind RowKind, label string) {
	b.add(kind, label, nil)
}

func (b *rowBuilder) presence(kind RowKind, label string, selected func(Column) bool) {
	b.add(kind, label, func(c Column) string {
		if selected(c) {
			return b.token
		}
		return ""
	})
}
