// Package aggregate groups test execution records by the function
// under test they exercise and rolls statistics up per group.
package aggregate

import (
	"fmt"

	"github.com/unbound-force/casegrid/internal/naming"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// Group is one function under test with the records matched to it,
// in input order.
type Group struct {
	Doc     taxonomy.FunctionDoc  `json:"function"`
	Records []taxonomy.TestRecord `json:"records"`
}

// Key returns the aggregation key of the group.
func (g *Group) Key() taxonomy.FunctionKey {
	return g.Doc.Key()
}

// Result is the outcome of BuildGroups.
type Result struct {
	// Groups holds one entry per registered function, in registration
	// order. Documented functions without records have empty groups.
	Groups []*Group

	// Records is the number of input records.
	Records int
}

// CollectFunctions merges method documentation into one FunctionDoc per
// (class, base function name). The first non-empty value of each field
// wins. Entries are returned in first-appearance order.
func CollectFunctions(methodDocs []taxonomy.MethodDoc, splitter naming.Splitter) []taxonomy.FunctionDoc {
	var out []taxonomy.FunctionDoc
	pos := make(map[taxonomy.FunctionKey]int)
	for _, md := range methodDocs {
		fd := taxonomy.FunctionDoc{
			Class:        md.Class,
			Function:     splitter.BaseFunctionName(md.Method),
			Description:  md.Summary,
			Precondition: md.Scenario,
			Expected:     md.Expected,
			Requirement:  md.Coverage,
		}
		i, ok := pos[fd.Key()]
		if !ok {
			pos[fd.Key()] = len(out)
			out = append(out, fd)
			continue
		}
		merged := &out[i]
		fillEmpty(&merged.Description, fd.Description)
		fillEmpty(&merged.Precondition, fd.Precondition)
		fillEmpty(&merged.Expected, fd.Expected)
		fillEmpty(&merged.Requirement, fd.Requirement)
	}
	return out
}

func fillEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// Synthesize returns the placeholder documentation for a record that
// matched no documented function.
func Synthesize(rec taxonomy.TestRecord, splitter naming.Splitter) taxonomy.FunctionDoc {
	return taxonomy.FunctionDoc{
		Class:       rec.Class,
		Function:    splitter.BaseFunctionName(rec.Method),
		Description: fmt.Sprintf("Auto-generated for %s", rec.Method),
		Synthesized: true,
	}
}

// BuildGroups assigns every record to exactly one group. Each record
// is tried against the registered functions of its own class in
// registration order and the first match wins. A record that matches
// nothing is attached to a synthesized function named after its base
// function name, which is registered so later records group with it.
func BuildGroups(ctx *Context, records []taxonomy.TestRecord) *Result {
	assigned := make(map[int][]taxonomy.TestRecord)

	for _, rec := range records {
		i, ok := ctx.match(rec)
		if !ok {
			i = ctx.register(Synthesize(rec, ctx.splitter))
		}
		assigned[i] = append(assigned[i], rec)
	}

	res := &Result{
		Groups:  make([]*Group, len(ctx.docs)),
		Records: len(records),
	}
	for i, doc := range ctx.docs {
		res.Groups[i] = &Group{Doc: doc, Records: assigned[i]}
	}
	return res
}

// match returns the registry position of the first function of the
// record's class that the matcher accepts.
func (c *Context) match(rec taxonomy.TestRecord) (int, bool) {
	for i, doc := range c.docs {
		if doc.Class != rec.Class {
			continue
		}
		if c.matcher.SameFunction(doc.Function, rec.Method) {
			return i, true
		}
	}
	return 0, false
}

// Grouped returns the number of records across all groups.
func (r *Result) Grouped() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Records)
	}
	return n
}

// WithRecords returns the groups that hold at least one record.
func (r *Result) WithRecords() []*Group {
	var out []*Group
	for _, g := range r.Groups {
		if len(g.Records) > 0 {
			out = append(out, g)
		}
	}
	return out
}
