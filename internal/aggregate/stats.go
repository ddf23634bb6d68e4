package aggregate

import (
	"sort"

	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// slowestLimit is the number of records reported by Totals.Slowest.
const slowestLimit = 5

// Stats is the per-function rollup shown on the Statistics sheet.
// Passed+Failed+Untested and Normal+Abnormal+Boundary both equal Total.
type Stats struct {
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Untested int `json:"untested"`
	Normal   int `json:"normal"`
	Abnormal int `json:"abnormal"`
	Boundary int `json:"boundary"`
	Total    int `json:"total"`
}

// add counts one record.
func (s *Stats) add(outcome taxonomy.Outcome, ct taxonomy.CaseType) {
	switch outcome {
	case taxonomy.Passed:
		s.Passed++
	case taxonomy.Failed:
		s.Failed++
	default:
		s.Untested++
	}
	switch ct {
	case taxonomy.Boundary:
		s.Boundary++
	case taxonomy.Abnormal:
		s.Abnormal++
	default:
		s.Normal++
	}
	s.Total++
}

// Statistics computes the rollup of g in a single pass over its
// records. Case types are derived per record through ctx.
func Statistics(ctx *Context, g *Group) Stats {
	var s Stats
	for _, rec := range g.Records {
		s.add(rec.Outcome, ctx.Classify(rec, g.Doc).Type)
	}
	return s
}

// Totals summarizes a whole run.
type Totals struct {
	Stats

	// Skipped counts NotExecuted records. Other counts the remaining
	// untested outcomes. Skipped+Other == Untested.
	Skipped int `json:"skipped"`
	Other   int `json:"other"`

	// Functions is the number of registered functions; Synthesized is
	// how many of them had no documentation.
	Functions   int `json:"functions"`
	Synthesized int `json:"synthesized"`

	// PassRate is Passed/Total as a percentage, 0 for an empty run.
	PassRate float64 `json:"pass_rate"`

	// Slowest holds up to five records ordered by descending duration.
	Slowest []taxonomy.TestRecord `json:"slowest"`
}

// Totals computes run-wide statistics across all groups.
func (r *Result) Totals(ctx *Context) Totals {
	var t Totals
	var all []taxonomy.TestRecord
	for _, g := range r.Groups {
		t.Functions++
		if g.Doc.Synthesized {
			t.Synthesized++
		}
		for _, rec := range g.Records {
			t.add(rec.Outcome, ctx.Classify(rec, g.Doc).Type)
			if rec.Outcome == taxonomy.NotExecuted {
				t.Skipped++
			}
			all = append(all, rec)
		}
	}
	t.Other = t.Untested - t.Skipped
	if t.Total > 0 {
		t.PassRate = float64(t.Passed) / float64(t.Total) * 100
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Duration > all[j].Duration
	})
	if len(all) > slowestLimit {
		all = all[:slowestLimit]
	}
	t.Slowest = all
	return t
}
