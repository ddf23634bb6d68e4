package aggregate

import (
	"github.com/unbound-force/casegrid/internal/classify"
	"github.com/unbound-force/casegrid/internal/matching"
	"github.com/unbound-force/casegrid/internal/naming"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// Options configures a Context.
type Options struct {
	// Matcher attaches records to documented functions. Nil means
	// matching.Heuristic using Splitter.
	Matcher matching.Matcher

	// Splitter extracts base function names from test methods.
	Splitter naming.Splitter
}

// methodKey identifies one documented test method.
type methodKey struct {
	class  string
	method string
}

// Context is the run-scoped state of one aggregation: the ordered
// function registry, the per-method documentation index and the
// matching strategy. A Context is not safe for concurrent use.
type Context struct {
	matcher  matching.Matcher
	splitter naming.Splitter

	docs  []taxonomy.FunctionDoc
	index map[taxonomy.FunctionKey]int

	methods map[methodKey]taxonomy.MethodDoc
}

// NewContext builds a Context whose registry holds the functions
// collected from methodDocs, in first-appearance order.
func NewContext(methodDocs []taxonomy.MethodDoc, opts Options) *Context {
	m := opts.Matcher
	if m == nil {
		m = matching.Heuristic{Splitter: opts.Splitter}
	}
	c := &Context{
		matcher:  m,
		splitter: opts.Splitter,
		index:    make(map[taxonomy.FunctionKey]int),
		methods:  make(map[methodKey]taxonomy.MethodDoc, len(methodDocs)),
	}
	for _, md := range methodDocs {
		k := methodKey{md.Class, naming.StripParameterList(md.Method)}
		if _, ok := c.methods[k]; !ok {
			c.methods[k] = md
		}
	}
	for _, fd := range CollectFunctions(methodDocs, opts.Splitter) {
		c.register(fd)
	}
	return c
}

// register appends fd unless its key is already registered and
// returns the registry position of the key.
func (c *Context) register(fd taxonomy.FunctionDoc) int {
	if i, ok := c.index[fd.Key()]; ok {
		return i
	}
	c.docs = append(c.docs, fd)
	c.index[fd.Key()] = len(c.docs) - 1
	return len(c.docs) - 1
}

// Functions returns a copy of the registry in registration order.
func (c *Context) Functions() []taxonomy.FunctionDoc {
	out := make([]taxonomy.FunctionDoc, len(c.docs))
	copy(out, c.docs)
	return out
}

// Splitter returns the splitter used for base function names.
func (c *Context) Splitter() naming.Splitter {
	return c.splitter
}

// Expectation returns the scenario and expected-behavior text for rec.
// The record's own method documentation is preferred, field by field,
// over the documentation of the function it was grouped under.
func (c *Context) Expectation(rec taxonomy.TestRecord, doc taxonomy.FunctionDoc) (scenario, expected string) {
	scenario, expected = doc.Precondition, doc.Expected
	md, ok := c.methods[methodKey{rec.Class, rec.Method}]
	if !ok {
		return scenario, expected
	}
	if md.Scenario != "" {
		scenario = md.Scenario
	}
	if md.Expected != "" {
		expected = md.Expected
	}
	return scenario, expected
}

// Classify classifies rec in the context of the function doc it was
// grouped under.
func (c *Context) Classify(rec taxonomy.TestRecord, doc taxonomy.FunctionDoc) classify.Case {
	_, expected := c.Expectation(rec, doc)
	return classify.Classify(expected, rec.Title())
}
