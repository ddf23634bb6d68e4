// Package taxonomy defines the shared data model for casegrid: test
// execution records, their outcomes, documentation entries, and the
// derived expected-kind and case-type classifications.
package taxonomy

import (
	"time"
)

// Outcome enumerates the execution outcomes a test result file can
// report for a single test.
type Outcome string

// Outcome values as spelled in TRX result files.
const (
	Passed       Outcome = "Passed"
	Failed       Outcome = "Failed"
	NotExecuted  Outcome = "NotExecuted"
	Inconclusive Outcome = "Inconclusive"
	Error        Outcome = "Error"
	Timeout      Outcome = "Timeout"
	Aborted      Outcome = "Aborted"
	Unknown      Outcome = "Unknown"
)

// ParseOutcome maps a raw outcome string onto the Outcome enumeration.
// The comparison is exact; unrecognized values become Unknown.
func ParseOutcome(raw string) Outcome {
	switch o := Outcome(raw); o {
	case Passed, Failed, NotExecuted, Inconclusive, Error, Timeout, Aborted:
		return o
	default:
		return Unknown
	}
}

// TestRecord is one executed test taken from a result file. Records
// are immutable after the parser creates them.
type TestRecord struct {
	// ID is the test identifier from the result file.
	ID string `json:"id"`

	// Class is the short (unqualified) owning class name.
	Class string `json:"class"`

	// Method is the test method name with any parameter list removed.
	Method string `json:"method"`

	// DisplayName is the name the runner displayed for the test, with
	// any parameter list removed. May be fully qualified.
	DisplayName string `json:"display_name"`

	// Outcome is the execution outcome.
	Outcome Outcome `json:"outcome"`

	// StartTime and EndTime are the execution timestamps. Either may
	// be zero when the result file omits it.
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`

	// Duration is the reported execution duration.
	Duration time.Duration `json:"duration"`

	// ErrorMessage is the failure message, if any.
	ErrorMessage string `json:"error_message,omitempty"`

	// Source is the result file the record was read from.
	Source string `json:"source,omitempty"`
}

// Title returns the name used when classifying and labeling the
// record: the display name, or the method name when no display name
// was recorded.
func (r TestRecord) Title() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Method
}

// ExecutedAt returns the end timestamp, falling back to the start
// timestamp.
func (r TestRecord) ExecutedAt() time.Time {
	if !r.EndTime.IsZero() {
		return r.EndTime
	}
	return r.StartTime
}

// ExecutedDate returns the execution date without the time of day,
// formatted as YYYY-MM-DD in the timestamp's own offset. It returns
// an empty string when no timestamp is known.
func (r TestRecord) ExecutedDate() string {
	at := r.ExecutedAt()
	if at.IsZero() {
		return ""
	}
	return at.Format(time.DateOnly)
}

// MethodDoc is the documentation attached to one test method.
type MethodDoc struct {
	Class    string `json:"class"`
	Method   string `json:"method"`
	Summary  string `json:"summary,omitempty"`
	Scenario string `json:"scenario,omitempty"`
	Expected string `json:"expected,omitempty"`
	Coverage string `json:"coverage,omitempty"`
}

// FunctionDoc describes one documented function under test. Several
// MethodDocs may collapse into one FunctionDoc.
type FunctionDoc struct {
	// Class is the short owning class name.
	Class string `json:"class"`

	// Function is the function-under-test name.
	Function string `json:"function"`

	// Description is the free-text summary.
	Description string `json:"description,omitempty"`

	// Precondition is the scenario / precondition text.
	Precondition string `json:"precondition,omitempty"`

	// Expected is the expected-behavior text.
	Expected string `json:"expected,omitempty"`

	// Requirement is the coverage / requirement tag.
	Requirement string `json:"requirement,omitempty"`

	// Synthesized is true when no documentation matched and the entry
	// was generated as a placeholder.
	Synthesized bool `json:"synthesized,omitempty"`
}

// Key returns the aggregation key of the documented function.
func (d FunctionDoc) Key() FunctionKey {
	return FunctionKey{Class: d.Class, Function: d.Function}
}

// FunctionKey identifies a function group.
type FunctionKey struct {
	Class    string
	Function string
}

// ExpectedKind is the expected result of a test case.
type ExpectedKind string

// Expected kinds. KindUnknown is the empty string so it renders as a
// blank cell.
const (
	KindTrue      ExpectedKind = "TRUE"
	KindFalse     ExpectedKind = "FALSE"
	KindException ExpectedKind = "EXCEPTION"
	KindUnknown   ExpectedKind = ""
)

// CaseType is the Normal / Abnormal / Boundary classification of a
// test case.
type CaseType string

// Case types, rendered as their single-letter code.
const (
	Normal   CaseType = "N"
	Abnormal CaseType = "A"
	Boundary CaseType = "B"
)

// Name returns the long form of the case type.
func (c CaseType) Name() string {
	switch c {
	case Normal:
		return "Normal"
	case Abnormal:
		return "Abnormal"
	case Boundary:
		return "Boundary"
	default:
		return string(c)
	}
}
