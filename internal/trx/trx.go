// Package trx reads Visual Studio test result (.trx) files into test
// execution records.
package trx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/unbound-force/casegrid/internal/naming"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// Extension is the file extension of result files.
const Extension = ".trx"

type testRun struct {
	XMLName     xml.Name         `xml:"TestRun"`
	Definitions []unitTest       `xml:"TestDefinitions>UnitTest"`
	Results     []unitTestResult `xml:"Results>UnitTestResult"`
}

type unitTest struct {
	ID     string      `xml:"id,attr"`
	TestID string      `xml:"testId,attr"`
	Method *testMethod `xml:"TestMethod"`
}

type testMethod struct {
	ClassName string `xml:"className,attr"`
	Name      string `xml:"name,attr"`
}

type unitTestResult struct {
	TestID    string `xml:"testId,attr"`
	TestName  string `xml:"testName,attr"`
	Outcome   string `xml:"outcome,attr"`
	StartTime string `xml:"startTime,attr"`
	EndTime   string `xml:"endTime,attr"`
	Duration  string `xml:"duration,attr"`
	Output    struct {
		ErrorInfo struct {
			Message    string `xml:"Message"`
			StackTrace string `xml:"StackTrace"`
		} `xml:"ErrorInfo"`
	} `xml:"Output"`
}

// methodRef is a resolved test definition.
type methodRef struct {
	class  string
	method string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads one result file. Results whose test id cannot be
// resolved to a test method are dropped. Records keep the order of
// the file's result entries.
func Parse(r io.Reader) ([]taxonomy.TestRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var run testRun
	if err := xml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	defs := make(map[string]methodRef, len(run.Definitions))
	for _, ut := range run.Definitions {
		id := ut.ID
		if id == "" {
			id = ut.TestID
		}
		if id == "" || ut.Method == nil {
			continue
		}
		defs[id] = methodRef{
			class:  naming.ShortClass(ut.Method.ClassName),
			method: naming.StripParameterList(ut.Method.Name),
		}
	}

	records := make([]taxonomy.TestRecord, 0, len(run.Results))
	for _, res := range run.Results {
		ref, ok := defs[res.TestID]
		if res.TestID == "" || !ok {
			continue
		}
		d, _ := ParseDuration(res.Duration)
		records = append(records, taxonomy.TestRecord{
			ID:           res.TestID,
			Class:        ref.class,
			Method:       ref.method,
			DisplayName:  naming.StripParameterList(res.TestName),
			Outcome:      taxonomy.ParseOutcome(res.Outcome),
			StartTime:    parseTime(res.StartTime),
			EndTime:      parseTime(res.EndTime),
			Duration:     d,
			ErrorMessage: strings.TrimSpace(res.Output.ErrorInfo.Message),
		})
	}
	return records, nil
}

// ParseFile reads the result file at path and stamps every record
// with the path as its source.
func ParseFile(path string) ([]taxonomy.TestRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range records {
		records[i].Source = path
	}
	return records, nil
}

// parseTime parses an RFC 3339 timestamp with optional fractional
// seconds. Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseDuration parses a TRX duration of the form HH:MM:SS with
// optional fractional seconds, e.g. "00:00:01.2345678".
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if h < 0 || m < 0 || sec < 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	total := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(sec*float64(time.Second))
	return total.Round(time.Microsecond), nil
}
