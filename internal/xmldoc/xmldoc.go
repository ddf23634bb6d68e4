// Package xmldoc reads the XML documentation files the C# compiler
// emits next to test assemblies and extracts per-method test
// documentation.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unbound-force/casegrid/internal/naming"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

// Extension is the file extension of documentation files.
const Extension = ".xml"

// methodPrefix marks method members in documentation ids.
const methodPrefix = "M:"

// Remark line markers.
const (
	scenarioMarker = "Scenario:"
	expectedMarker = "Expected:"
	coverageMarker = "Coverage:"
)

// ErrNotDocumentation is returned for well-formed XML files whose root
// element is not <doc>, such as project or configuration files.
var ErrNotDocumentation = errors.New("not a documentation file")

// Options configures parsing.
type Options struct {
	// NamespacePrefix restricts parsing to methods whose qualified
	// name starts with it, e.g. "MyApp.UnitTest.Services.". A leading
	// "M:" is accepted. Empty keeps every method.
	NamespacePrefix string
}

type docFile struct {
	XMLName xml.Name
	Members []member `xml:"members>member"`
}

type member struct {
	Name    string    `xml:"name,attr"`
	Summary *innerXML `xml:"summary"`
	Remarks *innerXML `xml:"remarks"`
}

type innerXML struct {
	Inner string `xml:",innerxml"`
}

// text returns the character data of the element, dropping nested
// markup such as <para> or <see cref="..."/>.
func (x *innerXML) text() string {
	if x == nil {
		return ""
	}
	dec := xml.NewDecoder(strings.NewReader(x.Inner))
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if t.Name.Local == "para" || t.Name.Local == "br" {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads one documentation file and returns the documented
// methods under the configured namespace prefix, in file order.
func Parse(r io.Reader, opts Options) ([]taxonomy.MethodDoc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading documentation: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc docFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding documentation: %w", err)
	}
	if doc.XMLName.Local != "doc" {
		return nil, fmt.Errorf("root element <%s>: %w", doc.XMLName.Local, ErrNotDocumentation)
	}

	prefix := strings.TrimPrefix(opts.NamespacePrefix, methodPrefix)
	var out []taxonomy.MethodDoc
	for _, m := range doc.Members {
		qualified, ok := strings.CutPrefix(m.Name, methodPrefix)
		if !ok || !strings.HasPrefix(qualified, prefix) {
			continue
		}
		class, method, ok := splitMember(qualified)
		if !ok {
			continue
		}
		md := taxonomy.MethodDoc{
			Class:   class,
			Method:  method,
			Summary: strings.Join(strings.Fields(m.Summary.text()), " "),
		}
		parseRemarks(m.Remarks.text(), &md)
		out = append(out, md)
	}
	return out, nil
}

// ParseFile reads the documentation file at path.
func ParseFile(path string, opts Options) ([]taxonomy.MethodDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening documentation: %w", err)
	}
	defer f.Close()

	docs, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// splitMember splits "Ns.Class.Method(args)" into the short class and
// the method name without its parameter list.
func splitMember(qualified string) (class, method string, ok bool) {
	name := naming.StripParameterList(qualified)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return naming.ShortClass(name[:i]), name[i+1:], true
}

// parseRemarks fills the scenario, expected and coverage fields from
// marker lines. Within one member the first non-empty value wins.
func parseRemarks(remarks string, md *taxonomy.MethodDoc) {
	for _, line := range strings.Split(remarks, "\n") {
		line = strings.TrimSpace(line)
		var dst *string
		var rest string
		switch {
		case strings.HasPrefix(line, scenarioMarker):
			dst, rest = &md.Scenario, line[len(scenarioMarker):]
		case strings.HasPrefix(line, expectedMarker):
			dst, rest = &md.Expected, line[len(expectedMarker):]
		case strings.HasPrefix(line, coverageMarker):
			dst, rest = &md.Coverage, line[len(coverageMarker):]
		default:
			continue
		}
		if v := strings.TrimSpace(rest); v != "" && *dst == "" {
			*dst = v
		}
	}
}
