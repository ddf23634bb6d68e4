package matrix

// RowKind tags every row of a matrix sheet so that reserved slots can
// be populated later without changing the grid shape.
type RowKind int

// Row kinds, in sheet order.
const (
	RowHeader RowKind = iota
	RowSection
	RowPrecondition
	RowInput
	RowReturn
	RowFalse
	RowTrue
	RowException
	RowLogHeader
	RowLogMessage
	RowCaseType
	RowOutcome
	RowExecutedDate
	RowDefectID
)

var rowKindNames = map[RowKind]string{
	RowHeader:       "header",
	RowSection:      "section",
	RowPrecondition: "precondition",
	RowInput:        "input",
	RowReturn:       "return",
	RowFalse:        "false",
	RowTrue:         "true",
	RowException:    "exception",
	RowLogHeader:    "log_header",
	RowLogMessage:   "log_message",
	RowCaseType:     "case_type",
	RowOutcome:      "outcome",
	RowExecutedDate: "executed_date",
	RowDefectID:     "defect_id",
}

// String returns the snake_case name used in JSON output.
func (k RowKind) String() string {
	if s, ok := rowKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k RowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reserved reports whether rows of this kind are schema slots with no
// content source yet. Their cells are always blank.
func (k RowKind) Reserved() bool {
	switch k {
	case RowPrecondition, RowReturn, RowException, RowDefectID:
		return true
	default:
		return false
	}
}

// Section reports whether the row is a header or section marker, which
// renderers style differently from data rows.
func (k RowKind) Section() bool {
	return k == RowHeader || k == RowSection
}

// Row is one labeled line of a matrix sheet with one cell per column.
type Row struct {
	Kind  RowKind  `json:"kind"`
	Label string   `json:"label"`
	Cells []string `json:"cells"`
}
