package taxonomy

// StatusOf returns the reviewer-facing status label for an outcome.
// NotExecuted is reported as "Skipped"; outcomes without a label
// default to "Unknown".
func StatusOf(o Outcome) string {
	status, ok := statusMap[o]
	if !ok {
		return "Unknown"
	}
	return status
}

// ResultMark returns the "P" / "F" mark used in the Passed/Failed
// matrix row. Every other outcome renders blank.
func ResultMark(o Outcome) string {
	switch o {
	case Passed:
		return "P"
	case Failed:
		return "F"
	default:
		return ""
	}
}

var statusMap = map[Outcome]string{
	Passed:       "Passed",
	Failed:       "Failed",
	NotExecuted:  "Skipped",
	Inconclusive: "Inconclusive",
	Error:        "Error",
	Timeout:      "Timeout",
	Aborted:      "Aborted",
}
