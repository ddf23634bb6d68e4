package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers (e.g. "--- Statistics ---").
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// SummaryLabel styles summary line labels.
	SummaryLabel lipgloss.Style

	// Pass and Fail color outcome counts and marks.
	Pass lipgloss.Style
	Fail lipgloss.Style

	// Untested colors skipped and other non-final outcomes.
	Untested lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		SummaryLabel: lipgloss.NewStyle().Bold(true).Width(20),

		Pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Untested: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MarkStyle returns the style for a matrix cell value: P and F marks
// are colored, everything else renders as a plain cell.
func (s Styles) MarkStyle(mark string) lipgloss.Style {
	switch mark {
	case "P":
		return s.Pass
	case "F":
		return s.Fail
	default:
		return s.TableCell
	}
}
