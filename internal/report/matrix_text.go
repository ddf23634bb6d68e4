package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/casegrid/internal/matrix"
)

// maxLabel is the width at which matrix row labels are cut in
// terminal output.
const maxLabel = 40

// MatrixTable renders one matrix sheet as a terminal table. The
// header row carries the column IDs; section rows are highlighted.
func MatrixTable(sheet matrix.Sheet, s Styles) *table.Table {
	headers := make([]string, 0, sheet.Width()+1)
	headers = append(headers, "")
	var body []matrix.Row
	for _, r := range sheet.Rows {
		if r.Kind == matrix.RowHeader {
			headers = append(headers, r.Cells...)
			continue
		}
		body = append(body, r)
	}

	rows := make([][]string, 0, len(body))
	for _, r := range body {
		label := r.Label
		if len([]rune(label)) > maxLabel {
			label = string([]rune(label)[:maxLabel-3]) + "..."
		}
		rows = append(rows, append([]string{label}, r.Cells...))
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if row < 0 || row >= len(body) {
				return s.TableCell
			}
			if body[row].Kind.Section() {
				return s.Header
			}
			if body[row].Kind == matrix.RowOutcome && col > 0 {
				return s.MarkStyle(rows[row][col])
			}
			return s.TableCell
		}).
		Headers(headers...).
		Rows(rows...)
}
