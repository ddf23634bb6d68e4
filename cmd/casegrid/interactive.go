package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/casegrid/internal/report"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Next     key.Binding
	Prev     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Next, k.Prev},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Next:     key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("tab", "next sheet")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "p"), key.WithHelp("shift+tab", "prev sheet")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Underline(true)
)

// reportModel is the Bubble Tea model for browsing a report. Page 0 is
// the overview; each following page is one matrix sheet.
type reportModel struct {
	pages    []page
	current  int
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
}

// page is one screen of rendered content.
type page struct {
	title   string
	content string
}

func newReportModel(rpt *report.Report) reportModel {
	return reportModel{
		pages: renderPages(rpt),
		help:  help.New(),
		keys:  defaultKeyMap,
	}
}

// renderPages renders the overview and one page per matrix sheet.
func renderPages(rpt *report.Report) []page {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("casegrid: %d function(s), %d test(s), %s passed",
			len(rpt.Functions), rpt.Summary.Total, rpt.Summary.PassRateText())))
	sb.WriteString("\n")
	// Writing to a strings.Builder cannot fail.
	_ = report.WriteText(&sb, rpt)

	pages := []page{{title: "Overview", content: sb.String()}}

	styles := report.DefaultStyles()
	for _, sheet := range rpt.Sheets {
		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s.%s", sheet.Class, sheet.Function)))
		b.WriteString("\n")
		b.WriteString(report.MatrixTable(sheet, styles).String())
		b.WriteString("\n")
		pages = append(pages, page{title: sheet.Name, content: b.String()})
	}
	return pages
}

// tabs renders the page selector line.
func (m reportModel) tabs() string {
	parts := make([]string, len(m.pages))
	for i, p := range m.pages {
		if i == m.current {
			parts[i] = activeTabStyle.Render(p.title)
		} else {
			parts[i] = tabStyle.Render(p.title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m reportModel) Init() tea.Cmd {
	return nil
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.pages[m.current].content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			m.show((m.current + 1) % len(m.pages))
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.show((m.current + len(m.pages) - 1) % len(m.pages))
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// show switches to page i and scrolls to its top.
func (m *reportModel) show(i int) {
	m.current = i
	if m.ready {
		m.viewport.SetContent(m.pages[i].content)
		m.viewport.GotoTop()
	}
}

func (m reportModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.tabs() + "\n" + m.viewport.View() + "\n" + footer
}

// runInteractiveReport launches the Bubble Tea TUI for browsing a
// report.
func runInteractiveReport(rpt *report.Report) error {
	model := newReportModel(rpt)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
