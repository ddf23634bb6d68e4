package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unbound-force/casegrid/internal/config"
	"github.com/unbound-force/casegrid/internal/pipeline"
	"github.com/unbound-force/casegrid/internal/report"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

func sampleReport() *report.Report {
	in := pipeline.Inputs{
		Docs: []taxonomy.MethodDoc{
			{Class: "AuthServiceTests", Method: "Login_ShouldReturnTrue_WhenValid", Scenario: "valid user"},
		},
		Records: []taxonomy.TestRecord{
			{Class: "AuthServiceTests", Method: "Login_ShouldReturnTrue_WhenValid", Outcome: taxonomy.Passed},
			{Class: "AuthServiceTests", Method: "Login_ShouldReturnFalse_WhenInvalid", Outcome: taxonomy.Failed},
			{Class: "OrderServiceTests", Method: "Place_ShouldThrow_WhenEmpty", Outcome: taxonomy.Passed},
		},
	}
	return pipeline.Build(in, config.DefaultConfig(), nil, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
}

func TestRenderPages_OverviewAndSheets(t *testing.T) {
	rpt := sampleReport()
	pages := renderPages(rpt)

	if len(pages) != 1+len(rpt.Sheets) {
		t.Fatalf("len(pages) = %d, want %d", len(pages), 1+len(rpt.Sheets))
	}
	if !strings.Contains(pages[0].content, "2 function(s), 3 test(s)") {
		t.Errorf("overview header missing, got:\n%s", pages[0].content)
	}
	if pages[1].title != "Login" {
		t.Errorf("pages[1].title = %q, want Login", pages[1].title)
	}
	if !strings.Contains(pages[1].content, "UTCID02") {
		t.Errorf("expected matrix columns in Login page, got:\n%s", pages[1].content)
	}
}

func TestRenderPages_EmptyReport(t *testing.T) {
	pages := renderPages(&report.Report{})
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	if !strings.Contains(pages[0].content, "No functions found.") {
		t.Errorf("expected empty message, got:\n%s", pages[0].content)
	}
}

func TestReportModel_Navigation(t *testing.T) {
	m := newReportModel(sampleReport())
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q, want Initializing...", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(reportModel)
	if !m.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(reportModel)
	if m.current != 1 {
		t.Errorf("current = %d after tab, want 1", m.current)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(reportModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(reportModel)
	if want := len(m.pages) - 1; m.current != want {
		t.Errorf("current = %d after wrapping back, want %d", m.current, want)
	}

	if !strings.Contains(m.View(), "Overview") {
		t.Error("View() should list the Overview tab")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from quit key")
	}
}
