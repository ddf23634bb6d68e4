package pipeline

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unbound-force/casegrid/internal/config"
	"github.com/unbound-force/casegrid/internal/matching"
	"github.com/unbound-force/casegrid/internal/taxonomy"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Inputs.ResultsDir = filepath.Join("testdata", "TestResults")
	cfg.Inputs.DocsDir = filepath.Join("testdata", "docs")
	cfg.Inputs.CoverageDir = filepath.Join("testdata", "coveragereport")
	cfg.Inputs.NamespacePrefix = "BlindTreasure.UnitTest.Services."
	cfg.Project.Name = "BlindTreasure"
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	r, err := Run(context.Background(), Options{
		Config:      testConfig(),
		Logger:      logger,
		GeneratedAt: at,
	})
	require.NoError(t, err)

	assert.Equal(t, "BlindTreasure", r.Project.Name)
	assert.Equal(t, at, r.GeneratedAt)

	// Login, RegisterAsync and Logout are documented; ResetPassword and
	// Weird_Outcome are synthesized from unmatched records.
	require.Len(t, r.Functions, 5)
	assert.Equal(t, "Login", r.Functions[0].Function)
	assert.False(t, r.Functions[0].Synthesized)
	assert.Equal(t, "ResetPassword", r.Functions[3].Function)
	assert.True(t, r.Functions[3].Synthesized)

	assert.Len(t, r.Sheets, 3)
	assert.Equal(t, 4, r.Summary.Total)
	assert.Equal(t, 1, r.Summary.Passed)
	assert.Equal(t, 1, r.Summary.Failed)
	assert.Equal(t, 1, r.Summary.Skipped)
	assert.Len(t, r.FailedTests, 1)

	require.NotNil(t, r.Coverage)
	assert.Contains(t, r.Coverage.Source, "Summary.json")

	out := logs.String()
	assert.Contains(t, out, "skipping result file")
	assert.Contains(t, out, "ignoring xml file")
	assert.Contains(t, out, "parsed documentation")
}

func TestRun_NoRecords(t *testing.T) {
	cfg := testConfig()
	cfg.Inputs.ResultsDir = t.TempDir()

	_, err := Run(context.Background(), Options{Config: cfg})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRecords), "error %v should wrap ErrNoRecords", err)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Config: testConfig()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_CustomMatcher(t *testing.T) {
	in := Inputs{
		Docs: []taxonomy.MethodDoc{
			{Class: "AuthServiceTests", Method: "Login_ShouldReturnTrue_WhenValid"},
		},
		Records: []taxonomy.TestRecord{
			{Class: "AuthServiceTests", Method: "SignIn_ShouldReturnTrue", Outcome: taxonomy.Passed},
		},
	}
	always := matching.Func(func(string, string) bool { return true })

	r := Build(in, config.DefaultConfig(), always, time.Time{})
	require.Len(t, r.Functions, 1)
	assert.Equal(t, "Login", r.Functions[0].Function)
	assert.Equal(t, 1, r.Statistics[0].Passed)
	assert.False(t, r.GeneratedAt.IsZero())
}

func TestBuild_SelectedTokenFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Matrix.SelectedToken = "X"
	in := Inputs{
		Records: []taxonomy.TestRecord{
			{Class: "C", Method: "Run_ShouldReturnTrue", Outcome: taxonomy.Passed},
		},
	}

	r := Build(in, cfg, nil, time.Time{})
	require.Len(t, r.Sheets, 1)
	found := false
	for _, row := range r.Sheets[0].Rows {
		for _, cell := range row.Cells {
			if cell == "X" {
				found = true
			}
		}
	}
	assert.True(t, found, "matrix should mark selections with the configured token")
}
