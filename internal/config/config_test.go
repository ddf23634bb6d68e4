package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultResultsDir, cfg.Inputs.ResultsDir)
	assert.Equal(t, FormatXLSX, cfg.Output.Format)
	assert.Equal(t, "O", cfg.Matrix.SelectedToken)
	assert.Equal(t, 25, cfg.Matrix.SheetNameBase)
	assert.Equal(t, 31, cfg.Matrix.SheetNameMax)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty results dir", func(c *Config) { c.Inputs.ResultsDir = "" }},
		{"negative timeout", func(c *Config) { c.Inputs.ScanTimeout = -time.Second }},
		{"bad min substring", func(c *Config) { c.Matching.MinSubstringLength = -2 }},
		{"empty marker", func(c *Config) { c.Matching.Markers = []string{"_Should", ""} }},
		{"empty token", func(c *Config) { c.Matrix.SelectedToken = "" }},
		{"sheet max too large", func(c *Config) { c.Matrix.SheetNameMax = 40 }},
		{"sheet base above max", func(c *Config) { c.Matrix.SheetNameBase = 30; c.Matrix.SheetNameMax = 20 }},
		{"sheet base zero", func(c *Config) { c.Matrix.SheetNameBase = 0 }},
		{"unknown format", func(c *Config) { c.Output.Format = "pdf" }},
		{"xlsx without path", func(c *Config) { c.Output.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "error %v should wrap ErrInvalid", err)
		})
	}
}

func TestValidate_TextWithoutPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = FormatText
	cfg.Output.Path = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "casegrid.yaml")
	body := `project:
  name: BlindTreasure
  branch: main
inputs:
  results_dir: out/TestResults
  namespace_prefix: BlindTreasure.UnitTest
  scan_timeout: 5s
matching:
  markers: ["_Should"]
matrix:
  selected_token: X
output:
  format: json
  path: report.json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BlindTreasure", cfg.Project.Name)
	assert.Equal(t, "main", cfg.Project.Branch)
	assert.Equal(t, "out/TestResults", cfg.Inputs.ResultsDir)
	assert.Equal(t, "BlindTreasure.UnitTest", cfg.Inputs.NamespacePrefix)
	assert.Equal(t, 5*time.Second, cfg.Inputs.ScanTimeout)
	assert.Equal(t, []string{"_Should"}, cfg.Matching.Markers)
	assert.Equal(t, "X", cfg.Matrix.SelectedToken)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "report.json", cfg.Output.Path)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultDocsDir, cfg.Inputs.DocsDir)
	assert.Equal(t, DefaultSheetNameBase, cfg.Matrix.SheetNameBase)
	assert.Equal(t, DefaultMinSubstringLen, cfg.Matching.MinSubstringLength)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "casegrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project:\n  build: \"1\"\n"), 0o600))

	t.Setenv("CASEGRID_PROJECT_BUILD", "42")
	t.Setenv("CASEGRID_OUTPUT_FORMAT", "markdown")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "42", cfg.Project.Build)
	assert.Equal(t, FormatMarkdown, cfg.Output.Format)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "casegrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: pdf\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Project.Name = "Demo"
	require.NoError(t, WriteYAML(&buf, cfg))
	assert.Contains(t, buf.String(), "results_dir: TestResults")
	assert.Contains(t, buf.String(), "selected_token: O")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Demo", loaded.Project.Name)
	assert.Equal(t, cfg.Matching.Markers, loaded.Matching.Markers)
	assert.Equal(t, cfg.Inputs.Exclude, loaded.Inputs.Exclude)
	assert.Equal(t, cfg.Inputs.ScanTimeout, loaded.Inputs.ScanTimeout)
}
