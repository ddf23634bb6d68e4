// Package config holds the casegrid configuration: where the test
// evidence lives, how tests are matched to functions, how matrix
// sheets are laid out and where the report is written.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Output formats.
const (
	FormatXLSX     = "xlsx"
	FormatJSON     = "json"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatXLSX, FormatJSON, FormatText, FormatMarkdown}

// Defaults.
const (
	DefaultResultsDir      = "TestResults"
	DefaultDocsDir         = "."
	DefaultCoverageDir     = "coveragereport"
	DefaultOutputPath      = "coveragereport/Functions_Statistics_Report.xlsx"
	DefaultScanTimeout     = 30 * time.Second
	DefaultSelectedToken   = "O"
	DefaultSheetNameBase   = 25
	DefaultSheetNameMax    = 31
	DefaultMinSubstringLen = 3
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the top-level configuration. Field tags use mapstructure
// for viper unmarshalling and yaml for writing starter files.
type Config struct {
	Project  ProjectConfig  `mapstructure:"project" yaml:"project"`
	Inputs   InputsConfig   `mapstructure:"inputs" yaml:"inputs"`
	Matching MatchingConfig `mapstructure:"matching" yaml:"matching"`
	Matrix   MatrixConfig   `mapstructure:"matrix" yaml:"matrix"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
}

// ProjectConfig identifies the build on the Summary sheet. CI
// pipelines usually set these through CASEGRID_PROJECT_* variables.
type ProjectConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Version string `mapstructure:"version" yaml:"version"`
	Branch  string `mapstructure:"branch" yaml:"branch"`
	Build   string `mapstructure:"build" yaml:"build"`
}

// InputsConfig locates the test evidence.
type InputsConfig struct {
	// ResultsDir is searched recursively for .trx files.
	ResultsDir string `mapstructure:"results_dir" yaml:"results_dir"`

	// DocsDir is searched recursively for XML documentation files.
	DocsDir string `mapstructure:"docs_dir" yaml:"docs_dir"`

	// CoverageDir is searched for a Summary.json coverage summary.
	// Empty disables the coverage sheet.
	CoverageDir string `mapstructure:"coverage_dir" yaml:"coverage_dir"`

	// NamespacePrefix limits documentation to test methods under
	// this namespace. Empty keeps every documented method.
	NamespacePrefix string `mapstructure:"namespace_prefix" yaml:"namespace_prefix"`

	// Include and Exclude are glob patterns, relative to the scanned
	// directory, applied to every discovered file. "dir/**" matches
	// everything under dir.
	Include []string `mapstructure:"include" yaml:"include"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// ScanTimeout bounds each directory walk. Zero means no limit.
	ScanTimeout time.Duration `mapstructure:"scan_timeout" yaml:"scan_timeout"`
}

// MatchingConfig tunes how test methods are attached to documented
// functions.
type MatchingConfig struct {
	// Markers separate the function under test from the behavior
	// suffix in a test method name.
	Markers []string `mapstructure:"markers" yaml:"markers"`

	// MinSubstringLength is the length both names must exceed before
	// substring containment counts as a match. -1 disables it.
	MinSubstringLength int `mapstructure:"min_substring_length" yaml:"min_substring_length"`
}

// MatrixConfig tunes the per-function sheets.
type MatrixConfig struct {
	SelectedToken string `mapstructure:"selected_token" yaml:"selected_token"`
	SheetNameBase int    `mapstructure:"sheet_name_base" yaml:"sheet_name_base"`
	SheetNameMax  int    `mapstructure:"sheet_name_max" yaml:"sheet_name_max"`
}

// OutputConfig selects the report destination.
type OutputConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns the configuration used when no file or
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Inputs: InputsConfig{
			ResultsDir:  DefaultResultsDir,
			DocsDir:     DefaultDocsDir,
			CoverageDir: DefaultCoverageDir,
			Exclude: []string{
				"obj/**",
				"node_modules/**",
				"*.deps.xml",
			},
			ScanTimeout: DefaultScanTimeout,
		},
		Matching: MatchingConfig{
			Markers:            []string{"_Should", "_When"},
			MinSubstringLength: DefaultMinSubstringLen,
		},
		Matrix: MatrixConfig{
			SelectedToken: DefaultSelectedToken,
			SheetNameBase: DefaultSheetNameBase,
			SheetNameMax:  DefaultSheetNameMax,
		},
		Output: OutputConfig{
			Path:   DefaultOutputPath,
			Format: FormatXLSX,
		},
	}
}

// Validate checks Config invariants and returns the first error
// found, wrapping ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Inputs.ResultsDir == "":
		return fmt.Errorf("%w: inputs.results_dir must be set", ErrInvalid)
	case c.Inputs.ScanTimeout < 0:
		return fmt.Errorf("%w: inputs.scan_timeout must be non-negative", ErrInvalid)
	case c.Matching.MinSubstringLength < -1:
		return fmt.Errorf("%w: matching.min_substring_length must be -1 or greater", ErrInvalid)
	case slices.Contains(c.Matching.Markers, ""):
		return fmt.Errorf("%w: matching.markers must not contain empty markers", ErrInvalid)
	case c.Matrix.SelectedToken == "":
		return fmt.Errorf("%w: matrix.selected_token must be set", ErrInvalid)
	case c.Matrix.SheetNameMax < 1 || c.Matrix.SheetNameMax > DefaultSheetNameMax:
		return fmt.Errorf("%w: matrix.sheet_name_max must be between 1 and %d", ErrInvalid, DefaultSheetNameMax)
	case c.Matrix.SheetNameBase < 1 || c.Matrix.SheetNameBase > c.Matrix.SheetNameMax:
		return fmt.Errorf("%w: matrix.sheet_name_base must be between 1 and matrix.sheet_name_max", ErrInvalid)
	case !slices.Contains(Formats, c.Output.Format):
		return fmt.Errorf("%w: output.format %q must be one of %v", ErrInvalid, c.Output.Format, Formats)
	case c.Output.Format == FormatXLSX && c.Output.Path == "":
		return fmt.Errorf("%w: output.path is required for xlsx output", ErrInvalid)
	}
	return nil
}
