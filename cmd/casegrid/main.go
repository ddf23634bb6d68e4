package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	charmlog "github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/unbound-force/casegrid/internal/config"
	"github.com/unbound-force/casegrid/internal/pipeline"
	"github.com/unbound-force/casegrid/internal/report"
	"github.com/unbound-force/casegrid/internal/scaffold"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "casegrid",
		Short: "casegrid: unit test case matrices from TRX results",
		Long: `casegrid reads .NET test result files (TRX) and XML
documentation comments and produces a spreadsheet with one
test-case matrix per function under test, plus function,
statistics, summary, failure and coverage sheets.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: .casegrid.yaml in . or $HOME)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug output")

	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd())

	return root
}

// generateParams holds the parsed flags for the generate command.
// Empty strings keep the configured value.
type generateParams struct {
	configPath  string
	resultsDir  string
	docsDir     string
	coverageDir string
	namespace   string
	output      string
	format      string
	interactive bool
	matrices    bool
	stdout      io.Writer
	stderr      io.Writer
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig(p generateParams) (*config.Config, error) {
	cfg, err := config.Load(p.configPath)
	if err != nil {
		return nil, err
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Inputs.ResultsDir, p.resultsDir)
	override(&cfg.Inputs.DocsDir, p.docsDir)
	override(&cfg.Inputs.CoverageDir, p.coverageDir)
	override(&cfg.Inputs.NamespacePrefix, p.namespace)
	override(&cfg.Output.Path, p.output)
	override(&cfg.Output.Format, p.format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runGenerate is the extracted, testable body of the generate command.
func runGenerate(ctx context.Context, p generateParams) error {
	if p.format != "" && !slices.Contains(config.Formats, p.format) {
		return fmt.Errorf("invalid format %q: must be 'xlsx', 'json', 'text', or 'markdown'", p.format)
	}

	cfg, err := loadConfig(p)
	if err != nil {
		return err
	}

	logger.Info("generating report",
		"results", cfg.Inputs.ResultsDir,
		"docs", cfg.Inputs.DocsDir,
	)
	rpt, err := pipeline.Run(ctx, pipeline.Options{Config: cfg, Logger: logger})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRecords) {
			return fmt.Errorf("%w: run the tests with --logger trx first", err)
		}
		return err
	}
	logger.Info("report built",
		"functions", len(rpt.Functions),
		"sheets", len(rpt.Sheets),
		"records", rpt.Summary.Total,
	)

	if p.interactive {
		return runInteractiveReport(rpt)
	}

	if cfg.Output.Format == config.FormatXLSX {
		return writeXLSXFile(cfg.Output.Path, rpt)
	}

	// Non-spreadsheet formats go to stdout unless --output is given.
	w := p.stdout
	if p.output != "" {
		f, err := createOutput(p.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeReport(w, cfg.Output.Format, rpt, p.matrices)
}

// writeReport outputs the report in a stream format.
func writeReport(w io.Writer, format string, rpt *report.Report, matrices bool) error {
	switch format {
	case config.FormatJSON:
		return report.WriteJSON(w, rpt)
	case config.FormatMarkdown:
		return report.WriteMarkdown(w, rpt)
	default:
		return report.WriteTextOptions(w, rpt, report.TextOptions{Matrices: matrices})
	}
}

// writeXLSXFile writes the spreadsheet to path, creating parent
// directories as needed.
func writeXLSXFile(path string, rpt *report.Report) error {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(f, rpt); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	attrs := []any{"path", path}
	if info, err := os.Stat(path); err == nil {
		attrs = append(attrs, "size", humanize.Bytes(uint64(info.Size())))
	}
	logger.Info("wrote report", attrs...)
	return nil
}

func createOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

func newGenerateCmd(configPath *string) *cobra.Command {
	var (
		resultsDir  string
		docsDir     string
		coverageDir string
		namespace   string
		output      string
		format      string
		interactive bool
		matrices    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the test matrix report",
		Long: `Discover TRX result files, XML documentation files and a
coverage summary, group test results by the function they exercise,
and write the report.

The xlsx format writes to output.path. Other formats print to
stdout unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), generateParams{
				configPath:  *configPath,
				resultsDir:  resultsDir,
				docsDir:     docsDir,
				coverageDir: coverageDir,
				namespace:   namespace,
				output:      output,
				format:      format,
				interactive: interactive,
				matrices:    matrices,
				stdout:      cmd.OutOrStdout(),
				stderr:      cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results", "",
		"directory searched for .trx files (default: TestResults)")
	cmd.Flags().StringVar(&docsDir, "docs", "",
		"directory searched for XML documentation files (default: .)")
	cmd.Flags().StringVar(&coverageDir, "coverage", "",
		"directory searched for Summary.json (default: coveragereport)")
	cmd.Flags().StringVar(&namespace, "namespace", "",
		"only use documentation under this namespace prefix")
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: output.path for xlsx, stdout otherwise)")
	cmd.Flags().StringVar(&format, "format", "",
		"output format: xlsx, json, text, or markdown (default: xlsx)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing the report")
	cmd.Flags().BoolVar(&matrices, "matrices", false,
		"include per-function matrices in text output")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for casegrid report output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of casegrid generate --format=json output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}

func newInitCmd() *cobra.Command {
	var (
		force    bool
		workflow bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .casegrid.yaml",
		Long: `Write a starter .casegrid.yaml with the default settings into
the current directory. With --workflow, also write a GitHub Actions
workflow that runs the tests and uploads the report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := scaffold.Run(scaffold.Options{
				Force:    force,
				Workflow: workflow,
				Version:  version,
				Stdout:   cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite existing files")
	cmd.Flags().BoolVar(&workflow, "workflow", false,
		"also write .github/workflows/casegrid.yml")

	return cmd
}
