// Package scaffold writes a starter casegrid configuration and CI
// workflow into a project directory.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unbound-force/casegrid/internal/config"
)

//go:embed assets/casegrid.yml
var assets embed.FS

// WorkflowPath is where the CI workflow is written, relative to the
// target directory.
var WorkflowPath = filepath.Join(".github", "workflows", "casegrid.yml")

// Options configures the scaffold operation.
type Options struct {
	// TargetDir is the root directory to scaffold into.
	// Defaults to the current working directory.
	TargetDir string

	// Force overwrites existing files when true.
	// When false, existing files are skipped.
	Force bool

	// Workflow also writes a GitHub Actions workflow that runs the
	// tests and uploads the report.
	Workflow bool

	// Config is the configuration to write. Defaults to
	// config.DefaultConfig().
	Config *config.Config

	// Version is the casegrid version string to embed in the
	// version marker comment. Defaults to "dev".
	Version string

	// Stdout is the writer for summary output.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// Result reports what the scaffold operation did.
type Result struct {
	// Created lists files that were written for the first time.
	Created []string

	// Skipped lists files that already existed and were not
	// overwritten (Force was false).
	Skipped []string

	// Overwritten lists files that existed and were replaced
	// (Force was true).
	Overwritten []string
}

// versionMarker returns the comment prepended to each scaffolded file.
func versionMarker(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("# scaffolded by casegrid %s\n", version)
}

// Run writes .casegrid.yaml, and the CI workflow when opts.Workflow
// is set, into the target directory.
//
// If a file already exists and opts.Force is false, the file is
// skipped. If opts.Force is true, the file is overwritten.
func Run(opts Options) (*Result, error) {
	if opts.TargetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		opts.TargetDir = cwd
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if !hasSolution(opts.TargetDir) {
		fmt.Fprintln(opts.Stdout, "Warning: no .sln or .csproj found in the target directory.")
		fmt.Fprintln(opts.Stdout, "casegrid works best in a .NET solution root.")
		fmt.Fprintln(opts.Stdout)
	}

	marker := []byte(versionMarker(opts.Version))

	var cfgBuf bytes.Buffer
	if err := config.WriteYAML(&cfgBuf, opts.Config); err != nil {
		return nil, err
	}

	files := []struct {
		rel     string
		content []byte
	}{
		{config.FileName, cfgBuf.Bytes()},
	}
	if opts.Workflow {
		wf, err := assets.ReadFile("assets/casegrid.yml")
		if err != nil {
			return nil, fmt.Errorf("reading embedded workflow: %w", err)
		}
		files = append(files, struct {
			rel     string
			content []byte
		}{WorkflowPath, wf})
	}

	result := &Result{}
	for _, f := range files {
		outPath := filepath.Join(opts.TargetDir, f.rel)

		_, statErr := os.Stat(outPath)
		exists := statErr == nil
		if exists && !opts.Force {
			result.Skipped = append(result.Skipped, f.rel)
			continue
		}

		dir := filepath.Dir(outPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
		out := append(append([]byte{}, marker...), f.content...)
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.rel, err)
		}

		if exists {
			result.Overwritten = append(result.Overwritten, f.rel)
		} else {
			result.Created = append(result.Created, f.rel)
		}
	}

	printSummary(opts.Stdout, result)

	return result, nil
}

// hasSolution reports whether dir holds a .NET solution or project.
func hasSolution(dir string) bool {
	for _, pattern := range []string{"*.sln", "*.slnx", "*.csproj"} {
		if m, _ := filepath.Glob(filepath.Join(dir, pattern)); len(m) > 0 {
			return true
		}
	}
	return false
}

// printSummary writes a human-readable summary of the scaffold
// operation to w.
func printSummary(w io.Writer, r *Result) {
	fmt.Fprintln(w, "casegrid initialized:")

	for _, f := range r.Created {
		fmt.Fprintf(w, "  created: %s\n", f)
	}
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "  skipped: %s (already exists)\n", f)
	}
	for _, f := range r.Overwritten {
		fmt.Fprintf(w, "  overwritten: %s\n", f)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `casegrid generate` after `dotnet test` to build the report.")

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "%d file(s) skipped (use --force to overwrite).\n", len(r.Skipped))
	}
}
