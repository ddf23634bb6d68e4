package docscan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/unbound-force/casegrid/internal/config"
	"github.com/unbound-force/casegrid/internal/coverage"
	"github.com/unbound-force/casegrid/internal/trx"
	"github.com/unbound-force/casegrid/internal/xmldoc"
)

// Options configures a Scan invocation.
type Options struct {
	// Match reports whether a file name is wanted. Nil matches
	// every file.
	Match func(name string) bool

	// Include and Exclude are glob patterns applied to the path
	// relative to the scanned root.
	Include []string
	Exclude []string

	// Timeout bounds the walk. Zero means no limit.
	Timeout time.Duration
}

// Scan walks the tree rooted at root and returns the paths of the
// matching files, shallowest first and alphabetically within a depth.
// Hidden directories are skipped. A missing root yields no files.
//
// If opts.Timeout is non-zero, the walk is bounded by that deadline
// and an error wrapping context.DeadlineExceeded is returned when it
// is hit.
func Scan(ctx context.Context, root string, opts Options) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("scanning %s: %w", root, ctxErr)
		}
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			base := d.Name()
			if strings.HasPrefix(base, ".") && rel != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.Match != nil && !opts.Match(d.Name()) {
			return nil
		}
		if !Filter(rel, opts.Include, opts.Exclude) {
			return nil
		}

		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortPaths(found)
	return found, nil
}

// sortPaths orders paths by depth, then alphabetically.
func sortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		di, dj := depth(paths[i]), depth(paths[j])
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(path), "/")
}

// Inputs is the evidence found for one run.
type Inputs struct {
	// Results are the TRX result files.
	Results []string `json:"results"`

	// Docs are the XML documentation files.
	Docs []string `json:"docs"`

	// Coverage is the shallowest coverage summary, or empty.
	Coverage string `json:"coverage,omitempty"`
}

// Discover scans the directories named in cfg for result files,
// documentation files and a coverage summary.
func Discover(ctx context.Context, cfg *config.Config) (Inputs, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	in := cfg.Inputs
	base := Options{
		Include: in.Include,
		Exclude: in.Exclude,
		Timeout: in.ScanTimeout,
	}

	var out Inputs

	opts := base
	opts.Match = hasExtension(trx.Extension)
	results, err := Scan(ctx, in.ResultsDir, opts)
	if err != nil {
		return Inputs{}, fmt.Errorf("discovering result files: %w", err)
	}
	out.Results = results

	if in.DocsDir != "" {
		opts = base
		opts.Match = hasExtension(xmldoc.Extension)
		docs, err := Scan(ctx, in.DocsDir, opts)
		if err != nil {
			return Inputs{}, fmt.Errorf("discovering documentation files: %w", err)
		}
		out.Docs = docs
	}

	if in.CoverageDir != "" {
		opts = base
		opts.Match = func(name string) bool { return name == coverage.FileName }
		summaries, err := Scan(ctx, in.CoverageDir, opts)
		if err != nil {
			return Inputs{}, fmt.Errorf("discovering coverage summary: %w", err)
		}
		if len(summaries) > 0 {
			out.Coverage = summaries[0]
		}
	}

	return out, nil
}

func hasExtension(ext string) func(string) bool {
	return func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ext)
	}
}
