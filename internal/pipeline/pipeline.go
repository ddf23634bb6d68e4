// Package pipeline runs one report generation: discover the inputs,
// parse them, aggregate records into functions and build the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/unbound-force/casegrid/internal/aggregate"
	"github.com/unbound-force/casegrid/internal/config"
	"github.com/unbound-force/casegrid/internal/coverage"
	"github.com/unbound-force/casegrid/internal/docscan"
	"github.com/unbound-force/casegrid/internal/matching"
	"github.com/unbound-force/casegrid/internal/matrix"
	"github.com/unbound-force/casegrid/internal/naming"
	"github.com/unbound-force/casegrid/internal/report"
	"github.com/unbound-force/casegrid/internal/taxonomy"
	"github.com/unbound-force/casegrid/internal/trx"
	"github.com/unbound-force/casegrid/internal/xmldoc"
)

// ErrNoRecords is returned when no result file yields a test record.
var ErrNoRecords = errors.New("no test records found")

// Options configures a Run.
type Options struct {
	// Config is the run configuration. Nil means
	// config.DefaultConfig().
	Config *config.Config

	// Logger receives progress and warnings. Nil discards them.
	Logger *log.Logger

	// Matcher overrides the heuristic built from Config.Matching.
	Matcher matching.Matcher

	// GeneratedAt stamps the report. Zero means time.Now().
	GeneratedAt time.Time
}

// Inputs are the parsed evidence of one run.
type Inputs struct {
	Records  []taxonomy.TestRecord
	Docs     []taxonomy.MethodDoc
	Coverage *coverage.Summary
}

// Run executes the whole pipeline and returns the report model.
// Unreadable inputs are logged and skipped. Run fails only when
// discovery fails or no test record is found.
func Run(ctx context.Context, opts Options) (*report.Report, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	found, err := docscan.Discover(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered inputs",
		"results", len(found.Results),
		"docs", len(found.Docs),
		"coverage", found.Coverage,
	)

	in := Load(found, cfg, logger)
	if len(in.Records) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRecords, cfg.Inputs.ResultsDir)
	}

	return Build(in, cfg, opts.Matcher, opts.GeneratedAt), nil
}

// Load parses every discovered file. Files that fail to parse are
// logged at warn level and contribute nothing; XML files that are not
// documentation are logged at debug level.
func Load(found docscan.Inputs, cfg *config.Config, logger *log.Logger) Inputs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var in Inputs

	for _, path := range found.Results {
		recs, err := trx.ParseFile(path)
		if err != nil {
			logger.Warn("skipping result file", "file", path, "err", err)
			continue
		}
		logger.Info("parsed results", "file", path, "records", len(recs))
		in.Records = append(in.Records, recs...)
	}

	docOpts := xmldoc.Options{NamespacePrefix: cfg.Inputs.NamespacePrefix}
	for _, path := range found.Docs {
		docs, err := xmldoc.ParseFile(path, docOpts)
		if errors.Is(err, xmldoc.ErrNotDocumentation) {
			logger.Debug("ignoring xml file", "file", path)
			continue
		}
		if err != nil {
			logger.Warn("skipping documentation file", "file", path, "err", err)
			continue
		}
		logger.Info("parsed documentation", "file", path, "methods", len(docs))
		in.Docs = append(in.Docs, docs...)
	}

	if found.Coverage != "" {
		sum, err := coverage.ParseFile(found.Coverage)
		if err != nil {
			logger.Warn("skipping coverage summary", "file", found.Coverage, "err", err)
		} else {
			in.Coverage = sum
		}
	}

	return in
}

// Build aggregates parsed inputs and assembles the report. A nil
// matcher uses the heuristic configured in cfg.Matching.
func Build(in Inputs, cfg *config.Config, m matching.Matcher, generatedAt time.Time) *report.Report {
	splitter := naming.Splitter{Markers: cfg.Matching.Markers}
	if m == nil {
		m = matching.Heuristic{
			Splitter:        splitter,
			MinSubstringLen: cfg.Matching.MinSubstringLength,
		}
	}

	actx := aggregate.NewContext(in.Docs, aggregate.Options{Matcher: m, Splitter: splitter})
	res := aggregate.BuildGroups(actx, in.Records)

	p := cfg.Project
	return report.Build(actx, res, report.Options{
		Project: report.Project{
			Name:    p.Name,
			Version: p.Version,
			Branch:  p.Branch,
			Build:   p.Build,
		},
		GeneratedAt:   generatedAt,
		Matrix:        matrix.Options{SelectedToken: cfg.Matrix.SelectedToken},
		SheetNameBase: cfg.Matrix.SheetNameBase,
		SheetNameMax:  cfg.Matrix.SheetNameMax,
		Coverage:      in.Coverage,
	})
}
