package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/parser"
	"github.com/gnana997/reactlint/pkg/props"
	"github.com/gnana997/reactlint/pkg/syntax"
	"github.com/gnana997/reactlint/pkg/util"
)

// ErrUnknownRule is returned when options configure a rule that does not
// exist.
var ErrUnknownRule = errors.New("unknown rule")

// RuleConfig is the configured severity and options of one rule.
type RuleConfig struct {
	Severity Severity       `json:"severity"`
	Options  map[string]any `json:"options,omitempty"`
}

// Options configure a Linter.
type Options struct {
	Settings components.Settings
	// Rules overrides rule severities and options by name. Rules that are
	// not listed run with their default severity.
	Rules map[string]RuleConfig
	// Workers is the worker pool size; zero matches the parser pool size.
	Workers int
	// Cache, when set, is consulted before linting a file from disk.
	Cache *Cache
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path        string       `json:"path"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Components  int          `json:"components"`
	Cached      bool         `json:"-"`
}

// FileError is a file that could not be linted.
type FileError struct {
	Path  string `json:"path"`
	Error error  `json:"-"`
	// Message is Error's text, for JSON output.
	Message string `json:"error"`
}

// Report is the outcome of linting a set of files.
type Report struct {
	Files  []*FileResult `json:"files"`
	Errors []FileError   `json:"errors,omitempty"`
	Stats  ReportStats   `json:"stats"`
}

// ReportStats summarises a run.
type ReportStats struct {
	FilesLinted int   `json:"filesLinted"`
	FilesFailed int   `json:"filesFailed"`
	CacheHits   int   `json:"cacheHits"`
	Errors      int   `json:"errors"`
	Warnings    int   `json:"warnings"`
	DurationMs  int64 `json:"durationMs"`
	Workers     int   `json:"workers"`
}

// HasErrors reports whether any diagnostic has error severity or any file
// failed.
func (r *Report) HasErrors() bool {
	return r.Stats.Errors > 0 || r.Stats.FilesFailed > 0
}

// Linter runs rules over files. It is safe for concurrent use.
type Linter struct {
	parsers     *parser.ParserManager
	rules       []Rule
	active      []activeRule
	opts        Options
	fingerprint uint64
	logger      *slog.Logger
}

type activeRule struct {
	rule     Rule
	severity Severity
	options  map[string]any
}

// New creates a Linter for the given rule set. The Linter owns a parser
// manager and must be closed. A nil logger uses slog.Default().
func New(rules []Rule, opts Options, logger *slog.Logger) (*Linter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	known := make(map[string]bool, len(rules))
	for _, r := range rules {
		if r.Create == nil {
			return nil, fmt.Errorf("rule %q has no Create function", r.Name)
		}
		known[r.Name] = true
	}
	for name := range opts.Rules {
		if !known[name] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
	}

	l := &Linter{
		parsers: parser.NewParserManagerWithPoolSize(logger, opts.Workers),
		rules:   slices.Clone(rules),
		opts:    opts,
		logger:  logger,
	}
	for _, r := range rules {
		ar := activeRule{rule: r, severity: r.DefaultSeverity}
		if cfg, ok := opts.Rules[r.Name]; ok {
			ar.severity = cfg.Severity
			ar.options = cfg.Options
		}
		if ar.severity != SeverityOff {
			l.active = append(l.active, ar)
		}
	}
	if l.opts.Cache != nil {
		fp, err := fingerprint(opts, rules)
		if err != nil {
			logger.Warn("result cache disabled", "error", err)
			l.opts.Cache = nil
		}
		l.fingerprint = fp
	}

	logger.Debug("linter initialized", "rules", len(rules), "active", len(l.active))
	return l, nil
}

// Close releases the parser pools.
func (l *Linter) Close() error {
	return l.parsers.Close()
}

// Rules returns the rule set the Linter was built with.
func (l *Linter) Rules() []Rule {
	return slices.Clone(l.rules)
}

// ActiveRules returns the names of the rules that will report, in order.
func (l *Linter) ActiveRules() []string {
	out := make([]string, 0, len(l.active))
	for _, ar := range l.active {
		out = append(out, ar.rule.Name)
	}
	return out
}

// LintSource lints in-memory content. The dialect is chosen from path.
func (l *Linter) LintSource(path string, content []byte) (*FileResult, error) {
	var diags []Diagnostic
	reg, err := l.analyse(path, content, func(d Diagnostic) { diags = append(diags, d) })
	if err != nil {
		return nil, err
	}
	sortDiagnostics(diags)
	return &FileResult{Path: path, Diagnostics: diags, Components: reg.Length()}, nil
}

// LintFile lints a file on disk, consulting the cache when one is
// configured.
func (l *Linter) LintFile(path string) (*FileResult, error) {
	if parser.DetectDialect(path) == parser.DialectUnknown {
		return nil, fmt.Errorf("%s: %w", path, parser.ErrUnsupportedFile)
	}

	src, err := util.OpenSource(path, l.logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var key cacheKey
	if l.opts.Cache != nil {
		key = cacheKey{path: path, content: src.Digest(), options: l.fingerprint}
		if res, ok := l.opts.Cache.get(key); ok {
			l.logger.Debug("cache hit", "file", path)
			hit := *res
			hit.Cached = true
			return &hit, nil
		}
	}

	res, err := l.LintSource(path, src.Bytes())
	if err != nil {
		return nil, err
	}
	if l.opts.Cache != nil {
		l.opts.Cache.add(key, res)
	}
	return res, nil
}

// LintFiles lints paths in parallel. Per-file failures are collected in the
// report; the returned error is only set when ctx is cancelled.
func (l *Linter) LintFiles(ctx context.Context, paths []string) (*Report, error) {
	start := time.Now()
	report := &Report{}

	workers := util.PoolSize(l.opts.Workers)
	report.Stats.Workers = workers

	if len(paths) > 0 {
		pool := NewWorkerPool(workers, l, l.logger)
		pool.Start()
		results, errs, err := pool.Collect(ctx, paths)
		pool.Stop()
		if err != nil {
			return nil, err
		}
		report.Files = results
		report.Errors = errs
	}

	slices.SortFunc(report.Files, func(a, b *FileResult) int { return cmp.Compare(a.Path, b.Path) })
	slices.SortFunc(report.Errors, func(a, b FileError) int { return cmp.Compare(a.Path, b.Path) })

	for _, f := range report.Files {
		if f.Cached {
			report.Stats.CacheHits++
		}
		for _, d := range f.Diagnostics {
			switch d.Severity {
			case SeverityError:
				report.Stats.Errors++
			case SeverityWarn:
				report.Stats.Warnings++
			}
		}
	}
	report.Stats.FilesLinted = len(report.Files)
	report.Stats.FilesFailed = len(report.Errors)
	report.Stats.DurationMs = time.Since(start).Milliseconds()

	l.logger.Info("lint complete",
		"files", report.Stats.FilesLinted,
		"failed", report.Stats.FilesFailed,
		"errors", report.Stats.Errors,
		"warnings", report.Stats.Warnings,
		"cache_hits", report.Stats.CacheHits,
		"duration_ms", report.Stats.DurationMs)
	return report, nil
}

// Components runs detection and the prop collectors without rules and
// describes every listed component.
func (l *Linter) Components(path string, content []byte) ([]Component, error) {
	reg, err := l.analyse(path, content, nil)
	if err != nil {
		return nil, err
	}
	list := reg.List()
	out := make([]Component, 0, len(list))
	for _, rec := range list {
		out = append(out, Describe(rec))
	}
	return out, nil
}

// analyse parses content and runs detection, the prop collectors and, when
// report is set, the active rules in one walk.
func (l *Linter) analyse(path string, content []byte, report func(Diagnostic)) (*components.Registry, error) {
	tree, err := l.parsers.ParseFile(content, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	ctx := components.NewContext(tree, l.opts.Settings, l.logger.With("file", path))
	detector := components.NewDetector(ctx)

	analyses := props.Analyses()
	if report != nil {
		for _, ar := range l.active {
			rc := &RuleContext{
				Context:  ctx,
				Path:     path,
				Rule:     ar.rule.Name,
				Options:  ar.options,
				severity: ar.severity,
				report:   report,
			}
			create := ar.rule.Create
			analyses = append(analyses, func(reg *components.Registry, u *components.Utils) syntax.Visitor {
				return create(rc, reg, u)
			})
		}
	}
	return detector.Run(analyses...), nil
}

func sortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		if a.Column != b.Column {
			return a.Column - b.Column
		}
		return cmp.Compare(a.Rule, b.Rule)
	})
}
