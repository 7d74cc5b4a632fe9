package lint

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/gnana997/reactlint/pkg/parser"
)

// DefaultInclude matches every file the parsers understand.
var DefaultInclude = []string{"**/*.{js,jsx,mjs,cjs,ts,tsx,mts,cts}"}

// DefaultExclude skips dependency and build output directories.
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
	"**/coverage/**",
	"**/*.d.ts",
	"**/*.min.js",
}

// DiscoverOptions select the files to lint. Patterns are doublestar globs
// matched against paths relative to each root, with forward slashes.
type DiscoverOptions struct {
	Include []string
	Exclude []string
}

// DefaultDiscoverOptions returns DefaultInclude and DefaultExclude.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		Include: slices.Clone(DefaultInclude),
		Exclude: slices.Clone(DefaultExclude),
	}
}

// ValidatePatterns checks every include and exclude pattern.
func (o DiscoverOptions) ValidatePatterns() error {
	for _, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range o.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	return nil
}

// Excluded reports whether the root-relative, slash-separated path matches an
// exclude pattern.
func (o DiscoverOptions) Excluded(rel string) bool {
	for _, pattern := range o.Exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Included reports whether the relative path matches an include pattern. An
// empty include list matches every supported file.
func (o DiscoverOptions) Included(rel string) bool {
	if len(o.Include) == 0 {
		return parser.DetectDialect(rel) != parser.DialectUnknown
	}
	for _, pattern := range o.Include {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Discover walks every root concurrently and returns the matching files,
// sorted and without duplicates. A root that is a file is returned as is when
// the parsers support it, whatever the include patterns say.
func Discover(ctx context.Context, roots []string, opts DiscoverOptions, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := opts.ValidatePatterns(); err != nil {
		return nil, err
	}

	found := make([][]string, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			files, err := discoverRoot(ctx, root, opts, logger)
			if err != nil {
				return err
			}
			found[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var files []string
	for _, f := range found {
		files = append(files, f...)
	}
	slices.Sort(files)
	files = slices.Compact(files)

	logger.Debug("file discovery complete", "roots", len(roots), "files", len(files))
	return files, nil
}

func discoverRoot(ctx context.Context, root string, opts DiscoverOptions, logger *slog.Logger) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		if parser.DetectDialect(root) == parser.DialectUnknown {
			return nil, fmt.Errorf("%s: %w", root, parser.ErrUnsupportedFile)
		}
		return []string{filepath.Clean(root)}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("walk error", "path", path, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			// Directory patterns end in /**; match the directory itself
			// against them with a trailing segment.
			if opts.Excluded(rel) || opts.Excluded(rel+"/x") {
				return filepath.SkipDir
			}
			return nil
		}
		if opts.Excluded(rel) || !opts.Included(rel) {
			return nil
		}
		if parser.DetectDialect(path) == parser.DialectUnknown {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
