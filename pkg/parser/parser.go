// Package parser turns JavaScript and TypeScript source into syntax trees.
//
// Grammars are loaded lazily, one parser pool per dialect. Parsing returns an
// arena copy (syntax.Tree) so callers never hold tree-sitter resources.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/reactlint/pkg/syntax"
	"github.com/gnana997/reactlint/pkg/util"
)

// ErrUnsupportedFile is returned for paths whose extension has no grammar.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ParserManager hands out pooled tree-sitter parsers per dialect.
//
// Thread Safety:
//   - Safe for concurrent use; each dialect pool grows up to PoolSize parsers
//   - Pool creation uses double-checked locking
//
// The manager must be closed via Close().
type ParserManager struct {
	pools map[Dialect]*parserPool
	mutex sync.RWMutex

	poolSize int
	logger   *slog.Logger

	stats struct {
		parsesCalled int
		withErrors   int
	}
}

// NewParserManager creates a ParserManager. A nil logger uses slog.Default().
func NewParserManager(logger *slog.Logger) *ParserManager {
	return NewParserManagerWithPoolSize(logger, 0)
}

// NewParserManagerWithPoolSize is NewParserManager with an explicit per-dialect
// pool size. Zero selects util.PoolSize(0).
func NewParserManagerWithPoolSize(logger *slog.Logger, poolSize int) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:    make(map[Dialect]*parserPool),
		poolSize: util.PoolSize(poolSize),
		logger:   logger,
	}
}

// Parse parses source with the given dialect and returns an arena tree.
//
// Syntax errors do not fail the parse; the tree contains ERROR nodes and a
// warning is logged.
func (pm *ParserManager) Parse(source []byte, dialect Dialect) (*syntax.Tree, error) {
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("cannot parse: %w", ErrUnsupportedFile)
	}

	pool, err := pm.getOrCreatePool(dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", dialect, err)
	}

	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tsTree := p.Parse(source, nil)
	pool.release(p)

	if tsTree == nil {
		return nil, fmt.Errorf("parser returned nil tree for %s source", dialect)
	}
	defer tsTree.Close()

	hasError := tsTree.RootNode().HasError()

	pm.mutex.Lock()
	pm.stats.parsesCalled++
	if hasError {
		pm.stats.withErrors++
	}
	pm.mutex.Unlock()

	if hasError {
		pm.logger.Warn("parse tree contains errors", "dialect", dialect.String())
	}

	return syntax.FromTreeSitter(tsTree, source), nil
}

// ParseFile parses source, choosing the dialect from filePath.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*syntax.Tree, error) {
	dialect := DetectDialect(filePath)
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("%s: %w", filePath, ErrUnsupportedFile)
	}
	return pm.Parse(source, dialect)
}

// Close releases all pooled parsers. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing parser manager",
		"parses_called", pm.stats.parsesCalled,
		"with_errors", pm.stats.withErrors)

	for _, pool := range pm.pools {
		pool.close()
	}
	pm.pools = make(map[Dialect]*parserPool)
	return nil
}

func (pm *ParserManager) getOrCreatePool(dialect Dialect) (*parserPool, error) {
	pm.mutex.RLock()
	pool, ok := pm.pools[dialect]
	pm.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if pool, ok = pm.pools[dialect]; ok {
		return pool, nil
	}

	langPtr, err := languagePointer(dialect)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(dialect, langPtr, pm.poolSize, pm.logger)
	pm.pools[dialect] = pool

	pm.logger.Debug("created parser pool", "dialect", dialect.String(), "max_size", pm.poolSize)
	return pool, nil
}

func languagePointer(dialect Dialect) (unsafe.Pointer, error) {
	switch dialect {
	case DialectJavaScript:
		return ts_javascript.Language(), nil
	case DialectTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case DialectTSX:
		return ts_typescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("%s: %w", dialect, ErrUnsupportedFile)
	}
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.getCreatedCount()
	}
	return ParserStats{
		ParsersCreated: created,
		ParsesCalled:   pm.stats.parsesCalled,
		ParsesWithErrs: pm.stats.withErrors,
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
	// ParsesWithErrs counts trees that contained syntax errors.
	ParsesWithErrs int
}
