package parser

import (
	"path/filepath"
	"strings"
)

// Dialect selects the grammar a file is parsed with.
type Dialect int

const (
	// DialectJavaScript covers .js/.jsx/.mjs/.cjs. The JavaScript grammar
	// accepts JSX everywhere.
	DialectJavaScript Dialect = iota
	// DialectTypeScript covers .ts/.mts/.cts (no JSX).
	DialectTypeScript
	// DialectTSX covers .tsx.
	DialectTSX
	// DialectUnknown marks an unsupported file.
	DialectUnknown
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectJavaScript:
		return "javascript"
	case DialectTypeScript:
		return "typescript"
	case DialectTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// DetectDialect picks the dialect from a file extension.
func DetectDialect(filePath string) Dialect {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return DialectJavaScript
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTSX
	default:
		return DialectUnknown
	}
}

// ParseDialect converts a user-supplied name ("js", "ts", "tsx", ...) to a
// Dialect.
func ParseDialect(name string) Dialect {
	switch strings.ToLower(name) {
	case "javascript", "js", "jsx":
		return DialectJavaScript
	case "typescript", "ts":
		return DialectTypeScript
	case "tsx":
		return DialectTSX
	default:
		return DialectUnknown
	}
}

// SupportedDialects returns every parseable dialect.
func SupportedDialects() []Dialect {
	return []Dialect{DialectJavaScript, DialectTypeScript, DialectTSX}
}

// SupportedExtensions lists the file extensions the linter picks up.
func SupportedExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}
}
