// Package lint runs component rules over JavaScript and TypeScript files.
//
// A Linter parses each file once, runs component detection, the prop
// collectors of package props and every enabled rule in a single walk, and
// returns the diagnostics the rules reported. Files are processed in
// parallel by a worker pool sized like the parser pools, and results are
// cached by content digest.
package lint

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/syntax"
)

// Severity of a rule's diagnostics.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "off"
	}
}

// ParseSeverity accepts "off", "warn", "error" and the numeric forms 0-2.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("unknown severity %q (want off, warn or error)", s)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Rule is one lint check. Create is called once per file and returns the
// visitor merged into the file's walk; rules usually report from a
// syntax.ProgramExit handler, once every component fact is known.
type Rule struct {
	Name string
	Doc  string
	// DefaultSeverity applies when the configuration does not mention the
	// rule.
	DefaultSeverity Severity
	Create          func(ctx *RuleContext, reg *components.Registry, u *components.Utils) syntax.Visitor
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Path      string   `json:"path"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndLine   int      `json:"endLine"`
	EndColumn int      `json:"endColumn"`
	Rule      string   `json:"rule"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

// RuleContext is what a rule sees of the file being linted.
type RuleContext struct {
	*components.Context

	Path    string
	Rule    string
	Options map[string]any

	severity Severity
	report   func(Diagnostic)
}

// Report records a diagnostic at n.
func (c *RuleContext) Report(n *syntax.Node, message string) {
	end := n.EndPosition()
	c.report(Diagnostic{
		Path:      c.Path,
		Line:      n.Line(),
		Column:    n.Column(),
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
		Rule:      c.Rule,
		Severity:  c.severity,
		Message:   message,
	})
}

// Reportf is Report with formatting.
func (c *RuleContext) Reportf(n *syntax.Node, format string, args ...any) {
	c.Report(n, fmt.Sprintf(format, args...))
}

// BoolOption returns a boolean option, or def when it is unset or of
// another type.
func (c *RuleContext) BoolOption(name string, def bool) bool {
	if v, ok := c.Options[name].(bool); ok {
		return v
	}
	return def
}

// StringsOption returns a list-of-strings option. YAML and JSON decode lists
// as []any, so both shapes are accepted.
func (c *RuleContext) StringsOption(name string) []string {
	switch v := c.Options[name].(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}
