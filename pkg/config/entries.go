package config

import (
	"fmt"

	"github.com/hbollon/go-edlib"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
)

// Wrapper is a componentWrapperFunctions entry. It decodes from a bare
// function name or from a {property, object} mapping.
type Wrapper components.WrapperFunction

func (w *Wrapper) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			return fmt.Errorf("line %d: empty wrapper function name", value.Line)
		}
		*w = Wrapper{Property: value.Value}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Property string `yaml:"property"`
			Object   string `yaml:"object"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		if raw.Property == "" {
			return fmt.Errorf("line %d: wrapper function needs a property", value.Line)
		}
		*w = Wrapper{Property: raw.Property, Object: raw.Object}
		return nil
	}
	return fmt.Errorf("line %d: wrapper function must be a name or a {property, object} mapping", value.Line)
}

// RuleEntry is a rules entry. It decodes from a severity (`warn`, `2`) or
// from a `[severity, {options}]` sequence.
type RuleEntry lint.RuleConfig

func (r *RuleEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		sev, err := lint.ParseSeverity(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*r = RuleEntry{Severity: sev}
		return nil

	case yaml.SequenceNode:
		if len(value.Content) == 0 || len(value.Content) > 2 {
			return fmt.Errorf("line %d: rule entry must be [severity] or [severity, {options}]", value.Line)
		}
		var entry RuleEntry
		if err := entry.UnmarshalYAML(value.Content[0]); err != nil {
			return err
		}
		if len(value.Content) == 2 {
			if value.Content[1].Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: rule options must be a mapping", value.Content[1].Line)
			}
			if err := value.Content[1].Decode(&entry.Options); err != nil {
				return err
			}
		}
		*r = entry
		return nil
	}
	return fmt.Errorf("line %d: rule entry must be a severity or [severity, {options}]", value.Line)
}

// minSuggestionSimilarity is the Jaro-Winkler score below which no rule name
// is suggested.
const minSuggestionSimilarity = 0.8

// Suggest returns the candidate closest to name, or "" when none is similar
// enough.
func Suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	best, err := edlib.FuzzySearchThreshold(name, candidates, minSuggestionSimilarity, edlib.JaroWinkler)
	if err != nil {
		return ""
	}
	return best
}
