package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/gnana997/reactlint/pkg/lint"
)

type ruleRow struct {
	Name     string        `json:"name"`
	Severity lint.Severity `json:"severity"`
	Doc      string        `json:"doc"`
}

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:   "rules",
		Usage:  "List the rules and their configured severity",
		Action: runRules,
	}
}

func runRules(c *cli.Context) error {
	cfg, err := loadConfig(c, ".")
	if err != nil {
		return err
	}
	l, err := newLinter(c, cfg, nil)
	if err != nil {
		return err
	}
	defer l.Close()

	active := l.ActiveRules()
	var rows []ruleRow
	for _, r := range l.Rules() {
		sev := lint.SeverityOff
		if slices.Contains(active, r.Name) {
			sev = r.DefaultSeverity
			if rc, ok := cfg.LintOptions().Rules[r.Name]; ok {
				sev = rc.Severity
			}
		}
		rows = append(rows, ruleRow{Name: r.Name, Severity: sev, Doc: r.Doc})
	}

	switch strings.ToLower(c.String("format")) {
	case lint.FormatJSON:
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "", lint.FormatText:
		tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Name, row.Severity, row.Doc)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("%w: %s (want text or json)", lint.ErrUnknownFormat, c.String("format"))
	}
}
