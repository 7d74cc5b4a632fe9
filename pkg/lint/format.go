package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output formats accepted by WriteReport.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// WriteReport renders report in the given format.
func WriteReport(w io.Writer, report *Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, report)
	case FormatJSON:
		return writeJSON(w, report)
	}
	return fmt.Errorf("%w: %s (want text or json)", ErrUnknownFormat, format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeText groups diagnostics by file:
//
//	src/App.jsx
//	  3:1  warn  Declare only one component per file  no-multi-comp
func writeText(w io.Writer, report *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range report.Files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		fmt.Fprintln(tw, f.Path)
		for _, d := range f.Diagnostics {
			fmt.Fprintf(tw, "  %d:%d\t%s\t%s\t%s\n", d.Line, d.Column, d.Severity, d.Message, d.Rule)
		}
		fmt.Fprintln(tw)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(tw, "%s\n  error\t%s\n\n", e.Path, e.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	problems := report.Stats.Errors + report.Stats.Warnings
	if problems == 0 && report.Stats.FilesFailed == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%d %s (%d %s, %d %s)",
		problems, plural(problems, "problem"),
		report.Stats.Errors, plural(report.Stats.Errors, "error"),
		report.Stats.Warnings, plural(report.Stats.Warnings, "warning"))
	if err != nil {
		return err
	}
	if report.Stats.FilesFailed > 0 {
		_, err = fmt.Fprintf(w, ", %d %s could not be linted",
			report.Stats.FilesFailed, plural(report.Stats.FilesFailed, "file"))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// WriteComponents renders the components found in one file.
func WriteComponents(w io.Writer, path string, comps []Component, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return writeJSON(w, struct {
			Path       string      `json:"path"`
			Components []Component `json:"components"`
		}{path, comps})
	case "", FormatText:
	default:
		return fmt.Errorf("%w: %s (want text or json)", ErrUnknownFormat, format)
	}

	if len(comps) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, path)
	for _, c := range comps {
		fmt.Fprintf(tw, "  %d:%d\t%s\t%s", c.Line, c.Column, c.Kind, c.Name)
		if len(c.DeclaredProps) > 0 {
			fmt.Fprintf(tw, "\tprops: %s", strings.Join(c.DeclaredProps, ", "))
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
