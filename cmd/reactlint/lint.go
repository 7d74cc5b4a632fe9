package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gnana997/reactlint/pkg/lint"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Aliases:   []string{"l"},
		Usage:     "Lint files and directories",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-warnings",
				Usage: "Fail when there are more warnings than this (-1 = no limit)",
				Value: -1,
			},
		},
		Action: runLint,
	}
}

func runLint(c *cli.Context) error {
	logger := loggerFrom(c)
	paths := pathArgs(c)

	cfg, err := loadConfig(c, configDir(paths))
	if err != nil {
		return err
	}
	l, err := newLinter(c, cfg, nil)
	if err != nil {
		return err
	}
	defer l.Close()

	files, err := lint.Discover(c.Context, paths, cfg.DiscoverOptions(), logger)
	if err != nil {
		return err
	}
	report, err := l.LintFiles(c.Context, files)
	if err != nil {
		return err
	}
	if err := lint.WriteReport(c.App.Writer, report, c.String("format")); err != nil {
		return err
	}

	if report.HasErrors() {
		return cli.Exit("", 1)
	}
	if limit := c.Int("max-warnings"); limit >= 0 && report.Stats.Warnings > limit {
		return cli.Exit(fmt.Sprintf("too many warnings (%d, maximum %d)", report.Stats.Warnings, limit), 1)
	}
	return nil
}
