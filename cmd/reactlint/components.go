package main

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/util"
)

func componentsCommand() *cli.Command {
	return &cli.Command{
		Name:      "components",
		Usage:     "List the React components in files and directories",
		ArgsUsage: "[paths...]",
		Action:    runComponents,
	}
}

func runComponents(c *cli.Context) error {
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

	failed := 0
	for _, path := range files {
		if err := c.Context.Err(); err != nil {
			return err
		}
		comps, err := fileComponents(l, path, logger)
		if err != nil {
			logger.Error("failed to read components", "file", path, "error", err)
			failed++
			continue
		}
		if err := lint.WriteComponents(c.App.Writer, path, comps, c.String("format")); err != nil {
			return err
		}
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func fileComponents(l *lint.Linter, path string, logger *slog.Logger) ([]lint.Component, error) {
	src, err := util.OpenSource(path, logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	logger.Debug("detecting components", "file", path, "bytes", src.Len())
	return l.Components(path, src.Bytes())
}
