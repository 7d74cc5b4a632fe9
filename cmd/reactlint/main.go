package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/gnana997/reactlint/pkg/config"
	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/rules"
	"github.com/gnana997/reactlint/pkg/util"
)

const version = "0.1.0-dev"

// exitUsage is returned for configuration and usage errors; lint failures
// exit with 1.
const exitUsage = 2

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "reactlint: %v\n", err)
		os.Exit(exitUsage)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "reactlint",
		Usage:                  "Find React components and check how they use their props",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: nearest .reactlint.yaml)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Value:   lint.FormatText,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of files linted in parallel (0 = based on CPU count)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Lint only files matching glob patterns (e.g., --include 'src/**/*.tsx')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip files matching glob patterns (e.g., --exclude '**/__generated__/**')",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn or error",
				Value: string(util.LevelWarn),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: text or json",
				Value: string(util.FormatText),
			},
		},
		Before: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			util.SetDefault(logger)
			c.App.Metadata = map[string]any{"logger": logger}
			return nil
		},
		Commands: []*cli.Command{
			lintCommand(),
			componentsCommand(),
			rulesCommand(),
			watchCommand(),
			serveCommand(),
			setupCommand(),
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(c.App.Writer, "reactlint %s\n", version)
					return nil
				},
			},
		},
	}
}

func newLogger(c *cli.Context) (*slog.Logger, error) {
	level, err := util.ParseLogLevel(c.String("log-level"))
	if err != nil {
		return nil, err
	}
	format, err := util.ParseLogFormat(c.String("log-format"))
	if err != nil {
		return nil, err
	}
	return util.NewLogger(util.LoggerConfig{
		Level:  level,
		Format: format,
		Output: c.App.ErrWriter,
	}), nil
}

func loggerFrom(c *cli.Context) *slog.Logger {
	if logger, ok := c.App.Metadata["logger"].(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// loadConfig resolves the configuration for dir and applies the flag
// overrides.
func loadConfig(c *cli.Context, dir string) (*config.Config, error) {
	cfg, err := config.Resolve(c.String("config"), dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(rules.Names()); err != nil {
		return nil, err
	}

	if c.IsSet("workers") {
		if c.Int("workers") < 0 {
			return nil, fmt.Errorf("--workers must not be negative, got %d", c.Int("workers"))
		}
		cfg.Workers = c.Int("workers")
	}
	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}
	cfg.Exclude = append(cfg.Exclude, c.StringSlice("exclude")...)
	if err := cfg.DiscoverOptions().ValidatePatterns(); err != nil {
		return nil, err
	}

	if cfg.Path != "" {
		loggerFrom(c).Debug("loaded config", "path", cfg.Path)
	}
	return cfg, nil
}

// newLinter builds a linter with every rule for cfg.
func newLinter(c *cli.Context, cfg *config.Config, cache *lint.Cache) (*lint.Linter, error) {
	opts := cfg.LintOptions()
	opts.Cache = cache
	return lint.New(rules.All(), opts, loggerFrom(c))
}

// configDir is the directory the configuration search starts from.
func configDir(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	if isDir(paths[0]) {
		return paths[0]
	}
	return filepath.Dir(paths[0])
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// pathArgs returns the positional arguments, or "." when there are none.
func pathArgs(c *cli.Context) []string {
	if c.NArg() == 0 {
		return []string{"."}
	}
	return c.Args().Slice()
}
