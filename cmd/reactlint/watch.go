package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/gnana997/reactlint/pkg/config"
	"github.com/gnana997/reactlint/pkg/lint"
	"github.com/gnana997/reactlint/pkg/watch"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Aliases:   []string{"w"},
		Usage:     "Lint a directory, then re-lint files as they change",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Delay before re-linting a changed file",
				Value: watch.DefaultDebounce,
			},
		},
		Action: runWatch,
	}
}

// watchSession owns the linter of a watch run. The linter is rebuilt when
// the configuration changes; the cache survives the rebuild.
type watchSession struct {
	c      *cli.Context
	root   string
	out    io.Writer
	format string
	cache  *lint.Cache
	logger *slog.Logger

	mu     sync.Mutex
	cfg    *config.Config
	linter *lint.Linter
}

func runWatch(c *cli.Context) error {
	root := "."
	if c.NArg() > 0 {
		root = c.Args().First()
	}
	if !isDir(root) {
		return fmt.Errorf("%s is not a directory", root)
	}

	s := &watchSession{
		c:      c,
		root:   root,
		out:    c.App.Writer,
		format: c.String("format"),
		cache:  lint.NewCache(0),
		logger: loggerFrom(c),
	}
	if err := s.load(); err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.lintAll(ctx)

	w, err := watch.New(root, watch.Options{
		Debounce:    c.Duration("debounce"),
		Discover:    s.cfg.DiscoverOptions(),
		ConfigFiles: config.FileNames,
	}, watch.Events{
		Changed:       s.changed,
		Removed:       s.removed,
		ConfigChanged: s.configChanged,
	}, s.logger)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Watching %s for changes. Press Ctrl+C to stop.\n", root)

	<-ctx.Done()
	return w.Stop()
}

// load builds the linter from the current configuration. On error the
// previous linter stays in place.
func (s *watchSession) load() error {
	cfg, err := loadConfig(s.c, s.root)
	if err != nil {
		return err
	}
	l, err := newLinter(s.c, cfg, s.cache)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.linter
	s.cfg, s.linter = cfg, l
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

func (s *watchSession) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.linter != nil {
		s.linter.Close()
		s.linter = nil
	}
}

func (s *watchSession) lintAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := lint.Discover(ctx, []string{s.root}, s.cfg.DiscoverOptions(), s.logger)
	if err != nil {
		s.logger.Error("failed to discover files", "root", s.root, "error", err)
		return
	}
	s.lintLocked(ctx, files)
}

func (s *watchSession) lintLocked(ctx context.Context, files []string) {
	report, err := s.linter.LintFiles(ctx, files)
	if err != nil {
		s.logger.Warn("lint interrupted", "error", err)
		return
	}
	if err := lint.WriteReport(s.out, report, s.format); err != nil {
		s.logger.Error("failed to write report", "error", err)
	}
}

func (s *watchSession) changed(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.linter == nil {
		return
	}
	s.lintLocked(context.Background(), []string{path})
}

func (s *watchSession) removed(path string) {
	s.logger.Info("file removed", "file", path)
}

func (s *watchSession) configChanged(path string) {
	s.logger.Info("config changed, reloading", "file", path)
	if err := s.load(); err != nil {
		s.logger.Error("failed to reload config, keeping the previous one", "error", err)
		return
	}
	s.lintAll(context.Background())
}
