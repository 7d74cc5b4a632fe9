package main

import (
	"github.com/urfave/cli/v2"

	"github.com/gnana997/reactlint/pkg/mcp"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the linter to AI assistants over MCP on stdio",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "call-log",
				Usage:   "Append every tool call to this JSONL file",
				EnvVars: []string{"REACTLINT_CALL_LOG"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c, ".")
	if err != nil {
		return err
	}
	l, err := newLinter(c, cfg, nil)
	if err != nil {
		return err
	}
	defer l.Close()

	calls, err := mcp.OpenCallLog(c.String("call-log"))
	if err != nil {
		return err
	}
	defer calls.Close()

	return mcp.NewServer(l, calls, version, loggerFrom(c)).ServeStdio()
}
