// Package mcp exposes the linter to AI assistants over the Model Context
// Protocol.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/reactlint/pkg/lint"
)

// Server implements the MCP server for reactlint, exposing linting and
// component detection of in-memory code.
type Server struct {
	mcpServer *server.MCPServer
	linter    *lint.Linter
	calls     *CallLog // may be nil
	logger    *slog.Logger
	version   string
}

// NewServer creates an MCP server backed by linter. When calls is non-nil
// every tool call is appended to it.
func NewServer(linter *lint.Linter, calls *CallLog, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{linter: linter, calls: calls, logger: logger, version: version}

	s.mcpServer = server.NewMCPServer(
		"reactlint",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(s.loggingMiddleware()),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: lintCodeTool(), Handler: s.handleLintCode},
		server.ServerTool{Tool: detectComponentsTool(), Handler: s.handleDetectComponents},
		server.ServerTool{Tool: listRulesTool(), Handler: s.handleListRules},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP on stdio", "version", s.version)
	return server.ServeStdio(s.mcpServer)
}
