package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// loggingMiddleware logs every tool call and appends it to the call log when
// one is configured.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := now()
			result, err := next(ctx, req)
			elapsed := time.Since(start).Milliseconds()

			rb := ResponseBytes(result)
			isError := result != nil && result.IsError
			var errStr *string
			if err != nil {
				msg := err.Error()
				errStr = &msg
			}

			attrs := []any{"tool", req.Params.Name, "duration_ms", elapsed, "response_bytes", rb}
			switch {
			case err != nil:
				s.logger.Error("tool call failed", append(attrs, "error", err)...)
			case isError:
				s.logger.Warn("tool call returned an error", attrs...)
			default:
				s.logger.Debug("tool call", attrs...)
			}

			if werr := s.calls.Write(CallEntry{
				Ts:            start.UTC().Format(time.RFC3339),
				Tool:          req.Params.Name,
				Params:        SanitizeParams(req.GetArguments()),
				DurationMs:    elapsed,
				ResponseBytes: rb,
				IsError:       isError,
				Error:         errStr,
			}); werr != nil {
				s.logger.Warn("failed to write call log", "error", werr)
			}

			return result, err
		}
	}
}
