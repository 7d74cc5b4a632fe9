package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/reactlint/pkg/parser"
)

// ruleInfo is one entry of the list_rules response.
type ruleInfo struct {
	Name            string `json:"name"`
	Doc             string `json:"doc"`
	DefaultSeverity string `json:"default_severity"`
	Enabled         bool   `json:"enabled"`
}

func (s *Server) handleLintCode(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, filename, errResult := codeArguments(req)
	if errResult != nil {
		return errResult, nil
	}

	res, err := s.linter.LintSource(filename, []byte(code))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(res)
}

func (s *Server) handleDetectComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, filename, errResult := codeArguments(req)
	if errResult != nil {
		return errResult, nil
	}

	comps, err := s.linter.Components(filename, []byte(code))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(comps)
}

func (s *Server) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active := s.linter.ActiveRules()
	var out []ruleInfo
	for _, r := range s.linter.Rules() {
		out = append(out, ruleInfo{
			Name:            r.Name,
			Doc:             r.Doc,
			DefaultSeverity: r.DefaultSeverity.String(),
			Enabled:         slices.Contains(active, r.Name),
		})
	}
	return jsonResult(out)
}

// codeArguments extracts code and filename. A non-nil result is the error to
// return to the client.
func codeArguments(req mcp.CallToolRequest) (string, string, *mcp.CallToolResult) {
	code, err := req.RequireString("code")
	if err != nil {
		return "", "", mcp.NewToolResultError("missing required argument: code")
	}
	filename := req.GetString("filename", defaultFilename)
	if parser.DetectDialect(filename) == parser.DialectUnknown {
		return "", "", mcp.NewToolResultError(fmt.Sprintf("unsupported filename %q: use a .js, .jsx, .ts or .tsx name", filename))
	}
	return code, filename, nil
}

func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, parser.ErrUnsupportedFile) {
		return mcp.NewToolResultError("unsupported file type")
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
