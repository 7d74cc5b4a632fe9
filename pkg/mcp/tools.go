package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolLintCode         = "lint_code"
	ToolDetectComponents = "detect_components"
	ToolListRules        = "list_rules"
)

// defaultFilename decides the dialect when the caller does not name the file.
const defaultFilename = "input.tsx"

func lintCodeTool() mcp.Tool {
	return mcp.NewTool(ToolLintCode,
		mcp.WithDescription("Lint React code and return the diagnostics of every enabled rule."),
		mcp.WithString("code", mcp.Required(), mcp.Description("JavaScript or TypeScript source code")),
		mcp.WithString("filename", mcp.Description("File name used to pick the dialect (.js, .jsx, .ts, .tsx). Defaults to "+defaultFilename)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func detectComponentsTool() mcp.Tool {
	return mcp.NewTool(ToolDetectComponents,
		mcp.WithDescription("List the React components defined in the code with their declared, used and default props."),
		mcp.WithString("code", mcp.Required(), mcp.Description("JavaScript or TypeScript source code")),
		mcp.WithString("filename", mcp.Description("File name used to pick the dialect (.js, .jsx, .ts, .tsx). Defaults to "+defaultFilename)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listRulesTool() mcp.Tool {
	return mcp.NewTool(ToolListRules,
		mcp.WithDescription("List the available rules, their documentation and whether they are enabled."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
