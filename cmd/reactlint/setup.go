package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"
)

// serverName is the key reactlint is registered under in agent configs.
const serverName = "reactlint"

// agentDef describes how to find and configure one AI agent.
type agentDef struct {
	ID          string
	DisplayName string
	// Binary is set for agents configured through their own CLI
	// (`<binary> mcp add`).
	Binary string
	// DirMarkers are project directories that indicate the agent is used.
	DirMarkers []string
	ConfigPath func() string
	// ServersKey is the JSON object the server entries live under.
	ServersKey  string
	ExtraFields map[string]string
}

func (d agentDef) usesCLI() bool { return d.Binary != "" }

// detectedAgent is an agent found on this machine or in this project.
type detectedAgent struct {
	Def        agentDef
	Configured bool
	ConfigPath string
}

type setupOptions struct {
	auto  bool
	scope string
}

// Replaced in tests.
var (
	lookPathFunc = exec.LookPath
	statFunc     = os.Stat
	runCommand   = func(w io.Writer, name string, args ...string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdout = w
		cmd.Stderr = w
		return cmd.Run()
	}
)

var agents = []agentDef{
	{ID: "claude_code", DisplayName: "Claude Code", Binary: "claude"},
	{ID: "openai_codex", DisplayName: "OpenAI Codex", Binary: "codex"},
	{
		ID: "vscode_copilot", DisplayName: "VS Code Copilot",
		DirMarkers:  []string{".vscode"},
		ConfigPath:  func() string { return filepath.Join(".vscode", "mcp.json") },
		ServersKey:  "servers",
		ExtraFields: map[string]string{"type": "stdio"},
	},
	{
		ID: "cursor", DisplayName: "Cursor",
		DirMarkers: []string{".cursor"},
		ConfigPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		ServersKey: "mcpServers",
	},
	{
		ID: "claude_desktop", DisplayName: "Claude Desktop",
		ConfigPath: claudeDesktopConfigPath,
		ServersKey: "mcpServers",
	},
}

func claudeDesktopConfigPath() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	default:
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}

func setupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Register the MCP server with the AI agents found on this machine",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "Configure every detected agent without prompting",
			},
			&cli.StringFlag{
				Name:  "scope",
				Usage: "Scope for CLI agents in --auto mode: project or user",
				Value: "project",
			},
		},
		Action: func(c *cli.Context) error {
			scope := c.String("scope")
			if scope != "project" && scope != "user" {
				return fmt.Errorf("--scope must be project or user, got %q", scope)
			}
			executeSetup(os.Stdin, c.App.Writer, setupOptions{auto: c.Bool("auto"), scope: scope})
			return nil
		},
	}
}

func detectAgents() []detectedAgent {
	var found []detectedAgent
	for _, def := range agents {
		if def.usesCLI() {
			if _, err := lookPathFunc(def.Binary); err == nil {
				found = append(found, detectedAgent{Def: def, Configured: hasServer(".mcp.json", "mcpServers")})
			}
			continue
		}

		configPath := ""
		for _, marker := range def.DirMarkers {
			if _, err := statFunc(marker); err == nil {
				configPath = def.ConfigPath()
				break
			}
		}
		// Agents without project markers are found by their config directory.
		if len(def.DirMarkers) == 0 {
			if p := def.ConfigPath(); p != "" {
				if _, err := statFunc(filepath.Dir(p)); err == nil {
					configPath = p
				}
			}
		}
		if configPath != "" {
			found = append(found, detectedAgent{
				Def:        def,
				ConfigPath: configPath,
				Configured: hasServer(configPath, def.ServersKey),
			})
		}
	}
	return found
}

// hasServer reports whether the JSON config at path already lists reactlint.
func hasServer(path, serversKey string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return false
	}
	servers, _ := cfg[serversKey].(map[string]any)
	_, ok := servers[serverName]
	return ok
}

func serverEntry(extra map[string]string) map[string]any {
	entry := map[string]any{
		"command": "reactlint",
		"args":    []any{"serve"},
	}
	for k, v := range extra {
		entry[k] = v
	}
	return entry
}

// addServer merges the reactlint entry into the JSON document existing. It
// returns nil when the entry is already there.
func addServer(existing []byte, serversKey string, extra map[string]string) ([]byte, error) {
	cfg := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &cfg); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}
	servers, ok := cfg[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[serverName]; exists {
		return nil, nil
	}
	servers[serverName] = serverEntry(extra)
	cfg[serversKey] = servers

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func configureFile(def agentDef, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	merged, err := addServer(existing, def.ServersKey, def.ExtraFields)
	if err != nil || merged == nil {
		return err
	}
	return os.WriteFile(path, merged, 0o644)
}

func configureCLI(w io.Writer, def agentDef, scope string) error {
	return runCommand(w, def.Binary, "mcp", "add", "--scope", scope, serverName, "--", "reactlint", "serve")
}

func confirm(in *bufio.Scanner, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [Y/n] ", question)
	if !in.Scan() {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "", "y", "yes":
		return true
	}
	return false
}

// chooseScope returns "project", "user", or "" to skip.
func chooseScope(in *bufio.Scanner, w io.Writer, agent string) string {
	fmt.Fprintf(w, "\n%s: add the reactlint MCP server?\n", agent)
	fmt.Fprintln(w, "  [1] Project scope (shared with team)")
	fmt.Fprintln(w, "  [2] User scope (personal, global)")
	fmt.Fprintln(w, "  [3] Skip")
	fmt.Fprint(w, "  > ")
	if !in.Scan() {
		return "project"
	}
	switch strings.TrimSpace(in.Text()) {
	case "", "1":
		return "project"
	case "2":
		return "user"
	}
	return ""
}

func executeSetup(r io.Reader, w io.Writer, opts setupOptions) {
	if opts.scope == "" {
		opts.scope = "project"
	}
	found := detectAgents()
	if len(found) == 0 {
		fmt.Fprintln(w, "No supported AI agents detected.")
		return
	}

	fmt.Fprintln(w, "Detected AI agents:")
	for _, d := range found {
		suffix := ""
		if d.Configured {
			suffix = " (already configured)"
		}
		fmt.Fprintf(w, "  * %s%s\n", d.Def.DisplayName, suffix)
	}
	fmt.Fprintln(w)

	in := bufio.NewScanner(r)
	if !opts.auto && !confirm(in, w, "Configure agents?") {
		return
	}

	for _, d := range found {
		if d.Configured {
			fmt.Fprintf(w, "%s: already configured, skipping\n", d.Def.DisplayName)
			continue
		}
		configureAgent(in, w, d, opts)
	}
}

func configureAgent(in *bufio.Scanner, w io.Writer, d detectedAgent, opts setupOptions) {
	if d.Def.usesCLI() {
		scope := opts.scope
		if !opts.auto {
			if scope = chooseScope(in, w, d.Def.DisplayName); scope == "" {
				fmt.Fprintln(w, "  skipped")
				return
			}
		}
		if err := configureCLI(w, d.Def, scope); err != nil {
			fmt.Fprintf(w, "  ! %s: failed: %v\n", d.Def.DisplayName, err)
			return
		}
		fmt.Fprintf(w, "  + %s configured (scope: %s)\n", d.Def.DisplayName, scope)
		return
	}

	if !opts.auto && !confirm(in, w, fmt.Sprintf("%s: add to %s?", d.Def.DisplayName, d.ConfigPath)) {
		fmt.Fprintln(w, "  skipped")
		return
	}
	if err := configureFile(d.Def, d.ConfigPath); err != nil {
		fmt.Fprintf(w, "  ! %s: failed: %v\n", d.Def.DisplayName, err)
		return
	}
	fmt.Fprintf(w, "  + %s configured (%s)\n", d.Def.DisplayName, d.ConfigPath)
}
