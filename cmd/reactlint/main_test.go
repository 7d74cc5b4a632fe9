package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/gnana997/reactlint/pkg/lint"
)

// syncBuffer is a bytes.Buffer safe for the watcher's goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testApp(stdout, stderr *syncBuffer) *cli.App {
	app := newApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr syncBuffer
	err := testApp(&stdout, &stderr).Run(append([]string{"reactlint"}, args...))
	return stdout.String(), err
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	if err != nil {
		return exitUsage
	}
	return 0
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const cleanButton = `import PropTypes from 'prop-types';

const Button = ({ label }) => <button>{label}</button>;
Button.propTypes = { label: PropTypes.string };

export default Button;
`

const missingProp = `const Hello = (props) => <div>{props.name}</div>;
`

const twoComponents = `const A = () => <div/>;
const B = () => <span/>;
`

func TestLintCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/Button.jsx", cleanButton)
	writeFile(t, dir, "node_modules/lib/index.js", missingProp)

	out, err := runApp(t, "lint", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLintCommand_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Hello.jsx", missingProp)

	out, err := runApp(t, "lint", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, path)
	assert.Contains(t, out, "'name' is missing in props validation")
	assert.Contains(t, out, "1 problem (1 error, 0 warnings)")
}

func TestLintCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Hello.jsx", missingProp)
	writeFile(t, dir, "Button.jsx", cleanButton)

	out, err := runApp(t, "--format", "json", "lint", dir)
	assert.Equal(t, 1, exitCode(err))

	var report lint.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Stats.FilesLinted)
	assert.Equal(t, 1, report.Stats.Errors)
	require.Len(t, report.Files, 2)
}

func TestLintCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Hello.jsx", missingProp)
	writeFile(t, dir, ".reactlint.yaml", "rules:\n  prop-types: off\n")

	// Found by walking up from the linted directory.
	_, err := runApp(t, "lint", dir)
	assert.NoError(t, err)

	other := writeFile(t, t.TempDir(), "strict.yaml", "rules:\n  prop-types: warn\n")
	out, err := runApp(t, "--config", other, "lint", dir)
	assert.NoError(t, err)
	assert.Contains(t, out, "1 problem (0 errors, 1 warning)")
}

func TestLintCommand_UnknownRule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Hello.jsx", missingProp)
	cfg := writeFile(t, dir, "bad.yaml", "rules:\n  prop-type: error\n")

	_, err := runApp(t, "-c", cfg, "lint", dir)
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Contains(t, err.Error(), `did you mean "prop-types"`)
}

func TestLintCommand_MaxWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Both.jsx", twoComponents)

	out, err := runApp(t, "lint", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Declare only one React component per file")

	_, err = runApp(t, "lint", "--max-warnings", "0", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, err.Error(), "too many warnings")
}

func TestLintCommand_IncludeExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/Hello.jsx", missingProp)
	writeFile(t, dir, "legacy/Old.jsx", missingProp)

	out, err := runApp(t, "--exclude", "src/**", "--exclude", "legacy/**", "lint", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runApp(t, "--include", "legacy/**/*.jsx", "lint", dir)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "Old.jsx")
	assert.NotContains(t, out, "Hello.jsx")

	_, err = runApp(t, "--exclude", "[", "lint", dir)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestLintCommand_MissingPath(t *testing.T) {
	_, err := runApp(t, "lint", filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestComponentsCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Button.jsx", cleanButton)

	out, err := runApp(t, "components", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Button")
	assert.Contains(t, out, "props: label")

	out, err = runApp(t, "--format", "json", "components", path)
	require.NoError(t, err)
	var decoded struct {
		Path       string           `json:"path"`
		Components []lint.Component `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, path, decoded.Path)
	require.Len(t, decoded.Components, 1)
	assert.Equal(t, "Button", decoded.Components[0].Name)
	assert.Equal(t, []string{"label"}, decoded.Components[0].DeclaredProps)
}

func TestRulesCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, ".reactlint.yaml", "rules:\n  no-multi-comp: error\n  prop-types: off\n")

	out, err := runApp(t, "--config", cfg, "--format", "json", "rules")
	require.NoError(t, err)

	var rows []ruleRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	bySeverity := make(map[string]lint.Severity, len(rows))
	for _, r := range rows {
		bySeverity[r.Name] = r.Severity
	}
	assert.Len(t, rows, 6)
	assert.Equal(t, lint.SeverityError, bySeverity["no-multi-comp"])
	assert.Equal(t, lint.SeverityOff, bySeverity["prop-types"])
	assert.Equal(t, lint.SeverityOff, bySeverity["require-default-props"])
	assert.Equal(t, lint.SeverityWarn, bySeverity["no-unused-prop-types"])

	out, err = runApp(t, "--config", cfg, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "hook-use-state")
}

func TestGlobalFlagErrors(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "version")
	assert.Error(t, err)

	_, err = runApp(t, "--format", "xml", "rules")
	assert.ErrorIs(t, err, lint.ErrUnknownFormat)

	_, err = runApp(t, "--workers", "-1", "rules")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "reactlint "+version+"\n", out)
}

func TestWatchCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Hello.jsx", missingProp)

	var stdout, stderr syncBuffer
	app := testApp(&stdout, &stderr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- app.RunContext(ctx, []string{"reactlint", "watch", "--debounce", "20ms", dir})
	}()

	waitOutput := func(substr string) {
		t.Helper()
		require.Eventually(t, func() bool { return strings.Contains(stdout.String(), substr) },
			5*time.Second, 10*time.Millisecond, "waiting for %q in:\n%s", substr, stdout.String())
	}
	waitOutput("'name' is missing in props validation")
	waitOutput("Watching")

	writeFile(t, dir, "Title.jsx", "const Title = (props) => <h1>{props.title}</h1>;\n")
	waitOutput("'title' is missing in props validation")

	writeFile(t, dir, ".reactlint.yaml", "rules:\n  prop-types: warn\n")
	waitOutput("(0 errors, 2 warnings)")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchCommand_NotADirectory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Hello.jsx", missingProp)
	_, err := runApp(t, "watch", path)
	assert.Error(t, err)
}
