package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
)

const fullConfig = `
settings:
  react:
    pragma: Preact
    createClass: createClass
    importSource: preact/compat
  componentWrapperFunctions:
    - observer
    - { property: styled }
    - property: memo
      object: <pragma>
rules:
  no-multi-comp: [warn, { ignoreStateless: true }]
  prop-types: error
  no-unused-prop-types: 1
  require-default-props: [off]
  hook-use-state: "0"
include: ["src/**/*.jsx"]
exclude: ["**/*.stories.*"]
workers: 3
`

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	settings := cfg.ComponentSettings()
	assert.Equal(t, "Preact", settings.Pragma)
	assert.Equal(t, "createClass", settings.CreateClass)
	assert.Equal(t, "preact/compat", settings.ImportSource)
	assert.Equal(t, []components.WrapperFunction{
		{Property: "observer"},
		{Property: "styled"},
		{Property: "memo", Object: components.PragmaObject},
	}, settings.WrapperFunctions)

	opts := cfg.LintOptions()
	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, lint.RuleConfig{Severity: lint.SeverityWarn, Options: map[string]any{"ignoreStateless": true}}, opts.Rules["no-multi-comp"])
	assert.Equal(t, lint.SeverityError, opts.Rules["prop-types"].Severity)
	assert.Equal(t, lint.SeverityWarn, opts.Rules["no-unused-prop-types"].Severity)
	assert.Equal(t, lint.SeverityOff, opts.Rules["require-default-props"].Severity)
	assert.Equal(t, lint.SeverityOff, opts.Rules["hook-use-state"].Severity)

	discover := cfg.DiscoverOptions()
	assert.Equal(t, []string{"src/**/*.jsx"}, discover.Include)
	assert.Contains(t, discover.Exclude, "**/node_modules/**")
	assert.Contains(t, discover.Exclude, "**/*.stories.*")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg.LintOptions().Rules)
	assert.Equal(t, lint.DefaultInclude, cfg.DiscoverOptions().Include)
	assert.Equal(t, components.Settings{}, cfg.ComponentSettings())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "rulez: {}", "field rulez not found"},
		{"bad severity", "rules: { prop-types: loud }", "unknown severity"},
		{"too many entries", "rules: { prop-types: [warn, {}, {}] }", "rule entry must be"},
		{"options not a mapping", "rules: { prop-types: [warn, [a]] }", "rule options must be a mapping"},
		{"rule mapping", "rules: { prop-types: { severity: warn } }", "rule entry must be a severity"},
		{"wrapper without property", "settings: { componentWrapperFunctions: [{ object: Mobx }] }", "needs a property"},
		{"wrapper sequence", "settings: { componentWrapperFunctions: [[memo]] }", "must be a name"},
		{"bad pattern", `include: ["src/[*.js"]`, "invalid include pattern"},
		{"negative workers", "workers: -1", "must not be negative"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate(t *testing.T) {
	known := []string{"no-multi-comp", "prop-types", "no-unused-prop-types"}

	cfg, err := Parse([]byte("rules: { prop-type: error, no-multi-comp: warn }"))
	require.NoError(t, err)
	err = cfg.Validate(known)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRule)
	assert.ErrorIs(t, err, lint.ErrUnknownRule)
	assert.Contains(t, err.Error(), `did you mean "prop-types"?`)

	cfg, err = Parse([]byte("rules: { zzz: error }"))
	require.NoError(t, err)
	err = cfg.Validate(known)
	assert.ErrorIs(t, err, ErrUnknownRule)
	assert.NotContains(t, err.Error(), "did you mean")

	cfg, err = Parse([]byte("rules: { prop-types: error }"))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate(known))
}

func TestSuggest(t *testing.T) {
	candidates := []string{"no-multi-comp", "prop-types", "hook-use-state"}
	assert.Equal(t, "hook-use-state", Suggest("hook-usestate", candidates))
	assert.Equal(t, "no-multi-comp", Suggest("no-multi-comps", candidates))
	assert.Empty(t, Suggest("", candidates))
	assert.Empty(t, Suggest("prop-types", nil))
}

func TestFindAndResolve(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "packages", "app", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := Find(nested)
	require.NoError(t, err)
	assert.Empty(t, path)

	cfg, err := Resolve("", nested)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)

	configPath := filepath.Join(root, "packages", ".reactlint.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("rules: { prop-types: warn }\n"), 0o644))

	path, err = Find(nested)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)

	cfg, err = Resolve("", nested)
	require.NoError(t, err)
	assert.Equal(t, configPath, cfg.Path)
	assert.Equal(t, lint.SeverityWarn, cfg.Rules["prop-types"].Severity)

	// An explicit path wins over discovery.
	explicit := filepath.Join(root, "custom.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("workers: 2\n"), 0o644))
	cfg, err = Resolve(explicit, nested)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(root, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
