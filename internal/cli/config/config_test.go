package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgstyle/pgstyle/pkg/lint"
	// Register the rule catalog so validation can resolve rule IDs
	_ "github.com/pgstyle/pgstyle/pkg/lint/rules"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pgstyle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "auto", cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Nil(t, cfg.Lint)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `
dialect: ansi
output: json
ignore:
  - "migrations/**"
lint:
  disabled:
    - AM01
  severity:
    CP01: error
  rules:
    LT01:
      style: trailing
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, []string{"migrations/**"}, cfg.Ignore)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"AM01"}, cfg.Lint.Disabled)
	assert.Equal(t, "error", cfg.Lint.Severity["CP01"])
	assert.Equal(t, "trailing", cfg.Lint.Rules["LT01"]["style"])
	assert.Equal(t, filepath.Dir(path), cfg.ProjectRoot)
}

func TestLoadConfig_SearchesUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pgstyle.yml"), []byte("dialect: ansi\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, root, cfg.ProjectRoot)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "dialect: ansi\n")
	t.Setenv("PGSTYLE_DIALECT", "postgres")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("PGSTYLE_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--output", "text"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output)
}

func TestLoadConfig_UnchangedFlagIgnored(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "ansi", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect) // flag default does not override
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{
			name: "valid",
			cfg: Config{Dialect: "postgres", Output: "auto", Lint: &LintConfig{
				Disabled: []string{"AM01"},
				Severity: map[string]string{"CP01": "error"},
				Rules:    map[string]map[string]any{"LT01": {"style": "leading"}},
			}},
		},
		{
			name:      "bad dialect",
			cfg:       Config{Dialect: "mysql", Output: "auto"},
			errSubstr: "dialect",
		},
		{
			name:      "bad output",
			cfg:       Config{Dialect: "postgres", Output: "xml"},
			errSubstr: "output",
		},
		{
			name: "unknown disabled rule",
			cfg: Config{Dialect: "postgres", Output: "auto",
				Lint: &LintConfig{Disabled: []string{"ZZ99"}}},
			errSubstr: `unknown rule "ZZ99"`,
		},
		{
			name: "unknown severity rule",
			cfg: Config{Dialect: "postgres", Output: "auto",
				Lint: &LintConfig{Severity: map[string]string{"ZZ99": "error"}}},
			errSubstr: `unknown rule "ZZ99"`,
		},
		{
			name: "bad severity value",
			cfg: Config{Dialect: "postgres", Output: "auto",
				Lint: &LintConfig{Severity: map[string]string{"CP01": "fatal"}}},
			errSubstr: "lint.severity.CP01",
		},
		{
			name: "unknown rule option",
			cfg: Config{Dialect: "postgres", Output: "auto",
				Lint: &LintConfig{Rules: map[string]map[string]any{"CP01": {"style": "x"}}}},
			errSubstr: `unknown option "style"`,
		},
		{
			name: "bad enum value",
			cfg: Config{Dialect: "postgres", Output: "auto",
				Lint: &LintConfig{Rules: map[string]map[string]any{"LT01": {"style": "middle"}}}},
			errSubstr: "lint.rules.LT01.style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			var cfgErr *Error
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestRuleConfig(t *testing.T) {
	cfg := Config{
		Dialect: "postgres",
		Output:  "auto",
		Lint: &LintConfig{
			Disabled: []string{"AM01"},
			Severity: map[string]string{"CV01": "error"},
			Rules:    map[string]map[string]any{"LT01": {"style": "trailing"}},
		},
	}
	require.NoError(t, Validate(&cfg))

	rc := cfg.RuleConfig()
	assert.True(t, rc.IsDisabled("AM01"))
	assert.False(t, rc.IsDisabled("CP01"))
	assert.Equal(t, lint.SeverityError, rc.GetSeverity("CV01", lint.SeverityInfo))
	assert.Equal(t, "trailing", rc.GetRuleOptions("LT01")["style"])
}
