// Package config loads and validates pgstyle configuration from the
// project file, environment variables and CLI flags.
package config

import (
	"fmt"

	"github.com/pgstyle/pgstyle/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect string      `koanf:"dialect"`
	Output  string      `koanf:"output"`
	Verbose bool        `koanf:"verbose"`
	Workers int         `koanf:"workers"`
	Ignore  []string    `koanf:"ignore"`
	Lint    *LintConfig `koanf:"lint"`

	// ProjectRoot is where the config file was found (or the working
	// directory); relative paths in the config resolve against it.
	ProjectRoot string `koanf:"-"`
}

// LintConfig configures the rule engine.
type LintConfig struct {
	// Disabled lists rule IDs to skip entirely
	Disabled []string `koanf:"disabled"`

	// Severity overrides the default severity per rule ID
	Severity map[string]string `koanf:"severity"`

	// Rules holds per-rule option maps keyed by rule ID
	Rules map[string]map[string]any `koanf:"rules"`
}

// Default configuration values.
const (
	DefaultDialect = "postgres"
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config file names, searched in order.
var configFileNames = []string{"pgstyle.yaml", "pgstyle.yml"}

// Error is a configuration problem. It aborts the run before any file is
// checked.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// RuleConfig converts the lint section into the analyzer's configuration.
// Validate must have accepted the config first.
func (c *Config) RuleConfig() *lint.Config {
	rc := lint.NewConfig()
	if c.Lint == nil {
		return rc
	}
	for _, id := range c.Lint.Disabled {
		rc.Disable(id)
	}
	for id, name := range c.Lint.Severity {
		if sev, ok := lint.ParseSeverity(name); ok {
			rc.SetSeverity(id, sev)
		}
	}
	for id, opts := range c.Lint.Rules {
		rc.SetRuleOptions(id, opts)
	}
	return rc
}
