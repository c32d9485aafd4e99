// Package commands implements the pgstyle subcommands.
package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgstyle/pgstyle/internal/cli/config"
	"github.com/pgstyle/pgstyle/internal/cli/output"
	"github.com/pgstyle/pgstyle/internal/runner"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the dependencies every command needs.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// getConfig returns the current configuration, falling back to environment
// variables when no config has been loaded (direct command construction in
// tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dialect: getEnvOrDefault("PGSTYLE_DIALECT", config.DefaultDialect),
		Output:  getEnvOrDefault("PGSTYLE_OUTPUT", config.DefaultOutput),
		Verbose: os.Getenv("PGSTYLE_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// newRunner builds a runner from the command context.
func (c *CommandContext) newRunner() *runner.Runner {
	return runner.New(runner.Options{
		Config:  c.Cfg.RuleConfig(),
		Dialect: c.Cfg.Dialect,
		Workers: c.Cfg.Workers,
		Logger:  c.Logger,
	})
}

// errViolations signals that checking succeeded but found violations; the
// CLI maps it to exit code 1 instead of printing it as an error.
var errViolations = errors.New("style violations found")

// IsViolationErr reports whether err is the violations-found sentinel.
func IsViolationErr(err error) bool {
	return errors.Is(err, errViolations)
}
