package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pgstyle/pgstyle/internal/cli/output"
)

// defaultConfigTemplate is written by `pgstyle init`. Every option is shown
// with its default so the file documents itself.
const defaultConfigTemplate = `# pgstyle configuration
# See 'pgstyle rules' for the full rule catalog.

# SQL dialect: postgres or ansi
dialect: postgres

# Output format: auto, text, markdown, json, sarif
# auto picks text on a terminal and markdown otherwise.
output: auto

# Number of files checked in parallel (0 = number of CPUs)
workers: 0

# Glob patterns for files to skip. Matched against the full path and the
# base name; ** is supported.
ignore: []
#  - "migrations/**"
#  - "*_generated.sql"

lint:
  # Rule IDs to disable entirely
  disabled: []
  #  - AM01

  # Override the default severity per rule: error, warning, info, hint
  severity: {}
  #  RF01: error

  # Per-rule options
  rules: {}
  #  CP01:
  #    case: upper        # upper, lower or none
  #  LT01:
  #    style: leading     # leading or trailing
  #  CV01:
  #    operator: "<>"     # <> or !=
  #  NM01:
  #    view_prefix: vw_
  #    materialized_view_prefix: mvw_
  #    function_prefix: f_
  #    temp_prefix: tmp_
  #  ST01:
  #    created_column: _created_at
  #    updated_column: _updated_at
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a pgstyle.yaml configuration file",
		Long: `Write a documented pgstyle.yaml with every option at its default.

The file is created in the given directory (default: current directory).
Existing files are never overwritten unless --force is set.`,
		Example: `  # Create pgstyle.yaml in the current directory
  pgstyle init

  # Create it in a project directory
  pgstyle init my-project

  # Overwrite an existing config
  pgstyle init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "pgstyle.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.Success("Created " + configPath)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust rule options in pgstyle.yaml")
	r.Println("  2. Run 'pgstyle check' to find style issues")
	r.Println("  3. Run 'pgstyle fix' to rewrite files in place")

	return nil
}
