package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgstyle/pgstyle/internal/cli/config"
	"github.com/pgstyle/pgstyle/internal/cli/output"
	"github.com/pgstyle/pgstyle/internal/runner"
	"github.com/pgstyle/pgstyle/pkg/lint"
	_ "github.com/pgstyle/pgstyle/pkg/lint/rules" // register rules
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Paths    []string
	Format   string   // Output format override
	Severity string   // Minimum severity to report
	Disable  []string // Rule IDs to disable
	Rules    []string // Run only specific rules
	Watch    bool     // Re-check on file changes
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check SQL files against the style guide",
		Long: `Analyze SQL files and report style violations.

Paths may be files, directories (searched recursively for *.sql) or
glob patterns (** is supported). With no path, the current directory
is checked.

Output adapts to environment:
  - Terminal: styled text
  - Piped/Scripted: markdown
  - JSON/SARIF: machine-readable formats`,
		Example: `  # Check the current directory
  pgstyle check

  # Check specific paths
  pgstyle check queries/ migrations/001_init.sql

  # Output as SARIF for code scanning
  pgstyle check --format sarif

  # Disable specific rules
  pgstyle check --disable AM01,RF01

  # Only report errors
  pgstyle check --severity error

  # Re-check whenever a file changes
  pgstyle check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			if len(opts.Paths) == 0 {
				opts.Paths = []string{"."}
			}
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, sarif")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to report: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch files and re-check on change")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q", opts.Severity)
	}

	applyRuleFlags(cmdCtx, opts.Disable, opts.Rules)
	run := cmdCtx.newRunner()

	doCheck := func(ctx context.Context) error {
		files, err := runner.ResolveFiles(opts.Paths, cmdCtx.Cfg.Ignore)
		if err != nil {
			return err
		}
		results, err := run.Check(ctx, files)
		if err != nil {
			return err
		}
		results = filterBySeverity(results, threshold)
		return renderCheckResults(r, results)
	}

	if opts.Watch {
		return runner.Watch(cmd.Context(), opts.Paths, cmdCtx.Logger, func(ctx context.Context) error {
			err := doCheck(ctx)
			if IsViolationErr(err) {
				return nil // keep watching; violations are expected mid-edit
			}
			return err
		})
	}
	return doCheck(cmd.Context())
}

// applyRuleFlags folds the --disable and --rule flags into the rule config.
func applyRuleFlags(cmdCtx *CommandContext, disable, only []string) {
	if len(disable) == 0 && len(only) == 0 {
		return
	}
	if cmdCtx.Cfg.Lint == nil {
		cmdCtx.Cfg.Lint = &config.LintConfig{}
	}
	cmdCtx.Cfg.Lint.Disabled = append(cmdCtx.Cfg.Lint.Disabled, disable...)

	if len(only) > 0 {
		keep := map[string]bool{}
		for _, id := range only {
			keep[id] = true
		}
		for _, info := range lint.AllInfo() {
			if !keep[info.ID] {
				cmdCtx.Cfg.Lint.Disabled = append(cmdCtx.Cfg.Lint.Disabled, info.ID)
			}
		}
	}
}

// filterBySeverity drops diagnostics less severe than the threshold.
// Fatal results always pass through.
func filterBySeverity(results []runner.FileResult, threshold lint.Severity) []runner.FileResult {
	for i := range results {
		if results[i].Fatal {
			continue
		}
		var kept []lint.Diagnostic
		for _, d := range results[i].Diagnostics {
			if d.Severity <= threshold {
				kept = append(kept, d)
			}
		}
		results[i].Diagnostics = kept
	}
	return results
}

func renderCheckResults(r *output.Renderer, results []runner.FileResult) error {
	out, anyFatal := buildCheckOutput(results)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeSARIF:
		if err := output.WriteSARIF(r.Writer(), results); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderCheckMarkdown(r, results, out.Summary)
	default:
		renderCheckText(r, results, out.Summary)
	}

	switch {
	case anyFatal:
		return fmt.Errorf("%d files could not be checked", out.Summary.FatalFiles)
	case out.Summary.TotalIssues > 0:
		return errViolations
	default:
		return nil
	}
}

func buildCheckOutput(results []runner.FileResult) (output.CheckOutput, bool) {
	out := output.CheckOutput{Summary: output.CheckSummary{FilesChecked: len(results)}}
	anyFatal := false

	for _, res := range results {
		fileOut := output.CheckFileResult{Path: res.Path, Fatal: res.Fatal}
		if res.Fatal {
			anyFatal = true
			out.Summary.FatalFiles++
		}
		for _, d := range res.Diagnostics {
			out.Summary.TotalIssues++
			switch d.Severity {
			case lint.SeverityError:
				out.Summary.Errors++
			case lint.SeverityWarning:
				out.Summary.Warnings++
			case lint.SeverityInfo:
				out.Summary.Info++
			case lint.SeverityHint:
				out.Summary.Hints++
			}
			fileOut.Diagnostics = append(fileOut.Diagnostics, output.CheckDiagnostic{
				RuleID:      d.RuleID,
				Severity:    d.Severity.String(),
				Message:     d.Message,
				Line:        d.Pos.Line,
				Column:      d.Pos.Column,
				AutoFixable: d.AutoFixable,
			})
		}
		if res.Err != nil {
			out.Summary.TotalIssues++
			fileOut.Diagnostics = append(fileOut.Diagnostics, output.CheckDiagnostic{
				RuleID:   runner.TokenizerRuleID,
				Severity: lint.SeverityError.String(),
				Message:  res.Err.Error(),
			})
		}
		out.Files = append(out.Files, fileOut)
	}
	return out, anyFatal
}

// renderCheckText prints one finding per line:
// path:line:column: severity [rule] message
func renderCheckText(r *output.Renderer, results []runner.FileResult, summary output.CheckSummary) {
	styles := r.Styles()
	for _, res := range results {
		if res.Err != nil {
			r.Printf("%s: %s\n", styles.FilePath.Render(res.Path), styles.Error.Render(res.Err.Error()))
			continue
		}
		for _, d := range res.Diagnostics {
			r.Printf("%s: [%s] %s\n",
				styles.FilePath.Render(fmt.Sprintf("%s:%d:%d", res.Path, d.Pos.Line, d.Pos.Column)),
				getSeverityStyle(styles, d.Severity).Render(d.RuleID),
				d.Message,
			)
		}
	}

	if summary.TotalIssues == 0 && summary.FatalFiles == 0 {
		r.Success(fmt.Sprintf("No style issues in %d files", summary.FilesChecked))
		return
	}
	r.Println("")
	r.Printf("Summary: %s in %d files\n", summarizeCounts(summary), summary.FilesChecked)
}

func renderCheckMarkdown(r *output.Renderer, results []runner.FileResult, summary output.CheckSummary) {
	r.Println(output.FormatHeader(1, "Style Check"))
	r.Println("")
	for _, res := range results {
		if len(res.Diagnostics) == 0 && res.Err == nil {
			continue
		}
		r.Println(output.FormatHeader(2, res.Path))
		r.Println("")
		if res.Err != nil {
			r.Printf("- **fatal:** %s\n", res.Err.Error())
		}
		for _, d := range res.Diagnostics {
			r.Printf("- `%d:%d` **%s** (%s) %s\n", d.Pos.Line, d.Pos.Column, d.RuleID, d.Severity, d.Message)
		}
		r.Println("")
	}
	r.Println(output.FormatKeyValue("Files", fmt.Sprintf("%d", summary.FilesChecked)))
	r.Println(output.FormatKeyValue("Issues", summarizeCounts(summary)))
}

func summarizeCounts(summary output.CheckSummary) string {
	parts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", summary.Hints))
	}
	return strings.Join(parts, ", ")
}
