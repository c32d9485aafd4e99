package commands

import (
	"fmt"

	"github.com/andreyvit/diff"
	"github.com/spf13/cobra"

	"github.com/pgstyle/pgstyle/internal/cli/output"
	"github.com/pgstyle/pgstyle/internal/runner"
	"github.com/pgstyle/pgstyle/pkg/fix"
	_ "github.com/pgstyle/pgstyle/pkg/lint/rules" // register rules
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Paths  []string
	Stdout bool // Print the fixed text instead of writing files
	Diff   bool // Show a line diff instead of writing files
	Check  bool // Report which files would change, without writing
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Rewrite SQL files to conform to the style guide",
		Long: `Apply the auto-fixes for every fixable violation, repeatedly, until
the files settle. Violations without a safe rewrite (ambiguous wildcards,
naming, qualification) are left in place and reported.

Files are rewritten atomically and keep their permissions. Unfixed
spans are preserved byte for byte.`,
		Example: `  # Fix the current directory in place
  pgstyle fix

  # Preview the changes as a diff
  pgstyle fix --diff queries/

  # Print the fixed file to stdout without touching it
  pgstyle fix --stdout queries/report.sql

  # Fail if anything would change (CI gate)
  pgstyle fix --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			if len(opts.Paths) == 0 {
				opts.Paths = []string{"."}
			}
			return runFix(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Print fixed output instead of writing files (single file only)")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Show what would change without writing files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit nonzero if any file would change, without writing")

	return cmd
}

func runFix(cmd *cobra.Command, opts *FixOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	files, err := runner.ResolveFiles(opts.Paths, cmdCtx.Cfg.Ignore)
	if err != nil {
		return err
	}

	write := !opts.Stdout && !opts.Diff && !opts.Check
	if opts.Stdout && len(files) != 1 {
		return fmt.Errorf("--stdout requires exactly one input file, got %d", len(files))
	}

	results, fatal, err := cmdCtx.newRunner().Fix(cmd.Context(), files, write)
	if err != nil {
		return err
	}
	for _, f := range fatal {
		if f.Err != nil {
			fmt.Fprintf(r.ErrWriter(), "%s: %v\n", f.Path, f.Err)
			continue
		}
		for _, d := range f.Diagnostics {
			fmt.Fprintf(r.ErrWriter(), "%s:%d:%d: %s\n", f.Path, d.Pos.Line, d.Pos.Column, d.Message)
		}
	}

	if opts.Stdout {
		for _, res := range results {
			if res != nil {
				r.Printf("%s", res.Fixed)
			}
		}
		if len(fatal) > 0 {
			return fmt.Errorf("%d files could not be fixed", len(fatal))
		}
		return nil
	}

	out := output.FixOutput{}
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Changed {
			out.FilesChanged++
		}
		out.Files = append(out.Files, output.FixFileResult{
			Path:      res.Path,
			Changed:   res.Changed,
			Passes:    res.Passes,
			Remaining: len(res.Remaining),
		})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	default:
		renderFixText(r, opts, results, out)
	}

	switch {
	case len(fatal) > 0:
		return fmt.Errorf("%d files could not be fixed", len(fatal))
	case opts.Check && out.FilesChanged > 0:
		return errViolations
	default:
		return nil
	}
}

func renderFixText(r *output.Renderer, opts *FixOptions, results []*fix.Result, out output.FixOutput) {
	styles := r.Styles()
	for _, res := range results {
		if res == nil || !res.Changed {
			continue
		}
		switch {
		case opts.Diff:
			r.Println(styles.FilePath.Render(res.Path))
			r.Println(diff.LineDiff(res.Original, res.Fixed))
			r.Println("")
		case opts.Check:
			r.Printf("%s %s\n", styles.Warning.Render("would fix"), styles.FilePath.Render(res.Path))
		default:
			r.Printf("%s %s (%d passes, %d unfixable remaining)\n",
				styles.Success.Render("fixed"), styles.FilePath.Render(res.Path), res.Passes, len(res.Remaining))
		}
	}

	switch {
	case out.FilesChanged == 0:
		r.Success(fmt.Sprintf("Nothing to fix in %d files", len(out.Files)))
	case opts.Check:
		r.Printf("\n%d of %d files would change\n", out.FilesChanged, len(out.Files))
	case opts.Diff:
		r.Printf("%d of %d files would change\n", out.FilesChanged, len(out.Files))
	default:
		r.Success(fmt.Sprintf("Fixed %d of %d files", out.FilesChanged, len(out.Files)))
	}
}
