// Package runner resolves SQL files and runs the analyzer over them,
// fanning out across a bounded worker pool.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pgstyle/pgstyle/pkg/fix"
	"github.com/pgstyle/pgstyle/pkg/lexer"
	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
)

// TokenizerRuleID identifies the synthetic diagnostic emitted when a file
// cannot be tokenized. It is not a registered rule: nothing else can run
// over a stream the tokenizer gave up on.
const TokenizerRuleID = "LX01"

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic

	// Fatal marks a file that could not be analyzed at all: an unreadable
	// file or a malformed literal. Fatal results carry the run to exit
	// code 2 regardless of other findings.
	Fatal bool
	Err   error // set for I/O failures only
}

// Options configures a Runner.
type Options struct {
	Config  *lint.Config
	Dialect string
	Workers int // <= 0 means GOMAXPROCS
	Logger  *slog.Logger
}

// Runner checks and fixes sets of files concurrently.
type Runner struct {
	analyzer *lint.Analyzer
	config   *lint.Config
	dialect  string
	workers  int
	logger   *slog.Logger
}

// New creates a Runner.
func New(opts Options) *Runner {
	if opts.Config == nil {
		opts.Config = lint.NewConfig()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		analyzer: lint.NewAnalyzer(opts.Config, opts.Dialect),
		config:   opts.Config,
		dialect:  opts.Dialect,
		workers:  opts.Workers,
		logger:   opts.Logger,
	}
}

// Check analyzes the given files and returns one result per file, in input
// order. Per-file failures land in the result, not the error.
func (r *Runner) Check(ctx context.Context, files []string) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.checkFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) checkFile(path string) FileResult {
	r.logger.Debug("checking file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Fatal: true, Err: err}
	}

	file, err := parser.Parse(path, string(data), r.dialect)
	if err != nil {
		return FileResult{Path: path, Fatal: true, Diagnostics: tokenizerDiag(err)}
	}

	return FileResult{Path: path, Diagnostics: r.analyzer.Analyze(file)}
}

// Fix runs the fixer over the given files, rewriting the ones that change,
// and returns one result per file in input order.
func (r *Runner) Fix(ctx context.Context, files []string, write bool) ([]*fix.Result, []FileResult, error) {
	fixed := make([]*fix.Result, len(files))
	failures := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				failures[i] = FileResult{Path: path, Fatal: true, Err: err}
				return nil
			}

			result, err := fix.Source(path, string(data), r.dialect, r.config)
			if err != nil {
				failures[i] = FileResult{Path: path, Fatal: true, Diagnostics: tokenizerDiag(err)}
				return nil
			}

			if write && result.Changed {
				if err := fix.WriteFile(path, result.Fixed); err != nil {
					failures[i] = FileResult{Path: path, Fatal: true, Err: err}
					return nil
				}
				r.logger.Info("fixed file", "path", path, "passes", result.Passes)
			}
			fixed[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var fatal []FileResult
	for _, f := range failures {
		if f.Fatal {
			fatal = append(fatal, f)
		}
	}
	return fixed, fatal, nil
}

// tokenizerDiag converts a tokenizer failure into the single diagnostic
// reported for the file.
func tokenizerDiag(err error) []lint.Diagnostic {
	d := lint.Diagnostic{
		RuleID:   TokenizerRuleID,
		Severity: lint.SeverityError,
		Message:  err.Error(),
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		d.Pos = lexErr.Pos
		d.EndPos = lexErr.Pos
	}
	return []lint.Diagnostic{d}
}
