// Package fix applies the text edits carried by auto-fixable diagnostics.
//
// Fixing is iterative: every pass re-tokenizes the current text, collects
// the surviving fixable diagnostics, applies their non-overlapping edits
// and starts over, until a pass changes nothing. Positions are only valid
// against the text they were computed from, so edits never survive a pass.
package fix

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
)

// maxPasses bounds the fix loop. Each pass needs a prior pass's edit to
// uncover new work, so rule interplay settles well before this.
const maxPasses = 10

// Result describes one file's fix run.
type Result struct {
	Path     string
	Original string
	Fixed    string
	Changed  bool
	Passes   int

	// Remaining holds the diagnostics still present after fixing,
	// including everything that was never auto-fixable.
	Remaining []lint.Diagnostic
}

// Source fixes SQL text in memory and reports what remains.
func Source(path, source, dialect string, config *lint.Config) (*Result, error) {
	analyzer := lint.NewAnalyzer(config, dialect)
	result := &Result{Path: path, Original: source, Fixed: source}

	for result.Passes < maxPasses {
		file, err := parser.Parse(path, result.Fixed, dialect)
		if err != nil {
			return nil, err
		}
		diags := analyzer.Analyze(file)

		edits := collectEdits(diags)
		if len(edits) == 0 {
			result.Remaining = diags
			return result, nil
		}

		next := applyEdits(result.Fixed, edits)
		if next == result.Fixed {
			result.Remaining = diags
			return result, nil
		}
		result.Fixed = next
		result.Changed = true
		result.Passes++
	}

	file, err := parser.Parse(path, result.Fixed, dialect)
	if err != nil {
		return nil, err
	}
	result.Remaining = analyzer.Analyze(file)
	return result, nil
}

// collectEdits gathers the first fix of every auto-fixable diagnostic.
func collectEdits(diags []lint.Diagnostic) []lint.TextEdit {
	var edits []lint.TextEdit
	for _, d := range diags {
		if !d.AutoFixable || len(d.Fixes) == 0 {
			continue
		}
		edits = append(edits, d.Fixes[0].TextEdits...)
	}
	return edits
}

// applyEdits applies edits back to front so earlier offsets stay valid.
// An edit overlapping one already applied, or falling outside the text,
// is dropped; the next pass reissues it against fresh positions.
func applyEdits(source string, edits []lint.TextEdit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Pos.Offset > edits[j].Pos.Offset
	})

	text := source
	limit := len(source)
	for _, e := range edits {
		start, end := e.Pos.Offset, e.EndPos.Offset
		if start < 0 || end < start || end > limit {
			continue
		}
		text = text[:start] + e.NewText + text[end:]
		limit = start
	}
	return text
}

// WriteFile replaces path with content via a temp file and rename, keeping
// the original file's permissions.
func WriteFile(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pgstyle-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
