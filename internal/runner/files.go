package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// ResolveFiles expands the path arguments into a sorted, deduplicated list
// of SQL files. A directory is walked recursively for *.sql files, an
// argument containing glob metacharacters is expanded (** included), and
// anything else must be an existing file. Ignore patterns are matched
// against slash-separated paths.
func ResolveFiles(paths, ignore []string) ([]string, error) {
	ignorer, err := compileIgnore(ignore)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || ignorer(path) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, arg := range paths {
		switch {
		case strings.ContainsAny(arg, "*?[{"):
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			for _, m := range matches {
				if isSQLFile(m) {
					add(m)
				}
			}

		default:
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("cannot read %q: %w", arg, err)
			}
			if !info.IsDir() {
				add(arg)
				continue
			}
			err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isSQLFile(path) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}

// compileIgnore builds a single predicate over the ignore patterns. Each
// pattern matches the whole slash-separated path or the base name.
func compileIgnore(patterns []string) (func(string) bool, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("bad ignore pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return func(path string) bool {
		slashed := filepath.ToSlash(path)
		base := filepath.Base(path)
		for _, g := range globs {
			if g.Match(slashed) || g.Match(base) {
				return true
			}
		}
		return false
	}, nil
}
