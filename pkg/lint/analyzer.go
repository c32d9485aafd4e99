package lint

import (
	"fmt"
	"sort"

	"github.com/pgstyle/pgstyle/pkg/parser"
)

// Analyzer runs registered rules against parsed files.
type Analyzer struct {
	config  *Config
	dialect string // Filter rules by dialect (empty = all)
}

// NewAnalyzer creates an analyzer with optional configuration.
func NewAnalyzer(config *Config, dialect string) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config, dialect: dialect}
}

// Analyze runs all enabled rules against the file and returns diagnostics
// sorted by (line, column, rule ID). Rules run in ID order, but since each
// rule is a pure function over the read-only file and the output is sorted,
// execution order carries no meaning.
func (a *Analyzer) Analyze(file *parser.File) []Diagnostic {
	if file == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, def := range All() {
		if a.config.IsDisabled(def.ID) {
			continue
		}
		if len(def.Dialects) > 0 && a.dialect != "" && !containsDialect(def.Dialects, a.dialect) {
			continue
		}

		diags, failure := runIsolated(def, file, a.config.GetRuleOptions(def.ID))

		// Severity overrides apply to the rule's own findings only; a
		// crashed rule always reports at error.
		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(def.ID, diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
		if failure != nil {
			diagnostics = append(diagnostics, *failure)
		}
	}

	Sort(diagnostics)
	return diagnostics
}

// runIsolated runs one rule's check, converting a panic into a single
// internal-error diagnostic so a broken rule never blocks the others.
func runIsolated(def RuleDef, file *parser.File, opts map[string]any) (diags []Diagnostic, failure *Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			failure = &Diagnostic{
				RuleID:   def.ID,
				Severity: SeverityError,
				Message:  fmt.Sprintf("internal error in rule %s (%s): %v", def.ID, def.Name, r),
			}
		}
	}()
	return def.Check(file, opts), nil
}

// Sort stable-sorts diagnostics by line, then column, then rule ID.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Pos.Line != diags[j].Pos.Line {
			return diags[i].Pos.Line < diags[j].Pos.Line
		}
		if diags[i].Pos.Column != diags[j].Pos.Column {
			return diags[i].Pos.Column < diags[j].Pos.Column
		}
		return diags[i].RuleID < diags[j].RuleID
	})
}

func containsDialect(dialects []string, name string) bool {
	for _, d := range dialects {
		if d == name {
			return true
		}
	}
	return false
}
