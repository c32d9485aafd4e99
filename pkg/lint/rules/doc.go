// Package rules contains the built-in style rules, one file per rule.
// Each rule registers itself via init; importing the package for side
// effects makes the full catalog available to the analyzer.
package rules

import (
	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/token"
)

// stringOpt reads a string option with a default.
func stringOpt(opts map[string]any, key, fallback string) string {
	if v, ok := opts[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// editDiag builds a diagnostic carrying a single-edit fix.
func editDiag(def lint.RuleDef, tok token.Token, message, fixDescription string, edit lint.TextEdit) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:      def.ID,
		Severity:    def.Severity,
		Message:     message,
		Pos:         tok.Pos,
		EndPos:      tok.End(),
		AutoFixable: true,
		Fixes: []lint.Fix{{
			Description: fixDescription,
			TextEdits:   []lint.TextEdit{edit},
		}},
	}
}
