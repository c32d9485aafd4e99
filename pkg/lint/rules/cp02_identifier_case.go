package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

func init() {
	IdentifierCase.Check = checkIdentifierCase
	lint.Register(IdentifierCase)
}

// snakeCase is the required shape for unquoted identifiers. One leading
// underscore is allowed so the audit columns (_created_at, _updated_at)
// conform.
var snakeCase = regexp.MustCompile(`^_?[a-z][a-z0-9_]*$`)

// IdentifierCase enforces lowercase snake_case for unquoted identifiers.
var IdentifierCase = lint.RuleDef{
	ID:          "CP02",
	Name:        "capitalisation.identifiers",
	Group:       "capitalisation",
	Description: "Unquoted identifiers must be lowercase snake_case.",
	Severity:    lint.SeverityWarning,
	AutoFixable: true,

	Rationale: `PostgreSQL folds unquoted identifiers to lowercase, so a name written
as UserAccount and one written as useraccount are the same object. Writing
lowercase snake_case makes the source spelling match what the catalog stores
and keeps word boundaries readable without quoting.`,

	BadExample: `SELECT UserID, accountName FROM UserAccount`,

	GoodExample: `SELECT user_id, account_name FROM user_account`,

	Fix: "Rename the identifier to lowercase snake_case; split camelCase words with underscores.",
}

func checkIdentifierCase(file *parser.File, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, tok := range file.Tokens {
		if tok.Kind != token.Identifier || tok.IsQuoted() {
			continue
		}
		if snakeCase.MatchString(tok.Text) {
			continue
		}

		lowered := strings.ToLower(tok.Text)
		suggested := snakeJoin(camelcase.Split(tok.Text))
		if snakeCase.MatchString(lowered) && suggested == lowered {
			// Pure case noise: lowercasing is safe because PostgreSQL
			// folds the unquoted form to lowercase anyway.
			diags = append(diags, editDiag(IdentifierCase, tok,
				fmt.Sprintf("identifier %q should be %q", tok.Text, lowered),
				fmt.Sprintf("Replace with %q", lowered),
				lint.TextEdit{Pos: tok.Pos, EndPos: tok.End(), NewText: lowered},
			))
			continue
		}

		// camelCase hides word boundaries that lowercasing alone cannot
		// recover, and renaming changes semantics, so no auto-fix here.
		msg := fmt.Sprintf("identifier %q is not lowercase snake_case", tok.Text)
		if suggested != "" && suggested != lowered {
			msg = fmt.Sprintf("%s (consider %q)", msg, suggested)
		}
		diags = append(diags, lint.Diagnostic{
			RuleID:   IdentifierCase.ID,
			Severity: IdentifierCase.Severity,
			Message:  msg,
			Pos:      tok.Pos,
			EndPos:   tok.End(),
		})
	}
	return diags
}

// snakeJoin lowercases and joins split words, dropping the separator
// runs camelcase.Split keeps as their own elements.
func snakeJoin(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.Trim(p, "_ \t"); p != "" {
			kept = append(kept, strings.ToLower(p))
		}
	}
	return strings.Join(kept, "_")
}
