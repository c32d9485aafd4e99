package rules

import (
	"fmt"
	"strings"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

func init() {
	KeywordCase.Check = checkKeywordCase
	lint.Register(KeywordCase)
}

// KeywordCase enforces consistent capitalisation of SQL keywords.
var KeywordCase = lint.RuleDef{
	ID:          "CP01",
	Name:        "capitalisation.keywords",
	Group:       "capitalisation",
	Description: "SQL keywords must use consistent capitalisation (upper by default).",
	Severity:    lint.SeverityWarning,
	AutoFixable: true,
	ConfigKeys:  []string{"case"},

	Rationale: `Uniform keyword casing makes the structural skeleton of a statement
visible at a glance: uppercase keywords stand out against lowercase identifiers,
so clauses can be located without reading every word.`,

	BadExample: `select id
from user_account`,

	GoodExample: `SELECT id
FROM user_account`,

	Fix: "Rewrite the keyword in the configured case.",
}

func checkKeywordCase(file *parser.File, opts map[string]any) []lint.Diagnostic {
	casing := stringOpt(opts, "case", "upper")
	if casing == "none" {
		return nil
	}

	var diags []lint.Diagnostic
	for _, tok := range file.Tokens {
		if tok.Kind != token.Keyword {
			continue
		}
		want := applyCase(tok.Text, casing)
		if tok.Text == want {
			continue
		}
		diags = append(diags, editDiag(KeywordCase, tok,
			fmt.Sprintf("keyword %q should be %q", tok.Text, want),
			fmt.Sprintf("Replace with %q", want),
			lint.TextEdit{Pos: tok.Pos, EndPos: tok.End(), NewText: want},
		))
	}
	return diags
}

func applyCase(s, casing string) string {
	if casing == "lower" {
		return strings.ToLower(s)
	}
	return strings.ToUpper(s)
}
