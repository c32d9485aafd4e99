package rules

import (
	"fmt"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
)

func init() {
	LiteralCase.Check = checkLiteralCase
	lint.Register(LiteralCase)
}

// LiteralCase enforces consistent capitalisation of the word literals
// TRUE, FALSE and NULL.
var LiteralCase = lint.RuleDef{
	ID:          "CP03",
	Name:        "capitalisation.literals",
	Group:       "capitalisation",
	Description: "Word literals (TRUE, FALSE, NULL) must use consistent capitalisation.",
	Severity:    lint.SeverityWarning,
	AutoFixable: true,
	ConfigKeys:  []string{"case"},

	Rationale: `TRUE, FALSE and NULL read like keywords even though they are values,
so they should follow the same casing convention the keywords use. Mixing
true and TRUE in one file is noise with no meaning.`,

	BadExample: `SELECT * FROM user_account WHERE active = true`,

	GoodExample: `SELECT * FROM user_account WHERE active = TRUE`,

	Fix: "Rewrite the literal in the configured case.",
}

func checkLiteralCase(file *parser.File, opts map[string]any) []lint.Diagnostic {
	casing := stringOpt(opts, "case", "upper")
	if casing == "none" {
		return nil
	}

	var diags []lint.Diagnostic
	for _, tok := range file.Tokens {
		if !tok.IsWordLiteral() {
			continue
		}
		want := applyCase(tok.Text, casing)
		if tok.Text == want {
			continue
		}
		diags = append(diags, editDiag(LiteralCase, tok,
			fmt.Sprintf("literal %q should be %q", tok.Text, want),
			fmt.Sprintf("Replace with %q", want),
			lint.TextEdit{Pos: tok.Pos, EndPos: tok.End(), NewText: want},
		))
	}
	return diags
}
