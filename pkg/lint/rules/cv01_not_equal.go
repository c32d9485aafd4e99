package rules

import (
	"fmt"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
)

func init() {
	NotEqual.Check = checkNotEqual
	lint.Register(NotEqual)
}

// NotEqual enforces a single spelling of the not-equal operator.
var NotEqual = lint.RuleDef{
	ID:          "CV01",
	Name:        "convention.not_equal",
	Group:       "convention",
	Description: "Use one consistent not-equal operator (<> by default).",
	Severity:    lint.SeverityInfo,
	AutoFixable: true,
	ConfigKeys:  []string{"operator"},

	Rationale: `PostgreSQL treats != and <> as the same operator, so mixing them only
tells the reader the file had more than one author. <> is the standard SQL
spelling.`,

	BadExample: `SELECT * FROM user_account WHERE status != 'deleted'`,

	GoodExample: `SELECT * FROM user_account WHERE status <> 'deleted'`,

	Fix: "Rewrite the operator in the configured spelling.",
}

func checkNotEqual(file *parser.File, opts map[string]any) []lint.Diagnostic {
	want := stringOpt(opts, "operator", "<>")
	other := "!="
	if want == "!=" {
		other = "<>"
	}

	var diags []lint.Diagnostic
	for _, tok := range file.Tokens {
		if !tok.IsPunct(other) {
			continue
		}
		diags = append(diags, editDiag(NotEqual, tok,
			fmt.Sprintf("not-equal should be written %q, not %q", want, other),
			fmt.Sprintf("Replace with %q", want),
			lint.TextEdit{Pos: tok.Pos, EndPos: tok.End(), NewText: want},
		))
	}
	return diags
}
