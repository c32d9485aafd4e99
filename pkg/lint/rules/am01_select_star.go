package rules

import (
	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
)

func init() {
	SelectStar.Check = checkSelectStar
	lint.Register(SelectStar)
}

// SelectStar flags wildcard projections.
var SelectStar = lint.RuleDef{
	ID:          "AM01",
	Name:        "ambiguous.select_star",
	Group:       "ambiguous",
	Description: "SELECT * hides the column set; name the columns.",
	Severity:    lint.SeverityInfo,

	Rationale: `A wildcard projection changes meaning whenever the table does, which
silently breaks INSERT ... SELECT column counts and view definitions. It
also drags every column across the wire when the caller wanted three.`,

	BadExample: `SELECT * FROM user_account`,

	GoodExample: `SELECT id, name FROM user_account`,

	Fix: "List the columns the query actually needs.",
}

func checkSelectStar(file *parser.File, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, stmt := range file.Statements {
		selectCommas := map[int]bool{}
		for _, clause := range stmt.Lists {
			if clause.Keyword != "SELECT" {
				continue
			}
			for _, ci := range clause.Commas {
				selectCommas[ci] = true
			}
		}

		for i, tok := range stmt.Tokens {
			if !tok.IsPunct("*") {
				continue
			}
			prev := stmt.Prev(i)
			if prev < 0 {
				continue
			}
			pt := stmt.Tokens[prev]
			// count(*) and multiplication have "(" or an operand before the
			// star; projections have SELECT, a qualifying dot, or a
			// select-list comma.
			if pt.Is("SELECT") || pt.IsPunct(".") || selectCommas[prev] {
				diags = append(diags, lint.Diagnostic{
					RuleID:   SelectStar.ID,
					Severity: SelectStar.Severity,
					Message:  "wildcard projection; name the columns instead of *",
					Pos:      tok.Pos,
					EndPos:   tok.End(),
				})
			}
		}
	}
	return diags
}
