package rules

import (
	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
)

func init() {
	TrailingComma.Check = checkTrailingComma
	lint.Register(TrailingComma)
}

// TrailingComma flags a separator comma with no item after it.
var TrailingComma = lint.RuleDef{
	ID:          "LT02",
	Name:        "layout.trailing_comma",
	Group:       "layout",
	Description: "A list must not end with a dangling comma.",
	Severity:    lint.SeverityError,
	AutoFixable: true,

	Rationale: `A comma with nothing after it is a syntax error in PostgreSQL, usually
left behind when the last item of a list was deleted. Catching it in the
editor beats catching it at execution time.`,

	BadExample: `SELECT id, name, FROM user_account`,

	GoodExample: `SELECT id, name FROM user_account`,

	Fix: "Delete the dangling comma.",
}

func checkTrailingComma(file *parser.File, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, stmt := range file.Statements {
		for _, clause := range stmt.Lists {
			for _, ci := range clause.Commas {
				next := stmt.Next(ci)
				if next >= 0 && next < clause.End {
					continue
				}
				comma := stmt.Tokens[ci]
				diags = append(diags, editDiag(TrailingComma, comma,
					"dangling comma before "+clauseEndName(stmt, clause, next),
					"Delete the dangling comma",
					lint.TextEdit{Pos: comma.Pos, EndPos: comma.End(), NewText: ""},
				))
			}
		}
	}
	return diags
}

func clauseEndName(stmt *parser.Statement, clause *parser.ListClause, next int) string {
	if next < 0 || next >= len(stmt.Tokens) {
		return "end of statement"
	}
	t := stmt.Tokens[next]
	if t.IsPunct(";") {
		return "end of statement"
	}
	return t.Text
}
