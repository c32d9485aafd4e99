package rules

import (
	"fmt"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

func init() {
	ExplicitAlias.Check = checkExplicitAlias
	lint.Register(ExplicitAlias)
}

// ExplicitAlias requires the AS keyword before column and table aliases.
var ExplicitAlias = lint.RuleDef{
	ID:          "AL01",
	Name:        "aliasing.explicit",
	Group:       "aliasing",
	Description: "Column and table aliases must use the AS keyword.",
	Severity:    lint.SeverityWarning,
	AutoFixable: true,

	Rationale: `A bare alias is one missing comma away from silently renaming a column:
"SELECT price cost" aliases price as cost, while the author may have meant
two columns. Writing AS makes the aliasing intent explicit and the typo a
visible error.`,

	BadExample: `SELECT ua.id user_id
FROM user_account ua`,

	GoodExample: `SELECT ua.id AS user_id
FROM user_account AS ua`,

	Fix: "Insert AS before the alias.",
}

func checkExplicitAlias(file *parser.File, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, stmt := range file.Statements {
		diags = append(diags, checkTableAliases(stmt)...)
		diags = append(diags, checkColumnAliases(stmt)...)
	}
	return diags
}

func checkTableAliases(stmt *parser.Statement) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, ref := range stmt.Tables {
		if ref.AliasIndex < 0 || ref.HasAS {
			continue
		}
		diags = append(diags, aliasDiag(stmt.Tokens[ref.AliasIndex], "table"))
	}
	return diags
}

func checkColumnAliases(stmt *parser.Statement) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, clause := range stmt.Lists {
		if clause.Keyword != "SELECT" {
			continue
		}
		for n, start := range clause.Items {
			boundary := clause.End
			if n < len(clause.Commas) {
				boundary = clause.Commas[n]
			}
			last := stmt.Prev(boundary)
			if last < 0 || last <= start {
				continue // single-token item cannot carry an alias
			}
			if tok := stmt.Tokens[last]; tok.Kind == token.Identifier && isBareAlias(stmt, last) {
				diags = append(diags, aliasDiag(tok, "column"))
			}
		}
	}
	return diags
}

// isBareAlias reports whether the identifier at index i is an alias with
// no AS in front of it. The decision is by the preceding token: AS means
// explicit, a dot means the identifier is part of a qualified name, a
// closing paren or another value token means a bare alias.
func isBareAlias(stmt *parser.Statement, i int) bool {
	prev := stmt.Prev(i)
	if prev < 0 {
		return false
	}
	t := stmt.Tokens[prev]
	switch t.Kind {
	case token.Punct:
		if t.Text == ")" {
			return true // expr(...) alias
		}
		return false // operators, dots, casts: identifier is an operand
	case token.Identifier, token.Literal:
		return true // value alias, the classic missing-comma shape
	case token.Keyword:
		if t.Is("AS") {
			return false
		}
		return t.Is("END") // CASE ... END alias
	}
	return false
}

func aliasDiag(alias token.Token, what string) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:      ExplicitAlias.ID,
		Severity:    ExplicitAlias.Severity,
		Message:     fmt.Sprintf("%s alias %q should use AS", what, alias.Text),
		Pos:         alias.Pos,
		EndPos:      alias.End(),
		AutoFixable: true,
		Fixes: []lint.Fix{{
			Description: "Insert AS before the alias",
			TextEdits: []lint.TextEdit{{
				Pos:     alias.Pos,
				EndPos:  alias.Pos,
				NewText: "AS ",
			}},
		}},
	}
}
