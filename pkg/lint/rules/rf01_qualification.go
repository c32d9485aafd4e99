package rules

import (
	"fmt"
	"strings"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

func init() {
	Qualification.Check = checkQualification
	lint.Register(Qualification)
}

// Qualification requires column references to be table-qualified when a
// statement reads from more than one table.
var Qualification = lint.RuleDef{
	ID:          "RF01",
	Name:        "references.qualification",
	Group:       "references",
	Description: "Column references in multi-table statements must be qualified.",
	Severity:    lint.SeverityWarning,

	Rationale: `In a join, a bare column name makes the reader guess which table it
comes from, and the guess can change when someone adds a column to the other
table. Qualifying every reference keeps the statement unambiguous for both
the reader and the planner.`,

	BadExample: `SELECT id, name
FROM user_account AS ua
JOIN order_item AS oi ON oi.user_id = ua.id`,

	GoodExample: `SELECT ua.id, ua.name
FROM user_account AS ua
JOIN order_item AS oi ON oi.user_id = ua.id`,

	Fix: "Prefix the column with its table name or alias.",
}

// nameIntroducers are keywords after which an identifier names an object
// or alias rather than referencing a column.
var nameIntroducers = map[string]struct{}{
	"as": {}, "from": {}, "join": {}, "into": {}, "update": {},
	"table": {}, "insert": {}, "over": {}, "exists": {},
}

func checkQualification(file *parser.File, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, stmt := range file.Statements {
		// Tables are counted per paren depth so a CTE body or subquery
		// reading one table is not treated as part of an outer join.
		tablesAt := map[int]int{}
		for _, ref := range stmt.Tables {
			tablesAt[ref.Depth]++
		}
		named := namedIndices(stmt)

		for i, tok := range stmt.Tokens {
			if tok.Kind != token.Identifier || named[i] {
				continue
			}
			if tablesAt[stmt.Depth(i)] < 2 {
				continue
			}
			if next := stmt.Next(i); next >= 0 {
				nt := stmt.Tokens[next]
				if nt.IsPunct(".") || nt.IsPunct("(") {
					continue // qualifier or function call
				}
			}
			if prev := stmt.Prev(i); prev >= 0 {
				pt := stmt.Tokens[prev]
				if pt.IsPunct(".") || pt.IsPunct("::") {
					continue // already qualified, or a type name
				}
				if pt.Kind == token.Keyword {
					if _, ok := nameIntroducers[strings.ToLower(pt.Text)]; ok {
						continue
					}
				}
			}
			diags = append(diags, lint.Diagnostic{
				RuleID:   Qualification.ID,
				Severity: Qualification.Severity,
				Message:  fmt.Sprintf("unqualified reference %q in a query with %d tables", tok.Text, tablesAt[stmt.Depth(i)]),
				Pos:      tok.Pos,
				EndPos:   tok.End(),
			})
		}
	}
	return diags
}

// namedIndices collects token indices that name tables, aliases, CTEs or
// column definitions; those are declarations, not references.
func namedIndices(stmt *parser.Statement) map[int]bool {
	named := map[int]bool{}
	for _, ref := range stmt.Tables {
		if ref.NameIndex >= 0 {
			named[ref.NameIndex] = true
		}
		if ref.AliasIndex >= 0 {
			named[ref.AliasIndex] = true
		}
	}
	for _, cte := range stmt.CTEs {
		named[cte.NameIndex] = true
	}
	if stmt.Create != nil {
		if stmt.Create.NameIndex >= 0 {
			named[stmt.Create.NameIndex] = true
		}
		for _, col := range stmt.Create.Columns {
			named[col.NameIndex] = true
		}
	}
	return named
}
