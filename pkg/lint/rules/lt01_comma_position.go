package rules

import (
	"strings"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

func init() {
	CommaPosition.Check = checkCommaPosition
	lint.Register(CommaPosition)
}

// CommaPosition enforces where separator commas sit in multi-line lists.
var CommaPosition = lint.RuleDef{
	ID:          "LT01",
	Name:        "layout.commas",
	Group:       "layout",
	Description: "Separator commas in multi-line lists must lead (or trail) consistently.",
	Severity:    lint.SeverityWarning,
	AutoFixable: true,
	ConfigKeys:  []string{"style"},

	Rationale: `Leading commas put every separator in the same column, so a missing or
doubled comma is visible at a glance and adding an item never touches the
previous line. Whichever style a team picks, mixing both in one list makes
diffs noisier than they need to be.`,

	BadExample: `SELECT
    id,
    name
FROM user_account`,

	GoodExample: `SELECT
    id
  , name
FROM user_account`,

	Fix: "Move the comma to the start of the following line (or the end of the preceding one).",
}

func checkCommaPosition(file *parser.File, opts map[string]any) []lint.Diagnostic {
	style := stringOpt(opts, "style", "leading")
	if style != "leading" && style != "trailing" {
		style = "leading"
	}

	var diags []lint.Diagnostic
	for _, stmt := range file.Statements {
		for _, clause := range stmt.Lists {
			diags = append(diags, checkClauseCommas(stmt, clause, style)...)
		}
	}
	return diags
}

func checkClauseCommas(stmt *parser.Statement, clause *parser.ListClause, style string) []lint.Diagnostic {
	if len(clause.Items) == 0 {
		return nil
	}
	firstItem := stmt.Tokens[clause.Items[0]]

	var diags []lint.Diagnostic
	for _, ci := range clause.Commas {
		comma := stmt.Tokens[ci]
		prev := stmt.Prev(ci)
		next := stmt.Next(ci)
		if prev < 0 || next < 0 || next >= clause.End {
			continue // dangling comma, LT02 territory
		}
		prevTok := stmt.Tokens[prev]
		nextTok := stmt.Tokens[next]

		leading := prevTok.End().Line < comma.Pos.Line
		multiline := nextTok.Pos.Line > comma.Pos.Line

		switch {
		case style == "leading" && !leading:
			d := lint.Diagnostic{
				RuleID:   CommaPosition.ID,
				Severity: CommaPosition.Severity,
				Message:  "comma should start the next line, before the item it separates",
				Pos:      comma.Pos,
				EndPos:   comma.End(),
			}
			// Only a list that already breaks lines can be rewritten
			// without inventing a layout; inline lists are reported bare.
			if multiline && !spanHasComment(stmt, ci, next) {
				indent := firstItem.Pos.Column - 3
				if indent < 0 {
					indent = 0
				}
				d.AutoFixable = true
				d.Fixes = []lint.Fix{{
					Description: "Move the comma to the start of the next line",
					TextEdits: []lint.TextEdit{{
						Pos:     comma.Pos,
						EndPos:  nextTok.Pos,
						NewText: "\n" + strings.Repeat(" ", indent) + ", ",
					}},
				}}
			}
			diags = append(diags, d)

		case style == "trailing" && leading:
			d := lint.Diagnostic{
				RuleID:   CommaPosition.ID,
				Severity: CommaPosition.Severity,
				Message:  "comma should end the previous line, after the item it separates",
				Pos:      comma.Pos,
				EndPos:   comma.End(),
			}
			if !spanHasComment(stmt, prev+1, next) {
				indent := firstItem.Pos.Column - 1
				if indent < 0 {
					indent = 0
				}
				d.AutoFixable = true
				d.Fixes = []lint.Fix{{
					Description: "Move the comma to the end of the previous line",
					TextEdits: []lint.TextEdit{{
						Pos:     prevTok.End(),
						EndPos:  nextTok.Pos,
						NewText: ",\n" + strings.Repeat(" ", indent),
					}},
				}}
			}
			diags = append(diags, d)
		}
	}
	return diags
}

// spanHasComment reports whether any token in [from, to) is a comment.
// Rewriting a span that holds a comment would drop it, so such spans are
// reported without a fix.
func spanHasComment(stmt *parser.Statement, from, to int) bool {
	for i := from; i < to && i < len(stmt.Tokens); i++ {
		if stmt.Tokens[i].Kind == token.Comment {
			return true
		}
	}
	return false
}
