package rules

import (
	"fmt"
	"strings"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

func init() {
	NamingPrefix.Check = checkNamingPrefix
	lint.Register(NamingPrefix)
}

// NamingPrefix enforces object-kind prefixes on created objects and CTEs.
var NamingPrefix = lint.RuleDef{
	ID:          "NM01",
	Name:        "naming.prefixes",
	Group:       "naming",
	Description: "Views, functions, temporary tables and CTEs must carry their kind prefix.",
	Severity:    lint.SeverityWarning,
	ConfigKeys: []string{
		"view_prefix", "materialized_view_prefix", "function_prefix", "temp_prefix",
	},

	Rationale: `A reference like vw_active_users tells the reader it is a view without
a catalog lookup, which matters when deciding whether it is cheap to query
or safe to write to. CTEs share the temporary prefix because they behave
like statement-scoped temporary relations.`,

	BadExample: `CREATE VIEW active_users AS SELECT * FROM user_account WHERE active`,

	GoodExample: `CREATE VIEW vw_active_users AS SELECT * FROM user_account WHERE active`,

	Fix: "Rename the object to start with its kind prefix.",
}

func checkNamingPrefix(file *parser.File, opts map[string]any) []lint.Diagnostic {
	prefixes := map[string]string{
		"view":              stringOpt(opts, "view_prefix", "vw_"),
		"materialized view": stringOpt(opts, "materialized_view_prefix", "mvw_"),
		"function":          stringOpt(opts, "function_prefix", "f_"),
		"temporary table":   stringOpt(opts, "temp_prefix", "tmp_"),
		"CTE":               stringOpt(opts, "temp_prefix", "tmp_"),
	}

	var diags []lint.Diagnostic
	for _, stmt := range file.Statements {
		if c := stmt.Create; c != nil && c.NameIndex >= 0 {
			what := ""
			switch {
			case c.Kind == parser.CreateView:
				what = "view"
			case c.Kind == parser.CreateMaterializedView:
				what = "materialized view"
			case c.Kind == parser.CreateFunction:
				what = "function"
			case c.Kind == parser.CreateTable && c.Temp:
				what = "temporary table"
			}
			if what != "" {
				diags = appendPrefixDiag(diags, stmt.Tokens[c.NameIndex], what, prefixes[what])
			}
		}
		for _, cte := range stmt.CTEs {
			diags = appendPrefixDiag(diags, stmt.Tokens[cte.NameIndex], "CTE", prefixes["CTE"])
		}
	}
	return diags
}

func appendPrefixDiag(diags []lint.Diagnostic, name token.Token, what, prefix string) []lint.Diagnostic {
	if prefix == "" || strings.HasPrefix(name.Name(), prefix) {
		return diags
	}
	return append(diags, lint.Diagnostic{
		RuleID:   NamingPrefix.ID,
		Severity: NamingPrefix.Severity,
		Message:  fmt.Sprintf("%s name %q should start with %q", what, name.Name(), prefix),
		Pos:      name.Pos,
		EndPos:   name.End(),
	})
}
