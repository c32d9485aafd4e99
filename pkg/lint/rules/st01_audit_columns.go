package rules

import (
	"fmt"
	"strings"

	"github.com/pgstyle/pgstyle/pkg/lint"
	"github.com/pgstyle/pgstyle/pkg/parser"
)

func init() {
	AuditColumns.Check = checkAuditColumns
	lint.Register(AuditColumns)
}

// AuditColumns requires the audit timestamp pair on created tables.
var AuditColumns = lint.RuleDef{
	ID:          "ST01",
	Name:        "structure.audit_columns",
	Group:       "structure",
	Description: "Created tables must define timezone-aware audit timestamp columns.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"created_column", "updated_column"},

	Rationale: `Row-level creation and update timestamps answer most "what happened
here" questions without extra tooling, but only if every table has them and
they carry a time zone. A naive timestamp column records local wall-clock
time and breaks the first time two sessions disagree on their zone.`,

	BadExample: `CREATE TABLE user_account (
    id bigint PRIMARY KEY
)`,

	GoodExample: `CREATE TABLE user_account (
    id bigint PRIMARY KEY,
    _created_at timestamptz NOT NULL DEFAULT now(),
    _updated_at timestamptz NOT NULL DEFAULT now()
)`,

	Fix: "Add the audit columns with type timestamptz.",
}

func checkAuditColumns(file *parser.File, opts map[string]any) []lint.Diagnostic {
	created := stringOpt(opts, "created_column", "_created_at")
	updated := stringOpt(opts, "updated_column", "_updated_at")

	var diags []lint.Diagnostic
	for _, stmt := range file.Statements {
		c := stmt.Create
		if c == nil || c.Kind != parser.CreateTable || c.Temp || !c.HasColumnList {
			continue
		}
		diags = append(diags, checkAuditColumn(stmt, created)...)
		diags = append(diags, checkAuditColumn(stmt, updated)...)
	}
	return diags
}

func checkAuditColumn(stmt *parser.Statement, want string) []lint.Diagnostic {
	c := stmt.Create
	for _, col := range c.Columns {
		if stmt.Tokens[col.NameIndex].Name() != want {
			continue
		}
		if timezoneAware(col.TypeText) {
			return nil
		}
		name := stmt.Tokens[col.NameIndex]
		return []lint.Diagnostic{{
			RuleID:   AuditColumns.ID,
			Severity: AuditColumns.Severity,
			Message:  fmt.Sprintf("audit column %q should be timestamptz, not %q", want, col.TypeText),
			Pos:      name.Pos,
			EndPos:   name.End(),
		}}
	}

	name := stmt.Tokens[c.NameIndex]
	return []lint.Diagnostic{{
		RuleID:   AuditColumns.ID,
		Severity: AuditColumns.Severity,
		Message:  fmt.Sprintf("table %q is missing audit column %q (timestamptz)", name.Name(), want),
		Pos:      name.Pos,
		EndPos:   name.End(),
	}}
}

// timezoneAware accepts timestamptz and the spelled-out
// "timestamp with time zone" form, with or without precision.
func timezoneAware(typeText string) bool {
	if strings.HasPrefix(typeText, "timestamptz") {
		return true
	}
	return strings.HasPrefix(typeText, "timestamp") &&
		strings.Contains(typeText, "with time zone")
}
