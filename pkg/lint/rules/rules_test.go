package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgstyle/pgstyle/pkg/lint"
	_ "github.com/pgstyle/pgstyle/pkg/lint/rules" // register rules
	"github.com/pgstyle/pgstyle/pkg/parser"
)

// runRule analyzes sql with the default config and returns only the
// diagnostics of one rule.
func runRule(t *testing.T, sql, ruleID string) []lint.Diagnostic {
	t.Helper()
	return runRuleOpts(t, sql, ruleID, nil)
}

// runRuleOpts is runRule with per-rule options applied.
func runRuleOpts(t *testing.T, sql, ruleID string, opts map[string]any) []lint.Diagnostic {
	t.Helper()
	file, err := parser.Parse("test.sql", sql, "postgres")
	require.NoError(t, err)

	config := lint.NewConfig()
	if opts != nil {
		config.SetRuleOptions(ruleID, opts)
	}
	analyzer := lint.NewAnalyzer(config, "postgres")

	var filtered []lint.Diagnostic
	for _, d := range analyzer.Analyze(file) {
		if d.RuleID == ruleID {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func analyzeAll(t *testing.T, sql string) []lint.Diagnostic {
	t.Helper()
	file, err := parser.Parse("test.sql", sql, "postgres")
	require.NoError(t, err)
	return lint.NewAnalyzer(lint.NewConfig(), "postgres").Analyze(file)
}

// A well-cased single-line query with an inline comma trips exactly the
// comma-position rule and nothing else.
func TestSingleLineQuery_OnlyCommaPosition(t *testing.T) {
	diags := analyzeAll(t, "SELECT id, name FROM user_account;")

	require.Len(t, diags, 1)
	assert.Equal(t, "LT01", diags[0].RuleID)
	assert.Equal(t, 1, diags[0].Pos.Line)
	assert.Equal(t, 10, diags[0].Pos.Column) // the comma before name
	assert.False(t, diags[0].AutoFixable)    // no line break to move it to
}

// Lowercase DDL trips keyword casing once per keyword plus the view
// naming prefix.
func TestLowercaseCreateView_KeywordsAndPrefix(t *testing.T) {
	sql := "create view active_users as select id from user_account;"

	assert.Len(t, runRule(t, sql, "CP01"), 5) // create view as select from
	naming := runRule(t, sql, "NM01")
	require.Len(t, naming, 1)
	assert.Contains(t, naming[0].Message, `"vw_"`)
}

func TestCTEWithoutTempPrefix(t *testing.T) {
	sql := `WITH recent_users AS (
    SELECT id
    FROM user_account
)
SELECT id
FROM recent_users;`

	diags := runRule(t, sql, "NM01")
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Pos.Line)
	assert.Equal(t, 6, diags[0].Pos.Column) // at the CTE name
}

func TestQualificationOnlyInMultiTableQueries(t *testing.T) {
	joined := `SELECT id, name
FROM user_account AS ua
JOIN order_item AS oi ON oi.user_id = ua.id;`

	diags := runRule(t, joined, "RF01")
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, `"id"`)
	assert.Contains(t, diags[1].Message, `"name"`)

	single := `SELECT id, name
FROM user_account AS ua;`
	assert.Empty(t, runRule(t, single, "RF01"))
}

// The check functions are wired to their definitions in init, so a rule
// registered without one would silently check nothing.
func TestCatalogRegistration(t *testing.T) {
	want := []string{"AL01", "AM01", "CP01", "CP02", "CP03", "CV01", "LT01", "LT02", "NM01", "RF01", "ST01"}

	var got []string
	for _, def := range lint.All() {
		got = append(got, def.ID)
		assert.NotNil(t, def.Check, "rule %s has no check function wired", def.ID)
	}
	assert.Equal(t, want, got)
}
