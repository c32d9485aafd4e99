package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

func parseFile(t *testing.T, sql string) *parser.File {
	t.Helper()
	file, err := parser.Parse("test.sql", sql, "postgres")
	require.NoError(t, err)
	return file
}

func diagAt(id string, line, col int) Diagnostic {
	return Diagnostic{
		RuleID:   id,
		Severity: SeverityWarning,
		Message:  "finding",
		Pos:      token.Position{Line: line, Column: col},
	}
}

func TestAnalyzerPanicIsolation(t *testing.T) {
	Clear()
	defer Clear()

	Register(RuleDef{
		ID:   "TT01",
		Name: "test.panics",
		Check: func(_ *parser.File, _ map[string]any) []Diagnostic {
			panic("boom")
		},
	})
	Register(RuleDef{
		ID:   "TT02",
		Name: "test.fine",
		Check: func(_ *parser.File, _ map[string]any) []Diagnostic {
			return []Diagnostic{diagAt("TT02", 1, 1)}
		},
	})

	diags := NewAnalyzer(nil, "postgres").Analyze(parseFile(t, "SELECT 1;"))
	require.Len(t, diags, 2, "a panicking rule must not block the others")

	byID := map[string]Diagnostic{}
	for _, d := range diags {
		byID[d.RuleID] = d
	}
	assert.Equal(t, SeverityError, byID["TT01"].Severity)
	assert.Contains(t, byID["TT01"].Message, "internal error in rule TT01")
	assert.Contains(t, byID["TT01"].Message, "boom")
	assert.Equal(t, "finding", byID["TT02"].Message)
}

func TestAnalyzerDisabledAndSeverity(t *testing.T) {
	Clear()
	defer Clear()

	for _, id := range []string{"TT01", "TT02"} {
		Register(RuleDef{
			ID:       id,
			Severity: SeverityWarning,
			Check: func(_ *parser.File, _ map[string]any) []Diagnostic {
				return []Diagnostic{{RuleID: id, Severity: SeverityWarning}}
			},
		})
	}

	cfg := NewConfig().Disable("TT01").SetSeverity("TT02", SeverityHint)
	diags := NewAnalyzer(cfg, "postgres").Analyze(parseFile(t, "SELECT 1;"))

	require.Len(t, diags, 1)
	assert.Equal(t, "TT02", diags[0].RuleID)
	assert.Equal(t, SeverityHint, diags[0].Severity, "severity override applies to rule output")
}

func TestAnalyzerPanicIgnoresSeverityOverride(t *testing.T) {
	Clear()
	defer Clear()

	Register(RuleDef{
		ID:       "TT01",
		Name:     "test.panics",
		Severity: SeverityWarning,
		Check: func(_ *parser.File, _ map[string]any) []Diagnostic {
			panic("boom")
		},
	})

	cfg := NewConfig().SetSeverity("TT01", SeverityHint)
	diags := NewAnalyzer(cfg, "postgres").Analyze(parseFile(t, "SELECT 1;"))

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity,
		"a demoted rule still reports its own crash at error")
	assert.Contains(t, diags[0].Message, "internal error in rule TT01")
}

func TestAnalyzerDialectFilter(t *testing.T) {
	Clear()
	defer Clear()

	Register(RuleDef{
		ID:       "TT01",
		Dialects: []string{"ansi"},
		Check: func(_ *parser.File, _ map[string]any) []Diagnostic {
			return []Diagnostic{{RuleID: "TT01"}}
		},
	})

	assert.Empty(t, NewAnalyzer(nil, "postgres").Analyze(parseFile(t, "SELECT 1;")))
	assert.Len(t, NewAnalyzer(nil, "ansi").Analyze(parseFile(t, "SELECT 1;")), 1)
}

func TestAnalyzerRuleOptionsReachCheck(t *testing.T) {
	Clear()
	defer Clear()

	var got map[string]any
	Register(RuleDef{
		ID:         "TT01",
		ConfigKeys: []string{"case"},
		Check: func(_ *parser.File, opts map[string]any) []Diagnostic {
			got = opts
			return nil
		},
	})

	cfg := NewConfig().SetRuleOptions("TT01", map[string]any{"case": "lower"})
	NewAnalyzer(cfg, "postgres").Analyze(parseFile(t, "SELECT 1;"))
	assert.Equal(t, map[string]any{"case": "lower"}, got)
}

func TestSortOrder(t *testing.T) {
	diags := []Diagnostic{
		diagAt("LT01", 3, 1),
		diagAt("CP01", 1, 10),
		diagAt("NM01", 1, 10),
		diagAt("AM01", 1, 2),
	}
	Sort(diags)

	var order []string
	for _, d := range diags {
		order = append(order, d.RuleID)
	}
	assert.Equal(t, []string{"AM01", "CP01", "NM01", "LT01"}, order,
		"line, then column, then rule ID")
}
