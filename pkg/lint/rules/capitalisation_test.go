package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCP01_KeywordCase(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		opts map[string]any
		want int
	}{
		{
			name: "lowercase keywords",
			sql:  "select id from user_account",
			want: 2,
		},
		{
			name: "uppercase keywords pass",
			sql:  "SELECT id FROM user_account",
			want: 0,
		},
		{
			name: "mixed case keyword",
			sql:  "Select id FROM user_account",
			want: 1,
		},
		{
			name: "keyword inside string untouched",
			sql:  "SELECT 'select from' FROM user_account",
			want: 0,
		},
		{
			name: "keyword inside comment untouched",
			sql:  "SELECT id -- select from\nFROM user_account",
			want: 0,
		},
		{
			name: "lower style flags uppercase",
			sql:  "SELECT id FROM user_account",
			opts: map[string]any{"case": "lower"},
			want: 2,
		},
		{
			name: "none disables the check",
			sql:  "select ID from T",
			opts: map[string]any{"case": "none"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRuleOpts(t, tt.sql, "CP01", tt.opts)
			assert.Len(t, diags, tt.want)
			for _, d := range diags {
				assert.True(t, d.AutoFixable)
			}
		})
	}
}

func TestCP01_FixText(t *testing.T) {
	diags := runRule(t, "select id", "CP01")
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Fixes, 1)

	edit := diags[0].Fixes[0].TextEdits[0]
	assert.Equal(t, "SELECT", edit.NewText)
	assert.Equal(t, 0, edit.Pos.Offset)
	assert.Equal(t, 6, edit.EndPos.Offset)
}

func TestCP02_IdentifierCase(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		want     int
		fixable  bool
		contains string
	}{
		{
			name: "snake_case passes",
			sql:  "SELECT user_id FROM user_account",
			want: 0,
		},
		{
			name:    "uppercase word is fixable",
			sql:     "SELECT ID FROM user_account",
			want:    1,
			fixable: true,
		},
		{
			name:     "camelCase gets a suggestion, no fix",
			sql:      "SELECT userName FROM user_account",
			want:     1,
			contains: `"user_name"`,
		},
		{
			name:    "screaming snake is fixable",
			sql:     "SELECT USER_ID FROM user_account",
			want:    1,
			fixable: true,
		},
		{
			name: "quoted identifier exempt",
			sql:  `SELECT "WeirdName" FROM user_account`,
			want: 0,
		},
		{
			name: "leading underscore allowed",
			sql:  "SELECT _created_at FROM user_account",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.sql, "CP02")
			require.Len(t, diags, tt.want)
			if tt.want == 0 {
				return
			}
			assert.Equal(t, tt.fixable, diags[0].AutoFixable)
			if tt.contains != "" {
				assert.Contains(t, diags[0].Message, tt.contains)
			}
		})
	}
}

func TestCP03_LiteralCase(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		opts map[string]any
		want int
	}{
		{
			name: "lowercase word literals",
			sql:  "SELECT * FROM t WHERE a = true AND b IS null",
			want: 2,
		},
		{
			name: "uppercase passes",
			sql:  "SELECT * FROM t WHERE a = TRUE AND b IS NULL",
			want: 0,
		},
		{
			name: "lower style flags uppercase",
			sql:  "SELECT * FROM t WHERE a = FALSE",
			opts: map[string]any{"case": "lower"},
			want: 1,
		},
		{
			name: "string containing true untouched",
			sql:  "SELECT 'true' FROM t",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRuleOpts(t, tt.sql, "CP03", tt.opts)
			assert.Len(t, diags, tt.want)
		})
	}
}
