package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAL01_ExplicitAlias(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{
			name: "bare table alias",
			sql:  "SELECT ua.id FROM user_account ua",
			want: 1,
		},
		{
			name: "AS table alias passes",
			sql:  "SELECT ua.id FROM user_account AS ua",
			want: 0,
		},
		{
			name: "bare column alias",
			sql:  "SELECT ua.id user_id FROM user_account AS ua",
			want: 1,
		},
		{
			name: "AS column alias passes",
			sql:  "SELECT ua.id AS user_id FROM user_account AS ua",
			want: 0,
		},
		{
			name: "bare alias after function call",
			sql:  "SELECT count(*) total FROM user_account AS ua",
			want: 1,
		},
		{
			name: "bare alias after CASE",
			sql:  "SELECT CASE WHEN active THEN 1 ELSE 0 END status FROM user_account AS ua",
			want: 1,
		},
		{
			name: "qualified column is not an alias",
			sql:  "SELECT ua.id FROM user_account AS ua",
			want: 0,
		},
		{
			name: "single column needs no alias",
			sql:  "SELECT id FROM user_account AS ua",
			want: 0,
		},
		{
			name: "bare join alias",
			sql:  "SELECT ua.id FROM user_account AS ua JOIN order_item oi ON oi.user_id = ua.id",
			want: 1,
		},
		{
			name: "subquery alias without AS",
			sql:  "SELECT x.id FROM (SELECT id FROM user_account) x",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.sql, "AL01")
			require.Len(t, diags, tt.want)
			for _, d := range diags {
				assert.True(t, d.AutoFixable)
				assert.Equal(t, "AS ", d.Fixes[0].TextEdits[0].NewText)
			}
		})
	}
}

func TestAL01_FixInsertsBeforeAlias(t *testing.T) {
	diags := runRule(t, "SELECT id FROM user_account ua", "AL01")
	require.Len(t, diags, 1)

	edit := diags[0].Fixes[0].TextEdits[0]
	assert.Equal(t, edit.Pos, edit.EndPos) // pure insertion
	assert.Equal(t, 28, edit.Pos.Offset)   // right before "ua"
}
