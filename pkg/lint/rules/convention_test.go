package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCV01_NotEqual(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		opts map[string]any
		want int
		fix  string
	}{
		{
			name: "bang-equals flagged by default",
			sql:  "SELECT * FROM t WHERE status != 'deleted'",
			want: 1,
			fix:  "<>",
		},
		{
			name: "angle form passes by default",
			sql:  "SELECT * FROM t WHERE status <> 'deleted'",
			want: 0,
		},
		{
			name: "preference flipped",
			sql:  "SELECT * FROM t WHERE status <> 'deleted'",
			opts: map[string]any{"operator": "!="},
			want: 1,
			fix:  "!=",
		},
		{
			name: "operator inside string untouched",
			sql:  "SELECT '!=' FROM t",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRuleOpts(t, tt.sql, "CV01", tt.opts)
			require.Len(t, diags, tt.want)
			if tt.want > 0 {
				require.True(t, diags[0].AutoFixable)
				assert.Equal(t, tt.fix, diags[0].Fixes[0].TextEdits[0].NewText)
			}
		})
	}
}
