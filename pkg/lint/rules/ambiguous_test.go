package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAM01_SelectStar(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{
			name: "bare star",
			sql:  "SELECT * FROM user_account",
			want: 1,
		},
		{
			name: "qualified star",
			sql:  "SELECT ua.* FROM user_account AS ua",
			want: 1,
		},
		{
			name: "star after comma",
			sql:  "SELECT id, * FROM user_account",
			want: 1,
		},
		{
			name: "count star is fine",
			sql:  "SELECT count(*) FROM user_account",
			want: 0,
		},
		{
			name: "multiplication is fine",
			sql:  "SELECT price * quantity AS total FROM order_item",
			want: 0,
		},
		{
			name: "named columns pass",
			sql:  "SELECT id, name FROM user_account",
			want: 0,
		},
		{
			name: "star in subquery",
			sql:  "SELECT id FROM user_account WHERE id IN (SELECT * FROM banned)",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.sql, "AM01")
			assert.Len(t, diags, tt.want)
			for _, d := range diags {
				assert.False(t, d.AutoFixable)
			}
		})
	}
}
