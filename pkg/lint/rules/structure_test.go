package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestST01_AuditColumns(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		want     int
		contains string
	}{
		{
			name: "both audit columns present",
			sql: `CREATE TABLE user_account (
    id bigint PRIMARY KEY,
    _created_at timestamptz NOT NULL DEFAULT now(),
    _updated_at timestamptz NOT NULL DEFAULT now()
)`,
			want: 0,
		},
		{
			name:     "both missing",
			sql:      "CREATE TABLE user_account (id bigint)",
			want:     2,
			contains: "missing audit column",
		},
		{
			name: "spelled-out timezone type accepted",
			sql: `CREATE TABLE t (
    _created_at timestamp with time zone,
    _updated_at timestamp(3) with time zone
)`,
			want: 0,
		},
		{
			name: "naive timestamp rejected",
			sql: `CREATE TABLE t (
    _created_at timestamp,
    _updated_at timestamptz
)`,
			want:     1,
			contains: "should be timestamptz",
		},
		{
			name: "temp tables exempt",
			sql:  "CREATE TEMP TABLE tmp_scratch (id int)",
			want: 0,
		},
		{
			name: "create table as select exempt",
			sql:  "CREATE TABLE copy_t AS SELECT id FROM user_account",
			want: 0,
		},
		{
			name: "views exempt",
			sql:  "CREATE VIEW vw_users AS SELECT id FROM user_account",
			want: 0,
		},
		{
			name: "constraints do not hide missing columns",
			sql: `CREATE TABLE t (
    id bigint,
    PRIMARY KEY (id),
    _created_at timestamptz,
    _updated_at timestamptz
)`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.sql, "ST01")
			require.Len(t, diags, tt.want)
			if tt.contains != "" {
				assert.Contains(t, diags[0].Message, tt.contains)
			}
		})
	}
}

func TestST01_CustomColumnNames(t *testing.T) {
	opts := map[string]any{
		"created_column": "created_at",
		"updated_column": "updated_at",
	}
	sql := `CREATE TABLE t (
    created_at timestamptz,
    updated_at timestamptz
)`
	assert.Empty(t, runRuleOpts(t, sql, "ST01", opts))
}
