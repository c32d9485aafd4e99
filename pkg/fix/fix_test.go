package fix_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgstyle/pgstyle/pkg/fix"
	"github.com/pgstyle/pgstyle/pkg/lint"
	_ "github.com/pgstyle/pgstyle/pkg/lint/rules" // register rules
)

func fixSource(t *testing.T, source string) *fix.Result {
	t.Helper()
	result, err := fix.Source("test.sql", source, "postgres", lint.NewConfig())
	require.NoError(t, err)
	return result
}

func TestSource_LeadingCommaRewrite(t *testing.T) {
	source := "SELECT\n    id,\n    name\nFROM t;"
	want := "SELECT\n    id\n  , name\nFROM t;"

	result := fixSource(t, source)
	if result.Fixed != want {
		t.Fatalf("unexpected fix result:\n%s", diff.LineDiff(want, result.Fixed))
	}
	assert.True(t, result.Changed)

	for _, d := range result.Remaining {
		assert.NotEqual(t, "LT01", d.RuleID)
	}
}

func TestSource_Idempotent(t *testing.T) {
	source := "select\n    ID,\n    userName,\nfrom t where a != true;"

	once := fixSource(t, source)
	require.True(t, once.Changed)

	twice := fixSource(t, once.Fixed)
	assert.False(t, twice.Changed)
	assert.Equal(t, once.Fixed, twice.Fixed)
}

func TestSource_NoFixableLeavesTextAlone(t *testing.T) {
	source := "SELECT ua.id AS user_id\nFROM user_account AS ua;"

	result := fixSource(t, source)
	assert.False(t, result.Changed)
	assert.Equal(t, source, result.Fixed)
	assert.Equal(t, 0, result.Passes)
}

func TestSource_RemainingKeepsUnfixable(t *testing.T) {
	// The wildcard has no auto-fix, so it must survive fixing.
	result := fixSource(t, "select * from t;")

	assert.True(t, result.Changed) // keywords were rewritten
	found := false
	for _, d := range result.Remaining {
		assert.False(t, d.AutoFixable)
		if d.RuleID == "AM01" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSource_MultipleRulesSettle(t *testing.T) {
	source := "select id, name from user_account where active != true;"

	result := fixSource(t, source)
	assert.Contains(t, result.Fixed, "SELECT")
	assert.Contains(t, result.Fixed, "FROM")
	assert.Contains(t, result.Fixed, "<>")
	assert.Contains(t, result.Fixed, "TRUE")
	for _, d := range result.Remaining {
		assert.False(t, d.AutoFixable)
	}
}

func TestSource_MalformedInput(t *testing.T) {
	_, err := fix.Source("test.sql", "SELECT 'oops", "postgres", lint.NewConfig())
	require.Error(t, err)
}

func TestWriteFile_PreservesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "query.sql")
	require.NoError(t, os.WriteFile(path, []byte("select 1;\n"), 0o600))

	require.NoError(t, fix.WriteFile(path, "SELECT 1;\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
