package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgstyle/pgstyle/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

// nonTrivia filters out whitespace tokens for compact assertions.
func nonTrivia(tokens []token.Token) []token.Token {
	var out []token.Token
	for _, t := range tokens {
		if t.Kind != token.Whitespace {
			out = append(out, t)
		}
	}
	return out
}

func TestTokenizeBasicSelect(t *testing.T) {
	tokens, err := Tokenize("SELECT id, name FROM user_account;")
	require.NoError(t, err)

	got := nonTrivia(tokens)
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Keyword, "SELECT"},
		{token.Identifier, "id"},
		{token.Punct, ","},
		{token.Identifier, "name"},
		{token.Keyword, "FROM"},
		{token.Identifier, "user_account"},
		{token.Punct, ";"},
	}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, got[i].Kind, "token %d", i)
		assert.Equal(t, w.text, got[i].Text, "token %d", i)
	}
}

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"SELECT id, name FROM user_account;",
		"select 'it''s', E'tab\\t', B'0101', X'FF' from t",
		"-- comment\nSELECT 1; /* nested /* comment */ here */",
		"CREATE FUNCTION f_x() RETURNS int AS $$\nSELECT 1;\n$$ LANGUAGE sql;",
		"SELECT $tag$weird 'stuff' $$ inside$tag$, $1, $2;",
		`SELECT "Quoted ""Name""", x::numeric(10,2), a->>'b' FROM t`,
		"SELECT 1.5e-3, .25, 42 FROM t WHERE a <> b AND c != d;",
		"",
		"   \n\t  ",
	}

	for _, input := range inputs {
		t.Run(strings.ReplaceAll(input, "\n", "\\n"), func(t *testing.T) {
			tokens, err := Tokenize(input)
			require.NoError(t, err)

			var sb strings.Builder
			for _, tok := range tokens {
				sb.WriteString(tok.Text)
			}
			assert.Equal(t, input, sb.String(), "token concatenation must reproduce the source")
		})
	}
}

func TestTokenizeKeywordsInsideLiterals(t *testing.T) {
	tokens, err := Tokenize("SELECT 'select from where' -- from\n FROM t")
	require.NoError(t, err)

	var keywords []string
	for _, tok := range tokens {
		if tok.Kind == token.Keyword {
			keywords = append(keywords, tok.Text)
		}
	}
	assert.Equal(t, []string{"SELECT", "FROM"}, keywords)
}

func TestTokenizeWordLiterals(t *testing.T) {
	tokens, err := Tokenize("SELECT TRUE, false, Null FROM t")
	require.NoError(t, err)

	var literals []string
	for _, tok := range tokens {
		if tok.Kind == token.Literal {
			literals = append(literals, tok.Text)
		}
	}
	assert.Equal(t, []string{"TRUE", "false", "Null"}, literals)
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := Tokenize("a::int <= b <> c ->> 'k' || d")
	require.NoError(t, err)

	var ops []string
	for _, tok := range tokens {
		if tok.Kind == token.Punct {
			ops = append(ops, tok.Text)
		}
	}
	assert.Equal(t, []string{"::", "<=", "<>", "->>", "||"}, ops)
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("SELECT\n  id\nFROM t")
	require.NoError(t, err)

	got := nonTrivia(tokens)
	require.Len(t, got, 4)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, got[0].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 9}, got[1].Pos)
	assert.Equal(t, token.Position{Line: 3, Column: 1, Offset: 12}, got[2].Pos)
	assert.Equal(t, token.Position{Line: 3, Column: 6, Offset: 17}, got[3].Pos)
}

func TestTokenizeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"unterminated string", "SELECT 'oops", UnterminatedString},
		{"unterminated escaped string", "SELECT 'it''s all one", UnterminatedString},
		{"unterminated identifier", `SELECT "oops`, UnterminatedIdentifier},
		{"unterminated dollar quote", "SELECT $$body", UnterminatedDollarQuote},
		{"unterminated tagged dollar quote", "SELECT $fn$body$wrong$", UnterminatedDollarQuote},
		{"unterminated block comment", "SELECT 1 /* still open", UnterminatedComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.Error(t, err)

			var lexErr *Error
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.kind, lexErr.Kind)
			assert.True(t, lexErr.Pos.IsValid())

			// Losslessness holds even on error.
			var sb strings.Builder
			for _, tok := range tokens {
				sb.WriteString(tok.Text)
			}
			assert.Equal(t, tt.input, sb.String())
		})
	}
}

func TestTokenizeDialectANSI(t *testing.T) {
	// Under ansi, $$ is not a quoting form; the body words lex normally.
	tokens, err := TokenizeDialect("SELECT $$select$$", "ansi")
	require.NoError(t, err)

	var kw []string
	for _, tok := range tokens {
		if tok.Kind == token.Keyword {
			kw = append(kw, tok.Text)
		}
	}
	assert.Equal(t, []string{"SELECT", "select"}, kw)

	// Positional parameters still work in both dialects.
	tokens, err = TokenizeDialect("SELECT $1", "ansi")
	require.NoError(t, err)
	assert.Contains(t, kinds(tokens), token.Literal)
}

func TestTokenizeRestartable(t *testing.T) {
	const input = "SELECT 1;"
	first, err := Tokenize(input)
	require.NoError(t, err)
	second, err := Tokenize(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
