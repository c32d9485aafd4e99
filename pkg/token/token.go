// Package token defines the lexical token model for PostgreSQL source text.
//
// Tokens are lossless: Text holds the exact source slice, quotes and comment
// markers included, so concatenating a file's tokens reconstructs the file
// byte for byte. That property is what lets the fixer rewrite minimal spans
// without touching unrelated text.
package token

import (
	"fmt"
	"strings"
)

// Kind classifies a lexical token. The set is closed: every byte of a source
// file belongs to exactly one token of one of these kinds.
type Kind int32

const (
	EOF Kind = iota

	Keyword    // SELECT, FROM, CREATE, ...
	Identifier // user_account, "Mixed Case"
	Literal    // 'text', 42, $$body$$, true, false, null, $1
	Punct      // , ( ) :: <= operators and separators
	Comment    // -- line and /* block */ comments
	Whitespace // spaces, tabs, newlines
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Keyword:    "KEYWORD",
	Identifier: "IDENTIFIER",
	Literal:    "LITERAL",
	Punct:      "PUNCTUATION",
	Comment:    "COMMENT",
	Whitespace: "WHITESPACE",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// Token represents a lexical token with position information.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// End returns the position immediately after the token.
func (t Token) End() Position {
	end := t.Pos
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
	}
	end.Offset += len(t.Text)
	return end
}

// Span returns the source range the token covers.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End()}
}

// Is reports whether the token is the given keyword, compared
// case-insensitively.
func (t Token) Is(keyword string) bool {
	return t.Kind == Keyword && strings.EqualFold(t.Text, keyword)
}

// IsPunct reports whether the token is the given punctuation text.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// IsQuoted reports whether an identifier token was written in double quotes.
// Quoted identifiers preserve their exact spelling and are exempt from
// casing checks.
func (t Token) IsQuoted() bool {
	return t.Kind == Identifier && len(t.Text) > 0 && t.Text[0] == '"'
}

// Name returns identifier text with surrounding double quotes stripped and
// doubled inner quotes collapsed. For unquoted identifiers and all other
// kinds it returns Text unchanged.
func (t Token) Name() string {
	if !t.IsQuoted() || len(t.Text) < 2 {
		return t.Text
	}
	inner := t.Text[1 : len(t.Text)-1]
	return strings.ReplaceAll(inner, `""`, `"`)
}

// IsWordLiteral reports whether the token is one of the word literals
// true, false or null.
func (t Token) IsWordLiteral() bool {
	if t.Kind != Literal {
		return false
	}
	switch strings.ToLower(t.Text) {
	case "true", "false", "null":
		return true
	}
	return false
}
