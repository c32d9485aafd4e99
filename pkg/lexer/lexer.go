// Package lexer tokenizes PostgreSQL source text losslessly.
//
// Unlike a parser-feeding lexer, nothing is skipped: whitespace and comments
// are ordinary tokens, and every token's Text is the exact source slice, so
// concatenating a file's tokens reproduces the file byte for byte. Keywords
// inside string literals, comments and dollar-quoted blocks are never
// misclassified because those constructs are consumed as single tokens.
package lexer

import (
	"strings"

	"github.com/pgstyle/pgstyle/pkg/token"
)

// operators holds multi-byte operators, longest first, so that matching
// scans greedily ("->>" before "->", "::" before ":").
var operators = []string{
	"->>", "#>>", "!~*",
	"::", ":=", "<=", ">=", "<>", "!=", "=>", "||", "->", "#>", "<<", ">>", "!~", "~*",
}

// Lexer tokenizes SQL input.
type Lexer struct {
	input string
	pos   int  // offset of the char under examination
	ch    byte // current char under examination (0 = EOF)
	line  int  // line of the current char (1-based)
	col   int  // column of the current char (1-based)

	dollarQuotes bool // postgres dollar-quoted blocks enabled

	err *Error // first malformed-literal condition, if any
}

// New creates a Lexer for PostgreSQL input.
func New(input string) *Lexer {
	l := &Lexer{
		input:        input,
		line:         1,
		col:          1,
		dollarQuotes: true,
	}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// NewWithDialect creates a Lexer for the named dialect. The "ansi" dialect
// disables dollar-quoted blocks; anything else behaves like "postgres".
func NewWithDialect(input, dialect string) *Lexer {
	l := New(input)
	if dialect == "ansi" {
		l.dollarQuotes = false
	}
	return l
}

// Err returns the first malformed-literal condition hit during scanning,
// or nil if the input tokenized cleanly so far.
func (l *Lexer) Err() *Error {
	return l.err
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
	if l.pos < len(l.input) {
		l.ch = l.input[l.pos]
	} else {
		l.ch = 0
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// currentPos returns the position of the current char.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// finish builds a token of the given kind covering start to the current
// position. Text is sliced from the input, never rebuilt.
func (l *Lexer) finish(kind token.Kind, start token.Position) token.Token {
	return token.Token{
		Kind: kind,
		Text: l.input[start.Offset:l.pos],
		Pos:  start,
	}
}

func (l *Lexer) setErr(kind ErrorKind, pos token.Position) {
	if l.err == nil {
		l.err = &Error{Kind: kind, Pos: pos}
	}
}

// NextToken returns the next token. After the input is exhausted it returns
// a token of kind EOF with empty text.
func (l *Lexer) NextToken() token.Token {
	start := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Pos: start}

	case isSpace(l.ch):
		for isSpace(l.ch) {
			l.readChar()
		}
		return l.finish(token.Whitespace, start)

	case l.ch == '-' && l.peekChar() == '-':
		// Line comment; the trailing newline stays in the next
		// whitespace token.
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		return l.finish(token.Comment, start)

	case l.ch == '/' && l.peekChar() == '*':
		return l.scanBlockComment(start)

	case l.ch == '\'':
		return l.scanString(start, false)

	case (l.ch == 'e' || l.ch == 'E') && l.peekChar() == '\'':
		l.readChar() // prefix
		return l.scanString(start, true)

	case (l.ch == 'b' || l.ch == 'B' || l.ch == 'x' || l.ch == 'X') && l.peekChar() == '\'':
		l.readChar() // prefix
		return l.scanString(start, false)

	case l.ch == '"':
		return l.scanQuotedIdentifier(start)

	case l.ch == '$':
		return l.scanDollar(start)

	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.scanNumber(start)

	case isWordStart(l.ch):
		for isWordPart(l.ch) {
			l.readChar()
		}
		word := l.input[start.Offset:l.pos]
		return l.finish(token.LookupWord(word), start)

	default:
		remaining := l.input[l.pos:]
		for _, op := range operators {
			if strings.HasPrefix(remaining, op) {
				for range op {
					l.readChar()
				}
				return l.finish(token.Punct, start)
			}
		}
		l.readChar()
		return l.finish(token.Punct, start)
	}
}

// scanBlockComment consumes a /* ... */ comment. PostgreSQL block comments
// nest.
func (l *Lexer) scanBlockComment(start token.Position) token.Token {
	l.readChar() // '/'
	l.readChar() // '*'

	depth := 1
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			depth--
			if depth == 0 {
				return l.finish(token.Comment, start)
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			depth++
			continue
		}
		l.readChar()
	}

	l.setErr(UnterminatedComment, start)
	return l.finish(token.Comment, start)
}

// scanString consumes a single-quoted string literal. Doubled quotes escape
// ('it''s'); when backslashEscapes is set (E'...' strings), a backslash
// escapes the following character as well.
func (l *Lexer) scanString(start token.Position, backslashEscapes bool) token.Token {
	l.readChar() // opening quote

	for l.ch != 0 {
		if backslashEscapes && l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			return l.finish(token.Literal, start)
		}
		l.readChar()
	}

	l.setErr(UnterminatedString, start)
	return l.finish(token.Literal, start)
}

// scanQuotedIdentifier consumes a double-quoted identifier with ""
// escaping.
func (l *Lexer) scanQuotedIdentifier(start token.Position) token.Token {
	l.readChar() // opening quote

	for l.ch != 0 {
		if l.ch == '"' {
			if l.peekChar() == '"' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			return l.finish(token.Identifier, start)
		}
		l.readChar()
	}

	l.setErr(UnterminatedIdentifier, start)
	return l.finish(token.Identifier, start)
}

// scanDollar handles the three meanings of '$': a positional parameter
// ($1), a dollar-quoted block ($$...$$ or $tag$...$tag$), or a bare
// operator character.
func (l *Lexer) scanDollar(start token.Position) token.Token {
	if isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.finish(token.Literal, start)
	}

	if l.dollarQuotes {
		if tag, ok := l.dollarTag(); ok {
			return l.scanDollarQuoted(start, tag)
		}
	}

	l.readChar()
	return l.finish(token.Punct, start)
}

// dollarTag looks ahead for a complete opening delimiter ($$ or $tag$)
// without consuming input.
func (l *Lexer) dollarTag() (string, bool) {
	i := l.pos + 1
	if i < len(l.input) && l.input[i] == '$' {
		return "$$", true
	}
	if i >= len(l.input) || !isWordStart(l.input[i]) {
		return "", false
	}
	for i < len(l.input) && isWordPart(l.input[i]) {
		i++
	}
	if i < len(l.input) && l.input[i] == '$' {
		return l.input[l.pos : i+1], true
	}
	return "", false
}

// scanDollarQuoted consumes a dollar-quoted block. The body is opaque: no
// quoting rules apply inside, only the exact closing delimiter ends it.
func (l *Lexer) scanDollarQuoted(start token.Position, tag string) token.Token {
	for range tag {
		l.readChar()
	}

	for l.ch != 0 {
		if l.ch == '$' && strings.HasPrefix(l.input[l.pos:], tag) {
			for range tag {
				l.readChar()
			}
			return l.finish(token.Literal, start)
		}
		l.readChar()
	}

	l.setErr(UnterminatedDollarQuote, start)
	return l.finish(token.Literal, start)
}

// scanNumber consumes a numeric literal (integer, decimal, or scientific).
func (l *Lexer) scanNumber(start token.Position) token.Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return l.finish(token.Literal, start)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isWordPart(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}

// Tokenize returns all tokens from the input in source order, excluding the
// EOF sentinel. On a malformed literal the tokens scanned so far are
// returned together with the positioned error.
func Tokenize(input string) ([]token.Token, error) {
	return TokenizeDialect(input, "postgres")
}

// TokenizeDialect tokenizes input under the named dialect.
func TokenizeDialect(input, dialect string) ([]token.Token, error) {
	l := NewWithDialect(input, dialect)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	if l.err != nil {
		return tokens, l.err
	}
	return tokens, nil
}
