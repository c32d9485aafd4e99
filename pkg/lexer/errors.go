package lexer

import (
	"fmt"

	"github.com/pgstyle/pgstyle/pkg/token"
)

// ErrorKind identifies the malformed construct that stopped the scanner.
type ErrorKind int

const (
	UnterminatedString ErrorKind = iota
	UnterminatedIdentifier
	UnterminatedDollarQuote
	UnterminatedComment
)

// String returns a human-readable description of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedIdentifier:
		return "unterminated quoted identifier"
	case UnterminatedDollarQuote:
		return "unterminated dollar-quoted block"
	case UnterminatedComment:
		return "unterminated block comment"
	default:
		return "malformed literal"
	}
}

// Error is a malformed-literal condition: a quoted construct still open at
// end of input. It is fatal for the file being tokenized but not for the run.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s starting here", e.Pos, e.Kind)
}
