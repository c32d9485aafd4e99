package token

import "strings"

// keywords is the PostgreSQL keyword set used to classify word tokens.
// It covers reserved and structural non-reserved words plus the common type
// names, because the casing rules treat anything canonically written in
// uppercase SQL as a keyword. true/false/null are deliberately absent: they
// lex as word literals (see wordLiterals).
var keywords = map[string]struct{}{
	"add":               {},
	"all":               {},
	"alter":             {},
	"analyze":           {},
	"and":               {},
	"any":               {},
	"array":             {},
	"as":                {},
	"asc":               {},
	"asymmetric":        {},
	"begin":             {},
	"between":           {},
	"both":              {},
	"by":                {},
	"cascade":           {},
	"case":              {},
	"cast":              {},
	"check":             {},
	"collate":           {},
	"column":            {},
	"comment":           {},
	"commit":            {},
	"concurrently":      {},
	"conflict":          {},
	"constraint":        {},
	"create":            {},
	"cross":             {},
	"current":           {},
	"current_date":      {},
	"current_time":      {},
	"current_timestamp": {},
	"current_user":      {},
	"database":          {},
	"default":           {},
	"deferrable":        {},
	"delete":            {},
	"desc":              {},
	"distinct":          {},
	"do":                {},
	"drop":              {},
	"else":              {},
	"end":               {},
	"escape":            {},
	"except":            {},
	"execute":           {},
	"exists":            {},
	"extract":           {},
	"fetch":             {},
	"filter":            {},
	"first":             {},
	"following":         {},
	"for":               {},
	"foreign":           {},
	"from":              {},
	"full":              {},
	"function":          {},
	"grant":             {},
	"group":             {},
	"groups":            {},
	"having":            {},
	"if":                {},
	"ilike":             {},
	"immutable":         {},
	"in":                {},
	"index":             {},
	"inner":             {},
	"insert":            {},
	"intersect":         {},
	"interval":          {},
	"into":              {},
	"is":                {},
	"join":              {},
	"key":               {},
	"language":          {},
	"last":              {},
	"lateral":           {},
	"leading":           {},
	"left":              {},
	"like":              {},
	"limit":             {},
	"localtime":         {},
	"localtimestamp":    {},
	"materialized":      {},
	"natural":           {},
	"not":               {},
	"nothing":           {},
	"nulls":             {},
	"of":                {},
	"offset":            {},
	"on":                {},
	"only":              {},
	"or":                {},
	"order":             {},
	"outer":             {},
	"over":              {},
	"partition":         {},
	"placing":           {},
	"preceding":         {},
	"precision":         {},
	"primary":           {},
	"procedure":         {},
	"range":             {},
	"recursive":         {},
	"references":        {},
	"refresh":           {},
	"rename":            {},
	"replace":           {},
	"restrict":          {},
	"returning":         {},
	"returns":           {},
	"revoke":            {},
	"right":             {},
	"rollback":          {},
	"row":               {},
	"rows":              {},
	"schema":            {},
	"select":            {},
	"sequence":          {},
	"session_user":      {},
	"set":               {},
	"similar":           {},
	"some":              {},
	"stable":            {},
	"strict":            {},
	"symmetric":         {},
	"table":             {},
	"temp":              {},
	"temporary":         {},
	"then":              {},
	"time":              {},
	"timestamp":         {},
	"to":                {},
	"trailing":          {},
	"trigger":           {},
	"truncate":          {},
	"type":              {},
	"unbounded":         {},
	"union":             {},
	"unique":            {},
	"unlogged":          {},
	"update":            {},
	"user":              {},
	"using":             {},
	"vacuum":            {},
	"values":            {},
	"variadic":          {},
	"view":              {},
	"volatile":          {},
	"when":              {},
	"where":             {},
	"window":            {},
	"with":              {},
	"within":            {},
	"without":           {},
	"zone":              {},

	// Type names
	"bigint":      {},
	"bigserial":   {},
	"bit":         {},
	"boolean":     {},
	"bytea":       {},
	"char":        {},
	"character":   {},
	"cidr":        {},
	"date":        {},
	"decimal":     {},
	"double":      {},
	"float":       {},
	"inet":        {},
	"int":         {},
	"integer":     {},
	"json":        {},
	"jsonb":       {},
	"money":       {},
	"numeric":     {},
	"real":        {},
	"serial":      {},
	"smallint":    {},
	"smallserial": {},
	"text":        {},
	"timestamptz": {},
	"timetz":      {},
	"tsquery":     {},
	"tsvector":    {},
	"uuid":        {},
	"varchar":     {},
	"varying":     {},
	"xml":         {},
}

// wordLiterals are keyword-shaped words that lex as literals so the
// literal-casing rule can address them independently of keyword casing.
var wordLiterals = map[string]struct{}{
	"true":  {},
	"false": {},
	"null":  {},
}

// IsKeywordWord reports whether the word is a PostgreSQL keyword,
// compared case-insensitively.
func IsKeywordWord(word string) bool {
	_, ok := keywords[strings.ToLower(word)]
	return ok
}

// IsLiteralWord reports whether the word is one of the word literals
// true, false or null, compared case-insensitively.
func IsLiteralWord(word string) bool {
	_, ok := wordLiterals[strings.ToLower(word)]
	return ok
}

// LookupWord classifies a word token: Literal for true/false/null,
// Keyword for everything in the keyword set, Identifier otherwise.
func LookupWord(word string) Kind {
	lower := strings.ToLower(word)
	if _, ok := wordLiterals[lower]; ok {
		return Literal
	}
	if _, ok := keywords[lower]; ok {
		return Keyword
	}
	return Identifier
}
