// Package parser derives shallow statement structure from a token stream.
//
// There is no expression AST. Statements are split at top-level semicolons,
// and each statement carries just enough structure for style rules: list
// clause spans with their separator commas, CTE definitions, CREATE targets
// with column definitions, and FROM/JOIN table references with aliases.
package parser

import (
	"strings"

	"github.com/pgstyle/pgstyle/pkg/lexer"
	"github.com/pgstyle/pgstyle/pkg/token"
)

// File is one tokenized source file with per-statement structure.
type File struct {
	Path       string
	Source     string
	Tokens     []token.Token
	Statements []*Statement
}

// Statement is a span of file tokens ending at a top-level semicolon
// (or end of input), with derived structure.
type Statement struct {
	Tokens []token.Token // subslice of the file's tokens, semicolon included
	Lists  []*ListClause
	CTEs   []CTE
	Create *Create
	Tables []TableRef

	depths []int // paren depth per token
}

// ListClause is a comma-separated item list introduced by SELECT, GROUP BY
// or ORDER BY. Commas holds only separators at the clause's own paren depth;
// commas inside nested parens belong to inner clauses or function calls.
type ListClause struct {
	Keyword      string // "SELECT", "GROUP BY" or "ORDER BY"
	KeywordIndex int
	Depth        int
	Start        int   // first token index of the item region
	End          int   // token index of the clause terminator (exclusive)
	Commas       []int // separator comma indices at clause depth
	Items        []int // first non-trivia token index of each item
}

// CTE is one common table expression definition in a WITH clause.
type CTE struct {
	NameIndex int
	Recursive bool
}

// CreateKind classifies the object a CREATE statement defines.
type CreateKind int

const (
	CreateTable CreateKind = iota
	CreateView
	CreateMaterializedView
	CreateFunction
	CreateIndex
	CreateOther
)

// Create describes the target of a CREATE statement.
type Create struct {
	Kind          CreateKind
	Temp          bool
	NameIndex     int
	HasColumnList bool
	Columns       []ColumnDef // populated for CREATE TABLE with a column list
}

// ColumnDef is one column definition inside a CREATE TABLE column list.
type ColumnDef struct {
	NameIndex int
	TypeText  string // lowercased type tokens joined with single spaces
}

// TableRef is one table source in a FROM clause or JOIN.
type TableRef struct {
	NameIndex  int // last identifier of the dotted name; -1 for subqueries
	AliasIndex int // -1 when the source has no alias
	HasAS      bool
	Depth      int // paren depth of the reference
}

// Parse tokenizes source text and derives statement structure. A
// malformed-literal error from the lexer is returned as-is (*lexer.Error);
// no structure is derived in that case.
func Parse(path, source, dialect string) (*File, error) {
	tokens, err := lexer.TokenizeDialect(source, dialect)
	if err != nil {
		return nil, err
	}

	f := &File{Path: path, Source: source, Tokens: tokens}
	f.split()
	for _, stmt := range f.Statements {
		stmt.analyze()
	}
	return f, nil
}

// IsTrivia reports whether a token is whitespace or a comment.
func IsTrivia(t token.Token) bool {
	return t.Kind == token.Whitespace || t.Kind == token.Comment
}

// split cuts the token stream at top-level semicolons. Spans containing
// only trivia are dropped.
func (f *File) split() {
	depth := 0
	start := 0

	flush := func(end int) {
		span := f.Tokens[start:end]
		start = end
		for _, t := range span {
			if !IsTrivia(t) {
				f.Statements = append(f.Statements, &Statement{Tokens: span})
				return
			}
		}
	}

	for i, t := range f.Tokens {
		switch {
		case t.IsPunct("("):
			depth++
		case t.IsPunct(")"):
			if depth > 0 {
				depth--
			}
		case t.IsPunct(";") && depth == 0:
			flush(i + 1)
		}
	}
	flush(len(f.Tokens))
}

// Next returns the index of the next non-trivia token after i, or -1.
func (s *Statement) Next(i int) int {
	for j := i + 1; j < len(s.Tokens); j++ {
		if !IsTrivia(s.Tokens[j]) {
			return j
		}
	}
	return -1
}

// Prev returns the index of the previous non-trivia token before i, or -1.
func (s *Statement) Prev(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !IsTrivia(s.Tokens[j]) {
			return j
		}
	}
	return -1
}

// First returns the index of the statement's first non-trivia token, or -1.
func (s *Statement) First() int {
	return s.Next(-1)
}

// Pos returns the position of the statement's first non-trivia token.
func (s *Statement) Pos() token.Position {
	if i := s.First(); i >= 0 {
		return s.Tokens[i].Pos
	}
	return token.Position{}
}

// Depth returns the paren depth of the token at index i. The opening and
// closing parens of a group sit at the group's outer depth.
func (s *Statement) Depth(i int) int {
	return s.depths[i]
}

// closeGroup returns the index of the ")" matching the "(" at index open,
// or the last token index if the group never closes.
func (s *Statement) closeGroup(open int) int {
	depth := 0
	for i := open; i < len(s.Tokens); i++ {
		switch {
		case s.Tokens[i].IsPunct("("):
			depth++
		case s.Tokens[i].IsPunct(")"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s.Tokens) - 1
}

func (s *Statement) analyze() {
	s.computeDepths()
	s.scanLists()
	s.scanCTEs()
	s.scanCreate()
	s.scanTables()
}

func (s *Statement) computeDepths() {
	s.depths = make([]int, len(s.Tokens))
	depth := 0
	for i, t := range s.Tokens {
		switch {
		case t.IsPunct("("):
			s.depths[i] = depth
			depth++
		case t.IsPunct(")"):
			if depth > 0 {
				depth--
			}
			s.depths[i] = depth
		default:
			s.depths[i] = depth
		}
	}
}

// listTerminators are keywords that end a SELECT/GROUP BY/ORDER BY item
// list when met at the clause's own depth.
var listTerminators = map[string]struct{}{
	"from": {}, "where": {}, "group": {}, "order": {}, "having": {},
	"limit": {}, "offset": {}, "union": {}, "intersect": {}, "except": {},
	"returning": {}, "window": {}, "fetch": {}, "for": {}, "into": {},
	"on": {}, "using": {},
}

func isListTerminator(t token.Token) bool {
	if t.Kind != token.Keyword {
		return false
	}
	_, ok := listTerminators[strings.ToLower(t.Text)]
	return ok
}

func (s *Statement) scanLists() {
	for i, t := range s.Tokens {
		switch {
		case t.Is("SELECT"):
			s.addList("SELECT", i, s.selectItemsStart(i))
		case t.Is("GROUP") || t.Is("ORDER"):
			j := s.Next(i)
			if j < 0 || !s.Tokens[j].Is("BY") {
				continue
			}
			keyword := strings.ToUpper(t.Text) + " BY"
			s.addList(keyword, i, s.Next(j))
		}
	}
}

// selectItemsStart skips DISTINCT/ALL (and DISTINCT ON (...)) after SELECT.
func (s *Statement) selectItemsStart(sel int) int {
	j := s.Next(sel)
	if j < 0 {
		return -1
	}
	if s.Tokens[j].Is("ALL") {
		return s.Next(j)
	}
	if s.Tokens[j].Is("DISTINCT") {
		k := s.Next(j)
		if k >= 0 && s.Tokens[k].Is("ON") {
			open := s.Next(k)
			if open >= 0 && s.Tokens[open].IsPunct("(") {
				return s.Next(s.closeGroup(open))
			}
		}
		return k
	}
	return j
}

func (s *Statement) addList(keyword string, keywordIndex, start int) {
	if start < 0 {
		return
	}
	depth := s.depths[keywordIndex]
	clause := &ListClause{
		Keyword:      keyword,
		KeywordIndex: keywordIndex,
		Depth:        depth,
		Start:        start,
		End:          len(s.Tokens),
		Items:        []int{start},
	}

	for j := start; j < len(s.Tokens); j++ {
		t := s.Tokens[j]
		if IsTrivia(t) {
			continue
		}
		if t.IsPunct(")") && s.depths[j] < depth {
			clause.End = j
			break
		}
		if s.depths[j] != depth {
			continue
		}
		if t.IsPunct(";") || isListTerminator(t) {
			clause.End = j
			break
		}
		if t.IsPunct(",") {
			clause.Commas = append(clause.Commas, j)
			if next := s.Next(j); next >= 0 {
				clause.Items = append(clause.Items, next)
			}
		}
	}

	// Drop phantom items introduced by a trailing comma: an "item" at or
	// past the terminator is not an item.
	items := clause.Items[:0]
	for _, it := range clause.Items {
		if it < clause.End {
			items = append(items, it)
		}
	}
	clause.Items = items

	s.Lists = append(s.Lists, clause)
}

// scanCTEs records CTE definitions. WITH also occurs in forms like
// "timestamp with time zone" and "WITH NO DATA"; those are skipped because
// no identifier follows.
func (s *Statement) scanCTEs() {
	for i, t := range s.Tokens {
		if !t.Is("WITH") {
			continue
		}
		j := s.Next(i)
		if j < 0 {
			continue
		}
		recursive := false
		if s.Tokens[j].Is("RECURSIVE") {
			recursive = true
			j = s.Next(j)
		}
		for j >= 0 && s.Tokens[j].Kind == token.Identifier {
			nameIndex := j

			// Optional column alias list: name (a, b)
			k := s.Next(j)
			if k >= 0 && s.Tokens[k].IsPunct("(") {
				k = s.Next(s.closeGroup(k))
			}
			if k < 0 || !s.Tokens[k].Is("AS") {
				break
			}
			k = s.Next(k)
			if k >= 0 && s.Tokens[k].Is("NOT") {
				k = s.Next(k)
			}
			if k >= 0 && s.Tokens[k].Is("MATERIALIZED") {
				k = s.Next(k)
			}
			if k < 0 || !s.Tokens[k].IsPunct("(") {
				break
			}
			s.CTEs = append(s.CTEs, CTE{NameIndex: nameIndex, Recursive: recursive})

			k = s.Next(s.closeGroup(k))
			if k < 0 || !s.Tokens[k].IsPunct(",") {
				break
			}
			j = s.Next(k)
		}
	}
}

// constraintStarters begin a table constraint rather than a column
// definition inside a CREATE TABLE column list.
var constraintStarters = map[string]struct{}{
	"constraint": {}, "primary": {}, "foreign": {}, "unique": {},
	"check": {}, "exclude": {}, "like": {},
}

func (s *Statement) scanCreate() {
	i := s.First()
	if i < 0 || !s.Tokens[i].Is("CREATE") {
		return
	}

	c := &Create{Kind: CreateOther, NameIndex: -1}
	j := s.Next(i)

	if j >= 0 && s.Tokens[j].Is("OR") {
		j = s.Next(j) // REPLACE
		j = s.Next(j)
	}

	for j >= 0 {
		t := s.Tokens[j]
		if t.Is("TEMP") || t.Is("TEMPORARY") {
			c.Temp = true
			j = s.Next(j)
			continue
		}
		if t.Is("UNLOGGED") || t.Is("GLOBAL") || t.Is("LOCAL") {
			j = s.Next(j)
			continue
		}
		break
	}
	if j < 0 {
		return
	}

	switch {
	case s.Tokens[j].Is("TABLE"):
		c.Kind = CreateTable
	case s.Tokens[j].Is("VIEW"):
		c.Kind = CreateView
	case s.Tokens[j].Is("MATERIALIZED"):
		j = s.Next(j)
		if j < 0 || !s.Tokens[j].Is("VIEW") {
			return
		}
		c.Kind = CreateMaterializedView
	case s.Tokens[j].Is("FUNCTION") || s.Tokens[j].Is("PROCEDURE"):
		c.Kind = CreateFunction
	case s.Tokens[j].Is("INDEX"):
		c.Kind = CreateIndex
	}

	j = s.Next(j)
	if j >= 0 && s.Tokens[j].Is("IF") {
		j = s.Next(j) // NOT
		j = s.Next(j) // EXISTS
		j = s.Next(j)
	}
	if j >= 0 && s.Tokens[j].Is("CONCURRENTLY") {
		j = s.Next(j)
	}

	// Possibly schema-qualified name; the last segment is the object name.
	for j >= 0 && (s.Tokens[j].Kind == token.Identifier || s.Tokens[j].Kind == token.Keyword) {
		c.NameIndex = j
		k := s.Next(j)
		if k < 0 || !s.Tokens[k].IsPunct(".") {
			j = k
			break
		}
		j = s.Next(k)
	}
	if c.NameIndex < 0 {
		return
	}

	if c.Kind == CreateTable && j >= 0 && s.Tokens[j].IsPunct("(") {
		c.HasColumnList = true
		c.Columns = s.scanColumnDefs(j)
	}

	s.Create = c
}

// scanColumnDefs parses the top-level items of a CREATE TABLE column list,
// skipping table constraints.
func (s *Statement) scanColumnDefs(open int) []ColumnDef {
	end := s.closeGroup(open)
	depth := s.depths[open] + 1

	var defs []ColumnDef
	item := s.Next(open)
	for item >= 0 && item < end {
		// Find the end of this item: the next comma at list depth.
		itemEnd := end
		for j := item; j < end; j++ {
			if s.Tokens[j].IsPunct(",") && s.depths[j] == depth {
				itemEnd = j
				break
			}
		}

		name := s.Tokens[item]
		if name.Kind == token.Identifier {
			if _, constraint := constraintStarters[strings.ToLower(name.Text)]; !constraint {
				defs = append(defs, ColumnDef{
					NameIndex: item,
					TypeText:  s.columnType(item, itemEnd),
				})
			}
		}

		if itemEnd >= end {
			break
		}
		item = s.Next(itemEnd)
	}
	return defs
}

// columnTypeStops end the data-type portion of a column definition.
var columnTypeStops = map[string]struct{}{
	"not": {}, "null": {}, "default": {}, "primary": {}, "unique": {},
	"references": {}, "check": {}, "collate": {}, "constraint": {},
	"generated": {},
}

func (s *Statement) columnType(nameIndex, itemEnd int) string {
	var parts []string
	for j := s.Next(nameIndex); j >= 0 && j < itemEnd; j = s.Next(j) {
		t := s.Tokens[j]
		if t.Kind == token.Keyword {
			if _, stop := columnTypeStops[strings.ToLower(t.Text)]; stop {
				break
			}
		}
		parts = append(parts, strings.ToLower(t.Text))
	}
	return strings.Join(parts, " ")
}

// queryStarters mark a depth as a query context so that FROM inside
// function forms like extract(month from ts) is not taken for a table list.
var queryStarters = map[string]struct{}{
	"select": {}, "delete": {}, "update": {}, "insert": {}, "table": {},
}

// fromEnders are keywords that close a FROM clause's table list at its
// own depth.
var fromEnders = map[string]struct{}{
	"where": {}, "group": {}, "order": {}, "having": {}, "limit": {},
	"offset": {}, "union": {}, "intersect": {}, "except": {},
	"returning": {}, "window": {}, "fetch": {}, "for": {},
}

func (s *Statement) scanTables() {
	starters := map[int]bool{}
	inFrom := map[int]bool{}

	for i, t := range s.Tokens {
		d := s.depths[i]

		if t.Kind == token.Keyword {
			lower := strings.ToLower(t.Text)
			if _, ok := queryStarters[lower]; ok {
				starters[d] = true
			}
			if _, ok := fromEnders[lower]; ok {
				delete(inFrom, d)
			}
		}
		if t.IsPunct(")") {
			delete(starters, d+1)
			delete(inFrom, d+1)
		}

		switch {
		case t.Is("FROM") && starters[d]:
			inFrom[d] = true
			s.scanRef(s.Next(i))
		case t.Is("JOIN"):
			s.scanRef(s.Next(i))
		case t.IsPunct(",") && inFrom[d]:
			s.scanRef(s.Next(i))
		}
	}
}

// scanRef parses one table source (dotted name or parenthesized subquery,
// optional alias) starting at index j and returns the index of the first
// token after it.
func (s *Statement) scanRef(j int) int {
	if j < 0 {
		return -1
	}

	ref := TableRef{NameIndex: -1, AliasIndex: -1, Depth: s.depths[j]}

	if s.Tokens[j].IsPunct("(") {
		j = s.Next(s.closeGroup(j))
	} else if s.Tokens[j].Kind == token.Identifier || s.Tokens[j].Kind == token.Keyword {
		if s.Tokens[j].Kind == token.Keyword && !s.Tokens[j].Is("LATERAL") {
			return j // ON, WHERE, SELECT of a join condition context, ...
		}
		if s.Tokens[j].Is("LATERAL") {
			return s.scanRef(s.Next(j))
		}
		for {
			ref.NameIndex = j
			k := s.Next(j)
			if k < 0 || !s.Tokens[k].IsPunct(".") {
				j = k
				break
			}
			j = s.Next(k)
		}
		// Function source: name(...) keeps the name, skips the call.
		if j >= 0 && s.Tokens[j].IsPunct("(") {
			j = s.Next(s.closeGroup(j))
		}
	} else {
		return j
	}

	if j >= 0 && s.Tokens[j].Is("AS") {
		ref.HasAS = true
		j = s.Next(j)
	}
	if j >= 0 && s.Tokens[j].Kind == token.Identifier {
		ref.AliasIndex = j
		j = s.Next(j)
		// Column alias list: alias (a, b)
		if j >= 0 && s.Tokens[j].IsPunct("(") {
			j = s.Next(s.closeGroup(j))
		}
	}

	if ref.NameIndex >= 0 || ref.AliasIndex >= 0 {
		s.Tables = append(s.Tables, ref)
	}
	return j
}
