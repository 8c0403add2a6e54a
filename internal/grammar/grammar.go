// Package grammar defines the participle struct-tag grammar for KQL and
// builds the parser singleton used by internal/parse. Struct names ending
// in AST mirror the shape of internal/ast but keep participle's concrete
// syntax (optional groups, literal tokens, repetition) instead of the
// language-agnostic tree the parser converts them into.
package grammar

// Program is the top-level node: one or more statements separated by ";".
type Program struct {
	Statements []*StatementAST `parser:"@@ (\";\" @@)*"`
}

// StatementAST dispatches on let vs. a bare tabular expression.
type StatementAST struct {
	Let     *LetStmtAST  `parser:"  @@"`
	Tabular *TabularAST  `parser:"| @@"`
}

// LetStmtAST: `let name = <tabular> | <scalar>`. The tabular alternative is
// tried first since a bare reference source ("let t = OtherTable") would
// otherwise also satisfy a one-token scalar expression (a plain Ident atom).
type LetStmtAST struct {
	Name   string       `parser:"\"let\" @Ident \"=\""`
	Tab    *TabularAST  `parser:"( @@"`
	Scalar *OrExprAST   `parser:"| @@ )"`
}

// TabularAST: a source followed by zero or more piped operators.
type TabularAST struct {
	Source    *SourceAST    `parser:"@@"`
	Operators []*OperatorAST `parser:"( \"|\" @@ )*"`
}

// SourceAST dispatches on the keyword that introduces a tabular source.
// Reference (a bare identifier) is tried last since every other branch
// starts with its own reserved keyword and cannot be confused with it.
type SourceAST struct {
	Datatable    *DatatableAST    `parser:"  @@"`
	Externaldata *ExternaldataAST `parser:"| @@"`
	Find         *FindAST         `parser:"| @@"`
	Print        *PrintAST        `parser:"| @@"`
	Range        *RangeAST        `parser:"| @@"`
	Union        *UnionSourceAST  `parser:"| @@"`
	Reference    *string          `parser:"| @Ident"`
}

// ColumnDeclAST: `name: type`.
type ColumnDeclAST struct {
	Name string `parser:"@Ident \":\""`
	Type string `parser:"@(\"bool\"|\"datetime\"|\"dynamic\"|\"int\"|\"long\"|\"real\"|\"decimal\"|\"string\"|\"timespan\")"`
}

// DatatableAST: `datatable (col: type, ...) [v1, v2, ...]`.
type DatatableAST struct {
	Schema []*ColumnDeclAST `parser:"\"datatable\" \"(\" @@ (\",\" @@)* \")\""`
	Values []*OrExprAST     `parser:"\"[\" @@ (\",\" @@)* \"]\""`
}

// ExternaldataAST: `externaldata (col: type, ...) [ "url", ... ]`.
type ExternaldataAST struct {
	Schema []*ColumnDeclAST `parser:"\"externaldata\" \"(\" @@ (\",\" @@)* \")\""`
	URLs   []string         `parser:"\"[\" @String (\",\" @String)* \"]\""`
}

// NamedExprAST: an optionally-aliased expression, `name = expr` or bare `expr`.
type NamedExprAST struct {
	Name *string    `parser:"( @Ident \"=\" )?"`
	Expr *OrExprAST `parser:"@@"`
}

// PrintAST: `print expr1, name2 = expr2, ...`.
type PrintAST struct {
	Exprs []*NamedExprAST `parser:"\"print\" @@ (\",\" @@)*"`
}

// RangeAST: `range col from <e> to <e> step <e>`.
type RangeAST struct {
	Column string     `parser:"\"range\" @Ident"`
	From   *OrExprAST `parser:"\"from\" @@"`
	To     *OrExprAST `parser:"\"to\" @@"`
	Step   *OrExprAST `parser:"\"step\" @@"`
}

// OptionValueAST is the right-hand side of a `key=value` option pair.
type OptionValueAST struct {
	Bool *string `parser:"  @(\"true\"|\"false\")"`
	Long *int64  `parser:"| @Int"`
	Str  *string `parser:"| @String"`
	Name *string `parser:"| @Ident"`
}

// OptionAST is a single `key = value` option pair, as used before a source
// or operator's main body (e.g. `join kind=inner (...) on id`).
type OptionAST struct {
	Key   string          `parser:"@Ident \"=\""`
	Value *OptionValueAST `parser:"@@"`
}

// UnionSourceItemAST is one member of a union's source list: a parenthesized
// nested tabular expression or a bare table/let reference.
type UnionSourceItemAST struct {
	Nested *TabularAST `parser:"  \"(\" @@ \")\""`
	Name   *string     `parser:"| @Ident"`
}

// UnionBodyAST is shared between `union` as a source and `union` as a
// mid-pipeline operator; only the leading keyword differs between the two
// call sites.
type UnionBodyAST struct {
	Options []*OptionAST          `parser:"@@*"`
	Sources []*UnionSourceItemAST `parser:"@@ (\",\" @@)*"`
}

// UnionSourceAST: `union <options>? source, source, ...`.
type UnionSourceAST struct {
	Body *UnionBodyAST `parser:"\"union\" @@"`
}

// FindInClauseAST: `in (source, ...) where <expr>`.
type FindInClauseAST struct {
	Sources   []*SourceAST `parser:"\"in\" \"(\" @@ (\",\" @@)* \")\""`
	Predicate *OrExprAST   `parser:"\"where\" @@"`
}

// FindAST: `find <options>? (in (...) where expr | expr) (project-smart | project col, ...)?`.
type FindAST struct {
	Options      []*OptionAST      `parser:"\"find\" @@*"`
	InClause     *FindInClauseAST  `parser:"( @@"`
	Predicate    *OrExprAST        `parser:"| @@ )"`
	ProjectSmart bool              `parser:"( @\"project-smart\""`
	ProjectCols  []string          `parser:"| \"project\" @Ident (\",\" @Ident)* )?"`
}
