package grammar

// OperatorAST dispatches on the keyword following a "|". Branch order is
// cosmetic: every branch is keyed to a distinct reserved keyword token (the
// lexer already resolved e.g. "project" vs "project-away" into separate
// token values), so participle never needs more than one token of
// lookahead to pick a branch.
type OperatorAST struct {
	As              *AsAST              `parser:"  @@"`
	Consume         *ConsumeAST         `parser:"| @@"`
	Count           *CountAST           `parser:"| @@"`
	Distinct        *DistinctAST        `parser:"| @@"`
	Evaluate        *EvaluateAST        `parser:"| @@"`
	Extend          *ExtendAST          `parser:"| @@"`
	Facet           *FacetAST           `parser:"| @@"`
	Fork            *ForkAST            `parser:"| @@"`
	Getschema       *GetschemaAST       `parser:"| @@"`
	Join            *JoinAST            `parser:"| @@"`
	Lookup          *LookupAST          `parser:"| @@"`
	MvApply         *MvApplyAST         `parser:"| @@"`
	MvExpand        *MvExpandAST        `parser:"| @@"`
	ParseWhere      *ParseWhereAST      `parser:"| @@"`
	Parse           *ParseAST           `parser:"| @@"`
	ProjectAway     *ProjectAwayAST     `parser:"| @@"`
	ProjectKeep     *ProjectKeepAST     `parser:"| @@"`
	ProjectRename   *ProjectRenameAST   `parser:"| @@"`
	ProjectReorder  *ProjectReorderAST  `parser:"| @@"`
	Project         *ProjectAST         `parser:"| @@"`
	SampleDistinct  *SampleDistinctAST  `parser:"| @@"`
	Sample          *SampleAST          `parser:"| @@"`
	Serialize       *SerializeAST       `parser:"| @@"`
	Summarize       *SummarizeAST       `parser:"| @@"`
	Sort            *SortAST            `parser:"| @@"`
	Take            *TakeAST            `parser:"| @@"`
	Top             *TopAST             `parser:"| @@"`
	Union           *UnionOperatorAST   `parser:"| @@"`
	Where           *WhereAST           `parser:"| @@"`
}

type AsAST struct {
	Options []*OptionAST `parser:"\"as\" @@*"`
	Name    string       `parser:"@Ident"`
}

type ConsumeAST struct {
	Options []*OptionAST `parser:"\"consume\" @@*"`
}

type CountAST struct {
	Keyword bool `parser:"@\"count\""`
}

type DistinctAST struct {
	Columns []string `parser:"\"distinct\" @Ident (\",\" @Ident)*"`
}

type EvaluateAST struct {
	Options []*OptionAST `parser:"\"evaluate\" @@*"`
	Name    string       `parser:"@Ident"`
	Args    []*OrExprAST `parser:"\"(\" (@@ (\",\" @@)*)? \")\""`
}

type ExtendAST struct {
	Exprs []*NamedExprAST `parser:"\"extend\" @@ (\",\" @@)*"`
}

// FacetAST: `facet by col, ... [with (op | op | ...)]`.
type FacetAST struct {
	Columns []string       `parser:"\"facet\" \"by\" @Ident (\",\" @Ident)*"`
	SubOps  []*OperatorAST `parser:"( \"with\" \"(\" @@ (\"|\" @@)* \")\" )?"`
}

// ForkBranchAST: `[name =] op | op | ...` inside a `( ... )` branch.
type ForkBranchAST struct {
	Name *string        `parser:"( @Ident \"=\" )?"`
	Ops  []*OperatorAST `parser:"@@ (\"|\" @@)*"`
}

type ForkAST struct {
	Branches []*ForkBranchAST `parser:"\"fork\" ( \"(\" @@ \")\" )+"`
}

type GetschemaAST struct {
	Keyword bool `parser:"@\"getschema\""`
}

type JoinAST struct {
	Options []*OptionAST `parser:"\"join\" @@*"`
	RHS     *TabularAST  `parser:"\"(\" @@ \")\""`
	Keys    []string     `parser:"\"on\" @Ident (\",\" @Ident)*"`
}

type LookupAST struct {
	Options []*OptionAST `parser:"\"lookup\" @@*"`
	RHS     *TabularAST  `parser:"\"(\" @@ \")\""`
	Keys    []string     `parser:"\"on\" @Ident (\",\" @Ident)*"`
}

// MvApplyBindingAST: `col [to typeof(type)]`.
type MvApplyBindingAST struct {
	Column string `parser:"@Ident"`
	ToType string `parser:"( \"to\" \"typeof\" \"(\" @(\"bool\"|\"datetime\"|\"dynamic\"|\"int\"|\"long\"|\"real\"|\"decimal\"|\"string\"|\"timespan\") \")\" )?"`
}

type MvApplyAST struct {
	Bindings []*MvApplyBindingAST `parser:"\"mv-apply\" @@ (\",\" @@)*"`
	Ops      []*OperatorAST       `parser:"\"on\" \"(\" @@ (\"|\" @@)* \")\""`
}

type MvExpandAST struct {
	Column string `parser:"\"mv-expand\" @Ident"`
}

// PatternTokenAST is one element of a parse/parse-where pattern: a literal
// wildcard, a quoted separator string, or a column capture with an optional
// type annotation.
type PatternTokenAST struct {
	Wildcard   bool    `parser:"  @\"*\""`
	Str        *string `parser:"| @String"`
	ColumnName *string `parser:"| @Ident"`
	ColumnType *string `parser:"( \":\" @(\"bool\"|\"datetime\"|\"dynamic\"|\"int\"|\"long\"|\"real\"|\"decimal\"|\"string\"|\"timespan\") )?"`
}

type ParseAST struct {
	Options []*OptionAST       `parser:"\"parse\" @@*"`
	Expr    *OrExprAST         `parser:"@@"`
	Pattern []*PatternTokenAST `parser:"\"with\" @@+"`
}

type ParseWhereAST struct {
	Options []*OptionAST       `parser:"\"parse-where\" @@*"`
	Expr    *OrExprAST         `parser:"@@"`
	Pattern []*PatternTokenAST `parser:"\"with\" @@+"`
}

type ProjectAST struct {
	Exprs []*NamedExprAST `parser:"\"project\" @@ (\",\" @@)*"`
}

// WildcardAST: a glob pattern built from one or more Ident/"*" fragments,
// e.g. `Request*` lexes as Ident("Request") "*", reassembled by convert.go.
type WildcardAST struct {
	Parts []string `parser:"@(Ident|\"*\")+"`
}

type ProjectAwayAST struct {
	Wildcards []*WildcardAST `parser:"\"project-away\" @@ (\",\" @@)*"`
}

type ProjectKeepAST struct {
	Wildcards []*WildcardAST `parser:"\"project-keep\" @@ (\",\" @@)*"`
}

type ProjectRenamePairAST struct {
	NewName string `parser:"@Ident \"=\""`
	OldName string `parser:"@Ident"`
}

type ProjectRenameAST struct {
	Pairs []*ProjectRenamePairAST `parser:"\"project-rename\" @@ (\",\" @@)*"`
}

type ProjectReorderColumnAST struct {
	Wildcard *WildcardAST `parser:"@@"`
	Asc      bool         `parser:"( @\"asc\""`
	Desc     bool         `parser:"| @\"desc\" )?"`
}

type ProjectReorderAST struct {
	Columns []*ProjectReorderColumnAST `parser:"\"project-reorder\" @@ (\",\" @@)*"`
}

type SampleAST struct {
	Count int64 `parser:"\"sample\" @Int"`
}

type SampleDistinctAST struct {
	Count  int64  `parser:"\"sample-distinct\" @Int"`
	Column string `parser:"\"by\" @Ident"`
}

type SerializeAST struct {
	Exprs []*NamedExprAST `parser:"\"serialize\" @@ (\",\" @@)*"`
}

// SummarizeAST: `summarize agg, ... [by group, ...]`. Both aggs and groups
// may be aliased (`c = count()`, `by bucket = bin(ts, 1h)`).
type SummarizeAST struct {
	Aggs   []*NamedExprAST `parser:"\"summarize\" @@ (\",\" @@)*"`
	Groups []*NamedExprAST `parser:"( \"by\" @@ (\",\" @@)* )?"`
}

// SortAST: `sort by col, ...`. Deliberately plain column names, not full
// expressions or per-column direction: this operator always sorts
// descending with nulls last, matching Top's independent direction fields
// when an explicit direction is actually needed.
type SortAST struct {
	Columns []string `parser:"\"sort\" \"by\" @Ident (\",\" @Ident)*"`
}

type TakeAST struct {
	Count int64 `parser:"(\"take\"|\"limit\") @Int"`
}

// TopAST: `top N by expr [asc|desc] [nulls first|last]`.
type TopAST struct {
	Count      int64      `parser:"\"top\" @Int \"by\""`
	Expr       *OrExprAST `parser:"@@"`
	Asc        bool       `parser:"( @\"asc\""`
	Desc       bool       `parser:"| @\"desc\" )?"`
	NullsFirst bool       `parser:"( \"nulls\" ( @\"first\""`
	NullsLast  bool       `parser:"| @\"last\" ) )?"`
}

type UnionOperatorAST struct {
	Body *UnionBodyAST `parser:"\"union\" @@"`
}

type WhereAST struct {
	Expr *OrExprAST `parser:"\"where\" @@"`
}
