package ast

// Operator is a single pipeline stage introduced by `| keyword ...`.
type Operator interface {
	isOperator()
}

type AsOp struct {
	Options Options
	Name    string
}

func (AsOp) isOperator() {}

type ConsumeOp struct {
	Options Options
}

func (ConsumeOp) isOperator() {}

type CountOp struct{}

func (CountOp) isOperator() {}

type DistinctOp struct {
	Columns []string
}

func (DistinctOp) isOperator() {}

type EvaluateOp struct {
	Options Options
	Name    string
	Args    []Expr
}

func (EvaluateOp) isOperator() {}

type ExtendOp struct {
	Exprs []NamedExpr
}

func (ExtendOp) isOperator() {}

type FacetOp struct {
	Columns   []string
	Operators []Operator
}

func (FacetOp) isOperator() {}

// ForkBranch is a single named (or unnamed) sub-pipeline of a fork.
type ForkBranch struct {
	Name      *string
	Operators []Operator
}

type ForkOp struct {
	Branches []ForkBranch
}

func (ForkOp) isOperator() {}

type GetschemaOp struct{}

func (GetschemaOp) isOperator() {}

type JoinOp struct {
	Options Options
	RHS     TabularExpression
	Keys    []string
}

func (JoinOp) isOperator() {}

type LookupOp struct {
	Options Options
	RHS     TabularExpression
	Keys    []string
}

func (LookupOp) isOperator() {}

// MvApplyBinding is a single `col to typeof(t)` binding inside mv-apply.
type MvApplyBinding struct {
	Column string
	As     string
	Type   *Type
}

type MvApplyOp struct {
	Bindings  []MvApplyBinding
	Operators []Operator
}

func (MvApplyOp) isOperator() {}

type MvExpandOp struct {
	Column string
}

func (MvExpandOp) isOperator() {}

type ParseOp struct {
	Options Options
	Expr    Expr
	Pattern []PatternToken
}

func (ParseOp) isOperator() {}

type ParseWhereOp struct {
	Options Options
	Expr    Expr
	Pattern []PatternToken
}

func (ParseWhereOp) isOperator() {}

type ProjectOp struct {
	Exprs []NamedExpr
}

func (ProjectOp) isOperator() {}

type ProjectAwayOp struct {
	Wildcards []string
}

func (ProjectAwayOp) isOperator() {}

type ProjectKeepOp struct {
	Wildcards []string
}

func (ProjectKeepOp) isOperator() {}

// ProjectRenamePair is a single `newName = oldName` rename entry.
type ProjectRenamePair struct {
	NewName string
	OldName string
}

type ProjectRenameOp struct {
	Pairs []ProjectRenamePair
}

func (ProjectRenameOp) isOperator() {}

// ProjectReorderColumn is a single reorder entry, optionally carrying an
// explicit asc/nulls-first directive (as KQL allows `project-reorder col desc`).
type ProjectReorderColumn struct {
	Wildcard string
	Order    *SortDirective
}

type SortDirective struct {
	Asc        bool
	NullsFirst bool
}

type ProjectReorderOp struct {
	Columns []ProjectReorderColumn
}

func (ProjectReorderOp) isOperator() {}

type SampleOp struct {
	Count uint32
}

func (SampleOp) isOperator() {}

type SampleDistinctOp struct {
	Count  uint32
	Column string
}

func (SampleDistinctOp) isOperator() {}

type SerializeOp struct {
	Exprs []NamedExpr
}

func (SerializeOp) isOperator() {}

type SummarizeOp struct {
	Aggs   []NamedExpr
	Groups []NamedExpr
}

func (SummarizeOp) isOperator() {}

type SortOp struct {
	Columns []string
}

func (SortOp) isOperator() {}

type TakeOp struct {
	Count uint32
}

func (TakeOp) isOperator() {}

type TopOp struct {
	Count      uint32
	Expr       Expr
	Asc        bool
	NullsFirst bool
}

func (TopOp) isOperator() {}

type UnionOp struct {
	Options Options
	Sources []Source
}

func (UnionOp) isOperator() {}

type WhereOp struct {
	Expr Expr
}

func (WhereOp) isOperator() {}
