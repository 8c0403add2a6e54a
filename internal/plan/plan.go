package plan

// LogicalPlan is one node of the relational plan tree the translator
// builds. Every node carries its own output schema, computed once at
// construction time rather than re-derived on demand.
type LogicalPlan interface {
	Schema() []ColumnSchema
	Children() []LogicalPlan
}

// Scan reads every row of a named base table.
type Scan struct {
	Table      string
	Qualified  string // catalog.schema.table, for display/debugging
	Columns    []ColumnSchema
}

func (s *Scan) Schema() []ColumnSchema    { return s.Columns }
func (s *Scan) Children() []LogicalPlan   { return nil }

// Values is a literal row set, as produced by datatable/print/range.
type Values struct {
	Columns []ColumnSchema
	Rows    [][]Expr
}

func (v *Values) Schema() []ColumnSchema  { return v.Columns }
func (v *Values) Children() []LogicalPlan { return nil }

// Filter keeps only rows for which Predicate evaluates true.
type Filter struct {
	Child     LogicalPlan
	Predicate Expr
}

func (f *Filter) Schema() []ColumnSchema  { return f.Child.Schema() }
func (f *Filter) Children() []LogicalPlan { return []LogicalPlan{f.Child} }

// Projection computes a new column list from Child's rows.
type Projection struct {
	Child   LogicalPlan
	Exprs   []Expr
	Columns []ColumnSchema
}

func (p *Projection) Schema() []ColumnSchema  { return p.Columns }
func (p *Projection) Children() []LogicalPlan { return []LogicalPlan{p.Child} }

// Aggregate groups Child's rows by GroupExprs and reduces each group with
// AggExprs. Output schema is groups followed by aggregates, matching the
// column order a consumer would expect to read off a summarize result.
type Aggregate struct {
	Child      LogicalPlan
	GroupExprs []Expr
	AggExprs   []Expr
	Columns    []ColumnSchema
}

func (a *Aggregate) Schema() []ColumnSchema  { return a.Columns }
func (a *Aggregate) Children() []LogicalPlan { return []LogicalPlan{a.Child} }

// Window computes one or more window functions over Child's rows without
// collapsing them, appending the results as new columns.
type Window struct {
	Child       LogicalPlan
	WindowExprs []Expr
	Columns     []ColumnSchema
}

func (w *Window) Schema() []ColumnSchema  { return w.Columns }
func (w *Window) Children() []LogicalPlan { return []LogicalPlan{w.Child} }

// JoinKind enumerates the supported join semantics.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	LeftSemiJoin
	LeftAntiJoin
)

// Join combines Left and Right on Keys (equi-join columns present on both
// sides under the same name).
type Join struct {
	Left, Right LogicalPlan
	Kind        JoinKind
	Keys        []string
	Columns     []ColumnSchema
}

func (j *Join) Schema() []ColumnSchema  { return j.Columns }
func (j *Join) Children() []LogicalPlan { return []LogicalPlan{j.Left, j.Right} }

// Unnest expands Column, a dynamic array/bag column, into one output row
// per element (mv-expand's lowering).
type Unnest struct {
	Child   LogicalPlan
	Column  string
	Columns []ColumnSchema
}

func (u *Unnest) Schema() []ColumnSchema  { return u.Columns }
func (u *Unnest) Children() []LogicalPlan { return []LogicalPlan{u.Child} }

// Sort reorders Child's rows by Exprs, applied in order.
type Sort struct {
	Child LogicalPlan
	Exprs []SortExpr
}

func (s *Sort) Schema() []ColumnSchema  { return s.Child.Schema() }
func (s *Sort) Children() []LogicalPlan { return []LogicalPlan{s.Child} }

// Limit skips Skip rows of Child then caps the remainder at Count. Every
// lowering in this module produces Skip=0; the field exists because the
// target plan algebra's Limit node is (child, skip, fetch), not fetch-only.
type Limit struct {
	Child LogicalPlan
	Skip  uint32
	Count uint32
}

func (l *Limit) Schema() []ColumnSchema  { return l.Child.Schema() }
func (l *Limit) Children() []LogicalPlan { return []LogicalPlan{l.Child} }

// Range produces a single generated column stepping from From to To by
// Step; row materialization is an execution-time concern, so this node
// carries the generator expressions rather than any rows.
type Range struct {
	Column         string
	From, To, Step Expr
	Columns        []ColumnSchema
}

func (r *Range) Schema() []ColumnSchema  { return r.Columns }
func (r *Range) Children() []LogicalPlan { return nil }

// Union concatenates the rows of every input, all of which must share a
// compatible schema.
type Union struct {
	Inputs  []LogicalPlan
	Columns []ColumnSchema
}

func (u *Union) Schema() []ColumnSchema  { return u.Columns }
func (u *Union) Children() []LogicalPlan { return u.Inputs }
