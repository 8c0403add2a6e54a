package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/catalog"
	"github.com/ritamzico/kql/internal/parse"
	"github.com/ritamzico/kql/internal/plan"
	"github.com/ritamzico/kql/internal/translate"
)

func tableT() catalog.InMemoryTable {
	return catalog.InMemoryTable{NameField: "T", ColumnsField: []plan.ColumnSchema{
		{Name: "name", Type: plan.String},
		{Name: "age", Type: plan.Int32},
	}}
}

func tableU() catalog.InMemoryTable {
	return catalog.InMemoryTable{NameField: "U", ColumnsField: []plan.ColumnSchema{
		{Name: "id", Type: plan.Int64},
		{Name: "x", Type: plan.Int32},
	}}
}

func translateQuery(t *testing.T, query string, tables ...catalog.TableSource) plan.LogicalPlan {
	t.Helper()
	stmts, err := parse.Parse(query)
	require.NoError(t, err)
	cat := catalog.NewMapCatalog(tables...)
	p, err := translate.TranslateProgram(stmts, cat)
	require.NoError(t, err)
	return p
}

// Scenario 1: Projection(Filter(Scan("T"), age>=18), [name, age]).
func TestTranslate_WhereProject(t *testing.T) {
	p := translateQuery(t, "T | where age >= 18 | project name, age", tableT())

	proj, ok := p.(*plan.Projection)
	require.True(t, ok)
	require.Equal(t, []plan.ColumnSchema{{Name: "name", Type: plan.String}, {Name: "age", Type: plan.Int32}}, proj.Columns)

	filter, ok := proj.Child.(*plan.Filter)
	require.True(t, ok)

	scan, ok := filter.Child.(*plan.Scan)
	require.True(t, ok)
	assert.Equal(t, "T", scan.Table)

	pred, ok := filter.Predicate.(plan.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpGreaterOrEqual, pred.Op)
}

// Scenario 2: Sort(Aggregate(Scan("T"), groups=[city], aggs=[count().alias("c")]), [SortExpr(c, asc=false, nulls_first=false)]).
func TestTranslate_SummarizeSortBy(t *testing.T) {
	cityTable := catalog.InMemoryTable{NameField: "T", ColumnsField: []plan.ColumnSchema{
		{Name: "city", Type: plan.String},
	}}
	p := translateQuery(t, "T | summarize c=count() by city | sort by c", cityTable)

	sort, ok := p.(*plan.Sort)
	require.True(t, ok)
	require.Len(t, sort.Exprs, 1)
	assert.False(t, sort.Exprs[0].Asc)
	assert.False(t, sort.Exprs[0].NullsFirst)

	agg, ok := sort.Child.(*plan.Aggregate)
	require.True(t, ok)
	// Groups first, aggregates after.
	require.Len(t, agg.Columns, 2)
	assert.Equal(t, "city", agg.Columns[0].Name)
	assert.Equal(t, "c", agg.Columns[1].Name)
	require.Len(t, agg.GroupExprs, 1)
	require.Len(t, agg.AggExprs, 1)
}

// Scenario 3: Filter(Values({a:Int32,b:Utf8}, [[1,"x"],[2,"y"]]), a>1).
func TestTranslate_DatatableFilter(t *testing.T) {
	p := translateQuery(t, `datatable(a:int, b:string) [1, "x", 2, "y"] | where a > 1`)

	filter, ok := p.(*plan.Filter)
	require.True(t, ok)
	values, ok := filter.Child.(*plan.Values)
	require.True(t, ok)
	require.Equal(t, []plan.ColumnSchema{{Name: "a", Type: plan.Int32}, {Name: "b", Type: plan.String}}, values.Columns)
	require.Len(t, values.Rows, 2)
}

func TestTranslate_DatatableMalformedRowCountIsSchemaError(t *testing.T) {
	stmts, err := parse.Parse(`datatable(a:int, b:string) [1, "x", 2]`)
	require.NoError(t, err)
	_, err = translate.TranslateProgram(stmts, catalog.NewMapCatalog())
	require.Error(t, err)
	var terr translate.TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "SchemaError", terr.Kind)
}

// Scenario 4: Join(Scan("T"), Filter(Scan("U"), x==1), keys=(["id"],["id"]), Inner).
func TestTranslate_Join(t *testing.T) {
	tTable := catalog.InMemoryTable{NameField: "T", ColumnsField: []plan.ColumnSchema{
		{Name: "id", Type: plan.Int64},
	}}
	p := translateQuery(t, "T | join (U | where x==1) on id", tTable, tableU())

	join, ok := p.(*plan.Join)
	require.True(t, ok)
	assert.Equal(t, plan.InnerJoin, join.Kind)
	assert.Equal(t, []string{"id"}, join.Keys)

	_, ok = join.Left.(*plan.Scan)
	require.True(t, ok)

	rightFilter, ok := join.Right.(*plan.Filter)
	require.True(t, ok)
	_, ok = rightFilter.Child.(*plan.Scan)
	require.True(t, ok)
}

// Scenario 5: Limit(Sort(Scan("T"), [SortExpr(ts, asc=false, nulls_first=true)]), 0, 5).
func TestTranslate_TopByDescNullsFirst(t *testing.T) {
	tsTable := catalog.InMemoryTable{NameField: "T", ColumnsField: []plan.ColumnSchema{
		{Name: "ts", Type: plan.Timestamp},
	}}
	p := translateQuery(t, "T | top 5 by ts desc nulls first", tsTable)

	limit, ok := p.(*plan.Limit)
	require.True(t, ok)
	assert.Equal(t, uint32(5), limit.Count)

	sort, ok := limit.Child.(*plan.Sort)
	require.True(t, ok)
	require.Len(t, sort.Exprs, 1)
	assert.False(t, sort.Exprs[0].Asc)
	assert.True(t, sort.Exprs[0].NullsFirst)
}

// Scenario 6: Values({x:Int64, print_0:Int64}, [[3,12]]).
func TestTranslate_Print(t *testing.T) {
	p := translateQuery(t, "print x=1+2, 3*4")

	values, ok := p.(*plan.Values)
	require.True(t, ok)
	require.Equal(t, []plan.ColumnSchema{{Name: "x", Type: plan.Int64}, {Name: "print_0", Type: plan.Int64}}, values.Columns)
	require.Len(t, values.Rows, 1)
	require.Len(t, values.Rows[0], 2)
}

func TestTranslate_ProjectKeepStarPreservesAllColumns(t *testing.T) {
	p := translateQuery(t, "T | project-keep *", tableT())
	proj := p.(*plan.Projection)
	assert.Equal(t, tableT().Schema(), proj.Columns)
}

func TestTranslate_ProjectAwayStarRemovesAllColumns(t *testing.T) {
	p := translateQuery(t, "T | project-away *", tableT())
	proj := p.(*plan.Projection)
	assert.Empty(t, proj.Columns)
}

func TestTranslate_CountLowersToAggregate(t *testing.T) {
	p := translateQuery(t, "T | count", tableT())
	agg, ok := p.(*plan.Aggregate)
	require.True(t, ok)
	require.Empty(t, agg.GroupExprs)
	require.Len(t, agg.Columns, 1)
	assert.Equal(t, "count", agg.Columns[0].Name)
}

func TestTranslate_TakeTakeIsEquivalentToSingleTake(t *testing.T) {
	once := translateQuery(t, "T | take 5", tableT())
	twice := translateQuery(t, "T | take 5 | take 5", tableT())

	// Limit(Limit(Scan,5),5) should report the same effective row cap and
	// schema as a single Limit(Scan,5): the outer take cannot admit more
	// rows than the inner one already produced.
	onceLimit := once.(*plan.Limit)
	outerLimit := twice.(*plan.Limit)
	innerLimit := outerLimit.Child.(*plan.Limit)
	assert.Equal(t, onceLimit.Count, outerLimit.Count)
	assert.Equal(t, onceLimit.Count, innerLimit.Count)
	assert.Equal(t, onceLimit.Schema(), outerLimit.Schema())
}

func TestTranslate_TableNotFound(t *testing.T) {
	stmts, err := parse.Parse("Missing | count")
	require.NoError(t, err)
	_, err = translate.TranslateProgram(stmts, catalog.NewMapCatalog())
	require.Error(t, err)
	var notFound catalog.TableNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Name)
}

func TestTranslate_FunctionNotFound(t *testing.T) {
	stmts, err := parse.Parse("T | extend y = not_a_real_function(age)")
	require.NoError(t, err)
	_, err = translate.TranslateProgram(stmts, catalog.NewMapCatalog(tableT()))
	require.Error(t, err)
	var notFound catalog.FunctionNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestTranslate_MultipleTopLevelStatementsIsError(t *testing.T) {
	stmts, err := parse.Parse("T | count; U | count")
	require.NoError(t, err)
	_, err = translate.TranslateProgram(stmts, catalog.NewMapCatalog(tableT(), tableU()))
	require.Error(t, err)
	var terr translate.TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "MultipleStatements", terr.Kind)
}

func TestTranslate_LetScalarSubstitution(t *testing.T) {
	p := translateQuery(t, "let threshold = 18; T | where age >= threshold", tableT())
	filter, ok := p.(*plan.Filter)
	require.True(t, ok)
	pred := filter.Predicate.(plan.BinaryOp)
	lit, ok := pred.Right.(plan.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(18), lit.Value.Int64)
}

func TestTranslate_LetTabularSubstitution(t *testing.T) {
	p := translateQuery(t, "let Adults = T | where age >= 18; Adults | count", tableT())
	agg, ok := p.(*plan.Aggregate)
	require.True(t, ok)
	_, ok = agg.Child.(*plan.Filter)
	require.True(t, ok)
}

func TestTranslate_LetCycleIsRejected(t *testing.T) {
	stmts, err := parse.Parse("let A = B | count; let B = A | count; A | count")
	require.NoError(t, err)
	_, err = translate.TranslateProgram(stmts, catalog.NewMapCatalog())
	require.Error(t, err)
	var terr translate.TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "LetCycle", terr.Kind)
}
