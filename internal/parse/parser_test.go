package parse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/parse"
)

func longLit(v int64) ast.Expr {
	return ast.LiteralExpr{Value: ast.Literal{Kind: ast.KindInt64, Valid: true, Int64: v}}
}

// Scenario 1 from the module's testable properties: a where followed by a
// project over two bare identifiers.
func TestParse_WhereProject(t *testing.T) {
	stmts, err := parse.Parse("T | where age >= 18 | project name, age")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	want := ast.TabularExpressionStatement{
		Expr: ast.TabularExpression{
			Source: ast.ReferenceSource{Name: "T"},
			Operators: []ast.Operator{
				ast.WhereOp{Expr: ast.BinaryExpr{
					Op:    ast.OpGreaterOrEqual,
					Left:  ast.Ident{Name: "age"},
					Right: longLit(18),
				}},
				ast.ProjectOp{Exprs: []ast.NamedExpr{
					{Name: nil, Expr: ast.Ident{Name: "name"}},
					{Name: nil, Expr: ast.Ident{Name: "age"}},
				}},
			},
		},
	}

	if diff := cmp.Diff(want, stmts[0]); diff != "" {
		t.Fatalf("unexpected AST (-want +got):\n%s", diff)
	}
}

func TestParse_SummarizeSortBy(t *testing.T) {
	stmts, err := parse.Parse("T | summarize c=count() by city | sort by c")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	stmt, ok := stmts[0].(ast.TabularExpressionStatement)
	require.True(t, ok)
	require.Len(t, stmt.Expr.Operators, 2)

	summarize, ok := stmt.Expr.Operators[0].(ast.SummarizeOp)
	require.True(t, ok)
	require.Len(t, summarize.Aggs, 1)
	require.Len(t, summarize.Groups, 1)
	require.Equal(t, "c", *summarize.Aggs[0].Name)
	countCall, ok := summarize.Aggs[0].Expr.(ast.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "count", countCall.Name)
	assert.Empty(t, countCall.Args)
	require.Equal(t, ast.Ident{Name: "city"}, summarize.Groups[0].Expr)

	sort, ok := stmt.Expr.Operators[1].(ast.SortOp)
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, sort.Columns)
}

func TestParse_DatatableSource(t *testing.T) {
	stmts, err := parse.Parse(`datatable(a:int, b:string) [1, "x", 2, "y"] | where a > 1`)
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)

	dt, ok := stmt.Expr.Source.(ast.DatatableSource)
	require.True(t, ok)
	require.Equal(t, []ast.ColumnDecl{{Name: "a", Type: ast.TypeInt}, {Name: "b", Type: ast.TypeString}}, dt.Schema)
	require.Len(t, dt.Values, 4)
}

func TestParse_JoinOn(t *testing.T) {
	stmts, err := parse.Parse("T | join (U | where x==1) on id")
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)
	require.Len(t, stmt.Expr.Operators, 1)

	join, ok := stmt.Expr.Operators[0].(ast.JoinOp)
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, join.Keys)

	rhsSource, ok := join.RHS.Source.(ast.ReferenceSource)
	require.True(t, ok)
	assert.Equal(t, "U", rhsSource.Name)
	require.Len(t, join.RHS.Operators, 1)
}

func TestParse_TopByDescNullsFirst(t *testing.T) {
	stmts, err := parse.Parse("T | top 5 by ts desc nulls first")
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)

	top, ok := stmt.Expr.Operators[0].(ast.TopOp)
	require.True(t, ok)
	assert.Equal(t, uint32(5), top.Count)
	assert.False(t, top.Asc)
	assert.True(t, top.NullsFirst)
	assert.Equal(t, ast.Ident{Name: "ts"}, top.Expr)
}

func TestParse_PrintMixedNaming(t *testing.T) {
	stmts, err := parse.Parse("print x=1+2, 3*4")
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)

	print, ok := stmt.Expr.Source.(ast.PrintSource)
	require.True(t, ok)
	require.Len(t, print.Exprs, 2)
	require.NotNil(t, print.Exprs[0].Name)
	assert.Equal(t, "x", *print.Exprs[0].Name)
	assert.Nil(t, print.Exprs[1].Name)
}

func TestParse_TimespanBoundaryValues(t *testing.T) {
	cases := []struct {
		query string
		want  int64
	}{
		{"print timespan(0s)", 0},
		{"print timespan(0.5s)", 500_000_000},
		{"print timespan(-1h)", -3_600_000_000_000},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			stmts, err := parse.Parse(tc.query)
			require.NoError(t, err)
			stmt := stmts[0].(ast.TabularExpressionStatement)
			print := stmt.Expr.Source.(ast.PrintSource)
			lit := print.Exprs[0].Expr.(ast.LiteralExpr).Value
			require.Equal(t, ast.KindTimespan, lit.Kind)
			assert.Equal(t, tc.want, lit.Timespan)
		})
	}
}

func TestParse_HexLiteral(t *testing.T) {
	stmts, err := parse.Parse("print 0x1f")
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)
	print := stmt.Expr.Source.(ast.PrintSource)
	lit := print.Exprs[0].Expr.(ast.LiteralExpr).Value
	require.Equal(t, ast.KindInt64, lit.Kind)
	require.True(t, lit.Valid)
	assert.Equal(t, int64(31), lit.Int64)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := parse.Parse("")
	require.Error(t, err)
	var perr parse.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "EmptyInput", perr.Kind)
}

func TestParse_WhitespaceOnlyInput(t *testing.T) {
	_, err := parse.Parse("   \n\t  ")
	require.Error(t, err)
}

func TestParse_TrailingPipeIsError(t *testing.T) {
	_, err := parse.Parse("T |")
	require.Error(t, err)
	var perr parse.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParse_ByIsReservedNotAnIdentifier(t *testing.T) {
	_, err := parse.Parse("T | project by")
	require.Error(t, err)
}

func TestParse_BothStringQuoteStyles(t *testing.T) {
	stmts, err := parse.Parse(`print a="double", b='single'`)
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)
	print := stmt.Expr.Source.(ast.PrintSource)
	require.Len(t, print.Exprs, 2)
	assert.Equal(t, "double", print.Exprs[0].Expr.(ast.LiteralExpr).Value.String)
	assert.Equal(t, "single", print.Exprs[1].Expr.(ast.LiteralExpr).Value.String)
}

func TestParse_AndOrRightAssociative(t *testing.T) {
	stmts, err := parse.Parse("T | where a and b and c")
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)
	where := stmt.Expr.Operators[0].(ast.WhereOp)

	// Right associativity: a and (b and c).
	top, ok := where.Expr.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, top.Op)
	assert.Equal(t, ast.Ident{Name: "a"}, top.Left)
	inner, ok := top.Right.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, inner.Op)
}

func TestParse_ArithmeticLeftAssociative(t *testing.T) {
	stmts, err := parse.Parse("print 1 - 2 - 3")
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)
	print := stmt.Expr.Source.(ast.PrintSource)

	// Left associativity: (1 - 2) - 3.
	top, ok := print.Exprs[0].Expr.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, top.Op)
	_, ok = top.Left.(ast.BinaryExpr)
	require.True(t, ok, "left operand should itself be the (1 - 2) fold")
	assert.Equal(t, longLit(3), top.Right)
}

func TestParse_LetScalarAndTabular(t *testing.T) {
	stmts, err := parse.Parse("let threshold = 10; let Adults = T | where age >= threshold; Adults | count")
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	_, ok := stmts[0].(ast.LetStatement)
	require.True(t, ok)
	_, ok = stmts[1].(ast.LetStatement)
	require.True(t, ok)
	_, ok = stmts[2].(ast.TabularExpressionStatement)
	require.True(t, ok)
}

func TestParse_ProjectAwayAndKeepWildcards(t *testing.T) {
	stmts, err := parse.Parse("T | project-away Col*, internal_* | project-keep *")
	require.NoError(t, err)
	stmt := stmts[0].(ast.TabularExpressionStatement)

	away, ok := stmt.Expr.Operators[0].(ast.ProjectAwayOp)
	require.True(t, ok)
	assert.Equal(t, []string{"Col*", "internal_*"}, away.Wildcards)

	keep, ok := stmt.Expr.Operators[1].(ast.ProjectKeepOp)
	require.True(t, ok)
	assert.Equal(t, []string{"*"}, keep.Wildcards)
}
