// Package translate lowers a parsed program's AST into a tree of
// internal/plan.LogicalPlan nodes, resolving table and function names
// against an internal/catalog.Catalog along the way.
package translate

import (
	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/catalog"
	"github.com/ritamzico/kql/internal/plan"
)

// translateTabular lowers one pipeline: its source, then each operator in
// turn, threading the evolving schema through.
func translateTabular(t ast.TabularExpression, ctx *Context) (plan.LogicalPlan, error) {
	p, err := translateSource(t.Source, ctx)
	if err != nil {
		return nil, err
	}
	for _, op := range t.Operators {
		p, err = applyOperator(p, op, ctx)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func applyOperator(input plan.LogicalPlan, op ast.Operator, ctx *Context) (plan.LogicalPlan, error) {
	switch n := op.(type) {
	case ast.WhereOp:
		return applyWhere(input, n, ctx)
	case ast.ProjectOp:
		return applyProject(input, n, ctx)
	case ast.ExtendOp:
		return applyExtend(input, n, ctx)
	case ast.ProjectAwayOp:
		return applyProjectAway(input, n)
	case ast.ProjectKeepOp:
		return applyProjectKeep(input, n)
	case ast.ProjectRenameOp:
		return applyProjectRename(input, n)
	case ast.ProjectReorderOp:
		return applyProjectReorder(input, n)
	case ast.SerializeOp:
		return applySerialize(input, n, ctx)
	case ast.SummarizeOp:
		return applySummarize(input, n, ctx)
	case ast.SortOp:
		return applySort(input, n)
	case ast.TakeOp:
		return &plan.Limit{Child: input, Count: n.Count}, nil
	case ast.TopOp:
		return applyTop(input, n, ctx)
	case ast.DistinctOp:
		return applyDistinct(input, n)
	case ast.CountOp:
		return applyCount(input), nil
	case ast.JoinOp:
		return applyJoin(input, n, ctx)
	case ast.LookupOp:
		return applyLookup(input, n, ctx)
	case ast.MvExpandOp:
		return applyMvExpand(input, n)
	case ast.UnionOp:
		return applyUnion(input, n, ctx)
	case ast.AsOp:
		// `as` records no binding for its name here; the plan passes
		// through unchanged.
		return input, nil
	case ast.ConsumeOp:
		return input, nil
	case ast.GetschemaOp:
		return applyGetschema(input), nil
	case ast.EvaluateOp:
		return applyEvaluate(input, n, ctx)
	case ast.FacetOp:
		return applyFacet(input, n, ctx)
	case ast.ForkOp:
		return applyFork(input, n, ctx)
	case ast.MvApplyOp:
		return applyMvApply(input, n, ctx)
	case ast.ParseOp:
		return applyParse(input, n, ctx)
	case ast.ParseWhereOp:
		return applyParseWhere(input, n, ctx)
	case ast.SampleOp:
		return &plan.Limit{Child: input, Count: n.Count}, nil
	case ast.SampleDistinctOp:
		return applySampleDistinct(input, n)
	default:
		return nil, TranslateError{Kind: "UnsupportedOperator", Message: "unsupported operator"}
	}
}

func applyWhere(input plan.LogicalPlan, n ast.WhereOp, ctx *Context) (plan.LogicalPlan, error) {
	predicate, err := lowerExpr(n.Expr, input.Schema(), ctx)
	if err != nil {
		return nil, err
	}
	return &plan.Filter{Child: input, Predicate: predicate}, nil
}

func applyProject(input plan.LogicalPlan, n ast.ProjectOp, ctx *Context) (plan.LogicalPlan, error) {
	exprs, columns, err := lowerNamedExprList(n.Exprs, input.Schema(), ctx)
	if err != nil {
		return nil, err
	}
	return &plan.Projection{Child: input, Exprs: exprs, Columns: columns}, nil
}

func applyExtend(input plan.LogicalPlan, n ast.ExtendOp, ctx *Context) (plan.LogicalPlan, error) {
	schema := input.Schema()
	exprs := make([]plan.Expr, 0, len(schema)+len(n.Exprs))
	columns := make([]plan.ColumnSchema, 0, len(schema)+len(n.Exprs))
	for _, c := range schema {
		exprs = append(exprs, plan.Column{Name: c.Name, Type: c.Type})
		columns = append(columns, c)
	}
	added, addedColumns, err := lowerNamedExprList(n.Exprs, schema, ctx)
	if err != nil {
		return nil, err
	}
	exprs = append(exprs, added...)
	columns = append(columns, addedColumns...)
	return &plan.Projection{Child: input, Exprs: exprs, Columns: columns}, nil
}

func applySerialize(input plan.LogicalPlan, n ast.SerializeOp, ctx *Context) (plan.LogicalPlan, error) {
	schema := input.Schema()
	windowExprs, added, err := lowerNamedExprList(n.Exprs, schema, ctx)
	if err != nil {
		return nil, err
	}
	columns := make([]plan.ColumnSchema, 0, len(schema)+len(added))
	columns = append(columns, schema...)
	columns = append(columns, added...)
	return &plan.Window{Child: input, WindowExprs: windowExprs, Columns: columns}, nil
}

func lowerNamedExprList(exprs []ast.NamedExpr, schema []plan.ColumnSchema, ctx *Context) ([]plan.Expr, []plan.ColumnSchema, error) {
	lowered := make([]plan.Expr, len(exprs))
	columns := make([]plan.ColumnSchema, len(exprs))
	for i, ne := range exprs {
		e, name, err := lowerNamedExpr(ne, schema, ctx)
		if err != nil {
			return nil, nil, err
		}
		lowered[i] = e
		columns[i] = plan.ColumnSchema{Name: name, Type: e.ResultType()}
	}
	return lowered, columns, nil
}

func applyProjectAway(input plan.LogicalPlan, n ast.ProjectAwayOp) (plan.LogicalPlan, error) {
	schema := input.Schema()
	exprs := make([]plan.Expr, 0, len(schema))
	columns := make([]plan.ColumnSchema, 0, len(schema))
	for _, c := range schema {
		drop, err := matchesAnyWildcard(c.Name, n.Wildcards)
		if err != nil {
			return nil, err
		}
		if drop {
			continue
		}
		exprs = append(exprs, plan.Column{Name: c.Name, Type: c.Type})
		columns = append(columns, c)
	}
	return &plan.Projection{Child: input, Exprs: exprs, Columns: columns}, nil
}

func applyProjectKeep(input plan.LogicalPlan, n ast.ProjectKeepOp) (plan.LogicalPlan, error) {
	schema := input.Schema()
	exprs := make([]plan.Expr, 0, len(schema))
	columns := make([]plan.ColumnSchema, 0, len(schema))
	for _, c := range schema {
		keep, err := matchesAnyWildcard(c.Name, n.Wildcards)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		exprs = append(exprs, plan.Column{Name: c.Name, Type: c.Type})
		columns = append(columns, c)
	}
	return &plan.Projection{Child: input, Exprs: exprs, Columns: columns}, nil
}

func applyProjectRename(input plan.LogicalPlan, n ast.ProjectRenameOp) (plan.LogicalPlan, error) {
	rename := make(map[string]string, len(n.Pairs))
	for _, p := range n.Pairs {
		rename[p.OldName] = p.NewName
	}
	schema := input.Schema()
	exprs := make([]plan.Expr, len(schema))
	columns := make([]plan.ColumnSchema, len(schema))
	for i, c := range schema {
		name := c.Name
		if newName, ok := rename[c.Name]; ok {
			name = newName
		}
		exprs[i] = plan.Column{Name: c.Name, Type: c.Type}
		columns[i] = plan.ColumnSchema{Name: name, Type: c.Type}
	}
	return &plan.Projection{Child: input, Exprs: exprs, Columns: columns}, nil
}

func applyProjectReorder(input plan.LogicalPlan, n ast.ProjectReorderOp) (plan.LogicalPlan, error) {
	schema := input.Schema()
	placed := make(map[string]bool, len(schema))
	ordered := make([]plan.ColumnSchema, 0, len(schema))

	for _, rc := range n.Columns {
		for _, c := range schema {
			if placed[c.Name] {
				continue
			}
			match, err := matchesAnyWildcard(c.Name, []string{rc.Wildcard})
			if err != nil {
				return nil, err
			}
			if match {
				ordered = append(ordered, c)
				placed[c.Name] = true
			}
		}
	}
	for _, c := range schema {
		if !placed[c.Name] {
			ordered = append(ordered, c)
		}
	}

	exprs := make([]plan.Expr, len(ordered))
	for i, c := range ordered {
		exprs[i] = plan.Column{Name: c.Name, Type: c.Type}
	}
	return &plan.Projection{Child: input, Exprs: exprs, Columns: ordered}, nil
}

func applySummarize(input plan.LogicalPlan, n ast.SummarizeOp, ctx *Context) (plan.LogicalPlan, error) {
	schema := input.Schema()

	groupExprs, groupColumns, err := lowerNamedExprList(n.Groups, schema, ctx)
	if err != nil {
		return nil, err
	}
	aggExprs, aggColumns, err := lowerNamedExprList(n.Aggs, schema, ctx)
	if err != nil {
		return nil, err
	}

	columns := make([]plan.ColumnSchema, 0, len(groupColumns)+len(aggColumns))
	columns = append(columns, groupColumns...)
	columns = append(columns, aggColumns...)

	return &plan.Aggregate{Child: input, GroupExprs: groupExprs, AggExprs: aggExprs, Columns: columns}, nil
}

func applySort(input plan.LogicalPlan, n ast.SortOp) (plan.LogicalPlan, error) {
	schema := input.Schema()
	exprs := make([]plan.SortExpr, len(n.Columns))
	for i, name := range n.Columns {
		col, ok := findColumn(schema, name)
		if !ok {
			return nil, TranslateError{Kind: "SchemaError", Message: "unknown column: " + name}
		}
		exprs[i] = plan.SortExpr{Expr: plan.Column{Name: col.Name, Type: col.Type}, Asc: false, NullsFirst: false}
	}
	return &plan.Sort{Child: input, Exprs: exprs}, nil
}

func applyTop(input plan.LogicalPlan, n ast.TopOp, ctx *Context) (plan.LogicalPlan, error) {
	sortExpr, err := lowerExpr(n.Expr, input.Schema(), ctx)
	if err != nil {
		return nil, err
	}
	sorted := &plan.Sort{Child: input, Exprs: []plan.SortExpr{{Expr: sortExpr, Asc: n.Asc, NullsFirst: n.NullsFirst}}}
	return &plan.Limit{Child: sorted, Count: n.Count}, nil
}

// applyDistinct lowers to a degenerate Aggregate: grouping by the requested
// columns (or, if none given, every column) with no reducing aggregates
// collapses duplicate rows exactly as `distinct` requires.
func applyDistinct(input plan.LogicalPlan, n ast.DistinctOp) (plan.LogicalPlan, error) {
	schema := input.Schema()
	names := n.Columns
	if len(names) == 0 {
		names = make([]string, len(schema))
		for i, c := range schema {
			names[i] = c.Name
		}
	}
	groupExprs := make([]plan.Expr, len(names))
	columns := make([]plan.ColumnSchema, len(names))
	for i, name := range names {
		col, ok := findColumn(schema, name)
		if !ok {
			return nil, TranslateError{Kind: "SchemaError", Message: "unknown column: " + name}
		}
		groupExprs[i] = plan.Column{Name: col.Name, Type: col.Type}
		columns[i] = col
	}
	return &plan.Aggregate{Child: input, GroupExprs: groupExprs, AggExprs: nil, Columns: columns}, nil
}

// applyCount reduces the whole input to a single `count` column, the
// degenerate Aggregate case with no groups. Lowercase, matching
// `count_all().alias("count")` in both spec §4.2 and the original system's
// own `.count()` builder method.
func applyCount(input plan.LogicalPlan) plan.LogicalPlan {
	countExpr := plan.AggregateFunc{Name: "count", Args: nil, Type: plan.Int64}
	return &plan.Aggregate{
		Child:      input,
		GroupExprs: nil,
		AggExprs:   []plan.Expr{countExpr},
		Columns:    []plan.ColumnSchema{{Name: "count", Type: plan.Int64}},
	}
}

func applyGetschema(input plan.LogicalPlan) plan.LogicalPlan {
	schema := input.Schema()
	rows := make([][]plan.Expr, len(schema))
	for i, c := range schema {
		rows[i] = []plan.Expr{
			plan.Literal{Value: ast.Literal{Kind: ast.KindString, String: c.Name}, Type: plan.String},
			plan.Literal{Value: ast.Literal{Kind: ast.KindInt64, Valid: true, Int64: int64(i)}, Type: plan.Int64},
			plan.Literal{Value: ast.Literal{Kind: ast.KindString, String: c.Type.ArrowName()}, Type: plan.String},
			plan.Literal{Value: ast.Literal{Kind: ast.KindString, String: c.Type.String()}, Type: plan.String},
		}
	}
	return &plan.Values{
		Columns: []plan.ColumnSchema{
			{Name: "ColumnName", Type: plan.String},
			{Name: "ColumnOrdinal", Type: plan.Int64},
			{Name: "DataType", Type: plan.String},
			{Name: "ColumnType", Type: plan.String},
		},
		Rows: rows,
	}
}

func resolveJoinKind(opts ast.Options) plan.JoinKind {
	lit, ok := opts["kind"]
	if !ok {
		return plan.InnerJoin
	}
	s, ok := lit.(ast.OptionString)
	if !ok {
		return plan.InnerJoin
	}
	switch string(s) {
	case "leftouter":
		return plan.LeftOuterJoin
	case "rightouter":
		return plan.RightOuterJoin
	case "fullouter":
		return plan.FullOuterJoin
	case "leftsemi":
		return plan.LeftSemiJoin
	case "leftanti":
		return plan.LeftAntiJoin
	default:
		return plan.InnerJoin
	}
}

func joinColumns(left, right plan.LogicalPlan, keys []string) []plan.ColumnSchema {
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	columns := append([]plan.ColumnSchema{}, left.Schema()...)
	for _, c := range right.Schema() {
		if keySet[c.Name] {
			continue
		}
		columns = append(columns, c)
	}
	return columns
}

func applyJoin(input plan.LogicalPlan, n ast.JoinOp, ctx *Context) (plan.LogicalPlan, error) {
	right, err := translateTabular(n.RHS, ctx)
	if err != nil {
		return nil, err
	}
	return &plan.Join{
		Left:    input,
		Right:   right,
		Kind:    resolveJoinKind(n.Options),
		Keys:    n.Keys,
		Columns: joinColumns(input, right, n.Keys),
	}, nil
}

// applyLookup is join's simpler, always-left-outer, always-broadcast-on-the-
// right-hand-side sibling; it lowers to the same Join node shape.
func applyLookup(input plan.LogicalPlan, n ast.LookupOp, ctx *Context) (plan.LogicalPlan, error) {
	right, err := translateTabular(n.RHS, ctx)
	if err != nil {
		return nil, err
	}
	return &plan.Join{
		Left:    input,
		Right:   right,
		Kind:    plan.LeftOuterJoin,
		Keys:    n.Keys,
		Columns: joinColumns(input, right, n.Keys),
	}, nil
}

func applyMvExpand(input plan.LogicalPlan, n ast.MvExpandOp) (plan.LogicalPlan, error) {
	schema := input.Schema()
	col, ok := findColumn(schema, n.Column)
	if !ok {
		return nil, TranslateError{Kind: "SchemaError", Message: "unknown column: " + n.Column}
	}
	columns := make([]plan.ColumnSchema, len(schema))
	copy(columns, schema)
	for i, c := range columns {
		if c.Name == col.Name {
			columns[i] = plan.ColumnSchema{Name: c.Name, Type: plan.Dynamic}
		}
	}
	return &plan.Unnest{Child: input, Column: n.Column, Columns: columns}, nil
}

func applyUnion(input plan.LogicalPlan, n ast.UnionOp, ctx *Context) (plan.LogicalPlan, error) {
	plans := make([]plan.LogicalPlan, 0, len(n.Sources)+1)
	plans = append(plans, input)
	for _, s := range n.Sources {
		p, err := translateSource(s, ctx)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return concatPlans(plans)
}

func applyEvaluate(input plan.LogicalPlan, n ast.EvaluateOp, ctx *Context) (plan.LogicalPlan, error) {
	args := make([]plan.Expr, len(n.Args))
	argTypes := make([]plan.DataType, len(n.Args))
	for i, a := range n.Args {
		lowered, err := lowerExpr(a, input.Schema(), ctx)
		if err != nil {
			return nil, err
		}
		args[i] = lowered
		argTypes[i] = lowered.ResultType()
	}

	sig, ok := ctx.Catalog.ResolveWindow(n.Name)
	if !ok {
		sig, ok = ctx.Catalog.ResolveScalar(n.Name)
	}
	if !ok {
		return nil, catalog.FunctionNotFound{Name: n.Name}
	}

	resultType := sig.ReturnType(argTypes)
	columns := append([]plan.ColumnSchema{}, input.Schema()...)
	columns = append(columns, plan.ColumnSchema{Name: n.Name, Type: resultType})
	winExpr := plan.WindowFunc{Name: n.Name, Args: args, Type: resultType}
	return &plan.Window{Child: input, WindowExprs: []plan.Expr{winExpr}, Columns: columns}, nil
}

func applyFacet(input plan.LogicalPlan, n ast.FacetOp, ctx *Context) (plan.LogicalPlan, error) {
	schema := input.Schema()
	inputs := make([]plan.LogicalPlan, 0, len(n.Columns))
	for _, name := range n.Columns {
		col, ok := findColumn(schema, name)
		if !ok {
			return nil, TranslateError{Kind: "SchemaError", Message: "unknown column: " + name}
		}
		// Each facet groups rows by one distinct value of the facet column;
		// the per-value split itself is an execution-time concern, so the
		// plan carries an Aggregate keyed on the column plus the shared
		// operator chain applied to that branch.
		var facetPlan plan.LogicalPlan = &plan.Aggregate{
			Child:      input,
			GroupExprs: []plan.Expr{plan.Column{Name: col.Name, Type: col.Type}},
			AggExprs:   nil,
			Columns:    []plan.ColumnSchema{col},
		}
		for _, op := range n.Operators {
			p, err := applyOperator(facetPlan, op, ctx)
			if err != nil {
				return nil, err
			}
			facetPlan = p
		}
		inputs = append(inputs, facetPlan)
	}
	return concatPlans(inputs)
}

func applyFork(input plan.LogicalPlan, n ast.ForkOp, ctx *Context) (plan.LogicalPlan, error) {
	branches := make([]plan.LogicalPlan, 0, len(n.Branches))
	for _, b := range n.Branches {
		var branchPlan plan.LogicalPlan = input
		for _, op := range b.Operators {
			p, err := applyOperator(branchPlan, op, ctx)
			if err != nil {
				return nil, err
			}
			branchPlan = p
		}
		branches = append(branches, branchPlan)
	}
	return concatPlans(branches)
}

func applyMvApply(input plan.LogicalPlan, n ast.MvApplyOp, ctx *Context) (plan.LogicalPlan, error) {
	schema := input.Schema()
	columns := make([]plan.ColumnSchema, len(schema))
	copy(columns, schema)
	for _, b := range n.Bindings {
		elemType := plan.Dynamic
		if b.Type != nil {
			elemType = plan.FromASTType(*b.Type)
		}
		columns = append(columns, plan.ColumnSchema{Name: b.As, Type: elemType})
	}
	unnested := plan.LogicalPlan(&plan.Unnest{Child: input, Column: n.Bindings[0].Column, Columns: columns})
	var result = unnested
	for _, op := range n.Operators {
		p, err := applyOperator(result, op, ctx)
		if err != nil {
			return nil, err
		}
		result = p
	}
	return result, nil
}

func applyParse(input plan.LogicalPlan, n ast.ParseOp, ctx *Context) (plan.LogicalPlan, error) {
	source, err := lowerExpr(n.Expr, input.Schema(), ctx)
	if err != nil {
		return nil, err
	}
	schema := input.Schema()
	exprs := make([]plan.Expr, 0, len(schema)+len(n.Pattern))
	columns := append([]plan.ColumnSchema{}, schema...)
	for _, c := range schema {
		exprs = append(exprs, plan.Column{Name: c.Name, Type: c.Type})
	}
	for _, tok := range n.Pattern {
		col, ok := tok.(ast.ColumnToken)
		if !ok {
			continue
		}
		colType := plan.String
		if col.Type != nil {
			colType = plan.FromASTType(*col.Type)
		}
		exprs = append(exprs, plan.ScalarFunc{Name: "parse_extract", Args: []plan.Expr{source}, Type: colType})
		columns = append(columns, plan.ColumnSchema{Name: col.Name, Type: colType})
	}
	return &plan.Projection{Child: input, Exprs: exprs, Columns: columns}, nil
}

func applyParseWhere(input plan.LogicalPlan, n ast.ParseWhereOp, ctx *Context) (plan.LogicalPlan, error) {
	projected, err := applyParse(input, ast.ParseOp{Options: n.Options, Expr: n.Expr, Pattern: n.Pattern}, ctx)
	if err != nil {
		return nil, err
	}
	matched := plan.ScalarFunc{Name: "parse_matches", Args: nil, Type: plan.Bool}
	return &plan.Filter{Child: projected, Predicate: matched}, nil
}

func applySampleDistinct(input plan.LogicalPlan, n ast.SampleDistinctOp) (plan.LogicalPlan, error) {
	schema := input.Schema()
	col, ok := findColumn(schema, n.Column)
	if !ok {
		return nil, TranslateError{Kind: "SchemaError", Message: "unknown column: " + n.Column}
	}
	distinctPlan := &plan.Aggregate{
		Child:      input,
		GroupExprs: []plan.Expr{plan.Column{Name: col.Name, Type: col.Type}},
		AggExprs:   nil,
		Columns:    []plan.ColumnSchema{col},
	}
	return &plan.Limit{Child: distinctPlan, Count: n.Count}, nil
}
