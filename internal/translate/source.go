package translate

import (
	"fmt"

	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/plan"
)

func translateSource(s ast.Source, ctx *Context) (plan.LogicalPlan, error) {
	switch n := s.(type) {
	case ast.ReferenceSource:
		return translateReference(n, ctx)
	case ast.DatatableSource:
		return translateDatatable(n, ctx)
	case ast.PrintSource:
		return translatePrint(n, ctx)
	case ast.ExternaldataSource:
		return translateExternaldata(n, ctx)
	case ast.RangeSource:
		return translateRange(n, ctx)
	case ast.FindSource:
		return translateFind(n, ctx)
	case ast.UnionSource:
		return translateUnionSource(n, ctx)
	case ast.PipelineSource:
		return translateTabular(n.Pipeline, ctx)
	default:
		return nil, TranslateError{Kind: "UnsupportedSource", Message: "unsupported source node"}
	}
}

func translateReference(n ast.ReferenceSource, ctx *Context) (plan.LogicalPlan, error) {
	if p, ok, err := ctx.lookupTabularLet(n.Name); ok || err != nil {
		return p, err
	}
	ts, err := ctx.Catalog.ResolveTable(n.Name)
	if err != nil {
		return nil, err
	}
	return &plan.Scan{
		Table:     n.Name,
		Qualified: fmt.Sprintf("%s.%s.%s", ctx.Catalog.DefaultCatalogName(), ctx.Catalog.DefaultSchemaName(), n.Name),
		Columns:   ts.Schema(),
	}, nil
}

func schemaFromDecls(decls []ast.ColumnDecl) []plan.ColumnSchema {
	out := make([]plan.ColumnSchema, len(decls))
	for i, d := range decls {
		out[i] = plan.ColumnSchema{Name: d.Name, Type: plan.FromASTType(d.Type)}
	}
	return out
}

func translateDatatable(n ast.DatatableSource, ctx *Context) (plan.LogicalPlan, error) {
	columns := schemaFromDecls(n.Schema)
	width := len(columns)

	if width == 0 || len(n.Values)%width != 0 {
		return nil, TranslateError{Kind: "SchemaError", Message: fmt.Sprintf(
			"datatable value count (%d) is not a multiple of its column count (%d)", len(n.Values), width)}
	}

	values := make([]plan.Expr, len(n.Values))
	for i, v := range n.Values {
		lowered, err := lowerExpr(v, nil, ctx)
		if err != nil {
			return nil, err
		}
		values[i] = lowered
	}

	rows := make([][]plan.Expr, len(values)/width)
	for r := range rows {
		rows[r] = values[r*width : (r+1)*width]
	}

	return &plan.Values{Columns: columns, Rows: rows}, nil
}

// translatePrint lowers `print`'s named expression list into a single-row
// Values node. Unlike extend/project/summarize, an unnamed field here does
// not borrow the underlying column or function name: it gets the
// declaration-order placeholder `print_0`, `print_1`, ... counting only the
// unnamed fields, per the source language's own print auto-naming rule.
func translatePrint(n ast.PrintSource, ctx *Context) (plan.LogicalPlan, error) {
	columns := make([]plan.ColumnSchema, len(n.Exprs))
	row := make([]plan.Expr, len(n.Exprs))
	autoIdx := 0
	for i, ne := range n.Exprs {
		lowered, err := lowerExpr(ne.Expr, nil, ctx)
		if err != nil {
			return nil, err
		}
		name := ""
		if ne.Name != nil {
			name = *ne.Name
			lowered = plan.Alias{Expr: lowered, Name: name}
		} else {
			name = fmt.Sprintf("print_%d", autoIdx)
			autoIdx++
		}
		row[i] = lowered
		columns[i] = plan.ColumnSchema{Name: name, Type: lowered.ResultType()}
	}
	return &plan.Values{Columns: columns, Rows: [][]plan.Expr{row}}, nil
}

func translateExternaldata(n ast.ExternaldataSource, ctx *Context) (plan.LogicalPlan, error) {
	return &plan.Scan{
		Table:     "externaldata",
		Qualified: "externaldata",
		Columns:   schemaFromDecls(n.Schema),
	}, nil
}

func translateRange(n ast.RangeSource, ctx *Context) (plan.LogicalPlan, error) {
	from, err := lowerExpr(n.From, nil, ctx)
	if err != nil {
		return nil, err
	}
	to, err := lowerExpr(n.To, nil, ctx)
	if err != nil {
		return nil, err
	}
	step, err := lowerExpr(n.Step, nil, ctx)
	if err != nil {
		return nil, err
	}
	return &plan.Range{
		Column:  n.Column,
		From:    from,
		To:      to,
		Step:    step,
		Columns: []plan.ColumnSchema{{Name: n.Column, Type: from.ResultType()}},
	}, nil
}

func translateFind(n ast.FindSource, ctx *Context) (plan.LogicalPlan, error) {
	sources := n.InSources
	if sources == nil {
		for _, name := range ctx.Catalog.ListTables() {
			sources = append(sources, ast.ReferenceSource{Name: name})
		}
	}

	filtered := make([]plan.LogicalPlan, 0, len(sources))
	for _, s := range sources {
		p, err := translateSource(s, ctx)
		if err != nil {
			return nil, err
		}
		predicate, err := lowerExpr(n.Predicate, p.Schema(), ctx)
		if err != nil {
			return nil, err
		}
		filtered = append(filtered, &plan.Filter{Child: p, Predicate: predicate})
	}

	combined, err := concatPlans(filtered)
	if err != nil {
		return nil, err
	}

	switch proj := n.Projection.(type) {
	case ast.FindProjectSmart:
		return combined, nil
	case ast.FindProject:
		return projectColumns(combined, proj.Columns)
	default:
		return combined, nil
	}
}

func projectColumns(child plan.LogicalPlan, names []string) (plan.LogicalPlan, error) {
	exprs := make([]plan.Expr, len(names))
	columns := make([]plan.ColumnSchema, len(names))
	for i, name := range names {
		col, ok := findColumn(child.Schema(), name)
		if !ok {
			return nil, TranslateError{Kind: "SchemaError", Message: "unknown column: " + name}
		}
		exprs[i] = plan.Column{Name: col.Name, Type: col.Type}
		columns[i] = col
	}
	return &plan.Projection{Child: child, Exprs: exprs, Columns: columns}, nil
}

func translateUnionSource(n ast.UnionSource, ctx *Context) (plan.LogicalPlan, error) {
	plans := make([]plan.LogicalPlan, len(n.Sources))
	for i, s := range n.Sources {
		p, err := translateSource(s, ctx)
		if err != nil {
			return nil, err
		}
		plans[i] = p
	}
	return concatPlans(plans)
}

// concatPlans builds a Union node over one or more inputs, taking the first
// input's schema as the union's output schema (inputs are expected to share
// shape; this is not re-verified column by column).
func concatPlans(plans []plan.LogicalPlan) (plan.LogicalPlan, error) {
	if len(plans) == 0 {
		return &plan.Union{Inputs: nil, Columns: nil}, nil
	}
	if len(plans) == 1 {
		return plans[0], nil
	}
	return &plan.Union{Inputs: plans, Columns: plans[0].Schema()}, nil
}
