package translate

import (
	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/catalog"
	"github.com/ritamzico/kql/internal/plan"
)

func findColumn(schema []plan.ColumnSchema, name string) (plan.ColumnSchema, bool) {
	for _, c := range schema {
		if c.Name == name {
			return c, true
		}
	}
	return plan.ColumnSchema{}, false
}

// lowerExpr lowers a scalar ast.Expr against an input schema (nil when
// lowering a scalar let's body, which cannot reference row columns).
// Function calls are resolved scalar, then aggregate, then window.
func lowerExpr(e ast.Expr, schema []plan.ColumnSchema, ctx *Context) (plan.Expr, error) {
	switch n := e.(type) {
	case ast.Ident:
		return lowerIdent(n, schema, ctx)
	case ast.LiteralExpr:
		return plan.Literal{Value: n.Value, Type: plan.FromLiteralKind(n.Value.Kind)}, nil
	case ast.BinaryExpr:
		return lowerBinary(n, schema, ctx)
	case ast.FuncCall:
		return lowerFuncCall(n, schema, ctx)
	default:
		return nil, TranslateError{Kind: "UnsupportedExpression", Message: "unsupported expression node"}
	}
}

func lowerIdent(n ast.Ident, schema []plan.ColumnSchema, ctx *Context) (plan.Expr, error) {
	if schema != nil {
		if col, ok := findColumn(schema, n.Name); ok {
			return plan.Column{Name: col.Name, Type: col.Type}, nil
		}
	}
	if e, ok, err := ctx.lookupScalarLet(n.Name); ok || err != nil {
		return e, err
	}
	return nil, TranslateError{Kind: "SchemaError", Message: "unknown identifier: " + n.Name}
}

func lowerBinary(n ast.BinaryExpr, schema []plan.ColumnSchema, ctx *Context) (plan.Expr, error) {
	left, err := lowerExpr(n.Left, schema, ctx)
	if err != nil {
		return nil, err
	}
	right, err := lowerExpr(n.Right, schema, ctx)
	if err != nil {
		return nil, err
	}
	return plan.BinaryOp{Op: n.Op, Left: left, Right: right, Type: binaryResultType(n.Op, left, right)}, nil
}

func binaryResultType(op ast.BinOp, left, right plan.Expr) plan.DataType {
	switch op {
	case ast.OpEquals, ast.OpNotEquals, ast.OpLess, ast.OpGreater, ast.OpLessOrEqual, ast.OpGreaterOrEqual, ast.OpAnd, ast.OpOr:
		return plan.Bool
	default:
		if left.ResultType() != plan.Unknown {
			return left.ResultType()
		}
		return right.ResultType()
	}
}

func lowerFuncCall(n ast.FuncCall, schema []plan.ColumnSchema, ctx *Context) (plan.Expr, error) {
	args := make([]plan.Expr, len(n.Args))
	argTypes := make([]plan.DataType, len(n.Args))
	for i, a := range n.Args {
		lowered, err := lowerExpr(a, schema, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = lowered
		argTypes[i] = lowered.ResultType()
	}

	if sig, ok := ctx.Catalog.ResolveScalar(n.Name); ok {
		return plan.ScalarFunc{Name: n.Name, Args: args, Type: sig.ReturnType(argTypes)}, nil
	}
	if sig, ok := ctx.Catalog.ResolveAggregate(n.Name); ok {
		return plan.AggregateFunc{Name: n.Name, Args: args, Type: sig.ReturnType(argTypes)}, nil
	}
	if sig, ok := ctx.Catalog.ResolveWindow(n.Name); ok {
		return plan.WindowFunc{Name: n.Name, Args: args, Type: sig.ReturnType(argTypes)}, nil
	}
	return nil, catalog.FunctionNotFound{Name: n.Name}
}

// lowerNamedExpr lowers a NamedExpr, applying its alias if present and
// auto-naming it from the underlying column/function otherwise.
func lowerNamedExpr(n ast.NamedExpr, schema []plan.ColumnSchema, ctx *Context) (plan.Expr, string, error) {
	e, err := lowerExpr(n.Expr, schema, ctx)
	if err != nil {
		return nil, "", err
	}
	if n.Name != nil {
		return plan.Alias{Expr: e, Name: *n.Name}, *n.Name, nil
	}
	return e, autoName(n.Expr, e), nil
}

// autoName picks a display name for an unaliased expression: the referenced
// column's own name, or the function name for a call, falling back to a
// generic placeholder for arbitrary compound expressions.
func autoName(src ast.Expr, lowered plan.Expr) string {
	switch n := src.(type) {
	case ast.Ident:
		return n.Name
	case ast.FuncCall:
		return n.Name
	default:
		switch e := lowered.(type) {
		case plan.Column:
			return e.Name
		default:
			return "Column1"
		}
	}
}
