package translate

import (
	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/catalog"
	"github.com/ritamzico/kql/internal/plan"
)

// Context is threaded by reference through the recursive lowering of a
// single program: it carries the catalog plus the let bindings declared
// ahead of the executable statement, resolving each lazily (and at most
// once) the first time it is referenced.
type Context struct {
	Catalog catalog.Catalog

	tabularLetsAST map[string]ast.TabularExpression
	scalarLetsAST  map[string]ast.Expr

	tabularResolved map[string]plan.LogicalPlan
	scalarResolved  map[string]plan.Expr

	resolvingTabular map[string]bool
	resolvingScalar  map[string]bool
}

func newContext(cat catalog.Catalog) *Context {
	return &Context{
		Catalog:          cat,
		tabularLetsAST:   map[string]ast.TabularExpression{},
		scalarLetsAST:    map[string]ast.Expr{},
		tabularResolved:  map[string]plan.LogicalPlan{},
		scalarResolved:   map[string]plan.Expr{},
		resolvingTabular: map[string]bool{},
		resolvingScalar:  map[string]bool{},
	}
}

// lookupTabularLet resolves name as a tabular let, translating its body on
// first reference. The second return value is false when name is not a
// declared tabular let at all (the caller then falls back to a catalog
// table lookup).
func (c *Context) lookupTabularLet(name string) (plan.LogicalPlan, bool, error) {
	if p, ok := c.tabularResolved[name]; ok {
		return p, true, nil
	}
	astExpr, ok := c.tabularLetsAST[name]
	if !ok {
		return nil, false, nil
	}
	if c.resolvingTabular[name] {
		return nil, true, TranslateError{Kind: "LetCycle", Message: "cyclic let binding: " + name}
	}
	c.resolvingTabular[name] = true
	defer delete(c.resolvingTabular, name)

	p, err := translateTabular(astExpr, c)
	if err != nil {
		return nil, true, err
	}
	c.tabularResolved[name] = p
	return p, true, nil
}

// lookupScalarLet resolves name as a scalar let, lowering its body on first
// reference. Scalar lets have no row schema of their own: their body may
// only reference literals, other scalar lets, and scalar functions.
func (c *Context) lookupScalarLet(name string) (plan.Expr, bool, error) {
	if e, ok := c.scalarResolved[name]; ok {
		return e, true, nil
	}
	astExpr, ok := c.scalarLetsAST[name]
	if !ok {
		return nil, false, nil
	}
	if c.resolvingScalar[name] {
		return nil, true, TranslateError{Kind: "LetCycle", Message: "cyclic let binding: " + name}
	}
	c.resolvingScalar[name] = true
	defer delete(c.resolvingScalar, name)

	e, err := lowerExpr(astExpr, nil, c)
	if err != nil {
		return nil, true, err
	}
	c.scalarResolved[name] = e
	return e, true, nil
}
