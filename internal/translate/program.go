package translate

import (
	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/catalog"
	"github.com/ritamzico/kql/internal/plan"
)

// TranslateProgram lowers a full parsed program into a single LogicalPlan.
// `let` statements never count against the one-executable-statement limit;
// exactly one TabularExpressionStatement must be present.
func TranslateProgram(stmts []ast.Statement, cat catalog.Catalog) (plan.LogicalPlan, error) {
	ctx := newContext(cat)

	var executable *ast.TabularExpressionStatement
	for _, s := range stmts {
		switch n := s.(type) {
		case ast.LetStatement:
			switch body := n.Expr.(type) {
			case ast.LetTabular:
				ctx.tabularLetsAST[n.Name] = body.Expr
			case ast.LetScalar:
				ctx.scalarLetsAST[n.Name] = body.Expr
			}
		case ast.TabularExpressionStatement:
			if executable != nil {
				return nil, TranslateError{Kind: "MultipleStatements", Message: "a program may contain only one executable tabular statement"}
			}
			stmtCopy := n
			executable = &stmtCopy
		}
	}

	if executable == nil {
		return nil, TranslateError{Kind: "NoStatement", Message: "a program must contain one executable tabular statement"}
	}

	return translateTabular(executable.Expr, ctx)
}
