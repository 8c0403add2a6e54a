package parse

import (
	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/grammar"
)

func convertOperator(o *grammar.OperatorAST) (ast.Operator, error) {
	switch {
	case o.As != nil:
		return convertAs(o.As)
	case o.Consume != nil:
		opts, err := convertOptions(o.Consume.Options)
		return ast.ConsumeOp{Options: opts}, err
	case o.Count != nil:
		return ast.CountOp{}, nil
	case o.Distinct != nil:
		return ast.DistinctOp{Columns: o.Distinct.Columns}, nil
	case o.Evaluate != nil:
		return convertEvaluate(o.Evaluate)
	case o.Extend != nil:
		exprs, err := convertNamedExprList(o.Extend.Exprs)
		return ast.ExtendOp{Exprs: exprs}, err
	case o.Facet != nil:
		return convertFacet(o.Facet)
	case o.Fork != nil:
		return convertFork(o.Fork)
	case o.Getschema != nil:
		return ast.GetschemaOp{}, nil
	case o.Join != nil:
		return convertJoin(o.Join)
	case o.Lookup != nil:
		return convertLookup(o.Lookup)
	case o.MvApply != nil:
		return convertMvApply(o.MvApply)
	case o.MvExpand != nil:
		return ast.MvExpandOp{Column: o.MvExpand.Column}, nil
	case o.Parse != nil:
		return convertParse(o.Parse)
	case o.ParseWhere != nil:
		return convertParseWhere(o.ParseWhere)
	case o.Project != nil:
		exprs, err := convertNamedExprList(o.Project.Exprs)
		return ast.ProjectOp{Exprs: exprs}, err
	case o.ProjectAway != nil:
		return ast.ProjectAwayOp{Wildcards: convertWildcardList(o.ProjectAway.Wildcards)}, nil
	case o.ProjectKeep != nil:
		return ast.ProjectKeepOp{Wildcards: convertWildcardList(o.ProjectKeep.Wildcards)}, nil
	case o.ProjectRename != nil:
		return convertProjectRename(o.ProjectRename)
	case o.ProjectReorder != nil:
		return convertProjectReorder(o.ProjectReorder)
	case o.Sample != nil:
		return ast.SampleOp{Count: uint32(o.Sample.Count)}, nil
	case o.SampleDistinct != nil:
		return ast.SampleDistinctOp{Count: uint32(o.SampleDistinct.Count), Column: o.SampleDistinct.Column}, nil
	case o.Serialize != nil:
		exprs, err := convertNamedExprList(o.Serialize.Exprs)
		return ast.SerializeOp{Exprs: exprs}, err
	case o.Summarize != nil:
		return convertSummarize(o.Summarize)
	case o.Sort != nil:
		return ast.SortOp{Columns: o.Sort.Columns}, nil
	case o.Take != nil:
		return ast.TakeOp{Count: uint32(o.Take.Count)}, nil
	case o.Top != nil:
		return convertTop(o.Top)
	case o.Union != nil:
		opts, sources, err := convertUnionBody(o.Union.Body)
		return ast.UnionOp{Options: opts, Sources: sources}, err
	case o.Where != nil:
		expr, err := convertOr(o.Where.Expr)
		return ast.WhereOp{Expr: expr}, err
	default:
		return nil, ParseError{Kind: "InvalidSyntax", Message: "empty operator"}
	}
}

func convertAs(a *grammar.AsAST) (ast.Operator, error) {
	opts, err := convertOptions(a.Options)
	if err != nil {
		return nil, err
	}
	return ast.AsOp{Options: opts, Name: a.Name}, nil
}

func convertEvaluate(e *grammar.EvaluateAST) (ast.Operator, error) {
	opts, err := convertOptions(e.Options)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expr, len(e.Args))
	for i, a := range e.Args {
		expr, err := convertOr(a)
		if err != nil {
			return nil, err
		}
		args[i] = expr
	}
	return ast.EvaluateOp{Options: opts, Name: e.Name, Args: args}, nil
}

func convertFacet(f *grammar.FacetAST) (ast.Operator, error) {
	ops := make([]ast.Operator, len(f.SubOps))
	for i, o := range f.SubOps {
		op, err := convertOperator(o)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ast.FacetOp{Columns: f.Columns, Operators: ops}, nil
}

func convertFork(f *grammar.ForkAST) (ast.Operator, error) {
	branches := make([]ast.ForkBranch, len(f.Branches))
	for i, b := range f.Branches {
		ops := make([]ast.Operator, len(b.Ops))
		for j, o := range b.Ops {
			op, err := convertOperator(o)
			if err != nil {
				return nil, err
			}
			ops[j] = op
		}
		branches[i] = ast.ForkBranch{Name: b.Name, Operators: ops}
	}
	return ast.ForkOp{Branches: branches}, nil
}

func convertJoin(j *grammar.JoinAST) (ast.Operator, error) {
	opts, err := convertOptions(j.Options)
	if err != nil {
		return nil, err
	}
	rhs, err := convertTabular(j.RHS)
	if err != nil {
		return nil, err
	}
	return ast.JoinOp{Options: opts, RHS: rhs, Keys: j.Keys}, nil
}

func convertLookup(l *grammar.LookupAST) (ast.Operator, error) {
	opts, err := convertOptions(l.Options)
	if err != nil {
		return nil, err
	}
	rhs, err := convertTabular(l.RHS)
	if err != nil {
		return nil, err
	}
	return ast.LookupOp{Options: opts, RHS: rhs, Keys: l.Keys}, nil
}

func convertMvApply(m *grammar.MvApplyAST) (ast.Operator, error) {
	bindings := make([]ast.MvApplyBinding, len(m.Bindings))
	for i, b := range m.Bindings {
		binding := ast.MvApplyBinding{Column: b.Column, As: b.Column}
		if b.ToType != "" {
			typ := typeFromString(b.ToType)
			binding.Type = &typ
		}
		bindings[i] = binding
	}
	ops := make([]ast.Operator, len(m.Ops))
	for i, o := range m.Ops {
		op, err := convertOperator(o)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ast.MvApplyOp{Bindings: bindings, Operators: ops}, nil
}

func convertParse(p *grammar.ParseAST) (ast.Operator, error) {
	opts, err := convertOptions(p.Options)
	if err != nil {
		return nil, err
	}
	expr, err := convertOr(p.Expr)
	if err != nil {
		return nil, err
	}
	pattern, err := convertPatternTokens(p.Pattern)
	if err != nil {
		return nil, err
	}
	return ast.ParseOp{Options: opts, Expr: expr, Pattern: pattern}, nil
}

func convertParseWhere(p *grammar.ParseWhereAST) (ast.Operator, error) {
	opts, err := convertOptions(p.Options)
	if err != nil {
		return nil, err
	}
	expr, err := convertOr(p.Expr)
	if err != nil {
		return nil, err
	}
	pattern, err := convertPatternTokens(p.Pattern)
	if err != nil {
		return nil, err
	}
	return ast.ParseWhereOp{Options: opts, Expr: expr, Pattern: pattern}, nil
}

func convertPatternTokens(toks []*grammar.PatternTokenAST) ([]ast.PatternToken, error) {
	out := make([]ast.PatternToken, len(toks))
	for i, t := range toks {
		switch {
		case t.Wildcard:
			out[i] = ast.WildcardToken{}
		case t.Str != nil:
			out[i] = ast.StringToken{Value: unquoteString(*t.Str)}
		case t.ColumnName != nil:
			var typ *ast.Type
			if t.ColumnType != nil {
				tt := typeFromString(*t.ColumnType)
				typ = &tt
			}
			out[i] = ast.ColumnToken{Name: *t.ColumnName, Type: typ}
		default:
			return nil, ParseError{Kind: "InvalidSyntax", Message: "empty pattern token"}
		}
	}
	return out, nil
}

func convertWildcardList(list []*grammar.WildcardAST) []string {
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = convertWildcard(w)
	}
	return out
}

func convertProjectRename(p *grammar.ProjectRenameAST) (ast.Operator, error) {
	pairs := make([]ast.ProjectRenamePair, len(p.Pairs))
	for i, pr := range p.Pairs {
		pairs[i] = ast.ProjectRenamePair{NewName: pr.NewName, OldName: pr.OldName}
	}
	return ast.ProjectRenameOp{Pairs: pairs}, nil
}

func convertProjectReorder(p *grammar.ProjectReorderAST) (ast.Operator, error) {
	cols := make([]ast.ProjectReorderColumn, len(p.Columns))
	for i, c := range p.Columns {
		col := ast.ProjectReorderColumn{Wildcard: convertWildcard(c.Wildcard)}
		if c.Asc || c.Desc {
			col.Order = &ast.SortDirective{Asc: c.Asc, NullsFirst: false}
		}
		cols[i] = col
	}
	return ast.ProjectReorderOp{Columns: cols}, nil
}

func convertSummarize(s *grammar.SummarizeAST) (ast.Operator, error) {
	aggs, err := convertNamedExprList(s.Aggs)
	if err != nil {
		return nil, err
	}
	groups, err := convertNamedExprList(s.Groups)
	if err != nil {
		return nil, err
	}
	return ast.SummarizeOp{Aggs: aggs, Groups: groups}, nil
}

func convertTop(t *grammar.TopAST) (ast.Operator, error) {
	expr, err := convertOr(t.Expr)
	if err != nil {
		return nil, err
	}
	asc := t.Asc
	nullsFirst := t.NullsFirst
	return ast.TopOp{Count: uint32(t.Count), Expr: expr, Asc: asc, NullsFirst: nullsFirst}, nil
}
