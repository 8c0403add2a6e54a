package parse

import (
	"strconv"
	"strings"

	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/grammar"
)

// convertProgram walks every top-level statement of a parsed grammar tree
// into the language-agnostic ast.Statement list.
func convertProgram(p *grammar.Program) ([]ast.Statement, error) {
	out := make([]ast.Statement, len(p.Statements))
	for i, s := range p.Statements {
		stmt, err := convertStatement(s)
		if err != nil {
			return nil, err
		}
		out[i] = stmt
	}
	return out, nil
}

func convertStatement(s *grammar.StatementAST) (ast.Statement, error) {
	if s.Let != nil {
		return convertLetStatement(s.Let)
	}
	tab, err := convertTabular(s.Tabular)
	if err != nil {
		return nil, err
	}
	return ast.TabularExpressionStatement{Expr: tab}, nil
}

func convertLetStatement(s *grammar.LetStmtAST) (ast.Statement, error) {
	if s.Tab != nil {
		tab, err := convertTabular(s.Tab)
		if err != nil {
			return nil, err
		}
		return ast.LetStatement{Name: s.Name, Expr: ast.LetTabular{Expr: tab}}, nil
	}
	expr, err := convertOr(s.Scalar)
	if err != nil {
		return nil, err
	}
	return ast.LetStatement{Name: s.Name, Expr: ast.LetScalar{Expr: expr}}, nil
}

func convertTabular(t *grammar.TabularAST) (ast.TabularExpression, error) {
	src, err := convertSource(t.Source)
	if err != nil {
		return ast.TabularExpression{}, err
	}
	ops := make([]ast.Operator, len(t.Operators))
	for i, o := range t.Operators {
		op, err := convertOperator(o)
		if err != nil {
			return ast.TabularExpression{}, err
		}
		ops[i] = op
	}
	return ast.TabularExpression{Source: src, Operators: ops}, nil
}

// ---- sources ----

func convertSource(s *grammar.SourceAST) (ast.Source, error) {
	switch {
	case s.Datatable != nil:
		return convertDatatable(s.Datatable)
	case s.Externaldata != nil:
		return convertExternaldata(s.Externaldata)
	case s.Find != nil:
		return convertFind(s.Find)
	case s.Print != nil:
		return convertPrint(s.Print)
	case s.Range != nil:
		return convertRange(s.Range)
	case s.Union != nil:
		return convertUnionSource(s.Union)
	case s.Reference != nil:
		return ast.ReferenceSource{Name: *s.Reference}, nil
	default:
		return nil, ParseError{Kind: "InvalidSyntax", Message: "empty source"}
	}
}

func convertDatatable(d *grammar.DatatableAST) (ast.Source, error) {
	schema := make([]ast.ColumnDecl, len(d.Schema))
	for i, c := range d.Schema {
		schema[i] = convertColumnDecl(c)
	}
	values := make([]ast.Expr, len(d.Values))
	for i, v := range d.Values {
		expr, err := convertOr(v)
		if err != nil {
			return nil, err
		}
		values[i] = expr
	}
	// Row-count validation happens at translate time (translateDatatable),
	// where a mismatch is a SchemaError, not a parse-time syntax error: the
	// grammar accepts any bracketed value list regardless of arity.
	return ast.DatatableSource{Schema: schema, Values: values}, nil
}

func convertExternaldata(e *grammar.ExternaldataAST) (ast.Source, error) {
	schema := make([]ast.ColumnDecl, len(e.Schema))
	for i, c := range e.Schema {
		schema[i] = convertColumnDecl(c)
	}
	urls := make([]string, len(e.URLs))
	for i, u := range e.URLs {
		urls[i] = unquoteString(u)
	}
	return ast.ExternaldataSource{Schema: schema, URLs: urls}, nil
}

func convertPrint(p *grammar.PrintAST) (ast.Source, error) {
	exprs, err := convertNamedExprList(p.Exprs)
	if err != nil {
		return nil, err
	}
	return ast.PrintSource{Exprs: exprs}, nil
}

func convertRange(r *grammar.RangeAST) (ast.Source, error) {
	from, err := convertOr(r.From)
	if err != nil {
		return nil, err
	}
	to, err := convertOr(r.To)
	if err != nil {
		return nil, err
	}
	step, err := convertOr(r.Step)
	if err != nil {
		return nil, err
	}
	return ast.RangeSource{Column: r.Column, From: from, To: to, Step: step}, nil
}

func convertFind(f *grammar.FindAST) (ast.Source, error) {
	opts, err := convertOptions(f.Options)
	if err != nil {
		return nil, err
	}

	var inSources []ast.Source
	var predicate ast.Expr
	if f.InClause != nil {
		inSources = make([]ast.Source, len(f.InClause.Sources))
		for i, s := range f.InClause.Sources {
			src, err := convertSource(s)
			if err != nil {
				return nil, err
			}
			inSources[i] = src
		}
		predicate, err = convertOr(f.InClause.Predicate)
	} else {
		predicate, err = convertOr(f.Predicate)
	}
	if err != nil {
		return nil, err
	}

	var proj ast.FindProjection = ast.FindProjectSmart{}
	if len(f.ProjectCols) > 0 {
		proj = ast.FindProject{Columns: f.ProjectCols}
	}

	return ast.FindSource{Options: opts, InSources: inSources, Predicate: predicate, Projection: proj}, nil
}

func convertUnionSource(u *grammar.UnionSourceAST) (ast.Source, error) {
	opts, sources, err := convertUnionBody(u.Body)
	if err != nil {
		return nil, err
	}
	return ast.UnionSource{Options: opts, Sources: sources}, nil
}

func convertUnionBody(b *grammar.UnionBodyAST) (ast.Options, []ast.Source, error) {
	opts, err := convertOptions(b.Options)
	if err != nil {
		return nil, nil, err
	}
	sources := make([]ast.Source, len(b.Sources))
	for i, item := range b.Sources {
		if item.Nested != nil {
			tab, err := convertTabular(item.Nested)
			if err != nil {
				return nil, nil, err
			}
			sources[i] = ast.PipelineSource{Pipeline: tab}
		} else {
			sources[i] = ast.ReferenceSource{Name: *item.Name}
		}
	}
	return opts, sources, nil
}

// ---- shared fragments ----

func convertColumnDecl(c *grammar.ColumnDeclAST) ast.ColumnDecl {
	return ast.ColumnDecl{Name: c.Name, Type: typeFromString(c.Type)}
}

func typeFromString(s string) ast.Type {
	switch s {
	case "bool":
		return ast.TypeBool
	case "datetime":
		return ast.TypeDateTime
	case "dynamic":
		return ast.TypeDynamic
	case "int":
		return ast.TypeInt
	case "long":
		return ast.TypeLong
	case "real":
		return ast.TypeReal
	case "decimal":
		return ast.TypeDecimal
	case "string":
		return ast.TypeString
	case "timespan":
		return ast.TypeTimespan
	default:
		return ast.TypeString
	}
}

func convertNamedExpr(n *grammar.NamedExprAST) (ast.NamedExpr, error) {
	expr, err := convertOr(n.Expr)
	if err != nil {
		return ast.NamedExpr{}, err
	}
	return ast.NamedExpr{Name: n.Name, Expr: expr}, nil
}

func convertNamedExprList(list []*grammar.NamedExprAST) ([]ast.NamedExpr, error) {
	out := make([]ast.NamedExpr, len(list))
	for i, n := range list {
		ne, err := convertNamedExpr(n)
		if err != nil {
			return nil, err
		}
		out[i] = ne
	}
	return out, nil
}

func convertOptions(opts []*grammar.OptionAST) (ast.Options, error) {
	if len(opts) == 0 {
		return nil, nil
	}
	m := make(ast.Options, len(opts))
	for _, o := range opts {
		m[o.Key] = convertOptionValue(o.Value)
	}
	return m, nil
}

func convertOptionValue(v *grammar.OptionValueAST) ast.OptionLiteral {
	switch {
	case v.Bool != nil:
		return ast.OptionBool(strings.EqualFold(*v.Bool, "true"))
	case v.Long != nil:
		return ast.OptionLong(*v.Long)
	case v.Str != nil:
		return ast.OptionString(unquoteString(*v.Str))
	case v.Name != nil:
		return ast.OptionString(*v.Name)
	default:
		return ast.OptionString("")
	}
}

func convertWildcard(w *grammar.WildcardAST) string {
	return strings.Join(w.Parts, "")
}

// unquoteString strips the surrounding quote characters from a lexed String
// token and resolves backslash escapes; it accepts both double and single
// quoted forms, unlike strconv.Unquote.
func unquoteString(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	inner := lit[1 : len(lit)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ---- expressions ----

func convertOr(o *grammar.OrExprAST) (ast.Expr, error) {
	left, err := convertAnd(o.Left)
	if err != nil {
		return nil, err
	}
	if o.Right == nil {
		return left, nil
	}
	right, err := convertOr(o.Right)
	if err != nil {
		return nil, err
	}
	return ast.BinaryExpr{Op: ast.OpOr, Left: left, Right: right}, nil
}

func convertAnd(a *grammar.AndExprAST) (ast.Expr, error) {
	left, err := convertPredicate(a.Left)
	if err != nil {
		return nil, err
	}
	if a.Right == nil {
		return left, nil
	}
	right, err := convertAnd(a.Right)
	if err != nil {
		return nil, err
	}
	return ast.BinaryExpr{Op: ast.OpAnd, Left: left, Right: right}, nil
}

func convertPredicate(p *grammar.PredicateExprAST) (ast.Expr, error) {
	left, err := convertAddSub(p.Left)
	if err != nil {
		return nil, err
	}
	for _, opNode := range p.Ops {
		right, err := convertAddSub(opNode.Right)
		if err != nil {
			return nil, err
		}
		op, err := mapCmpOp(opNode.Op)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func mapCmpOp(tok string) (ast.BinOp, error) {
	switch tok {
	case "==":
		return ast.OpEquals, nil
	case "!=":
		return ast.OpNotEquals, nil
	case "<":
		return ast.OpLess, nil
	case ">":
		return ast.OpGreater, nil
	case "<=":
		return ast.OpLessOrEqual, nil
	case ">=":
		return ast.OpGreaterOrEqual, nil
	default:
		return 0, ParseError{Kind: "InvalidOperator", Message: "unknown comparison operator: " + tok}
	}
}

func convertAddSub(a *grammar.AddSubExprAST) (ast.Expr, error) {
	left, err := convertMulDiv(a.Left)
	if err != nil {
		return nil, err
	}
	for _, opNode := range a.Ops {
		right, err := convertMulDiv(opNode.Right)
		if err != nil {
			return nil, err
		}
		op := ast.OpAdd
		if opNode.Op == "-" {
			op = ast.OpSub
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func convertMulDiv(m *grammar.MulDivExprAST) (ast.Expr, error) {
	left, err := convertAtom(m.Left)
	if err != nil {
		return nil, err
	}
	for _, opNode := range m.Ops {
		right, err := convertAtom(opNode.Right)
		if err != nil {
			return nil, err
		}
		var op ast.BinOp
		switch opNode.Op {
		case "*":
			op = ast.OpMul
		case "/":
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func convertAtom(a *grammar.AtomAST) (ast.Expr, error) {
	switch {
	case a.Paren != nil:
		return convertOr(a.Paren)
	case a.TypedLit != nil:
		lit, err := convertTypedLiteral(a.TypedLit)
		if err != nil {
			return nil, err
		}
		return ast.LiteralExpr{Value: lit}, nil
	case a.Func != nil:
		return convertFuncCall(a.Func)
	case a.Literal != nil:
		lit, err := convertBareLiteral(a.Literal)
		if err != nil {
			return nil, err
		}
		return ast.LiteralExpr{Value: lit}, nil
	case a.Ident != nil:
		return ast.Ident{Name: *a.Ident}, nil
	default:
		return nil, ParseError{Kind: "InvalidSyntax", Message: "empty expression atom"}
	}
}

func convertFuncCall(f *grammar.FuncCallAST) (ast.Expr, error) {
	args := make([]ast.Expr, len(f.Args))
	for i, a := range f.Args {
		expr, err := convertOr(a)
		if err != nil {
			return nil, err
		}
		args[i] = expr
	}
	return ast.FuncCall{Name: f.Name, Args: args}, nil
}

func convertBareLiteral(l *grammar.LiteralAST) (ast.Literal, error) {
	switch {
	case l.True:
		return ast.Literal{Kind: ast.KindBool, Valid: true, Bool: true}, nil
	case l.False:
		return ast.Literal{Kind: ast.KindBool, Valid: true, Bool: false}, nil
	case l.Null:
		return ast.Literal{Kind: ast.KindDynamic, Valid: false}, nil
	case l.Hex != nil:
		n, err := strconv.ParseInt(*l.Hex, 0, 64)
		if err != nil {
			return ast.Literal{}, ParseError{Kind: "InvalidInteger", Message: err.Error()}
		}
		return ast.Literal{Kind: ast.KindInt64, Valid: true, Int64: n}, nil
	case l.Float != nil:
		f, err := strconv.ParseFloat(*l.Float, 64)
		if err != nil {
			return ast.Literal{}, ParseError{Kind: "InvalidReal", Message: err.Error()}
		}
		return ast.Literal{Kind: ast.KindReal, Valid: true, Real: float32(f)}, nil
	case l.Int != nil:
		n, err := strconv.ParseInt(*l.Int, 10, 64)
		if err != nil {
			return ast.Literal{}, ParseError{Kind: "InvalidInteger", Message: err.Error()}
		}
		return ast.Literal{Kind: ast.KindInt64, Valid: true, Int64: n}, nil
	case l.Str != nil:
		return ast.Literal{Kind: ast.KindString, Valid: true, String: unquoteString(*l.Str)}, nil
	default:
		return ast.Literal{}, ParseError{Kind: "InvalidSyntax", Message: "empty literal"}
	}
}

// ---- typed literal wrappers ----

func convertTypedLiteral(t *grammar.TypedLiteralAST) (ast.Literal, error) {
	switch {
	case t.Bool != nil:
		return convertBoolBody(t.Bool)
	case t.Int != nil:
		v, valid, err := convertIntBody(t.Int)
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.KindInt32, Valid: valid, Int32: int32(v)}, nil
	case t.Long != nil:
		v, valid, err := convertIntBody(t.Long)
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.KindInt64, Valid: valid, Int64: v}, nil
	case t.Real != nil:
		v, valid, err := convertRealBody(t.Real)
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.KindReal, Valid: valid, Real: float32(v)}, nil
	case t.Decimal != nil:
		v, valid, err := convertRealBody(t.Decimal)
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.KindDecimal, Valid: valid, Decimal: v}, nil
	case t.DateTime != nil:
		if t.DateTime.Null {
			return ast.Literal{Kind: ast.KindDateTime, Valid: false}, nil
		}
		dt, err := parseDateTime(*t.DateTime.Value)
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.KindDateTime, Valid: true, DateTime: dt}, nil
	case t.Timespan != nil:
		if t.Timespan.Null {
			return ast.Literal{Kind: ast.KindTimespan, Valid: false}, nil
		}
		ns, err := parseSignedTimespan(t.Timespan.Value)
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.KindTimespan, Valid: true, Timespan: ns}, nil
	case t.Dynamic != nil:
		if t.Dynamic.Null {
			return ast.Literal{Kind: ast.KindDynamic, Valid: false}, nil
		}
		dyn, err := convertJSONValue(t.Dynamic)
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.KindDynamic, Valid: true, Dynamic: *dyn}, nil
	default:
		return ast.Literal{}, ParseError{Kind: "InvalidSyntax", Message: "empty typed literal"}
	}
}

func convertBoolBody(b *grammar.BoolBodyAST) (ast.Literal, error) {
	if b.Null {
		return ast.Literal{Kind: ast.KindBool, Valid: false}, nil
	}
	return ast.Literal{Kind: ast.KindBool, Valid: true, Bool: b.True}, nil
}

func convertIntBody(b *grammar.IntBodyAST) (int64, bool, error) {
	if b.Null {
		return 0, false, nil
	}
	v, err := parseSignedInt(b.Value)
	return v, true, err
}

func convertRealBody(b *grammar.RealBodyAST) (float64, bool, error) {
	if b.Null {
		return 0, false, nil
	}
	v, err := parseSignedReal(b.Value)
	return v, true, err
}

func parseSignedInt(s *grammar.SignedIntAST) (int64, error) {
	var v int64
	var err error
	if s.Hex != nil {
		v, err = strconv.ParseInt(*s.Hex, 0, 64)
	} else {
		v, err = strconv.ParseInt(*s.Dec, 10, 64)
	}
	if err != nil {
		return 0, ParseError{Kind: "InvalidInteger", Message: err.Error()}
	}
	if s.Neg {
		v = -v
	}
	return v, nil
}

func parseSignedReal(s *grammar.SignedRealAST) (float64, error) {
	var v float64
	var err error
	if s.Float != nil {
		v, err = strconv.ParseFloat(*s.Float, 64)
	} else {
		v, err = strconv.ParseFloat(*s.Int, 64)
	}
	if err != nil {
		return 0, ParseError{Kind: "InvalidReal", Message: err.Error()}
	}
	if s.Neg {
		v = -v
	}
	return v, nil
}

func parseSignedTimespan(s *grammar.SignedTimespanAST) (int64, error) {
	var ns int64
	var err error
	if s.Suffix != nil {
		ns, err = parseTimespanSuffix(*s.Suffix)
	} else {
		ns, err = parseTimespanColon(*s.Colon)
	}
	if err != nil {
		return 0, err
	}
	if s.Neg {
		ns = -ns
	}
	return ns, nil
}

// ---- dynamic(...) payload ----

func convertJSONValue(v *grammar.JSONValueAST) (*ast.Dynamic, error) {
	switch {
	case v.Object != nil:
		dict := make(map[string]*ast.Dynamic, len(v.Object.Fields))
		for _, f := range v.Object.Fields {
			val, err := convertJSONValue(f.Value)
			if err != nil {
				return nil, err
			}
			dict[unquoteString(f.Key)] = val
		}
		return &ast.Dynamic{Kind: ast.DynamicDictionary, Dictionary: dict}, nil
	case v.Array != nil:
		arr := make([]*ast.Dynamic, len(v.Array.Values))
		for i, e := range v.Array.Values {
			val, err := convertJSONValue(e)
			if err != nil {
				return nil, err
			}
			arr[i] = val
		}
		return &ast.Dynamic{Kind: ast.DynamicArray, Array: arr}, nil
	case v.Str != nil:
		return &ast.Dynamic{Kind: ast.DynamicString, String: unquoteString(*v.Str)}, nil
	case v.Float != nil:
		f, err := strconv.ParseFloat(*v.Float, 64)
		if err != nil {
			return nil, ParseError{Kind: "InvalidDynamic", Message: err.Error()}
		}
		f32 := float32(f)
		return &ast.Dynamic{Kind: ast.DynamicReal, Real: &f32}, nil
	case v.Int != nil:
		n, err := strconv.ParseInt(*v.Int, 10, 64)
		if err != nil {
			return nil, ParseError{Kind: "InvalidDynamic", Message: err.Error()}
		}
		return &ast.Dynamic{Kind: ast.DynamicLong, Long: &n}, nil
	case v.True:
		b := true
		return &ast.Dynamic{Kind: ast.DynamicBool, Bool: &b}, nil
	case v.False:
		b := false
		return &ast.Dynamic{Kind: ast.DynamicBool, Bool: &b}, nil
	case v.Null:
		return &ast.Dynamic{Kind: ast.DynamicNull}, nil
	default:
		return nil, ParseError{Kind: "InvalidDynamic", Message: "empty dynamic value"}
	}
}
