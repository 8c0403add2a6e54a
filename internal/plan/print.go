package plan

import (
	"fmt"
	"strings"
)

// Format renders a LogicalPlan tree as an indented, human-readable outline,
// the way an EXPLAIN output would. It exists purely for the CLI glue layer
// (execution is out of scope for this module) and carries no semantics of
// its own: it just walks Children() and prints each node's distinguishing
// fields next to its output schema.
func Format(p LogicalPlan) string {
	var b strings.Builder
	formatNode(&b, p, 0)
	return b.String()
}

func formatNode(b *strings.Builder, p LogicalPlan, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s %s\n", indent, describe(p), schemaString(p.Schema()))
	for _, c := range p.Children() {
		formatNode(b, c, depth+1)
	}
}

func schemaString(cols []ColumnSchema) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = fmt.Sprintf("%s:%s", c.Name, c.Type)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func describe(p LogicalPlan) string {
	switch n := p.(type) {
	case *Scan:
		return fmt.Sprintf("Scan(%s)", n.Qualified)
	case *Values:
		return fmt.Sprintf("Values(%d rows)", len(n.Rows))
	case *Filter:
		return fmt.Sprintf("Filter(%s)", exprString(n.Predicate))
	case *Projection:
		return "Projection"
	case *Aggregate:
		return fmt.Sprintf("Aggregate(groups=%d, aggs=%d)", len(n.GroupExprs), len(n.AggExprs))
	case *Window:
		return fmt.Sprintf("Window(%d exprs)", len(n.WindowExprs))
	case *Join:
		return fmt.Sprintf("Join(kind=%d, keys=%v)", n.Kind, n.Keys)
	case *Unnest:
		return fmt.Sprintf("Unnest(%s)", n.Column)
	case *Sort:
		return "Sort"
	case *Limit:
		return fmt.Sprintf("Limit(skip=%d, fetch=%d)", n.Skip, n.Count)
	case *Range:
		return fmt.Sprintf("Range(%s)", n.Column)
	case *Union:
		return fmt.Sprintf("Union(%d inputs)", len(n.Inputs))
	default:
		return fmt.Sprintf("%T", p)
	}
}

func exprString(e Expr) string {
	switch n := e.(type) {
	case Column:
		return n.Name
	case Literal:
		return fmt.Sprintf("%v", n.Value)
	case BinaryOp:
		return fmt.Sprintf("(%s %v %s)", exprString(n.Left), n.Op, exprString(n.Right))
	case ScalarFunc:
		return fmt.Sprintf("%s(...)", n.Name)
	case AggregateFunc:
		return fmt.Sprintf("%s(...)", n.Name)
	case WindowFunc:
		return fmt.Sprintf("%s(...)", n.Name)
	case Alias:
		return fmt.Sprintf("%s AS %s", exprString(n.Expr), n.Name)
	default:
		return fmt.Sprintf("%v", e)
	}
}
