// Package plan defines the LogicalPlan tree the translator produces:
// engine-facing relational nodes and the scalar/aggregate/window expression
// nodes they carry, independent of any particular execution engine.
package plan

import "github.com/ritamzico/kql/internal/ast"

// DataType is the engine-level type a column or expression carries, after
// lowering from the surface ast.Type.
type DataType int

const (
	Bool DataType = iota
	Int32
	Int64
	Float32
	Float64 // also used for the Decimal literal kind; see DESIGN.md
	String
	Timestamp
	Duration
	Dynamic
	Unknown
)

func (d DataType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int32:
		return "int"
	case Int64:
		return "long"
	case Float32:
		return "real"
	case Float64:
		return "decimal"
	case String:
		return "string"
	case Timestamp:
		return "datetime"
	case Duration:
		return "timespan"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ArrowName reports the underlying columnar engine's type name for d, the
// way getschema's DataType column surfaces it (distinct from the KQL type
// name String() reports for the ColumnType column). Bool/Int32/Int64/
// Float32/Float64/String/Duration follow the arrow-schema::DataType names
// the original system maps each KQL type to; Timestamp and Dynamic have no
// equivalent in that mapping (the distilled type table omits both), so they
// use the closest arrow-schema shapes: a nanosecond timestamp and a JSON-
// encoded Utf8 column respectively.
func (d DataType) ArrowName() string {
	switch d {
	case Bool:
		return "Boolean"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case String:
		return "Utf8"
	case Timestamp:
		return "Timestamp(Nanosecond, None)"
	case Duration:
		return "Duration(Nanosecond)"
	case Dynamic:
		return "Utf8"
	default:
		return "Unknown"
	}
}

// FromASTType lowers a schema-declaration type into its engine DataType.
func FromASTType(t ast.Type) DataType {
	switch t {
	case ast.TypeBool:
		return Bool
	case ast.TypeInt:
		return Int32
	case ast.TypeLong:
		return Int64
	case ast.TypeReal:
		return Float32
	case ast.TypeDecimal:
		return Float64
	case ast.TypeString:
		return String
	case ast.TypeDateTime:
		return Timestamp
	case ast.TypeTimespan:
		return Duration
	case ast.TypeDynamic:
		return Dynamic
	default:
		return Unknown
	}
}

// FromLiteralKind lowers a parsed literal's kind into its engine DataType.
func FromLiteralKind(k ast.LiteralKind) DataType {
	switch k {
	case ast.KindBool:
		return Bool
	case ast.KindInt32:
		return Int32
	case ast.KindInt64:
		return Int64
	case ast.KindReal:
		return Float32
	case ast.KindDecimal:
		return Float64
	case ast.KindString:
		return String
	case ast.KindTimespan:
		return Duration
	case ast.KindDateTime:
		return Timestamp
	case ast.KindDynamic:
		return Dynamic
	default:
		return Unknown
	}
}

// ColumnSchema names and types one output column of a LogicalPlan node.
type ColumnSchema struct {
	Name string
	Type DataType
}
