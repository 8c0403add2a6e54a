package ast

// Type enumerates the KQL scalar types used in schema declarations and
// type-annotated parse patterns.
type Type int

const (
	TypeBool Type = iota
	TypeDateTime
	TypeDynamic
	TypeInt
	TypeLong
	TypeReal
	TypeDecimal
	TypeString
	TypeTimespan
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeDateTime:
		return "datetime"
	case TypeDynamic:
		return "dynamic"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeReal:
		return "real"
	case TypeDecimal:
		return "decimal"
	case TypeString:
		return "string"
	case TypeTimespan:
		return "timespan"
	default:
		return "unknown"
	}
}

// Literal is a typed, null-capable scalar value. Exactly one Kind-matching
// field is meaningful; Valid reports whether the literal carries a value
// (false models the typed-null case, e.g. `long(null)`).
type Literal struct {
	Kind LiteralKind

	Valid bool // irrelevant for KindString, which is never null

	Bool     bool
	Int32    int32
	Int64    int64
	Real     float32
	Decimal  float64
	String   string
	Timespan int64 // nanoseconds
	DateTime DateTime
	Dynamic  Dynamic
}

type LiteralKind int

const (
	KindBool LiteralKind = iota
	KindInt32
	KindInt64
	KindReal
	KindDecimal
	KindString
	KindTimespan
	KindDateTime
	KindDynamic
)

// DateTime is a decomposed timestamp; sub-second precision is not
// representable here, only through a Timespan.
type DateTime struct {
	Year, Month, Day       int
	Hour, Minute, Second   int
	Timezone               *string
}

// Dynamic is a JSON-like recursive value.
type Dynamic struct {
	Kind       DynamicKind
	Bool       *bool
	Int        *int32
	Long       *int64
	Real       *float32
	String     string
	Timespan   *int64
	DateTime   *DateTime
	Array      []*Dynamic
	Dictionary map[string]*Dynamic
}

type DynamicKind int

const (
	DynamicArray DynamicKind = iota
	DynamicDictionary
	DynamicBool
	DynamicInt
	DynamicLong
	DynamicReal
	DynamicString
	DynamicTimespan
	DynamicDateTime
	DynamicNull
)

// PatternToken is one element of a parse/parse-where pattern.
type PatternToken interface {
	isPatternToken()
}

type WildcardToken struct{}

func (WildcardToken) isPatternToken() {}

type StringToken struct {
	Value string
}

func (StringToken) isPatternToken() {}

type ColumnToken struct {
	Name string
	Type *Type
}

func (ColumnToken) isPatternToken() {}
