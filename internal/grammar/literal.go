package grammar

// TypedLiteralAST covers the type-tagged literal constructors. Each wraps
// its own specialized inner grammar rather than a general expression: this
// is what lets int(...)/long(...) accept a leading "-" sign (a bare
// expression atom cannot, since a leading "-" there would be ambiguous with
// binary subtraction) and lets datetime(...)/timespan(...) accept the
// dedicated whole-literal tokens captured by the lexer.
type TypedLiteralAST struct {
	Bool     *BoolBodyAST     `parser:"\"bool\" \"(\" @@ \")\""`
	Int      *IntBodyAST      `parser:"| \"int\" \"(\" @@ \")\""`
	Long     *IntBodyAST      `parser:"| \"long\" \"(\" @@ \")\""`
	Real     *RealBodyAST     `parser:"| \"real\" \"(\" @@ \")\""`
	Decimal  *RealBodyAST     `parser:"| \"decimal\" \"(\" @@ \")\""`
	DateTime *DateTimeBodyAST `parser:"| \"datetime\" \"(\" @@ \")\""`
	Timespan *TimespanBodyAST `parser:"| \"timespan\" \"(\" @@ \")\""`
	Dynamic  *JSONValueAST    `parser:"| \"dynamic\" \"(\" @@ \")\""`
}

type BoolBodyAST struct {
	True  bool `parser:"  @\"true\""`
	False bool `parser:"| @\"false\""`
	Null  bool `parser:"| @\"null\""`
}

// SignedIntAST: an optional leading "-" followed by a hex or decimal digit
// run.
type SignedIntAST struct {
	Neg bool    `parser:"( @\"-\" )?"`
	Hex *string `parser:"(  @Hex"`
	Dec *string `parser:"| @Int )"`
}

type IntBodyAST struct {
	Null  bool          `parser:"  @\"null\""`
	Value *SignedIntAST `parser:"| @@"`
}

// SignedRealAST: an optional leading "-" followed by a float or plain
// integer literal.
type SignedRealAST struct {
	Neg   bool    `parser:"( @\"-\" )?"`
	Float *string `parser:"(  @Float"`
	Int   *string `parser:"| @Int )"`
}

type RealBodyAST struct {
	Null  bool           `parser:"  @\"null\""`
	Value *SignedRealAST `parser:"| @@"`
}

// DateTimeBodyAST wraps the single whole-timestamp token the lexer
// recognizes (ISO-8601 or RFC-822/850 shaped).
type DateTimeBodyAST struct {
	Null  bool    `parser:"  @\"null\""`
	Value *string `parser:"| @DateTimeLit"`
}

// SignedTimespanAST: an optional leading "-" followed by either suffix form
// (e.g. "1.5h") or colon form (e.g. "01:30:00").
type SignedTimespanAST struct {
	Neg    bool    `parser:"( @\"-\" )?"`
	Suffix *string `parser:"(  @TimespanLit"`
	Colon  *string `parser:"| @ColonTimespanLit )"`
}

type TimespanBodyAST struct {
	Null  bool               `parser:"  @\"null\""`
	Value *SignedTimespanAST `parser:"| @@"`
}

// JSONValueAST is a minimal strict-JSON grammar used only to delimit and
// tokenize a dynamic(...) literal's payload; convert.go walks it directly
// into an ast.Dynamic value.
type JSONValueAST struct {
	Object *JSONObjectAST `parser:"  @@"`
	Array  *JSONArrayAST  `parser:"| @@"`
	Str    *string        `parser:"| @String"`
	Float  *string        `parser:"| @Float"`
	Int    *string        `parser:"| @Int"`
	True   bool           `parser:"| @\"true\""`
	False  bool           `parser:"| @\"false\""`
	Null   bool           `parser:"| @\"null\""`
}

type JSONObjectAST struct {
	Fields []*JSONFieldAST `parser:"\"{\" (@@ (\",\" @@)*)? \"}\""`
}

type JSONFieldAST struct {
	Key   string        `parser:"@String \":\""`
	Value *JSONValueAST `parser:"@@"`
}

type JSONArrayAST struct {
	Values []*JSONValueAST `parser:"\"[\" (@@ (\",\" @@)*)? \"]\""`
}
