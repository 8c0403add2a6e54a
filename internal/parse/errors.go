package parse

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// ParseError reports a syntax error with the 1-based line/column at which
// it occurred, mirroring the teacher's Kind/Message error shape.
type ParseError struct {
	Kind    string
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("parse error (%s) at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
}

// wrapSyntaxError adapts a raw participle error into a ParseError, pulling
// out position information when participle supplies it.
func wrapSyntaxError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return ParseError{
			Kind:    "InvalidSyntax",
			Message: perr.Message(),
			Line:    pos.Line,
			Column:  pos.Column,
		}
	}
	return ParseError{Kind: "InvalidSyntax", Message: err.Error()}
}
