package translate

import "fmt"

// TranslateError reports a semantic (as opposed to syntax) error raised
// while lowering an ast tree into a LogicalPlan, using the same Kind/
// Message shape as parse.ParseError.
type TranslateError struct {
	Kind    string
	Message string
}

func (e TranslateError) Error() string {
	return fmt.Sprintf("translate error (%s): %s", e.Kind, e.Message)
}
