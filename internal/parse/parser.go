// Package parse turns KQL source text into the language-agnostic ast tree,
// via participle's grammar in internal/grammar and the tree-shaped
// conversion in convert.go/operators.go/literals.go.
package parse

import (
	"strings"

	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/grammar"
)

// Parse compiles KQL source text into a sequence of statements. An empty
// (or whitespace-only) input is reported as a dedicated EmptyInput error
// rather than the generic syntax error participle would otherwise produce
// for a missing first statement.
func Parse(text string) ([]ast.Statement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ParseError{Kind: "EmptyInput", Message: "query text is empty"}
	}

	tree, err := grammar.Parser.ParseString("", text)
	if err != nil {
		return nil, wrapSyntaxError(err)
	}

	return convertProgram(tree)
}
