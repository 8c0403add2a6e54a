package grammar

import (
	"github.com/alecthomas/participle/v2"

	"github.com/ritamzico/kql/internal/lexer"
)

// Parser is the shared KQL parser singleton, built once at package init the
// same way the teacher builds its single dslParser.
var Parser = participle.MustBuild[Program](
	participle.Lexer(lexer.Rules),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
