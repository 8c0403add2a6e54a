// Package lexer defines the token rules shared by the KQL grammar. Rule
// order matters: lexer.SimpleRule tries each rule in turn at the current
// scan position and takes the first match, so more specific patterns (Float
// before Int, hyphenated keywords before their un-hyphenated prefix, whole
// date/timespan literals before the bare digit rules they would otherwise
// be split into) must precede the patterns they would otherwise shadow.
package lexer

import "github.com/alecthomas/participle/v2/lexer"

// keywordAlternatives is ordered so that hyphenated multi-word keywords are
// tried before any keyword that is one of their word-boundary-delimited
// prefixes (e.g. "project-away" before "project"): since a hyphen is a
// non-word character, `\bproject\b` would otherwise match the "project"
// inside "project-away" and strand "-away" as invalid trailing input.
const keywordAlternatives = `project-away|project-keep|project-rename|project-reorder|project-smart|` +
	`parse-where|sample-distinct|mv-expand|mv-apply|` +
	`as|consume|count|distinct|evaluate|extend|facet|fork|getschema|join|let|lookup|` +
	`parse|project|sample|serialize|summarize|sort|take|limit|top|union|where|with|typeof|of|` +
	`datatable|externaldata|find|print|range|` +
	`by|in|on|from|to|step|kind|asc|desc|nulls|first|last|and|or|true|false|null|` +
	`bool|int|long|real|decimal|string|datetime|timespan|dynamic`

// dateTimeAlternatives recognizes a whole ISO-8601 or RFC-822/850 timestamp
// as one token, so that it is never split by the digit-only Int/Float rules.
// Scoped to appear only inside a `datetime(...)` wrapper by the grammar, not
// by the lexer itself (the lexer has no notion of "inside parens").
const dateTimeAlternatives = `\d{4}-\d{2}-\d{2}(?:[T ]\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?)?(?:Z|[+-]\d{2}:?\d{2})?` +
	`|[A-Za-z]{3,9},\s*\d{1,2}[- ][A-Za-z]{3,9}[- ]\d{2,4}\s+\d{1,2}:\d{2}(?::\d{2})?\s*(?:[+-]\d{2}:?\d{2}|[A-Za-z]{2,5})?` +
	`|\d{1,2}[- ][A-Za-z]{3,9}[- ]\d{2,4}\s+\d{1,2}:\d{2}(?::\d{2})?\s*(?:[+-]\d{2}:?\d{2}|[A-Za-z]{2,5})?`

// Rules is the shared KQL lexer. Keyword matching is case-insensitive; see
// participle.CaseInsensitive("Keyword") at grammar build time.
var Rules = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(` + keywordAlternatives + `)\b`},
	{Name: "DateTimeLit", Pattern: dateTimeAlternatives},
	{Name: "ColonTimespanLit", Pattern: `\d+\.\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?|\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?`},
	{Name: "TimespanLit", Pattern: `\d+(?:\.\d+)?(?:micro|tick|ms|d|h|m|s)`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "CmpOp", Pattern: `[!=<>]+`},
	{Name: "ArithOp", Pattern: `[+\-*/%]`},
	{Name: "Punct", Pattern: `[(),\[\]{}:;|.]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
