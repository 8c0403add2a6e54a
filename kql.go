// Package kql parses and translates KQL-style pipeline queries into a
// relational logical plan, the way a query engine's front end would before
// handing off to an optimizer/executor.
package kql

import (
	"github.com/ritamzico/kql/internal/ast"
	"github.com/ritamzico/kql/internal/catalog"
	"github.com/ritamzico/kql/internal/parse"
	"github.com/ritamzico/kql/internal/plan"
	"github.com/ritamzico/kql/internal/translate"
)

type (
	Statement  = ast.Statement
	LogicalPlan = plan.LogicalPlan
	Catalog     = catalog.Catalog
	ParseError  = parse.ParseError
	TranslateError = translate.TranslateError
)

// MapCatalog is the in-memory reference Catalog implementation: callers
// register tables up front and get the standard built-in function
// registries for free.
type MapCatalog = catalog.MapCatalog

// InMemoryTable is a fixed name/schema TableSource with no backing storage.
type InMemoryTable = catalog.InMemoryTable

// NewMapCatalog builds a MapCatalog pre-populated with the given tables.
func NewMapCatalog(tables ...catalog.TableSource) *MapCatalog {
	return catalog.NewMapCatalog(tables...)
}

// Parse lexes and parses query text into its statement sequence, without
// resolving any table or function names.
func Parse(text string) ([]ast.Statement, error) {
	return parse.Parse(text)
}

// Translate parses and then lowers query text into a single LogicalPlan,
// resolving every name against cat.
func Translate(text string, cat Catalog) (LogicalPlan, error) {
	stmts, err := parse.Parse(text)
	if err != nil {
		return nil, err
	}
	return translate.TranslateProgram(stmts, cat)
}

// TranslateProgram lowers an already-parsed statement sequence into a
// single LogicalPlan, resolving every name against cat.
func TranslateProgram(stmts []ast.Statement, cat Catalog) (LogicalPlan, error) {
	return translate.TranslateProgram(stmts, cat)
}
