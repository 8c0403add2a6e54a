// Package catalog resolves table and function names during translation.
// It plays the role of the original datafusion-kql ContextProvider/
// SessionContextProvider: the translator never touches storage directly,
// only this interface.
package catalog

import (
	"fmt"

	"github.com/ritamzico/kql/internal/plan"
)

const (
	DefaultCatalogName = "kql"
	DefaultSchemaName  = "default"
)

// TableSource describes a resolvable table's schema. Production catalogs
// back this with a real storage layer; MapCatalog's InMemoryTable is the
// in-process reference implementation used by tests and the CLI.
type TableSource interface {
	Name() string
	Schema() []plan.ColumnSchema
}

// FuncKind distinguishes which registry a resolved function lives in.
type FuncKind int

const (
	ScalarFunc FuncKind = iota
	AggregateFunc
	WindowFunc
)

// FuncSignature is what the catalog reports about a resolved function: its
// kind (which determines how the translator embeds it into the plan) and
// its result type, which may depend on the argument types supplied.
type FuncSignature struct {
	Kind       FuncKind
	ReturnType func(argTypes []plan.DataType) plan.DataType
}

// Catalog resolves the names a query can reference: tables and functions.
// Function resolution is tried in the order scalar, then aggregate, then
// window, matching the translator's dispatch order.
type Catalog interface {
	ResolveTable(name string) (TableSource, error)
	// ListTables reports every known table name, pre-enumerated at catalog
	// construction time; `find` without an explicit `in (...)` clause
	// searches this full list.
	ListTables() []string
	ResolveScalar(name string) (FuncSignature, bool)
	ResolveAggregate(name string) (FuncSignature, bool)
	ResolveWindow(name string) (FuncSignature, bool)
	// ListScalarNames, ListAggregateNames and ListWindowNames report every
	// name each registry would resolve; introspection only, the translator
	// itself never calls these (it always resolves a specific name).
	ListScalarNames() []string
	ListAggregateNames() []string
	ListWindowNames() []string
	// DefaultCatalogName and DefaultSchemaName qualify a bare table
	// reference when the plan builder needs a fully qualified name.
	DefaultCatalogName() string
	DefaultSchemaName() string
}

// TableNotFound reports a reference to an unknown table.
type TableNotFound struct {
	Name string
}

func (e TableNotFound) Error() string {
	return fmt.Sprintf("table not found: %s", e.Name)
}

// FunctionNotFound reports a call to a name no registry recognizes.
type FunctionNotFound struct {
	Name string
}

func (e FunctionNotFound) Error() string {
	return fmt.Sprintf("function not found: %s", e.Name)
}
