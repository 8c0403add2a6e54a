package catalog

import "github.com/ritamzico/kql/internal/plan"

// InMemoryTable is the simplest possible TableSource: a fixed name and
// schema, no backing storage. cmd/kql registers one of these per --file
// flag; tests build them directly.
type InMemoryTable struct {
	NameField    string
	ColumnsField []plan.ColumnSchema
}

func (t InMemoryTable) Name() string                  { return t.NameField }
func (t InMemoryTable) Schema() []plan.ColumnSchema    { return t.ColumnsField }

// MapCatalog is the in-memory reference Catalog: tables are pre-enumerated
// at construction (mirroring the original system's SessionContextProvider,
// which snapshots its table list up front rather than resolving lazily
// against live storage), and the three function registries are populated
// with a fixed built-in set.
type MapCatalog struct {
	tables    map[string]TableSource
	scalars   map[string]FuncSignature
	aggregates map[string]FuncSignature
	windows   map[string]FuncSignature
}

// NewMapCatalog builds a catalog pre-populated with the given tables and
// the standard built-in function registries.
func NewMapCatalog(tables ...TableSource) *MapCatalog {
	c := &MapCatalog{
		tables:     make(map[string]TableSource, len(tables)),
		scalars:    builtinScalars(),
		aggregates: builtinAggregates(),
		windows:    builtinWindows(),
	}
	for _, t := range tables {
		c.tables[t.Name()] = t
	}
	return c
}

// AddTable registers an additional table, overwriting any existing entry
// under the same name.
func (c *MapCatalog) AddTable(t TableSource) {
	c.tables[t.Name()] = t
}

func (c *MapCatalog) ResolveTable(name string) (TableSource, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, TableNotFound{Name: name}
	}
	return t, nil
}

func (c *MapCatalog) ListTables() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	return names
}

func (c *MapCatalog) ResolveScalar(name string) (FuncSignature, bool) {
	sig, ok := c.scalars[name]
	return sig, ok
}

func (c *MapCatalog) ResolveAggregate(name string) (FuncSignature, bool) {
	sig, ok := c.aggregates[name]
	return sig, ok
}

func (c *MapCatalog) ResolveWindow(name string) (FuncSignature, bool) {
	sig, ok := c.windows[name]
	return sig, ok
}

func mapKeys(m map[string]FuncSignature) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

func (c *MapCatalog) ListScalarNames() []string    { return mapKeys(c.scalars) }
func (c *MapCatalog) ListAggregateNames() []string { return mapKeys(c.aggregates) }
func (c *MapCatalog) ListWindowNames() []string    { return mapKeys(c.windows) }

func (c *MapCatalog) DefaultCatalogName() string { return DefaultCatalogName }
func (c *MapCatalog) DefaultSchemaName() string  { return DefaultSchemaName }

func constant(t plan.DataType) func([]plan.DataType) plan.DataType {
	return func([]plan.DataType) plan.DataType { return t }
}

func firstArg(argTypes []plan.DataType) plan.DataType {
	if len(argTypes) == 0 {
		return plan.Unknown
	}
	return argTypes[0]
}

func secondArg(argTypes []plan.DataType) plan.DataType {
	if len(argTypes) < 2 {
		return plan.Unknown
	}
	return argTypes[1]
}

func builtinScalars() map[string]FuncSignature {
	return map[string]FuncSignature{
		"strcat":      {Kind: ScalarFunc, ReturnType: constant(plan.String)},
		"strlen":      {Kind: ScalarFunc, ReturnType: constant(plan.Int64)},
		"substring":   {Kind: ScalarFunc, ReturnType: constant(plan.String)},
		"tolower":     {Kind: ScalarFunc, ReturnType: constant(plan.String)},
		"toupper":     {Kind: ScalarFunc, ReturnType: constant(plan.String)},
		"tostring":    {Kind: ScalarFunc, ReturnType: constant(plan.String)},
		"toint":       {Kind: ScalarFunc, ReturnType: constant(plan.Int32)},
		"tolong":      {Kind: ScalarFunc, ReturnType: constant(plan.Int64)},
		"toreal":      {Kind: ScalarFunc, ReturnType: constant(plan.Float32)},
		"todecimal":   {Kind: ScalarFunc, ReturnType: constant(plan.Float64)},
		"todatetime":  {Kind: ScalarFunc, ReturnType: constant(plan.Timestamp)},
		"totimespan":  {Kind: ScalarFunc, ReturnType: constant(plan.Duration)},
		"bin":         {Kind: ScalarFunc, ReturnType: firstArg},
		"floor":       {Kind: ScalarFunc, ReturnType: firstArg},
		"now":         {Kind: ScalarFunc, ReturnType: constant(plan.Timestamp)},
		"ago":         {Kind: ScalarFunc, ReturnType: constant(plan.Timestamp)},
		"iff":         {Kind: ScalarFunc, ReturnType: secondArg},
		"isnull":      {Kind: ScalarFunc, ReturnType: constant(plan.Bool)},
		"isnotnull":   {Kind: ScalarFunc, ReturnType: constant(plan.Bool)},
		"coalesce":    {Kind: ScalarFunc, ReturnType: firstArg},
		"array_length": {Kind: ScalarFunc, ReturnType: constant(plan.Int64)},
		"parse_json":  {Kind: ScalarFunc, ReturnType: constant(plan.Dynamic)},
		"typeof":      {Kind: ScalarFunc, ReturnType: constant(plan.String)},
	}
}

func builtinAggregates() map[string]FuncSignature {
	return map[string]FuncSignature{
		"count":     {Kind: AggregateFunc, ReturnType: constant(plan.Int64)},
		"dcount":    {Kind: AggregateFunc, ReturnType: constant(plan.Int64)},
		"sum":       {Kind: AggregateFunc, ReturnType: constant(plan.Float64)},
		"avg":       {Kind: AggregateFunc, ReturnType: constant(plan.Float64)},
		"min":       {Kind: AggregateFunc, ReturnType: firstArg},
		"max":       {Kind: AggregateFunc, ReturnType: firstArg},
		"stdev":     {Kind: AggregateFunc, ReturnType: constant(plan.Float64)},
		"variance":  {Kind: AggregateFunc, ReturnType: constant(plan.Float64)},
		"make_list": {Kind: AggregateFunc, ReturnType: constant(plan.Dynamic)},
		"make_set":  {Kind: AggregateFunc, ReturnType: constant(plan.Dynamic)},
		"any":       {Kind: AggregateFunc, ReturnType: firstArg},
	}
}

func builtinWindows() map[string]FuncSignature {
	return map[string]FuncSignature{
		"row_number": {Kind: WindowFunc, ReturnType: constant(plan.Int64)},
		"rank":       {Kind: WindowFunc, ReturnType: constant(plan.Int64)},
		"dense_rank": {Kind: WindowFunc, ReturnType: constant(plan.Int64)},
		"lag":        {Kind: WindowFunc, ReturnType: firstArg},
		"lead":       {Kind: WindowFunc, ReturnType: firstArg},
		"prev":       {Kind: WindowFunc, ReturnType: firstArg},
		"next":       {Kind: WindowFunc, ReturnType: firstArg},
	}
}
