// Package gen introspects a PostgreSQL catalog and emits per-table Go
// shapes (selectable, insertable, updatable, whereable, column and
// unique-index identifiers, enum variants) consumed by callers of the
// root pgfrag package.
package gen

// Column describes one table column as the generator needs it.
type Column struct {
	Name       string
	SQLType    string
	Nullable   bool
	HasDefault bool
}

// UniqueIndex describes one unique index/constraint on a table.
type UniqueIndex struct {
	Name    string
	Columns []string
}

// Table describes one introspected table.
type Table struct {
	Schema        string
	Name          string
	Columns       []Column
	UniqueIndexes []UniqueIndex
	// EstimatedRows is read from pg_class.reltuples; used by LargeTableWarner.
	EstimatedRows int64
}

// Enum describes one introspected enum type, labels in catalog
// (enumsortorder) order.
type Enum struct {
	Schema string
	Name   string
	Labels []string
}

// Catalog is the full schema description produced by Introspect and
// consumed by Emit.
type Catalog struct {
	Tables []Table
	Enums  []Enum
}
