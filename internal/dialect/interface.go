package dialect

import (
	"db-shuttle/internal/config"
	"db-shuttle/internal/schema"
)

// Dialect abstracts database-specific SQL generation. The core pipeline and
// the generic connector never branch on engine kind; everything
// vendor-specific lives behind this interface.
type Dialect interface {
	// Name is the engine identifier ("postgres", "mysql", ...).
	Name() string

	// DriverName is the database/sql driver registration name.
	DriverName() string

	// DSN assembles the driver connection string from an endpoint.
	DSN(ep config.Endpoint) string

	// SchemaName resolves the introspection schema/namespace for an endpoint.
	SchemaName(ep config.Endpoint) string

	// Metadata queries (schema introspection). Each returns the SQL plus its
	// bind arguments; result shapes are uniform across engines:
	//   TablesQuery  -> (table_name)
	//   ColumnsQuery -> (column_name, native_type, 'YES'|'NO', default|NULL)
	//                   in ordinal position order
	TablesQuery(schemaName string) (string, []any)
	ColumnsQuery(schemaName, table string) (string, []any)

	// RowCountQuery counts rows for the advisory progress total.
	RowCountQuery(table string) string

	// PageQuery selects one offset page of the named columns, in order.
	PageQuery(table string, cols []string, limit, offset int) string

	// InsertQuery builds a single-row parameterized INSERT.
	InsertQuery(table string, cols []string) string

	// CreateTableQuery builds idempotent DDL for the destination table.
	CreateTableQuery(t *schema.Table) string

	// TypeFor maps a semantic type onto this engine's native DDL type.
	TypeFor(t schema.SemanticType) string

	// Placeholder returns the bind marker for a zero-based index
	// (?, $1, @p1, :1, ...).
	Placeholder(index int) string
}
