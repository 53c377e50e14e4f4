package dialect

import (
	"fmt"
	"strings"

	"db-shuttle/internal/config"
	"db-shuttle/internal/schema"
)

// SQLiteDialect serves the embedded single-file engine. Bare filesystem
// paths and unrecognized endpoint URLs both land here.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite" }

func (d *SQLiteDialect) DSN(ep config.Endpoint) string {
	return ep.Path()
}

func (d *SQLiteDialect) SchemaName(ep config.Endpoint) string {
	return "main"
}

func (d *SQLiteDialect) TablesQuery(schemaName string) (string, []any) {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`, nil
}

func (d *SQLiteDialect) ColumnsQuery(schemaName, table string) (string, []any) {
	return `SELECT name, type, CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END, dflt_value FROM pragma_table_info(?) ORDER BY cid`,
		[]any{table}
}

func (d *SQLiteDialect) RowCountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *SQLiteDialect) PageQuery(table string, cols []string, limit, offset int) string {
	return fmt.Sprintf("SELECT %s FROM %s LIMIT %d OFFSET %d", strings.Join(cols, ", "), table, limit, offset)
}

func (d *SQLiteDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *SQLiteDialect) CreateTableQuery(t *schema.Table) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, ColumnDefs(t, d.TypeFor))
}

func (d *SQLiteDialect) TypeFor(t schema.SemanticType) string {
	// SQLite accepts arbitrary type names; these are chosen so a migrated
	// table re-normalizes to the same semantic types when read back.
	switch t {
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeNumber:
		return "DOUBLE"
	case schema.TypeDate:
		return "TIMESTAMP"
	case schema.TypeBoolean:
		return "BOOLEAN"
	case schema.TypeJSON:
		return "JSON"
	case schema.TypeBinary:
		return "BLOB"
	default:
		return "TEXT"
	}
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}
