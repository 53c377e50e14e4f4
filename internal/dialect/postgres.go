package dialect

import (
	"fmt"
	"strings"

	"db-shuttle/internal/config"
	"db-shuttle/internal/schema"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) DSN(ep config.Endpoint) string {
	sslmode := "disable"
	if ep.SSL {
		sslmode = "require"
	}
	parts := []string{
		fmt.Sprintf("host=%s", ep.Host),
		fmt.Sprintf("port=%d", ep.Port),
		fmt.Sprintf("dbname=%s", ep.Database),
		fmt.Sprintf("sslmode=%s", sslmode),
	}
	if ep.Username != "" {
		parts = append(parts, fmt.Sprintf("user=%s", ep.Username))
	}
	if ep.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", ep.Password))
	}
	return strings.Join(parts, " ")
}

func (d *PostgresDialect) SchemaName(ep config.Endpoint) string {
	return "public"
}

func (d *PostgresDialect) TablesQuery(schemaName string) (string, []any) {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`,
		[]any{schemaName}
}

func (d *PostgresDialect) ColumnsQuery(schemaName, table string) (string, []any) {
	// udt_name carries the concrete type (int4, jsonb, ...) where data_type
	// only says "USER-DEFINED" or "ARRAY"; data_type reads better for the
	// standard types, so prefer it and fall back to udt_name.
	return `SELECT column_name, COALESCE(NULLIF(data_type, 'USER-DEFINED'), udt_name), is_nullable, column_default FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`,
		[]any{schemaName, table}
}

func (d *PostgresDialect) RowCountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *PostgresDialect) PageQuery(table string, cols []string, limit, offset int) string {
	return fmt.Sprintf("SELECT %s FROM %s LIMIT %d OFFSET %d", strings.Join(cols, ", "), table, limit, offset)
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *PostgresDialect) CreateTableQuery(t *schema.Table) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, ColumnDefs(t, d.TypeFor))
}

func (d *PostgresDialect) TypeFor(t schema.SemanticType) string {
	switch t {
	case schema.TypeInteger:
		return "BIGINT"
	case schema.TypeNumber:
		return "DOUBLE PRECISION"
	case schema.TypeDate:
		return "TIMESTAMP"
	case schema.TypeBoolean:
		return "BOOLEAN"
	case schema.TypeJSON:
		return "JSONB"
	case schema.TypeBinary:
		return "BYTEA"
	default:
		return "TEXT"
	}
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}
