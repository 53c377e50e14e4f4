package dialect

import (
	"fmt"
	"strings"

	"db-shuttle/internal/config"
	"db-shuttle/internal/schema"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string       { return "mysql" }
func (d *MysqlDialect) DriverName() string { return "mysql" }

func (d *MysqlDialect) DSN(ep config.Endpoint) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", ep.Username, ep.Password, ep.Host, ep.Port, ep.Database)
	if ep.SSL {
		dsn += "&tls=true"
	}
	return dsn
}

func (d *MysqlDialect) SchemaName(ep config.Endpoint) string {
	return ep.Database
}

func (d *MysqlDialect) TablesQuery(schemaName string) (string, []any) {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		[]any{schemaName}
}

func (d *MysqlDialect) ColumnsQuery(schemaName, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_DEFAULT FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`,
		[]any{schemaName, table}
}

func (d *MysqlDialect) RowCountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *MysqlDialect) PageQuery(table string, cols []string, limit, offset int) string {
	return fmt.Sprintf("SELECT %s FROM %s LIMIT %d OFFSET %d", strings.Join(cols, ", "), table, limit, offset)
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MysqlDialect) CreateTableQuery(t *schema.Table) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, ColumnDefs(t, d.TypeFor))
}

func (d *MysqlDialect) TypeFor(t schema.SemanticType) string {
	switch t {
	case schema.TypeInteger:
		return "BIGINT"
	case schema.TypeNumber:
		return "DOUBLE"
	case schema.TypeDate:
		return "DATETIME"
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

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}
