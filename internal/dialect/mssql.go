package dialect

import (
	"fmt"
	"net/url"
	"strings"

	"db-shuttle/internal/config"
	"db-shuttle/internal/schema"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string       { return "sqlserver" }
func (d *MSSQLDialect) DriverName() string { return "sqlserver" }

func (d *MSSQLDialect) DSN(ep config.Endpoint) string {
	q := url.Values{}
	q.Set("database", ep.Database)
	if !ep.SSL {
		q.Set("encrypt", "disable")
	}
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(ep.Username, ep.Password),
		Host:     fmt.Sprintf("%s:%d", ep.Host, ep.Port),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (d *MSSQLDialect) SchemaName(ep config.Endpoint) string {
	return "dbo"
}

func (d *MSSQLDialect) TablesQuery(schemaName string) (string, []any) {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		[]any{schemaName}
}

func (d *MSSQLDialect) ColumnsQuery(schemaName, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_DEFAULT FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`,
		[]any{schemaName, table}
}

func (d *MSSQLDialect) RowCountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *MSSQLDialect) PageQuery(table string, cols []string, limit, offset int) string {
	// OFFSET/FETCH requires an ORDER BY clause; ORDER BY (SELECT NULL)
	// satisfies the parser without imposing a sort.
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY (SELECT NULL) OFFSET %d ROWS FETCH NEXT %d ROWS ONLY",
		strings.Join(cols, ", "), table, offset, limit)
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MSSQLDialect) CreateTableQuery(t *schema.Table) string {
	// SQL Server has no CREATE TABLE IF NOT EXISTS; guard via OBJECT_ID.
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (%s)",
		t.Name, t.Name, ColumnDefs(t, d.TypeFor))
}

func (d *MSSQLDialect) TypeFor(t schema.SemanticType) string {
	switch t {
	case schema.TypeInteger:
		return "BIGINT"
	case schema.TypeNumber:
		return "FLOAT"
	case schema.TypeDate:
		return "DATETIME2"
	case schema.TypeBoolean:
		return "BIT"
	case schema.TypeJSON:
		return "NVARCHAR(MAX)"
	case schema.TypeBinary:
		return "VARBINARY(MAX)"
	default:
		return "NVARCHAR(MAX)"
	}
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}
