package dialect

import (
	"fmt"
	"strings"

	"db-shuttle/internal/config"
	"db-shuttle/internal/schema"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string       { return "oracle" }
func (d *OracleDialect) DriverName() string { return "oracle" }

func (d *OracleDialect) DSN(ep config.Endpoint) string {
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s", ep.Username, ep.Password, ep.Host, ep.Port, ep.Database)
}

func (d *OracleDialect) SchemaName(ep config.Endpoint) string {
	// USER_* views scope introspection to the connected user; no separate
	// schema argument is needed.
	return strings.ToUpper(ep.Username)
}

func (d *OracleDialect) TablesQuery(schemaName string) (string, []any) {
	return `SELECT TABLE_NAME FROM USER_TABLES ORDER BY TABLE_NAME`, nil
}

func (d *OracleDialect) ColumnsQuery(schemaName, table string) (string, []any) {
	// Oracle stores unquoted identifiers uppercase.
	return `SELECT COLUMN_NAME, DATA_TYPE, CASE WHEN NULLABLE = 'Y' THEN 'YES' ELSE 'NO' END, DATA_DEFAULT FROM USER_TAB_COLUMNS WHERE TABLE_NAME = UPPER(:1) ORDER BY COLUMN_ID`,
		[]any{table}
}

func (d *OracleDialect) RowCountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

func (d *OracleDialect) PageQuery(table string, cols []string, limit, offset int) string {
	return fmt.Sprintf("SELECT %s FROM %s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY",
		strings.Join(cols, ", "), table, offset, limit)
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *OracleDialect) CreateTableQuery(t *schema.Table) string {
	// No IF NOT EXISTS before 23c; swallow ORA-00955 (name already used)
	// inside a PL/SQL block to keep creation idempotent.
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", t.Name, ColumnDefs(t, d.TypeFor))
	return fmt.Sprintf(
		"BEGIN EXECUTE IMMEDIATE '%s'; EXCEPTION WHEN OTHERS THEN IF SQLCODE != -955 THEN RAISE; END IF; END;",
		strings.ReplaceAll(ddl, "'", "''"))
}

func (d *OracleDialect) TypeFor(t schema.SemanticType) string {
	switch t {
	case schema.TypeInteger:
		return "INTEGER"
	case schema.TypeNumber:
		return "BINARY_DOUBLE"
	case schema.TypeDate:
		return "TIMESTAMP"
	case schema.TypeBoolean:
		return "NUMBER(1)"
	case schema.TypeJSON:
		return "CLOB"
	case schema.TypeBinary:
		return "BLOB"
	default:
		return "VARCHAR2(4000)"
	}
}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}
