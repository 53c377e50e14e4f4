package dialect

import "db-shuttle/internal/config"

// ForEngine returns the Dialect implementation for an engine kind.
func ForEngine(engine config.EngineKind) Dialect {
	switch engine {
	case config.EnginePostgres:
		return &PostgresDialect{}
	case config.EngineSQLServer:
		return &MSSQLDialect{}
	case config.EngineOracle:
		return &OracleDialect{}
	case config.EngineSQLite:
		return &SQLiteDialect{}
	default: // mysql
		return &MysqlDialect{}
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
