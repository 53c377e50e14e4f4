package dialect_test

import (
	"strings"
	"testing"

	"db-shuttle/internal/config"
	"db-shuttle/internal/dialect"
	"db-shuttle/internal/schema"
)

var users = &schema.Table{
	Name: "users",
	Fields: []schema.Field{
		{Name: "id", Type: schema.TypeInteger},
		{Name: "email", Type: schema.TypeString, Nullable: true},
		{Name: "active", Type: schema.TypeBoolean, Nullable: true, Default: "1", HasDefault: true},
	},
}

func TestForEngine(t *testing.T) {
	cases := map[config.EngineKind]string{
		config.EnginePostgres:  "postgres",
		config.EngineMySQL:     "mysql",
		config.EngineSQLServer: "sqlserver",
		config.EngineOracle:    "oracle",
		config.EngineSQLite:    "sqlite",
	}
	for engine, name := range cases {
		if got := dialect.ForEngine(engine).Name(); got != name {
			t.Errorf("ForEngine(%s).Name() = %s", engine, got)
		}
	}
}

func TestInsertQuery_Placeholders(t *testing.T) {
	cols := []string{"a", "b", "c"}
	cases := map[string]string{
		"mysql":     "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
		"postgres":  "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		"sqlserver": "INSERT INTO t (a, b, c) VALUES (@p1, @p2, @p3)",
		"oracle":    "INSERT INTO t (a, b, c) VALUES (:1, :2, :3)",
		"sqlite":    "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
	}
	for engine, want := range cases {
		d := dialect.ForEngine(config.EngineKind(engine))
		if got := d.InsertQuery("t", cols); got != want {
			t.Errorf("%s InsertQuery = %q, want %q", engine, got, want)
		}
	}
}

func TestCreateTableQuery(t *testing.T) {
	pg := dialect.ForEngine(config.EnginePostgres).CreateTableQuery(users)
	if pg != "CREATE TABLE IF NOT EXISTS users (id BIGINT NOT NULL, email TEXT, active BOOLEAN DEFAULT 1)" {
		t.Errorf("postgres DDL = %q", pg)
	}

	my := dialect.ForEngine(config.EngineMySQL).CreateTableQuery(users)
	if !strings.Contains(my, "CREATE TABLE IF NOT EXISTS users") || !strings.Contains(my, "id BIGINT NOT NULL") {
		t.Errorf("mysql DDL = %q", my)
	}

	ms := dialect.ForEngine(config.EngineSQLServer).CreateTableQuery(users)
	if !strings.HasPrefix(ms, "IF OBJECT_ID(N'users', N'U') IS NULL CREATE TABLE users") {
		t.Errorf("sqlserver DDL = %q", ms)
	}

	ora := dialect.ForEngine(config.EngineOracle).CreateTableQuery(users)
	if !strings.Contains(ora, "EXECUTE IMMEDIATE") || !strings.Contains(ora, "SQLCODE != -955") {
		t.Errorf("oracle DDL = %q", ora)
	}
}

func TestCreateTableQuery_PreservesFieldOrder(t *testing.T) {
	ddl := dialect.ForEngine(config.EngineSQLite).CreateTableQuery(users)
	idIdx := strings.Index(ddl, "id ")
	emailIdx := strings.Index(ddl, "email ")
	activeIdx := strings.Index(ddl, "active ")
	if !(idIdx < emailIdx && emailIdx < activeIdx) {
		t.Errorf("field order not preserved in %q", ddl)
	}
}

func TestPageQuery(t *testing.T) {
	cols := []string{"id", "email"}

	pg := dialect.ForEngine(config.EnginePostgres).PageQuery("users", cols, 100, 200)
	if pg != "SELECT id, email FROM users LIMIT 100 OFFSET 200" {
		t.Errorf("postgres page = %q", pg)
	}

	ms := dialect.ForEngine(config.EngineSQLServer).PageQuery("users", cols, 100, 200)
	if ms != "SELECT id, email FROM users ORDER BY (SELECT NULL) OFFSET 200 ROWS FETCH NEXT 100 ROWS ONLY" {
		t.Errorf("sqlserver page = %q", ms)
	}

	ora := dialect.ForEngine(config.EngineOracle).PageQuery("users", cols, 100, 200)
	if ora != "SELECT id, email FROM users OFFSET 200 ROWS FETCH NEXT 100 ROWS ONLY" {
		t.Errorf("oracle page = %q", ora)
	}
}

func TestDSN(t *testing.T) {
	ep := config.Endpoint{
		Engine:   config.EngineMySQL,
		Host:     "localhost",
		Port:     3306,
		Username: "root",
		Password: "root",
		Database: "app",
	}
	if got := (&dialect.MysqlDialect{}).DSN(ep); got != "root:root@tcp(localhost:3306)/app?parseTime=true" {
		t.Errorf("mysql DSN = %q", got)
	}

	ep.Engine = config.EnginePostgres
	ep.Port = 5432
	pg := (&dialect.PostgresDialect{}).DSN(ep)
	for _, want := range []string{"host=localhost", "port=5432", "dbname=app", "sslmode=disable", "user=root"} {
		if !strings.Contains(pg, want) {
			t.Errorf("postgres DSN %q missing %q", pg, want)
		}
	}

	lite := (&dialect.SQLiteDialect{}).DSN(config.Endpoint{Engine: config.EngineSQLite, File: "/tmp/x.db"})
	if lite != "/tmp/x.db" {
		t.Errorf("sqlite DSN = %q", lite)
	}
}

func TestTypeFor_RoundTripsThroughNormalize(t *testing.T) {
	// Destination DDL types should re-normalize to the same semantic type on
	// the engines whose native names allow it; this keeps chained
	// migrations stable.
	for _, engine := range []config.EngineKind{config.EnginePostgres, config.EngineMySQL, config.EngineSQLite} {
		d := dialect.ForEngine(engine)
		for _, sem := range []schema.SemanticType{
			schema.TypeInteger, schema.TypeString, schema.TypeNumber,
			schema.TypeDate, schema.TypeBoolean, schema.TypeJSON, schema.TypeBinary,
		} {
			if got := schema.Normalize(d.TypeFor(sem)); got != sem {
				t.Errorf("%s: TypeFor(%s) = %q normalizes to %q", engine, sem, d.TypeFor(sem), got)
			}
		}
	}
}
