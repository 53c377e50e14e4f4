package connector

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"db-shuttle/internal/config"
	"db-shuttle/internal/dialect"
	"db-shuttle/internal/errs"
	"db-shuttle/internal/schema"
)

// SQLConnector is the generic database/sql adapter. One type serves every
// engine; the Dialect carries all vendor-specific SQL.
type SQLConnector struct {
	ep  config.Endpoint
	d   dialect.Dialect
	db  *sql.DB
	log zerolog.Logger
}

// New builds a connector for the endpoint. No I/O happens until Connect.
func New(ep config.Endpoint, log zerolog.Logger) *SQLConnector {
	return &SQLConnector{
		ep:  ep,
		d:   dialect.ForEngine(ep.Engine),
		log: log.With().Str("engine", string(ep.Engine)).Logger(),
	}
}

func (c *SQLConnector) Connect(ctx context.Context) error {
	if c.db != nil {
		return nil
	}
	db, err := sql.Open(c.d.DriverName(), c.d.DSN(c.ep))
	if err != nil {
		return errs.Wrap(errs.KindConnection, "failed to open "+c.ep.Redacted(), err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return errs.Wrap(errs.KindConnection, "failed to reach "+c.ep.Redacted(), err)
	}
	c.db = db
	c.log.Debug().Str("endpoint", c.ep.Redacted()).Msg("connected")
	return nil
}

// Disconnect is idempotent; calling it on a never-connected instance is a
// no-op.
func (c *SQLConnector) Disconnect() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func (c *SQLConnector) ListTables(ctx context.Context) ([]string, error) {
	query, args := c.d.TablesQuery(c.d.SchemaName(c.ep))
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Wrap(errs.KindSchema, "failed to list tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Wrap(errs.KindSchema, "failed to scan table name", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindSchema, "error iterating tables", err)
	}
	return tables, nil
}

func (c *SQLConnector) DescribeTable(ctx context.Context, name string) (*schema.Table, error) {
	query, args := c.d.ColumnsQuery(c.d.SchemaName(c.ep), name)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Wrap(errs.KindSchema, "failed to query columns", err).WithTable(name, "describing")
	}
	defer rows.Close()

	t := &schema.Table{Name: name}
	for rows.Next() {
		var colName, nativeType, nullable string
		var dflt sql.NullString
		if err := rows.Scan(&colName, &nativeType, &nullable, &dflt); err != nil {
			return nil, errs.Wrap(errs.KindSchema, "failed to scan column", err).WithTable(name, "describing")
		}
		t.Fields = append(t.Fields, schema.Field{
			Name:       colName,
			Type:       schema.Normalize(nativeType),
			Nullable:   nullable == "YES",
			Default:    dflt.String,
			HasDefault: dflt.Valid,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindSchema, "error iterating columns", err).WithTable(name, "describing")
	}
	if len(t.Fields) == 0 {
		return nil, errs.New(errs.KindSchema, "table has no columns or does not exist").WithTable(name, "describing")
	}

	// Row count is advisory; failures degrade to unknown, not to an error.
	if err := c.db.QueryRowContext(ctx, c.d.RowCountQuery(name)).Scan(&t.RowCount); err != nil {
		c.log.Warn().Err(err).Str("table", name).Msg("row count unavailable")
		t.RowCount = 0
	}
	return t, nil
}

func (c *SQLConnector) StreamRows(ctx context.Context, table *schema.Table, batchSize int) (RowStream, error) {
	if batchSize <= 0 {
		return nil, errs.New(errs.KindConfiguration, "batch size must be positive").WithTable(table.Name, "streaming")
	}
	return &pageStream{c: c, table: table, batchSize: batchSize}, nil
}

func (c *SQLConnector) CreateTable(ctx context.Context, table *schema.Table) error {
	ddl := c.d.CreateTableQuery(table)
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return errs.Wrap(errs.KindSchema, "failed to create table", err).WithTable(table.Name, "creating")
	}
	return nil
}

func (c *SQLConnector) InsertRows(ctx context.Context, table *schema.Table, batch schema.RowBatch) error {
	if len(batch) == 0 {
		return nil
	}
	cols := table.FieldNames()
	query := c.d.InsertQuery(table.Name, cols)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(errs.KindData, "failed to begin insert transaction", err).WithTable(table.Name, "writing")
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return errs.Wrap(errs.KindData, "failed to prepare insert", err).WithTable(table.Name, "writing")
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for _, row := range batch {
		for i, col := range cols {
			args[i] = row[col].Driver()
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			tx.Rollback()
			return errs.Wrap(errs.KindData, "insert failed", err).WithTable(table.Name, "writing")
		}
	}
	if err := tx.Commit(); err != nil {
		return errs.Wrap(errs.KindData, "failed to commit batch", err).WithTable(table.Name, "writing")
	}
	return nil
}

func (c *SQLConnector) ExecuteQuery(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Wrap(errs.KindQuery, "query failed", err)
	}
	return rows, nil
}

// pageStream pulls rows with offset paging until an empty page comes back.
// It keeps exactly one batch in memory.
type pageStream struct {
	c         *SQLConnector
	table     *schema.Table
	batchSize int
	offset    int
	done      bool
}

func (s *pageStream) Next(ctx context.Context) (schema.RowBatch, error) {
	if s.done {
		return nil, nil
	}
	query := s.c.d.PageQuery(s.table.Name, s.table.FieldNames(), s.batchSize, s.offset)
	rows, err := s.c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Wrap(errs.KindData, "failed to read page", err).WithTable(s.table.Name, "streaming")
	}
	defer rows.Close()

	batch := make(schema.RowBatch, 0, s.batchSize)
	raw := make([]any, len(s.table.Fields))
	ptrs := make([]any, len(s.table.Fields))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errs.Wrap(errs.KindData, "failed to scan row", err).WithTable(s.table.Name, "streaming")
		}
		row := make(schema.Row, len(s.table.Fields))
		for i, f := range s.table.Fields {
			row[f.Name] = schema.FromDriver(raw[i], f.Type)
		}
		batch = append(batch, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindData, "error iterating page", err).WithTable(s.table.Name, "streaming")
	}

	s.offset += len(batch)
	if len(batch) == 0 {
		s.done = true
	}
	return batch, nil
}

func (s *pageStream) Close() error {
	s.done = true
	return nil
}

var _ Connector = (*SQLConnector)(nil)
