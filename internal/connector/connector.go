// Package connector defines the capability contract every engine adapter
// satisfies, and provides the one generic database/sql implementation used
// for all supported engines. The core pipeline talks only to the Connector
// interface; the engine kind matters exactly once, when the adapter is
// constructed.
package connector

import (
	"context"
	"database/sql"

	"db-shuttle/internal/schema"
)

// Connector is the minimal operation set the migration core needs from a
// database, on either side of a run.
type Connector interface {
	// Connect establishes the pooled connection and verifies reachability.
	Connect(ctx context.Context) error

	// Disconnect releases the pool. Idempotent: safe on a never-connected
	// or already-disconnected instance.
	Disconnect() error

	// ListTables returns the user table names of the endpoint's schema.
	ListTables(ctx context.Context) ([]string, error)

	// DescribeTable returns the normalized table descriptor, including a
	// best-effort row count (0 when unknown).
	DescribeTable(ctx context.Context, name string) (*schema.Table, error)

	// StreamRows produces the table's rows as a lazy sequence of batches.
	// The descriptor fixes which fields are read and in what order. Callers
	// hold at most one batch in memory at a time.
	StreamRows(ctx context.Context, table *schema.Table, batchSize int) (RowStream, error)

	// CreateTable creates the destination table; a no-op if it already
	// exists with a compatible shape.
	CreateTable(ctx context.Context, table *schema.Table) error

	// InsertRows appends all rows of the batch. An empty batch is a no-op.
	// No rollback guarantee is made for mid-batch failures.
	InsertRows(ctx context.Context, table *schema.Table, batch schema.RowBatch) error

	// ExecuteQuery runs a raw statement against the endpoint. Escape hatch;
	// the core pipeline never calls it.
	ExecuteQuery(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// RowStream is a finite, lazy sequence of row batches. Next returns an
// empty batch when the stream is exhausted; that is the terminal signal,
// not an error. Streams are restartable only by recreation.
type RowStream interface {
	Next(ctx context.Context) (schema.RowBatch, error)
	Close() error
}
