package msi

import "context"

// Driver is the external collaborator that owns the database wire protocol,
// authentication handshake, and query execution. Implementations handle
// various authentication methods (standard credentials, cloud IAM tokens).
type Driver interface {
	// Open establishes a single database session using the stored credentials.
	// One call corresponds to one connection attempt; retry policy is the
	// caller's concern.
	Open(ctx context.Context, cfg *ConnectionConfig) (Conn, error)
}

// Conn is an opaque handle to one live database session. A Conn is owned
// exclusively by one manager and is not safe for concurrent use.
type Conn interface {
	// Cursor creates a query-execution context scoped to this connection.
	Cursor() (Cursor, error)

	// Close tears down the session. After Close the Conn and any Cursor
	// derived from it must not be used.
	Close() error
}

// Cursor is a per-connection query-execution and result-iteration context.
// A Cursor never outlives the Conn it was created from.
type Cursor interface {
	// Execute sends one SQL statement to the server.
	Execute(ctx context.Context, query string) error

	// FetchAll drains the result set produced by the last Execute call.
	// A statement that produced no rows yields an empty, non-nil slice.
	FetchAll(ctx context.Context) ([]Row, error)
}
