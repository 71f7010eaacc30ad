package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/robDaglio/msi/pkg/msi"
)

// StandardDriver implements msi.Driver for username/password authentication
// over plain TCP. One Open call yields one dedicated server session.
type StandardDriver struct{}

// NewStandardDriver creates a new StandardDriver.
func NewStandardDriver() *StandardDriver {
	return &StandardDriver{}
}

// Open dials the server and pins a single verified session.
func (d *StandardDriver) Open(ctx context.Context, cfg *msi.ConnectionConfig) (msi.Conn, error) {
	connector, err := mysql.NewConnector(buildMySQLConfig(cfg, cfg.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to build connector: %w", err)
	}

	return openSession(ctx, sql.OpenDB(connector), cfg)
}

// openSession pins exactly one connection out of the pool handle and
// verifies it with a ping. The manager owns a single logical session, so
// the pool is capped at one connection.
func openSession(ctx context.Context, pool *sql.DB, cfg *msi.ConnectionConfig) (msi.Conn, error) {
	pool.SetMaxOpenConns(1)
	pool.SetMaxIdleConns(1)
	pool.SetConnMaxLifetime(0)

	conn, err := pool.Conn(ctx)
	if err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, cfg)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		pool.Close()
		return nil, wrapConnectionError(err, cfg)
	}

	return &session{pool: pool, conn: conn}, nil
}

// session is one live database session: a dedicated *sql.Conn plus the
// owning pool handle, both torn down together.
type session struct {
	pool *sql.DB
	conn *sql.Conn
}

// Cursor creates a query-execution context bound to this session.
func (s *session) Cursor() (msi.Cursor, error) {
	if s.conn == nil {
		return nil, errors.New("session is closed")
	}
	return &cursor{conn: s.conn}, nil
}

// Close releases the session and its pool handle.
func (s *session) Close() error {
	var errs []error
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			errs = append(errs, err)
		}
		s.conn = nil
	}
	if s.pool != nil {
		if err := s.pool.Close(); err != nil {
			errs = append(errs, err)
		}
		s.pool = nil
	}
	return errors.Join(errs...)
}

// cursor executes statements on one session and buffers the active result
// set between Execute and FetchAll.
type cursor struct {
	conn *sql.Conn
	rows *sql.Rows
}

// Execute sends one statement to the server. Any result set left over from
// a previous Execute is discarded first.
func (c *cursor) Execute(ctx context.Context, query string) error {
	if c.rows != nil {
		c.rows.Close()
		c.rows = nil
	}

	rows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return err
	}

	c.rows = rows
	return nil
}

// FetchAll drains the result set produced by the last Execute call into
// variant rows. Returns an empty, non-nil slice for zero rows.
func (c *cursor) FetchAll(ctx context.Context) ([]msi.Row, error) {
	if c.rows == nil {
		return nil, errors.New("no executed statement to fetch from")
	}

	rows := c.rows
	defer func() {
		rows.Close()
		c.rows = nil
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]msi.Row, 0, 8)
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(msi.Row, len(cols))
		for i, v := range raw {
			row[i] = valueOf(v)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// valueOf converts a driver scalar into the variant type. The MySQL text
// protocol delivers most column values as []byte; ParseTime promotes
// temporal columns to time.Time.
func valueOf(v any) msi.Value {
	switch t := v.(type) {
	case nil:
		return msi.NullValue()
	case int64:
		return msi.IntValue(t)
	case float64:
		return msi.FloatValue(t)
	case bool:
		return msi.BoolValue(t)
	case []byte:
		return msi.BytesValue(t)
	case string:
		return msi.StringValue(t)
	case time.Time:
		return msi.TimeValue(t)
	default:
		return msi.StringValue(fmt.Sprint(t))
	}
}
