package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robDaglio/msi/internal/logging"
	"github.com/robDaglio/msi/internal/retry"
	"github.com/robDaglio/msi/pkg/msi"
)

// Manager owns a single logical connection to one database instance and
// exposes query execution plus explicit and scoped disconnection.
//
// Invariants:
//   - the cursor never outlives the connection it was created from;
//   - a Failed manager holds no live connection or cursor;
//   - Failed is terminal for the manager's lifetime.
type Manager struct {
	cfg    *msi.ConnectionConfig
	driver msi.Driver
	log    msi.Logger
	exec   *retry.Executor

	sessionID uuid.UUID
	status    msi.ConnStatus
	conn      msi.Conn
	cursor    msi.Cursor
}

// Option configures a Manager before its initial connect.
type Option func(*Manager)

// WithRetryPolicy replaces the default immediate, budget-bounded retry
// policy for connect attempts.
func WithRetryPolicy(classifier msi.ErrorClassifier, strategy msi.BackoffStrategy) Option {
	return func(m *Manager) {
		m.exec = retry.NewExecutor(classifier, strategy)
	}
}

// New creates a Manager for the given target and immediately attempts to
// connect. It always returns a manager instance: if the connect attempt
// budget is exhausted the manager comes back already in StatusFailed, and
// every subsequent operation reports msi.ErrConnectionFailed.
func New(ctx context.Context, cfg *msi.ConnectionConfig, driver msi.Driver, log msi.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logging.NewNullLogger()
	}

	m := &Manager{
		cfg:       cfg,
		driver:    driver,
		log:       log,
		sessionID: uuid.New(),
		status:    msi.StatusIdle,
		exec: retry.NewExecutor(
			retry.NewMySQLErrorClassifier(),
			retry.NewImmediate(msi.MaxConnectionRetries),
		),
	}

	for _, opt := range opts {
		opt(m)
	}

	// Construction failure is reported through the latched status, not an
	// error return; callers observe it on their first operation.
	_ = m.Connect(ctx)

	return m
}

// Status reports the current lifecycle state.
func (m *Manager) Status() msi.ConnStatus { return m.status }

// target renders the endpoint for log lines, including the informational
// instance label when one was configured.
func (m *Manager) target() string {
	if m.cfg.Instance != "" {
		return fmt.Sprintf("%s (%s)", m.cfg.Addr(), m.cfg.Instance)
	}
	return m.cfg.Addr()
}

// SessionID identifies this manager's logical session in log lines.
func (m *Manager) SessionID() uuid.UUID { return m.sessionID }

// Connect establishes the connection. It is an idempotent no-op when a live
// connection exists and fails fast with msi.ErrConnectionFailed when the
// manager is latched as Failed.
//
// Attempts are bounded by the retry policy's budget: with the default
// policy the cutoff fires when the attempt counter reaches
// msi.MaxConnectionRetries, so at most MaxConnectionRetries-1 real open
// attempts occur, back to back with no delay.
func (m *Manager) Connect(ctx context.Context) error {
	switch m.status {
	case msi.StatusConnected:
		return nil
	case msi.StatusFailed:
		return fmt.Errorf("connection latched as failed: %w", msi.ErrConnectionFailed)
	}

	attempt := 0
	exec := m.exec.WithOnRetry(func(n int, err error, delay time.Duration) {
		m.log.Error("connection failed: %v (retrying)", err)
	})

	err := exec.Execute(ctx, func(ctx context.Context) error {
		attempt++
		m.log.Verbose("connecting to %s | attempt: %d | session: %s", m.target(), attempt, m.sessionID)

		conn, openErr := m.driver.Open(ctx, m.cfg)
		if openErr != nil {
			return openErr
		}

		m.conn = conn
		return nil
	})

	if err != nil {
		m.status = msi.StatusFailed
		m.conn = nil
		m.cursor = nil
		m.log.Error("giving up on %s after %d attempt(s): %v", m.target(), attempt, err)
		return fmt.Errorf("%w: %w", msi.ErrConnectionFailed, err)
	}

	m.status = msi.StatusConnected
	m.log.Verbose("connection succeeded | session: %s", m.sessionID)
	return nil
}

// verifyConnection fails fast when the manager is latched as Failed and
// reconnects when no live connection exists.
func (m *Manager) verifyConnection(ctx context.Context) error {
	if m.status == msi.StatusFailed {
		return fmt.Errorf("connection latched as failed: %w", msi.ErrConnectionFailed)
	}
	if m.conn == nil {
		return m.Connect(ctx)
	}
	return nil
}

// verifyCursor lazily creates the cursor on first use. One cursor is reused
// across queries until the connection is replaced or torn down.
func (m *Manager) verifyCursor() error {
	if m.cursor != nil {
		return nil
	}

	cur, err := m.conn.Cursor()
	if err != nil {
		m.log.Error("cursor creation failed: %v", err)
		return fmt.Errorf("%w: %w", msi.ErrCursorFailed, err)
	}

	m.cursor = cur
	return nil
}

// Query executes one SQL statement and returns every result row with all
// column values normalized to strings.
//
// The returned slice is empty but non-nil both for a statement that
// produced zero rows and for a failed execution; the error return
// distinguishes the two cases.
func (m *Manager) Query(ctx context.Context, query string) ([][]string, error) {
	if err := m.verifyConnection(ctx); err != nil {
		return nil, err
	}
	if err := m.verifyCursor(); err != nil {
		return nil, err
	}

	m.log.Info("%s ->", query)

	if err := m.cursor.Execute(ctx, query); err != nil {
		m.log.Error("failed to execute query: %v", err)
		return [][]string{}, fmt.Errorf("%w: %w", msi.ErrQueryFailed, err)
	}

	rows, err := m.cursor.FetchAll(ctx)
	if err != nil {
		m.log.Error("failed to fetch results: %v", err)
		return [][]string{}, fmt.Errorf("%w: %w", msi.ErrQueryFailed, err)
	}

	result := msi.NormalizeRows(rows)
	if len(result) > 0 {
		m.log.Verbose("%d row(s) | %v", len(result), result)
	} else {
		m.log.Verbose("query executed successfully")
	}
	return result, nil
}

// Disconnect closes the live connection, if any. Errors raised during close
// are logged and swallowed. Safe to call repeatedly and when never
// connected; a latched Failed status stays latched.
func (m *Manager) Disconnect() {
	if m.conn == nil {
		return
	}

	m.cursor = nil
	if err := m.conn.Close(); err != nil {
		m.log.Error("disconnection process failed: %v", err)
	} else {
		m.log.Verbose("disconnected from database | session: %s", m.sessionID)
	}
	m.conn = nil

	if m.status == msi.StatusConnected {
		m.status = msi.StatusIdle
	}
}

// With runs fn against a freshly constructed manager and guarantees exactly
// one Disconnect on every exit path, including an error returned by fn.
func With(ctx context.Context, cfg *msi.ConnectionConfig, driver msi.Driver, log msi.Logger, fn func(*Manager) error) error {
	m := New(ctx, cfg, driver, log)
	defer m.Disconnect()
	return fn(m)
}
