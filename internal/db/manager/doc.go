// Package manager owns the connection lifecycle for one MySQL database:
// bounded connect retries, lazy cursor creation, query execution with
// string-normalized result rows, and idempotent teardown.
//
// # Lifecycle
//
// A Manager moves between three states: Idle (no live connection),
// Connected, and Failed. Failed is latched — once the connect attempt
// budget is exhausted or a fatal connect error occurs, the manager refuses
// every further operation with msi.ErrConnectionFailed and never dials again.
//
// # Example Usage
//
//	m := manager.New(ctx, cfg, db.NewStandardDriver(), logger)
//	defer m.Disconnect()
//
//	rows, err := m.Query(ctx, "SELECT id, name FROM users")
//
// Or scoped, with teardown guaranteed on every exit path:
//
//	err := manager.With(ctx, cfg, driver, logger, func(m *manager.Manager) error {
//	    rows, err := m.Query(ctx, "SELECT 1")
//	    ...
//	})
//
// # Thread Safety
//
// Manager is NOT safe for concurrent use. All I/O is synchronous and
// blocking; create separate instances for concurrent operations.
package manager
