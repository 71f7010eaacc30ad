package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/robDaglio/msi/pkg/msi"
)

// wrapConnectionError wraps raw driver connection errors with actionable guidance.
func wrapConnectionError(err error, cfg *msi.ConnectionConfig) error {
	addr := cfg.Addr()

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1045, 1044:
			return fmt.Errorf(`access denied for user %q on database %q

Possible causes:
  - Wrong password or username
  - User has no grants on this database
  - Host-based grants exclude this client address

Original error: %w`, cfg.Username, cfg.Database, err)

		case 1049:
			return fmt.Errorf(`database %q does not exist

To create it:
  CREATE DATABASE %s;

Original error: %w`, cfg.Database, cfg.Database, err)

		case 1040:
			return fmt.Errorf(`too many connections on %s

Possible causes:
  - max_connections limit reached on the server
  - Stale sessions from earlier runs

Check: SHOW PROCESSLIST; and the max_connections server variable.

Original error: %w`, addr, err)
		}
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - MySQL is not running (check: mysqladmin -h %s ping)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, addr, cfg.Host, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host %q

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w`, cfg.Host, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, err)

	case strings.Contains(errStr, "tls") || strings.Contains(errStr, "ssl"):
		return fmt.Errorf(`TLS connection error

Possible causes:
  - Server requires TLS but the tls DSN parameter is unset
  - Certificate verification failed (try tls=skip-verify to diagnose)
  - Server does not support TLS but tls=true was requested

Original error: %w`, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}
