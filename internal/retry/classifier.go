package retry

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for transient conditions.
// See: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	myCodeTooManyConnections  = 1040 // ER_CON_COUNT_ERROR
	myCodeServerShutdown      = 1053 // ER_SERVER_SHUTDOWN
	myCodeNormalShutdown      = 1077 // ER_NORMAL_SHUTDOWN
	myCodeAbortingConnection  = 1152 // ER_ABORTING_CONNECTION
	myCodeNetReadInterrupted  = 1159 // ER_NET_READ_INTERRUPTED
	myCodeNetErrorOnWrite     = 1160 // ER_NET_ERROR_ON_WRITE
	myCodeNetWriteInterrupted = 1161 // ER_NET_WRITE_INTERRUPTED
	myCodeLockWaitTimeout     = 1205 // ER_LOCK_WAIT_TIMEOUT
	myCodeLockDeadlock        = 1213 // ER_LOCK_DEADLOCK
	myCodeQueryInterrupted    = 1317 // ER_QUERY_INTERRUPTED
)

// MySQL server error numbers that are never worth retrying.
const (
	myCodeDBAccessDenied = 1044 // ER_DBACCESS_DENIED_ERROR
	myCodeAccessDenied   = 1045 // ER_ACCESS_DENIED_ERROR
	myCodeUnknownDB      = 1049 // ER_BAD_DB_ERROR
	myCodeParseError     = 1064 // ER_PARSE_ERROR
)

// MySQLErrorClassifier implements msi.ErrorClassifier for MySQL-specific
// and network-level errors.
type MySQLErrorClassifier struct{}

// NewMySQLErrorClassifier creates a new MySQL error classifier.
func NewMySQLErrorClassifier() *MySQLErrorClassifier {
	return &MySQLErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *MySQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Server-reported MySQL errors carry a stable error number.
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return c.isTransientMySQLError(myErr)
	}

	// Client-side invalid/stale connection markers.
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	if c.isNetworkError(err) {
		return true
	}

	return c.isConnectionError(err)
}

func (c *MySQLErrorClassifier) isTransientMySQLError(myErr *mysql.MySQLError) bool {
	switch myErr.Number {
	case myCodeDBAccessDenied,
		myCodeAccessDenied,
		myCodeUnknownDB,
		myCodeParseError:
		return false
	}

	switch myErr.Number {
	case myCodeTooManyConnections,
		myCodeServerShutdown,
		myCodeNormalShutdown,
		myCodeAbortingConnection,
		myCodeNetReadInterrupted,
		myCodeNetErrorOnWrite,
		myCodeNetWriteInterrupted,
		myCodeLockWaitTimeout,
		myCodeLockDeadlock,
		myCodeQueryInterrupted:
		return true
	}

	// SQLState class 08 covers connection exceptions regardless of number.
	return strings.HasPrefix(string(myErr.SQLState[:]), "08")
}

// isNetworkError checks for network-level errors.
func (c *MySQLErrorClassifier) isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}

		if opErr.Err != nil {
			if errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
				errors.Is(opErr.Err, syscall.ECONNRESET) ||
				errors.Is(opErr.Err, syscall.ENETUNREACH) ||
				errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
				return true
			}
		}
	}

	return false
}

// isConnectionError falls back to message patterns for errors that reach us
// as plain strings.
func (c *MySQLErrorClassifier) isConnectionError(err error) bool {
	errMsg := strings.ToLower(err.Error())

	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"too many connections",
		"invalid connection",
		"bad connection",
		"unexpected eof",
		"commands out of sync",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
