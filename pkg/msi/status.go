package msi

import "fmt"

// ConnStatus is the connection lifecycle state of a manager.
//
// StatusFailed is latched: once a manager enters it, the manager refuses
// further connect attempts for its lifetime.
type ConnStatus int

const (
	// StatusIdle means no live connection exists; the next operation
	// triggers a connect.
	StatusIdle ConnStatus = iota

	// StatusConnected means a live connection is held.
	StatusConnected

	// StatusFailed means the connect retry budget was exhausted or a fatal
	// connect error occurred. Terminal.
	StatusFailed
)

// String returns a human-readable representation of the status.
func (s ConnStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnected:
		return "connected"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}
