// Package msi defines the public contracts of the MySQL session interface:
// the Driver/Conn/Cursor collaborator boundary, the Value variant scalar,
// connection configuration, connection status, logging, sentinel errors,
// and semantic exit codes.
//
// The actual connection lifecycle lives in internal/db/manager; concrete
// drivers live in internal/db. This package intentionally contains no I/O.
package msi
