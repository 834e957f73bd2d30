package keyValueDb

import "errors"

var (
	// ErrKeyNotFound is returned by Read when the key has no value.
	ErrKeyNotFound = errors.New("key not found")

	// ErrDBClosed is returned by any operation on a closed database.
	ErrDBClosed = errors.New("database is closed")

	// ErrUnknownBackend is returned by the manager for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)
