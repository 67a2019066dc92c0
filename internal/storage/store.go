// Package storage provides the durable key-value surface the favorites set is kept in.
package storage

import "fmt"

// Store is a small string key-value store. A successful Set must be durable
// by the time it returns.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Open returns the Store for the named backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteStore(path)
	case BackendFile:
		return NewFileStore(OSFs(), path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", backend, BackendSQLite, BackendFile)
	}
}
