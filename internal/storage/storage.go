// Package storage provides the durable key-value medium that budgets are
// persisted to.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned when a write would exceed the configured capacity.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// KV is a flat key-value store. Values are written whole; there are no
// partial updates.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Backends lists every backend name in display order.
var Backends = []string{BackendSQLite, BackendFile, BackendMemory}

// Open returns the named backend rooted at dir.
func Open(backend, dir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "budgets.db"))
	case BackendFile:
		return OpenFile(dir)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want one of %s)",
			backend, strings.Join(Backends, ", "))
	}
}
