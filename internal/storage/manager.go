// Package storage selects and opens the configured keyValueDb backend.
package storage

import (
	"fmt"

	"github.com/swapnode/swapd/internal/storage/keyValueDb"
	"github.com/swapnode/swapd/internal/storage/keyValueDb/leveldb"
	"github.com/swapnode/swapd/internal/storage/keyValueDb/memory"
	"github.com/swapnode/swapd/internal/storage/keyValueDb/pebble"
)

// Open opens the named backend at path. The memory backend ignores path.
func Open(backend, path string) (keyValueDb.DB, error) {
	switch backend {
	case keyValueDb.BackendMemory:
		return memory.NewDB(), nil
	case keyValueDb.BackendPebble:
		return pebble.Open(path)
	case keyValueDb.BackendLevelDB:
		return leveldb.Open(path)
	default:
		return nil, fmt.Errorf("%w: %q", keyValueDb.ErrUnknownBackend, backend)
	}
}
