package store

import (
	"fmt"
	"path/filepath"
	"sync"
)

// registry ties each plan.db path to the single *DB handle open for it
// in this process, plus how many SharedDB callers currently hold it.
// bbolt takes an exclusive file lock per database, so two opens of the
// same plan.db from one process would otherwise deadlock each other -
// this is what GetSharedDB exists to prevent for a program (or test)
// that drives forge and export, or several exports, against the same
// output tree without forking a subprocess per command.
type registry struct {
	mu      sync.Mutex
	entries map[string]*handle
}

type handle struct {
	db   *DB
	refs int
}

var shared = &registry{entries: make(map[string]*handle)}

// GetSharedDB opens (or reuses) the plan database under planDir,
// keyed by its resolved plan.db path so unrelated output trees never
// contend for the same slot. Every returned SharedDB must be Close'd;
// the underlying *DB is only closed once every caller has done so.
func GetSharedDB(planDir string) (*SharedDB, error) {
	path := filepath.Join(planDir, "plan.db")

	shared.mu.Lock()
	defer shared.mu.Unlock()

	h, ok := shared.entries[path]
	if !ok {
		db, err := Open(path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		h = &handle{db: db}
		shared.entries[path] = h
	}

	h.refs++
	return &SharedDB{path: path, DB: h.db}, nil
}

// SharedDB is a reference-counted handle onto a plan database shared
// across every caller in this process that opened the same path.
type SharedDB struct {
	path   string
	closed bool
	*DB
}

// Close releases this caller's reference. The underlying *DB closes
// once the last SharedDB sharing path does; Close is idempotent.
func (sdb *SharedDB) Close() error {
	if sdb.closed {
		return nil
	}
	sdb.closed = true

	shared.mu.Lock()
	defer shared.mu.Unlock()

	h, ok := shared.entries[sdb.path]
	if !ok {
		return nil
	}

	h.refs--
	if h.refs > 0 {
		return nil
	}

	delete(shared.entries, sdb.path)
	return h.db.Close()
}
