// Package store persists merge-plan bookkeeping in a single bbolt file
// under <output>/.multimerge/plan.db: recorded per-path strategy
// decisions, formatted rename stems keyed by "pid:stem", and an
// append-only audit log of Logger events. The resolver and timeline do
// not read these records back, so a later run classifies and renames
// from its own policy and formatter alone.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// Buckets
var (
	BucketStrategy = []byte("paths->strategy")   // relative path -> recorded Strategy string
	BucketRenames  = []byte("renames->formatted") // "pid:stem" -> formatted stem already assigned
	BucketEvents   = []byte("events")             // monotonic event id -> JSON-encoded Event
	BucketConfig   = []byte("config")             // key -> value pairs stored with PutConfig
)

type DB struct{ *bbolt.DB }

// Open creates/opens the plan database at path, ensuring every bucket
// this package uses exists.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{BucketStrategy, BucketRenames, BucketEvents, BucketConfig} {
			if _, e := tx.CreateBucketIfNotExists(bucket); e != nil {
				return e
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

func (db *DB) Close() error { return db.DB.Close() }

// RecordStrategy persists the Strategy chosen for relPath, overwriting
// any earlier record for it. Resolution does not consult these records:
// a later run classifies relPath from its current policy.
func (db *DB) RecordStrategy(relPath, strategy string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketStrategy).Put([]byte(relPath), []byte(strategy))
	})
}

// LookupStrategy returns the previously recorded Strategy for relPath,
// if any.
func (db *DB) LookupStrategy(relPath string) (string, bool, error) {
	var value string
	var found bool
	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(BucketStrategy).Get([]byte(relPath))
		if v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	return value, found, err
}

// RecordRename persists the stem the formatter produced for key (built
// from pid and the original stem). Nothing in the export path calls it,
// and renamed destinations are computed by the formatter on every run.
func (db *DB) RecordRename(key, formatted string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketRenames).Put([]byte(key), []byte(formatted))
	})
}

// LookupRename returns the previously recorded formatted stem for key.
func (db *DB) LookupRename(key string) (string, bool, error) {
	var value string
	var found bool
	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(BucketRenames).Get([]byte(key))
		if v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	return value, found, err
}

// Event is one audited Logger callback.
type Event struct {
	At     time.Time `json:"at"`
	Kind   string    `json:"kind"` // "add", "replace", "merge", "rename"
	Path   string    `json:"path"`
	Pid    int       `json:"pid"`
	Detail string    `json:"detail,omitempty"`
}

// AppendEvent appends an audit event under a monotonically increasing
// key so ForEach replays events in the order they were recorded.
func (db *DB) AppendEvent(ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(BucketEvents)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		for i := range key {
			key[7-i] = byte(seq >> (8 * i))
		}
		return bucket.Put(key, data)
	})
}

// Events returns every recorded audit event in append order.
func (db *DB) Events() ([]Event, error) {
	var events []Event
	err := db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketEvents).ForEach(func(k, v []byte) error {
			var ev Event
			if err := json.Unmarshal(v, &ev); err != nil {
				return err
			}
			events = append(events, ev)
			return nil
		})
	})
	return events, err
}

// PutConfig stores a configuration key-value pair local to this output
// tree's plan database. config.LoadConfig does not read these pairs;
// they do not override the JSON config files.
func (db *DB) PutConfig(key, value string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketConfig).Put([]byte(key), []byte(value))
	})
}

// GetConfig retrieves a configuration value by key.
func (db *DB) GetConfig(key string) (string, error) {
	var value string
	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(BucketConfig).Get([]byte(key))
		if v == nil {
			return errors.New("config key not found")
		}
		value = string(v)
		return nil
	})
	return value, err
}

// RemoveConfig removes a configuration key-value pair.
func (db *DB) RemoveConfig(key string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketConfig).Delete([]byte(key))
	})
}
