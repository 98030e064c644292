// Package bolt implements the local fallback record store on top of a bbolt
// file. It mirrors the shape of the original local database: accounts keyed
// by email, file lists keyed by owner, requests and notifications as flat
// sets. bbolt runs one writer at a time, so the read-modify-write cycles on
// the per-owner file lists are serialized by the store itself.
package bolt

import (
	"CloudVault/internal/repo"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketAccounts      = []byte("accounts")
	bucketFiles         = []byte("files")
	bucketRequests      = []byte("requests")
	bucketNotifications = []byte("notifications")
	bucketAccessLogs    = []byte("access_logs")
)

// Store — fallback implementation of repo.Store.
type Store struct {
	db *bolt.DB
}

var _ repo.Store = (*Store)(nil)

// Open opens (creating if needed) the fallback database file and ensures all
// buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open fallback db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketAccounts, bucketFiles, bucketRequests, bucketNotifications, bucketAccessLogs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init fallback buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), raw)
}

func getJSON(b *bolt.Bucket, key string, v any) error {
	raw := b.Get([]byte(key))
	if raw == nil {
		return repo.ErrNotFound
	}
	return json.Unmarshal(raw, v)
}
